package cron

import (
	"Plaza/internal/job"
	log "log/slog"

	"github.com/robfig/cron/v3"
)

type Manager struct {
	engine               *cron.Cron
	notificationSweepJob *job.NotificationSweepJob
}

func NewCronManager(notificationSweepJob *job.NotificationSweepJob) *Manager {
	return &Manager{
		engine:               cron.New(cron.WithSeconds()),
		notificationSweepJob: notificationSweepJob,
	}
}

// RegisterJobs wires every scheduled task into the engine.
func (s *Manager) RegisterJobs() error {
	if _, err := s.engine.AddJob("@daily", s.notificationSweepJob); err != nil {
		return err
	}
	return nil
}

func (s *Manager) Start() {
	log.Info("cron engine started")
	s.engine.Start()
}

func (s *Manager) Stop() {
	log.Info("cron engine stopped")
	s.engine.Stop()
}
