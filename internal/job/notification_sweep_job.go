package job

import (
	"Plaza/internal/service"
	"context"
	log "log/slog"
)

// NotificationSweepJob prunes notifications older than the configured
// retention window so the inbox table stays bounded.
type NotificationSweepJob struct {
	notificationService service.NotificationService
}

func NewNotificationSweepJob(notificationService service.NotificationService) *NotificationSweepJob {
	return &NotificationSweepJob{notificationService: notificationService}
}

func (s *NotificationSweepJob) Run() {
	ctx := context.Background()
	log.Info("start notification sweep job")

	removed, err := s.notificationService.SweepOld(ctx)
	if err != nil {
		log.Error("notification sweep job failed", "err", err)
		return
	}

	log.Info("notification sweep job finished", "removed", removed)
}
