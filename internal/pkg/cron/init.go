package cron

import log "log/slog"

// InitCron registers every scheduled job and starts the engine. The
// caller owns shutdown via Manager.Stop.
func InitCron(mgr *Manager) error {
	if err := mgr.RegisterJobs(); err != nil {
		return err
	}
	log.Info("scheduled jobs registered", "count", len(mgr.engine.Entries()))
	mgr.Start()
	return nil
}
