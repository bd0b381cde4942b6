package service

import (
	"go.uber.org/zap"

	"al-muallim/backend/config"
	"al-muallim/backend/internal/repository"
)

// Service is the aggregate entry point for all services.
type Service struct {
	Plan     PlanService
	Settings SettingsService
	Backup   BackupService
	Export   ExportService
}

// NewService creates the Service aggregate. notifier may be nil when no
// broadcast backend is available.
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	notifier SettingsNotifier,
	logger *zap.Logger,
) *Service {
	settings := NewSettingsService(repo, notifier, logger)
	plan := NewPlanService(repo, settings, logger)
	return &Service{
		Plan:     plan,
		Settings: settings,
		Backup:   NewBackupService(repo, notifier, logger),
		Export:   NewExportService(&cfg.Export, plan, settings, logger),
	}
}
