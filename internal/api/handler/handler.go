package handler

import "al-muallim/backend/internal/service"

// Handler is the aggregate entry point for all HTTP handlers.
type Handler struct {
	Plan     *PlanHandler
	Settings *SettingsHandler
	Backup   *BackupHandler
	Export   *ExportHandler
	Week     *WeekHandler
}

// NewHandler creates the Handler aggregate.
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Plan:     NewPlanHandler(svc.Plan),
		Settings: NewSettingsHandler(svc.Settings),
		Backup:   NewBackupHandler(svc.Backup),
		Export:   NewExportHandler(svc.Export),
		Week:     NewWeekHandler(),
	}
}
