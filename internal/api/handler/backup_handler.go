package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"al-muallim/backend/internal/service"
	"al-muallim/backend/pkg/response"
)

// BackupHandler serves the backup, restore, and reset endpoints.
type BackupHandler struct {
	backupSvc service.BackupService
}

// NewBackupHandler creates a BackupHandler.
func NewBackupHandler(backupSvc service.BackupService) *BackupHandler {
	return &BackupHandler{backupSvc: backupSvc}
}

// Download streams the whole store as a JSON archive.
// GET /api/v1/backup
func (h *BackupHandler) Download(c *gin.Context) {
	buf, filename, err := h.backupSvc.Create(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Data(http.StatusOK, "application/json", buf.Bytes())
}

// Restore replaces stored state from an uploaded archive.
// POST /api/v1/backup/restore
func (h *BackupHandler) Restore(c *gin.Context) {
	data, err := c.GetRawData()
	if err != nil {
		response.BadRequest(c, 10001, "failed to read request body")
		return
	}

	if err := h.backupSvc.Restore(c.Request.Context(), data); err != nil {
		h.handleBackupError(c, err)
		return
	}

	response.OK(c, nil)
}

// Reset wipes all stored plans and settings.
// POST /api/v1/backup/reset
func (h *BackupHandler) Reset(c *gin.Context) {
	if err := h.backupSvc.Reset(c.Request.Context()); err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, nil)
}

// handleBackupError maps backup module business errors to responses.
func (h *BackupHandler) handleBackupError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrBackupInvalid):
		response.BadRequest(c, 13001, "backup file is not a valid archive")
	default:
		response.InternalError(c)
	}
}
