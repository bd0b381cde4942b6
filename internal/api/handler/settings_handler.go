package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"al-muallim/backend/internal/dto"
	"al-muallim/backend/internal/service"
	"al-muallim/backend/pkg/response"
)

// SettingsHandler serves the global settings endpoints.
type SettingsHandler struct {
	settingsSvc service.SettingsService
}

// NewSettingsHandler creates a SettingsHandler.
func NewSettingsHandler(settingsSvc service.SettingsService) *SettingsHandler {
	return &SettingsHandler{settingsSvc: settingsSvc}
}

// Get returns the settings record.
// GET /api/v1/settings
func (h *SettingsHandler) Get(c *gin.Context) {
	settings, err := h.settingsSvc.Get(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, settings)
}

// Update overwrites the settings record.
// PUT /api/v1/settings
func (h *SettingsHandler) Update(c *gin.Context) {
	var req dto.UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request parameters")
		return
	}

	settings, err := h.settingsSvc.Update(c.Request.Context(), &req)
	if err != nil {
		h.handleSettingsError(c, err)
		return
	}

	response.OK(c, settings)
}

// Subjects returns the effective subject catalog.
// GET /api/v1/settings/subjects
func (h *SettingsHandler) Subjects(c *gin.Context) {
	subjects, err := h.settingsSvc.Subjects(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, subjects)
}

// Grades returns the effective grade catalog.
// GET /api/v1/settings/grades
func (h *SettingsHandler) Grades(c *gin.Context) {
	grades, err := h.settingsSvc.Grades(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, grades)
}

// handleSettingsError maps settings module business errors to responses.
func (h *SettingsHandler) handleSettingsError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrLogoTooLarge):
		response.BadRequest(c, 12001, "school logo exceeds the 500 KB limit")
	default:
		response.InternalError(c)
	}
}
