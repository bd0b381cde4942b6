package handler

import (
	"github.com/gin-gonic/gin"

	"al-muallim/backend/internal/constants"
	"al-muallim/backend/pkg/response"
)

// WeekHandler serves the fixed academic week calendar.
type WeekHandler struct{}

// NewWeekHandler creates a WeekHandler.
func NewWeekHandler() *WeekHandler {
	return &WeekHandler{}
}

// List returns all 52 calendar weeks.
// GET /api/v1/weeks
func (h *WeekHandler) List(c *gin.Context) {
	response.OK(c, constants.WeekCalendar())
}
