package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"al-muallim/backend/internal/dto"
	"al-muallim/backend/internal/service"
	"al-muallim/backend/pkg/response"
)

// PlanHandler serves the weekly plan endpoints.
type PlanHandler struct {
	planSvc service.PlanService
}

// NewPlanHandler creates a PlanHandler.
func NewPlanHandler(planSvc service.PlanService) *PlanHandler {
	return &PlanHandler{planSvc: planSvc}
}

// List returns every stored plan.
// GET /api/v1/plans
func (h *PlanHandler) List(c *gin.Context) {
	plans, err := h.planSvc.List(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, plans)
}

// Save upserts one plan.
// PUT /api/v1/plans
func (h *PlanHandler) Save(c *gin.Context) {
	var req dto.SavePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request parameters")
		return
	}

	plan, err := h.planSvc.Save(c.Request.Context(), &req)
	if err != nil {
		h.handlePlanError(c, err)
		return
	}

	response.OK(c, plan)
}

// Get returns the plan for one (subject, grade, week) triple, blank if
// none is stored.
// GET /api/v1/plans/detail?subject=Math&grade=Grade+1&week=3
func (h *PlanHandler) Get(c *gin.Context) {
	subject := c.Query("subject")
	grade := c.Query("grade")
	if subject == "" || grade == "" {
		response.BadRequest(c, 10001, "subject and grade are required")
		return
	}
	week, ok := weekParam(c)
	if !ok {
		return
	}

	plan, err := h.planSvc.GetByKey(c.Request.Context(), subject, grade, week)
	if err != nil {
		h.handlePlanError(c, err)
		return
	}

	response.OK(c, plan)
}

// WeekSet returns one plan per catalog subject for a grade/week.
// GET /api/v1/plans/week-set?grade=Grade+1&week=3
func (h *PlanHandler) WeekSet(c *gin.Context) {
	grade := c.Query("grade")
	if grade == "" {
		response.BadRequest(c, 10001, "grade is required")
		return
	}
	week, ok := weekParam(c)
	if !ok {
		return
	}

	plans, err := h.planSvc.FullWeekSet(c.Request.Context(), grade, week)
	if err != nil {
		h.handlePlanError(c, err)
		return
	}

	response.OK(c, plans)
}

// Analytics returns completion statistics for one subject.
// GET /api/v1/analytics?subject=Math
func (h *PlanHandler) Analytics(c *gin.Context) {
	subject := c.Query("subject")
	if subject == "" {
		response.BadRequest(c, 10001, "subject is required")
		return
	}

	stats, err := h.planSvc.SubjectAnalytics(c.Request.Context(), subject)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, stats)
}

// weekParam parses the week query parameter, writing the error response
// itself when the value is missing or not a number.
func weekParam(c *gin.Context) (int, bool) {
	week, err := strconv.Atoi(c.Query("week"))
	if err != nil {
		response.BadRequest(c, 10001, "week must be a number")
		return 0, false
	}
	return week, true
}

// handlePlanError maps plan module business errors to responses.
func (h *PlanHandler) handlePlanError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrUnknownWeek):
		response.BadRequest(c, 11001, "week number is outside the academic calendar")
	default:
		response.InternalError(c)
	}
}
