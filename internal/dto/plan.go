package dto

import "al-muallim/backend/internal/model"

// ── plan module DTOs ──

// SavePlanRequest upserts one weekly plan. The record ID is derived
// server-side from (subject, grade, weekNum); field contents are free
// text and deliberately unvalidated.
type SavePlanRequest struct {
	Subject   string                    `json:"subject"   binding:"required"`
	Grade     string                    `json:"grade"     binding:"required"`
	WeekNum   int                       `json:"weekNum"   binding:"required,min=1,max=52"`
	StartDate string                    `json:"startDate"`
	EndDate   string                    `json:"endDate"`
	Days      map[string]model.DayEntry `json:"days"`
	Footer    model.PlanFooter          `json:"footer"`
}

// SubjectAnalyticsResponse is the derived completion statistics for one
// subject across all of its stored plans.
type SubjectAnalyticsResponse struct {
	CompletionRate int `json:"completionRate"`
	TotalTests     int `json:"totalTests"`
	TotalHomework  int `json:"totalHomework"`
	ClassesPlanned int `json:"classesPlanned"`
}
