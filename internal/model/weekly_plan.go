package model

import "fmt"

// DayEntry holds the five trackable text fields of one school day.
// Period is kept for wire compatibility but is not interpreted anywhere.
type DayEntry struct {
	Period    int    `json:"period"`
	Classwork string `json:"classwork"`
	Homework  string `json:"homework"`
	Items     string `json:"items"`
	Tests     string `json:"tests"`
	Events    string `json:"events"`
}

// PlanFooter is the free-text notes block of a weekly plan.
type PlanFooter struct {
	QuranSurah  string `json:"quranSurah"`
	ValueOfWeek string `json:"valueOfWeek"`
	Notes       string `json:"notes"`
}

// WeeklyPlan is one weekly schedule record for a (subject, grade, week)
// triple. JSON field names are fixed: existing backup archives must
// round-trip byte-for-byte compatible.
type WeeklyPlan struct {
	ID          string              `json:"id"`
	Subject     string              `json:"subject"`
	Grade       string              `json:"grade"`
	WeekNum     int                 `json:"weekNum"`
	StartDate   string              `json:"startDate"`
	EndDate     string              `json:"endDate"`
	Days        map[string]DayEntry `json:"days"`
	Footer      PlanFooter          `json:"footer"`
	LastUpdated int64               `json:"lastUpdated"`
}

// PlanID builds the composite key "{subject}-{grade}-{week}".
func PlanID(subject, grade string, week int) string {
	return fmt.Sprintf("%s-%s-%d", subject, grade, week)
}
