package constants

import "fmt"

// Days are the keys of a plan's day map, in school-week order
// (Sunday through Thursday).
var Days = []string{"Day 1", "Day 2", "Day 3", "Day 4", "Day 5"}

// TotalWeeks is the size of the fixed academic week calendar.
const TotalWeeks = 52

// DefaultSubjects is the built-in subject catalog, used whenever the
// admin has not configured a custom list.
var DefaultSubjects = []string{
	"Quran",
	"Arabic",
	"Religion",
	"English",
	"Math",
	"Science",
	"Social Studies",
	"ICT",
}

// DefaultGrades is the built-in grade catalog.
var DefaultGrades = []string{
	"Grade 1",
	"Grade 2",
	"Grade 3",
	"Grade 4",
	"Grade 5",
	"Grade 6",
}

// SubjectColors maps each built-in subject to its accent color used in
// exported documents.
var SubjectColors = map[string]string{
	"Quran":          "#f59e0b",
	"Arabic":         "#059669",
	"Religion":       "#4f46e5",
	"English":        "#2563eb",
	"Math":           "#7c3aed",
	"Science":        "#16a34a",
	"Social Studies": "#0284c7",
	"ICT":            "#475569",
}

// FallbackSubjectColor is used for subjects outside the fixed color table.
const FallbackSubjectColor = "#4b5563"

// Week is one entry of the academic week calendar.
type Week struct {
	WeekNum int    `json:"weekNum"`
	Label   string `json:"label"`
}

// WeekCalendar returns the fixed 52-entry week calendar.
func WeekCalendar() []Week {
	weeks := make([]Week, TotalWeeks)
	for i := range weeks {
		n := i + 1
		weeks[i] = Week{WeekNum: n, Label: fmt.Sprintf("Week %d", n)}
	}
	return weeks
}

// ValidWeek reports whether n falls inside the fixed week calendar.
func ValidWeek(n int) bool {
	return n >= 1 && n <= TotalWeeks
}

// SubjectColor returns the accent color for a subject, falling back to
// the neutral color for subjects outside the fixed table.
func SubjectColor(subject string) string {
	if c, ok := SubjectColors[subject]; ok {
		return c
	}
	return FallbackSubjectColor
}
