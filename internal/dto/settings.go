package dto

// ── settings module DTOs ──

// UpdateSettingsRequest overwrites the whole settings record. Partial
// updates are the caller's responsibility (read, modify, write back).
type UpdateSettingsRequest struct {
	Announcement   string   `json:"announcement"`
	SchoolName     string   `json:"schoolName"`
	SchoolLogo     string   `json:"schoolLogo"`
	CustomSubjects []string `json:"customSubjects"`
	CustomGrades   []string `json:"customGrades"`
}
