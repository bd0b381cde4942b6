package model

// GlobalSettings is the single school-wide settings record. The custom
// subject/grade lists override the built-in catalogs when non-empty;
// the logo is a base64-encoded image (optionally a data URL).
type GlobalSettings struct {
	Announcement   string   `json:"announcement"`
	SchoolName     string   `json:"schoolName"`
	SchoolLogo     string   `json:"schoolLogo"`
	CustomSubjects []string `json:"customSubjects,omitempty"`
	CustomGrades   []string `json:"customGrades,omitempty"`
}
