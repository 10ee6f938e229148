package resume

import "resumePress/internal/units"

// Document is the structured resume edited by the UI and stored as JSONB.
type Document struct {
	Content Content `json:"content"`
	Format  Format  `json:"format"`
}

// Content holds the resume sections.
type Content struct {
	PersonalInfo PersonalInfo     `json:"personalInfo"`
	Summary      string           `json:"summary"`
	Experience   []WorkExperience `json:"experience"`
	Education    []Education      `json:"education"`
	Skills       []string         `json:"skills"`
}

type PersonalInfo struct {
	Name     string `json:"name"`
	Title    string `json:"title"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Location string `json:"location"`
}

// WorkExperience is one job; Description holds the bullet lines.
type WorkExperience struct {
	ID          string   `json:"id"`
	Company     string   `json:"company"`
	Position    string   `json:"position"`
	StartDate   string   `json:"startDate"`
	EndDate     string   `json:"endDate"`
	Current     bool     `json:"current"`
	Description []string `json:"description"`
}

type Education struct {
	ID             string `json:"id"`
	School         string `json:"school"`
	Degree         string `json:"degree"`
	Field          string `json:"field"`
	GraduationDate string `json:"graduationDate"`
	GPA            string `json:"gpa,omitempty"`
}

// FontFamily only affects which font metrics a measurer uses, never the
// page geometry.
type FontFamily string

const (
	FontArial         FontFamily = "Arial"
	FontGeorgia       FontFamily = "Georgia"
	FontTimesNewRoman FontFamily = "Times New Roman"
)

// Margins are in points.
type Margins struct {
	Top    float64 `json:"top"`
	Right  float64 `json:"right"`
	Bottom float64 `json:"bottom"`
	Left   float64 `json:"left"`
}

// Format is the page and typography configuration. All lengths are points;
// LineHeight is a multiplier of FontSize.
type Format struct {
	FontFamily     FontFamily     `json:"fontFamily"`
	FontSize       float64        `json:"fontSize"`
	LineHeight     float64        `json:"lineHeight"`
	Margins        Margins        `json:"margins"`
	PageSize       units.PageSize `json:"pageSize"`
	SectionSpacing float64        `json:"sectionSpacing"`
	ItemSpacing    float64        `json:"itemSpacing"`
}

// DateRange renders the job period the way both templates print it.
func (w WorkExperience) DateRange() string {
	end := w.EndDate
	if w.Current {
		end = "Present"
	}
	if end == "" {
		return w.StartDate
	}
	return w.StartDate + " - " + end
}
