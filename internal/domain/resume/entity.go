package resume

import "time"

const (
	SectionContact    = "contact"
	SectionSummary    = "summary"
	SectionExperience = "experience"
	SectionEducation  = "education"
	SectionSkills     = "skills"
)

type SectionFeedback struct {
	Score    int    `json:"score"`
	Feedback string `json:"feedback"`
}

type Sections struct {
	Contact    SectionFeedback `json:"contact"`
	Summary    SectionFeedback `json:"summary"`
	Experience SectionFeedback `json:"experience"`
	Education  SectionFeedback `json:"education"`
	Skills     SectionFeedback `json:"skills"`
}

// Analysis is the structured feedback produced for one resume.
type Analysis struct {
	Score       int      `json:"score"`
	Strengths   []string `json:"strengths"`
	Weaknesses  []string `json:"weaknesses"`
	Suggestions []string `json:"suggestions"`
	Sections    Sections `json:"sections"`
	Skills      []string `json:"skills,omitempty"`
}

// Normalize clamps scores into 0..100 and replaces nil slices so the JSON
// shape is stable.
func (a Analysis) Normalize() Analysis {
	a.Score = clampScore(a.Score)
	a.Sections.Contact.Score = clampScore(a.Sections.Contact.Score)
	a.Sections.Summary.Score = clampScore(a.Sections.Summary.Score)
	a.Sections.Experience.Score = clampScore(a.Sections.Experience.Score)
	a.Sections.Education.Score = clampScore(a.Sections.Education.Score)
	a.Sections.Skills.Score = clampScore(a.Sections.Skills.Score)
	if a.Strengths == nil {
		a.Strengths = []string{}
	}
	if a.Weaknesses == nil {
		a.Weaknesses = []string{}
	}
	if a.Suggestions == nil {
		a.Suggestions = []string{}
	}
	return a
}

// Feedback returns every free-text feedback string in the analysis.
func (a Analysis) Feedback() []string {
	out := make([]string, 0, len(a.Strengths)+5)
	out = append(out, a.Strengths...)
	for _, s := range []SectionFeedback{a.Sections.Summary, a.Sections.Experience, a.Sections.Skills} {
		if s.Feedback != "" {
			out = append(out, s.Feedback)
		}
	}
	return out
}

// Record is a stored analysis.
type Record struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id,omitempty"`
	FileName   string    `json:"file_name"`
	StorageKey string    `json:"storage_key,omitempty"`
	Score      int       `json:"score"`
	Analysis   Analysis  `json:"analysis"`
	Fallback   bool      `json:"-"`
	CreatedAt  time.Time `json:"created_at"`
}

func clampScore(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
