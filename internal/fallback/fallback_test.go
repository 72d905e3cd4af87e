package fallback

import (
	"strings"
	"testing"
	"time"
)

func TestAnalysis_IsNormalized(t *testing.T) {
	a := Analysis()
	if a.Normalize().Score != a.Score {
		t.Fatalf("expected score within range, got %d", a.Score)
	}
	if len(a.Strengths) == 0 || len(a.Weaknesses) == 0 || len(a.Suggestions) == 0 {
		t.Fatalf("expected populated lists, got %+v", a)
	}
	if a.Sections.Experience.Feedback == "" {
		t.Fatalf("expected section feedback")
	}
}

func TestAnalysis_ReturnsFreshCopy(t *testing.T) {
	a := Analysis()
	a.Strengths[0] = "changed"
	if Analysis().Strengths[0] == "changed" {
		t.Fatalf("expected independent copies")
	}
}

func TestJobs_Shape(t *testing.T) {
	now := time.Date(2026, 5, 10, 12, 0, 0, 0, time.UTC)
	jobs := Jobs(now)
	if len(jobs) != len(mockJobs) {
		t.Fatalf("expected %d jobs, got %d", len(mockJobs), len(jobs))
	}

	seen := map[string]bool{}
	for _, j := range jobs {
		if j.ID == "" || j.Title == "" || j.Company == "" || j.ApplyURL == "" {
			t.Fatalf("incomplete posting: %+v", j)
		}
		if seen[j.ID] {
			t.Fatalf("duplicate id %s", j.ID)
		}
		seen[j.ID] = true
		posted, ok := j.PostedAt()
		if !ok || posted.After(now) {
			t.Fatalf("unexpected posted date %q", j.PostedDate)
		}
	}
	if jobs[0].PostedDate != "2026-05-09" {
		t.Fatalf("expected 2026-05-09, got %s", jobs[0].PostedDate)
	}
	if jobs[0].ApplyURL != "https://example.com/jobs/senior-frontend-developer" {
		t.Fatalf("unexpected apply url %s", jobs[0].ApplyURL)
	}
}

func TestResumeContent_UsesInput(t *testing.T) {
	got := ResumeContent(" Data Analyst ", "3 years of", []string{"SQL", " ", "Tableau"})
	for _, want := range []string{"Data Analyst with 3 years of experience", "Skilled in SQL, Tableau", "- SQL\n- Tableau"} {
		if !strings.Contains(got, want) {
			t.Fatalf("expected %q in:\n%s", want, got)
		}
	}
}

func TestResumeContent_NoSkills(t *testing.T) {
	got := ResumeContent("Engineer", "", nil)
	if !strings.Contains(got, "- Problem solving") {
		t.Fatalf("expected default skills in:\n%s", got)
	}
	if strings.HasSuffix(got, "\n") {
		t.Fatalf("expected trimmed content")
	}
}
