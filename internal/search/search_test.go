package search

import (
	"testing"
	"time"

	"resume-coach/internal/domain/job"
)

func TestNormalizeQuery(t *testing.T) {
	cases := map[string]string{
		"  Senior   GO Developer!! ": "senior go developer",
		"C++ / C#, Node.js.":         "c++ c# node.js",
		"":                           "",
		"...":                        "",
	}
	for in, want := range cases {
		if got := NormalizeQuery(in); got != want {
			t.Fatalf("NormalizeQuery(%q): expected %q, got %q", in, want, got)
		}
	}
}

func TestExpandQuery_Synonyms(t *testing.T) {
	got := ExpandQuery("frontend")
	if len(got) == 0 || got[0] != "frontend" {
		t.Fatalf("expected original query first, got %v", got)
	}
	if !contains(got, "react developer") {
		t.Fatalf("expected synonym variant, got %v", got)
	}
}

func TestExpandQuery_PrefixKeepsRest(t *testing.T) {
	got := ExpandQuery("backend berlin")
	if !contains(got, "backend developer berlin") {
		t.Fatalf("expected prefix variant, got %v", got)
	}
}

func TestExpandQuery_CompactToken(t *testing.T) {
	got := ExpandQuery("fullstack remote")
	if !contains(got, "full stack remote") {
		t.Fatalf("expected spaced variant, got %v", got)
	}
	if len(got) > maxVariants {
		t.Fatalf("expected at most %d variants, got %d", maxVariants, len(got))
	}
}

func TestProcessQuery_Empty(t *testing.T) {
	q := ProcessQuery("   ")
	if q.Normalized != "" || len(q.Variants) != 0 {
		t.Fatalf("expected empty context, got %+v", q)
	}
}

func TestExtractSkills(t *testing.T) {
	got := ExtractSkills("Strong background in Python and Docker.", "Led a Kubernetes migration", "")
	want := []string{"Python", "Docker", "Kubernetes"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}

func TestMergeTerms(t *testing.T) {
	got := MergeTerms([]string{"Go", " ", "SQL"}, []string{"go", "Docker"})
	if len(got) != 3 || got[0] != "Go" || got[2] != "Docker" {
		t.Fatalf("unexpected merge: %v", got)
	}
}

func TestRankJobs(t *testing.T) {
	now := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)
	jobs := []job.Posting{
		{ID: "a", Title: "Accountant", Description: "numbers"},
		{ID: "b", Title: "Go Developer", Requirements: []string{"go"}, PostedDate: "2026-01-09"},
		{ID: "c", Title: "Senior Go Developer"},
	}

	ranked := RankJobs(jobs, []string{"go developer"}, now)
	if ranked[0].ID != "b" || ranked[1].ID != "c" || ranked[2].ID != "a" {
		t.Fatalf("unexpected order: %s %s %s", ranked[0].ID, ranked[1].ID, ranked[2].ID)
	}
}

func TestFilterRelevant(t *testing.T) {
	jobs := []job.Posting{
		{ID: "a", Title: "Data Analyst", Location: "London, UK"},
		{ID: "b", Title: "Data Engineer", Location: "Berlin", Remote: true},
		{ID: "c", Title: "Chef", Location: "London, UK"},
	}

	got := FilterRelevant(jobs, []string{"data"}, "london")
	if len(got) != 1 || got[0].ID != "a" {
		t.Fatalf("expected [a], got %v", got)
	}

	got = FilterRelevant(jobs, nil, "remote")
	if len(got) != 1 || got[0].ID != "b" {
		t.Fatalf("expected [b], got %v", got)
	}
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
