package matching

import (
	"math"
	"strings"
	"time"

	"resume-coach/internal/domain/job"
	"resume-coach/internal/search"
)

// Result is the fit of one posting against a set of resume terms.
type Result struct {
	MatchScore    int
	MatchedSkills []string
}

// Weights of the score components. They sum to 100.
const (
	requirementsWeight = 60.0
	titleWeight        = 20.0
	descriptionWeight  = 10.0
	freshnessWeight    = 10.0
)

// Calculate scores a posting against resume terms. Requirements weigh most,
// then the title, then the description, plus a small freshness bonus.
func Calculate(terms []string, p job.Posting, now time.Time) Result {
	clean := make([]string, 0, len(terms))
	seen := make(map[string]struct{}, len(terms))
	for _, t := range terms {
		k := strings.ToLower(strings.TrimSpace(t))
		if k == "" {
			continue
		}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		clean = append(clean, strings.TrimSpace(t))
	}
	if len(clean) == 0 {
		return Result{MatchScore: 0, MatchedSkills: []string{}}
	}

	title := strings.ToLower(p.Title)
	desc := strings.ToLower(p.Description)
	reqs := make([]string, 0, len(p.Requirements))
	for _, r := range p.Requirements {
		r = strings.ToLower(strings.TrimSpace(r))
		if r != "" {
			reqs = append(reqs, r)
		}
	}

	matched := make([]string, 0, len(clean))
	titleHit := false
	descHits := 0
	for _, t := range clean {
		k := strings.ToLower(t)
		hit := false
		if search.ContainsWord(title, k) {
			titleHit = true
			hit = true
		}
		if search.ContainsWord(desc, k) {
			descHits++
			hit = true
		}
		for _, r := range reqs {
			if search.ContainsWord(r, k) {
				hit = true
				break
			}
		}
		if hit {
			matched = append(matched, t)
		}
	}

	var reqScore float64
	if len(reqs) > 0 {
		covered := 0
		for _, r := range reqs {
			for _, t := range clean {
				if search.ContainsWord(r, strings.ToLower(t)) {
					covered++
					break
				}
			}
		}
		reqScore = requirementsWeight * float64(covered) / float64(len(reqs))
	} else {
		// Without listed requirements the description stands in for them.
		reqScore = requirementsWeight * float64(descHits) / float64(len(clean))
	}

	var titleScore float64
	if titleHit {
		titleScore = titleWeight
	}
	descScore := descriptionWeight * float64(descHits) / float64(len(clean))

	total := reqScore + titleScore + descScore + freshnessScore(p, now)
	score := int(math.Round(total))
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}

	return Result{MatchScore: score, MatchedSkills: matched}
}

func freshnessScore(p job.Posting, now time.Time) float64 {
	posted, ok := p.PostedAt()
	if !ok {
		return 0
	}
	age := now.Sub(posted)
	if age < 0 {
		age = 0
	}

	switch {
	case age <= 3*24*time.Hour:
		return freshnessWeight
	case age <= 7*24*time.Hour:
		return freshnessWeight * 0.7
	case age <= 14*24*time.Hour:
		return freshnessWeight * 0.4
	case age <= 30*24*time.Hour:
		return freshnessWeight * 0.2
	default:
		return 0
	}
}
