package search

import (
	"sort"
	"strings"
	"time"

	"resume-coach/internal/domain/job"
)

type JobScore struct {
	Relevance   float64
	Freshness   float64
	DataQuality float64
	FinalScore  float64
}

// ComputeRelevance scores how well a posting matches the query variants, 0..10.
func ComputeRelevance(p job.Posting, queryVariants []string) float64 {
	if len(queryVariants) == 0 {
		return 0
	}

	title := strings.ToLower(p.Title)
	desc := strings.ToLower(p.Description)
	company := strings.ToLower(p.Company)
	reqs := strings.ToLower(strings.Join(p.Requirements, " "))

	score := 0.0
	for _, v := range queryVariants {
		v = strings.ToLower(strings.TrimSpace(v))
		if v == "" {
			continue
		}
		if strings.Contains(title, v) {
			score += 3
		}
		if strings.Contains(reqs, v) {
			score += 2
		}
		if strings.Contains(desc, v) {
			score += 1
		}
		if strings.Contains(company, v) {
			score += 1
		}
		if score >= 10 {
			return 10
		}
	}
	return score
}

// ComputeFreshness scores posting age, 0..5.
func ComputeFreshness(p job.Posting, now time.Time) float64 {
	posted, ok := p.PostedAt()
	if !ok {
		return 0
	}
	age := now.Sub(posted)
	if age < 0 {
		age = 0
	}

	switch {
	case age <= 24*time.Hour:
		return 5
	case age <= 3*24*time.Hour:
		return 4
	case age <= 7*24*time.Hour:
		return 3
	case age <= 14*24*time.Hour:
		return 2
	case age <= 30*24*time.Hour:
		return 1
	default:
		return 0
	}
}

// ComputeDataQuality counts populated fields, 0..5.
func ComputeDataQuality(p job.Posting) float64 {
	score := 0.0
	if strings.TrimSpace(p.Title) != "" {
		score++
	}
	if strings.TrimSpace(p.Company) != "" {
		score++
	}
	if strings.TrimSpace(p.Location) != "" {
		score++
	}
	if len(strings.TrimSpace(p.Description)) > 100 {
		score++
	}
	if strings.TrimSpace(p.ApplyURL) != "" {
		score++
	}
	return score
}

func ScoreJob(p job.Posting, queryVariants []string, now time.Time) JobScore {
	rel := ComputeRelevance(p, queryVariants)
	fresh := ComputeFreshness(p, now)
	qual := ComputeDataQuality(p)

	return JobScore{
		Relevance:   rel,
		Freshness:   fresh,
		DataQuality: qual,
		FinalScore:  (rel * 2.0) + (fresh * 1.5) + (qual * 0.5),
	}
}

// RankJobs orders postings by descending score. Ties keep input order.
func RankJobs(jobs []job.Posting, queryVariants []string, now time.Time) []job.Posting {
	if len(jobs) == 0 {
		return jobs
	}

	type scored struct {
		idx   int
		score float64
	}
	items := make([]scored, len(jobs))
	for i := range jobs {
		items[i] = scored{idx: i, score: ScoreJob(jobs[i], queryVariants, now).FinalScore}
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].score > items[j].score
	})

	out := make([]job.Posting, 0, len(jobs))
	for _, it := range items {
		out = append(out, jobs[it.idx])
	}
	return out
}

// FilterRelevant keeps postings with non-zero relevance to the variants, or
// matching location when locationQuery is set. An empty variant list keeps all.
func FilterRelevant(jobs []job.Posting, queryVariants []string, locationQuery string) []job.Posting {
	locationQuery = strings.ToLower(strings.TrimSpace(locationQuery))
	out := make([]job.Posting, 0, len(jobs))
	for _, p := range jobs {
		if len(queryVariants) > 0 && ComputeRelevance(p, queryVariants) == 0 {
			continue
		}
		if locationQuery != "" && !locationMatches(p, locationQuery) {
			continue
		}
		out = append(out, p)
	}
	return out
}

func locationMatches(p job.Posting, q string) bool {
	loc := strings.ToLower(p.Location)
	if strings.Contains(loc, q) {
		return true
	}
	return p.Remote && q == "remote"
}
