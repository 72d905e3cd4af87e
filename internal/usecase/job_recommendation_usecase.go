package usecase

import (
	"context"
	"log"
	"sort"
	"strings"
	"time"

	"resume-coach/internal/domain/job"
	"resume-coach/internal/domain/matching"
	"resume-coach/internal/domain/resume"
	"resume-coach/internal/search"
)

const (
	MaxRecommendations = 10
	// Job boards AND the words of a query, so only the leading term is sent
	// upstream. Every term is used for scoring.
	maxQueryTerms = 1
)

type RecommendationParams struct {
	Analysis resume.Analysis
	Location string
}

type JobRecommendationUsecase interface {
	Recommend(ctx context.Context, params RecommendationParams) ([]job.Recommendation, error)
}

type JobRecommendation struct {
	jobs   JobSearchUsecase
	logger *log.Logger
	now    func() time.Time
}

func NewJobRecommendationUsecase(jobs JobSearchUsecase, logger *log.Logger) *JobRecommendation {
	return &JobRecommendation{jobs: jobs, logger: logger, now: time.Now}
}

func (u *JobRecommendation) Recommend(ctx context.Context, params RecommendationParams) ([]job.Recommendation, error) {
	terms := ResumeTerms(params.Analysis)
	if len(terms) == 0 && len(params.Analysis.Feedback()) == 0 && params.Analysis.Score == 0 {
		return nil, ErrAnalysisRequired
	}

	query := strings.Join(head(terms, maxQueryTerms), " ")
	location := strings.TrimSpace(params.Location)
	if query == "" && location == "" {
		// No usable terms; rank whatever the default listing returns.
		location = "remote"
	}

	res, err := u.jobs.Search(ctx, JobSearchParams{Keywords: query, Location: location, Page: 1})
	if err != nil {
		if u.logger != nil {
			u.logger.Printf("[Jobs] Recommendation search failed | query=%q err=%v", query, err)
		}
		return nil, ErrInternal
	}

	return Rank(terms, res.Jobs, u.now()), nil
}

// ResumeTerms merges the skills the analysis reported with the known skills
// mentioned in its feedback.
func ResumeTerms(a resume.Analysis) []string {
	return search.MergeTerms(a.Skills, search.ExtractSkills(a.Feedback()...))
}

// Rank scores postings against terms and returns at most MaxRecommendations,
// highest score first. Equal scores keep input order.
func Rank(terms []string, postings []job.Posting, now time.Time) []job.Recommendation {
	out := make([]job.Recommendation, 0, len(postings))
	for _, p := range postings {
		r := matching.Calculate(terms, p, now)
		out = append(out, job.Recommendation{
			Posting:       p,
			MatchScore:    r.MatchScore,
			MatchedSkills: r.MatchedSkills,
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].MatchScore > out[j].MatchScore
	})
	if len(out) > MaxRecommendations {
		out = out[:MaxRecommendations]
	}
	return out
}

func head(s []string, n int) []string {
	if len(s) > n {
		return s[:n]
	}
	return s
}

var _ JobRecommendationUsecase = (*JobRecommendation)(nil)
