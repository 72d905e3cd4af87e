package dto

import (
	"resume-coach/internal/domain/job"
	"resume-coach/internal/domain/resume"
)

type JobSearchRequest struct {
	Keywords string `json:"keywords"`
	Location string `json:"location"`
	// Page is a pointer so an explicit 0 can be rejected.
	Page *int `json:"page"`
}

type JobSearchResponse struct {
	Jobs  []job.Posting `json:"jobs"`
	Page  int           `json:"page"`
	Total int           `json:"total"`
}

type JobRecommendationRequest struct {
	Analysis *resume.Analysis `json:"analysis"`
	Location string           `json:"location"`
}

type JobRecommendationResponse struct {
	Jobs []job.Recommendation `json:"jobs"`
}
