package dto

import (
	"time"

	"resume-coach/internal/domain/resume"
)

type AnalyzeResumeResponse struct {
	ID       string          `json:"id"`
	FileName string          `json:"file_name"`
	Analysis resume.Analysis `json:"analysis"`
}

type AnalysisHistoryItem struct {
	ID        string          `json:"id"`
	FileName  string          `json:"file_name"`
	Score     int             `json:"score"`
	Analysis  resume.Analysis `json:"analysis"`
	CreatedAt time.Time       `json:"created_at"`
}

type AnalysisHistoryResponse struct {
	Items []AnalysisHistoryItem `json:"items"`
}

type GenerateResumeRequest struct {
	JobTitle   string   `json:"job_title"`
	Experience string   `json:"experience"`
	Skills     []string `json:"skills"`
}

type GenerateResumeResponse struct {
	Content string `json:"content"`
}
