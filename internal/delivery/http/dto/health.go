package dto

type HealthResponse struct {
	Status   string `json:"status"`
	App      string `json:"app"`
	AIMode   string `json:"ai_mode"`
	JobsMode string `json:"jobs_mode"`
}
