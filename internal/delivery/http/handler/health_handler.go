package handler

import (
	"resume-coach/internal/delivery/http/dto"
	"resume-coach/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
)

const (
	modeLive    = "live"
	modeOffline = "offline"
)

type HealthHandler struct {
	app      string
	aiLive   bool
	jobsLive bool
}

// NewHealthHandler reports whether the AI provider and the job API are
// configured; offline features serve fallback data.
func NewHealthHandler(appName string, aiLive, jobsLive bool) *HealthHandler {
	return &HealthHandler{app: appName, aiLive: aiLive, jobsLive: jobsLive}
}

func (h *HealthHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/health", h.Health)
}

func (h *HealthHandler) Health(c fiber.Ctx) error {
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.HealthResponse{
		Status:   "ok",
		App:      h.app,
		AIMode:   mode(h.aiLive),
		JobsMode: mode(h.jobsLive),
	})
}

func mode(live bool) string {
	if live {
		return modeLive
	}
	return modeOffline
}
