package routes

import (
	"resume-coach/internal/delivery/http/handler"
	v1 "resume-coach/internal/delivery/http/routes/v1"

	"github.com/gofiber/fiber/v3"
)

// AnalyzePath is the upload route; oversized bodies on it get the upload
// error instead of a bare 413.
const AnalyzePath = "/api/v1/resume/analyze"

type Registry struct {
	health *handler.HealthHandler
	v1     v1.Handlers
}

func NewRegistry(health *handler.HealthHandler, handlers v1.Handlers) *Registry {
	return &Registry{health: health, v1: handlers}
}

func (r *Registry) Register(app *fiber.App) {
	if app == nil {
		return
	}

	r.registerHealth(app)
	r.registerAPI(app)
}

func (r *Registry) registerHealth(app *fiber.App) {
	if r.health != nil {
		r.health.RegisterRoutes(app)
	}
}

func (r *Registry) registerAPI(app *fiber.App) {
	api := app.Group("/api")
	RegisterV1(api.Group("/v1"), r.v1)
}
