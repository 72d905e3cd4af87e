package v1

import (
	"resume-coach/internal/delivery/http/handler"

	"github.com/gofiber/fiber/v3"
)

type Handlers struct {
	Resume *handler.ResumeHandler
	Chat   *handler.ChatHandler
	Jobs   *handler.JobsHandler
}

func Register(r fiber.Router, h Handlers) {
	if r == nil {
		return
	}

	RegisterResume(r.Group("/resume"), h.Resume)
	RegisterChat(r, h.Chat)
	RegisterJobs(r.Group("/jobs"), h.Jobs)
}
