package v1

import (
	"resume-coach/internal/delivery/http/handler"

	"github.com/gofiber/fiber/v3"
)

func RegisterResume(r fiber.Router, resumeHandler *handler.ResumeHandler) {
	if r == nil || resumeHandler == nil {
		return
	}
	resumeHandler.RegisterRoutes(r)
}

func RegisterChat(r fiber.Router, chatHandler *handler.ChatHandler) {
	if r == nil || chatHandler == nil {
		return
	}
	chatHandler.RegisterRoutes(r)
}
