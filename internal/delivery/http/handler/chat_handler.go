package handler

import (
	"resume-coach/internal/delivery/http/dto"
	"resume-coach/internal/pkg/response"
	"resume-coach/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type ChatHandler struct {
	uc usecase.ChatUsecase
}

func NewChatHandler(uc usecase.ChatUsecase) *ChatHandler {
	return &ChatHandler{uc: uc}
}

func (h *ChatHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Post("/chat", h.Chat)
}

func (h *ChatHandler) Chat(c fiber.Ctx) error {
	var req dto.ChatRequest
	if err := c.Bind().Body(&req); err != nil {
		return invalidBody(err)
	}

	history := make([]usecase.ChatTurn, 0, len(req.History))
	for _, m := range req.History {
		history = append(history, usecase.ChatTurn{Role: m.Role, Content: m.Content})
	}

	out, err := h.uc.Reply(c.Context(), usecase.ChatInput{Message: req.Message, History: history})
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.ChatResponse{Response: out.Response})
}
