package response

import "github.com/gofiber/fiber/v3"

// SemanticResponse is the envelope every endpoint answers with.
type SemanticResponse struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
	Data    any    `json:"data"`
}

const (
	MessageOK                    = "ok"
	MessageBadRequest            = "bad request"
	MessageInvalidBody           = "invalid request body"
	MessageNotFound              = "not found"
	MessageMethodNotAllowed      = "method not allowed"
	MessageRequestEntityTooLarge = "request entity too large"
	MessageInternalServerError   = "internal server error"
	MessageError                 = "error"
)

func Success(c fiber.Ctx, status int, message string, data any) error {
	return write(c, status, message, data)
}

func Error(c fiber.Ctx, status int, message string, data any) error {
	return write(c, status, message, data)
}

func write(c fiber.Ctx, status int, message string, data any) error {
	if status < 100 || status > 599 {
		status = fiber.StatusInternalServerError
	}
	if message == "" {
		message = MessageForStatus(status)
	}
	return c.Status(status).JSON(SemanticResponse{Status: status, Message: message, Data: data})
}

// MessageForStatus is the default message when a handler gives none.
func MessageForStatus(status int) string {
	switch status {
	case fiber.StatusOK, fiber.StatusCreated:
		return MessageOK
	case fiber.StatusBadRequest:
		return MessageBadRequest
	case fiber.StatusNotFound:
		return MessageNotFound
	case fiber.StatusMethodNotAllowed:
		return MessageMethodNotAllowed
	case fiber.StatusRequestEntityTooLarge:
		return MessageRequestEntityTooLarge
	}
	if status >= 500 {
		return MessageInternalServerError
	}
	return MessageError
}
