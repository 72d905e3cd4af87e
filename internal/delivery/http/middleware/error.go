package middleware

import (
	"errors"
	"log"
	"strings"

	"resume-coach/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
)

// AppError carries the status and client-facing message for a failed request.
// Cause is logged, never sent.
type AppError struct {
	StatusCode int
	Message    string
	Data       any
	Cause      error
}

func (e *AppError) Error() string {
	if e == nil {
		return ""
	}
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

func NewAppError(statusCode int, message string, data any, cause error) *AppError {
	return &AppError{StatusCode: statusCode, Message: message, Data: data, Cause: cause}
}

type ErrorMiddleware struct {
	logger    *log.Logger
	oversized map[string]*AppError
}

func NewErrorMiddleware(logger *log.Logger) *ErrorMiddleware {
	if logger == nil {
		logger = log.Default()
	}
	return &ErrorMiddleware{logger: logger, oversized: make(map[string]*AppError)}
}

// OversizedBody replaces the generic 413 for path when the server rejects a
// body above its BodyLimit before any handler runs.
func (m *ErrorMiddleware) OversizedBody(path string, status int, message string) {
	m.oversized[routeKey(path)] = NewAppError(status, message, nil, nil)
}

func (m *ErrorMiddleware) Middleware() fiber.Handler {
	return func(c fiber.Ctx) (err error) {
		defer func() {
			if r := recover(); r != nil {
				m.logger.Printf("[HTTP] panic recovered | rid=%s path=%s panic=%v", requestID(c), c.Path(), r)
				err = response.Error(c, fiber.StatusInternalServerError, response.MessageInternalServerError, nil)
			}
		}()

		err = c.Next()
		if err == nil {
			return nil
		}
		return m.write(c, err)
	}
}

// ErrorHandler renders errors raised outside the middleware chain, such as
// an oversized body or an unmatched route, in the same envelope.
func (m *ErrorMiddleware) ErrorHandler() fiber.ErrorHandler {
	return func(c fiber.Ctx, err error) error {
		return m.write(c, err)
	}
}

func (m *ErrorMiddleware) write(c fiber.Ctx, err error) error {
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) && fiberErr.Code == fiber.StatusRequestEntityTooLarge {
		if appErr, ok := m.oversized[routeKey(c.Path())]; ok {
			err = appErr
		}
	}

	status, msg, data := normalizeError(err)
	if status >= fiber.StatusInternalServerError {
		m.logger.Printf("[HTTP] request failed | rid=%s method=%s path=%s err=%v", requestID(c), c.Method(), c.Path(), err)
	}
	return response.Error(c, status, msg, data)
}

func normalizeError(err error) (int, string, any) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		status := appErr.StatusCode
		if status <= 0 || status >= 500 {
			return fiber.StatusInternalServerError, response.MessageInternalServerError, nil
		}
		msg := appErr.Message
		if msg == "" {
			msg = response.MessageForStatus(status)
		}
		return status, msg, appErr.Data
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		status := fiberErr.Code
		if status <= 0 || status >= 500 {
			return fiber.StatusInternalServerError, response.MessageInternalServerError, nil
		}
		// fiber's own texts are title-cased; keep the envelope wording uniform.
		return status, response.MessageForStatus(status), nil
	}

	return fiber.StatusInternalServerError, response.MessageInternalServerError, nil
}

func routeKey(path string) string {
	if p := strings.TrimRight(path, "/"); p != "" {
		return p
	}
	return "/"
}

func requestID(c fiber.Ctx) string {
	if rid, ok := c.Locals(CtxRequestIDKey).(string); ok {
		return rid
	}
	return c.Get(HeaderRequestID)
}
