package handler

import (
	"errors"

	"resume-coach/internal/delivery/http/middleware"
	"resume-coach/internal/pkg/response"
	"resume-coach/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

var errInvalidLimit = errors.New("limit must be a positive integer")

// validationErrors are reported to the client with their own text.
var validationErrors = []error{
	usecase.ErrFileRequired,
	usecase.ErrUnsupportedFile,
	usecase.ErrFileTooLarge,
	usecase.ErrUnreadableFile,
	usecase.ErrMessageRequired,
	usecase.ErrMessageTooLong,
	usecase.ErrJobTitleRequired,
	usecase.ErrSearchCriteriaRequired,
	usecase.ErrInvalidPage,
	usecase.ErrAnalysisRequired,
	errInvalidLimit,
}

func mapUsecaseError(err error) error {
	if err == nil {
		return nil
	}
	for _, target := range validationErrors {
		if errors.Is(err, target) {
			return middleware.NewAppError(fiber.StatusBadRequest, target.Error(), nil, err)
		}
	}
	if errors.Is(err, usecase.ErrInvalidInput) {
		return middleware.NewAppError(fiber.StatusBadRequest, response.MessageBadRequest, nil, err)
	}
	return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
}

func invalidBody(err error) error {
	return middleware.NewAppError(fiber.StatusBadRequest, response.MessageInvalidBody, nil, err)
}
