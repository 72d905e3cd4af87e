package usecase

import "errors"

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrInternal     = errors.New("internal error")

	ErrFileRequired    = errors.New("resume file is required")
	ErrUnsupportedFile = errors.New("unsupported file type")
	ErrFileTooLarge    = errors.New("resume file is too large")
	ErrUnreadableFile  = errors.New("resume file could not be read")

	ErrMessageRequired = errors.New("message is required")
	ErrMessageTooLong  = errors.New("message is too long")

	ErrJobTitleRequired = errors.New("job title is required")

	ErrSearchCriteriaRequired = errors.New("keywords or location is required")
	ErrInvalidPage            = errors.New("page must be a positive integer")

	ErrAnalysisRequired = errors.New("resume analysis is required")
)
