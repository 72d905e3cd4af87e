package handler

import (
	"errors"
	"io"
	"strconv"

	"resume-coach/internal/delivery/http/dto"
	"resume-coach/internal/delivery/http/middleware"
	"resume-coach/internal/pkg/response"
	"resume-coach/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

const (
	resumeFormField     = "file"
	defaultHistoryLimit = 20
)

type ResumeHandler struct {
	analysis   usecase.ResumeAnalysisUsecase
	generation usecase.ResumeGenerationUsecase
	maxBytes   int64
}

func NewResumeHandler(analysis usecase.ResumeAnalysisUsecase, generation usecase.ResumeGenerationUsecase, maxBytes int64) *ResumeHandler {
	return &ResumeHandler{analysis: analysis, generation: generation, maxBytes: maxBytes}
}

func (h *ResumeHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Post("/analyze", h.Analyze)
	r.Get("/analyses", h.History)
	r.Post("/generate", h.Generate)
}

func (h *ResumeHandler) Analyze(c fiber.Ctx) error {
	fh, err := c.FormFile(resumeFormField)
	if err != nil || fh == nil || fh.Size == 0 {
		return mapUsecaseError(usecase.ErrFileRequired)
	}
	if h.maxBytes > 0 && fh.Size > h.maxBytes {
		return mapUsecaseError(usecase.ErrFileTooLarge)
	}

	f, err := fh.Open()
	if err != nil {
		return mapUsecaseError(errors.Join(usecase.ErrUnreadableFile, err))
	}
	defer f.Close()

	limit := fh.Size
	if h.maxBytes > 0 {
		limit = h.maxBytes + 1
	}
	data, err := io.ReadAll(io.LimitReader(f, limit))
	if err != nil {
		return mapUsecaseError(errors.Join(usecase.ErrUnreadableFile, err))
	}

	out, err := h.analysis.Analyze(c.Context(), usecase.AnalyzeResumeInput{
		FileName:    fh.Filename,
		ContentType: fh.Header.Get(fiber.HeaderContentType),
		Data:        data,
		UserID:      middleware.UserID(c),
	})
	if err != nil {
		return mapUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.AnalyzeResumeResponse{
		ID:       out.ID,
		FileName: out.FileName,
		Analysis: out.Analysis,
	})
}

func (h *ResumeHandler) History(c fiber.Ctx) error {
	limit := defaultHistoryLimit
	if raw := c.Query("limit"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 1 {
			return mapUsecaseError(errInvalidLimit)
		}
		limit = v
	}

	items, err := h.analysis.History(c.Context(), middleware.UserID(c), limit)
	if err != nil {
		return mapUsecaseError(err)
	}

	out := dto.AnalysisHistoryResponse{Items: make([]dto.AnalysisHistoryItem, 0, len(items))}
	for _, it := range items {
		out.Items = append(out.Items, dto.AnalysisHistoryItem{
			ID:        it.ID,
			FileName:  it.FileName,
			Score:     it.Score,
			Analysis:  it.Analysis,
			CreatedAt: it.CreatedAt,
		})
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}

func (h *ResumeHandler) Generate(c fiber.Ctx) error {
	var req dto.GenerateResumeRequest
	if err := c.Bind().Body(&req); err != nil {
		return invalidBody(err)
	}

	out, err := h.generation.Generate(c.Context(), usecase.GenerateResumeInput{
		JobTitle:   req.JobTitle,
		Experience: req.Experience,
		Skills:     req.Skills,
		UserID:     middleware.UserID(c),
	})
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.GenerateResumeResponse{Content: out.Content})
}

