package handler

import (
	"strconv"

	"resume-coach/internal/delivery/http/dto"
	"resume-coach/internal/domain/job"
	"resume-coach/internal/pkg/response"
	"resume-coach/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type JobsHandler struct {
	search    usecase.JobSearchUsecase
	recommend usecase.JobRecommendationUsecase
}

func NewJobsHandler(search usecase.JobSearchUsecase, recommend usecase.JobRecommendationUsecase) *JobsHandler {
	return &JobsHandler{search: search, recommend: recommend}
}

func (h *JobsHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/search", h.SearchQuery)
	r.Post("/search", h.SearchBody)
	r.Post("/recommendations", h.Recommendations)
}

func (h *JobsHandler) SearchQuery(c fiber.Ctx) error {
	page := 1
	if raw := c.Query("page"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 1 {
			return mapUsecaseError(usecase.ErrInvalidPage)
		}
		page = v
	}
	return h.doSearch(c, usecase.JobSearchParams{
		Keywords: c.Query("keywords"),
		Location: c.Query("location"),
		Page:     page,
	})
}

func (h *JobsHandler) SearchBody(c fiber.Ctx) error {
	var req dto.JobSearchRequest
	if err := c.Bind().Body(&req); err != nil {
		return invalidBody(err)
	}
	page := 1
	if req.Page != nil {
		if *req.Page < 1 {
			return mapUsecaseError(usecase.ErrInvalidPage)
		}
		page = *req.Page
	}
	return h.doSearch(c, usecase.JobSearchParams{Keywords: req.Keywords, Location: req.Location, Page: page})
}

func (h *JobsHandler) doSearch(c fiber.Ctx, params usecase.JobSearchParams) error {
	res, err := h.search.Search(c.Context(), params)
	if err != nil {
		return mapUsecaseError(err)
	}
	jobs := res.Jobs
	if jobs == nil {
		jobs = []job.Posting{}
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.JobSearchResponse{
		Jobs:  jobs,
		Page:  res.Page,
		Total: res.Total,
	})
}

func (h *JobsHandler) Recommendations(c fiber.Ctx) error {
	var req dto.JobRecommendationRequest
	if err := c.Bind().Body(&req); err != nil {
		return invalidBody(err)
	}
	if req.Analysis == nil {
		return mapUsecaseError(usecase.ErrAnalysisRequired)
	}

	recs, err := h.recommend.Recommend(c.Context(), usecase.RecommendationParams{
		Analysis: *req.Analysis,
		Location: req.Location,
	})
	if err != nil {
		return mapUsecaseError(err)
	}
	if recs == nil {
		recs = []job.Recommendation{}
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.JobRecommendationResponse{Jobs: recs})
}
