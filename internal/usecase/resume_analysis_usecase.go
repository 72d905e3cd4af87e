package usecase

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"resume-coach/internal/domain/resume"
	"resume-coach/internal/fallback"
	"resume-coach/internal/infrastructure/ai"
	"resume-coach/internal/infrastructure/document"
	"resume-coach/internal/infrastructure/events"
	"resume-coach/internal/infrastructure/storage"
	"resume-coach/internal/repository"
	"resume-coach/internal/search"

	"github.com/google/uuid"
)

const (
	// Resume text beyond this is not sent to the provider.
	maxPromptResumeChars = 20000
	defaultMaxResumeSize = 5 << 20
)

const analysisSystemPrompt = `You are an expert resume reviewer and career coach.
Analyse the resume the user sends and reply with a single JSON object, no prose, shaped as:
{"score": 0-100, "strengths": [string], "weaknesses": [string], "suggestions": [string],
 "sections": {"contact": {"score": 0-100, "feedback": string}, "summary": {...}, "experience": {...},
 "education": {...}, "skills": {...}},
 "skills": [string]}
"skills" lists the concrete skills and technologies the resume mentions.`

const analysisSchema = `{
  "type": "object",
  "required": ["score", "strengths", "weaknesses", "suggestions", "sections"],
  "properties": {
    "score": {"type": "integer", "minimum": 0, "maximum": 100},
    "strengths": {"type": "array", "items": {"type": "string"}},
    "weaknesses": {"type": "array", "items": {"type": "string"}},
    "suggestions": {"type": "array", "items": {"type": "string"}},
    "skills": {"type": "array", "items": {"type": "string"}},
    "sections": {
      "type": "object",
      "required": ["contact", "summary", "experience", "education", "skills"],
      "properties": {
        "contact": {"$ref": "#/definitions/section"},
        "summary": {"$ref": "#/definitions/section"},
        "experience": {"$ref": "#/definitions/section"},
        "education": {"$ref": "#/definitions/section"},
        "skills": {"$ref": "#/definitions/section"}
      }
    }
  },
  "definitions": {
    "section": {
      "type": "object",
      "required": ["score", "feedback"],
      "properties": {
        "score": {"type": "integer", "minimum": 0, "maximum": 100},
        "feedback": {"type": "string"}
      }
    }
  }
}`

type AnalyzeResumeInput struct {
	FileName    string
	ContentType string
	Data        []byte
	UserID      string
}

type AnalyzeResumeOutput struct {
	ID       string
	FileName string
	Analysis resume.Analysis
	Fallback bool
}

type ResumeAnalysisUsecase interface {
	Analyze(ctx context.Context, in AnalyzeResumeInput) (AnalyzeResumeOutput, error)
	History(ctx context.Context, userID string, limit int) ([]resume.Record, error)
}

type ResumeAnalysis struct {
	ai       ai.Generator
	store    storage.ObjectStore
	repo     repository.AnalysisRepository
	events   events.Publisher
	maxBytes int64
	logger   *log.Logger
	now      func() time.Time
}

type ResumeAnalysisDeps struct {
	AI       ai.Generator
	Store    storage.ObjectStore
	Repo     repository.AnalysisRepository
	Events   events.Publisher
	MaxBytes int64
	Logger   *log.Logger
}

// NewResumeAnalysisUsecase builds the analysis flow. Every dependency is
// optional; missing ones are skipped.
func NewResumeAnalysisUsecase(d ResumeAnalysisDeps) *ResumeAnalysis {
	if d.Repo == nil {
		d.Repo = repository.NoopAnalysisRepository{}
	}
	if d.Events == nil {
		d.Events = events.Noop{}
	}
	if d.MaxBytes <= 0 {
		d.MaxBytes = defaultMaxResumeSize
	}
	return &ResumeAnalysis{
		ai:       d.AI,
		store:    d.Store,
		repo:     d.Repo,
		events:   d.Events,
		maxBytes: d.MaxBytes,
		logger:   d.Logger,
		now:      time.Now,
	}
}

func (u *ResumeAnalysis) Analyze(ctx context.Context, in AnalyzeResumeInput) (AnalyzeResumeOutput, error) {
	if len(in.Data) == 0 {
		return AnalyzeResumeOutput{}, ErrFileRequired
	}
	if int64(len(in.Data)) > u.maxBytes {
		return AnalyzeResumeOutput{}, ErrFileTooLarge
	}

	mimeType, err := document.DetectType(in.FileName, in.ContentType, in.Data)
	if err != nil {
		return AnalyzeResumeOutput{}, ErrUnsupportedFile
	}
	text, err := document.ExtractText(mimeType, in.Data)
	if err != nil {
		u.logf("[Resume] Extract failed | file=%q type=%s err=%v", in.FileName, mimeType, err)
		return AnalyzeResumeOutput{}, ErrUnreadableFile
	}

	out := AnalyzeResumeOutput{ID: uuid.NewString(), FileName: in.FileName}
	out.Analysis, out.Fallback = u.analyze(ctx, text)
	if len(out.Analysis.Skills) == 0 {
		out.Analysis.Skills = search.ExtractSkills(text)
	}

	storageKey := u.storeRaw(ctx, out.ID, in)

	rec := resume.Record{
		ID:         out.ID,
		UserID:     in.UserID,
		FileName:   in.FileName,
		StorageKey: storageKey,
		Score:      out.Analysis.Score,
		Analysis:   out.Analysis,
		Fallback:   out.Fallback,
		CreatedAt:  u.now().UTC(),
	}
	if err := u.repo.Save(ctx, rec); err != nil {
		u.logf("[Resume] Save history failed | id=%s err=%v", out.ID, err)
	}

	evt := events.New(events.TypeResumeAnalyzed, in.UserID, map[string]any{
		"analysis_id": out.ID,
		"file_name":   in.FileName,
		"score":       out.Analysis.Score,
		"fallback":    out.Fallback,
	})
	if err := u.events.Publish(ctx, evt); err != nil {
		u.logf("[Resume] Publish %s failed: %v", evt.Type, err)
	}

	return out, nil
}

// analyze asks the provider for a structured analysis. The bool reports
// whether the static fallback was used.
func (u *ResumeAnalysis) analyze(ctx context.Context, text string) (resume.Analysis, bool) {
	if u.ai == nil {
		return fallback.Analysis(), true
	}

	if r := []rune(text); len(r) > maxPromptResumeChars {
		text = string(r[:maxPromptResumeChars])
	}

	raw, err := u.ai.Generate(ctx, ai.Prompt{
		System:   analysisSystemPrompt,
		Messages: []ai.Message{{Role: ai.RoleUser, Content: text}},
		JSON:     true,
	})
	if err == nil {
		var a resume.Analysis
		if err = ai.DecodeJSON(raw, analysisSchema, &a); err == nil {
			return a.Normalize(), false
		}
	}
	u.logf("[Resume] AI analysis failed, using fallback: %v", err)
	return fallback.Analysis(), true
}

func (u *ResumeAnalysis) storeRaw(ctx context.Context, id string, in AnalyzeResumeInput) string {
	if u.store == nil {
		return ""
	}
	key := storage.ResumeKey(id, in.FileName)
	if err := u.store.Put(ctx, key, in.ContentType, in.Data); err != nil {
		u.logf("[Resume] Store upload failed | key=%s err=%v", key, err)
		return ""
	}
	return key
}

func (u *ResumeAnalysis) History(ctx context.Context, userID string, limit int) ([]resume.Record, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return []resume.Record{}, nil
	}
	if limit < 0 {
		return nil, ErrInvalidInput
	}
	items, err := u.repo.ListByUser(ctx, userID, limit)
	if err != nil {
		u.logf("[Resume] List history failed | user=%s err=%v", userID, err)
		return nil, errors.Join(ErrInternal, err)
	}
	return items, nil
}

func (u *ResumeAnalysis) logf(format string, args ...any) {
	if u.logger != nil {
		u.logger.Printf(format, args...)
	}
}

var _ ResumeAnalysisUsecase = (*ResumeAnalysis)(nil)
