package usecase

import (
	"context"
	"fmt"
	"log"
	"strings"

	"resume-coach/internal/fallback"
	"resume-coach/internal/infrastructure/ai"
	"resume-coach/internal/infrastructure/events"
)

const maxGenerateSkills = 30

const generateSystemPrompt = `You write resume content. Produce a professional summary, three to five
achievement bullet points and a core skills list for the role described by the user.
Use plain text with the headings PROFESSIONAL SUMMARY, KEY ACHIEVEMENTS and CORE SKILLS.
Do not invent employers, dates or degrees.`

type GenerateResumeInput struct {
	JobTitle   string
	Experience string
	Skills     []string
	UserID     string
}

type GenerateResumeOutput struct {
	Content  string
	Fallback bool
}

type ResumeGenerationUsecase interface {
	Generate(ctx context.Context, in GenerateResumeInput) (GenerateResumeOutput, error)
}

type ResumeGeneration struct {
	ai     ai.Generator
	events events.Publisher
	logger *log.Logger
}

func NewResumeGenerationUsecase(gen ai.Generator, publisher events.Publisher, logger *log.Logger) *ResumeGeneration {
	if publisher == nil {
		publisher = events.Noop{}
	}
	return &ResumeGeneration{ai: gen, events: publisher, logger: logger}
}

func (u *ResumeGeneration) Generate(ctx context.Context, in GenerateResumeInput) (GenerateResumeOutput, error) {
	in.JobTitle = strings.TrimSpace(in.JobTitle)
	if in.JobTitle == "" {
		return GenerateResumeOutput{}, ErrJobTitleRequired
	}
	in.Experience = strings.TrimSpace(in.Experience)
	in.Skills = cleanSkills(in.Skills)

	out := GenerateResumeOutput{}
	if u.ai != nil {
		text, err := u.ai.Generate(ctx, ai.Prompt{
			System:   generateSystemPrompt,
			Messages: []ai.Message{{Role: ai.RoleUser, Content: generatePrompt(in)}},
		})
		if err == nil && strings.TrimSpace(text) == "" {
			err = ai.ErrEmptyResponse
		}
		if err != nil {
			u.logf("[Resume] AI generation failed, using template: %v", err)
		} else {
			out.Content = strings.TrimSpace(text)
		}
	}
	if out.Content == "" {
		out.Content = fallback.ResumeContent(in.JobTitle, in.Experience, in.Skills)
		out.Fallback = true
	}

	evt := events.New(events.TypeResumeGenerated, in.UserID, map[string]any{
		"job_title": in.JobTitle,
		"skills":    in.Skills,
		"fallback":  out.Fallback,
	})
	if err := u.events.Publish(ctx, evt); err != nil {
		u.logf("[Resume] Publish %s failed: %v", evt.Type, err)
	}
	return out, nil
}

func generatePrompt(in GenerateResumeInput) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Target role: %s\n", in.JobTitle)
	if in.Experience != "" {
		fmt.Fprintf(&b, "Experience: %s\n", in.Experience)
	}
	if len(in.Skills) > 0 {
		fmt.Fprintf(&b, "Skills: %s\n", strings.Join(in.Skills, ", "))
	}
	return b.String()
}

func cleanSkills(skills []string) []string {
	out := make([]string, 0, len(skills))
	seen := make(map[string]struct{}, len(skills))
	for _, s := range skills {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		k := strings.ToLower(s)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, s)
		if len(out) == maxGenerateSkills {
			break
		}
	}
	return out
}

func (u *ResumeGeneration) logf(format string, args ...any) {
	if u.logger != nil {
		u.logger.Printf(format, args...)
	}
}

var _ ResumeGenerationUsecase = (*ResumeGeneration)(nil)
