package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	"resume-coach/internal/infrastructure/events"
)

func TestGenerate_RequiresJobTitle(t *testing.T) {
	uc := NewResumeGenerationUsecase(nil, nil, nil)
	if _, err := uc.Generate(context.Background(), GenerateResumeInput{JobTitle: "  "}); !errors.Is(err, ErrJobTitleRequired) {
		t.Fatalf("expected ErrJobTitleRequired, got %v", err)
	}
}

func TestGenerate_UsesAI(t *testing.T) {
	gen := &fakeGenerator{out: "PROFESSIONAL SUMMARY\nGreat engineer.\n"}
	pub := &fakePublisher{}
	uc := NewResumeGenerationUsecase(gen, pub, nil)

	out, err := uc.Generate(context.Background(), GenerateResumeInput{
		JobTitle:   "Backend Engineer",
		Experience: "5 years",
		Skills:     []string{"Go", "go", " ", "SQL"},
		UserID:     "u1",
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if out.Fallback || out.Content != "PROFESSIONAL SUMMARY\nGreat engineer." {
		t.Fatalf("unexpected output: %+v", out)
	}

	prompt := gen.prompts[0].Messages[0].Content
	if !strings.Contains(prompt, "Target role: Backend Engineer") || !strings.Contains(prompt, "Skills: Go, SQL") {
		t.Fatalf("unexpected prompt: %s", prompt)
	}

	if len(pub.events) != 1 || pub.events[0].Type != events.TypeResumeGenerated || pub.events[0].UserID != "u1" {
		t.Fatalf("unexpected events: %+v", pub.events)
	}
}

func TestGenerate_FallbackTemplate(t *testing.T) {
	uc := NewResumeGenerationUsecase(&fakeGenerator{err: errors.New("timeout")}, &fakePublisher{err: errors.New("broker down")}, nil)

	out, err := uc.Generate(context.Background(), GenerateResumeInput{JobTitle: "Designer", Skills: []string{"Figma"}})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if !out.Fallback {
		t.Fatalf("expected fallback")
	}
	if !strings.Contains(out.Content, "Designer") || !strings.Contains(out.Content, "- Figma") {
		t.Fatalf("unexpected content:\n%s", out.Content)
	}
}

func TestGenerate_OfflineTemplate(t *testing.T) {
	uc := NewResumeGenerationUsecase(nil, nil, nil)
	out, err := uc.Generate(context.Background(), GenerateResumeInput{JobTitle: "Nurse"})
	if err != nil || !out.Fallback || out.Content == "" {
		t.Fatalf("expected template content, got %+v, %v", out, err)
	}
}
