package ai

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"resume-coach/internal/config"

	"google.golang.org/genai"
)

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

var (
	ErrDisabled      = errors.New("ai provider not configured")
	ErrEmptyResponse = errors.New("ai provider returned an empty response")
)

type Message struct {
	Role    string
	Content string
}

type Prompt struct {
	System   string
	Messages []Message
	// JSON asks the provider for an application/json response body.
	JSON bool
}

// Generator produces text for a prompt.
type Generator interface {
	Generate(ctx context.Context, p Prompt) (string, error)
}

type GeminiGenerator struct {
	client  *genai.Client
	model   string
	timeout time.Duration
	logger  *log.Logger
}

func NewGeminiGenerator(ctx context.Context, cfg config.AIConfig, logger *log.Logger) (*GeminiGenerator, error) {
	if !cfg.Enabled() {
		return nil, ErrDisabled
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return &GeminiGenerator{client: client, model: cfg.Model, timeout: cfg.Timeout, logger: logger}, nil
}

func (g *GeminiGenerator) Generate(ctx context.Context, p Prompt) (string, error) {
	if g == nil || g.client == nil {
		return "", ErrDisabled
	}
	if len(p.Messages) == 0 {
		return "", errors.New("empty prompt")
	}

	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	contents := make([]*genai.Content, 0, len(p.Messages))
	for _, m := range p.Messages {
		text := strings.TrimSpace(m.Content)
		if text == "" {
			continue
		}
		role := string(genai.RoleUser)
		if m.Role == RoleAssistant {
			role = string(genai.RoleModel)
		}
		contents = append(contents, &genai.Content{Role: role, Parts: []*genai.Part{{Text: text}}})
	}

	gcfg := &genai.GenerateContentConfig{}
	if p.System != "" {
		gcfg.SystemInstruction = &genai.Content{Parts: []*genai.Part{{Text: p.System}}}
	}
	if p.JSON {
		gcfg.ResponseMIMEType = "application/json"
	}

	start := time.Now()
	resp, err := g.client.Models.GenerateContent(ctx, g.model, contents, gcfg)
	if err != nil {
		if g.logger != nil {
			g.logger.Printf("[AI] GenerateContent error model=%s latency=%s err=%v", g.model, time.Since(start), err)
		}
		return "", fmt.Errorf("generate content: %w", err)
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", ErrEmptyResponse
	}
	if g.logger != nil {
		g.logger.Printf("[AI] GenerateContent ok model=%s latency=%s chars=%d", g.model, time.Since(start), len(text))
	}
	return text, nil
}

var _ Generator = (*GeminiGenerator)(nil)
