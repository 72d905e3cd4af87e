package usecase

import (
	"context"
	"log"
	"strings"
	"unicode/utf8"

	"resume-coach/internal/domain/chatbot"
	"resume-coach/internal/infrastructure/ai"
)

const (
	MaxChatMessageLength = 4000
	maxChatHistory       = 10
)

const chatSystemPrompt = `You are a friendly career coach inside a resume-building app.
Help with resumes, job searching, interviews, skills and salary questions.
Answer in plain text, at most three short paragraphs, and stay on career topics.`

type ChatTurn struct {
	Role    string
	Content string
}

type ChatInput struct {
	Message string
	History []ChatTurn
}

type ChatOutput struct {
	Response string
	// Category is set when the keyword responder answered.
	Category chatbot.Category
	Fallback bool
}

type ChatUsecase interface {
	Reply(ctx context.Context, in ChatInput) (ChatOutput, error)
}

type Chat struct {
	ai        ai.Generator
	responder *chatbot.Responder
	logger    *log.Logger
}

// NewChatUsecase answers with the AI generator when one is configured and
// falls back to the keyword responder.
func NewChatUsecase(gen ai.Generator, responder *chatbot.Responder, logger *log.Logger) *Chat {
	if responder == nil {
		responder = chatbot.NewResponder(nil)
	}
	return &Chat{ai: gen, responder: responder, logger: logger}
}

func (u *Chat) Reply(ctx context.Context, in ChatInput) (ChatOutput, error) {
	msg := strings.TrimSpace(in.Message)
	if msg == "" {
		return ChatOutput{}, ErrMessageRequired
	}
	if utf8.RuneCountInString(msg) > MaxChatMessageLength {
		return ChatOutput{}, ErrMessageTooLong
	}

	if u.ai != nil {
		out, err := u.ai.Generate(ctx, ai.Prompt{
			System:   chatSystemPrompt,
			Messages: append(chatHistory(in.History), ai.Message{Role: ai.RoleUser, Content: msg}),
		})
		if err == nil {
			if out = strings.TrimSpace(out); out != "" {
				return ChatOutput{Response: out}, nil
			}
			err = ai.ErrEmptyResponse
		}
		if u.logger != nil {
			u.logger.Printf("[Chat] AI reply failed, using keyword responder: %v", err)
		}
	}

	r := u.responder.Respond(msg)
	return ChatOutput{Response: r.Text, Category: r.Category, Fallback: true}, nil
}

// chatHistory keeps the most recent non-empty turns with known roles.
func chatHistory(turns []ChatTurn) []ai.Message {
	out := make([]ai.Message, 0, maxChatHistory+1)
	if len(turns) > maxChatHistory {
		turns = turns[len(turns)-maxChatHistory:]
	}
	for _, t := range turns {
		content := strings.TrimSpace(t.Content)
		if content == "" {
			continue
		}
		role := ai.RoleUser
		if strings.EqualFold(strings.TrimSpace(t.Role), ai.RoleAssistant) {
			role = ai.RoleAssistant
		}
		out = append(out, ai.Message{Role: role, Content: content})
	}
	return out
}

var _ ChatUsecase = (*Chat)(nil)
