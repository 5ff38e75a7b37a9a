// Package content produces quest and boss flavor text with an
// OpenAI-compatible chat completion API.
package content

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"systemos/internal/engine"
)

const (
	DefaultModel      = openai.GPT4oMini
	defaultMaxRetries = 2
)

type Config struct {
	APIKey string
	Model  string
	// BaseURL points the client at an OpenAI-compatible endpoint.
	BaseURL    string
	MaxRetries int
}

// Generator implements engine.ContentGenerator.
type Generator struct {
	client     *openai.Client
	model      string
	maxRetries int
	log        *zap.Logger
}

var _ engine.ContentGenerator = (*Generator)(nil)

// ErrNoAPIKey is returned by New when no key is configured.
var ErrNoAPIKey = errors.New("content generator: no API key configured")

func New(cfg Config, log *zap.Logger) (*Generator, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, ErrNoAPIKey
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = defaultMaxRetries
	}
	if log == nil {
		log = zap.NewNop()
	}

	config := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		config.BaseURL = cfg.BaseURL
	}
	return &Generator{
		client:     openai.NewClientWithConfig(config),
		model:      cfg.Model,
		maxRetries: cfg.MaxRetries,
		log:        log.Named("content"),
	}, nil
}

// GenerateQuestContent asks the model for a JSON object and parses it. The
// caller's context bounds every attempt.
func (g *Generator) GenerateQuestContent(ctx context.Context, req engine.ContentRequest) (*engine.GeneratedContent, error) {
	chat := openai.ChatCompletionRequest{
		Model: g.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: userPrompt(req)},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{Type: openai.ChatCompletionResponseFormatTypeJSONObject},
		Temperature:    0.9,
		MaxTokens:      400,
	}

	var lastErr error
	for attempt := 1; attempt <= g.maxRetries; attempt++ {
		resp, err := g.client.CreateChatCompletion(ctx, chat)
		if err != nil {
			lastErr = fmt.Errorf("chat completion: %w", err)
			if ctx.Err() != nil {
				break
			}
			g.log.Debug("completion attempt failed", zap.Int("attempt", attempt), zap.Error(err))
			continue
		}
		if len(resp.Choices) == 0 {
			lastErr = errors.New("empty response: no choices")
			continue
		}
		c, err := Parse(resp.Choices[0].Message.Content, req)
		if err != nil {
			lastErr = err
			continue
		}
		g.log.Debug("content generated", zap.String("kind", string(req.Kind)), zap.String("title", c.Title))
		return c, nil
	}
	return nil, lastErr
}
