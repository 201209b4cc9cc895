package openai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"
	"github.com/technokami/adept/internal/logger"
	"go.uber.org/zap"
)

const defaultModel = "gpt-4o-mini"

type chatCompleter interface {
	CreateChatCompletion(ctx context.Context, request openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// Generator adapts an OpenAI-compatible chat endpoint to the ai.Generator
// contract. BaseURL allows pointing it at compatible backends.
type Generator struct {
	client chatCompleter
	model  string
	logger *zap.Logger
}

// NewGenerator creates a Generator for the OpenAI chat completion API.
func NewGenerator(apiKey, baseURL, model string, log *zap.Logger) (*Generator, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("openai api key is required")
	}

	cfg := openai.DefaultConfig(apiKey)
	if baseURL = strings.TrimSpace(baseURL); baseURL != "" {
		cfg.BaseURL = baseURL
	}

	if model = strings.TrimSpace(model); model == "" {
		model = defaultModel
	}

	return &Generator{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
		logger: logger.WithProvider(log, "openai", model),
	}, nil
}

// GenerateContent sends the prompt as a single user message and returns the
// first choice's content.
func (g *Generator) GenerateContent(ctx context.Context, prompt string, temperature float32) (string, error) {
	if g == nil || g.client == nil {
		return "", errors.New("openai generator is not initialized")
	}

	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return "", errors.New("prompt must not be empty")
	}

	req := openai.ChatCompletionRequest{
		Model:       g.model,
		Temperature: temperature,
		N:           1,
		Messages: []openai.ChatCompletionMessage{{
			Role:    openai.ChatMessageRoleUser,
			Content: prompt,
		}},
	}

	resp, err := g.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", errors.New("openai api returned no choices")
	}

	output := strings.TrimSpace(resp.Choices[0].Message.Content)
	if output == "" {
		return "", errors.New("openai api returned empty response")
	}

	g.logger.Debug("openai chat completion",
		zap.Int("prompt_length", len(prompt)),
		zap.Int("response_length", len(output)),
	)

	return output, nil
}

func (g *Generator) Model() string {
	if g == nil {
		return ""
	}
	return g.model
}
