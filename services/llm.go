package services

import (
	"context"
	"fmt"
	"os"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
	"github.com/tmc/langchaingo/schema"
)

// DesignGenerator produces a restyled HTML document from a stored template
// and an enhanced style prompt. Implemented by the OpenAI-backed client;
// tests substitute fakes.
type DesignGenerator interface {
	GenerateDesign(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// OpenAIGenerator dispatches design generation to OpenAI through langchaingo.
type OpenAIGenerator struct {
	llm *openai.LLM
}

// NewOpenAIGenerator builds a generator from OPENAI_API_KEY and an optional
// OPENAI_MODEL override.
func NewOpenAIGenerator() (*OpenAIGenerator, error) {
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY environment variable is not set")
	}

	model := os.Getenv("OPENAI_MODEL")
	if model == "" {
		model = "gpt-4o"
	}

	llm, err := openai.New(
		openai.WithToken(apiKey),
		openai.WithModel(model),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize OpenAI client: %w", err)
	}

	return &OpenAIGenerator{llm: llm}, nil
}

// GenerateDesign sends the system and user prompts as a single chat
// completion and returns the raw model output. Callers own sanitization and
// validation of the returned text.
func (g *OpenAIGenerator) GenerateDesign(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	messages := []llms.MessageContent{
		llms.TextParts(schema.ChatMessageTypeSystem, systemPrompt),
		llms.TextParts(schema.ChatMessageTypeHuman, userPrompt),
	}

	resp, err := g.llm.GenerateContent(ctx, messages,
		llms.WithTemperature(0.4),
		llms.WithMaxTokens(8192),
	)
	if err != nil {
		return "", fmt.Errorf("design generation request failed: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no completion choices returned")
	}

	return resp.Choices[0].Content, nil
}
