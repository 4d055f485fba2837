package ai

import (
	"context"
	"fmt"
)

// Provider is the interface that all LLM providers must implement.
type Provider interface {
	// RewriteHeadline returns a more engaging headline for one article,
	// written in the style of the article's excitement tier.
	RewriteHeadline(ctx context.Context, req HeadlineRequest) (string, error)

	// Answer responds conversationally to a follow-up question about the
	// given articles. An empty question asks for a general overview.
	Answer(ctx context.Context, question string, articles []ArticleEntry) (string, error)

	// Summarize produces text meant to be read aloud.
	Summarize(ctx context.Context, kind SummaryKind, articles []ArticleEntry) (string, error)
}

// NewProvider creates the appropriate provider based on config.
func NewProvider(cfg ProviderConfig) (Provider, error) {
	switch cfg.Provider {
	case "anthropic":
		return NewAnthropicProvider(cfg.APIKey, cfg.Model), nil
	case "openai":
		return NewOpenAIProvider(cfg.APIKey, cfg.Model), nil
	default:
		return nil, fmt.Errorf("unsupported AI provider: %s", cfg.Provider)
	}
}

// callFunc sends one system/user prompt pair and returns the model's text.
type callFunc func(ctx context.Context, systemPrompt, userPrompt string) (string, error)

func rewriteHeadline(ctx context.Context, call callFunc, req HeadlineRequest) (string, error) {
	systemPrompt, userPrompt := HeadlinePrompt(req)
	text, err := call(ctx, systemPrompt, userPrompt)
	if err != nil {
		return "", err
	}
	headline := cleanHeadline(text)
	if headline == "" {
		return "", fmt.Errorf("empty headline returned")
	}
	return headline, nil
}

func answer(ctx context.Context, call callFunc, question string, articles []ArticleEntry) (string, error) {
	systemPrompt, userPrompt := AnswerPrompt(question, articles)
	text, err := call(ctx, systemPrompt, userPrompt)
	if err != nil {
		return "", err
	}
	return trimResponse(text), nil
}

func summarize(ctx context.Context, call callFunc, kind SummaryKind, articles []ArticleEntry) (string, error) {
	systemPrompt, userPrompt := AudioSummaryPrompt(kind, articles)
	text, err := call(ctx, systemPrompt, userPrompt)
	if err != nil {
		return "", err
	}
	return trimResponse(text), nil
}
