package completion

import (
	"context"
	"fmt"

	"warabibot/clients"
	"warabibot/clients/anthropic"
	"warabibot/clients/gemini"
	"warabibot/config"
)

// NewCompletionClient builds the completion client selected by configuration.
// Returns (nil, nil) when no provider is configured: the AI relay is then
// disabled rather than failing startup.
func NewCompletionClient(ctx context.Context, cfg config.CompletionConfig) (clients.CompletionClient, error) {
	if !cfg.IsConfigured() {
		return nil, nil
	}

	switch cfg.Provider {
	case clients.CompletionProviderGemini:
		return gemini.NewGeminiClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
	case clients.CompletionProviderAnthropic:
		return anthropic.NewAnthropicClient(cfg.AnthropicAPIKey, cfg.AnthropicModel), nil
	default:
		return nil, fmt.Errorf("unknown completion provider: %s", cfg.Provider)
	}
}
