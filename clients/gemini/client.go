package gemini

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/genai"

	"warabibot/clients"
)

const requestTimeout = 10 * time.Second

// GeminiClient implements the clients.CompletionClient interface using the
// Gemini API.
type GeminiClient struct {
	client *genai.Client
	model  string
}

// NewGeminiClient creates a new Gemini completion client
func NewGeminiClient(ctx context.Context, apiKey, model string) (clients.CompletionClient, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &GeminiClient{client: client, model: model}, nil
}

// GenerateCompletion submits the prompt and returns the generated text.
// Each call carries its own bounded timeout; failures are returned verbatim
// and never retried here.
func (c *GeminiClient) GenerateCompletion(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	resp, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("failed to generate completion: %w", err)
	}

	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("completion response contained no text")
	}
	return text, nil
}
