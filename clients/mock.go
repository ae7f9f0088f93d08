package clients

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockCompletionClient is a mock implementation of the CompletionClient interface
type MockCompletionClient struct {
	mock.Mock
}

func (m *MockCompletionClient) GenerateCompletion(ctx context.Context, prompt string) (string, error) {
	args := m.Called(ctx, prompt)
	return args.String(0), args.Error(1)
}
