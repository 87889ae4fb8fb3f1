package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"google.golang.org/genai"
)

type MockGenerator struct {
	mock.Mock
}

func (m *MockGenerator) GenerateJSON(ctx context.Context, model, prompt string, schema *genai.Schema) (string, error) {
	args := m.Called(ctx, model, prompt, schema)

	return args.String(0), args.Error(1)
}
