package mocks

import (
	"context"

	"jobspec-miner/internal/models"

	"github.com/stretchr/testify/mock"
)

type MockExtractor struct {
	mock.Mock
}

func (m *MockExtractor) Extract(ctx context.Context, credential, text, model string) (*models.JobInformation, error) {
	args := m.Called(ctx, credential, text, model)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.JobInformation), args.Error(1)
}
