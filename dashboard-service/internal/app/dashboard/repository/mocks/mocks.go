package mocks

import (
	"context"

	"github.com/hgrubina/business-intelligence-suite/dashboard-service/internal/app/dashboard/entity"

	"github.com/stretchr/testify/mock"
)

// MockDatasetRepository мок для DatasetRepository
type MockDatasetRepository struct {
	mock.Mock
}

func (m *MockDatasetRepository) LoadDataset(ctx context.Context) (*entity.Dataset, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Dataset), args.Error(1)
}
