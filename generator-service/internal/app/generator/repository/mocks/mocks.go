package mocks

import (
	"context"

	"github.com/hgrubina/business-intelligence-suite/generator-service/internal/app/generator/entity"

	"github.com/stretchr/testify/mock"
)

// MockDatasetRepository мок для DatasetRepository
type MockDatasetRepository struct {
	mock.Mock
}

func (m *MockDatasetRepository) SaveDataset(ctx context.Context, dataset *entity.Dataset) error {
	args := m.Called(ctx, dataset)
	return args.Error(0)
}
