package repository

import (
	"context"
	"errors"

	"github.com/hgrubina/business-intelligence-suite/dashboard-service/internal/app/dashboard/entity"
)

var (
	// ErrDatasetNotFound - файлы датасета отсутствуют, генератор ещё не отработал
	ErrDatasetNotFound = errors.New("dataset not found")
	// ErrMalformedDataset - файлы на месте, но их содержимое не разбирается
	ErrMalformedDataset = errors.New("malformed dataset")
)

// DatasetRepository загружает снимок датасета из внешнего хранилища
type DatasetRepository interface {
	LoadDataset(ctx context.Context) (*entity.Dataset, error)
}
