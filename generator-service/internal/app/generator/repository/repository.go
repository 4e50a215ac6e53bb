package repository

import (
	"context"

	"github.com/hgrubina/business-intelligence-suite/generator-service/internal/app/generator/entity"
)

// DatasetRepository сохраняет сгенерированный датасет.
// Ошибка записи не обесценивает датасет: вызывающая сторона сохраняет
// результат в памяти и может повторить запись самостоятельно.
type DatasetRepository interface {
	SaveDataset(ctx context.Context, dataset *entity.Dataset) error
}
