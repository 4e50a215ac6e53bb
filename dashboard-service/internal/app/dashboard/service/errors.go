package service

import "errors"

var (
	// Ошибки бизнес-логики для обработки в handlers
	ErrDatasetNotLoaded = errors.New("dataset not loaded")
	ErrUnknownInterval  = errors.New("unknown trend interval")
)
