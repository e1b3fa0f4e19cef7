package services

import "errors"

// Ошибки ядра графа связей. Сервисы заворачивают их через fmt.Errorf("%w: ..."),
// хэндлеры маппят на HTTP-статусы через errors.Is.
var (
	ErrInvalidOperation = errors.New("invalid operation")
	ErrForbidden        = errors.New("forbidden")
	ErrNotFound         = errors.New("not found")
	ErrInvalidState     = errors.New("invalid state")
	ErrConflict         = errors.New("conflict")
)
