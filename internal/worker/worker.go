package worker

import (
	"context"
)

// Worker - общий контракт фоновых обработчиков (discovery-воркер и т.п.),
// которыми управляет Manager
type Worker interface {
	// Start запускает воркер и блокируется до остановки
	Start(ctx context.Context) error

	// Stop инициирует остановку воркера
	Stop() error

	// Name возвращает имя воркера для логов
	Name() string
}
