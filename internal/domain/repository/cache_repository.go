package repository

import (
	"context"
	"time"
)

// CacheRepository определяет методы работы с кешем
type CacheRepository interface {
	// Get возвращает значение по ключу
	Get(ctx context.Context, key string) ([]byte, error)

	// Set сохраняет значение с TTL
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete удаляет значение по ключу
	Delete(ctx context.Context, key string) error

	// Exists проверяет наличие ключа
	Exists(ctx context.Context, key string) (bool, error)
}
