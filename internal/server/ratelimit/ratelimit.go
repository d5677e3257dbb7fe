// Package ratelimit реализует ограничение частоты запросов
// по client address скользящим окном.
//
// Счётчики вынесены за интерфейс Store, чтобы in-memory реализацию
// можно было заменить распределённой (redis), не трогая хендлеры.
package ratelimit

import (
	"context"
	"time"
)

// Store — хранилище счётчиков запросов.
//
// Increment регистрирует обращение по ключу и возвращает количество
// обращений внутри окна window (включая текущее).
// Reset сбрасывает счётчик ключа.
type Store interface {
	Increment(ctx context.Context, key string, window time.Duration) (int, error)
	Reset(ctx context.Context, key string) error
}

// Limiter ограничивает число запросов с одного ключа:
// не более max обращений за window.
type Limiter struct {
	store  Store
	window time.Duration
	max    int
}

// NewLimiter создаёт Limiter поверх заданного хранилища счётчиков.
func NewLimiter(store Store, window time.Duration, max int) *Limiter {
	return &Limiter{store: store, window: window, max: max}
}

// Allow регистрирует запрос и сообщает, пропускать ли его.
//
// Ошибка хранилища не блокирует запрос (fail-open): лимитер —
// защитный механизм, а не точка отказа.
func (l *Limiter) Allow(ctx context.Context, key string) (bool, error) {
	count, err := l.store.Increment(ctx, key, l.window)
	if err != nil {
		return true, err
	}
	return count <= l.max, nil
}

// Reset сбрасывает счётчик ключа (используется в тестах и админке).
func (l *Limiter) Reset(ctx context.Context, key string) error {
	return l.store.Reset(ctx, key)
}
