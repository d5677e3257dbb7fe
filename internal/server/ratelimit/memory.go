package ratelimit

import (
	"context"
	"sync"
	"time"
)

// MemoryStore — in-memory реализация Store для одного процесса.
//
// Хранит таймстемпы обращений по ключу и отсекает те,
// что вышли за окно. Подходит при single-instance деплое;
// для нескольких инстансов нужен RedisStore.
type MemoryStore struct {
	mu   sync.Mutex
	hits map[string][]time.Time
	now  func() time.Time
}

// NewMemoryStore создаёт пустое in-memory хранилище счётчиков.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		hits: make(map[string][]time.Time),
		now:  time.Now,
	}
}

// Increment регистрирует обращение и возвращает число обращений в окне.
func (s *MemoryStore) Increment(_ context.Context, key string, window time.Duration) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	cutoff := now.Add(-window)

	kept := s.hits[key][:0]
	for _, t := range s.hits[key] {
		if t.After(cutoff) {
			kept = append(kept, t)
		}
	}
	kept = append(kept, now)
	s.hits[key] = kept

	return len(kept), nil
}

// Reset сбрасывает счётчик ключа.
func (s *MemoryStore) Reset(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.hits, key)
	return nil
}
