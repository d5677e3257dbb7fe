package ratelimit

import (
	"context"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// RedisStore — распределённая реализация Store поверх redis.
//
// Скользящее окно реализовано на sorted set: score — время обращения,
// member — uuid обращения. Устаревшие записи вычищаются при каждом
// инкременте, ключ живёт не дольше окна.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore создаёт Store поверх готового redis-клиента.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

// Increment регистрирует обращение и возвращает число обращений в окне.
func (s *RedisStore) Increment(ctx context.Context, key string, window time.Duration) (int, error) {
	now := time.Now()
	cutoff := strconv.FormatInt(now.Add(-window).UnixNano(), 10)

	pipe := s.client.TxPipeline()
	pipe.ZRemRangeByScore(ctx, key, "0", cutoff)
	pipe.ZAdd(ctx, key, redis.Z{
		Score:  float64(now.UnixNano()),
		Member: uuid.NewString(),
	})
	card := pipe.ZCard(ctx, key)
	pipe.Expire(ctx, key, window)

	if _, err := pipe.Exec(ctx); err != nil {
		return 0, err
	}

	return int(card.Val()), nil
}

// Reset сбрасывает счётчик ключа.
func (s *RedisStore) Reset(ctx context.Context, key string) error {
	return s.client.Del(ctx, key).Err()
}
