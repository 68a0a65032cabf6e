package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

type ResetCodeRepository interface {
	SetCode(ctx context.Context, email, code string, ttl time.Duration) error
	GetCode(ctx context.Context, email string) (string, error)
	ClearCode(ctx context.Context, email string) error
}

// RedisResetCodeRepository keeps one pending password-reset code per e-mail;
// expiry is left to the key TTL.
type RedisResetCodeRepository struct {
	redis *redis.Client
}

func NewRedisResetCodeRepository(client *redis.Client) *RedisResetCodeRepository {
	return &RedisResetCodeRepository{redis: client}
}

func resetKey(email string) string {
	return "reset:" + email
}

func (r *RedisResetCodeRepository) SetCode(ctx context.Context, email, code string, ttl time.Duration) error {
	return r.redis.Set(ctx, resetKey(email), code, ttl).Err()
}

func (r *RedisResetCodeRepository) GetCode(ctx context.Context, email string) (string, error) {
	code, err := r.redis.Get(ctx, resetKey(email)).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrNotFound
	}
	return code, err
}

func (r *RedisResetCodeRepository) ClearCode(ctx context.Context, email string) error {
	return r.redis.Del(ctx, resetKey(email)).Err()
}
