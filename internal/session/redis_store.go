package session

import (
	"context"
	"errors"

	"github.com/frontandrew/workshop/internal/pkg/redis"
	redisv9 "github.com/redis/go-redis/v9"
)

const tokenKey = "workshop:session:token"

// RedisStore хранит токен в Redis - общий слот для терминалов мастерской,
// у которых нет своей файловой системы для состояния.
type RedisStore struct {
	cache *redis.Client
}

// NewRedisStore создает Redis хранилище токена.
func NewRedisStore(cache *redis.Client) *RedisStore {
	return &RedisStore{cache: cache}
}

func (s *RedisStore) Load(ctx context.Context) (string, error) {
	token, err := s.cache.Get(ctx, tokenKey)
	if err != nil {
		if errors.Is(err, redisv9.Nil) {
			return "", nil
		}
		return "", err
	}
	return token, nil
}

func (s *RedisStore) Save(ctx context.Context, token string) error {
	// Без TTL: срок жизни ограничивает exp самого токена
	return s.cache.Set(ctx, tokenKey, token, 0)
}

func (s *RedisStore) Delete(ctx context.Context) error {
	return s.cache.Del(ctx, tokenKey)
}
