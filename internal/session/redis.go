package session

import (
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "session:"

type RedisStore struct {
	client *redis.Client
	opts   CookieOptions
}

func NewRedisStore(client *redis.Client, opts CookieOptions) *RedisStore {
	return &RedisStore{client: client, opts: opts.withDefaults()}
}

func (s *RedisStore) Get(c *gin.Context) (string, error) {
	token, ok := s.token(c)
	if !ok {
		return "", nil
	}

	username, err := s.client.Get(c.Request.Context(), sessionKey(token)).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read session: %w", err)
	}
	return username, nil
}

// Set issues a fresh token on every login so a token seen before
// authentication never becomes an authenticated one.
func (s *RedisStore) Set(c *gin.Context, username string) error {
	ctx := c.Request.Context()
	if old, ok := s.token(c); ok {
		if err := s.client.Del(ctx, sessionKey(old)).Err(); err != nil {
			return fmt.Errorf("drop previous session: %w", err)
		}
	}

	token := uuid.NewString()
	if err := s.client.Set(ctx, sessionKey(token), username, s.opts.TTL).Err(); err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	s.opts.write(c, token, int(s.opts.TTL.Seconds()))
	return nil
}

func (s *RedisStore) Clear(c *gin.Context) error {
	if token, ok := s.token(c); ok {
		if err := s.client.Del(c.Request.Context(), sessionKey(token)).Err(); err != nil {
			return fmt.Errorf("delete session: %w", err)
		}
	}
	s.opts.expire(c)
	return nil
}

func (s *RedisStore) token(c *gin.Context) (string, bool) {
	raw, err := c.Cookie(s.opts.Name)
	if err != nil {
		return "", false
	}
	if _, err := uuid.Parse(raw); err != nil {
		return "", false
	}
	return raw, true
}

func sessionKey(token string) string {
	return keyPrefix + token
}
