// Package sessions содержит Redis-реализацию хранилища сессий.
package sessions

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"userpanel/internal/panel/domain/entities"
	"userpanel/internal/panel/ports/sessions"
	"userpanel/pkg/db/redis"
	"userpanel/pkg/logger"
)

// Префикс ключей сессий в Redis.
const keyPrefix = "session:"

// Константы для сообщений об ошибках.
const (
	ErrorFailedToMarshal = "failed to marshal session"
	ErrorFailedToStore   = "failed to store session"
	ErrorFailedToGet     = "failed to get session"
	ErrorFailedToDelete  = "failed to delete session"
)

// RedisStore реализует интерфейс sessions.Store поверх Redis.
// Каждое успешное чтение продлевает idle-таймаут сессии.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore создает новое хранилище сессий с заданным idle-таймаутом.
func NewRedisStore(client *redis.Client, ttl time.Duration) sessions.Store {
	return &RedisStore{client: client, ttl: ttl}
}

// Create сохраняет сессию под новым непрозрачным токеном.
func (s *RedisStore) Create(ctx context.Context, session entities.Session) (string, error) {
	log := logger.Log(ctx).With(zap.String("store", "sessions"), zap.String("method", "Create"))

	payload, err := json.Marshal(session)
	if err != nil {
		log.Error(ctx, ErrorFailedToMarshal, zap.Error(err))
		return "", fmt.Errorf("%s: %w", ErrorFailedToMarshal, err)
	}

	token := uuid.NewString()
	if err := s.client.Set(ctx, keyPrefix+token, payload, s.ttl); err != nil {
		log.Error(ctx, ErrorFailedToStore, zap.Error(err))
		return "", fmt.Errorf("%s: %w", ErrorFailedToStore, err)
	}

	log.Debug(ctx, "session created", zap.Int64("user_id", session.UserID))
	return token, nil
}

// Get возвращает сессию по токену и заново взводит ее TTL.
// Неизвестный или истекший токен дает (nil, nil).
func (s *RedisStore) Get(ctx context.Context, token string) (*entities.Session, error) {
	log := logger.Log(ctx).With(zap.String("store", "sessions"), zap.String("method", "Get"))

	payload, err := s.client.RawClient().GetEx(ctx, keyPrefix+token, s.ttl).Result()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, nil
		}
		log.Error(ctx, ErrorFailedToGet, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrorFailedToGet, err)
	}

	var session entities.Session
	if err := json.Unmarshal([]byte(payload), &session); err != nil {
		// Нечитаемая запись равносильна отсутствию сессии.
		log.Warn(ctx, "discarding malformed session payload", zap.Error(err))
		return nil, nil
	}

	return &session, nil
}

// Destroy удаляет сессию; отсутствие токена не является ошибкой.
func (s *RedisStore) Destroy(ctx context.Context, token string) error {
	log := logger.Log(ctx).With(zap.String("store", "sessions"), zap.String("method", "Destroy"))

	if err := s.client.Delete(ctx, keyPrefix+token); err != nil {
		log.Error(ctx, ErrorFailedToDelete, zap.Error(err))
		return fmt.Errorf("%s: %w", ErrorFailedToDelete, err)
	}

	return nil
}
