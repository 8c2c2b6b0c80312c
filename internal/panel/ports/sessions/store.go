// Package sessions определяет интерфейс хранилища сессий.
package sessions

import (
	"context"

	"userpanel/internal/panel/domain/entities"
)

// Store определяет внешнее key-value хранилище сессий с idle-таймаутом.
type Store interface {
	// Create сохраняет сессию и возвращает новый непрозрачный токен.
	Create(ctx context.Context, session entities.Session) (string, error)

	// Get возвращает сессию по токену и продлевает ее idle-таймаут.
	// Для неизвестного или истекшего токена возвращает (nil, nil).
	Get(ctx context.Context, token string) (*entities.Session, error)

	// Destroy удаляет сессию; идемпотентна для несуществующего токена.
	Destroy(ctx context.Context, token string) error
}
