// Package repositories определяет интерфейсы слоя хранения.
package repositories

import (
	"context"

	"userpanel/internal/panel/domain/entities"
)

// UserRepository определяет операции сохранения данных пользователей.
// Все операции чтения видят только неудаленных пользователей.
type UserRepository interface {
	// FindByEmail возвращает неудаленного пользователя с данным email
	// или entities.ErrUserNotFound.
	FindByEmail(ctx context.Context, email string) (*entities.User, error)

	// FindByID возвращает неудаленного пользователя с данным id
	// или entities.ErrUserNotFound.
	FindByID(ctx context.Context, id int64) (*entities.User, error)

	// Create вставляет нового активного пользователя. Возвращает
	// services.ErrEmailAlreadyExists, если email занят неудаленным
	// пользователем; уникальность обеспечивается на уровне хранилища.
	Create(ctx context.Context, name, email, passwordHash string) (*entities.User, error)

	// ListAllVisible возвращает всех неудаленных пользователей,
	// отсортированных по last_login по убыванию; никогда не входившие - в конце.
	ListAllVisible(ctx context.Context) ([]entities.User, error)

	// BulkSetStatus устанавливает статус всем неудаленным пользователям
	// из списка одним атомарным запросом; несуществующие id пропускаются.
	BulkSetStatus(ctx context.Context, ids []int64, status entities.Status) error

	// BulkSoftDelete помечает пользователей удаленными одним атомарным
	// запросом независимо от текущего статуса; повторное удаление - no-op.
	BulkSoftDelete(ctx context.Context, ids []int64) error

	// TouchLastLogin устанавливает last_login = now; no-op для
	// несуществующего id.
	TouchLastLogin(ctx context.Context, id int64) error
}
