package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"userpanel/internal/panel/domain/entities"
	"userpanel/internal/panel/ports/repositories"
	"userpanel/pkg/logger"
)

const (
	methodListUsers    = "ListUsers"
	methodBlockUsers   = "BlockUsers"
	methodUnblockUsers = "UnblockUsers"
	methodDeleteUsers  = "DeleteUsers"

	msgErrListUsers   = "failed to list users"
	msgErrBlockUsers  = "failed to block users"
	msgErrDeleteUsers = "failed to delete users"

	errCtxListingUsers  = "listing users"
	errCtxBlockingUsers = "updating user status"
	errCtxDeletingUsers = "deleting users"
)

// AdminUseCase оркестрирует массовые операции над учетными записями.
// Оператор может включить собственный id: блокировка или удаление себя
// вступают в силу на следующем запросе, когда Auth Gate их отвергнет.
type AdminUseCase struct {
	users repositories.UserRepository
}

// NewAdminUseCase создает новый экземпляр административного сценария.
func NewAdminUseCase(users repositories.UserRepository) *AdminUseCase {
	return &AdminUseCase{users: users}
}

// ListUsers возвращает видимую отсортированную проекцию пользователей.
func (a *AdminUseCase) ListUsers(ctx context.Context) ([]entities.User, error) {
	log := logger.Log(ctx).With(zap.String("method", methodListUsers))

	users, err := a.users.ListAllVisible(ctx)
	if err != nil {
		log.Error(ctx, msgErrListUsers, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxListingUsers, err)
	}

	return users, nil
}

// BlockUsers блокирует всех неудаленных пользователей из списка.
func (a *AdminUseCase) BlockUsers(ctx context.Context, ids []int64) error {
	return a.setStatus(ctx, methodBlockUsers, ids, entities.StatusBlocked)
}

// UnblockUsers разблокирует всех неудаленных пользователей из списка.
func (a *AdminUseCase) UnblockUsers(ctx context.Context, ids []int64) error {
	return a.setStatus(ctx, methodUnblockUsers, ids, entities.StatusActive)
}

// DeleteUsers помечает пользователей из списка удаленными.
func (a *AdminUseCase) DeleteUsers(ctx context.Context, ids []int64) error {
	log := logger.Log(ctx).With(zap.String("method", methodDeleteUsers))

	if err := a.users.BulkSoftDelete(ctx, ids); err != nil {
		log.Error(ctx, msgErrDeleteUsers, zap.Error(err))
		return fmt.Errorf("%s: %w", errCtxDeletingUsers, err)
	}

	return nil
}

func (a *AdminUseCase) setStatus(ctx context.Context, method string, ids []int64, status entities.Status) error {
	log := logger.Log(ctx).With(zap.String("method", method))

	if err := a.users.BulkSetStatus(ctx, ids, status); err != nil {
		log.Error(ctx, msgErrBlockUsers, zap.Error(err))
		return fmt.Errorf("%s: %w", errCtxBlockingUsers, err)
	}

	return nil
}
