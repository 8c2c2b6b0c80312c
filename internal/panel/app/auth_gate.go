package app

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"userpanel/internal/panel/domain/entities"
	"userpanel/internal/panel/ports/repositories"
	"userpanel/pkg/logger"
)

const (
	methodIsUserValid = "IsUserValid"

	msgErrCheckUserValidity = "failed to check user validity"

	errCtxCheckingValidity = "checking user validity"
)

// AuthGate решает, может ли запрос с заявленной в сессии личностью продолжаться.
// Каждый вызов перечитывает текущее состояние хранилища: валидность учетной
// записи может измениться после создания сессии.
type AuthGate struct {
	users repositories.UserRepository
}

// NewAuthGate создает новый экземпляр AuthGate.
func NewAuthGate(users repositories.UserRepository) *AuthGate {
	return &AuthGate{users: users}
}

// IsUserValid возвращает true, если неудаленный пользователь с данным id
// существует и его статус Active.
func (g *AuthGate) IsUserValid(ctx context.Context, userID int64) (bool, error) {
	log := logger.Log(ctx).With(zap.String("method", methodIsUserValid), zap.Int64("user_id", userID))

	user, err := g.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, entities.ErrUserNotFound) {
			log.Debug(ctx, "user invisible to auth gate")
			return false, nil
		}
		log.Error(ctx, msgErrCheckUserValidity, zap.Error(err))
		return false, fmt.Errorf("%s: %w", errCtxCheckingValidity, err)
	}

	return !user.IsBlocked(), nil
}
