// Package services определяет интерфейсы вспомогательных сервисов.
package services

import "context"

// PasswordService определяет операции для манипулирования паролем.
type PasswordService interface {
	// Hash возвращает необратимый дайджест пароля со встроенной солью.
	Hash(ctx context.Context, password string) (string, error)

	// Verify сообщает, был ли дайджест получен из данного пароля.
	// Некорректный дайджест дает false без ошибки.
	Verify(ctx context.Context, password, hash string) (bool, error)
}
