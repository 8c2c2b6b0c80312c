// Package app содержит сценарии использования панели администрирования.
package app

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"go.uber.org/zap"

	"userpanel/internal/panel/domain/entities"
	"userpanel/internal/panel/domain/services"
	"userpanel/internal/panel/ports/repositories"
	"userpanel/internal/panel/ports/sessions"
	svc "userpanel/internal/panel/ports/services"
	"userpanel/pkg/logger"
)

const (
	methodLogin    = "Login"
	methodRegister = "Register"
	methodLogout   = "Logout"

	msgLoginAttempt        = "login attempt"
	msgLoginNonExistent    = "login attempt with non-existent email"
	msgInvalidPasswordAuth = "invalid password provided"
	msgBlockedLogin        = "login attempt for blocked account"
	msgDeletedUserMatched  = "deleted user matched login checks"
	msgUserLoggedIn        = "user logged in successfully"
	msgStartRegistration   = "starting user registration"
	msgEmailExists         = "user with this email already exists"
	msgUserRegistered      = "user registered successfully"
	msgUserLoggedOut       = "session destroyed"

	msgErrFindingUser       = "error finding user by email"
	msgErrVerifyingPassword = "error verifying password"
	msgErrTouchLastLogin    = "failed to record last login"
	msgErrCreateSession     = "failed to create session"
	msgErrHashPassword      = "failed to hash password"
	msgErrCreateUser        = "failed to create user"
	msgErrDestroySession    = "failed to destroy session"

	errCtxValidatingInput    = "validating input"
	errCtxInvalidCredentials = "invalid credentials"
	errCtxFindingUser        = "finding user"
	errCtxVerifyingPassword  = "verifying password"
	errCtxAccountBlocked     = "account blocked"
	errCtxAccountNotFound    = "account not found"
	errCtxRecordingLastLogin = "recording last login"
	errCtxCreatingSession    = "creating session"
	errCtxHashingPassword    = "hashing password"
	errCtxCreatingUser       = "creating user"
	errCtxDestroyingSession  = "destroying session"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// AccountUseCase оркестрирует вход, регистрацию и выход.
// Состояние между запросами не хранится: личность переносит токен сессии.
type AccountUseCase struct {
	users     repositories.UserRepository
	passwords svc.PasswordService
	sessions  sessions.Store
}

// NewAccountUseCase создает новый экземпляр сценария учетных записей.
func NewAccountUseCase(
	users repositories.UserRepository,
	passwords svc.PasswordService,
	sessionStore sessions.Store,
) *AccountUseCase {
	return &AccountUseCase{
		users:     users,
		passwords: passwords,
		sessions:  sessionStore,
	}
}

// Login проверяет учетные данные и создает новую сессию.
// Отсутствие пользователя и неверный пароль неразличимы для вызывающего.
func (a *AccountUseCase) Login(ctx context.Context, email, password string) (string, error) {
	log := logger.Log(ctx).With(zap.String("method", methodLogin), zap.String("email", email))
	log.Debug(ctx, msgLoginAttempt)

	if err := validateEmail(email); err != nil {
		return "", fmt.Errorf("%s: %w", errCtxValidatingInput, services.ErrInvalidCredentials)
	}
	if password == "" {
		return "", fmt.Errorf("%s: %w", errCtxValidatingInput, services.ErrInvalidCredentials)
	}

	user, err := a.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, entities.ErrUserNotFound) {
			log.Debug(ctx, msgLoginNonExistent)
			return "", fmt.Errorf("%s: %w", errCtxInvalidCredentials, services.ErrInvalidCredentials)
		}
		log.Error(ctx, msgErrFindingUser, zap.Error(err))
		return "", fmt.Errorf("%s: %w", errCtxFindingUser, err)
	}

	ok, err := a.passwords.Verify(ctx, password, user.PasswordHash)
	if err != nil {
		log.Error(ctx, msgErrVerifyingPassword, zap.Error(err))
		return "", fmt.Errorf("%s: %w", errCtxVerifyingPassword, err)
	}
	if !ok {
		log.Debug(ctx, msgInvalidPasswordAuth)
		return "", fmt.Errorf("%s: %w", errCtxInvalidCredentials, services.ErrInvalidCredentials)
	}

	if user.IsBlocked() {
		log.Debug(ctx, msgBlockedLogin, zap.Int64("user_id", user.ID))
		return "", fmt.Errorf("%s: %w", errCtxAccountBlocked, services.ErrAccountBlocked)
	}

	// Защитный случай: репозиторий не отдает удаленных, но сюда попадать нельзя.
	if user.IsDeleted {
		log.Warn(ctx, msgDeletedUserMatched, zap.Int64("user_id", user.ID))
		return "", fmt.Errorf("%s: %w", errCtxAccountNotFound, services.ErrAccountNotFound)
	}

	if err := a.users.TouchLastLogin(ctx, user.ID); err != nil {
		log.Error(ctx, msgErrTouchLastLogin, zap.Error(err))
		return "", fmt.Errorf("%s: %w", errCtxRecordingLastLogin, err)
	}

	token, err := a.sessions.Create(ctx, entities.Session{UserID: user.ID, UserName: user.Name})
	if err != nil {
		log.Error(ctx, msgErrCreateSession, zap.Error(err))
		return "", fmt.Errorf("%s: %w", errCtxCreatingSession, err)
	}

	log.Info(ctx, msgUserLoggedIn, zap.Int64("user_id", user.ID))
	return token, nil
}

// Register создает нового пользователя. Автоматический вход не выполняется.
func (a *AccountUseCase) Register(ctx context.Context, name, email, password string) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("method", methodRegister), zap.String("email", email))
	log.Debug(ctx, msgStartRegistration)

	if err := validateName(name); err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxValidatingInput, err)
	}
	if err := validateEmail(email); err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxValidatingInput, err)
	}
	if password == "" {
		return nil, fmt.Errorf("%s: %w", errCtxValidatingInput, entities.ErrEmptyPassword)
	}

	hashedPassword, err := a.passwords.Hash(ctx, password)
	if err != nil {
		log.Error(ctx, msgErrHashPassword, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxHashingPassword, err)
	}

	user, err := a.users.Create(ctx, name, email, hashedPassword)
	if err != nil {
		if errors.Is(err, services.ErrEmailAlreadyExists) {
			log.Debug(ctx, msgEmailExists)
			return nil, fmt.Errorf("%s: %w", errCtxCreatingUser, services.ErrEmailAlreadyExists)
		}
		log.Error(ctx, msgErrCreateUser, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxCreatingUser, err)
	}

	log.Info(ctx, msgUserRegistered, zap.Int64("user_id", user.ID))
	return user, nil
}

// Logout уничтожает сессию; пустой или неизвестный токен не является ошибкой.
func (a *AccountUseCase) Logout(ctx context.Context, token string) error {
	log := logger.Log(ctx).With(zap.String("method", methodLogout))

	if token == "" {
		return nil
	}

	if err := a.sessions.Destroy(ctx, token); err != nil {
		log.Error(ctx, msgErrDestroySession, zap.Error(err))
		return fmt.Errorf("%s: %w", errCtxDestroyingSession, err)
	}

	log.Debug(ctx, msgUserLoggedOut)
	return nil
}

func validateName(name string) error {
	if name == "" {
		return entities.ErrEmptyName
	}
	if len(name) > entities.MaxNameLength {
		return entities.ErrNameTooLong
	}
	return nil
}

func validateEmail(email string) error {
	if len(email) > entities.MaxEmailLength {
		return entities.ErrEmailTooLong
	}
	if !emailRegex.MatchString(email) {
		return entities.ErrInvalidEmail
	}
	return nil
}
