package entities

import (
	"errors"
	"time"
)

// Максимальные длины полей пользователя.
const (
	MaxNameLength  = 100
	MaxEmailLength = 255
)

// Определяем ошибки домена пользователя.
var (
	ErrUserNotFound  = errors.New("user not found")
	ErrEmptyName     = errors.New("name cannot be empty")
	ErrNameTooLong   = errors.New("name must not exceed 100 characters")
	ErrInvalidEmail  = errors.New("invalid email format")
	ErrEmailTooLong  = errors.New("email must not exceed 255 characters")
	ErrEmptyPassword = errors.New("password cannot be empty")
)

// Status представляет состояние учетной записи пользователя.
type Status string

// Возможные состояния учетной записи.
const (
	StatusActive  Status = "Active"
	StatusBlocked Status = "Blocked"
)

// User представляет основную сущность домена пользователя.
// Пользователи с IsDeleted = true невидимы для всех операций чтения;
// этот флаг терминальный и никогда не снимается.
type User struct {
	ID           int64
	Name         string
	Email        string
	PasswordHash string
	Status       Status
	LastLogin    *time.Time
	RegisteredAt time.Time
	IsDeleted    bool
}

// IsBlocked сообщает, заблокирована ли учетная запись.
func (u *User) IsBlocked() bool {
	return u.Status == StatusBlocked
}
