// Package dto содержит объекты передачи данных HTTP-поверхности панели.
package dto

import (
	"time"

	"userpanel/internal/panel/domain/entities"
)

// Машиночитаемые причины отказа в доступе.
const (
	ReasonInvalidCredentials     = "invalid_credentials"
	ReasonAccountBlocked         = "account_blocked"
	ReasonAuthenticationRequired = "authentication_required"
)

// Сообщения, показываемые пользователю.
const (
	MsgInvalidCredentials     = "Invalid email or password."
	MsgAccountBlocked         = "Your account has been blocked."
	MsgAuthenticationRequired = "Please log in to continue."
	MsgAccountNotFound        = "Account not found."
	MsgEmailAlreadyExists     = "Email already exists."
	MsgRegistrationSuccessful = "Registration successful! Please log in."
	MsgGenericFailure         = "Something went wrong. Please try again."
	MsgInvalidRequest         = "Invalid request."
)

// ReasonMessage переводит причину отказа из query-параметра в сообщение.
// Неизвестная причина дает пустую строку.
func ReasonMessage(reason string) string {
	switch reason {
	case ReasonInvalidCredentials:
		return MsgInvalidCredentials
	case ReasonAccountBlocked:
		return MsgAccountBlocked
	case ReasonAuthenticationRequired:
		return MsgAuthenticationRequired
	default:
		return ""
	}
}

// LoginRequest содержит данные формы входа.
type LoginRequest struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

// RegisterRequest содержит данные формы регистрации.
type RegisterRequest struct {
	Name     string `json:"name" form:"name"`
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

// LoginFormResponse представляет состояние формы входа.
// Пароль никогда не возвращается обратно.
type LoginFormResponse struct {
	Error  string `json:"error,omitempty"`
	Notice string `json:"notice,omitempty"`
	Email  string `json:"email,omitempty"`
}

// RegisterFormResponse представляет состояние формы регистрации
// с сохраненными значениями полей, кроме пароля.
type RegisterFormResponse struct {
	Error string `json:"error,omitempty"`
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
}

// UserResponse - видимая проекция пользователя; хэш пароля не включается.
type UserResponse struct {
	ID           int64      `json:"id"`
	Name         string     `json:"name"`
	Email        string     `json:"email"`
	Status       string     `json:"status"`
	LastLogin    *time.Time `json:"last_login"`
	RegisteredAt time.Time  `json:"registered_at"`
}

// NewUserResponse строит проекцию из доменной сущности.
func NewUserResponse(user *entities.User) UserResponse {
	return UserResponse{
		ID:           user.ID,
		Name:         user.Name,
		Email:        user.Email,
		Status:       string(user.Status),
		LastLogin:    user.LastLogin,
		RegisteredAt: user.RegisteredAt,
	}
}

// DashboardResponse содержит список пользователей и сведения об операторе.
type DashboardResponse struct {
	Users           []UserResponse `json:"users"`
	CurrentUserID   int64          `json:"current_user_id"`
	CurrentUserName string         `json:"current_user_name"`
}

// BulkActionResponse - результат массовой операции. При отказе в доступе
// Redirect = true и Error содержит машиночитаемую причину.
type BulkActionResponse struct {
	Success  bool   `json:"success"`
	Message  string `json:"message,omitempty"`
	Redirect bool   `json:"redirect,omitempty"`
	Error    string `json:"error,omitempty"`
}
