// Package services содержит доменные ошибки сценариев аутентификации.
package services

import "errors"

// Ошибки исходов аутентификации и регистрации.
var (
	// ErrInvalidCredentials - общий отказ входа, не раскрывающий,
	// существует ли пользователь с таким email.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrAccountBlocked - учетная запись найдена, пароль верен, но статус Blocked.
	ErrAccountBlocked = errors.New("account is blocked")

	// ErrAccountNotFound - защитный случай: пользователь прошел проверки,
	// но помечен удаленным.
	ErrAccountNotFound = errors.New("account not found")

	// ErrEmailAlreadyExists - email уже занят неудаленным пользователем.
	ErrEmailAlreadyExists = errors.New("email already exists")
)
