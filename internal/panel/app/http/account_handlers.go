// Package http содержит HTTP поверхность панели администрирования.
package http

import (
	"errors"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"userpanel/internal/panel/app"
	"userpanel/internal/panel/app/dto"
	"userpanel/internal/panel/domain/entities"
	"userpanel/internal/panel/domain/services"
	"userpanel/internal/panel/ports/sessions"
	"userpanel/pkg/logger"
)

// Константы для логирования.
const (
	LogHandlerLoginForm    = "account handler: login form"
	LogHandlerLogin        = "account handler: login"
	LogHandlerRegisterForm = "account handler: register form"
	LogHandlerRegister     = "account handler: register"
	LogHandlerLogout       = "account handler: logout"

	ErrorInvalidRequest = "invalid request"
	ErrorLoginFailed    = "login failed"
	ErrorRegisterFailed = "registration failed"
)

// Целевые адреса редиректов.
const (
	pathDashboard       = "/dashboard"
	pathLogin           = "/login"
	pathLoginRegistered = "/login?registered=1"
)

// AccountHandler содержит HTTP обработчики входа, регистрации и выхода.
type AccountHandler struct {
	accounts   *app.AccountUseCase
	sessions   sessions.Store
	cookieName string
}

// NewAccountHandler создает новый экземпляр обработчика учетных записей.
func NewAccountHandler(accounts *app.AccountUseCase, sessionStore sessions.Store, cookieName string) *AccountHandler {
	return &AccountHandler{
		accounts:   accounts,
		sessions:   sessionStore,
		cookieName: cookieName,
	}
}

// LoginForm отдает состояние формы входа. Аутентифицированный оператор
// перенаправляется на дашборд; причина из query-параметра error
// переводится в сообщение.
func (h *AccountHandler) LoginForm(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Debug(requestCtx, LogHandlerLoginForm)

	if h.hasValidSession(ctx) {
		return ctx.Redirect().To(pathDashboard)
	}

	resp := dto.LoginFormResponse{
		Error: dto.ReasonMessage(ctx.Query("error")),
	}
	if ctx.Query("registered") == "1" {
		resp.Notice = dto.MsgRegistrationSuccessful
	}

	return ctx.JSON(resp)
}

// Login обрабатывает отправку формы входа. Отсутствие пользователя и
// неверный пароль дают одинаковый ответ.
func (h *AccountHandler) Login(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerLogin)

	var req dto.LoginRequest
	if err := ctx.Bind().Body(&req); err != nil {
		log.Debug(requestCtx, ErrorInvalidRequest, zap.Error(err))
		return ctx.Status(fiber.StatusBadRequest).JSON(dto.LoginFormResponse{
			Error: dto.MsgInvalidRequest,
		})
	}

	token, err := h.accounts.Login(requestCtx, req.Email, req.Password)
	if err != nil {
		return h.renderLoginFailure(ctx, req.Email, err)
	}

	ctx.Cookie(&fiber.Cookie{
		Name:     h.cookieName,
		Value:    token,
		Path:     "/",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})

	return ctx.Redirect().To(pathDashboard)
}

// RegisterForm отдает состояние формы регистрации или перенаправляет
// аутентифицированного оператора на дашборд.
func (h *AccountHandler) RegisterForm(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Debug(requestCtx, LogHandlerRegisterForm)

	if h.hasValidSession(ctx) {
		return ctx.Redirect().To(pathDashboard)
	}

	return ctx.JSON(dto.RegisterFormResponse{})
}

// Register обрабатывает отправку формы регистрации. При ошибке значения
// полей сохраняются, пароль не возвращается; успех не создает сессию.
func (h *AccountHandler) Register(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerRegister)

	var req dto.RegisterRequest
	if err := ctx.Bind().Body(&req); err != nil {
		log.Debug(requestCtx, ErrorInvalidRequest, zap.Error(err))
		return ctx.Status(fiber.StatusBadRequest).JSON(dto.RegisterFormResponse{
			Error: dto.MsgInvalidRequest,
		})
	}

	if _, err := h.accounts.Register(requestCtx, req.Name, req.Email, req.Password); err != nil {
		return h.renderRegisterFailure(ctx, &req, err)
	}

	return ctx.Redirect().To(pathLoginRegistered)
}

// Logout уничтожает текущую сессию; повторный выход безвреден.
func (h *AccountHandler) Logout(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerLogout)

	token := ctx.Cookies(h.cookieName)
	if err := h.accounts.Logout(requestCtx, token); err != nil {
		// Сессия истечет по таймауту сама; выход остается идемпотентным.
		log.Error(requestCtx, "failed to destroy session on logout", zap.Error(err))
	}

	ctx.ClearCookie(h.cookieName)
	return ctx.Redirect().To(pathLogin)
}

func (h *AccountHandler) hasValidSession(ctx fiber.Ctx) bool {
	token := ctx.Cookies(h.cookieName)
	if token == "" {
		return false
	}

	session, err := h.sessions.Get(ctx.Context(), token)
	if err != nil {
		logger.Log(ctx.Context()).Error(ctx.Context(), "failed to look up session", zap.Error(err))
		return false
	}
	return session != nil
}

func (h *AccountHandler) renderLoginFailure(ctx fiber.Ctx, email string, err error) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)

	resp := dto.LoginFormResponse{Email: email}
	status := fiber.StatusUnauthorized

	switch {
	case errors.Is(err, services.ErrInvalidCredentials):
		resp.Error = dto.MsgInvalidCredentials
	case errors.Is(err, services.ErrAccountBlocked):
		resp.Error = dto.MsgAccountBlocked
	case errors.Is(err, services.ErrAccountNotFound):
		resp.Error = dto.MsgAccountNotFound
	default:
		log.Error(requestCtx, ErrorLoginFailed, zap.Error(err))
		resp.Error = dto.MsgGenericFailure
		status = fiber.StatusInternalServerError
	}

	return ctx.Status(status).JSON(resp)
}

func (h *AccountHandler) renderRegisterFailure(ctx fiber.Ctx, req *dto.RegisterRequest, err error) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)

	resp := dto.RegisterFormResponse{Name: req.Name, Email: req.Email}
	status := fiber.StatusBadRequest

	switch {
	case errors.Is(err, services.ErrEmailAlreadyExists):
		resp.Error = dto.MsgEmailAlreadyExists
		status = fiber.StatusConflict
	case errors.Is(err, entities.ErrEmptyName):
		resp.Error = "Name is required."
	case errors.Is(err, entities.ErrNameTooLong):
		resp.Error = "Name must not exceed 100 characters."
	case errors.Is(err, entities.ErrInvalidEmail):
		resp.Error = "Please enter a valid email address."
	case errors.Is(err, entities.ErrEmailTooLong):
		resp.Error = "Email must not exceed 255 characters."
	case errors.Is(err, entities.ErrEmptyPassword):
		resp.Error = "Password is required."
	default:
		log.Error(requestCtx, ErrorRegisterFailed, zap.Error(err))
		resp.Error = dto.MsgGenericFailure
		status = fiber.StatusInternalServerError
	}

	return ctx.Status(status).JSON(resp)
}
