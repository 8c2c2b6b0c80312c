// Package middleware содержит промежуточное ПО для HTTP обработчиков.
package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"userpanel/internal/panel/app"
	"userpanel/internal/panel/app/dto"
	"userpanel/internal/panel/domain/entities"
	"userpanel/internal/panel/ports/sessions"
	"userpanel/pkg/logger"
)

// Ключи Locals для передачи сессии обработчикам.
const (
	SessionLocalKey = "session"
	TokenLocalKey   = "sessionToken"
)

// Константы для логирования.
const (
	LogSessionAuth = "session auth middleware"

	ErrorNoSessionToken   = "no session token provided"
	ErrorSessionNotFound  = "session not found or expired"
	ErrorSessionLookup    = "failed to look up session"
	ErrorValidityCheck    = "failed to check account validity"
	ErrorAccountInvalid   = "account no longer valid, session destroyed"
	ErrorDestroyOnInvalid = "failed to destroy session of invalid account"
)

// NewSessionAuthMiddleware создает промежуточное ПО защищенных маршрутов.
// Токен сессии разрешается в хранилище, после чего Auth Gate заново
// перечитывает состояние учетной записи: сессия, созданная до блокировки
// или удаления оператора, отклоняется здесь.
func NewSessionAuthMiddleware(store sessions.Store, gate *app.AuthGate, cookieName string) fiber.Handler {
	return func(ctx fiber.Ctx) error {
		requestCtx := ctx.Context()
		log := logger.Log(requestCtx).With(zap.String("middleware", "session_auth"))
		log.Debug(requestCtx, LogSessionAuth)

		token := ctx.Cookies(cookieName)
		if token == "" {
			log.Debug(requestCtx, ErrorNoSessionToken)
			return rejectUnauthenticated(ctx, dto.ReasonAuthenticationRequired, dto.MsgAuthenticationRequired)
		}

		session, err := store.Get(requestCtx, token)
		if err != nil {
			log.Error(requestCtx, ErrorSessionLookup, zap.Error(err))
			return rejectStorageFailure(ctx)
		}
		if session == nil {
			log.Debug(requestCtx, ErrorSessionNotFound)
			return rejectUnauthenticated(ctx, dto.ReasonAuthenticationRequired, dto.MsgAuthenticationRequired)
		}

		valid, err := gate.IsUserValid(requestCtx, session.UserID)
		if err != nil {
			log.Error(requestCtx, ErrorValidityCheck, zap.Error(err))
			return rejectStorageFailure(ctx)
		}
		if !valid {
			if err := store.Destroy(requestCtx, token); err != nil {
				log.Error(requestCtx, ErrorDestroyOnInvalid, zap.Error(err))
			}
			log.Info(requestCtx, ErrorAccountInvalid, zap.Int64("user_id", session.UserID))
			return rejectUnauthenticated(ctx, dto.ReasonAccountBlocked, dto.MsgAccountBlocked)
		}

		ctx.Locals(SessionLocalKey, session)
		ctx.Locals(TokenLocalKey, token)

		return ctx.Next()
	}
}

// SessionFromCtx возвращает сессию, сохраненную промежуточным ПО.
func SessionFromCtx(ctx fiber.Ctx) *entities.Session {
	session, _ := ctx.Locals(SessionLocalKey).(*entities.Session)
	return session
}

// TokenFromCtx возвращает токен сессии текущего запроса.
func TokenFromCtx(ctx fiber.Ctx) string {
	token, _ := ctx.Locals(TokenLocalKey).(string)
	return token
}

// WantsJSON сообщает, ожидает ли клиент JSON-ответ вместо редиректа.
func WantsJSON(ctx fiber.Ctx) bool {
	if ctx.Get("X-Requested-With") == "XMLHttpRequest" {
		return true
	}
	return strings.Contains(ctx.Get(fiber.HeaderContentType), fiber.MIMEApplicationJSON)
}

func rejectUnauthenticated(ctx fiber.Ctx, reason, message string) error {
	if WantsJSON(ctx) {
		status := fiber.StatusUnauthorized
		if reason == dto.ReasonAccountBlocked {
			status = fiber.StatusForbidden
		}
		return ctx.Status(status).JSON(dto.BulkActionResponse{
			Success:  false,
			Redirect: true,
			Error:    reason,
			Message:  message,
		})
	}
	return ctx.Redirect().To("/login?error=" + reason)
}

func rejectStorageFailure(ctx fiber.Ctx) error {
	if WantsJSON(ctx) {
		return ctx.Status(fiber.StatusInternalServerError).JSON(dto.BulkActionResponse{
			Success: false,
			Message: dto.MsgGenericFailure,
		})
	}
	return ctx.Redirect().To("/login?error=" + dto.ReasonAuthenticationRequired)
}
