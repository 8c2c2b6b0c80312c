package http

import (
	"context"
	"fmt"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"userpanel/internal/panel/app"
	"userpanel/internal/panel/app/dto"
	"userpanel/internal/panel/app/http/middleware"
	"userpanel/pkg/logger"
)

// Константы для логирования.
const (
	LogHandlerDashboard = "admin handler: dashboard"
	LogHandlerBulk      = "admin handler: bulk action"

	ErrorListUsersFailed  = "failed to list users"
	ErrorBulkActionFailed = "bulk action failed"
)

// AdminHandler содержит HTTP обработчики административных действий.
// Все маршруты защищены session auth middleware.
type AdminHandler struct {
	admin *app.AdminUseCase
}

// NewAdminHandler создает новый экземпляр административного обработчика.
func NewAdminHandler(admin *app.AdminUseCase) *AdminHandler {
	return &AdminHandler{admin: admin}
}

// Dashboard возвращает видимую отсортированную проекцию пользователей.
func (h *AdminHandler) Dashboard(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Debug(requestCtx, LogHandlerDashboard)

	users, err := h.admin.ListUsers(requestCtx)
	if err != nil {
		log.Error(requestCtx, ErrorListUsersFailed, zap.Error(err))
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": dto.MsgGenericFailure,
		})
	}

	resp := dto.DashboardResponse{
		Users: make([]dto.UserResponse, 0, len(users)),
	}
	for i := range users {
		resp.Users = append(resp.Users, dto.NewUserResponse(&users[i]))
	}

	if session := middleware.SessionFromCtx(ctx); session != nil {
		resp.CurrentUserID = session.UserID
		resp.CurrentUserName = session.UserName
	}

	return ctx.JSON(resp)
}

// BlockUsers блокирует пользователей из списка id.
func (h *AdminHandler) BlockUsers(ctx fiber.Ctx) error {
	return h.bulkAction(ctx, "blocked", "Failed to block users", h.admin.BlockUsers)
}

// UnblockUsers разблокирует пользователей из списка id.
func (h *AdminHandler) UnblockUsers(ctx fiber.Ctx) error {
	return h.bulkAction(ctx, "unblocked", "Failed to unblock users", h.admin.UnblockUsers)
}

// DeleteUsers помечает пользователей из списка id удаленными.
// Оператор может удалить собственную учетную запись: текущий запрос
// завершается, а следующий будет отклонен Auth Gate.
func (h *AdminHandler) DeleteUsers(ctx fiber.Ctx) error {
	return h.bulkAction(ctx, "deleted", "Failed to delete users", h.admin.DeleteUsers)
}

// bulkAction разбирает JSON-массив id и выполняет операцию. Пустой список -
// успешный no-op с нулевым счетчиком; сообщение отражает число запрошенных
// id, а не число реально затронутых строк.
func (h *AdminHandler) bulkAction(ctx fiber.Ctx, verb, failMsg string, fn func(context.Context, []int64) error) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx).With(zap.String("action", verb))
	log.Info(requestCtx, LogHandlerBulk)

	var ids []int64
	if err := ctx.Bind().Body(&ids); err != nil {
		log.Debug(requestCtx, ErrorInvalidRequest, zap.Error(err))
		return ctx.Status(fiber.StatusBadRequest).JSON(dto.BulkActionResponse{
			Success: false,
			Message: dto.MsgInvalidRequest,
		})
	}

	if len(ids) > 0 {
		if err := fn(requestCtx, ids); err != nil {
			log.Error(requestCtx, ErrorBulkActionFailed, zap.Error(err))
			return ctx.JSON(dto.BulkActionResponse{
				Success: false,
				Message: failMsg,
			})
		}
	}

	return ctx.JSON(dto.BulkActionResponse{
		Success: true,
		Message: fmt.Sprintf("%d user(s) %s successfully", len(ids), verb),
	})
}
