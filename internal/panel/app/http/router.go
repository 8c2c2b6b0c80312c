package http

import (
	"github.com/gofiber/fiber/v3"

	"userpanel/internal/panel/app/http/middleware"
)

// SetupRouter настраивает маршрутизацию панели администрирования.
func SetupRouter(app *fiber.App, accountHandler *AccountHandler, adminHandler *AdminHandler, sessionAuth fiber.Handler) {
	// Middleware для всех запросов.
	app.Use(middleware.NewLoggerMiddleware())
	app.Use(middleware.NewRecoveryMiddleware())

	// Публичные маршруты учетных записей.
	app.Get("/login", accountHandler.LoginForm)
	app.Post("/login", accountHandler.Login)
	app.Get("/register", accountHandler.RegisterForm)
	app.Post("/register", accountHandler.Register)
	app.Post("/logout", accountHandler.Logout)

	// Защищенные маршруты.
	dashboard := app.Group("/dashboard")
	dashboard.Use(sessionAuth)
	dashboard.Get("/", adminHandler.Dashboard)

	users := app.Group("/users")
	users.Use(sessionAuth)
	users.Post("/block", adminHandler.BlockUsers)
	users.Post("/unblock", adminHandler.UnblockUsers)
	users.Post("/delete", adminHandler.DeleteUsers)

	// Обработчик для несуществующих маршрутов.
	app.Use(func(c fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Route not found",
		})
	})
}
