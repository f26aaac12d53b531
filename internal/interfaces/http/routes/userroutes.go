package routes

import (
	"github.com/gin-gonic/gin"

	"ticketapp/internal/interfaces/http/handlers"
	"ticketapp/internal/interfaces/http/middleware"
	"ticketapp/internal/shared/logger"
)

type UserRouteConfig struct {
	UserHandler      *handlers.UserHandler
	DashboardHandler *handlers.DashboardHandler
	AuthMiddleware   *middleware.AuthMiddleware
	AdminPolicy      middleware.AdminConsolePolicy
	Logger           logger.Interface
}

func SetupUserRoutes(engine *gin.Engine, config *UserRouteConfig) {
	requireAuth := config.AuthMiddleware.RequireAuth()

	engine.GET("/users", requireAuth, config.UserHandler.ListUserRefs)
	engine.GET("/dashboard", requireAuth, config.DashboardHandler.GetDashboard)

	admin := engine.Group("/admin")
	admin.Use(requireAuth, middleware.RequireAdminConsole(config.AdminPolicy, config.Logger))
	{
		admin.GET("/users", config.UserHandler.ListUsers)
		admin.POST("/users", config.UserHandler.CreateUser)
		admin.PATCH("/users/:id/role", config.UserHandler.UpdateUserRole)
		admin.DELETE("/users/:id", config.UserHandler.DeleteUser)
	}
}
