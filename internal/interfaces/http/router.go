package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	ticketUsecases "ticketapp/internal/application/ticket/usecases"
	userApp "ticketapp/internal/application/user"
	userUsecases "ticketapp/internal/application/user/usecases"
	"ticketapp/internal/domain/permission"
	"ticketapp/internal/infrastructure/auth"
	"ticketapp/internal/infrastructure/config"
	permInfra "ticketapp/internal/infrastructure/permission"
	"ticketapp/internal/infrastructure/repository"
	"ticketapp/internal/interfaces/http/handlers"
	tickethandlers "ticketapp/internal/interfaces/http/handlers/ticket"
	"ticketapp/internal/interfaces/http/middleware"
	"ticketapp/internal/interfaces/http/routes"
	"ticketapp/internal/shared/db"
	"ticketapp/internal/shared/logger"
	"ticketapp/internal/shared/services/markdown"
)

// Router represents the HTTP router configuration
type Router struct {
	engine           *gin.Engine
	authHandler      *handlers.AuthHandler
	userHandler      *handlers.UserHandler
	dashboardHandler *handlers.DashboardHandler
	ticketHandler    *tickethandlers.TicketHandler
	authMiddleware   *middleware.AuthMiddleware
	policy           *permission.Policy
	logger           logger.Interface
}

// NewRouter wires repositories, services and use cases over an opened and
// migrated database.
func NewRouter(gdb *gorm.DB, cfg *config.Config, log logger.Interface) (*Router, error) {
	engine := gin.New()

	userRepo := repository.NewUserRepository(gdb, log.Named("user-repository"))
	ticketRepo := repository.NewTicketRepository(gdb, log.Named("ticket-repository"))
	txManager := db.NewTransactionManager(gdb)

	enforcer, err := permInfra.NewEnforcerWithDB(gdb, log.Named("permission"))
	if err != nil {
		return nil, err
	}
	policy := permission.NewPolicy(enforcer, log.Named("policy"))

	hasher := auth.NewBcryptPasswordHasher(cfg.Auth.Password.BcryptCost)
	jwtSvc := auth.NewJWTService(cfg.Auth.JWT.Secret, cfg.Auth.JWT.AccessExpMinutes)
	userService := userApp.NewService(userRepo, hasher, log.Named("credential-store"))

	loginUC := userUsecases.NewLoginUseCase(userService, &jwtServiceAdapter{jwtSvc}, log)
	currentUserUC := userUsecases.NewGetCurrentUserUseCase(userService, log)
	listUsersUC := userUsecases.NewListUsersUseCase(userService, policy, log)
	createUserUC := userUsecases.NewCreateUserUseCase(userService, policy, cfg.Auth.Password.MinLength, log)
	updateRoleUC := userUsecases.NewUpdateUserRoleUseCase(userService, policy, log)
	deleteUserUC := userUsecases.NewDeleteUserUseCase(userService, policy, log)

	createTicketUC := ticketUsecases.NewCreateTicketUseCase(ticketRepo, userRepo, policy, txManager, log)
	listTicketsUC := ticketUsecases.NewListTicketsUseCase(ticketRepo, policy, log)
	getTicketUC := ticketUsecases.NewGetTicketUseCase(ticketRepo, policy, markdown.NewRenderer(), log)
	updateTicketUC := ticketUsecases.NewUpdateTicketUseCase(ticketRepo, userRepo, policy, txManager, log)
	updateStatusUC := ticketUsecases.NewUpdateTicketStatusUseCase(ticketRepo, policy, log)
	deleteTicketUC := ticketUsecases.NewDeleteTicketUseCase(ticketRepo, policy, log)
	dashboardUC := ticketUsecases.NewGetDashboardUseCase(ticketRepo, policy, log)

	return &Router{
		engine:           engine,
		authHandler:      handlers.NewAuthHandler(loginUC, currentUserUC, log),
		userHandler:      handlers.NewUserHandler(listUsersUC, createUserUC, updateRoleUC, deleteUserUC, log),
		dashboardHandler: handlers.NewDashboardHandler(dashboardUC),
		ticketHandler: tickethandlers.NewTicketHandler(
			createTicketUC, listTicketsUC, getTicketUC, updateTicketUC, updateStatusUC, deleteTicketUC, log,
		),
		authMiddleware: middleware.NewAuthMiddleware(jwtSvc, userService, log),
		policy:         policy,
		logger:         log,
	}, nil
}

// SetupRoutes configures all HTTP routes
func (r *Router) SetupRoutes() {
	r.engine.Use(middleware.RequestID())
	r.engine.Use(middleware.Recovery(r.logger))
	r.engine.Use(middleware.CustomLogger(r.logger))

	r.engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.SetupAuthRoutes(r.engine, &routes.AuthRouteConfig{
		AuthHandler:    r.authHandler,
		AuthMiddleware: r.authMiddleware,
	})

	routes.SetupUserRoutes(r.engine, &routes.UserRouteConfig{
		UserHandler:      r.userHandler,
		DashboardHandler: r.dashboardHandler,
		AuthMiddleware:   r.authMiddleware,
		AdminPolicy:      r.policy,
		Logger:           r.logger,
	})

	routes.SetupTicketRoutes(r.engine, &routes.TicketRouteConfig{
		TicketHandler:  r.ticketHandler,
		AuthMiddleware: r.authMiddleware,
	})
}

// GetEngine returns the gin engine
func (r *Router) GetEngine() *gin.Engine {
	return r.engine
}
