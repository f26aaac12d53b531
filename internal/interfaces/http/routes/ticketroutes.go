package routes

import (
	"github.com/gin-gonic/gin"

	tickethandlers "ticketapp/internal/interfaces/http/handlers/ticket"
	"ticketapp/internal/interfaces/http/middleware"
)

type TicketRouteConfig struct {
	TicketHandler  *tickethandlers.TicketHandler
	AuthMiddleware *middleware.AuthMiddleware
}

// SetupTicketRoutes registers ticket endpoints. Authorization is decided per
// ticket inside the use cases.
func SetupTicketRoutes(engine *gin.Engine, config *TicketRouteConfig) {
	tickets := engine.Group("/tickets")
	tickets.Use(config.AuthMiddleware.RequireAuth())
	{
		tickets.POST("", config.TicketHandler.CreateTicket)
		tickets.GET("", config.TicketHandler.ListTickets)
		tickets.GET("/statuses", config.TicketHandler.ListStatuses)

		tickets.PATCH("/:id/status", config.TicketHandler.UpdateTicketStatus)

		tickets.GET("/:id", config.TicketHandler.GetTicket)
		tickets.PUT("/:id", config.TicketHandler.UpdateTicket)
		tickets.DELETE("/:id", config.TicketHandler.DeleteTicket)
	}
}
