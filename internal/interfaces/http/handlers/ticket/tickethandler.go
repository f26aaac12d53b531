package ticket

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ticketapp/internal/application/ticket/dto"
	"ticketapp/internal/application/ticket/usecases"
	"ticketapp/internal/interfaces/http/middleware"
	"ticketapp/internal/shared/errors"
	"ticketapp/internal/shared/logger"
	"ticketapp/internal/shared/utils"
)

type TicketHandler struct {
	createTicketUC usecases.CreateTicketExecutor
	listTicketsUC  usecases.ListTicketsExecutor
	getTicketUC    usecases.GetTicketExecutor
	updateTicketUC usecases.UpdateTicketExecutor
	updateStatusUC usecases.UpdateTicketStatusExecutor
	deleteTicketUC usecases.DeleteTicketExecutor
	logger         logger.Interface
}

func NewTicketHandler(
	createTicketUC usecases.CreateTicketExecutor,
	listTicketsUC usecases.ListTicketsExecutor,
	getTicketUC usecases.GetTicketExecutor,
	updateTicketUC usecases.UpdateTicketExecutor,
	updateStatusUC usecases.UpdateTicketStatusExecutor,
	deleteTicketUC usecases.DeleteTicketExecutor,
	logger logger.Interface,
) *TicketHandler {
	return &TicketHandler{
		createTicketUC: createTicketUC,
		listTicketsUC:  listTicketsUC,
		getTicketUC:    getTicketUC,
		updateTicketUC: updateTicketUC,
		updateStatusUC: updateStatusUC,
		deleteTicketUC: deleteTicketUC,
		logger:         logger,
	}
}

// bindTicketRequest rejects non-numeric assignee and parent ids along with
// any other malformed body.
func (h *TicketHandler) bindTicketRequest(c *gin.Context) (*dto.TicketRequest, bool) {
	var req dto.TicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid ticket request body", "error", err)
		utils.ErrorResponseWithError(c, errors.NewValidationError("invalid request body",
			"assignee_id and parent_id must be positive integers"))
		return nil, false
	}
	return &req, true
}

// CreateTicket handles POST /tickets
func (h *TicketHandler) CreateTicket(c *gin.Context) {
	req, ok := h.bindTicketRequest(c)
	if !ok {
		return
	}

	result, err := h.createTicketUC.Execute(c.Request.Context(), usecases.CreateTicketCommand{
		Actor: middleware.CurrentActor(c),
		Form:  toForm(req),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"id":     result.TicketID,
		"status": result.Status,
	}, "Ticket created successfully")
}

// ListTickets handles GET /tickets?status=..&status=..&search=..
func (h *TicketHandler) ListTickets(c *gin.Context) {
	tickets, err := h.listTicketsUC.Execute(c.Request.Context(), usecases.ListTicketsQuery{
		Actor:    middleware.CurrentActor(c),
		Statuses: c.QueryArray("status"),
		Search:   c.Query("search"),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	items := dto.ToTicketListItemDTOs(tickets)
	utils.ItemsResponse(c, items, len(items))
}

// ListStatuses handles GET /tickets/statuses
func (h *TicketHandler) ListStatuses(c *gin.Context) {
	utils.SuccessResponse(c, http.StatusOK, "", usecases.AllStatuses())
}

// GetTicket handles GET /tickets/:id
func (h *TicketHandler) GetTicket(c *gin.Context) {
	ticketID, err := utils.ParseUintParam(c, "id", "ticket")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.getTicketUC.Execute(c.Request.Context(), usecases.GetTicketQuery{
		Actor:    middleware.CurrentActor(c),
		TicketID: ticketID,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// UpdateTicket handles PUT /tickets/:id
func (h *TicketHandler) UpdateTicket(c *gin.Context) {
	ticketID, err := utils.ParseUintParam(c, "id", "ticket")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	req, ok := h.bindTicketRequest(c)
	if !ok {
		return
	}

	if err := h.updateTicketUC.Execute(c.Request.Context(), usecases.UpdateTicketCommand{
		Actor:    middleware.CurrentActor(c),
		TicketID: ticketID,
		Form:     toForm(req),
		Status:   req.Status,
	}); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Ticket updated", gin.H{"id": ticketID})
}

// UpdateTicketStatus handles PATCH /tickets/:id/status
func (h *TicketHandler) UpdateTicketStatus(c *gin.Context) {
	ticketID, err := utils.ParseUintParam(c, "id", "ticket")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req dto.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, errors.NewValidationError("status is required"))
		return
	}

	status, err := h.updateStatusUC.Execute(c.Request.Context(), usecases.UpdateTicketStatusCommand{
		Actor:    middleware.CurrentActor(c),
		TicketID: ticketID,
		Status:   req.Status,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Status updated", gin.H{"id": ticketID, "status": status.String()})
}

// DeleteTicket handles DELETE /tickets/:id
func (h *TicketHandler) DeleteTicket(c *gin.Context) {
	ticketID, err := utils.ParseUintParam(c, "id", "ticket")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	if err := h.deleteTicketUC.Execute(c.Request.Context(), usecases.DeleteTicketCommand{
		Actor:    middleware.CurrentActor(c),
		TicketID: ticketID,
	}); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.NoContentResponse(c)
}
