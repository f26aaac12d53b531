package usecases

import (
	"context"

	"ticketapp/internal/domain/permission"
	"ticketapp/internal/domain/ticket"
	"ticketapp/internal/shared/errors"
	"ticketapp/internal/shared/logger"
)

type DeleteTicketCommand struct {
	Actor    permission.Actor
	TicketID uint
}

type DeleteTicketUseCase struct {
	ticketRepo ticket.Repository
	policy     TicketPolicy
	logger     logger.Interface
}

func NewDeleteTicketUseCase(ticketRepo ticket.Repository, policy TicketPolicy, logger logger.Interface) *DeleteTicketUseCase {
	return &DeleteTicketUseCase{
		ticketRepo: ticketRepo,
		policy:     policy,
		logger:     logger,
	}
}

// Execute removes a ticket permanently. Children keep existing with their
// parent cleared.
func (uc *DeleteTicketUseCase) Execute(ctx context.Context, cmd DeleteTicketCommand) error {
	t, err := uc.ticketRepo.GetByID(ctx, cmd.TicketID)
	if err != nil {
		uc.logger.Errorw("failed to get ticket", "ticket_id", cmd.TicketID, "error", err)
		return errors.NewInternalError("failed to get ticket")
	}
	if t == nil {
		return errors.NewNotFoundError("ticket not found")
	}
	if !uc.policy.CanDelete(cmd.Actor, t) {
		return errors.NewForbiddenError("only administrators can delete tickets")
	}

	if err := uc.ticketRepo.Delete(ctx, cmd.TicketID); err != nil {
		uc.logger.Errorw("failed to delete ticket", "ticket_id", cmd.TicketID, "error", err)
		return errors.NewInternalError("failed to delete ticket")
	}

	uc.logger.Infow("ticket deleted", "ticket_id", cmd.TicketID, "actor", cmd.Actor.Username)
	return nil
}
