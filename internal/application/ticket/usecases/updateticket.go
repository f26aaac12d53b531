package usecases

import (
	"context"
	"strings"

	"ticketapp/internal/domain/permission"
	"ticketapp/internal/domain/ticket"
	vo "ticketapp/internal/domain/ticket/valueobjects"
	"ticketapp/internal/shared/errors"
	"ticketapp/internal/shared/logger"
)

// UpdateTicketCommand replaces every editable field. A blank Status keeps
// the current one.
type UpdateTicketCommand struct {
	Actor    permission.Actor
	TicketID uint
	Form     TicketForm
	Status   string
}

type UpdateTicketUseCase struct {
	ticketRepo ticket.Repository
	users      UserChecker
	policy     TicketPolicy
	txManager  TransactionRunner
	logger     logger.Interface
}

func NewUpdateTicketUseCase(
	ticketRepo ticket.Repository,
	users UserChecker,
	policy TicketPolicy,
	txManager TransactionRunner,
	logger logger.Interface,
) *UpdateTicketUseCase {
	return &UpdateTicketUseCase{
		ticketRepo: ticketRepo,
		users:      users,
		policy:     policy,
		txManager:  txManager,
		logger:     logger,
	}
}

func (uc *UpdateTicketUseCase) Execute(ctx context.Context, cmd UpdateTicketCommand) error {
	uc.logger.Infow("executing update ticket use case", "ticket_id", cmd.TicketID, "actor", cmd.Actor.Username)

	form := cmd.Form
	if err := form.validate(); err != nil {
		return err
	}

	var status vo.TicketStatus
	if strings.TrimSpace(cmd.Status) != "" {
		parsed, err := parseStatus(cmd.Status)
		if err != nil {
			return err
		}
		status = parsed
	}

	err := uc.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		t, err := uc.ticketRepo.GetByID(ctx, cmd.TicketID)
		if err != nil {
			return err
		}
		if t == nil {
			return errors.NewNotFoundError("ticket not found")
		}
		if !uc.policy.CanEdit(cmd.Actor, t) {
			return errors.NewForbiddenError("you do not have permission to edit this ticket")
		}

		if err := checkReferences(ctx, uc.users, uc.ticketRepo, &form); err != nil {
			return err
		}

		next := status
		if next == "" {
			next = t.Status
		}
		return uc.ticketRepo.Update(ctx, cmd.TicketID, form.fields(next))
	})
	if err != nil {
		if !errors.IsAppError(err) {
			uc.logger.Errorw("failed to update ticket", "ticket_id", cmd.TicketID, "error", err)
		}
		return writeError(err, "failed to update ticket")
	}

	uc.logger.Infow("ticket updated successfully", "ticket_id", cmd.TicketID)
	return nil
}

type UpdateTicketStatusCommand struct {
	Actor    permission.Actor
	TicketID uint
	Status   string
}

type UpdateTicketStatusUseCase struct {
	ticketRepo ticket.Repository
	policy     TicketPolicy
	logger     logger.Interface
}

func NewUpdateTicketStatusUseCase(ticketRepo ticket.Repository, policy TicketPolicy, logger logger.Interface) *UpdateTicketStatusUseCase {
	return &UpdateTicketStatusUseCase{
		ticketRepo: ticketRepo,
		policy:     policy,
		logger:     logger,
	}
}

// Execute moves a ticket to any status of the workflow; there is no
// transition graph. It returns the status as stored.
func (uc *UpdateTicketStatusUseCase) Execute(ctx context.Context, cmd UpdateTicketStatusCommand) (vo.TicketStatus, error) {
	status, err := parseStatus(cmd.Status)
	if err != nil {
		return "", err
	}

	t, err := uc.ticketRepo.GetByID(ctx, cmd.TicketID)
	if err != nil {
		uc.logger.Errorw("failed to get ticket", "ticket_id", cmd.TicketID, "error", err)
		return "", errors.NewInternalError("failed to get ticket")
	}
	if t == nil {
		return "", errors.NewNotFoundError("ticket not found")
	}
	if !uc.policy.CanEdit(cmd.Actor, t) {
		return "", errors.NewForbiddenError("you do not have permission to edit this ticket")
	}

	if err := uc.ticketRepo.UpdateStatus(ctx, cmd.TicketID, status); err != nil {
		uc.logger.Errorw("failed to update ticket status", "ticket_id", cmd.TicketID, "error", err)
		return "", errors.NewInternalError("failed to update ticket status")
	}

	uc.logger.Infow("ticket status changed", "ticket_id", cmd.TicketID, "from", t.Status, "to", status)
	return status, nil
}
