package usecases

import (
	"context"

	"ticketapp/internal/domain/permission"
	"ticketapp/internal/domain/ticket"
	vo "ticketapp/internal/domain/ticket/valueobjects"
	"ticketapp/internal/shared/errors"
	"ticketapp/internal/shared/logger"
)

type CreateTicketCommand struct {
	Actor permission.Actor
	Form  TicketForm
}

type CreateTicketResult struct {
	TicketID uint
	Status   string
}

type CreateTicketUseCase struct {
	ticketRepo ticket.Repository
	users      UserChecker
	policy     TicketPolicy
	txManager  TransactionRunner
	logger     logger.Interface
}

func NewCreateTicketUseCase(
	ticketRepo ticket.Repository,
	users UserChecker,
	policy TicketPolicy,
	txManager TransactionRunner,
	logger logger.Interface,
) *CreateTicketUseCase {
	return &CreateTicketUseCase{
		ticketRepo: ticketRepo,
		users:      users,
		policy:     policy,
		txManager:  txManager,
		logger:     logger,
	}
}

// Execute files a new ticket as the actor. New tickets always start in
// status New.
func (uc *CreateTicketUseCase) Execute(ctx context.Context, cmd CreateTicketCommand) (*CreateTicketResult, error) {
	uc.logger.Infow("executing create ticket use case", "subject", cmd.Form.Subject, "actor", cmd.Actor.Username)

	if !uc.policy.CanCreate(cmd.Actor) {
		return nil, errors.NewForbiddenError("you are not allowed to create tickets")
	}

	form := cmd.Form
	if err := form.validate(); err != nil {
		uc.logger.Warnw("invalid create ticket command", "error", err)
		return nil, err
	}

	var id uint
	err := uc.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := checkReferences(ctx, uc.users, uc.ticketRepo, &form); err != nil {
			return err
		}

		var err error
		id, err = uc.ticketRepo.Create(ctx, form.fields(vo.StatusNew), cmd.Actor.Username)
		return err
	})
	if err != nil {
		uc.logger.Errorw("failed to create ticket", "error", err)
		return nil, writeError(err, "failed to create ticket")
	}

	uc.logger.Infow("ticket created successfully", "ticket_id", id, "created_by", cmd.Actor.Username)

	return &CreateTicketResult{
		TicketID: id,
		Status:   vo.StatusNew.String(),
	}, nil
}
