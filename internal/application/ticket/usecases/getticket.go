package usecases

import (
	"context"

	"ticketapp/internal/application/ticket/dto"
	"ticketapp/internal/domain/permission"
	"ticketapp/internal/domain/ticket"
	"ticketapp/internal/shared/errors"
	"ticketapp/internal/shared/logger"
)

type GetTicketQuery struct {
	Actor    permission.Actor
	TicketID uint
}

type GetTicketUseCase struct {
	ticketRepo ticket.Repository
	policy     TicketPolicy
	renderer   MarkdownRenderer
	logger     logger.Interface
}

func NewGetTicketUseCase(ticketRepo ticket.Repository, policy TicketPolicy, renderer MarkdownRenderer, logger logger.Interface) *GetTicketUseCase {
	return &GetTicketUseCase{
		ticketRepo: ticketRepo,
		policy:     policy,
		renderer:   renderer,
		logger:     logger,
	}
}

// Execute loads one ticket with the actor's edit and delete rights and the
// narrative fields rendered to sanitized HTML.
func (uc *GetTicketUseCase) Execute(ctx context.Context, query GetTicketQuery) (*dto.TicketDTO, error) {
	if !uc.policy.CanView(query.Actor) {
		return nil, errors.NewForbiddenError("you are not allowed to view tickets")
	}

	t, err := uc.ticketRepo.GetByID(ctx, query.TicketID)
	if err != nil {
		uc.logger.Errorw("failed to get ticket", "ticket_id", query.TicketID, "error", err)
		return nil, errors.NewInternalError("failed to get ticket")
	}
	if t == nil {
		return nil, errors.NewNotFoundError("ticket not found")
	}

	result := dto.ToTicketDTO(t)
	result.CanEdit = uc.policy.CanEdit(query.Actor, t)
	result.CanDelete = uc.policy.CanDelete(query.Actor, t)
	result.HTML = uc.render(t)

	return result, nil
}

func (uc *GetTicketUseCase) render(t *ticket.Ticket) *dto.RenderedFields {
	if uc.renderer == nil {
		return nil
	}

	out := &dto.RenderedFields{}
	targets := []struct {
		src string
		dst *string
	}{
		{t.Summary, &out.Summary},
		{t.Prerequisites, &out.Prerequisites},
		{t.StepsToReplicate, &out.StepsToReplicate},
		{t.Outcome, &out.Outcome},
		{t.ExpectedOutcome, &out.ExpectedOutcome},
	}
	for _, target := range targets {
		html, err := uc.renderer.Render(target.src)
		if err != nil {
			uc.logger.Warnw("failed to render markdown", "ticket_id", t.ID, "error", err)
			return nil
		}
		*target.dst = html
	}
	return out
}
