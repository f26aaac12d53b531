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

type ListTicketsQuery struct {
	Actor    permission.Actor
	Statuses []string
	Search   string
}

type ListTicketsUseCase struct {
	ticketRepo ticket.Repository
	policy     TicketPolicy
	logger     logger.Interface
}

func NewListTicketsUseCase(ticketRepo ticket.Repository, policy TicketPolicy, logger logger.Interface) *ListTicketsUseCase {
	return &ListTicketsUseCase{
		ticketRepo: ticketRepo,
		policy:     policy,
		logger:     logger,
	}
}

// Execute returns tickets newest first. Blank status entries are ignored;
// an empty status list applies no status filter.
func (uc *ListTicketsUseCase) Execute(ctx context.Context, query ListTicketsQuery) ([]*ticket.Ticket, error) {
	if !uc.policy.CanView(query.Actor) {
		return nil, errors.NewForbiddenError("you are not allowed to view tickets")
	}

	// The search term is a raw substring; whitespace-only means no search.
	filter := ticket.ListFilter{}
	if strings.TrimSpace(query.Search) != "" {
		filter.Search = query.Search
	}
	for _, s := range query.Statuses {
		if strings.TrimSpace(s) == "" {
			continue
		}
		status, err := parseStatus(s)
		if err != nil {
			return nil, err
		}
		filter.Statuses = append(filter.Statuses, status)
	}

	tickets, err := uc.ticketRepo.List(ctx, filter)
	if err != nil {
		uc.logger.Errorw("failed to list tickets", "error", err)
		return nil, errors.NewInternalError("failed to list tickets")
	}

	uc.logger.Debugw("tickets listed", "count", len(tickets), "statuses", len(filter.Statuses), "search", filter.Search)
	return tickets, nil
}

// AllStatuses exposes the workflow vocabulary for status selectors.
func AllStatuses() []string {
	statuses := vo.AllStatuses()
	out := make([]string, 0, len(statuses))
	for _, s := range statuses {
		out = append(out, s.String())
	}
	return out
}
