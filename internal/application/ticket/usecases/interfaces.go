package usecases

import (
	"context"

	"ticketapp/internal/application/ticket/dto"
	"ticketapp/internal/domain/permission"
	"ticketapp/internal/domain/ticket"
	vo "ticketapp/internal/domain/ticket/valueobjects"
)

type TicketPolicy interface {
	CanView(actor permission.Actor) bool
	CanCreate(actor permission.Actor) bool
	CanEdit(actor permission.Actor, t *ticket.Ticket) bool
	CanDelete(actor permission.Actor, t *ticket.Ticket) bool
}

// UserChecker resolves assignee references. The user repository satisfies it.
type UserChecker interface {
	Exists(ctx context.Context, id uint) (bool, error)
}

type TransactionRunner interface {
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

type MarkdownRenderer interface {
	Render(source string) (string, error)
}

type CreateTicketExecutor interface {
	Execute(ctx context.Context, cmd CreateTicketCommand) (*CreateTicketResult, error)
}

type ListTicketsExecutor interface {
	Execute(ctx context.Context, query ListTicketsQuery) ([]*ticket.Ticket, error)
}

type GetTicketExecutor interface {
	Execute(ctx context.Context, query GetTicketQuery) (*dto.TicketDTO, error)
}

type UpdateTicketExecutor interface {
	Execute(ctx context.Context, cmd UpdateTicketCommand) error
}

type UpdateTicketStatusExecutor interface {
	Execute(ctx context.Context, cmd UpdateTicketStatusCommand) (vo.TicketStatus, error)
}

type DeleteTicketExecutor interface {
	Execute(ctx context.Context, cmd DeleteTicketCommand) error
}

type GetDashboardExecutor interface {
	Execute(ctx context.Context, actor permission.Actor) (*dto.DashboardDTO, error)
}
