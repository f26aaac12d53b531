package ticket

import (
	"context"
	"time"

	vo "ticketapp/internal/domain/ticket/valueobjects"
)

// Repository persists tickets. It enforces referential integrity only; field
// validation is the caller's responsibility.
type Repository interface {
	// Create inserts a ticket and returns its id. An empty status is stored as New.
	Create(ctx context.Context, fields Fields, createdBy string) (uint, error)
	// List returns matching tickets, newest first.
	List(ctx context.Context, filter ListFilter) ([]*Ticket, error)
	// GetByID returns nil, nil when the ticket does not exist.
	GetByID(ctx context.Context, id uint) (*Ticket, error)
	UpdateStatus(ctx context.Context, id uint, status vo.TicketStatus) error
	Update(ctx context.Context, id uint, fields Fields) error
	Delete(ctx context.Context, id uint) error
	Exists(ctx context.Context, id uint) (bool, error)
	// CountByStatus returns the number of tickets per stored status value.
	CountByStatus(ctx context.Context) (map[vo.TicketStatus]int64, error)
	CountCreatedSince(ctx context.Context, since time.Time) (int64, error)
	ListByAssignee(ctx context.Context, assigneeID uint) ([]*Ticket, error)
}
