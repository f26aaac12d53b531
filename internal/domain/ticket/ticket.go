// Package ticket holds the ticket read model and the persistence contract.
package ticket

import (
	"time"

	vo "ticketapp/internal/domain/ticket/valueobjects"
)

// Fields is the mutable part of a ticket. Create and Update both take the
// whole set; there are no partial updates.
type Fields struct {
	Type             vo.TicketType
	Subject          string
	Summary          string
	Prerequisites    string
	StepsToReplicate string
	Outcome          string
	ExpectedOutcome  string
	Status           vo.TicketStatus
	AssigneeID       *uint
	ParentID         *uint
}

// Ticket is a stored ticket together with its resolved assignee name.
type Ticket struct {
	ID uint
	Fields
	CreatedBy    string
	CreatedAt    time.Time
	AssigneeName string
}

// IsAssigned reports whether the ticket currently has an assignee.
func (t *Ticket) IsAssigned() bool {
	return t.AssigneeID != nil
}

// ListFilter narrows List results. Empty values mean no filter.
type ListFilter struct {
	Statuses []vo.TicketStatus
	Search   string
}
