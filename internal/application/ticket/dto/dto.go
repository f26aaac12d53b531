package dto

import (
	"time"

	"ticketapp/internal/domain/ticket"
)

// TicketRequest is the create and full-edit form. Status is ignored on create.
type TicketRequest struct {
	TicketType       string `json:"ticket_type"`
	Subject          string `json:"subject"`
	Summary          string `json:"summary"`
	Prerequisites    string `json:"prerequisites"`
	StepsToReplicate string `json:"steps_to_replicate"`
	Outcome          string `json:"outcome"`
	ExpectedOutcome  string `json:"expected_outcome"`
	Status           string `json:"status"`
	AssigneeID       *uint  `json:"assignee_id"`
	ParentID         *uint  `json:"parent_id"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// TicketListItemDTO is one row of the ticket list.
type TicketListItemDTO struct {
	ID           uint      `json:"id"`
	TicketType   string    `json:"ticket_type"`
	Subject      string    `json:"subject"`
	Status       string    `json:"status"`
	AssigneeID   *uint     `json:"assignee_id"`
	AssigneeName string    `json:"assignee_name"`
	ParentID     *uint     `json:"parent_id"`
	CreatedBy    string    `json:"created_by"`
	CreatedAt    time.Time `json:"created_at"`
}

// RenderedFields holds sanitized HTML for the markdown narrative fields.
type RenderedFields struct {
	Summary          string `json:"summary"`
	Prerequisites    string `json:"prerequisites"`
	StepsToReplicate string `json:"steps_to_replicate"`
	Outcome          string `json:"outcome"`
	ExpectedOutcome  string `json:"expected_outcome"`
}

// TicketDTO is the full detail view.
type TicketDTO struct {
	TicketListItemDTO
	Summary          string          `json:"summary"`
	Prerequisites    string          `json:"prerequisites"`
	StepsToReplicate string          `json:"steps_to_replicate"`
	Outcome          string          `json:"outcome"`
	ExpectedOutcome  string          `json:"expected_outcome"`
	HTML             *RenderedFields `json:"html,omitempty"`
	CanEdit          bool            `json:"can_edit"`
	CanDelete        bool            `json:"can_delete"`
}

type StatusCountDTO struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

type DashboardDTO struct {
	Total           int64                `json:"total"`
	OpenLike        int64                `json:"open_like"`
	CreatedLastWeek int64                `json:"created_last_7_days"`
	AssignedToMe    int64                `json:"assigned_to_me"`
	ByStatus        []StatusCountDTO     `json:"by_status"`
	MyTickets       []*TicketListItemDTO `json:"my_tickets"`
}

func ToTicketListItemDTO(t *ticket.Ticket) *TicketListItemDTO {
	if t == nil {
		return nil
	}
	return &TicketListItemDTO{
		ID:           t.ID,
		TicketType:   t.Type.String(),
		Subject:      t.Subject,
		Status:       t.Status.String(),
		AssigneeID:   t.AssigneeID,
		AssigneeName: t.AssigneeName,
		ParentID:     t.ParentID,
		CreatedBy:    t.CreatedBy,
		CreatedAt:    t.CreatedAt,
	}
}

func ToTicketListItemDTOs(tickets []*ticket.Ticket) []*TicketListItemDTO {
	result := make([]*TicketListItemDTO, 0, len(tickets))
	for _, t := range tickets {
		result = append(result, ToTicketListItemDTO(t))
	}
	return result
}

func ToTicketDTO(t *ticket.Ticket) *TicketDTO {
	if t == nil {
		return nil
	}
	return &TicketDTO{
		TicketListItemDTO: *ToTicketListItemDTO(t),
		Summary:           t.Summary,
		Prerequisites:     t.Prerequisites,
		StepsToReplicate:  t.StepsToReplicate,
		Outcome:           t.Outcome,
		ExpectedOutcome:   t.ExpectedOutcome,
	}
}
