package usecases

import (
	"context"
	"fmt"
	"strings"

	"ticketapp/internal/domain/ticket"
	vo "ticketapp/internal/domain/ticket/valueobjects"
	"ticketapp/internal/shared/errors"
	"ticketapp/internal/shared/utils"
)

func init() {
	utils.RegisterValidation("ticket_status", func(value string) bool {
		return vo.TicketStatus(value).IsValid()
	})
	utils.RegisterValidation("ticket_type", func(value string) bool {
		return vo.TicketType(value).IsValid()
	})
}

// TicketForm carries the user-editable ticket fields. Bug tickets need a
// summary and an outcome; Test Case tickets store both empty.
type TicketForm struct {
	Type             string `json:"ticket_type" validate:"required,ticket_type"`
	Subject          string `json:"subject" validate:"required,max=200"`
	Summary          string `json:"summary" validate:"required_if=Type Bug"`
	Prerequisites    string `json:"prerequisites" validate:"required"`
	StepsToReplicate string `json:"steps_to_replicate" validate:"required"`
	Outcome          string `json:"outcome" validate:"required_if=Type Bug"`
	ExpectedOutcome  string `json:"expected_outcome" validate:"required"`
	AssigneeID       *uint  `json:"assignee_id" validate:"omitempty,gt=0"`
	ParentID         *uint  `json:"parent_id" validate:"omitempty,gt=0"`
}

func (f *TicketForm) normalize() {
	f.Type = strings.TrimSpace(f.Type)
	f.Subject = strings.TrimSpace(f.Subject)
	f.Summary = strings.TrimSpace(f.Summary)
	f.Prerequisites = strings.TrimSpace(f.Prerequisites)
	f.StepsToReplicate = strings.TrimSpace(f.StepsToReplicate)
	f.Outcome = strings.TrimSpace(f.Outcome)
	f.ExpectedOutcome = strings.TrimSpace(f.ExpectedOutcome)

	if vo.TicketType(f.Type) == vo.TypeTestCase {
		f.Summary = ""
		f.Outcome = ""
	}
}

func (f *TicketForm) fields(status vo.TicketStatus) ticket.Fields {
	return ticket.Fields{
		Type:             vo.TicketType(f.Type),
		Subject:          f.Subject,
		Summary:          f.Summary,
		Prerequisites:    f.Prerequisites,
		StepsToReplicate: f.StepsToReplicate,
		Outcome:          f.Outcome,
		ExpectedOutcome:  f.ExpectedOutcome,
		Status:           status,
		AssigneeID:       f.AssigneeID,
		ParentID:         f.ParentID,
	}
}

// validate trims the form in place and checks its fields.
func (f *TicketForm) validate() error {
	f.normalize()
	return utils.ValidateStruct(f)
}

// checkReferences verifies that the assignee and parent exist. It is run
// inside the write transaction.
func checkReferences(ctx context.Context, users UserChecker, tickets ticket.Repository, f *TicketForm) error {
	if f.AssigneeID != nil {
		ok, err := users.Exists(ctx, *f.AssigneeID)
		if err != nil {
			return fmt.Errorf("failed to check assignee: %w", err)
		}
		if !ok {
			return errors.NewValidationError("Validation failed", fmt.Sprintf("assignee %d does not exist", *f.AssigneeID))
		}
	}

	if f.ParentID != nil {
		ok, err := tickets.Exists(ctx, *f.ParentID)
		if err != nil {
			return fmt.Errorf("failed to check parent ticket: %w", err)
		}
		if !ok {
			return errors.NewValidationError("Validation failed", fmt.Sprintf("parent ticket #%d does not exist", *f.ParentID))
		}
	}

	return nil
}

func parseStatus(s string) (vo.TicketStatus, error) {
	status, err := vo.ParseTicketStatus(strings.TrimSpace(s))
	if err != nil {
		return "", errors.NewValidationError("invalid status", err.Error())
	}
	return status, nil
}

// writeError maps a failed ticket write. A foreign key violation means a
// referenced user or ticket disappeared after checkReferences ran.
func writeError(err error, msg string) error {
	if errors.IsForeignKeyError(err) {
		return errors.NewValidationError("Validation failed", "assignee or parent no longer exists")
	}
	return errors.OrInternal(err, msg)
}
