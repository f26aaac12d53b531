package usecases

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"ticketapp/internal/domain/permission"
	"ticketapp/internal/domain/ticket"
	vo "ticketapp/internal/domain/ticket/valueobjects"
	permInfra "ticketapp/internal/infrastructure/permission"
	"ticketapp/internal/shared/authorization"
	"ticketapp/internal/shared/logger"
)

type mockTicketRepository struct {
	CreateFunc            func(ctx context.Context, f ticket.Fields, createdBy string) (uint, error)
	ListFunc              func(ctx context.Context, filter ticket.ListFilter) ([]*ticket.Ticket, error)
	GetByIDFunc           func(ctx context.Context, id uint) (*ticket.Ticket, error)
	UpdateStatusFunc      func(ctx context.Context, id uint, status vo.TicketStatus) error
	UpdateFunc            func(ctx context.Context, id uint, f ticket.Fields) error
	DeleteFunc            func(ctx context.Context, id uint) error
	ExistsFunc            func(ctx context.Context, id uint) (bool, error)
	CountByStatusFunc     func(ctx context.Context) (map[vo.TicketStatus]int64, error)
	CountCreatedSinceFunc func(ctx context.Context, since time.Time) (int64, error)
	ListByAssigneeFunc    func(ctx context.Context, assigneeID uint) ([]*ticket.Ticket, error)
}

func (m *mockTicketRepository) Create(ctx context.Context, f ticket.Fields, createdBy string) (uint, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, f, createdBy)
	}
	return 1, nil
}

func (m *mockTicketRepository) List(ctx context.Context, filter ticket.ListFilter) ([]*ticket.Ticket, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter)
	}
	return nil, nil
}

func (m *mockTicketRepository) GetByID(ctx context.Context, id uint) (*ticket.Ticket, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockTicketRepository) UpdateStatus(ctx context.Context, id uint, status vo.TicketStatus) error {
	if m.UpdateStatusFunc != nil {
		return m.UpdateStatusFunc(ctx, id, status)
	}
	return nil
}

func (m *mockTicketRepository) Update(ctx context.Context, id uint, f ticket.Fields) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, id, f)
	}
	return nil
}

func (m *mockTicketRepository) Delete(ctx context.Context, id uint) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func (m *mockTicketRepository) Exists(ctx context.Context, id uint) (bool, error) {
	if m.ExistsFunc != nil {
		return m.ExistsFunc(ctx, id)
	}
	return true, nil
}

func (m *mockTicketRepository) CountByStatus(ctx context.Context) (map[vo.TicketStatus]int64, error) {
	if m.CountByStatusFunc != nil {
		return m.CountByStatusFunc(ctx)
	}
	return map[vo.TicketStatus]int64{}, nil
}

func (m *mockTicketRepository) CountCreatedSince(ctx context.Context, since time.Time) (int64, error) {
	if m.CountCreatedSinceFunc != nil {
		return m.CountCreatedSinceFunc(ctx, since)
	}
	return 0, nil
}

func (m *mockTicketRepository) ListByAssignee(ctx context.Context, assigneeID uint) ([]*ticket.Ticket, error) {
	if m.ListByAssigneeFunc != nil {
		return m.ListByAssigneeFunc(ctx, assigneeID)
	}
	return nil, nil
}

type mockUserChecker struct {
	existing map[uint]bool
}

func (m *mockUserChecker) Exists(_ context.Context, id uint) (bool, error) {
	return m.existing[id], nil
}

// inlineTx runs fn directly on the caller's context.
type inlineTx struct {
	calls int
}

func (tx *inlineTx) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	tx.calls++
	return fn(ctx)
}

type mockRenderer struct {
	RenderFunc func(source string) (string, error)
}

func (m *mockRenderer) Render(source string) (string, error) {
	if m.RenderFunc != nil {
		return m.RenderFunc(source)
	}
	return "<p>" + source + "</p>", nil
}

func newTestPolicy(t *testing.T) *permission.Policy {
	t.Helper()
	enforcer, err := permInfra.NewEnforcer(logger.NewNopLogger())
	require.NoError(t, err)
	return permission.NewPolicy(enforcer, logger.NewNopLogger())
}

func uintPtr(v uint) *uint {
	return &v
}

var (
	adminActor = permission.Actor{ID: 1, Username: "root", Role: authorization.RoleAdmin}
	aliceActor = permission.Actor{ID: 2, Username: "alice", Role: authorization.RoleUser}
	bobActor   = permission.Actor{ID: 3, Username: "bob", Role: authorization.RoleUser}
)

func bugForm() TicketForm {
	return TicketForm{
		Type:             "Bug",
		Subject:          "  Login fails  ",
		Summary:          "cannot log in",
		Prerequisites:    "an account",
		StepsToReplicate: "1. open login\n2. submit",
		Outcome:          "500 error",
		ExpectedOutcome:  "dashboard",
	}
}

func storedTicket(id uint, createdBy string, assignee *uint) *ticket.Ticket {
	return &ticket.Ticket{
		ID: id,
		Fields: ticket.Fields{
			Type:             vo.TypeBug,
			Subject:          "stored",
			Summary:          "**bold** summary",
			Prerequisites:    "none",
			StepsToReplicate: "step",
			Outcome:          "bad",
			ExpectedOutcome:  "good",
			Status:           vo.StatusOpen,
			AssigneeID:       assignee,
		},
		CreatedBy: createdBy,
		CreatedAt: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
	}
}
