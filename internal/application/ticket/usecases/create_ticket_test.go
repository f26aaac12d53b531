package usecases

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ticketapp/internal/domain/ticket"
	vo "ticketapp/internal/domain/ticket/valueobjects"
	sharedErrors "ticketapp/internal/shared/errors"
	"ticketapp/internal/shared/logger"
)

func TestCreateTicketUseCase_Bug(t *testing.T) {
	var got ticket.Fields
	var gotCreator string
	repo := &mockTicketRepository{
		CreateFunc: func(_ context.Context, f ticket.Fields, createdBy string) (uint, error) {
			got = f
			gotCreator = createdBy
			return 42, nil
		},
	}
	tx := &inlineTx{}
	uc := NewCreateTicketUseCase(repo, &mockUserChecker{existing: map[uint]bool{3: true}}, newTestPolicy(t), tx, logger.NewNopLogger())

	form := bugForm()
	form.AssigneeID = uintPtr(3)
	result, err := uc.Execute(context.Background(), CreateTicketCommand{Actor: aliceActor, Form: form})
	require.NoError(t, err)

	assert.Equal(t, uint(42), result.TicketID)
	assert.Equal(t, "New", result.Status)
	assert.Equal(t, 1, tx.calls)
	assert.Equal(t, "alice", gotCreator)
	assert.Equal(t, "Login fails", got.Subject)
	assert.Equal(t, vo.StatusNew, got.Status)
	assert.Equal(t, vo.TypeBug, got.Type)
	require.NotNil(t, got.AssigneeID)
	assert.Equal(t, uint(3), *got.AssigneeID)
}

func TestCreateTicketUseCase_TestCaseDropsBugOnlyFields(t *testing.T) {
	var got ticket.Fields
	repo := &mockTicketRepository{
		CreateFunc: func(_ context.Context, f ticket.Fields, _ string) (uint, error) {
			got = f
			return 1, nil
		},
	}
	uc := NewCreateTicketUseCase(repo, &mockUserChecker{}, newTestPolicy(t), &inlineTx{}, logger.NewNopLogger())

	form := TicketForm{
		Type:             "Test Case",
		Subject:          "Checkout regression",
		Summary:          "ignored",
		Prerequisites:    "cart with items",
		StepsToReplicate: "pay",
		Outcome:          "ignored too",
		ExpectedOutcome:  "receipt shown",
	}
	_, err := uc.Execute(context.Background(), CreateTicketCommand{Actor: aliceActor, Form: form})
	require.NoError(t, err)

	assert.Equal(t, vo.TypeTestCase, got.Type)
	assert.Empty(t, got.Summary)
	assert.Empty(t, got.Outcome)
	assert.Equal(t, "receipt shown", got.ExpectedOutcome)
}

func TestCreateTicketUseCase_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(f *TicketForm)
	}{
		{"blank subject", func(f *TicketForm) { f.Subject = "   " }},
		{"unknown type", func(f *TicketForm) { f.Type = "Feature" }},
		{"bug without summary", func(f *TicketForm) { f.Summary = "" }},
		{"bug without outcome", func(f *TicketForm) { f.Outcome = " " }},
		{"missing steps", func(f *TicketForm) { f.StepsToReplicate = "" }},
		{"zero parent id", func(f *TicketForm) { f.ParentID = uintPtr(0) }},
		{"unknown assignee", func(f *TicketForm) { f.AssigneeID = uintPtr(99) }},
		{"unknown parent", func(f *TicketForm) { f.ParentID = uintPtr(77) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			created := false
			repo := &mockTicketRepository{
				CreateFunc: func(context.Context, ticket.Fields, string) (uint, error) {
					created = true
					return 1, nil
				},
				ExistsFunc: func(context.Context, uint) (bool, error) { return false, nil },
			}
			uc := NewCreateTicketUseCase(repo, &mockUserChecker{}, newTestPolicy(t), &inlineTx{}, logger.NewNopLogger())

			form := bugForm()
			tt.mutate(&form)
			_, err := uc.Execute(context.Background(), CreateTicketCommand{Actor: aliceActor, Form: form})

			assert.True(t, sharedErrors.IsValidationError(err), "got %v", err)
			assert.False(t, created)
		})
	}
}

func TestCreateTicketUseCase_AnonymousForbidden(t *testing.T) {
	uc := NewCreateTicketUseCase(&mockTicketRepository{}, &mockUserChecker{}, newTestPolicy(t), &inlineTx{}, logger.NewNopLogger())

	_, err := uc.Execute(context.Background(), CreateTicketCommand{Form: bugForm()})
	assert.True(t, sharedErrors.IsForbiddenError(err))
}

func TestCreateTicketUseCase_StorageErrorIsHidden(t *testing.T) {
	repo := &mockTicketRepository{
		CreateFunc: func(context.Context, ticket.Fields, string) (uint, error) {
			return 0, errors.New("failed to create ticket: disk I/O error")
		},
	}
	uc := NewCreateTicketUseCase(repo, &mockUserChecker{}, newTestPolicy(t), &inlineTx{}, logger.NewNopLogger())

	_, err := uc.Execute(context.Background(), CreateTicketCommand{Actor: aliceActor, Form: bugForm()})
	appErr := sharedErrors.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, sharedErrors.ErrorTypeInternal, appErr.Type)
	assert.NotContains(t, appErr.Error(), "disk I/O")
}

func TestCreateTicketUseCase_VanishedReferenceIsValidation(t *testing.T) {
	repo := &mockTicketRepository{
		CreateFunc: func(context.Context, ticket.Fields, string) (uint, error) {
			return 0, errors.New("failed to create ticket: FOREIGN KEY constraint failed")
		},
	}
	uc := NewCreateTicketUseCase(repo, &mockUserChecker{}, newTestPolicy(t), &inlineTx{}, logger.NewNopLogger())

	_, err := uc.Execute(context.Background(), CreateTicketCommand{Actor: aliceActor, Form: bugForm()})
	assert.True(t, sharedErrors.IsValidationError(err))
}
