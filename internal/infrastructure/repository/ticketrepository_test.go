package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"ticketapp/internal/domain/ticket"
	vo "ticketapp/internal/domain/ticket/valueobjects"
	"ticketapp/internal/shared/authorization"
	"ticketapp/internal/shared/logger"
)

func newTicketRepo(t *testing.T) (*TicketRepository, *gorm.DB) {
	db := setupTestDB(t)
	return NewTicketRepository(db, logger.NewNopLogger()), db
}

func bugFields(subject string) ticket.Fields {
	return ticket.Fields{
		Type:             vo.TypeBug,
		Subject:          subject,
		Summary:          subject + " summary",
		Prerequisites:    "logged in",
		StepsToReplicate: "1. click",
		Outcome:          "error",
		ExpectedOutcome:  "no error",
	}
}

// setCreatedAt pins creation times so ordering assertions are deterministic.
func setCreatedAt(t *testing.T, db *gorm.DB, id uint, at time.Time) {
	t.Helper()
	require.NoError(t, db.Exec("UPDATE tickets SET created_at = ? WHERE ticket_id = ?", at.UTC(), id).Error)
}

func subjects(tickets []*ticket.Ticket) []string {
	out := make([]string, 0, len(tickets))
	for _, tk := range tickets {
		out = append(out, tk.Subject)
	}
	return out
}

func TestTicketRepository_CreateRoundTrip(t *testing.T) {
	repo, db := newTicketRepo(t)
	ctx := context.Background()

	users := NewUserRepository(db, logger.NewNopLogger())
	assignee, err := users.Create(ctx, "alice", []byte("hash"), authorization.RoleUser)
	require.NoError(t, err)

	parentID, err := repo.Create(ctx, bugFields("Parent"), "bob")
	require.NoError(t, err)

	fields := bugFields("Login fails")
	fields.AssigneeID = uintPtr(assignee.ID)
	fields.ParentID = uintPtr(parentID)

	id, err := repo.Create(ctx, fields, "bob")
	require.NoError(t, err)
	assert.NotZero(t, id)

	got, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, got)

	expected := fields
	expected.Status = vo.StatusNew
	assert.Equal(t, expected, got.Fields)
	assert.Equal(t, "bob", got.CreatedBy)
	assert.Equal(t, "alice", got.AssigneeName)
	assert.False(t, got.CreatedAt.IsZero())
	assert.WithinDuration(t, time.Now().UTC(), got.CreatedAt, time.Minute)
}

func TestTicketRepository_CreateDefaults(t *testing.T) {
	repo, _ := newTicketRepo(t)
	ctx := context.Background()

	id, err := repo.Create(ctx, ticket.Fields{Subject: "Bare"}, "")
	require.NoError(t, err)

	got, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, vo.TypeBug, got.Type)
	assert.Equal(t, vo.StatusNew, got.Status)
	assert.Nil(t, got.AssigneeID)
	assert.Empty(t, got.AssigneeName)
}

func TestTicketRepository_CreateRejectsUnknownReferences(t *testing.T) {
	repo, _ := newTicketRepo(t)
	ctx := context.Background()

	fields := bugFields("Orphan")
	fields.AssigneeID = uintPtr(42)
	_, err := repo.Create(ctx, fields, "bob")
	assert.Error(t, err)

	fields = bugFields("Orphan child")
	fields.ParentID = uintPtr(42)
	_, err = repo.Create(ctx, fields, "bob")
	assert.Error(t, err)
}

func TestTicketRepository_GetByIDMissing(t *testing.T) {
	repo, _ := newTicketRepo(t)

	got, err := repo.GetByID(context.Background(), 12345)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestTicketRepository_ListSearch(t *testing.T) {
	repo, db := newTicketRepo(t)
	ctx := context.Background()
	base := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)

	for i, subject := range []string{"Crash", "Login fails", "Verify logout"} {
		f := bugFields(subject)
		f.Summary = "details"
		f.ExpectedOutcome = "works"
		id, err := repo.Create(ctx, f, "bob")
		require.NoError(t, err)
		setCreatedAt(t, db, id, base.Add(time.Duration(i)*time.Hour))
	}

	t.Run("matches subject case-insensitively", func(t *testing.T) {
		got, err := repo.List(ctx, ticket.ListFilter{Search: "login"})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "Login fails", got[0].Subject)
	})

	t.Run("empty search returns everything newest first", func(t *testing.T) {
		got, err := repo.List(ctx, ticket.ListFilter{})
		require.NoError(t, err)
		assert.Equal(t, []string{"Verify logout", "Login fails", "Crash"}, subjects(got))
	})

	t.Run("matches summary or expected outcome", func(t *testing.T) {
		f := bugFields("Unrelated")
		f.Summary = "nothing"
		f.ExpectedOutcome = "User sees LOGIN page"
		_, err := repo.Create(ctx, f, "bob")
		require.NoError(t, err)

		got, err := repo.List(ctx, ticket.ListFilter{Search: "Login"})
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"Login fails", "Unrelated"}, subjects(got))
	})

	t.Run("wildcards are literal", func(t *testing.T) {
		_, err := repo.Create(ctx, bugFields("100% broken"), "bob")
		require.NoError(t, err)

		got, err := repo.List(ctx, ticket.ListFilter{Search: "0%"})
		require.NoError(t, err)
		assert.Equal(t, []string{"100% broken"}, subjects(got))

		got, err = repo.List(ctx, ticket.ListFilter{Search: "_"})
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}

func TestTicketRepository_ListSearchNonASCII(t *testing.T) {
	repo, _ := newTicketRepo(t)
	ctx := context.Background()

	for _, subject := range []string{"Échec de connexion", "Über login"} {
		f := bugFields(subject)
		f.Summary = "details"
		_, err := repo.Create(ctx, f, "bob")
		require.NoError(t, err)
	}

	tests := []struct {
		search string
		want   []string
	}{
		{"Échec", []string{"Échec de connexion"}},
		{"Über", []string{"Über login"}},
		{"ber LOGIN", []string{"Über login"}},
		{"de CONNEXION", []string{"Échec de connexion"}},
		{"login ", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.search, func(t *testing.T) {
			got, err := repo.List(ctx, ticket.ListFilter{Search: tt.search})
			require.NoError(t, err)
			assert.ElementsMatch(t, tt.want, subjects(got))
		})
	}
}

func TestTicketRepository_ListStatuses(t *testing.T) {
	repo, db := newTicketRepo(t)
	ctx := context.Background()
	base := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)

	statuses := []vo.TicketStatus{vo.StatusNew, vo.StatusOpen, vo.StatusClosed, vo.StatusNew}
	for i, status := range statuses {
		f := bugFields(string(status) + " ticket")
		f.Status = status
		id, err := repo.Create(ctx, f, "bob")
		require.NoError(t, err)
		setCreatedAt(t, db, id, base.Add(time.Duration(i)*time.Minute))
	}

	got, err := repo.List(ctx, ticket.ListFilter{Statuses: []vo.TicketStatus{vo.StatusNew, vo.StatusOpen}})
	require.NoError(t, err)
	require.Len(t, got, 3)

	for i, tk := range got {
		assert.Contains(t, []vo.TicketStatus{vo.StatusNew, vo.StatusOpen}, tk.Status)
		if i > 0 {
			assert.False(t, tk.CreatedAt.After(got[i-1].CreatedAt))
		}
	}
	assert.Equal(t, vo.StatusNew, got[0].Status)
	assert.Equal(t, vo.StatusOpen, got[1].Status)
}

func TestTicketRepository_UpdateStatus(t *testing.T) {
	repo, _ := newTicketRepo(t)
	ctx := context.Background()

	id, err := repo.Create(ctx, bugFields("Status change"), "bob")
	require.NoError(t, err)
	before, err := repo.GetByID(ctx, id)
	require.NoError(t, err)

	require.NoError(t, repo.UpdateStatus(ctx, id, vo.StatusInProgress))

	after, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, vo.StatusInProgress, after.Status)

	after.Status = before.Status
	assert.Equal(t, before, after)
}

func TestTicketRepository_UpdateFullReplace(t *testing.T) {
	repo, db := newTicketRepo(t)
	ctx := context.Background()

	users := NewUserRepository(db, logger.NewNopLogger())
	assignee, err := users.Create(ctx, "alice", []byte("hash"), authorization.RoleUser)
	require.NoError(t, err)

	fields := bugFields("Original")
	fields.AssigneeID = uintPtr(assignee.ID)
	id, err := repo.Create(ctx, fields, "bob")
	require.NoError(t, err)

	replacement := ticket.Fields{
		Type:             vo.TypeTestCase,
		Subject:          "Rewritten",
		Prerequisites:    "fresh install",
		StepsToReplicate: "run the suite",
		ExpectedOutcome:  "all green",
		Status:           vo.StatusRegression,
	}
	require.NoError(t, repo.Update(ctx, id, replacement))

	got, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, replacement, got.Fields)
	assert.Empty(t, got.AssigneeName)
	assert.Equal(t, "bob", got.CreatedBy)
}

func TestTicketRepository_DeleteNullsChildren(t *testing.T) {
	repo, _ := newTicketRepo(t)
	ctx := context.Background()

	parentID, err := repo.Create(ctx, bugFields("Parent"), "bob")
	require.NoError(t, err)

	child := bugFields("Child")
	child.ParentID = uintPtr(parentID)
	childID, err := repo.Create(ctx, child, "bob")
	require.NoError(t, err)

	require.NoError(t, repo.Delete(ctx, parentID))

	gone, err := repo.GetByID(ctx, parentID)
	require.NoError(t, err)
	assert.Nil(t, gone)

	got, err := repo.GetByID(ctx, childID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Nil(t, got.ParentID)

	exists, err := repo.Exists(ctx, parentID)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestTicketRepository_Aggregates(t *testing.T) {
	repo, db := newTicketRepo(t)
	ctx := context.Background()
	now := time.Now().UTC()

	users := NewUserRepository(db, logger.NewNopLogger())
	alice, err := users.Create(ctx, "alice", []byte("hash"), authorization.RoleUser)
	require.NoError(t, err)

	old := bugFields("Old")
	old.Status = vo.StatusClosed
	oldID, err := repo.Create(ctx, old, "bob")
	require.NoError(t, err)
	setCreatedAt(t, db, oldID, now.AddDate(0, 0, -30))

	recent := bugFields("Recent")
	recent.AssigneeID = uintPtr(alice.ID)
	_, err = repo.Create(ctx, recent, "bob")
	require.NoError(t, err)

	counts, err := repo.CountByStatus(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), counts[vo.StatusClosed])
	assert.Equal(t, int64(1), counts[vo.StatusNew])

	n, err := repo.CountCreatedSince(ctx, now.AddDate(0, 0, -7))
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	mine, err := repo.ListByAssignee(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"Recent"}, subjects(mine))
}
