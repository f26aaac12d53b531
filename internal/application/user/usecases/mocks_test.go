package usecases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"ticketapp/internal/domain/permission"
	"ticketapp/internal/domain/user"
	permInfra "ticketapp/internal/infrastructure/permission"
	"ticketapp/internal/shared/authorization"
	"ticketapp/internal/shared/logger"
)

type mockCredentialStore struct {
	CreateUserFunc        func(ctx context.Context, username, password string, role authorization.UserRole) (bool, error)
	VerifyCredentialsFunc func(ctx context.Context, username, password string) (*user.User, error)
	GetUserFunc           func(ctx context.Context, id uint) (*user.User, error)
	ListUsersFunc         func(ctx context.Context) ([]user.Ref, error)
	ListUsersFullFunc     func(ctx context.Context) ([]*user.User, error)
	UpdateUserRoleFunc    func(ctx context.Context, id uint, role authorization.UserRole) error
	DeleteUserFunc        func(ctx context.Context, id uint) error
}

func (m *mockCredentialStore) CreateUser(ctx context.Context, username, password string, role authorization.UserRole) (bool, error) {
	if m.CreateUserFunc != nil {
		return m.CreateUserFunc(ctx, username, password, role)
	}
	return true, nil
}

func (m *mockCredentialStore) VerifyCredentials(ctx context.Context, username, password string) (*user.User, error) {
	if m.VerifyCredentialsFunc != nil {
		return m.VerifyCredentialsFunc(ctx, username, password)
	}
	return nil, nil
}

func (m *mockCredentialStore) GetUser(ctx context.Context, id uint) (*user.User, error) {
	if m.GetUserFunc != nil {
		return m.GetUserFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockCredentialStore) ListUsers(ctx context.Context) ([]user.Ref, error) {
	if m.ListUsersFunc != nil {
		return m.ListUsersFunc(ctx)
	}
	return nil, nil
}

func (m *mockCredentialStore) ListUsersFull(ctx context.Context) ([]*user.User, error) {
	if m.ListUsersFullFunc != nil {
		return m.ListUsersFullFunc(ctx)
	}
	return nil, nil
}

func (m *mockCredentialStore) UpdateUserRole(ctx context.Context, id uint, role authorization.UserRole) error {
	if m.UpdateUserRoleFunc != nil {
		return m.UpdateUserRoleFunc(ctx, id, role)
	}
	return nil
}

func (m *mockCredentialStore) DeleteUser(ctx context.Context, id uint) error {
	if m.DeleteUserFunc != nil {
		return m.DeleteUserFunc(ctx, id)
	}
	return nil
}

type mockTokenGenerator struct {
	GenerateFunc func(userID uint, username string, role authorization.UserRole) (*AccessToken, error)
}

func (m *mockTokenGenerator) Generate(userID uint, username string, role authorization.UserRole) (*AccessToken, error) {
	if m.GenerateFunc != nil {
		return m.GenerateFunc(userID, username, role)
	}
	return &AccessToken{Token: "token", ExpiresIn: 3600}, nil
}

func newTestPolicy(t *testing.T) *permission.Policy {
	t.Helper()
	enforcer, err := permInfra.NewEnforcer(logger.NewNopLogger())
	require.NoError(t, err)
	return permission.NewPolicy(enforcer, logger.NewNopLogger())
}

var (
	adminActor = permission.Actor{ID: 1, Username: "root", Role: authorization.RoleAdmin}
	userActor  = permission.Actor{ID: 2, Username: "bob", Role: authorization.RoleUser}
)
