package usecases

import (
	"context"

	"ticketapp/internal/domain/permission"
	"ticketapp/internal/domain/user"
	"ticketapp/internal/shared/authorization"
)

// CredentialStore is implemented by the application user service.
type CredentialStore interface {
	CreateUser(ctx context.Context, username, password string, role authorization.UserRole) (bool, error)
	VerifyCredentials(ctx context.Context, username, password string) (*user.User, error)
	GetUser(ctx context.Context, id uint) (*user.User, error)
	ListUsers(ctx context.Context) ([]user.Ref, error)
	ListUsersFull(ctx context.Context) ([]*user.User, error)
	UpdateUserRole(ctx context.Context, id uint, role authorization.UserRole) error
	DeleteUser(ctx context.Context, id uint) error
}

type UserPolicy interface {
	CanAccessAdminConsole(actor permission.Actor) bool
	CanManageUsers(actor permission.Actor) bool
	CanDeleteUser(actor permission.Actor, targetID uint) bool
}

type AccessToken struct {
	Token     string
	ExpiresIn int64
}

type TokenGenerator interface {
	Generate(userID uint, username string, role authorization.UserRole) (*AccessToken, error)
}

type LoginExecutor interface {
	Execute(ctx context.Context, cmd LoginCommand) (*LoginResult, error)
}

type CreateUserExecutor interface {
	Execute(ctx context.Context, cmd CreateUserCommand) (*CreateUserResult, error)
}

type UpdateUserRoleExecutor interface {
	Execute(ctx context.Context, cmd UpdateUserRoleCommand) (*user.User, error)
}

type DeleteUserExecutor interface {
	Execute(ctx context.Context, cmd DeleteUserCommand) error
}

type UserLister interface {
	Refs(ctx context.Context, actor permission.Actor) ([]user.Ref, error)
	Full(ctx context.Context, actor permission.Actor) ([]*user.User, error)
}

type CurrentUserGetter interface {
	Execute(ctx context.Context, actor permission.Actor) (*user.User, error)
}
