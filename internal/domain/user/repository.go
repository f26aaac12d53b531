package user

import (
	"context"

	"ticketapp/internal/shared/authorization"
)

type Repository interface {
	// Create returns ErrUsernameTaken when username is already in use.
	Create(ctx context.Context, username string, passwordHash []byte, role authorization.UserRole) (*User, error)
	// GetByID returns nil, nil for an unknown id.
	GetByID(ctx context.Context, id uint) (*User, error)
	// GetCredentials looks up by exact username and returns nil, nil when absent.
	GetCredentials(ctx context.Context, username string) (*Credentials, error)
	// List returns every user ordered by username.
	List(ctx context.Context) ([]*User, error)
	// ListRefs returns id and username of every user ordered by username.
	ListRefs(ctx context.Context) ([]Ref, error)
	UpdateRole(ctx context.Context, id uint, role authorization.UserRole) error
	Delete(ctx context.Context, id uint) error
	Exists(ctx context.Context, id uint) (bool, error)
}
