// Package user implements the credential store: account creation, password
// checks and the account administration primitives.
package user

import (
	"context"
	"errors"
	"fmt"

	domainUser "ticketapp/internal/domain/user"
	"ticketapp/internal/shared/authorization"
	sharedErrors "ticketapp/internal/shared/errors"
	"ticketapp/internal/shared/logger"
)

// Service is the credential store. It performs no authorization; callers
// consult the permission policy first.
type Service struct {
	repo   domainUser.Repository
	hasher domainUser.PasswordHasher
	logger logger.Interface
}

func NewService(repo domainUser.Repository, hasher domainUser.PasswordHasher, logger logger.Interface) *Service {
	return &Service{
		repo:   repo,
		hasher: hasher,
		logger: logger,
	}
}

// CreateUser hashes password and stores a new account. It reports false,
// without error, when the username is already taken.
func (s *Service) CreateUser(ctx context.Context, username, password string, role authorization.UserRole) (bool, error) {
	if !role.IsValid() {
		return false, sharedErrors.NewValidationError("invalid role", fmt.Sprintf("role %q must be user or admin", role))
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return false, err
	}

	if _, err := s.repo.Create(ctx, username, hash, role); err != nil {
		if errors.Is(err, domainUser.ErrUsernameTaken) {
			s.logger.Warnw("username already exists", "username", username)
			return false, nil
		}
		return false, err
	}

	s.logger.Infow("user created", "username", username, "role", role)
	return true, nil
}

// VerifyCredentials returns the public record when password matches, and
// nil, nil for an unknown username or a wrong password.
func (s *Service) VerifyCredentials(ctx context.Context, username, password string) (*domainUser.User, error) {
	creds, err := s.repo.GetCredentials(ctx, username)
	if err != nil {
		return nil, err
	}

	if creds == nil {
		s.hasher.VerifyDummy(password)
		return nil, nil
	}

	if err := s.hasher.Verify(password, creds.PasswordHash); err != nil {
		s.logger.Infow("password mismatch", "username", username)
		return nil, nil
	}

	u := creds.User
	return &u, nil
}

// GetUser returns nil, nil for an unknown id.
func (s *Service) GetUser(ctx context.Context, id uint) (*domainUser.User, error) {
	return s.repo.GetByID(ctx, id)
}

// ListUsers returns id and username of every account, alphabetically.
func (s *Service) ListUsers(ctx context.Context) ([]domainUser.Ref, error) {
	return s.repo.ListRefs(ctx)
}

func (s *Service) ListUsersFull(ctx context.Context) ([]*domainUser.User, error) {
	return s.repo.List(ctx)
}

func (s *Service) UserExists(ctx context.Context, id uint) (bool, error) {
	return s.repo.Exists(ctx, id)
}

func (s *Service) UpdateUserRole(ctx context.Context, id uint, role authorization.UserRole) error {
	if !role.IsValid() {
		return sharedErrors.NewValidationError("invalid role", fmt.Sprintf("role %q must be user or admin", role))
	}
	return s.repo.UpdateRole(ctx, id, role)
}

// DeleteUser removes the account permanently. Preventing self-deletion is
// the caller's job.
func (s *Service) DeleteUser(ctx context.Context, id uint) error {
	return s.repo.Delete(ctx, id)
}
