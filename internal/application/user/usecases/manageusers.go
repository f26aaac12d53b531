package usecases

import (
	"context"

	"ticketapp/internal/domain/permission"
	"ticketapp/internal/domain/user"
	"ticketapp/internal/shared/authorization"
	"ticketapp/internal/shared/errors"
	"ticketapp/internal/shared/logger"
)

type UpdateUserRoleCommand struct {
	Actor  permission.Actor
	UserID uint
	Role   string
}

type UpdateUserRoleUseCase struct {
	store  CredentialStore
	policy UserPolicy
	logger logger.Interface
}

func NewUpdateUserRoleUseCase(store CredentialStore, policy UserPolicy, logger logger.Interface) *UpdateUserRoleUseCase {
	return &UpdateUserRoleUseCase{store: store, policy: policy, logger: logger}
}

func (uc *UpdateUserRoleUseCase) Execute(ctx context.Context, cmd UpdateUserRoleCommand) (*user.User, error) {
	if !uc.policy.CanManageUsers(cmd.Actor) {
		return nil, errors.NewForbiddenError("only administrators can change roles")
	}

	role, err := authorization.ParseUserRole(cmd.Role)
	if err != nil {
		return nil, errors.NewValidationError("invalid role", err.Error())
	}

	target, err := uc.store.GetUser(ctx, cmd.UserID)
	if err != nil {
		uc.logger.Errorw("failed to load user", "user_id", cmd.UserID, "error", err)
		return nil, errors.NewInternalError("failed to load user")
	}
	if target == nil {
		return nil, errors.NewNotFoundError("user not found")
	}

	if err := uc.store.UpdateUserRole(ctx, cmd.UserID, role); err != nil {
		uc.logger.Errorw("failed to update role", "user_id", cmd.UserID, "error", err)
		return nil, errors.NewInternalError("failed to update role")
	}

	uc.logger.Infow("user role changed", "user_id", cmd.UserID, "from", target.Role, "to", role, "actor_id", cmd.Actor.ID)

	target.Role = role
	return target, nil
}

type DeleteUserCommand struct {
	Actor  permission.Actor
	UserID uint
}

type DeleteUserUseCase struct {
	store  CredentialStore
	policy UserPolicy
	logger logger.Interface
}

func NewDeleteUserUseCase(store CredentialStore, policy UserPolicy, logger logger.Interface) *DeleteUserUseCase {
	return &DeleteUserUseCase{store: store, policy: policy, logger: logger}
}

func (uc *DeleteUserUseCase) Execute(ctx context.Context, cmd DeleteUserCommand) error {
	if cmd.UserID == cmd.Actor.ID {
		return errors.NewForbiddenError("you cannot delete your own account")
	}
	if !uc.policy.CanDeleteUser(cmd.Actor, cmd.UserID) {
		return errors.NewForbiddenError("only administrators can delete users")
	}

	target, err := uc.store.GetUser(ctx, cmd.UserID)
	if err != nil {
		uc.logger.Errorw("failed to load user", "user_id", cmd.UserID, "error", err)
		return errors.NewInternalError("failed to load user")
	}
	if target == nil {
		return errors.NewNotFoundError("user not found")
	}

	if err := uc.store.DeleteUser(ctx, cmd.UserID); err != nil {
		uc.logger.Errorw("failed to delete user", "user_id", cmd.UserID, "error", err)
		return errors.NewInternalError("failed to delete user")
	}

	uc.logger.Infow("user deleted", "user_id", cmd.UserID, "username", target.Username, "actor_id", cmd.Actor.ID)
	return nil
}

// ListUsersUseCase serves both the assignee selector (any signed-in user)
// and the admin console listing.
type ListUsersUseCase struct {
	store  CredentialStore
	policy UserPolicy
	logger logger.Interface
}

func NewListUsersUseCase(store CredentialStore, policy UserPolicy, logger logger.Interface) *ListUsersUseCase {
	return &ListUsersUseCase{store: store, policy: policy, logger: logger}
}

func (uc *ListUsersUseCase) Refs(ctx context.Context, actor permission.Actor) ([]user.Ref, error) {
	if actor.IsZero() {
		return nil, errors.NewUnauthorizedError("authentication required")
	}

	refs, err := uc.store.ListUsers(ctx)
	if err != nil {
		uc.logger.Errorw("failed to list users", "error", err)
		return nil, errors.NewInternalError("failed to list users")
	}
	if refs == nil {
		refs = []user.Ref{}
	}
	return refs, nil
}

func (uc *ListUsersUseCase) Full(ctx context.Context, actor permission.Actor) ([]*user.User, error) {
	if !uc.policy.CanAccessAdminConsole(actor) {
		return nil, errors.NewForbiddenError("admin console requires the admin role")
	}

	users, err := uc.store.ListUsersFull(ctx)
	if err != nil {
		uc.logger.Errorw("failed to list users", "error", err)
		return nil, errors.NewInternalError("failed to list users")
	}
	return users, nil
}

// GetCurrentUserUseCase reloads the signed-in account.
type GetCurrentUserUseCase struct {
	store  CredentialStore
	logger logger.Interface
}

func NewGetCurrentUserUseCase(store CredentialStore, logger logger.Interface) *GetCurrentUserUseCase {
	return &GetCurrentUserUseCase{store: store, logger: logger}
}

func (uc *GetCurrentUserUseCase) Execute(ctx context.Context, actor permission.Actor) (*user.User, error) {
	if actor.IsZero() {
		return nil, errors.NewUnauthorizedError("authentication required")
	}

	u, err := uc.store.GetUser(ctx, actor.ID)
	if err != nil {
		uc.logger.Errorw("failed to load user", "user_id", actor.ID, "error", err)
		return nil, errors.NewInternalError("failed to load user")
	}
	if u == nil {
		return nil, errors.NewNotFoundError("user not found")
	}
	return u, nil
}
