package usecases

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"ticketapp/internal/domain/permission"
	"ticketapp/internal/shared/authorization"
	"ticketapp/internal/shared/errors"
	"ticketapp/internal/shared/logger"
	"ticketapp/internal/shared/utils"
)

type CreateUserCommand struct {
	Actor           permission.Actor `json:"-"`
	Username        string           `json:"username" validate:"required,max=64"`
	Password        string           `json:"password" validate:"required"`
	PasswordConfirm string           `json:"password_confirm" validate:"omitempty,eqfield=Password"` // checked only when sent
	Role            string           `json:"role" validate:"required,user_role"`
}

type CreateUserResult struct {
	Username string
	Role     authorization.UserRole
}

type CreateUserUseCase struct {
	store             CredentialStore
	policy            UserPolicy
	minPasswordLength int
	logger            logger.Interface
}

func NewCreateUserUseCase(store CredentialStore, policy UserPolicy, minPasswordLength int, logger logger.Interface) *CreateUserUseCase {
	return &CreateUserUseCase{
		store:             store,
		policy:            policy,
		minPasswordLength: minPasswordLength,
		logger:            logger,
	}
}

func (uc *CreateUserUseCase) Execute(ctx context.Context, cmd CreateUserCommand) (*CreateUserResult, error) {
	if !uc.policy.CanManageUsers(cmd.Actor) {
		return nil, errors.NewForbiddenError("only administrators can create users")
	}

	cmd.Username = strings.TrimSpace(cmd.Username)
	cmd.Role = strings.ToLower(strings.TrimSpace(cmd.Role))
	if err := utils.ValidateStruct(cmd); err != nil {
		return nil, err
	}
	if utf8.RuneCountInString(cmd.Password) < uc.minPasswordLength {
		return nil, errors.NewValidationError("Validation failed",
			fmt.Sprintf("password must be at least %d characters long", uc.minPasswordLength))
	}

	role := authorization.UserRole(cmd.Role)
	created, err := uc.store.CreateUser(ctx, cmd.Username, cmd.Password, role)
	if err != nil {
		if errors.IsAppError(err) {
			return nil, err
		}
		uc.logger.Errorw("failed to create user", "username", cmd.Username, "error", err)
		return nil, errors.NewInternalError("failed to create user")
	}
	if !created {
		return nil, errors.NewConflictError("username already exists", cmd.Username)
	}

	uc.logger.Infow("user created by admin", "username", cmd.Username, "role", role, "actor_id", cmd.Actor.ID)

	return &CreateUserResult{Username: cmd.Username, Role: role}, nil
}
