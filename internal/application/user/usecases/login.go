package usecases

import (
	"context"
	"strings"

	"ticketapp/internal/domain/user"
	"ticketapp/internal/shared/errors"
	"ticketapp/internal/shared/logger"
)

type LoginCommand struct {
	Username string
	Password string
}

type LoginResult struct {
	User        *user.User
	AccessToken string
	ExpiresIn   int64
}

type LoginUseCase struct {
	store  CredentialStore
	tokens TokenGenerator
	logger logger.Interface
}

func NewLoginUseCase(store CredentialStore, tokens TokenGenerator, logger logger.Interface) *LoginUseCase {
	return &LoginUseCase{
		store:  store,
		tokens: tokens,
		logger: logger,
	}
}

// Execute checks the password and issues an access token. Unknown users and
// wrong passwords produce the same error.
func (uc *LoginUseCase) Execute(ctx context.Context, cmd LoginCommand) (*LoginResult, error) {
	username := strings.TrimSpace(cmd.Username)
	if username == "" || cmd.Password == "" {
		return nil, errors.NewValidationError("username and password are required")
	}

	u, err := uc.store.VerifyCredentials(ctx, username, cmd.Password)
	if err != nil {
		uc.logger.Errorw("failed to verify credentials", "username", username, "error", err)
		return nil, errors.NewInternalError("failed to verify credentials")
	}
	if u == nil {
		uc.logger.Warnw("login failed", "username", username)
		return nil, errors.NewUnauthorizedError("invalid username or password")
	}

	token, err := uc.tokens.Generate(u.ID, u.Username, u.Role)
	if err != nil {
		uc.logger.Errorw("failed to issue access token", "user_id", u.ID, "error", err)
		return nil, errors.NewInternalError("failed to issue access token")
	}

	uc.logger.Infow("user logged in", "user_id", u.ID, "username", u.Username)

	return &LoginResult{
		User:        u,
		AccessToken: token.Token,
		ExpiresIn:   token.ExpiresIn,
	}, nil
}
