package http

import (
	"ticketapp/internal/application/user/usecases"
	"ticketapp/internal/infrastructure/auth"
	"ticketapp/internal/shared/authorization"
)

// jwtServiceAdapter adapts auth.JWTService to usecases.TokenGenerator.
type jwtServiceAdapter struct {
	*auth.JWTService
}

func (a *jwtServiceAdapter) Generate(userID uint, username string, role authorization.UserRole) (*usecases.AccessToken, error) {
	token, err := a.JWTService.Generate(userID, username, role)
	if err != nil {
		return nil, err
	}
	return &usecases.AccessToken{
		Token:     token.Token,
		ExpiresIn: token.ExpiresIn,
	}, nil
}
