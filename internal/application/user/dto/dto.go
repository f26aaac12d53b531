package dto

import (
	"time"

	"ticketapp/internal/domain/user"
)

// LoginRequest is the body of POST /auth/login.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// CreateUserRequest is the admin console form for a new account.
type CreateUserRequest struct {
	Username string `json:"username"`
	Password        string `json:"password"`
	PasswordConfirm string `json:"password_confirm,omitempty"`
	Role            string `json:"role"`
}

type UpdateRoleRequest struct {
	Role string `json:"role"`
}

// UserDTO is the public view of an account. Password hashes never leave
// the credential store.
type UserDTO struct {
	ID        uint      `json:"id" yaml:"id"`
	Username  string    `json:"username" yaml:"username"`
	Role      string    `json:"role" yaml:"role"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
}

type LoginResponse struct {
	AccessToken string   `json:"access_token"`
	TokenType   string   `json:"token_type"`
	ExpiresIn   int64    `json:"expires_in"`
	User        *UserDTO `json:"user"`
}

func ToUserDTO(u *user.User) *UserDTO {
	if u == nil {
		return nil
	}
	return &UserDTO{
		ID:        u.ID,
		Username:  u.Username,
		Role:      u.Role.String(),
		CreatedAt: u.CreatedAt,
	}
}

func ToUserDTOList(users []*user.User) []*UserDTO {
	result := make([]*UserDTO, 0, len(users))
	for _, u := range users {
		result = append(result, ToUserDTO(u))
	}
	return result
}
