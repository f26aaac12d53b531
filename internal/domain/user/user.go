// Package user holds the account model and its persistence contract.
package user

import (
	"errors"
	"time"

	"ticketapp/internal/shared/authorization"
)

// ErrUsernameTaken is returned by Repository.Create when the username exists.
var ErrUsernameTaken = errors.New("username already exists")

// User is the public account record. It never carries the password hash.
type User struct {
	ID        uint
	Username  string
	Role      authorization.UserRole
	CreatedAt time.Time
}

func (u *User) IsAdmin() bool {
	return u != nil && u.Role.IsAdmin()
}

// Ref is the lightweight record used for assignee selectors.
type Ref struct {
	ID       uint   `json:"id" yaml:"id"`
	Username string `json:"username" yaml:"username"`
}

// Credentials pairs a user with the stored bcrypt hash. Only the credential
// check reads it.
type Credentials struct {
	User         User
	PasswordHash []byte
}

// PasswordHasher produces and checks salted adaptive-cost password hashes.
type PasswordHasher interface {
	Hash(password string) ([]byte, error)
	Verify(password string, hash []byte) error
	// VerifyDummy spends the cost of one Verify without a real hash.
	VerifyDummy(password string)
}
