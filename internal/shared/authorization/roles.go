// Package authorization holds the role vocabulary shared by the user domain,
// the permission policy and the HTTP layer.
package authorization

import (
	"fmt"
	"strings"
)

type UserRole string

const (
	RoleAdmin UserRole = "admin"
	RoleUser  UserRole = "user"
)

func (r UserRole) String() string {
	return string(r)
}

func (r UserRole) IsAdmin() bool {
	return r == RoleAdmin
}

func (r UserRole) IsValid() bool {
	return r == RoleAdmin || r == RoleUser
}

// Roles lists every assignable role in display order.
func Roles() []UserRole {
	return []UserRole{RoleUser, RoleAdmin}
}

// ParseUserRole normalises s (trimmed, lower-cased) and rejects unknown roles.
func ParseUserRole(s string) (UserRole, error) {
	role := UserRole(strings.ToLower(strings.TrimSpace(s)))
	if !role.IsValid() {
		return "", fmt.Errorf("invalid role %q: must be one of user, admin", s)
	}
	return role, nil
}
