package domain

import (
	"fmt"
	"strings"
)

// Role роль пользователя
type Role string

const (
	RoleAdmin Role = "admin"
	RoleGuest Role = "guest"
)

// IsValid returns true for known roles
func (r Role) IsValid() bool {
	return r == RoleAdmin || r == RoleGuest
}

// ParseRole конвертирует строку в Role с валидацией
func ParseRole(s string) (Role, error) {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	if !r.IsValid() {
		return "", fmt.Errorf("%w: unknown role %q", ErrInvalidInput, s)
	}
	return r, nil
}

// Actor пользователь, выполняющий операцию
type Actor struct {
	UserID int64
	Role   Role
}

// IsAdmin returns true if the actor has elevated privileges
func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}

// IsGuest returns true if the actor is an ordinary user
func (a Actor) IsGuest() bool {
	return a.Role == RoleGuest
}

// IsAuthenticated returns true if the actor carries an identity and a known role
func (a Actor) IsAuthenticated() bool {
	return a.UserID > 0 && a.Role.IsValid()
}
