package models

import (
	"fmt"
	"strings"
)

// Role is the privilege level of a user account.
type Role string

const (
	// RoleAdmin may register users and perform every secured operation.
	RoleAdmin Role = "admin"
	// RoleManager manages vendors and products.
	RoleManager Role = "manager"
	// RoleOperator is the lowest privilege and the registration default.
	RoleOperator Role = "operator"
)

// DefaultRole is assigned when a registration request omits the role.
const DefaultRole = RoleOperator

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleManager, RoleOperator:
		return true
	}
	return false
}

func (r Role) String() string {
	return string(r)
}

// ParseRole converts s (case-insensitive, surrounding spaces ignored) into a
// Role. An empty string yields [DefaultRole].
func ParseRole(s string) (Role, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return DefaultRole, nil
	}

	r := Role(s)
	if !r.Valid() {
		return "", fmt.Errorf("unknown role %q", s)
	}
	return r, nil
}
