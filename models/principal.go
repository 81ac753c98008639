package models

import "time"

// Principal is the authenticated caller attached to a request context by the
// auth middleware.
type Principal struct {
	UserID    int64
	Role      Role
	TokenID   string
	ExpiresAt time.Time
}

// HasRole reports whether the principal holds one of roles.
func (p Principal) HasRole(roles ...Role) bool {
	for _, r := range roles {
		if p.Role == r {
			return true
		}
	}
	return false
}
