package auth

import "github.com/taskhive/taskhive-api/internal/models"

// Identity is the authenticated caller as resolved by the authentication
// middleware: the user id plus the role the checks below run against.
type Identity struct {
	ID   uint64
	Role models.Role
}

// IsAdmin reports whether the caller holds the admin role.
func (i Identity) IsAdmin() bool {
	return i.Role == models.RoleAdmin
}
