package models

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownRole is returned when a role string is not one of the known roles.
var ErrUnknownRole = errors.New("unknown role")

// Role identifies what a user is allowed to see and do.
type Role string

const (
	RoleDeveloper Role = "developer" // Developer looking for work
	RoleClient    Role = "client"    // Business posting jobs
	RoleAdmin     Role = "admin"     // Platform administrator
)

// Roles lists every known role.
var Roles = []Role{RoleDeveloper, RoleClient, RoleAdmin}

// ParseRole converts a string into a Role. "business" is accepted as an
// alias for the client role.
func ParseRole(s string) (Role, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case string(RoleDeveloper):
		return RoleDeveloper, nil
	case string(RoleClient), "business":
		return RoleClient, nil
	case string(RoleAdmin):
		return RoleAdmin, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownRole, s)
	}
}

// Valid returns true if r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleDeveloper, RoleClient, RoleAdmin:
		return true
	default:
		return false
	}
}

// Landing returns the path a user with this role is sent to after login.
func (r Role) Landing() string {
	switch r {
	case RoleDeveloper:
		return "/developer-dashboard"
	case RoleClient:
		return "/business-dashboard"
	case RoleAdmin:
		return "/admin-dashboard"
	default:
		return "/"
	}
}

// Title is the human facing name of the role.
func (r Role) Title() string {
	switch r {
	case RoleDeveloper:
		return "Developer"
	case RoleClient:
		return "Business"
	case RoleAdmin:
		return "Admin"
	default:
		return "Unknown"
	}
}

func (r Role) String() string {
	return string(r)
}
