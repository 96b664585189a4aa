package models

import (
	"fmt"
	"strings"
	"time"
)

// Identity is the authenticated user's role-tagged summary as returned by
// signup and login, and as persisted alongside the access token.
type Identity struct {
	ID        int64  `json:"id"`
	Role      Role   `json:"role"`
	Email     string `json:"email,omitempty"`
	Username  string `json:"username,omitempty"`
	FullName  string `json:"fullname,omitempty"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
}

// Validate checks the identity carries a known role.
func (i Identity) Validate() error {
	if !i.Role.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownRole, string(i.Role))
	}
	return nil
}

// DisplayName picks the best available name for the user.
func (i Identity) DisplayName() string {
	switch {
	case i.FullName != "":
		return i.FullName
	case i.FirstName != "":
		return strings.TrimSpace(i.FirstName + " " + i.LastName)
	case i.Username != "":
		return i.Username
	default:
		return i.Email
	}
}

// AuthResponse is the body returned by a successful signup or login.
type AuthResponse struct {
	User        Identity `json:"user"`
	AccessToken string   `json:"access_token"`
}

// Session is a point-in-time copy of the client-held authentication state.
// Identity is nil when unauthenticated.
type Session struct {
	Identity      *Identity
	Token         string
	EstablishedAt time.Time
}

// IsAuthenticated returns true when both identity and token are present.
func (s Session) IsAuthenticated() bool {
	return s.Identity != nil && s.Token != ""
}
