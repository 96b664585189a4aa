package auth

import (
	"errors"
	"fmt"
	"strings"

	"github.com/wolfeidau/devmarket/internal/models"
)

// MinPasswordLength is the shortest password accepted at signup.
const MinPasswordLength = 6

// Validation errors, their text is shown to the user as is.
var (
	ErrDeveloperFieldsRequired = errors.New("Email, Username, Profession, Profile Picture, and Password are required") //nolint:staticcheck
	ErrFieldsRequired          = errors.New("All fields are required")                                                   //nolint:staticcheck
	ErrPasswordMismatch        = errors.New("Passwords do not match")                                                    //nolint:staticcheck
	ErrPasswordTooShort        = fmt.Errorf("Password must be at least %d characters", MinPasswordLength)                //nolint:staticcheck
	ErrCredentialsRequired     = errors.New("Email and password are required")                                           //nolint:staticcheck
)

// Registration is the signup form for any role. Only the fields of the
// selected role are sent.
type Registration struct {
	Role            models.Role
	Email           string
	Password        string
	ConfirmPassword string

	// developer
	Username        string
	Profession      string
	ProfilePicture  string
	GithubAccount   string
	LinkedinAccount string

	// client
	FullName            string
	BusinessName        string
	BusinessCategory    string
	BusinessDescription string
	BusinessLogo        string

	// admin
	FirstName string
}

type developerSignup struct {
	Role            models.Role `json:"role"`
	Email           string      `json:"email"`
	Username        string      `json:"username"`
	Profession      string      `json:"profession"`
	ProfilePicture  string      `json:"profile_picture"`
	GithubAccount   string      `json:"github_account,omitempty"`
	LinkedinAccount string      `json:"linkedin_account,omitempty"`
	Password        string      `json:"password"`
}

type clientSignup struct {
	Role                models.Role `json:"role"`
	Email               string      `json:"email"`
	FullName            string      `json:"fullname"`
	BusinessName        string      `json:"business_name"`
	BusinessCategory    string      `json:"business_category"`
	BusinessDescription string      `json:"business_description"`
	BusinessLogo        string      `json:"business_logo"`
	Password            string      `json:"password"`
}

type adminSignup struct {
	Role      models.Role `json:"role"`
	Email     string      `json:"email"`
	FirstName string      `json:"firstname"`
	Password  string      `json:"password"`
}

func blank(values ...string) bool {
	for _, v := range values {
		if strings.TrimSpace(v) == "" {
			return true
		}
	}
	return false
}

// Validate checks the form before anything is sent.
func (r Registration) Validate() error {
	switch r.Role {
	case models.RoleDeveloper:
		if blank(r.Email, r.Username, r.Profession, r.ProfilePicture, r.Password) {
			return ErrDeveloperFieldsRequired
		}
	case models.RoleClient:
		if blank(r.Email, r.FullName, r.BusinessName, r.BusinessCategory, r.BusinessDescription, r.BusinessLogo, r.Password) {
			return ErrFieldsRequired
		}
	case models.RoleAdmin:
		if blank(r.Email, r.FirstName, r.Password) {
			return ErrFieldsRequired
		}
	default:
		return fmt.Errorf("%w: %q", models.ErrUnknownRole, string(r.Role))
	}

	if r.Password != r.ConfirmPassword {
		return ErrPasswordMismatch
	}

	if len(r.Password) < MinPasswordLength {
		return ErrPasswordTooShort
	}

	return nil
}

// Payload builds the role specific signup body.
func (r Registration) Payload() (any, error) {
	switch r.Role {
	case models.RoleDeveloper:
		return developerSignup{
			Role:            r.Role,
			Email:           r.Email,
			Username:        r.Username,
			Profession:      r.Profession,
			ProfilePicture:  r.ProfilePicture,
			GithubAccount:   r.GithubAccount,
			LinkedinAccount: r.LinkedinAccount,
			Password:        r.Password,
		}, nil
	case models.RoleClient:
		return clientSignup{
			Role:                r.Role,
			Email:               r.Email,
			FullName:            r.FullName,
			BusinessName:        r.BusinessName,
			BusinessCategory:    r.BusinessCategory,
			BusinessDescription: r.BusinessDescription,
			BusinessLogo:        r.BusinessLogo,
			Password:            r.Password,
		}, nil
	case models.RoleAdmin:
		return adminSignup{
			Role:      r.Role,
			Email:     r.Email,
			FirstName: r.FirstName,
			Password:  r.Password,
		}, nil
	default:
		return nil, fmt.Errorf("%w: %q", models.ErrUnknownRole, string(r.Role))
	}
}
