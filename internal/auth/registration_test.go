package auth

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wolfeidau/devmarket/internal/models"
)

func TestRegistrationValidate(t *testing.T) {
	developer := Registration{
		Role:            models.RoleDeveloper,
		Email:           "dev@example.com",
		Username:        "dev",
		Profession:      "Backend",
		ProfilePicture:  "me.png",
		Password:        "secret1",
		ConfirmPassword: "secret1",
	}
	client := Registration{
		Role:                models.RoleClient,
		Email:               "biz@example.com",
		FullName:            "Grace Hopper",
		BusinessName:        "Acme",
		BusinessCategory:    "Retail",
		BusinessDescription: "Widgets",
		BusinessLogo:        "logo.png",
		Password:            "secret1",
		ConfirmPassword:     "secret1",
	}
	admin := Registration{
		Role:            models.RoleAdmin,
		Email:           "admin@example.com",
		FirstName:       "Ada",
		Password:        "secret1",
		ConfirmPassword: "secret1",
	}

	tests := []struct {
		name   string
		modify func(r Registration) Registration
		base   Registration
		want   error
	}{
		{name: "developer ok", base: developer},
		{name: "client ok", base: client},
		{name: "admin ok", base: admin},
		{
			name: "developer missing picture",
			base: developer,
			modify: func(r Registration) Registration {
				r.ProfilePicture = ""
				return r
			},
			want: ErrDeveloperFieldsRequired,
		},
		{
			name: "client missing logo",
			base: client,
			modify: func(r Registration) Registration {
				r.BusinessLogo = ""
				return r
			},
			want: ErrFieldsRequired,
		},
		{
			name: "admin missing first name",
			base: admin,
			modify: func(r Registration) Registration {
				r.FirstName = " "
				return r
			},
			want: ErrFieldsRequired,
		},
		{
			name: "password mismatch",
			base: admin,
			modify: func(r Registration) Registration {
				r.ConfirmPassword = "secret2"
				return r
			},
			want: ErrPasswordMismatch,
		},
		{
			name: "password too short",
			base: admin,
			modify: func(r Registration) Registration {
				r.Password = "abc"
				r.ConfirmPassword = "abc"
				return r
			},
			want: ErrPasswordTooShort,
		},
		{
			name: "unknown role",
			base: admin,
			modify: func(r Registration) Registration {
				r.Role = "root"
				return r
			},
			want: models.ErrUnknownRole,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg := tt.base
			if tt.modify != nil {
				reg = tt.modify(reg)
			}

			err := reg.Validate()
			if tt.want == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tt.want)
		})
	}

	assert.Equal(t, "Password must be at least 6 characters", ErrPasswordTooShort.Error())
}

func TestRegistrationPayload(t *testing.T) {
	t.Run("developer omits empty social accounts", func(t *testing.T) {
		payload, err := Registration{
			Role:           models.RoleDeveloper,
			Email:          "dev@example.com",
			Username:       "dev",
			Profession:     "Backend",
			ProfilePicture: "me.png",
			GithubAccount:  "gh",
			Password:       "secret1",
			FullName:       "ignored",
		}.Payload()
		require.NoError(t, err)

		data, err := json.Marshal(payload)
		require.NoError(t, err)
		assert.JSONEq(t, `{
			"role": "developer",
			"email": "dev@example.com",
			"username": "dev",
			"profession": "Backend",
			"profile_picture": "me.png",
			"github_account": "gh",
			"password": "secret1"
		}`, string(data))
	})

	t.Run("client", func(t *testing.T) {
		payload, err := Registration{
			Role:                models.RoleClient,
			Email:               "biz@example.com",
			FullName:            "Grace Hopper",
			BusinessName:        "Acme",
			BusinessCategory:    "Retail",
			BusinessDescription: "Widgets",
			BusinessLogo:        "logo.png",
			Password:            "secret1",
		}.Payload()
		require.NoError(t, err)

		data, err := json.Marshal(payload)
		require.NoError(t, err)
		assert.JSONEq(t, `{
			"role": "client",
			"email": "biz@example.com",
			"fullname": "Grace Hopper",
			"business_name": "Acme",
			"business_category": "Retail",
			"business_description": "Widgets",
			"business_logo": "logo.png",
			"password": "secret1"
		}`, string(data))
	})

	t.Run("admin", func(t *testing.T) {
		payload, err := Registration{
			Role:      models.RoleAdmin,
			Email:     "admin@example.com",
			FirstName: "Ada",
			Password:  "secret1",
			Username:  "ignored",
		}.Payload()
		require.NoError(t, err)

		data, err := json.Marshal(payload)
		require.NoError(t, err)
		assert.JSONEq(t, `{"role":"admin","email":"admin@example.com","firstname":"Ada","password":"secret1"}`, string(data))
	})

	t.Run("unknown role", func(t *testing.T) {
		_, err := Registration{Role: "root"}.Payload()
		require.ErrorIs(t, err, models.ErrUnknownRole)
	})
}
