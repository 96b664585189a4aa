package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRole(t *testing.T) {
	tests := []struct {
		in      string
		want    Role
		wantErr bool
	}{
		{in: "developer", want: RoleDeveloper},
		{in: "Client", want: RoleClient},
		{in: "business", want: RoleClient},
		{in: " admin ", want: RoleAdmin},
		{in: "superuser", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseRole(tt.in)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrUnknownRole)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRoleLanding(t *testing.T) {
	assert.Equal(t, "/developer-dashboard", RoleDeveloper.Landing())
	assert.Equal(t, "/business-dashboard", RoleClient.Landing())
	assert.Equal(t, "/admin-dashboard", RoleAdmin.Landing())
	assert.Equal(t, "/", Role("guest").Landing())
	assert.False(t, Role("guest").Valid())
}

func TestIdentityValidate(t *testing.T) {
	require.NoError(t, Identity{ID: 1, Role: RoleAdmin}.Validate())
	require.ErrorIs(t, Identity{ID: 1, Role: "root"}.Validate(), ErrUnknownRole)
}

func TestIdentityDisplayName(t *testing.T) {
	assert.Equal(t, "Acme Ltd", Identity{FullName: "Acme Ltd", Email: "a@b.c"}.DisplayName())
	assert.Equal(t, "Ada Lovelace", Identity{FirstName: "Ada", LastName: "Lovelace"}.DisplayName())
	assert.Equal(t, "ada", Identity{Username: "ada", Email: "a@b.c"}.DisplayName())
	assert.Equal(t, "a@b.c", Identity{Email: "a@b.c"}.DisplayName())
}

func TestSessionIsAuthenticated(t *testing.T) {
	assert.False(t, Session{}.IsAuthenticated())
	assert.False(t, Session{Token: "tok"}.IsAuthenticated())
	assert.False(t, Session{Identity: &Identity{ID: 1}}.IsAuthenticated())
	assert.True(t, Session{Identity: &Identity{ID: 1}, Token: "tok"}.IsAuthenticated())
}

func TestJobListUnmarshal(t *testing.T) {
	var arr JobList
	require.NoError(t, json.Unmarshal([]byte(`[{"id":1,"title":"a"}]`), &arr))
	assert.Len(t, arr.Jobs, 1)

	var obj JobList
	require.NoError(t, json.Unmarshal([]byte(`{"jobs":[{"id":1,"title":"a"},{"id":2,"title":"b"}],"clients":[{"id":9}]}`), &obj))
	assert.Len(t, obj.Jobs, 2)
	assert.Len(t, obj.Clients, 1)

	var bad JobList
	require.Error(t, json.Unmarshal([]byte(`"nope"`), &bad))
}

func TestJobDefaults(t *testing.T) {
	j := Job{Title: "Engineer", HoursPerWeek: 20}
	j.ApplyDefaults()

	assert.Equal(t, DefaultContractType, j.ContractType)
	assert.Equal(t, 20, j.HoursPerWeek)
	assert.Equal(t, DefaultLocationType, j.LocationType)
	assert.Equal(t, DefaultJobStatus, j.Status)
	assert.NotNil(t, j.Requirements)
	require.NoError(t, j.Validate())

	require.ErrorIs(t, Job{}.Validate(), ErrJobTitleRequired)
	require.Error(t, Job{Title: "x", HoursPerWeek: -1}.Validate())
}

func TestHackathonNormalize(t *testing.T) {
	end := "2025-03-02T18:30"
	h := Hackathon{Title: "Go Jam", StartDate: "2025-03-01", EndDate: &end}
	require.NoError(t, h.Normalize())

	assert.Equal(t, "2025-03-01T00:00:00Z", h.StartDate)
	require.NotNil(t, h.EndDate)
	assert.Equal(t, "2025-03-02T18:30:00Z", *h.EndDate)
	assert.Equal(t, "online", h.Location)

	missing := Hackathon{Title: "Go Jam"}
	require.ErrorIs(t, missing.Normalize(), ErrHackathonFieldsRequired)

	bad := Hackathon{Title: "Go Jam", StartDate: "next week"}
	require.ErrorIs(t, bad.Normalize(), ErrInvalidDate)
}

func TestUserAccessors(t *testing.T) {
	flat := User{BusinessName: "Acme", BusinessCategory: "Retail"}
	assert.Equal(t, "Acme", flat.Business().BusinessName)
	assert.Equal(t, "Retail", flat.Category())

	nested := User{
		BusinessName:  "Old",
		ClientProfile: &ClientProfile{BusinessName: "New"},
	}
	assert.Equal(t, "New", nested.Business().BusinessName)
	assert.Equal(t, NotSpecified, nested.Category())

	dev := User{FirstName: "Ada", DeveloperProfile: &DeveloperProfile{Profession: "Backend"}}
	assert.Equal(t, "Backend", dev.Profession())
	assert.Equal(t, "Ada", dev.Name())
	assert.Equal(t, NotSpecified, User{}.Profession())
}
