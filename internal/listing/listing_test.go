package listing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wolfeidau/devmarket/internal/models"
)

func TestGroupJobsByBusiness(t *testing.T) {
	acme := &models.BusinessSummary{ID: 7, BusinessName: "Acme"}
	globex := &models.BusinessSummary{ID: 3, BusinessName: "Globex"}

	list := models.JobList{
		Jobs: []models.Job{
			{ID: 1, Title: "a", Client: acme},
			{ID: 2, Title: "b", Client: globex},
			{ID: 3, Title: "c"},
			{ID: 4, Title: "d", Client: acme},
			{ID: 5, Title: "e", ClientID: 9},
			{ID: 6, Title: "f", ClientID: 11},
		},
		Clients: []models.BusinessSummary{{ID: 9, BusinessName: "Initech"}},
	}

	groups := GroupJobsByBusiness(list)
	require.Len(t, groups, 3)

	assert.Equal(t, "Globex", groups[0].Business.BusinessName)
	assert.Len(t, groups[0].Jobs, 1)

	assert.Equal(t, "Acme", groups[1].Business.BusinessName)
	require.Len(t, groups[1].Jobs, 2)
	assert.Equal(t, int64(1), groups[1].Jobs[0].ID)
	assert.Equal(t, int64(4), groups[1].Jobs[1].ID)

	assert.Equal(t, "Initech", groups[2].Business.BusinessName)

	assert.Empty(t, GroupJobsByBusiness(models.JobList{}))
}

func TestGroupDevelopersByProfession(t *testing.T) {
	devs := []models.User{
		{ID: 1, DeveloperProfile: &models.DeveloperProfile{Profession: "Frontend"}},
		{ID: 2},
		{ID: 3, DeveloperProfile: &models.DeveloperProfile{Profession: "Backend"}},
		{ID: 4, DeveloperProfile: &models.DeveloperProfile{Profession: "Frontend"}},
	}

	groups := GroupDevelopersByProfession(devs)
	require.Len(t, groups, 3)

	assert.Equal(t, "Backend", groups[0].Name)
	assert.Equal(t, "Frontend", groups[1].Name)
	assert.Len(t, groups[1].Users, 2)
	assert.Equal(t, models.NotSpecified, groups[2].Name)
	assert.Equal(t, int64(2), groups[2].Users[0].ID)
}

func TestGroupClientsByCategory(t *testing.T) {
	clients := []models.User{
		{ID: 1, BusinessCategory: "Retail"},
		{ID: 2, ClientProfile: &models.ClientProfile{BusinessCategory: "Finance"}},
		{ID: 3},
	}

	groups := GroupClientsByCategory(clients)
	require.Len(t, groups, 3)
	assert.Equal(t, []string{"Finance", "Retail", models.NotSpecified}, []string{groups[0].Name, groups[1].Name, groups[2].Name})
}

func TestSearchDevelopers(t *testing.T) {
	devs := []models.User{
		{ID: 1, FirstName: "Ada", Email: "ada@example.com"},
		{ID: 2, FirstName: "Grace", Email: "hopper@navy.mil"},
		{ID: 3, FirstName: "Linus", Email: "linus@kernel.org"},
	}

	tests := []struct {
		query string
		want  []int64
	}{
		{query: "", want: []int64{1, 2, 3}},
		{query: "ADA", want: []int64{1}},
		{query: "navy", want: []int64{2}},
		{query: "example", want: []int64{1}},
		{query: "zzz", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			var got []int64
			for _, d := range SearchDevelopers(devs, tt.query) {
				got = append(got, d.ID)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}
