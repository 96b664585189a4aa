package guard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wolfeidau/devmarket/internal/models"
	"github.com/wolfeidau/devmarket/internal/session"
)

func TestNavigate(t *testing.T) {
	tests := []struct {
		name      string
		role      models.Role // empty means logged out
		path      string
		wantRoute string
		want      Decision
	}{
		{name: "home is public", path: "/", wantRoute: RouteHome, want: Decision{Outcome: Admitted}},
		{name: "login is public", path: "/login", wantRoute: RouteLogin, want: Decision{Outcome: Admitted}},
		{name: "signup is public", path: "/signup/developer", wantRoute: RouteSignupDeveloper, want: Decision{Outcome: Admitted}},
		{name: "dashboard needs login", path: "/business-dashboard", wantRoute: RouteBusinessDashboard, want: Decision{Outcome: DeniedUnauthenticated, Redirect: "/login"}},
		{name: "client dashboard", role: models.RoleClient, path: "/business-dashboard", wantRoute: RouteBusinessDashboard, want: Decision{Outcome: Admitted}},
		{name: "developer on client dashboard", role: models.RoleDeveloper, path: "/business-dashboard", wantRoute: RouteBusinessDashboard, want: Decision{Outcome: DeniedWrongRole, Redirect: "/"}},
		{name: "developer dashboard", role: models.RoleDeveloper, path: "/developer-dashboard", wantRoute: RouteDeveloperDashboard, want: Decision{Outcome: Admitted}},
		{name: "improve skill", role: models.RoleDeveloper, path: "/improve-skill", wantRoute: RouteImproveSkill, want: Decision{Outcome: Admitted}},
		{name: "business profile", role: models.RoleDeveloper, path: "/business-profile/12", wantRoute: RouteBusinessProfile, want: Decision{Outcome: Admitted}},
		{name: "admin on business profile", role: models.RoleAdmin, path: "/business-profile/12", wantRoute: RouteBusinessProfile, want: Decision{Outcome: DeniedWrongRole, Redirect: "/"}},
		{name: "profession management", role: models.RoleAdmin, path: "/admin/profession-management", wantRoute: RouteProfessionManagement, want: Decision{Outcome: Admitted}},
		{name: "client on admin view", role: models.RoleClient, path: "/admin-dashboard", wantRoute: RouteAdminDashboard, want: Decision{Outcome: DeniedWrongRole, Redirect: "/"}},
		{name: "unknown path", role: models.RoleAdmin, path: "/nowhere", want: Decision{Outcome: NotFound, Redirect: "/"}},
		{name: "non numeric business id", role: models.RoleDeveloper, path: "/business-profile/acme", want: Decision{Outcome: NotFound, Redirect: "/"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := session.NewStore(session.NewMemoryKV())
			if tt.role != "" {
				store = loggedIn(t, tt.role)
			}

			routes := NewRoutes(New(store))
			m := routes.Navigate(tt.path)

			assert.Equal(t, tt.want, m.Decision)
			assert.Equal(t, tt.wantRoute, m.Route.Name)
		})
	}
}

func TestNavigateVars(t *testing.T) {
	routes := NewRoutes(New(loggedIn(t, models.RoleDeveloper)))

	m := routes.Navigate("/business-profile/42?tab=jobs")
	require.True(t, m.Decision.Admitted())
	assert.Equal(t, "42", m.Vars["id"])
}

func TestRoleLandingPagesAreRoutes(t *testing.T) {
	for _, role := range models.Roles {
		routes := NewRoutes(New(loggedIn(t, role)))
		m := routes.Navigate(role.Landing())
		assert.True(t, m.Decision.Admitted(), "landing page of %s", role)
	}
}

func TestURL(t *testing.T) {
	routes := NewRoutes(New(session.NewStore(session.NewMemoryKV())))

	u, err := routes.URL(RouteBusinessProfile, "id", "7")
	require.NoError(t, err)
	assert.Equal(t, "/business-profile/7", u)

	_, err = routes.URL("missing")
	var unknown *UnknownRouteError
	require.ErrorAs(t, err, &unknown)
}
