package guard

import (
	"net/http"
	"net/url"

	"github.com/gorilla/mux"

	"github.com/wolfeidau/devmarket/internal/models"
)

// Route names.
const (
	RouteHome                 = "home"
	RouteLogin                = "login"
	RouteSignupBusiness       = "signup-business"
	RouteSignupDeveloper      = "signup-developer"
	RouteSignupAdmin          = "signup-admin"
	RouteBusinessDashboard    = "business-dashboard"
	RouteDeveloperDashboard   = "developer-dashboard"
	RouteImproveSkill         = "improve-skill"
	RouteProfessionContent    = "profession-content"
	RouteBusinessProfile      = "business-profile"
	RouteAdminDashboard       = "admin-dashboard"
	RouteProfessionManagement = "profession-management"
)

// Route is one navigable view.
type Route struct {
	Name    string
	Path    string
	Public  bool
	Allowed []models.Role
}

// DefaultRoutes is the navigation table of the application.
var DefaultRoutes = []Route{
	{Name: RouteHome, Path: "/", Public: true},
	{Name: RouteLogin, Path: "/login", Public: true},
	{Name: RouteSignupBusiness, Path: "/signup/business", Public: true},
	{Name: RouteSignupDeveloper, Path: "/signup/developer", Public: true},
	{Name: RouteSignupAdmin, Path: "/signup/admin", Public: true},
	{Name: RouteBusinessDashboard, Path: "/business-dashboard", Allowed: []models.Role{models.RoleClient}},
	{Name: RouteDeveloperDashboard, Path: "/developer-dashboard", Allowed: []models.Role{models.RoleDeveloper}},
	{Name: RouteImproveSkill, Path: "/improve-skill", Allowed: []models.Role{models.RoleDeveloper}},
	{Name: RouteProfessionContent, Path: "/profession-content", Allowed: []models.Role{models.RoleDeveloper}},
	{Name: RouteBusinessProfile, Path: "/business-profile/{id:[0-9]+}", Allowed: []models.Role{models.RoleDeveloper}},
	{Name: RouteAdminDashboard, Path: "/admin-dashboard", Allowed: []models.Role{models.RoleAdmin}},
	{Name: RouteProfessionManagement, Path: "/admin/profession-management", Allowed: []models.Role{models.RoleAdmin}},
}

// Match is a resolved navigation.
type Match struct {
	Route    Route
	Vars     map[string]string
	Decision Decision
}

// Routes resolves paths to views and guards them.
type Routes struct {
	guard  *Guard
	router *mux.Router
	routes map[string]Route
}

// NewRoutes builds the route table. DefaultRoutes is used when routes is empty.
func NewRoutes(guard *Guard, routes ...Route) *Routes {
	if len(routes) == 0 {
		routes = DefaultRoutes
	}

	r := &Routes{
		guard:  guard,
		router: mux.NewRouter(),
		routes: make(map[string]Route, len(routes)),
	}

	for _, route := range routes {
		r.router.NewRoute().Name(route.Name).Path(route.Path)
		r.routes[route.Name] = route
	}

	return r
}

// Navigate resolves path and applies the guard. Unknown paths redirect home.
func (r *Routes) Navigate(path string) Match {
	route, vars, ok := r.resolve(path)
	if !ok {
		return Match{Decision: Decision{Outcome: NotFound, Redirect: HomePath}}
	}

	m := Match{Route: route, Vars: vars}
	if route.Public {
		m.Decision = Decision{Outcome: Admitted}
		return m
	}

	m.Decision = r.guard.Check(route.Allowed...)
	return m
}

// URL builds the path of a named route.
func (r *Routes) URL(name string, pairs ...string) (string, error) {
	route := r.router.Get(name)
	if route == nil {
		return "", &UnknownRouteError{Name: name}
	}
	u, err := route.URLPath(pairs...)
	if err != nil {
		return "", err
	}
	return u.Path, nil
}

func (r *Routes) resolve(path string) (Route, map[string]string, bool) {
	u, err := url.Parse(path)
	if err != nil || u.Path == "" {
		return Route{}, nil, false
	}

	req := &http.Request{Method: http.MethodGet, URL: u}
	var rm mux.RouteMatch
	if !r.router.Match(req, &rm) || rm.Route == nil {
		return Route{}, nil, false
	}

	route, ok := r.routes[rm.Route.GetName()]
	return route, rm.Vars, ok
}

// UnknownRouteError is returned by URL for a name that is not registered.
type UnknownRouteError struct {
	Name string
}

func (e *UnknownRouteError) Error() string {
	return "unknown route " + e.Name
}
