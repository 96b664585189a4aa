package commands

import (
	"context"
	"fmt"
	"strconv"

	"github.com/common-nighthawk/go-figure"

	"github.com/wolfeidau/devmarket/internal/guard"
	"github.com/wolfeidau/devmarket/internal/listing"
	"github.com/wolfeidau/devmarket/internal/models"
)

const appName = "devmarket"

// HomeCmd shows the landing view.
type HomeCmd struct {
	NoBanner bool `help:"Skip the banner" name:"no-banner" default:"false"`
}

func (c *HomeCmd) Run(ctx context.Context, globals *Globals) error {
	return withApp(ctx, globals, func(app *App) error {
		if !c.NoBanner {
			app.printf("%s\n", figure.NewFigure(appName, "cybermedium", true).String())
		}
		return showHome(ctx, app)
	})
}

func showHome(ctx context.Context, app *App) error {
	identity, ok := app.Store.Identity()
	if !ok {
		app.println("Connect developers with businesses.")
		app.println()
		app.println("  devmarket login --email EMAIL")
		app.println("  devmarket signup developer|business|admin")
		return nil
	}

	app.printf("Welcome back, %s (%s)\n", identity.DisplayName(), identity.Role.Title())
	if expires, ok := app.Store.ExpiresAt(); ok {
		app.printf("Session valid until %s\n", expires.Format("15:04:05"))
	}

	if identity.Role == models.RoleDeveloper {
		user, err := app.API.Developers.GetProfile(ctx, identity.ID)
		if err != nil {
			return fmt.Errorf("failed to get profile: %w", err)
		}
		if p := user.DeveloperProfile; p != nil {
			app.printf("Points: %d proficiency, %d courtesy\n", p.ProficiencyPoints, p.CourtesyPoints)
		}
	}

	app.printf("\nYour dashboard: devmarket open %s\n", identity.Role.Landing())
	return nil
}

// OpenCmd navigates to a view by path, the way a browser location would.
type OpenCmd struct {
	Path string `arg:"" help:"View path, e.g. /developer-dashboard or /business-profile/12" default:"/"`
}

func (c *OpenCmd) Run(ctx context.Context, globals *Globals) error {
	return withApp(ctx, globals, func(app *App) error {
		identity, m, err := app.navigate(c.Path)
		if err != nil {
			return err
		}

		return openView(ctx, app, identity, m.Route.Name, m.Vars)
	})
}

func openView(ctx context.Context, app *App, identity models.Identity, route string, vars map[string]string) error {
	switch route {
	case guard.RouteHome:
		return showHome(ctx, app)
	case guard.RouteLogin:
		app.println("Log in with: devmarket login --email EMAIL")
	case guard.RouteSignupBusiness:
		app.println("Sign up with: devmarket signup business --email EMAIL --fullname NAME --business-name NAME --business-category CATEGORY")
	case guard.RouteSignupDeveloper:
		app.println("Sign up with: devmarket signup developer --email EMAIL --username NAME --profession PROFESSION")
	case guard.RouteSignupAdmin:
		app.println("Sign up with: devmarket signup admin --email EMAIL --firstname NAME")
	case guard.RouteBusinessDashboard:
		user, err := app.API.Clients.GetProfile(ctx, identity.ID)
		if err != nil {
			return fmt.Errorf("failed to get profile: %w", err)
		}
		printBusiness(app, *user)

		applicants, err := app.API.Clients.GetApplicants(ctx, identity.ID)
		if err != nil {
			return fmt.Errorf("failed to get applicants: %w", err)
		}
		app.println()
		printApplicants(app, applicants)
	case guard.RouteDeveloperDashboard:
		list, err := app.API.Jobs.List(ctx)
		if err != nil {
			return fmt.Errorf("failed to list jobs: %w", err)
		}
		printBusinessJobs(app, listing.GroupJobsByBusiness(*list))
	case guard.RouteImproveSkill:
		return showSkillGuide(ctx, app, identity.ID)
	case guard.RouteProfessionContent:
		return showProfessionContent(ctx, app, identity.ID)
	case guard.RouteBusinessProfile:
		id, err := strconv.ParseInt(vars["id"], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid business id %q: %w", vars["id"], err)
		}
		return showBusinessProfile(ctx, app, id)
	case guard.RouteAdminDashboard:
		devs, err := app.API.Admin.ListDevelopers(ctx)
		if err != nil {
			return fmt.Errorf("failed to list developers: %w", err)
		}
		clients, err := app.API.Admin.ListClients(ctx)
		if err != nil {
			return fmt.Errorf("failed to list businesses: %w", err)
		}
		app.println("Developers")
		printDevelopers(app, devs)
		app.println("\nBusinesses")
		printClients(app, clients)
	case guard.RouteProfessionManagement:
		professions, err := app.API.Professions.List(ctx)
		if err != nil {
			return fmt.Errorf("failed to list professions: %w", err)
		}
		for i, p := range professions {
			if i > 0 {
				app.println()
			}
			printProfession(app, p)
		}
	default:
		return fmt.Errorf("no view for route %q", route)
	}
	return nil
}
