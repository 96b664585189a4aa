package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/wolfeidau/devmarket/internal/listing"
	"github.com/wolfeidau/devmarket/internal/models"
)

// AdminCmd covers the admin dashboard.
type AdminCmd struct {
	Developers AdminDevelopersCmd `cmd:"" help:"List developers"`
	Clients    AdminClientsCmd    `cmd:"" help:"List businesses"`
	Assign     AdminAssignCmd     `cmd:"" help:"Assign a developer to a job"`
	Link       AdminLinkCmd       `cmd:"" help:"Link a developer to a business"`
	Points     AdminPointsCmd     `cmd:"" help:"Award points to a developer"`
}

type AdminDevelopersCmd struct {
	Search       string `help:"Filter by first name or email"`
	ByProfession bool   `help:"Group developers by profession" name:"by-profession" default:"false"`
	Watch        bool   `help:"Refresh on the poll interval until interrupted" default:"false"`
}

func (c *AdminDevelopersCmd) Run(ctx context.Context, globals *Globals) error {
	return withApp(ctx, globals, func(app *App) error {
		if _, _, err := app.navigate("/admin-dashboard"); err != nil {
			return err
		}

		fetch := func(ctx context.Context) error {
			devs, err := app.API.Admin.ListDevelopers(ctx)
			if err != nil {
				return fmt.Errorf("failed to list developers: %w", err)
			}
			if c.Search != "" {
				devs = listing.SearchDevelopers(devs, c.Search)
			}

			if c.ByProfession {
				for _, g := range listing.GroupDevelopersByProfession(devs) {
					app.printf("%s (%d)\n", g.Name, len(g.Users))
					printDevelopers(app, g.Users)
					app.println()
				}
				return nil
			}

			printDevelopers(app, devs)
			app.printf("\nTotal developers: %d\n", len(devs))
			return nil
		}

		if c.Watch {
			return watch(ctx, app, "admin-developers", "Developers", fetch)
		}
		return fetch(ctx)
	})
}

type AdminClientsCmd struct {
	ByCategory bool `help:"Group businesses by category" name:"by-category" default:"false"`
}

func (c *AdminClientsCmd) Run(ctx context.Context, globals *Globals) error {
	return withApp(ctx, globals, func(app *App) error {
		if _, _, err := app.navigate("/admin-dashboard"); err != nil {
			return err
		}

		clients, err := app.API.Admin.ListClients(ctx)
		if err != nil {
			return fmt.Errorf("failed to list businesses: %w", err)
		}

		if !c.ByCategory {
			printClients(app, clients)
			app.printf("\nTotal businesses: %d\n", len(clients))
			return nil
		}

		for _, g := range listing.GroupClientsByCategory(clients) {
			app.printf("%s (%d)\n", g.Name, len(g.Users))
			printClients(app, g.Users)
			app.println()
		}
		return nil
	})
}

type AdminAssignCmd struct {
	Job       int64 `help:"Job ID" required:""`
	Developer int64 `help:"Developer ID" required:""`
}

func (c *AdminAssignCmd) Run(ctx context.Context, globals *Globals) error {
	return withApp(ctx, globals, func(app *App) error {
		if _, _, err := app.navigate("/admin-dashboard"); err != nil {
			return err
		}

		if err := app.API.Admin.AssignDeveloper(ctx, c.Job, c.Developer); err != nil {
			return fmt.Errorf("failed to assign developer: %w", err)
		}

		app.printf("Developer %d assigned to job %d\n", c.Developer, c.Job)
		return nil
	})
}

type AdminLinkCmd struct {
	Developer int64 `help:"Developer ID" required:""`
	Client    int64 `help:"Business ID" required:""`
}

func (c *AdminLinkCmd) Run(ctx context.Context, globals *Globals) error {
	return withApp(ctx, globals, func(app *App) error {
		if _, _, err := app.navigate("/admin-dashboard"); err != nil {
			return err
		}

		if err := app.API.Admin.AddDeveloperToClient(ctx, c.Developer, c.Client); err != nil {
			return fmt.Errorf("failed to link developer: %w", err)
		}

		app.printf("Developer %d linked to business %d\n", c.Developer, c.Client)
		return nil
	})
}

type AdminPointsCmd struct {
	Developer   int64 `help:"Developer ID" required:""`
	Proficiency int   `help:"Proficiency points to add" default:"0"`
	Courtesy    int   `help:"Courtesy points to add" default:"0"`
}

func (c *AdminPointsCmd) Run(ctx context.Context, globals *Globals) error {
	if c.Proficiency == 0 && c.Courtesy == 0 {
		return errors.New("pass --proficiency or --courtesy")
	}

	return withApp(ctx, globals, func(app *App) error {
		if _, _, err := app.navigate("/admin-dashboard"); err != nil {
			return err
		}

		if err := app.API.Admin.AddDeveloperPoints(ctx, c.Developer, c.Proficiency, c.Courtesy); err != nil {
			return fmt.Errorf("failed to add points: %w", err)
		}

		app.printf("Developer %d: +%d proficiency, +%d courtesy\n", c.Developer, c.Proficiency, c.Courtesy)
		return nil
	})
}

func printDevelopers(app *App, devs []models.User) {
	if len(devs) == 0 {
		app.println("No developers found.")
		return
	}

	w := table(app)
	fmt.Fprintln(w, "ID\tNAME\tEMAIL\tPROFESSION\tPROFICIENCY\tCOURTESY")
	for _, d := range devs {
		var proficiency, courtesy int
		if d.DeveloperProfile != nil {
			proficiency = d.DeveloperProfile.ProficiencyPoints
			courtesy = d.DeveloperProfile.CourtesyPoints
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%d\t%d\n", d.ID, d.Name(), d.Email, d.Profession(), proficiency, courtesy)
	}
	_ = w.Flush()
}

func printClients(app *App, clients []models.User) {
	if len(clients) == 0 {
		app.println("No businesses found.")
		return
	}

	w := table(app)
	fmt.Fprintln(w, "ID\tBUSINESS\tCATEGORY\tEMAIL")
	for _, c := range clients {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", c.ID, c.Business().BusinessName, c.Category(), c.Email)
	}
	_ = w.Flush()
}
