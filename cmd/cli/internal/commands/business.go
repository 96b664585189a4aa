package commands

import (
	"context"
	"fmt"
	"strconv"

	"github.com/wolfeidau/devmarket/internal/guard"
	"github.com/wolfeidau/devmarket/internal/models"
)

// ClientCmd covers the business dashboard.
type ClientCmd struct {
	Profile       ClientProfileCmd       `cmd:"" help:"Show your business profile"`
	UpdateProfile ClientUpdateProfileCmd `cmd:"" name:"update-profile" help:"Update your business profile"`
	Applicants    ClientApplicantsCmd    `cmd:"" help:"List developers linked to your jobs"`
	Business      ClientBusinessCmd      `cmd:"" help:"Show a business profile and its jobs (developers)"`
}

type ClientProfileCmd struct{}

func (c *ClientProfileCmd) Run(ctx context.Context, globals *Globals) error {
	return withApp(ctx, globals, func(app *App) error {
		identity, _, err := app.navigate("/business-dashboard")
		if err != nil {
			return err
		}

		user, err := app.API.Clients.GetProfile(ctx, identity.ID)
		if err != nil {
			return fmt.Errorf("failed to get profile: %w", err)
		}

		printBusiness(app, *user)
		return nil
	})
}

type ClientUpdateProfileCmd struct {
	BusinessName        string `help:"Business name" name:"business-name"`
	BusinessCategory    string `help:"Business category" name:"business-category"`
	BusinessDescription string `help:"Business description" name:"business-description"`
	BusinessLogo        string `help:"Logo file name or URL" name:"business-logo"`
}

func (c *ClientUpdateProfileCmd) Run(ctx context.Context, globals *Globals) error {
	return withApp(ctx, globals, func(app *App) error {
		if _, _, err := app.navigate("/business-dashboard"); err != nil {
			return err
		}

		update := models.BusinessProfileUpdate{
			BusinessName:        c.BusinessName,
			BusinessCategory:    c.BusinessCategory,
			BusinessDescription: c.BusinessDescription,
			BusinessLogo:        c.BusinessLogo,
		}
		if update == (models.BusinessProfileUpdate{}) {
			return fmt.Errorf("nothing to update, pass at least one field")
		}

		user, err := app.API.Clients.UpdateProfile(ctx, update)
		if err != nil {
			return fmt.Errorf("failed to update profile: %w", err)
		}

		app.println("Profile updated.")
		printBusiness(app, *user)
		return nil
	})
}

type ClientApplicantsCmd struct {
	Watch bool `help:"Refresh on the poll interval until interrupted" default:"false"`
}

func (c *ClientApplicantsCmd) Run(ctx context.Context, globals *Globals) error {
	return withApp(ctx, globals, func(app *App) error {
		identity, _, err := app.navigate("/business-dashboard")
		if err != nil {
			return err
		}

		fetch := func(ctx context.Context) error {
			jobs, err := app.API.Clients.GetApplicants(ctx, identity.ID)
			if err != nil {
				return fmt.Errorf("failed to get applicants: %w", err)
			}
			printApplicants(app, jobs)
			return nil
		}

		if c.Watch {
			return watch(ctx, app, "applicants", "Applicants", fetch)
		}
		return fetch(ctx)
	})
}

type ClientBusinessCmd struct {
	ID int64 `arg:"" help:"Business ID"`
}

func (c *ClientBusinessCmd) Run(ctx context.Context, globals *Globals) error {
	return withApp(ctx, globals, func(app *App) error {
		path, err := app.Routes.URL(guard.RouteBusinessProfile, "id", strconv.FormatInt(c.ID, 10))
		if err != nil {
			return err
		}
		if _, _, err := app.navigate(path); err != nil {
			return err
		}

		return showBusinessProfile(ctx, app, c.ID)
	})
}

func showBusinessProfile(ctx context.Context, app *App, id int64) error {
	user, err := app.API.Clients.GetProfile(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get business profile: %w", err)
	}

	printBusiness(app, *user)
	if len(user.Jobs) > 0 {
		app.println()
		printJobs(app, user.Jobs)
	}
	return nil
}

func printBusiness(app *App, u models.User) {
	b := u.Business()

	w := table(app)
	fmt.Fprintf(w, "ID:\t%d\n", u.ID)
	fmt.Fprintf(w, "Business:\t%s\n", b.BusinessName)
	fmt.Fprintf(w, "Category:\t%s\n", u.Category())
	fmt.Fprintf(w, "Contact:\t%s\n", u.Name())
	fmt.Fprintf(w, "Email:\t%s\n", u.Email)
	if b.BusinessLogo != "" {
		fmt.Fprintf(w, "Logo:\t%s\n", b.BusinessLogo)
	}
	_ = w.Flush()

	if b.BusinessDescription != "" {
		app.printf("\n%s\n", b.BusinessDescription)
	}
}

func printApplicants(app *App, jobs []models.JobApplicants) {
	if len(jobs) == 0 {
		app.println("No jobs with applicants yet.")
		return
	}

	for _, j := range jobs {
		app.printf("#%d %s [%s]\n", j.ID, j.Title, j.Status)
		if j.AssignedDeveloper != nil {
			app.printf("  assigned: %s <%s>\n", j.AssignedDeveloper.Name(), j.AssignedDeveloper.Email)
		}

		candidates := j.Candidates()
		if len(candidates) == 0 {
			app.println("  no developers yet")
			continue
		}
		for _, d := range candidates {
			app.printf("  - %s <%s> %s\n", d.Name(), d.Email, d.Profession())
		}
	}
}
