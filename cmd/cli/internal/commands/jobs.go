package commands

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/wolfeidau/devmarket/internal/listing"
	"github.com/wolfeidau/devmarket/internal/models"
	"github.com/wolfeidau/devmarket/internal/poller"
)

// JobsCmd manages job postings.
type JobsCmd struct {
	List   JobsListCmd   `cmd:"" help:"List jobs"`
	Show   JobsShowCmd   `cmd:"" help:"Show a job"`
	Create JobsCreateCmd `cmd:"" help:"Post a job from a YAML/JSON file"`
	Update JobsUpdateCmd `cmd:"" help:"Update a job from a YAML/JSON file"`
	Delete JobsDeleteCmd `cmd:"" help:"Delete a job"`
}

type JobsListCmd struct {
	Watch bool `help:"Refresh on the poll interval until interrupted" default:"false"`
}

func (c *JobsListCmd) Run(ctx context.Context, globals *Globals) error {
	return withApp(ctx, globals, func(app *App) error {
		if _, err := app.require("jobs list"); err != nil {
			return err
		}

		fetch := func(ctx context.Context) error {
			list, err := app.API.Jobs.List(ctx)
			if err != nil {
				return fmt.Errorf("failed to list jobs: %w", err)
			}
			printJobs(app, list.Jobs)
			return nil
		}

		if c.Watch {
			return watch(ctx, app, "jobs", "Jobs", fetch)
		}
		return fetch(ctx)
	})
}

type JobsShowCmd struct {
	ID int64 `arg:"" help:"Job ID"`
}

func (c *JobsShowCmd) Run(ctx context.Context, globals *Globals) error {
	return withApp(ctx, globals, func(app *App) error {
		if _, err := app.require("jobs show"); err != nil {
			return err
		}

		job, err := app.API.Jobs.Get(ctx, c.ID)
		if err != nil {
			return fmt.Errorf("failed to get job: %w", err)
		}

		printJob(app, *job)
		return nil
	})
}

type JobsCreateCmd struct {
	File string `help:"YAML/JSON job posting file" required:"" type:"existingfile"`
}

func (c *JobsCreateCmd) Run(ctx context.Context, globals *Globals) error {
	return withApp(ctx, globals, func(app *App) error {
		if _, err := app.require("jobs create", models.RoleClient); err != nil {
			return err
		}

		job, err := loadJobFile(c.File)
		if err != nil {
			return err
		}

		created, err := app.API.Jobs.Create(ctx, job)
		if err != nil {
			return fmt.Errorf("failed to create job: %w", err)
		}

		app.printf("Job posted with ID: %d\n", created.ID)
		return nil
	})
}

type JobsUpdateCmd struct {
	ID   int64  `arg:"" help:"Job ID"`
	File string `help:"YAML/JSON job posting file" required:"" type:"existingfile"`
}

func (c *JobsUpdateCmd) Run(ctx context.Context, globals *Globals) error {
	return withApp(ctx, globals, func(app *App) error {
		if _, err := app.require("jobs update", models.RoleClient); err != nil {
			return err
		}

		job, err := loadJobFile(c.File)
		if err != nil {
			return err
		}

		if _, err := app.API.Jobs.Update(ctx, c.ID, job); err != nil {
			return fmt.Errorf("failed to update job: %w", err)
		}

		app.printf("Job %d updated\n", c.ID)
		return nil
	})
}

type JobsDeleteCmd struct {
	ID int64 `arg:"" help:"Job ID"`
}

func (c *JobsDeleteCmd) Run(ctx context.Context, globals *Globals) error {
	return withApp(ctx, globals, func(app *App) error {
		if _, err := app.require("jobs delete", models.RoleClient); err != nil {
			return err
		}

		if err := app.API.Jobs.Delete(ctx, c.ID); err != nil {
			return fmt.Errorf("failed to delete job: %w", err)
		}

		app.printf("Job %d deleted\n", c.ID)
		return nil
	})
}

// watch polls fetch until ctx is cancelled, clearing the screen between
// refreshes. The poller is always stopped on return.
func watch(ctx context.Context, app *App, name, title string, fetch poller.FetchFunc) error {
	app.printf("Watching %s every %s (press Ctrl+C to stop)...\n\n", strings.ToLower(title), app.PollInterval)

	first := true
	h := poller.Start(ctx, name, app.PollInterval, func(ctx context.Context) error {
		if !first {
			app.printf("\033[2J\033[H") // Clear screen and move cursor to top
			app.printf("%s (updated at %s)\n\n", title, time.Now().Format("15:04:05"))
		}
		first = false
		return fetch(ctx)
	})
	defer h.Stop()

	select {
	case <-ctx.Done():
	case <-h.Done():
	}
	return nil
}

func printJobs(app *App, jobs []models.Job) {
	if len(jobs) == 0 {
		app.println("No jobs found.")
		return
	}

	w := table(app)
	fmt.Fprintln(w, "ID\tTITLE\tCONTRACT\tLOCATION\tSTATUS\tBUSINESS\tASSIGNED")
	for _, j := range jobs {
		business := ""
		if j.Client != nil {
			business = j.Client.BusinessName
		}
		assigned := "-"
		if j.AssignedDeveloper != nil {
			assigned = j.AssignedDeveloper.Name()
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\t%s\n",
			j.ID, truncate(j.Title, 40), j.ContractType, j.LocationType, j.Status, business, assigned)
	}
	_ = w.Flush()

	app.printf("\nTotal jobs: %d\n", len(jobs))
}

func printJob(app *App, j models.Job) {
	w := table(app)
	fmt.Fprintf(w, "ID:\t%d\n", j.ID)
	fmt.Fprintf(w, "Title:\t%s\n", j.Title)
	fmt.Fprintf(w, "Position:\t%s\n", j.Position)
	fmt.Fprintf(w, "Status:\t%s\n", j.Status)
	fmt.Fprintf(w, "Contract:\t%s, %d hours/week\n", j.ContractType, j.HoursPerWeek)
	fmt.Fprintf(w, "Location:\t%s %s\n", j.LocationType, j.LocationDetails)
	fmt.Fprintf(w, "Experience:\t%s\n", j.ExperienceRequired)
	if j.PostedAt != "" {
		fmt.Fprintf(w, "Posted:\t%s\n", j.PostedAt)
	}
	if j.Client != nil {
		fmt.Fprintf(w, "Business:\t%s (%s)\n", j.Client.BusinessName, j.Client.BusinessCategory)
	}
	_ = w.Flush()

	if j.Description != "" {
		app.printf("\n%s\n", j.Description)
	}
	printList(app, "Roles and responsibilities", j.RolesAndResponsibilities)
	printList(app, "Requirements", j.Requirements)
	printList(app, "Desired skills", j.DesiredSkills)
}

func printList(app *App, title string, items []string) {
	if len(items) == 0 {
		return
	}
	app.printf("\n%s:\n", title)
	for _, it := range items {
		app.printf("  - %s\n", it)
	}
}

func printBusinessJobs(app *App, groups []listing.BusinessJobs) {
	if len(groups) == 0 {
		app.println("No jobs available yet.")
		return
	}

	for _, g := range groups {
		name := g.Business.BusinessName
		if name == "" {
			name = "Business"
		}
		category := g.Business.BusinessCategory
		if category == "" {
			category = "No category"
		}
		app.printf("%s (%s) [business %d]\n", name, category, g.Business.ID)
		for _, j := range g.Jobs {
			app.printf("  #%d %s - %s, %s\n", j.ID, j.Title, j.ContractType, j.LocationType)
		}
		app.println()
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}
