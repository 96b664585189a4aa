package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/wolfeidau/devmarket/internal/client"
	"github.com/wolfeidau/devmarket/internal/listing"
	"github.com/wolfeidau/devmarket/internal/models"
)

// DeveloperCmd covers the developer dashboard.
type DeveloperCmd struct {
	Profile       DeveloperProfileCmd       `cmd:"" help:"Show your developer profile"`
	UpdateProfile DeveloperUpdateProfileCmd `cmd:"" name:"update-profile" help:"Update your developer profile"`
	Jobs          DeveloperJobsCmd          `cmd:"" help:"List available jobs grouped by business"`
	Content       DeveloperContentCmd       `cmd:"" help:"Show exams, hackathons and quizzes for your profession"`
	Skills        DeveloperSkillsCmd        `cmd:"" help:"Show a skill guide for your profession"`
}

type DeveloperProfileCmd struct{}

func (c *DeveloperProfileCmd) Run(ctx context.Context, globals *Globals) error {
	return withApp(ctx, globals, func(app *App) error {
		identity, _, err := app.navigate("/developer-dashboard")
		if err != nil {
			return err
		}

		user, err := app.API.Developers.GetProfile(ctx, identity.ID)
		if err != nil {
			return fmt.Errorf("failed to get profile: %w", err)
		}

		printDeveloper(app, *user)
		return nil
	})
}

type DeveloperUpdateProfileCmd struct {
	Profession        string `help:"Profession"`
	ProfilePicture    string `help:"Profile picture file name or URL" name:"profile-picture"`
	Skills            string `help:"Skills, comma separated"`
	Description       string `help:"About you"`
	AvailableTime     string `help:"Availability, e.g. 20h/week" name:"available-time"`
	GithubAccount     string `help:"GitHub account" name:"github"`
	LinkedinAccount   string `help:"LinkedIn account" name:"linkedin"`
	EducationLevel    string `help:"Education level" name:"education-level"`
	YearsOfExperience *int   `help:"Years of experience" name:"years-of-experience"`
}

func (c *DeveloperUpdateProfileCmd) Run(ctx context.Context, globals *Globals) error {
	return withApp(ctx, globals, func(app *App) error {
		if _, _, err := app.navigate("/developer-dashboard"); err != nil {
			return err
		}

		update := models.DeveloperProfileUpdate{
			Profession:        c.Profession,
			ProfilePicture:    c.ProfilePicture,
			Skills:            c.Skills,
			Description:       c.Description,
			AvailableTime:     c.AvailableTime,
			GithubAccount:     c.GithubAccount,
			LinkedinAccount:   c.LinkedinAccount,
			EducationLevel:    c.EducationLevel,
			YearsOfExperience: c.YearsOfExperience,
		}
		if update == (models.DeveloperProfileUpdate{}) {
			return errors.New("nothing to update, pass at least one field")
		}

		user, err := app.API.Developers.UpdateProfile(ctx, update)
		if err != nil {
			return fmt.Errorf("failed to update profile: %w", err)
		}

		app.println("Profile updated.")
		printDeveloper(app, *user)
		return nil
	})
}

type DeveloperJobsCmd struct {
	Watch bool `help:"Refresh on the poll interval until interrupted" default:"false"`
}

func (c *DeveloperJobsCmd) Run(ctx context.Context, globals *Globals) error {
	return withApp(ctx, globals, func(app *App) error {
		if _, _, err := app.navigate("/developer-dashboard"); err != nil {
			return err
		}

		fetch := func(ctx context.Context) error {
			list, err := app.API.Jobs.List(ctx)
			if err != nil {
				return fmt.Errorf("failed to list jobs: %w", err)
			}
			printBusinessJobs(app, listing.GroupJobsByBusiness(*list))
			return nil
		}

		if c.Watch {
			return watch(ctx, app, "developer-jobs", "Available jobs", fetch)
		}
		return fetch(ctx)
	})
}

type DeveloperContentCmd struct{}

func (c *DeveloperContentCmd) Run(ctx context.Context, globals *Globals) error {
	return withApp(ctx, globals, func(app *App) error {
		identity, _, err := app.navigate("/profession-content")
		if err != nil {
			return err
		}

		return showProfessionContent(ctx, app, identity.ID)
	})
}

func showProfessionContent(ctx context.Context, app *App, developerID int64) error {
	user, err := app.API.Developers.GetProfile(ctx, developerID)
	if err != nil {
		return fmt.Errorf("failed to get profile: %w", err)
	}

	profession := user.Profession()
	if profession == models.NotSpecified {
		app.println("Set a profession first: devmarket developer update-profile --profession NAME")
		return nil
	}

	p, err := app.API.Professions.FindByName(ctx, profession)
	if err != nil {
		if errors.Is(err, client.ErrProfessionNotFound) {
			app.printf("No content for %s yet.\n", profession)
			return nil
		}
		return fmt.Errorf("failed to get profession content: %w", err)
	}

	printProfession(app, *p)
	return nil
}

type DeveloperSkillsCmd struct{}

func (c *DeveloperSkillsCmd) Run(ctx context.Context, globals *Globals) error {
	return withApp(ctx, globals, func(app *App) error {
		identity, _, err := app.navigate("/improve-skill")
		if err != nil {
			return err
		}

		return showSkillGuide(ctx, app, identity.ID)
	})
}

func showSkillGuide(ctx context.Context, app *App, developerID int64) error {
	user, err := app.API.Developers.GetProfile(ctx, developerID)
	if err != nil {
		return fmt.Errorf("failed to get profile: %w", err)
	}

	profession := user.Profession()
	if profession == models.NotSpecified {
		app.println("Please complete your profile with a profession to see personalized skill recommendations.")
		return nil
	}

	tracks, err := listing.SkillGuide(profession)
	if err != nil {
		return err
	}

	app.printf("Improve Your Skills as a %s\n\n", profession)
	for _, t := range tracks {
		app.printf("%s\n", t.Category)
		app.printf("  Skills: %s\n", strings.Join(t.Skills, ", "))
		for _, r := range t.Resources {
			app.printf("  - %s\n", r)
		}
		app.println()
	}
	return nil
}

func printDeveloper(app *App, u models.User) {
	w := table(app)
	fmt.Fprintf(w, "ID:\t%d\n", u.ID)
	fmt.Fprintf(w, "Name:\t%s\n", u.Name())
	fmt.Fprintf(w, "Email:\t%s\n", u.Email)
	fmt.Fprintf(w, "Profession:\t%s\n", u.Profession())

	if p := u.DeveloperProfile; p != nil {
		fmt.Fprintf(w, "Skills:\t%s\n", p.Skills)
		fmt.Fprintf(w, "Experience:\t%d years\n", p.YearsOfExperience)
		fmt.Fprintf(w, "Education:\t%s\n", p.EducationLevel)
		fmt.Fprintf(w, "Available:\t%s\n", p.AvailableTime)
		fmt.Fprintf(w, "GitHub:\t%s\n", p.GithubAccount)
		fmt.Fprintf(w, "LinkedIn:\t%s\n", p.LinkedinAccount)
		fmt.Fprintf(w, "Proficiency points:\t%d\n", p.ProficiencyPoints)
		fmt.Fprintf(w, "Courtesy points:\t%d\n", p.CourtesyPoints)
	}
	_ = w.Flush()

	if u.DeveloperProfile != nil && u.DeveloperProfile.Description != "" {
		app.printf("\n%s\n", u.DeveloperProfile.Description)
	}
}
