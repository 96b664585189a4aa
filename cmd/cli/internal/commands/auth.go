package commands

import (
	"context"
	"errors"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/wolfeidau/devmarket/internal/auth"
	"github.com/wolfeidau/devmarket/internal/guard"
	"github.com/wolfeidau/devmarket/internal/models"
	"github.com/wolfeidau/devmarket/internal/session"
)

// SignupCmd registers a new account.
type SignupCmd struct {
	Developer SignupDeveloperCmd `cmd:"" help:"Sign up as a developer"`
	Client    SignupClientCmd    `cmd:"" aliases:"business" help:"Sign up as a business"`
	Admin     SignupAdminCmd     `cmd:"" help:"Sign up as an administrator"`
}

// PasswordFlags are shared by the signup commands.
type PasswordFlags struct {
	Email           string `help:"Email address" required:""`
	Password        string `help:"Password (at least 6 characters)" env:"DEVMARKET_PASSWORD"`
	ConfirmPassword string `help:"Repeat the password, defaults to --password" name:"confirm-password"`
}

func (p PasswordFlags) confirmation() string {
	if p.ConfirmPassword == "" {
		return p.Password
	}
	return p.ConfirmPassword
}

type SignupDeveloperCmd struct {
	Account         PasswordFlags `embed:""`
	Username        string        `help:"Username" required:""`
	Profession      string        `help:"Profession, see: devmarket professions list" required:""`
	ProfilePicture  string        `help:"Profile picture file name or URL" name:"profile-picture"`
	GithubAccount   string        `help:"GitHub account" name:"github"`
	LinkedinAccount string        `help:"LinkedIn account" name:"linkedin"`
}

func (c *SignupDeveloperCmd) Run(ctx context.Context, globals *Globals) error {
	return signup(ctx, globals, guard.RouteSignupDeveloper, auth.Registration{
		Role:            models.RoleDeveloper,
		Email:           c.Account.Email,
		Password:        c.Account.Password,
		ConfirmPassword: c.Account.confirmation(),
		Username:        c.Username,
		Profession:      c.Profession,
		ProfilePicture:  c.ProfilePicture,
		GithubAccount:   c.GithubAccount,
		LinkedinAccount: c.LinkedinAccount,
	})
}

type SignupClientCmd struct {
	Account             PasswordFlags `embed:""`
	FullName            string        `help:"Contact full name" name:"fullname" required:""`
	BusinessName        string        `help:"Business name" name:"business-name" required:""`
	BusinessCategory    string        `help:"Business category" name:"business-category" required:""`
	BusinessDescription string        `help:"Business description" name:"business-description"`
	BusinessLogo        string        `help:"Logo file name or URL" name:"business-logo"`
}

func (c *SignupClientCmd) Run(ctx context.Context, globals *Globals) error {
	return signup(ctx, globals, guard.RouteSignupBusiness, auth.Registration{
		Role:                models.RoleClient,
		Email:               c.Account.Email,
		Password:            c.Account.Password,
		ConfirmPassword:     c.Account.confirmation(),
		FullName:            c.FullName,
		BusinessName:        c.BusinessName,
		BusinessCategory:    c.BusinessCategory,
		BusinessDescription: c.BusinessDescription,
		BusinessLogo:        c.BusinessLogo,
	})
}

type SignupAdminCmd struct {
	Account   PasswordFlags `embed:""`
	FirstName string        `help:"First name" name:"firstname" required:""`
}

func (c *SignupAdminCmd) Run(ctx context.Context, globals *Globals) error {
	return signup(ctx, globals, guard.RouteSignupAdmin, auth.Registration{
		Role:            models.RoleAdmin,
		Email:           c.Account.Email,
		Password:        c.Account.Password,
		ConfirmPassword: c.Account.confirmation(),
		FirstName:       c.FirstName,
	})
}

func signup(ctx context.Context, globals *Globals, route string, reg auth.Registration) error {
	return withApp(ctx, globals, func(app *App) error {
		path, err := app.Routes.URL(route)
		if err != nil {
			return err
		}
		if _, _, err := app.navigate(path); err != nil {
			return err
		}

		res := app.Auth.Signup(ctx, reg)
		if !res.Success {
			return errors.New(res.Message)
		}

		app.printf("Welcome %s, your %s account is ready.\n", res.User.DisplayName(), res.User.Role.Title())
		app.printf("Next: devmarket open %s\n", res.Landing())
		return nil
	})
}

// LoginCmd authenticates with email and password.
type LoginCmd struct {
	Email    string `help:"Email address" required:""`
	Password string `help:"Password" env:"DEVMARKET_PASSWORD"`
}

func (c *LoginCmd) Run(ctx context.Context, globals *Globals) error {
	return withApp(ctx, globals, func(app *App) error {
		res := app.Auth.Login(ctx, c.Email, c.Password)
		if !res.Success {
			return errors.New(res.Message)
		}

		app.printf("Logged in as %s (%s)\n", res.User.DisplayName(), res.User.Role)
		app.printf("Session valid for %s. Next: devmarket open %s\n",
			app.Store.ValidityWindow(), res.Landing())
		return nil
	})
}

// LogoutCmd ends the session.
type LogoutCmd struct{}

func (c *LogoutCmd) Run(ctx context.Context, globals *Globals) error {
	return withApp(ctx, globals, func(app *App) error {
		if !app.Store.IsAuthenticated() {
			app.println("Not logged in.")
			return nil
		}

		app.Auth.Logout(ctx)
		app.println("Logged out.")
		return nil
	})
}

// WhoamiCmd shows the current session.
type WhoamiCmd struct{}

func (c *WhoamiCmd) Run(ctx context.Context, globals *Globals) error {
	return withApp(ctx, globals, func(app *App) error {
		snap := app.Store.Snapshot()
		if !snap.IsAuthenticated() {
			return fmt.Errorf("%w (run: devmarket login)", ErrNotAuthenticated)
		}

		w := table(app)
		fmt.Fprintf(w, "ID:\t%d\n", snap.Identity.ID)
		fmt.Fprintf(w, "Name:\t%s\n", snap.Identity.DisplayName())
		fmt.Fprintf(w, "Email:\t%s\n", snap.Identity.Email)
		fmt.Fprintf(w, "Role:\t%s\n", snap.Identity.Role.Title())
		fmt.Fprintf(w, "Logged in:\t%s\n", snap.EstablishedAt.Format(time.RFC3339))
		if expires, ok := app.Store.ExpiresAt(); ok {
			fmt.Fprintf(w, "Session expires:\t%s\n", expires.Format(time.RFC3339))
		}
		fmt.Fprintf(w, "Token:\t%s\n", session.Fingerprint(snap.Token))

		if info, err := auth.InspectToken(snap.Token); err == nil {
			if info.Subject != "" {
				fmt.Fprintf(w, "Token subject:\t%s\n", info.Subject)
			}
			if !info.ExpiresAt.IsZero() {
				fmt.Fprintf(w, "Token expires:\t%s\n", info.ExpiresAt.Format(time.RFC3339))
			}
		}

		return w.Flush()
	})
}

func table(app *App) *tabwriter.Writer {
	return tabwriter.NewWriter(app.Out, 0, 0, 2, ' ', 0)
}
