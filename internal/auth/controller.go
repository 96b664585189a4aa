// Package auth drives signup, login and logout against the API and records
// the outcome in the session store.
package auth

import (
	"context"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/wolfeidau/devmarket/internal/client"
	"github.com/wolfeidau/devmarket/internal/models"
	"github.com/wolfeidau/devmarket/internal/telemetry"
)

// Fallback messages used when the server gives no reason.
const (
	SignupFailed = "Signup failed"
	LoginFailed  = "Login failed"
)

// API is the subset of the API client used by the controller.
type API interface {
	Signup(ctx context.Context, payload any) (*models.AuthResponse, error)
	Login(ctx context.Context, email, password string) (*models.AuthResponse, error)
	Logout(ctx context.Context) error
}

// SessionWriter records and removes the authenticated session.
type SessionWriter interface {
	Set(ctx context.Context, identity models.Identity, token string) error
	Clear(ctx context.Context) error
}

// Result is the outcome of a signup or login.
type Result struct {
	Success bool
	Message string
	User    *models.Identity
}

// Landing returns where the user should be sent next.
func (r Result) Landing() string {
	if !r.Success || r.User == nil {
		return "/"
	}
	return r.User.Role.Landing()
}

// Controller runs the authentication flows.
type Controller struct {
	session SessionWriter
	api     API

	inFlight atomic.Bool

	mu        sync.Mutex
	lastError string
}

// NewController wires the controller to a session and the API.
func NewController(session SessionWriter, api API) *Controller {
	if session == nil || api == nil {
		panic("auth: NewController requires a session and an api")
	}
	return &Controller{session: session, api: api}
}

// InFlight reports whether a signup, login or logout is running. With
// overlapping calls it follows the most recently settled one.
func (c *Controller) InFlight() bool {
	return c.inFlight.Load()
}

// LastError returns the message of the most recent failed signup or login.
func (c *Controller) LastError() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastError
}

func (c *Controller) setLastError(msg string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lastError = msg
}

// Signup validates the registration, creates the account and logs the new
// user in.
func (c *Controller) Signup(ctx context.Context, reg Registration) Result {
	c.setLastError("")

	if err := reg.Validate(); err != nil {
		return c.fail(ctx, "signup", err.Error())
	}

	payload, err := reg.Payload()
	if err != nil {
		return c.fail(ctx, "signup", err.Error())
	}

	c.inFlight.Store(true)
	defer c.inFlight.Store(false)

	resp, err := c.api.Signup(ctx, payload)
	if err != nil {
		log.Debug().Err(err).Str("role", reg.Role.String()).Msg("signup rejected")
		return c.fail(ctx, "signup", client.MessageFrom(err, "message", SignupFailed))
	}

	return c.establish(ctx, "signup", resp, SignupFailed)
}

// Login checks credentials with the API and stores the resulting session.
func (c *Controller) Login(ctx context.Context, email, password string) Result {
	c.setLastError("")

	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return c.fail(ctx, "login", ErrCredentialsRequired.Error())
	}

	c.inFlight.Store(true)
	defer c.inFlight.Store(false)

	resp, err := c.api.Login(ctx, email, password)
	if err != nil {
		log.Debug().Err(err).Msg("login rejected")
		return c.fail(ctx, "login", client.MessageFrom(err, "error", LoginFailed))
	}

	return c.establish(ctx, "login", resp, LoginFailed)
}

// Logout ends the session. The remote call is best effort, the local session
// is always cleared.
func (c *Controller) Logout(ctx context.Context) {
	c.inFlight.Store(true)
	defer c.inFlight.Store(false)

	outcome := "success"
	if err := c.api.Logout(ctx); err != nil {
		outcome = "remote_error"
		log.Warn().Err(err).Msg("logout request failed, clearing local session anyway")
	}

	if err := c.session.Clear(ctx); err != nil {
		log.Warn().Err(err).Msg("failed to remove persisted session")
	}

	record(ctx, "logout", outcome)
}

func (c *Controller) establish(ctx context.Context, action string, resp *models.AuthResponse, fallback string) Result {
	if resp == nil || resp.AccessToken == "" {
		log.Warn().Str("action", action).Msg("response carried no access token")
		return c.fail(ctx, action, fallback)
	}
	if err := resp.User.Validate(); err != nil {
		log.Warn().Err(err).Str("action", action).Msg("response carried an invalid user")
		return c.fail(ctx, action, fallback)
	}

	if err := c.session.Set(ctx, resp.User, resp.AccessToken); err != nil {
		log.Warn().Err(err).Msg("session established but could not be persisted")
	}

	record(ctx, action, "success")

	user := resp.User
	return Result{Success: true, User: &user}
}

func (c *Controller) fail(ctx context.Context, action, msg string) Result {
	c.setLastError(msg)
	record(ctx, action, "failure")
	return Result{Success: false, Message: msg}
}

func record(ctx context.Context, action, outcome string) {
	telemetry.GetMetrics().AuthAttemptsTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("action", action),
		attribute.String("outcome", outcome),
	))
}
