package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/wolfeidau/devmarket/internal/auth"
	"github.com/wolfeidau/devmarket/internal/client"
	"github.com/wolfeidau/devmarket/internal/config"
	"github.com/wolfeidau/devmarket/internal/guard"
	"github.com/wolfeidau/devmarket/internal/models"
	"github.com/wolfeidau/devmarket/internal/session"
)

var (
	// ErrNotAuthenticated is returned when a view needs a logged in user.
	ErrNotAuthenticated = errors.New("not logged in")

	// ErrForbidden is returned when the logged in role may not open a view.
	ErrForbidden = errors.New("not permitted for this role")
)

// Globals are the flags shared by every command.
type Globals struct {
	Debug   bool
	Version string

	APIURL         string
	SessionBackend string
	SessionDir     string
	RedisAddr      string
	RedisPassword  string
	SessionTTL     time.Duration
	PollInterval   time.Duration
	RequestTimeout time.Duration
	RetryMaxTries  uint
	CacheDir       string
	Tracing        bool

	// Out receives command output, os.Stdout when nil.
	Out io.Writer
}

// App holds the components a command works with.
type App struct {
	Store  *session.Store
	API    *client.Client
	Auth   *auth.Controller
	Guard  *guard.Guard
	Routes *guard.Routes

	PollInterval time.Duration
	Out          io.Writer

	closers []io.Closer
}

// NewApp restores the session and wires the API client, auth controller and
// route guard to it.
func NewApp(ctx context.Context, globals *Globals) (*App, error) {
	kv, closer, err := newKV(ctx, globals)
	if err != nil {
		return nil, err
	}

	store := session.NewStore(kv, session.WithValidityWindow(globals.SessionTTL))
	store.Restore(ctx)

	api, err := client.New(client.Config{
		BaseURL:  globals.APIURL,
		Timeout:  globals.RequestTimeout,
		MaxTries: globals.RetryMaxTries,
		CacheDir: globals.CacheDir,
		Tracing:  globals.Tracing,
		Debug:    globals.Debug,
	}, store)
	if err != nil {
		if closer != nil {
			_ = closer.Close()
		}
		return nil, fmt.Errorf("failed to create api client: %w", err)
	}

	g := guard.New(store)

	out := globals.Out
	if out == nil {
		out = os.Stdout
	}

	app := &App{
		Store:        store,
		API:          api,
		Auth:         auth.NewController(store, api.Auth),
		Guard:        g,
		Routes:       guard.NewRoutes(g),
		PollInterval: globals.PollInterval,
		Out:          out,
	}
	if closer != nil {
		app.closers = append(app.closers, closer)
	}

	return app, nil
}

func newKV(ctx context.Context, globals *Globals) (session.KV, io.Closer, error) {
	switch globals.SessionBackend {
	case config.BackendRedis:
		kv, err := session.NewRedisKV(ctx, globals.RedisAddr, globals.RedisPassword, "")
		if err != nil {
			return nil, nil, fmt.Errorf("failed to initialize session store: %w", err)
		}
		return kv, kv, nil
	case config.BackendFile, "":
		kv, err := session.NewFileKV(globals.SessionDir)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to initialize session store: %w", err)
		}
		return kv, nil, nil
	default:
		return nil, nil, fmt.Errorf("unknown session backend %q", globals.SessionBackend)
	}
}

// Close releases the session backend.
func (a *App) Close() error {
	var errs []error
	for _, c := range a.closers {
		errs = append(errs, c.Close())
	}
	return errors.Join(errs...)
}

// DeniedError reports a navigation the guard refused.
type DeniedError struct {
	Path     string
	Decision guard.Decision
}

func (e *DeniedError) Error() string {
	switch e.Decision.Outcome {
	case guard.DeniedUnauthenticated:
		return fmt.Sprintf("%s requires login, redirecting to %s (run: devmarket login)", e.Path, e.Decision.Redirect)
	case guard.NotFound:
		return fmt.Sprintf("no view at %s, redirecting to %s", e.Path, e.Decision.Redirect)
	default:
		return fmt.Sprintf("%s is not available to your role, redirecting to %s", e.Path, e.Decision.Redirect)
	}
}

func (e *DeniedError) Unwrap() error {
	if e.Decision.Outcome == guard.DeniedUnauthenticated {
		return ErrNotAuthenticated
	}
	return ErrForbidden
}

// navigate runs the guard for path and returns the logged in identity, which
// is the zero value on public views.
func (a *App) navigate(path string) (models.Identity, guard.Match, error) {
	m := a.Routes.Navigate(path)
	if !m.Decision.Admitted() {
		log.Debug().Str("path", path).Str("outcome", m.Decision.Outcome.String()).Msg("navigation denied")
		return models.Identity{}, m, &DeniedError{Path: path, Decision: m.Decision}
	}

	identity, _ := a.Store.Identity()
	return identity, m, nil
}

// require checks the session against the roles a command is limited to.
func (a *App) require(name string, allowed ...models.Role) (models.Identity, error) {
	d := a.Guard.Check(allowed...)
	if !d.Admitted() {
		return models.Identity{}, &DeniedError{Path: name, Decision: d}
	}

	identity, _ := a.Store.Identity()
	return identity, nil
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.Out, format, args...)
}

func (a *App) println(args ...any) {
	fmt.Fprintln(a.Out, args...)
}

// withApp builds the App for the duration of fn.
func withApp(ctx context.Context, globals *Globals, fn func(app *App) error) error {
	app, err := NewApp(ctx, globals)
	if err != nil {
		return err
	}
	defer func() {
		if err := app.Close(); err != nil {
			log.Warn().Err(err).Msg("failed to close session backend")
		}
	}()

	return fn(app)
}
