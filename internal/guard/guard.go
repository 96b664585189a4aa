// Package guard decides whether the current session may open a view.
package guard

import (
	"context"
	"slices"

	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/wolfeidau/devmarket/internal/models"
	"github.com/wolfeidau/devmarket/internal/telemetry"
)

// Redirect targets for denied navigation.
const (
	LoginPath = "/login"
	HomePath  = "/"
)

// Outcome of a guard check.
type Outcome int

const (
	Admitted Outcome = iota
	DeniedUnauthenticated
	DeniedWrongRole
	// NotFound is used by Routes for paths that match no view.
	NotFound
)

func (o Outcome) String() string {
	switch o {
	case Admitted:
		return "admitted"
	case DeniedUnauthenticated:
		return "denied_unauthenticated"
	case DeniedWrongRole:
		return "denied_wrong_role"
	case NotFound:
		return "not_found"
	default:
		return "unknown"
	}
}

// Decision is the result of a check. Redirect is empty when admitted.
type Decision struct {
	Outcome  Outcome
	Redirect string
}

// Admitted reports whether navigation may proceed.
func (d Decision) Admitted() bool {
	return d.Outcome == Admitted
}

// SessionReader exposes the authentication state.
type SessionReader interface {
	IsAuthenticated() bool
	Identity() (models.Identity, bool)
}

// Guard evaluates access against the live session on every call.
type Guard struct {
	session SessionReader
}

// New creates a guard reading from session.
func New(session SessionReader) *Guard {
	if session == nil {
		panic("guard: New called with nil session")
	}
	return &Guard{session: session}
}

// Check decides whether the session may open a view restricted to allowed
// roles. With no roles any authenticated user is admitted.
func (g *Guard) Check(allowed ...models.Role) Decision {
	d := g.check(allowed)

	telemetry.GetMetrics().GuardDecisionsTotal.Add(context.Background(), 1,
		metric.WithAttributes(attribute.String("outcome", d.Outcome.String())))

	return d
}

func (g *Guard) check(allowed []models.Role) Decision {
	identity, ok := g.session.Identity()
	if !g.session.IsAuthenticated() || !ok {
		return Decision{Outcome: DeniedUnauthenticated, Redirect: LoginPath}
	}

	if len(allowed) > 0 && !slices.Contains(allowed, identity.Role) {
		log.Debug().
			Str("role", identity.Role.String()).
			Interface("allowed", allowed).
			Msg("role not permitted")
		return Decision{Outcome: DeniedWrongRole, Redirect: HomePath}
	}

	return Decision{Outcome: Admitted}
}
