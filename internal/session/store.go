// Package session holds the client-side authentication state: who is logged
// in, their bearer token and when the login happened. The state is kept in
// memory and mirrored to a KV so it survives restarts for a limited window.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/wolfeidau/devmarket/internal/models"
	"github.com/wolfeidau/devmarket/internal/telemetry"
)

// Persisted keys.
const (
	KeyAccessToken    = "access_token"
	KeyUser           = "user"
	KeyLoginTimestamp = "login_timestamp"
)

// DefaultValidityWindow is how long a persisted session may be restored after
// login.
const DefaultValidityWindow = 10 * time.Minute

// ErrEmptyToken is returned by Set when no token is supplied. The session is
// cleared instead so identity and token stay paired.
var ErrEmptyToken = errors.New("empty access token")

var persistedKeys = []string{KeyAccessToken, KeyUser, KeyLoginTimestamp}

// Store is the single owner of the authentication state.
type Store struct {
	kv     KV
	window time.Duration
	now    func() time.Time

	mu            sync.RWMutex
	identity      *models.Identity
	token         string
	establishedAt time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithValidityWindow overrides DefaultValidityWindow.
func WithValidityWindow(d time.Duration) Option {
	return func(s *Store) {
		if d > 0 {
			s.window = d
		}
	}
}

// WithClock replaces time.Now, used by tests.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// NewStore creates an unauthenticated store backed by kv.
// Call Restore to load a previously persisted session.
func NewStore(kv KV, opts ...Option) *Store {
	if kv == nil {
		panic("session: NewStore called with nil KV")
	}

	s := &Store{
		kv:     kv,
		window: DefaultValidityWindow,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ValidityWindow returns the configured restore window.
func (s *Store) ValidityWindow() time.Duration {
	return s.window
}

// Restore loads the persisted session. Missing or malformed data leaves the
// store unauthenticated. A session older than the validity window is removed
// from the KV. Restore never fails, problems are logged.
func (s *Store) Restore(ctx context.Context) {
	outcome := s.restore(ctx)

	telemetry.GetMetrics().SessionRestoresTotal.Add(ctx, 1,
		metric.WithAttributes(attribute.String("outcome", outcome)))
}

func (s *Store) restore(ctx context.Context) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.reset()

	values, err := s.kv.Get(ctx, persistedKeys...)
	if err != nil {
		log.Warn().Err(err).Msg("failed to read persisted session, starting logged out")
		return "unreadable"
	}

	token, hasToken := values[KeyAccessToken]
	rawUser, hasUser := values[KeyUser]
	rawTS, hasTS := values[KeyLoginTimestamp]
	if !hasToken || !hasUser || !hasTS || token == "" {
		log.Debug().Msg("no persisted session")
		return "absent"
	}

	var identity models.Identity
	if err := json.Unmarshal([]byte(rawUser), &identity); err != nil {
		log.Warn().Err(err).Msg("persisted user is malformed, starting logged out")
		return "malformed"
	}
	if err := identity.Validate(); err != nil {
		log.Warn().Err(err).Msg("persisted user is malformed, starting logged out")
		return "malformed"
	}

	ms, err := strconv.ParseInt(rawTS, 10, 64)
	if err != nil {
		log.Warn().Err(err).Msg("persisted login timestamp is malformed, starting logged out")
		return "malformed"
	}
	establishedAt := time.UnixMilli(ms)

	age := s.now().Sub(establishedAt)
	if age > s.window {
		log.Debug().
			Dur("age", age).
			Dur("window", s.window).
			Msg("persisted session expired, clearing")

		if err := s.kv.Delete(ctx, persistedKeys...); err != nil {
			log.Warn().Err(err).Msg("failed to clear expired session")
		}
		return "expired"
	}

	s.identity = &identity
	s.token = token
	s.establishedAt = establishedAt

	log.Debug().
		Int64("userID", identity.ID).
		Str("role", identity.Role.String()).
		Str("token", Fingerprint(token)).
		Dur("age", age).
		Msg("session restored")

	return "restored"
}

// Set records a successful signup or login. Memory is always updated, the
// returned error only reports that the KV could not be written.
func (s *Store) Set(ctx context.Context, identity models.Identity, token string) error {
	if token == "" {
		if err := s.Clear(ctx); err != nil {
			return errors.Join(ErrEmptyToken, err)
		}
		return ErrEmptyToken
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	id := identity
	s.identity = &id
	s.token = token
	s.establishedAt = now

	log.Debug().
		Int64("userID", identity.ID).
		Str("role", identity.Role.String()).
		Str("token", Fingerprint(token)).
		Msg("session established")

	user, err := json.Marshal(identity)
	if err != nil {
		return err
	}

	return s.kv.Set(ctx, map[string]string{
		KeyAccessToken:    token,
		KeyUser:           string(user),
		KeyLoginTimestamp: strconv.FormatInt(now.UnixMilli(), 10),
	})
}

// Clear removes the session from memory and the KV. It is idempotent.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.reset()

	log.Debug().Msg("session cleared")

	return s.kv.Delete(ctx, persistedKeys...)
}

// IsAuthenticated reports whether both identity and token are present.
func (s *Store) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.identity != nil && s.token != ""
}

// Identity returns a copy of the logged in identity.
func (s *Store) Identity() (models.Identity, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.identity == nil {
		return models.Identity{}, false
	}
	return *s.identity, true
}

// Token returns the bearer token, if any.
func (s *Store) Token() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token, s.token != ""
}

// Snapshot returns identity, token and establishment time read together.
func (s *Store) Snapshot() models.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := models.Session{
		Token:         s.token,
		EstablishedAt: s.establishedAt,
	}
	if s.identity != nil {
		id := *s.identity
		snap.Identity = &id
	}
	return snap
}

// ExpiresAt returns when the persisted session stops being restorable.
func (s *Store) ExpiresAt() (time.Time, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.identity == nil {
		return time.Time{}, false
	}
	return s.establishedAt.Add(s.window), true
}

// reset must be called with the lock held.
func (s *Store) reset() {
	s.identity = nil
	s.token = ""
	s.establishedAt = time.Time{}
}
