package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wolfeidau/devmarket/internal/guard"
	"github.com/wolfeidau/devmarket/internal/models"
	"github.com/wolfeidau/devmarket/internal/session"
)

// backend is a stub marketplace API.
type backend struct {
	router   *mux.Router
	jobsHits atomic.Int32

	mu      sync.Mutex
	created map[string]any
}

var accounts = map[string]models.Identity{
	"dev@example.com":   {ID: 1, Role: models.RoleDeveloper, Username: "devon"},
	"biz@example.com":   {ID: 2, Role: models.RoleClient, FullName: "Bea Business"},
	"admin@example.com": {ID: 3, Role: models.RoleAdmin, FirstName: "Ada"},
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func newBackend() *backend {
	b := &backend{router: mux.NewRouter()}

	b.router.HandleFunc("/login", func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Email string `json:"email"`
		}
		_ = json.NewDecoder(r.Body).Decode(&req)

		identity, ok := accounts[req.Email]
		if !ok {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "Invalid email or password"})
			return
		}
		writeJSON(w, http.StatusOK, models.AuthResponse{User: identity, AccessToken: "token-" + string(identity.Role)})
	}).Methods(http.MethodPost)

	b.router.HandleFunc("/logout", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}).Methods(http.MethodPost)

	b.router.HandleFunc("/jobs", func(w http.ResponseWriter, r *http.Request) {
		b.jobsHits.Add(1)
		writeJSON(w, http.StatusOK, []models.Job{
			{ID: 10, Title: "Build a storefront", ContractType: "full-time", Status: "open",
				Client: &models.BusinessSummary{ID: 2, BusinessName: "Acme Widgets"}},
		})
	}).Methods(http.MethodGet)

	b.router.HandleFunc("/jobs", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		_ = json.NewDecoder(r.Body).Decode(&body)

		b.mu.Lock()
		b.created = body
		b.mu.Unlock()

		writeJSON(w, http.StatusCreated, models.Job{ID: 7, Title: "created"})
	}).Methods(http.MethodPost)

	b.router.HandleFunc("/developer_details/{id}", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, models.User{
			ID:       1,
			Username: "devon",
			DeveloperProfile: &models.DeveloperProfile{
				Profession:        "Software Developer",
				ProficiencyPoints: 12,
				CourtesyPoints:    3,
			},
		})
	}).Methods(http.MethodGet)

	b.router.HandleFunc("/client_details/{id}", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, models.User{
			ID:            2,
			ClientProfile: &models.ClientProfile{BusinessName: "Acme Widgets", BusinessCategory: "Retail"},
		})
	}).Methods(http.MethodGet)

	b.router.HandleFunc("/professions", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, models.ProfessionsResponse{Professions: []models.Profession{
			{ID: 1, Name: "Software Developer"},
		}})
	}).Methods(http.MethodGet)

	b.router.HandleFunc("/professions/{id}", func(w http.ResponseWriter, r *http.Request) {
		if mux.Vars(r)["id"] != "1" {
			writeJSON(w, http.StatusNotFound, map[string]string{"message": "profession not found"})
			return
		}
		writeJSON(w, http.StatusOK, models.Profession{
			ID:        1,
			Name:      "Software Developer",
			ExamLinks: []models.ExamLink{{ID: 1, Title: "Go Cert", URL: "https://example.com"}},
		})
	}).Methods(http.MethodGet)

	return b
}

func (b *backend) lastCreated() map[string]any {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.created
}

func newGlobals(t *testing.T, b *backend) (*Globals, *bytes.Buffer) {
	t.Helper()

	srv := httptest.NewServer(b.router)
	t.Cleanup(srv.Close)

	out := &bytes.Buffer{}
	return &Globals{
		APIURL:         srv.URL,
		SessionBackend: "file",
		SessionDir:     t.TempDir(),
		SessionTTL:     10 * time.Minute,
		PollInterval:   20 * time.Millisecond,
		RequestTimeout: 5 * time.Second,
		RetryMaxTries:  1,
		Out:            out,
	}, out
}

func login(t *testing.T, globals *Globals, email string) {
	t.Helper()
	require.NoError(t, (&LoginCmd{Email: email, Password: "secret1"}).Run(context.Background(), globals))
}

func TestLoginWhoamiLogout(t *testing.T) {
	globals, out := newGlobals(t, newBackend())
	ctx := context.Background()

	login(t, globals, "dev@example.com")
	assert.Contains(t, out.String(), "Logged in as devon (developer)")
	assert.Contains(t, out.String(), "/developer-dashboard")

	// the session survives into the next command through the session dir
	out.Reset()
	require.NoError(t, (&WhoamiCmd{}).Run(ctx, globals))
	assert.Contains(t, out.String(), "Developer")
	assert.Contains(t, out.String(), session.Fingerprint("token-developer"))

	out.Reset()
	require.NoError(t, (&LogoutCmd{}).Run(ctx, globals))
	assert.Contains(t, out.String(), "Logged out.")

	err := (&WhoamiCmd{}).Run(ctx, globals)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotAuthenticated)
}

func TestLoginFailure(t *testing.T) {
	globals, _ := newGlobals(t, newBackend())

	err := (&LoginCmd{Email: "nobody@example.com", Password: "secret1"}).Run(context.Background(), globals)
	require.Error(t, err)
	assert.Equal(t, "Invalid email or password", err.Error())
}

func TestGuardedCommands(t *testing.T) {
	ctx := context.Background()

	t.Run("unauthenticated", func(t *testing.T) {
		globals, _ := newGlobals(t, newBackend())

		err := (&DeveloperProfileCmd{}).Run(ctx, globals)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrNotAuthenticated)

		var denied *DeniedError
		require.ErrorAs(t, err, &denied)
		assert.Equal(t, guard.LoginPath, denied.Decision.Redirect)
	})

	t.Run("wrong role", func(t *testing.T) {
		globals, _ := newGlobals(t, newBackend())
		login(t, globals, "dev@example.com")

		err := (&AdminDevelopersCmd{}).Run(ctx, globals)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrForbidden)

		var denied *DeniedError
		require.ErrorAs(t, err, &denied)
		assert.Equal(t, guard.DeniedWrongRole, denied.Decision.Outcome)
		assert.Equal(t, guard.HomePath, denied.Decision.Redirect)
	})

	t.Run("client only job commands", func(t *testing.T) {
		globals, _ := newGlobals(t, newBackend())
		login(t, globals, "dev@example.com")

		err := (&JobsDeleteCmd{ID: 1}).Run(ctx, globals)
		assert.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("unknown path", func(t *testing.T) {
		globals, _ := newGlobals(t, newBackend())

		err := (&OpenCmd{Path: "/nope"}).Run(ctx, globals)
		require.Error(t, err)

		var denied *DeniedError
		require.ErrorAs(t, err, &denied)
		assert.Equal(t, guard.NotFound, denied.Decision.Outcome)
	})
}

func TestJobsCreateFromFile(t *testing.T) {
	b := newBackend()
	globals, out := newGlobals(t, b)
	login(t, globals, "biz@example.com")

	file := filepath.Join(t.TempDir(), "job.yaml")
	require.NoError(t, os.WriteFile(file, []byte(`
title: Backend engineer
description: Build our order API
requirements:
  - Go
  - PostgreSQL
`), 0600))

	out.Reset()
	require.NoError(t, (&JobsCreateCmd{File: file}).Run(context.Background(), globals))
	assert.Contains(t, out.String(), "Job posted with ID: 7")

	body := b.lastCreated()
	require.NotNil(t, body)
	assert.Equal(t, "Backend engineer", body["title"])
	assert.Equal(t, models.DefaultContractType, body["contract_type"])
	assert.Equal(t, models.DefaultLocationType, body["location_type"])
	assert.Equal(t, []any{"Go", "PostgreSQL"}, body["requirements"])
}

func TestLoadJobFile(t *testing.T) {
	dir := t.TempDir()

	jsonFile := filepath.Join(dir, "job.json")
	require.NoError(t, os.WriteFile(jsonFile, []byte(`{"title":"From JSON","hours_per_week":20}`), 0600))

	job, err := loadJobFile(jsonFile)
	require.NoError(t, err)
	assert.Equal(t, "From JSON", job.Title)
	assert.Equal(t, 20, job.HoursPerWeek)

	yamlFile := filepath.Join(dir, "job.yml")
	require.NoError(t, os.WriteFile(yamlFile, []byte("title: From YAML\nhoursPerWeek: 10\n"), 0600))

	job, err = loadJobFile(yamlFile)
	require.NoError(t, err)
	assert.Equal(t, "From YAML", job.Title)
	assert.Equal(t, 10, job.HoursPerWeek)

	_, err = loadJobFile(filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)
}

func TestJobsListWatch(t *testing.T) {
	b := newBackend()
	globals, out := newGlobals(t, b)
	login(t, globals, "dev@example.com")

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	require.NoError(t, (&JobsListCmd{Watch: true}).Run(ctx, globals))

	assert.GreaterOrEqual(t, b.jobsHits.Load(), int32(2))
	assert.Contains(t, out.String(), "Build a storefront")
	assert.Contains(t, out.String(), "updated at")
}

func TestDeveloperViews(t *testing.T) {
	ctx := context.Background()
	globals, out := newGlobals(t, newBackend())
	login(t, globals, "dev@example.com")

	out.Reset()
	require.NoError(t, (&DeveloperJobsCmd{}).Run(ctx, globals))
	assert.Contains(t, out.String(), "Acme Widgets")
	assert.Contains(t, out.String(), "#10 Build a storefront")

	out.Reset()
	require.NoError(t, (&DeveloperSkillsCmd{}).Run(ctx, globals))
	assert.Contains(t, out.String(), "Improve Your Skills as a Software Developer")
	assert.Contains(t, out.String(), "Frontend Development")

	out.Reset()
	require.NoError(t, (&DeveloperContentCmd{}).Run(ctx, globals))
	assert.Contains(t, out.String(), "Go Cert")

	out.Reset()
	require.NoError(t, (&OpenCmd{Path: "/business-profile/2"}).Run(ctx, globals))
	assert.Contains(t, out.String(), "Acme Widgets")
	assert.Contains(t, out.String(), "Retail")
}

func TestHome(t *testing.T) {
	ctx := context.Background()
	globals, out := newGlobals(t, newBackend())

	require.NoError(t, (&HomeCmd{NoBanner: true}).Run(ctx, globals))
	assert.Contains(t, out.String(), "devmarket login")

	login(t, globals, "dev@example.com")
	out.Reset()
	require.NoError(t, (&HomeCmd{}).Run(ctx, globals))
	assert.Contains(t, out.String(), "Welcome back, devon (Developer)")
	assert.Contains(t, out.String(), "Points: 12 proficiency, 3 courtesy")
}

func TestProfessionsListIsPublic(t *testing.T) {
	globals, out := newGlobals(t, newBackend())

	require.NoError(t, (&ProfessionsListCmd{}).Run(context.Background(), globals))
	assert.Contains(t, out.String(), "Software Developer")

	err := (&ProfessionsDeleteCmd{ID: 1}).Run(context.Background(), globals)
	assert.ErrorIs(t, err, ErrNotAuthenticated)
}

func TestUnknownSessionBackend(t *testing.T) {
	globals, _ := newGlobals(t, newBackend())
	globals.SessionBackend = "etcd"

	err := (&WhoamiCmd{}).Run(context.Background(), globals)
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "unknown session backend"))
	assert.False(t, errors.Is(err, ErrNotAuthenticated))
}
