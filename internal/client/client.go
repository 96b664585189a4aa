// Package client is a typed HTTP client for the marketplace REST API. Every
// request carries the bearer token of the current session, when there is one.
package client

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Config holds common client configuration
type Config struct {
	BaseURL string
	Timeout time.Duration

	// MaxTries bounds the attempts made for idempotent GET requests.
	MaxTries             uint
	RetryInitialInterval time.Duration

	// CacheDir enables the on disk response cache, empty keeps it in memory.
	CacheDir string
	Tracing  bool
	Debug    bool
}

// DefaultConfig returns a default client configuration
func DefaultConfig() Config {
	return Config{
		BaseURL:              "http://localhost:5555",
		Timeout:              30 * time.Second,
		MaxTries:             3,
		RetryInitialInterval: 250 * time.Millisecond,
	}
}

// TokenSource supplies the bearer token for outgoing requests.
type TokenSource interface {
	Token() (string, bool)
}

// Client groups the API services.
type Client struct {
	baseURL  *url.URL
	http     *http.Client
	maxTries uint
	interval time.Duration

	Auth        *AuthService
	Clients     *ClientsService
	Jobs        *JobsService
	Developers  *DevelopersService
	Admin       *AdminService
	Professions *ProfessionsService
}

// New creates a client for cfg.BaseURL. tokens may be nil for anonymous use.
func New(cfg Config, tokens TokenSource) (*Client, error) {
	def := DefaultConfig()
	if cfg.BaseURL == "" {
		cfg.BaseURL = def.BaseURL
	}
	if cfg.MaxTries == 0 {
		cfg.MaxTries = def.MaxTries
	}
	if cfg.RetryInitialInterval <= 0 {
		cfg.RetryInitialInterval = def.RetryInitialInterval
	}

	base, err := url.Parse(strings.TrimSuffix(cfg.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid api url %q: %w", cfg.BaseURL, err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("invalid api url %q: scheme must be http or https", cfg.BaseURL)
	}

	c := &Client{
		baseURL:  base,
		http:     NewHTTPClient(cfg, tokens),
		maxTries: cfg.MaxTries,
		interval: cfg.RetryInitialInterval,
	}

	c.Auth = &AuthService{c: c}
	c.Clients = &ClientsService{c: c}
	c.Jobs = &JobsService{c: c}
	c.Developers = &DevelopersService{c: c}
	c.Admin = &AdminService{c: c}
	c.Professions = &ProfessionsService{c: c}

	return c, nil
}

// BaseURL returns the API root this client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}
