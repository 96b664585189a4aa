package client

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/gregjones/httpcache"
	"github.com/gregjones/httpcache/diskcache"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/oauth2"

	"github.com/wolfeidau/devmarket/internal/logger"
)

// RequestIDHeader is set on every outgoing request.
const RequestIDHeader = "X-Request-Id"

// NewHTTPClient builds the transport chain used by the API client:
// tracing, bearer auth, request logging, then an HTTP cache honouring the
// server's Cache-Control headers for the public profession catalog.
func NewHTTPClient(cfg Config, tokens TokenSource) *http.Client {
	var rt http.RoundTripper = newCatalogCache(cfg.CacheDir, http.DefaultTransport)
	rt = logger.NewHTTPRequests(log.Logger, rt)
	rt = &bearerTransport{tokens: tokens, next: rt}

	if cfg.Tracing {
		rt = otelhttp.NewTransport(rt)
	}

	return &http.Client{
		Timeout:   cfg.Timeout,
		Transport: rt,
	}
}

// catalogPrefix is the only path served through the cache. Entries are keyed
// by URL alone, so responses that depend on the bearer token must bypass it.
const catalogPrefix = "/professions"

// catalogCache sends public catalog reads through an HTTP cache and every
// other request straight to next.
type catalogCache struct {
	cached http.RoundTripper
	next   http.RoundTripper
}

func newCatalogCache(cacheDir string, next http.RoundTripper) *catalogCache {
	var cache httpcache.Cache = httpcache.NewMemoryCache()
	if cacheDir != "" {
		// Use disk-based cache for persistence across restarts
		cache = diskcache.New(cacheDir)
	}

	t := httpcache.NewTransport(cache)
	t.Transport = next

	return &catalogCache{cached: t, next: next}
}

func (t *catalogCache) RoundTrip(req *http.Request) (*http.Response, error) {
	if isCatalogRead(req) {
		return t.cached.RoundTrip(req)
	}
	return t.next.RoundTrip(req)
}

func isCatalogRead(req *http.Request) bool {
	if req.Method != http.MethodGet && req.Method != http.MethodHead {
		return false
	}
	path := req.URL.Path
	return path == catalogPrefix || strings.HasPrefix(path, catalogPrefix+"/")
}

// bearerTransport decorates requests with the session token and a request id.
type bearerTransport struct {
	tokens TokenSource
	next   http.RoundTripper
}

func (t *bearerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())

	if req.Header.Get(RequestIDHeader) == "" {
		req.Header.Set(RequestIDHeader, uuid.NewString())
	}

	if t.tokens != nil {
		if token, ok := t.tokens.Token(); ok {
			(&oauth2.Token{AccessToken: token, TokenType: "Bearer"}).SetAuthHeader(req)
		}
	}

	return t.next.RoundTrip(req)
}
