package logger

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHTTPRequestsLogsStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	var buf bytes.Buffer
	client := &http.Client{Transport: NewHTTPRequests(New(&buf, false), nil)}

	resp, err := client.Get(srv.URL + "/missing")
	require.NoError(t, err)
	resp.Body.Close()

	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	require.Contains(t, buf.String(), `"status":404`)
	require.Contains(t, buf.String(), `"path":"/missing"`)
	require.Contains(t, buf.String(), `"level":"warn"`)
}

func TestHTTPRequestsInfoLevelHidesSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	var buf bytes.Buffer
	client := &http.Client{Transport: NewHTTPRequests(New(&buf, false), nil)}

	resp, err := client.Get(srv.URL + "/jobs")
	require.NoError(t, err)
	resp.Body.Close()

	require.Empty(t, buf.String())
}
