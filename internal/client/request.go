package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/wolfeidau/devmarket/internal/telemetry"
)

// maxErrorBody caps how much of an error response is kept.
const maxErrorBody = 64 << 10

// APIError is returned when the server answers with a non-2xx status.
type APIError struct {
	StatusCode int
	Method     string
	Path       string
	Body       []byte

	fields map[string]any
}

func newAPIError(method, path string, status int, body []byte) *APIError {
	e := &APIError{
		StatusCode: status,
		Method:     method,
		Path:       path,
		Body:       body,
	}
	// Non JSON bodies are kept raw only.
	_ = json.Unmarshal(body, &e.fields)
	return e
}

func (e *APIError) Error() string {
	msg := e.Field("error")
	if msg == "" {
		msg = e.Field("message")
	}
	if msg == "" {
		msg = http.StatusText(e.StatusCode)
	}
	return fmt.Sprintf("%s %s: %d %s", e.Method, e.Path, e.StatusCode, msg)
}

// Field returns a string field of the decoded JSON error body.
func (e *APIError) Field(name string) string {
	if e.fields == nil {
		return ""
	}
	v, ok := e.fields[name].(string)
	if !ok {
		return ""
	}
	return strings.TrimSpace(v)
}

// Temporary reports whether the request may succeed when repeated.
func (e *APIError) Temporary() bool {
	return e.StatusCode >= 500 || e.StatusCode == http.StatusTooManyRequests
}

// IsStatus reports whether err is an APIError with the given status code.
func IsStatus(err error, status int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == status
}

// MessageFrom extracts a user facing message from err. When err carries an
// API error body with the named field that text is used, anything else falls
// back to fallback.
func MessageFrom(err error, field, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		if msg := apiErr.Field(field); msg != "" {
			return msg
		}
	}
	return fallback
}

// do sends a JSON request and decodes the JSON response into out. GET requests
// are retried with exponential backoff on transport errors and 5xx responses.
func (c *Client) do(ctx context.Context, op, method, path string, in, out any) error {
	var payload []byte
	if in != nil {
		var err error
		payload, err = json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to encode %s request: %w", op, err)
		}
	}

	tries := uint(1)
	if method == http.MethodGet {
		tries = c.maxTries
	}

	metrics := telemetry.GetMetrics()
	attrs := metric.WithAttributes(
		attribute.String("operation", op),
		attribute.String("method", method),
	)
	started := time.Now()
	attempt := 0

	operation := func() (struct{}, error) {
		attempt++
		if attempt > 1 {
			metrics.APIRetriesTotal.Add(ctx, 1, attrs)
			log.Debug().Str("operation", op).Int("attempt", attempt).Msg("retrying request")
		}

		err := c.send(ctx, method, path, payload, out)
		if err == nil {
			return struct{}{}, nil
		}

		var apiErr *APIError
		if errors.As(err, &apiErr) && !apiErr.Temporary() {
			return struct{}{}, backoff.Permanent(err)
		}
		if ctx.Err() != nil {
			return struct{}{}, backoff.Permanent(err)
		}
		return struct{}{}, err
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = c.interval

	_, err := backoff.Retry(ctx, operation,
		backoff.WithBackOff(bo),
		backoff.WithMaxTries(tries),
	)

	metrics.APIRequestsTotal.Add(ctx, 1, attrs)
	metrics.APIRequestDuration.Record(ctx, float64(time.Since(started).Milliseconds()), attrs)

	if err != nil {
		metrics.APIRequestErrorsTotal.Add(ctx, 1, attrs)
		return err
	}

	return nil
}

func (c *Client) send(ctx context.Context, method, path string, payload []byte, out any) error {
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL.String()+path, body)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return newAPIError(method, path, resp.StatusCode, data)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("failed to decode %s %s response: %w", method, path, err)
	}
	_, _ = io.Copy(io.Discard, resp.Body)

	return nil
}

// ErrProfessionNotFound is returned when a profession lookup by name fails.
var ErrProfessionNotFound = errors.New("profession not found")
