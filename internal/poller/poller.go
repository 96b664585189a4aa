// Package poller runs a fetch function on a fixed interval for as long as a
// view is open.
package poller

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/wolfeidau/devmarket/internal/telemetry"
)

// DefaultInterval is the refresh period of polled views.
const DefaultInterval = 10 * time.Second

// FetchFunc performs one refresh. Errors are logged and polling continues.
type FetchFunc func(ctx context.Context) error

// Handle controls a running poller.
type Handle struct {
	name   string
	cancel context.CancelFunc
	done   chan struct{}
	once   sync.Once
}

// Start fetches immediately and then every interval until Stop is called or
// ctx is cancelled. A non positive interval uses DefaultInterval.
func Start(ctx context.Context, name string, interval time.Duration, fetch FetchFunc) *Handle {
	ctx, cancel := context.WithCancel(ctx)

	h := &Handle{
		name:   name,
		cancel: cancel,
		done:   make(chan struct{}),
	}

	go func() {
		defer close(h.done)
		_ = Run(ctx, name, interval, fetch)
	}()

	return h
}

// Stop cancels the poller and waits for an in progress fetch to return. It is
// safe to call more than once.
func (h *Handle) Stop() {
	h.once.Do(func() {
		h.cancel()
		<-h.done
		log.Debug().Str("poller", h.name).Msg("poller stopped")
	})
}

// Done is closed once the poller has exited.
func (h *Handle) Done() <-chan struct{} {
	return h.done
}

// Run polls in the calling goroutine until ctx is cancelled, returning the
// context error.
func Run(ctx context.Context, name string, interval time.Duration, fetch FetchFunc) error {
	if interval <= 0 {
		interval = DefaultInterval
	}

	metrics := telemetry.GetMetrics()
	attrs := metric.WithAttributes(attribute.String("poller", name))

	metrics.ActivePollers.Add(ctx, 1, attrs)
	defer metrics.ActivePollers.Add(context.WithoutCancel(ctx), -1, attrs)

	log.Debug().Str("poller", name).Dur("interval", interval).Msg("poller started")

	tick := func() {
		metrics.PollTicksTotal.Add(ctx, 1, attrs)
		if err := fetch(ctx); err != nil && ctx.Err() == nil {
			metrics.PollErrorsTotal.Add(ctx, 1, attrs)
			log.Warn().Err(err).Str("poller", name).Msg("poll failed")
		}
	}

	tick()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			// a stop that raced the tick wins
			if ctx.Err() != nil {
				return ctx.Err()
			}
			tick()
		}
	}
}
