// Coursewise - Course Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coursewise

package catalog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	gobreaker "github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"

	"github.com/tomtom215/coursewise/internal/metrics"
	"github.com/tomtom215/coursewise/internal/models"
)

// maxCatalogBytes caps the size of a downloaded catalog document.
const maxCatalogBytes = 8 << 20

// errPermanent marks HTTP failures that a retry cannot fix.
var errPermanent = errors.New("permanent catalog fetch failure")

// HTTPOptions tunes an HTTPSource.
type HTTPOptions struct {
	// Timeout bounds each request. Default: 10s
	Timeout time.Duration

	// Retries is the number of additional attempts after the first failure.
	Retries int

	// RetryInterval is the minimum spacing between attempts. Default: 500ms
	RetryInterval time.Duration

	// Client overrides the HTTP client (Timeout is then ignored).
	Client *http.Client
}

// HTTPSource fetches a JSON catalog document over HTTP.
//
// Requests go through a circuit breaker so a dead catalog server is not
// hammered, and retries are paced by a token-bucket limiter.
type HTTPSource struct {
	url     string
	client  *http.Client
	retries int
	limiter *rate.Limiter
	cb      *gobreaker.CircuitBreaker[[]byte]
	name    string
	logger  zerolog.Logger
}

// NewHTTPSource creates an HTTPSource for url.
//
// Circuit breaker configuration:
//   - 1 trial request in half-open state
//   - opens after 5 consecutive failures
//   - 30 second timeout before attempting recovery
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewHTTPSource(url string, opts HTTPOptions, logger zerolog.Logger) *HTTPSource {
	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Second
	}
	if opts.RetryInterval <= 0 {
		opts.RetryInterval = 500 * time.Millisecond
	}
	if opts.Retries < 0 {
		opts.Retries = 0
	}
	client := opts.Client
	if client == nil {
		client = &http.Client{Timeout: opts.Timeout}
	}

	cbName := "catalog-http"
	logger = logger.With().Str("component", "catalog").Str("source", "http").Logger()

	metrics.CircuitBreakerState.WithLabelValues(cbName).Set(0)
	metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(cbName).Set(0)

	cb := gobreaker.NewCircuitBreaker[[]byte](gobreaker.Settings{
		Name:        cbName,
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			shouldTrip := counts.ConsecutiveFailures >= 5
			if shouldTrip {
				logger.Warn().Uint32("consecutive_failures", counts.ConsecutiveFailures).Msg("opening catalog circuit breaker")
			}
			return shouldTrip
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			fromStr := stateToString(from)
			toStr := stateToString(to)

			logger.Info().Str("from", fromStr).Str("to", toStr).Msg("circuit breaker state transition")

			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, fromStr, toStr).Inc()
			if to == gobreaker.StateClosed {
				metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(name).Set(0)
			}
		},
	})

	return &HTTPSource{
		url:     url,
		client:  client,
		retries: opts.Retries,
		limiter: rate.NewLimiter(rate.Every(opts.RetryInterval), 1),
		cb:      cb,
		name:    cbName,
		logger:  logger,
	}
}

// Name implements Source.
func (h *HTTPSource) Name() string { return "http" }

// Load implements Source.
func (h *HTTPSource) Load(ctx context.Context) ([]models.Course, error) {
	var lastErr error
	for attempt := 0; attempt <= h.retries; attempt++ {
		if err := h.limiter.Wait(ctx); err != nil {
			if lastErr != nil {
				return nil, fmt.Errorf("%w (retry aborted: %v)", lastErr, err)
			}
			return nil, err
		}

		body, err := h.execute(func() ([]byte, error) {
			return h.fetch(ctx)
		})
		if err == nil {
			courses, decodeErr := models.DecodeCourses(body)
			if decodeErr != nil {
				return nil, fmt.Errorf("decode catalog %s: %w", h.url, decodeErr)
			}
			return courses, nil
		}

		lastErr = err
		if errors.Is(err, errPermanent) || errors.Is(err, gobreaker.ErrOpenState) ||
			errors.Is(err, gobreaker.ErrTooManyRequests) || ctx.Err() != nil {
			break
		}
		h.logger.Debug().Err(err).Int("attempt", attempt+1).Msg("catalog fetch failed")
	}
	return nil, lastErr
}

// fetch performs one GET and returns the body of a 2xx response.
func (h *HTTPSource) fetch(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %v", errPermanent, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := h.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch catalog %s: %w", h.url, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("%w: %w: %s", ErrSourceNotFound, errPermanent, h.url)
	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		return nil, fmt.Errorf("%w: fetch catalog %s: status %d", errPermanent, h.url, resp.StatusCode)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return nil, fmt.Errorf("fetch catalog %s: status %d", h.url, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxCatalogBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read catalog body: %w", err)
	}
	if len(body) > maxCatalogBytes {
		return nil, fmt.Errorf("%w: catalog document exceeds %d bytes", errPermanent, maxCatalogBytes)
	}
	return body, nil
}

// execute wraps a fetch with circuit breaker protection and metrics.
func (h *HTTPSource) execute(fn func() ([]byte, error)) ([]byte, error) {
	body, err := h.cb.Execute(fn)
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			metrics.CircuitBreakerRequests.WithLabelValues(h.name, "rejected").Inc()
			h.logger.Warn().Err(err).Msg("catalog request rejected by circuit breaker")
		} else {
			metrics.CircuitBreakerRequests.WithLabelValues(h.name, "failure").Inc()
			counts := h.cb.Counts()
			metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(h.name).Set(float64(counts.ConsecutiveFailures))
		}
		return nil, err
	}

	metrics.CircuitBreakerRequests.WithLabelValues(h.name, "success").Inc()
	metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(h.name).Set(0)
	return body, nil
}

// stateToFloat converts circuit breaker state to numeric value for metrics
func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}

// stateToString converts circuit breaker state to string for logging
func stateToString(state gobreaker.State) string {
	switch state {
	case gobreaker.StateClosed:
		return "closed"
	case gobreaker.StateHalfOpen:
		return "half-open"
	case gobreaker.StateOpen:
		return "open"
	default:
		return "unknown"
	}
}
