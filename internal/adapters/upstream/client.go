// Package upstream is the one outbound path shared by every provider adapter.
// It never retries: each call is at most one HTTP request.
package upstream

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog/log"
	gobreaker "github.com/sony/gobreaker/v2"

	"cityguide/internal/adapters/observability"
	"cityguide/internal/domain"
)

const userAgent = "cityguide/1.0"

// Breaker defaults: trip after this many consecutive failures, stay open for breakerOpen.
const breakerTrip = 5

var breakerOpen = 30 * time.Second

type Client struct {
	service string
	base    string
	hc      *http.Client
	headers map[string]string
	cb      *gobreaker.CircuitBreaker[struct{}]
}

// New builds a client for one provider. headers are sent on every request.
func New(service, base string, headers map[string]string) *Client {
	return &Client{
		service: service,
		base:    strings.TrimRight(base, "/"),
		// deadlines come from the caller's context
		hc:      &http.Client{},
		headers: headers,
		cb:      newBreaker(service),
	}
}

func newBreaker(service string) *gobreaker.CircuitBreaker[struct{}] {
	observability.SetBreakerState(service, 0)
	return gobreaker.NewCircuitBreaker[struct{}](gobreaker.Settings{
		Name:        service,
		MaxRequests: 1,
		Timeout:     breakerOpen,
		ReadyToTrip: func(c gobreaker.Counts) bool {
			return c.ConsecutiveFailures >= breakerTrip
		},
		// the caller hanging up says nothing about the provider
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn().Str("service", name).Str("from", from.String()).Str("to", to.String()).Msg("circuit breaker state change")
			observability.SetBreakerState(name, stateValue(to))
		},
	})
}

func stateValue(s gobreaker.State) float64 {
	switch s {
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return 0
	}
}

// GetJSON issues one GET to base+endpoint?params and decodes the body into out.
// Every failure wraps domain.ErrUpstream.
func (c *Client) GetJSON(ctx context.Context, endpoint string, params url.Values, out any) error {
	_, err := c.cb.Execute(func() (struct{}, error) {
		return struct{}{}, c.get(ctx, endpoint, params, out)
	})
	// half-open admits one trial call; concurrent callers go straight to the provider
	if errors.Is(err, gobreaker.ErrTooManyRequests) {
		err = c.get(ctx, endpoint, params, out)
	}
	if err != nil {
		return fmt.Errorf("%w: %s %s: %v", domain.ErrUpstream, c.service, endpoint, err)
	}
	return nil
}

func (c *Client) get(ctx context.Context, endpoint string, params url.Values, out any) error {
	u := c.base + endpoint
	if len(params) > 0 {
		u += "?" + params.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	start := time.Now()
	resp, err := c.hc.Do(req)
	if err != nil {
		observability.ObserveExternal(c.service, endpoint, 0, time.Since(start))
		if ctx.Err() != nil {
			return ctx.Err()
		}
		// url.Error repeats the URL, and some providers take the key as a query param
		var ue *url.Error
		if errors.As(err, &ue) {
			return ue.Err
		}
		return err
	}
	defer resp.Body.Close()
	observability.ObserveExternal(c.service, endpoint, resp.StatusCode, time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// read a small error body for diagnostics
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("bad status %d: %s", resp.StatusCode, strings.TrimSpace(string(b)))
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode: %w", err)
	}
	return nil
}
