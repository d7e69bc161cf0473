package probe

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"slices"
	"strings"
)

// HTTPDoer is the part of *http.Client the endpoint check needs.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// EndpointOption configures Endpoint.
type EndpointOption func(*endpointCheck)

type endpointCheck struct {
	header  http.Header
	allowed []int
}

func (c *endpointCheck) accepts(status int) bool {
	if len(c.allowed) == 0 {
		return status >= 200 && status < 300
	}
	return slices.Contains(c.allowed, status)
}

// WithStatus accepts only the listed statuses instead of any 2xx.
func WithStatus(statuses ...int) EndpointOption {
	return func(c *endpointCheck) {
		c.allowed = append(c.allowed, statuses...)
	}
}

// WithHeader sets a request header, typically User-Agent.
func WithHeader(key, value string) EndpointOption {
	return func(c *endpointCheck) {
		c.header.Set(key, value)
	}
}

// Endpoint GETs target and fails unless the answer carries an accepted
// status. A nil client means http.DefaultClient.
func Endpoint(target string, client HTTPDoer, opts ...EndpointOption) Func {
	check := &endpointCheck{header: make(http.Header)}
	for _, opt := range opts {
		if opt != nil {
			opt(check)
		}
	}
	if client == nil {
		client = http.DefaultClient
	}
	target = strings.TrimSpace(target)

	return func(ctx context.Context) error {
		if target == "" {
			return fmt.Errorf("endpoint check: target URL is required")
		}
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
		if err != nil {
			return fmt.Errorf("%s: %w", target, err)
		}
		req.Header = check.header.Clone()

		resp, err := client.Do(req)
		if err != nil {
			return fmt.Errorf("%s: %w", target, err)
		}
		defer resp.Body.Close()
		_, _ = io.Copy(io.Discard, resp.Body)

		if !check.accepts(resp.StatusCode) {
			return fmt.Errorf("%s: unexpected status %d %s", target, resp.StatusCode, http.StatusText(resp.StatusCode))
		}
		return nil
	}
}
