package router

import "time"

// Config holds the tunables of the default middleware chain.
type Config struct {
	// Timeout bounds handler execution; zero disables the timeout middleware.
	Timeout time.Duration
	CORS    CORSConfig
	// RateLimit throttles requests across all clients; zero disables it.
	RateLimit RateLimitConfig
	// QuietdownRoutes are exact paths that are neither logged nor throttled,
	// typically probe endpoints.
	QuietdownRoutes []string
	// HideHeaders are redacted from request logs.
	HideHeaders []string
}

// CORSConfig lists what cross-origin callers may do. CORS headers are only
// emitted when Origins is non-empty; "*" allows any origin.
type CORSConfig struct {
	Origins          []string
	Methods          []string
	Headers          []string
	AllowCredentials bool
}

// RateLimitConfig configures a token bucket refilled at RequestsPerSecond
// holding at most Burst tokens.
type RateLimitConfig struct {
	RequestsPerSecond float64
	Burst             int
}

func (c RateLimitConfig) enabled() bool {
	return c.RequestsPerSecond > 0
}
