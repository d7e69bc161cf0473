package router

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/drblury/bloglist/responder"
)

// Middleware wraps an http.Handler to produce a new http.Handler.
type Middleware func(http.Handler) http.Handler

// Option configures the router via the functional options pattern.
type Option func(*options)

type options struct {
	config          Config
	logger          *slog.Logger
	responder       *responder.Responder
	swagger         *openapi3.T
	enableOpenAPI   bool
	enableCORS      bool
	enableRateLimit bool
	enableTimeout   bool
	enableLogging   bool
}

func defaultOptions() *options {
	return &options{
		config: Config{
			Timeout: 30 * time.Second,
		},
		logger:          slog.Default(),
		enableOpenAPI:   true,
		enableCORS:      true,
		enableRateLimit: true,
		enableTimeout:   true,
		enableLogging:   true,
	}
}

// middlewareChain runs outermost first. Logging wraps everything so it
// sees the final status; CORS answers preflights before validation, which
// would reject OPTIONS as an undocumented operation.
func (o *options) middlewareChain() []Middleware {
	chain := make([]Middleware, 0, 5)
	resp := o.problemResponder()

	if o.enableLogging && o.logger != nil {
		chain = append(chain, loggingMiddleware(o.logger, o.config.QuietdownRoutes, o.config.HideHeaders))
	}

	if o.enableCORS && shouldApplyCORS(o.config.CORS) {
		chain = append(chain, corsMiddleware(o.config.CORS))
	}

	if o.enableRateLimit && o.config.RateLimit.enabled() {
		chain = append(chain, rateLimitMiddleware(o.config.RateLimit, o.config.QuietdownRoutes, resp))
	}

	if o.enableTimeout && o.config.Timeout > 0 {
		chain = append(chain, timeoutMiddleware(o.config.Timeout))
	}

	if o.enableOpenAPI && o.swagger != nil {
		chain = append(chain, oapiMiddleware(o.swagger, resp))
	}

	return chain
}

func (o *options) problemResponder() *responder.Responder {
	if o.responder != nil {
		return o.responder
	}
	return responder.NewResponder(responder.WithLogger(o.logger))
}

// WithConfig replaces the router configuration with the provided value.
func WithConfig(cfg Config) Option {
	configCopy := sanitizeConfig(cfg)
	return func(o *options) {
		o.config = configCopy
	}
}

// WithLogger provides the structured logger to be used by the logging middleware.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithResponder sets the responder that renders problem documents for
// requests rejected by the router itself (validation, throttling).
func WithResponder(resp *responder.Responder) Option {
	return func(o *options) {
		o.responder = resp
	}
}

// WithSwagger wires the OpenAPI document for request validation.
func WithSwagger(swagger *openapi3.T) Option {
	return func(o *options) {
		o.swagger = swagger
	}
}

// WithoutOpenAPIValidation disables the OpenAPI validation middleware.
func WithoutOpenAPIValidation() Option {
	return func(o *options) {
		o.enableOpenAPI = false
	}
}

// WithoutCORSMiddleware disables the CORS middleware regardless of configuration.
func WithoutCORSMiddleware() Option {
	return func(o *options) {
		o.enableCORS = false
	}
}

// WithoutRateLimitMiddleware disables throttling regardless of configuration.
func WithoutRateLimitMiddleware() Option {
	return func(o *options) {
		o.enableRateLimit = false
	}
}

// WithoutTimeoutMiddleware disables the timeout middleware.
func WithoutTimeoutMiddleware() Option {
	return func(o *options) {
		o.enableTimeout = false
	}
}

// WithoutLoggingMiddleware disables the logging middleware.
func WithoutLoggingMiddleware() Option {
	return func(o *options) {
		o.enableLogging = false
	}
}

func sanitizeConfig(cfg Config) Config {
	cfg.QuietdownRoutes = cloneStrings(cfg.QuietdownRoutes)
	cfg.HideHeaders = cloneStrings(cfg.HideHeaders)
	cfg.CORS.Headers = cloneStrings(cfg.CORS.Headers)
	cfg.CORS.Methods = cloneStrings(cfg.CORS.Methods)
	cfg.CORS.Origins = cloneStrings(cfg.CORS.Origins)
	return cfg
}

func cloneStrings(values []string) []string {
	if len(values) == 0 {
		return nil
	}

	cloned := make([]string, len(values))
	copy(cloned, values)
	return cloned
}

func shouldApplyCORS(cfg CORSConfig) bool {
	return len(cfg.Origins) > 0
}
