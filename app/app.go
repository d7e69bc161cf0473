// Package app assembles the blog API: one responder shared by every handler,
// the blog and info routes, and the router middleware chain in front of them.
package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/drblury/bloglist/blog"
	"github.com/drblury/bloglist/info"
	"github.com/drblury/bloglist/openapi"
	"github.com/drblury/bloglist/probe"
	"github.com/drblury/bloglist/responder"
	"github.com/drblury/bloglist/router"
)

// Option configures New.
type Option func(*settings)

type settings struct {
	logger       *slog.Logger
	routerConfig router.Config
	buildInfo    info.InfoProvider
	baseURL      string
	validate     bool
	maxBodyBytes int64
}

// WithLogger sets the logger shared by the responder and the router.
func WithLogger(logger *slog.Logger) Option {
	return func(s *settings) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithRouterConfig sets timeouts, CORS, rate limiting, and log filtering.
func WithRouterConfig(cfg router.Config) Option {
	return func(s *settings) {
		s.routerConfig = cfg
	}
}

// WithBuildInfo overrides the payload served at /version.
func WithBuildInfo(provider info.InfoProvider) Option {
	return func(s *settings) {
		if provider != nil {
			s.buildInfo = provider
		}
	}
}

// WithBaseURL sets the public URL prefix used by the documentation page.
func WithBaseURL(baseURL string) Option {
	return func(s *settings) {
		s.baseURL = baseURL
	}
}

// WithMaxBodyBytes caps request body size.
func WithMaxBodyBytes(limit int64) Option {
	return func(s *settings) {
		s.maxBodyBytes = limit
	}
}

// WithoutRequestValidation skips OpenAPI request validation at the edge.
// Handlers still validate their input.
func WithoutRequestValidation() Option {
	return func(s *settings) {
		s.validate = false
	}
}

// New returns the complete HTTP handler for the service backed by store.
func New(store blog.Store, opts ...Option) (http.Handler, error) {
	if store == nil {
		return nil, fmt.Errorf("app: store is required")
	}

	s := &settings{
		logger:    slog.Default(),
		buildInfo: BuildInfo("dev"),
		validate:  true,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}

	resp := responder.NewResponder(
		responder.WithLogger(s.logger),
		responder.WithErrorClassifier(blog.ClassifyError),
		responder.WithMaxBodyBytes(s.maxBodyBytes),
	)

	mux := http.NewServeMux()
	blog.NewHandler(store, blog.WithResponder(resp)).RegisterRoutes(mux)
	info.NewInfoHandler(
		info.WithInfoResponder(resp),
		info.WithBaseURL(s.baseURL),
		info.WithInfoProvider(s.buildInfo),
		info.WithSwaggerProvider(openapi.JSON),
		info.WithReadinessChecks(readinessProbe(store)),
	).RegisterRoutes(mux)
	mux.HandleFunc("/", unknownEndpoint(resp))

	routerOpts := []router.Option{
		router.WithLogger(s.logger),
		router.WithResponder(resp),
		router.WithConfig(s.routerConfig),
	}
	if s.validate {
		swagger, err := openapi.Load()
		if err != nil {
			return nil, err
		}
		routerOpts = append(routerOpts, router.WithSwagger(swagger))
	} else {
		routerOpts = append(routerOpts, router.WithoutOpenAPIValidation())
	}

	return router.New(mux, routerOpts...), nil
}

func unknownEndpoint(resp *responder.Responder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp.HandleNotFoundError(w, r, fmt.Errorf("unknown endpoint %s %s", r.Method, r.URL.Path))
	}
}

func readinessProbe(store blog.Store) probe.Func {
	switch s := store.(type) {
	case *blog.MongoStore:
		return probe.Mongo(s.Client())
	case *blog.BoltStore:
		return probe.Store("bolt", s)
	default:
		return probe.Store("memory", store)
	}
}

// Close releases whatever connection or file the store holds.
func Close(ctx context.Context, store blog.Store) error {
	switch s := store.(type) {
	case *blog.MongoStore:
		return s.Close(ctx)
	case io.Closer:
		return s.Close()
	}
	return nil
}
