package info

import (
	"errors"
	"html/template"
	"net/http"
	"time"

	"github.com/drblury/bloglist/probe"
	"github.com/drblury/bloglist/responder"
)

// InfoProvider returns the payload exposed by the version endpoint.
type InfoProvider func() any

// SwaggerProvider returns the OpenAPI document rendered by /openapi.json.
type SwaggerProvider func() ([]byte, error)

// InfoOption configures an InfoHandler built by NewInfoHandler.
type InfoOption func(*InfoHandler)

const (
	defaultProbeTimeout = 2 * time.Second
	defaultDocsTitle    = "bloglist API"
)

// ProbeFunc is executed to determine the outcome of liveness or readiness
// probes. Returning a non-nil error marks the probe as failed.
type ProbeFunc = probe.Func

// InfoHandler serves status, probe, version, and documentation endpoints.
type InfoHandler struct {
	*responder.Responder
	baseURL         string
	infoProvider    InfoProvider
	swaggerProvider SwaggerProvider
	openapiTemplate *template.Template
	probeTimeout    time.Duration
	readinessChecks []ProbeFunc
}

// NewInfoHandler constructs an InfoHandler with defaults for every
// collaborator.
func NewInfoHandler(opts ...InfoOption) *InfoHandler {
	ih := &InfoHandler{
		Responder: responder.NewResponder(),
		infoProvider: func() any {
			return map[string]string{}
		},
		swaggerProvider: func() ([]byte, error) {
			return nil, errors.New("api swagger provider not configured")
		},
		openapiTemplate: defaultOpenAPITemplate,
		probeTimeout:    defaultProbeTimeout,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(ih)
		}
	}
	return ih
}

// RegisterRoutes mounts the info endpoints on mux.
func (ih *InfoHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /status", ih.GetStatus)
	mux.HandleFunc("GET /healthz", ih.GetHealthz)
	mux.HandleFunc("GET /readyz", ih.GetReadyz)
	mux.HandleFunc("GET /version", ih.GetVersion)
	mux.HandleFunc("GET /openapi.json", ih.GetOpenAPIJSON)
	mux.HandleFunc("GET /docs", ih.GetOpenAPIHTML)
}

// WithInfoResponder replaces the responder used to craft JSON responses and
// handle error reporting.
func WithInfoResponder(responder *responder.Responder) InfoOption {
	return func(ih *InfoHandler) {
		if responder != nil {
			ih.Responder = responder
		}
	}
}

// WithBaseURL sets the URL prefix injected into the documentation template.
func WithBaseURL(baseURL string) InfoOption {
	return func(ih *InfoHandler) {
		ih.baseURL = baseURL
	}
}

// WithInfoProvider swaps the default metadata provider.
func WithInfoProvider(provider InfoProvider) InfoOption {
	return func(ih *InfoHandler) {
		if provider != nil {
			ih.infoProvider = provider
		}
	}
}

// WithSwaggerProvider sets the source of the OpenAPI JSON document.
func WithSwaggerProvider(provider SwaggerProvider) InfoOption {
	return func(ih *InfoHandler) {
		if provider != nil {
			ih.swaggerProvider = provider
		}
	}
}

// WithOpenAPITemplate injects a custom template for the documentation page.
func WithOpenAPITemplate(tmpl *template.Template) InfoOption {
	return func(ih *InfoHandler) {
		if tmpl != nil {
			ih.openapiTemplate = tmpl
		}
	}
}

// WithProbeTimeout adjusts the maximum duration allowed for one probe run.
func WithProbeTimeout(timeout time.Duration) InfoOption {
	return func(ih *InfoHandler) {
		if timeout > 0 {
			ih.probeTimeout = timeout
		}
	}
}

// WithReadinessChecks replaces the readiness checks.
func WithReadinessChecks(checks ...ProbeFunc) InfoOption {
	return func(ih *InfoHandler) {
		ih.readinessChecks = filterProbes(checks)
	}
}

func templateData(baseURL string) map[string]any {
	return map[string]any{
		"BaseURL": baseURL,
		"Title":   defaultDocsTitle,
	}
}
