package router

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/drblury/bloglist/openapi"
	"github.com/drblury/bloglist/responder"
)

func TestNewWithoutDefaultsServesHandlerDirectly(t *testing.T) {
	reached := false
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reached = true
		w.WriteHeader(http.StatusNoContent)
	})

	mux := New(
		handler,
		WithConfig(Config{
			Timeout:   time.Millisecond,
			CORS:      CORSConfig{Origins: []string{"*"}},
			RateLimit: RateLimitConfig{RequestsPerSecond: 0.001, Burst: 1},
		}),
		WithoutOpenAPIValidation(),
		WithoutCORSMiddleware(),
		WithoutRateLimitMiddleware(),
		WithoutTimeoutMiddleware(),
		WithoutLoggingMiddleware(),
	)

	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodDelete, "/api/blogs/1", nil)
		req.Header.Set("Origin", "https://example.com")
		rr := httptest.NewRecorder()
		mux.ServeHTTP(rr, req)

		if rr.Code != http.StatusNoContent {
			t.Fatalf("unexpected response code: got %d want %d", rr.Code, http.StatusNoContent)
		}
		if rr.Header().Get("Access-Control-Allow-Origin") != "" {
			t.Fatal("expected no CORS headers")
		}
	}
	if !reached {
		t.Fatal("expected handler to run")
	}
}

func TestNewAppliesCORSEnforcementFromConfig(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	mux := New(
		handler,
		WithConfig(Config{
			CORS: CORSConfig{
				Origins:          []string{"https://example.com"},
				Methods:          []string{http.MethodGet, http.MethodPost, http.MethodDelete},
				Headers:          []string{"Content-Type"},
				AllowCredentials: true,
			},
		}),
	)

	req := httptest.NewRequest(http.MethodOptions, "/api/blogs", nil)
	req.Header.Set("Origin", "https://example.com")
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("unexpected status code: got %d want %d", rr.Code, http.StatusOK)
	}
	if got := rr.Header().Get("Access-Control-Allow-Origin"); got != "https://example.com" {
		t.Fatalf("unexpected access-control-allow-origin: got %q", got)
	}
	if got := rr.Header().Get("Access-Control-Allow-Methods"); got != "GET,POST,DELETE" {
		t.Fatalf("unexpected access-control-allow-methods: got %q", got)
	}
	if got := rr.Header().Get("Access-Control-Allow-Headers"); got != "Content-Type" {
		t.Fatalf("unexpected access-control-allow-headers: got %q", got)
	}
	if got := rr.Header().Get("Access-Control-Allow-Credentials"); got != "true" {
		t.Fatalf("unexpected access-control-allow-credentials: got %q", got)
	}
}

func TestWithoutCORSMiddlewareSkipsHeaders(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	mux := New(
		handler,
		WithConfig(Config{CORS: CORSConfig{Origins: []string{"*"}}}),
		WithoutCORSMiddleware(),
	)

	req := httptest.NewRequest(http.MethodOptions, "/", nil)
	req.Header.Set("Origin", "https://example.com")
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)

	if rr.Header().Get("Access-Control-Allow-Origin") != "" {
		t.Fatal("expected CORS headers to be skipped when middleware disabled")
	}
	if rr.Code != http.StatusNoContent {
		t.Fatalf("unexpected status code: got %d want %d", rr.Code, http.StatusNoContent)
	}
}

func TestTimeoutMiddlewareCanBeDisabled(t *testing.T) {
	longHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(10 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	})

	withTimeout := New(longHandler, WithConfig(Config{Timeout: 1 * time.Millisecond}))
	withoutTimeout := New(longHandler, WithConfig(Config{Timeout: 1 * time.Millisecond}), WithoutTimeoutMiddleware())

	rrTimeout := httptest.NewRecorder()
	withTimeout.ServeHTTP(rrTimeout, httptest.NewRequest(http.MethodGet, "/", nil))
	if rrTimeout.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected timeout handler to fire, got %d", rrTimeout.Code)
	}

	rrNoTimeout := httptest.NewRecorder()
	withoutTimeout.ServeHTTP(rrNoTimeout, httptest.NewRequest(http.MethodGet, "/", nil))
	if rrNoTimeout.Code != http.StatusOK {
		t.Fatalf("expected handler to complete when timeout disabled, got %d", rrNoTimeout.Code)
	}
}

func TestRateLimitMiddleware(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	mux := New(handler, WithConfig(Config{
		RateLimit:       RateLimitConfig{RequestsPerSecond: 0.001, Burst: 1},
		QuietdownRoutes: []string{"/healthz"},
	}))

	first := httptest.NewRecorder()
	mux.ServeHTTP(first, httptest.NewRequest(http.MethodGet, "/api/blogs", nil))
	if first.Code != http.StatusOK {
		t.Fatalf("expected first request to pass, got %d", first.Code)
	}

	second := httptest.NewRecorder()
	mux.ServeHTTP(second, httptest.NewRequest(http.MethodGet, "/api/blogs", nil))
	if second.Code != http.StatusTooManyRequests {
		t.Fatalf("expected second request to be throttled, got %d", second.Code)
	}
	if second.Header().Get("Retry-After") == "" {
		t.Fatal("expected Retry-After header")
	}

	quiet := httptest.NewRecorder()
	mux.ServeHTTP(quiet, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if quiet.Code != http.StatusOK {
		t.Fatalf("expected quiet route to bypass the limiter, got %d", quiet.Code)
	}
}

func TestOpenAPIValidation(t *testing.T) {
	swagger, err := openapi.Load()
	if err != nil {
		t.Fatalf("failed to load openapi document: %v", err)
	}

	reached := 0
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reached++
		w.WriteHeader(http.StatusCreated)
	})
	mux := New(handler,
		WithSwagger(swagger),
		WithResponder(responder.NewResponder(responder.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))),
		WithoutLoggingMiddleware(),
	)

	post := func(body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/blogs", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		rr := httptest.NewRecorder()
		mux.ServeHTTP(rr, req)
		return rr
	}

	if rr := post(`{"title":"t","author":"a"}`); rr.Code != http.StatusCreated {
		t.Fatalf("expected valid body to reach handler, got %d (%s)", rr.Code, rr.Body.String())
	}

	rr := post(`{"url":"https://example.com"}`)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected missing fields to be rejected, got %d", rr.Code)
	}
	if ct := rr.Header().Get("Content-Type"); ct != "application/problem+json" {
		t.Fatalf("expected problem document, got %q", ct)
	}
	var rejected responder.ProblemDetails
	if err := json.Unmarshal(rr.Body.Bytes(), &rejected); err != nil {
		t.Fatalf("failed to decode problem: %v", err)
	}
	if rejected.Instance != "/api/blogs" {
		t.Fatalf("expected instance /api/blogs, got %q", rejected.Instance)
	}
	if !strings.Contains(rejected.Detail, "title") {
		t.Fatalf("expected detail to name the missing field, got %q", rejected.Detail)
	}

	if rr := post(`{"title":"t","author":"a","likes":-1}`); rr.Code != http.StatusBadRequest {
		t.Fatalf("expected negative likes to be rejected, got %d", rr.Code)
	}

	unknown := httptest.NewRecorder()
	mux.ServeHTTP(unknown, httptest.NewRequest(http.MethodGet, "/nope", nil))
	if unknown.Code != http.StatusNotFound {
		t.Fatalf("expected unknown endpoint to 404, got %d", unknown.Code)
	}
	var problem responder.ProblemDetails
	if err := json.Unmarshal(unknown.Body.Bytes(), &problem); err != nil {
		t.Fatalf("failed to decode problem: %v", err)
	}
	if problem.Detail != "unknown endpoint" {
		t.Fatalf("unexpected detail %q", problem.Detail)
	}
	if problem.Instance != "/nope" {
		t.Fatalf("expected instance /nope, got %q", problem.Instance)
	}

	if reached != 1 {
		t.Fatalf("expected handler to run once, ran %d", reached)
	}
}

func TestLoggingMiddlewareRecordsStatusAndRedacts(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	mux := New(handler,
		WithLogger(logger),
		WithConfig(Config{HideHeaders: []string{"authorization"}, QuietdownRoutes: []string{"/readyz"}}),
	)

	req := httptest.NewRequest(http.MethodDelete, "/api/blogs/1", nil)
	req.Header.Set("Authorization", "Bearer secret")
	mux.ServeHTTP(httptest.NewRecorder(), req)
	mux.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/readyz", nil))

	out := logs.String()
	if !strings.Contains(out, `"status":204`) {
		t.Fatalf("expected status in log, got %s", out)
	}
	if strings.Contains(out, "secret") {
		t.Fatalf("expected authorization header to be redacted, got %s", out)
	}
	if !strings.Contains(out, "[REDACTED - 13 bytes]") {
		t.Fatalf("expected redaction marker, got %s", out)
	}
	if strings.Contains(out, "/readyz") {
		t.Fatalf("expected quiet route to be skipped, got %s", out)
	}
}

func TestNewPanicsWhenHandlerNil(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic when handler is nil")
		}
	}()

	New(nil)
}
