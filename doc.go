// Package bloglist is a small blog post API backed by MongoDB or an embedded
// bolt file.
//
// The blog package holds the post model, validation, the stores and the
// HTTP handlers. The responder package renders JSON and problem documents,
// router puts OpenAPI validation, CORS, rate limiting and access logging in
// front of the handlers, and info serves status, probe, version and
// documentation endpoints. The app package wires them together and
// cmd/bloglist runs the server.
//
// # Packages
//
//   - blog: posts, validation, MongoDB/bolt/memory stores, handlers.
//   - responder: JSON success and RFC 9457 error responses with slog logging.
//   - router: middleware chain around a ServeMux.
//   - info: /status, /healthz, /readyz, /version, /openapi.json, /docs.
//   - probe: readiness checks from store pings and HTTP endpoints.
//   - openapi: the embedded API description.
//   - ident: ULID identifiers.
//   - jsonutil: sonic-backed JSON helpers.
package bloglist
