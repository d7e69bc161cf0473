// Package router wraps the application handler with the edge middleware
// every request passes through: access logging, CORS, rate limiting,
// timeouts, and OpenAPI request validation.
package router
