// Package probe turns store pings and HTTP checks into readiness and liveness
// functions for the info endpoints and the healthcheck command.
package probe
