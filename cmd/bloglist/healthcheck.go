package main

import (
	"context"
	"net/http"
	"time"

	"github.com/drblury/bloglist/probe"
)

// healthcheck probes a running instance, for container runtimes that can
// only execute a command.
func healthcheck(ctx context.Context, target string, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	check := probe.Endpoint(target, &http.Client{Timeout: timeout},
		probe.WithStatus(http.StatusOK),
		probe.WithHeader("User-Agent", "bloglist-healthcheck"),
	)
	return check(ctx)
}
