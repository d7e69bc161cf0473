package router

import (
	"errors"
	"math"
	"net/http"
	"strconv"

	"golang.org/x/time/rate"

	"github.com/drblury/bloglist/responder"
)

var errRateLimited = errors.New("rate limit exceeded, retry later")

func rateLimitMiddleware(cfg RateLimitConfig, quietdownRoutes []string, resp *responder.Responder) Middleware {
	burst := cfg.Burst
	if burst <= 0 {
		burst = int(math.Max(1, math.Ceil(cfg.RequestsPerSecond)))
	}
	limiter := rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), burst)
	exempt := cloneStrings(quietdownRoutes)
	retryAfter := strconv.Itoa(int(math.Max(1, math.Ceil(1/cfg.RequestsPerSecond))))

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if shouldQuietRoute(r.URL.Path, exempt) || limiter.Allow() {
				next.ServeHTTP(w, r)
				return
			}
			w.Header().Set("Retry-After", retryAfter)
			resp.HandleAPIError(w, r, http.StatusTooManyRequests, errRateLimited)
		})
	}
}
