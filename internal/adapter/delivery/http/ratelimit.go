package http

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/httplog/v2"
	"github.com/go-chi/render"
)

// RequestLimiter is the contract the delivery layer expects from the
// rate-limiting collaborator: it charges one request against the client's
// budget and reports whether the request may proceed.
type RequestLimiter interface {
	Allow(ctx context.Context, clientIP string) (bool, time.Duration, error)
}

// rateLimitExempt reports whether the path stays reachable regardless of the
// client's budget: healthchecks and documentation must not be throttled.
func rateLimitExempt(path string) bool {
	if path == "/api/v1/ping" {
		return true
	}

	return strings.HasPrefix(path, "/swagger") || strings.HasPrefix(path, "/docs")
}

// withRateLimit rejects requests over the per-client budget with 429 and a
// Retry-After header. A limiter backend failure lets the request through:
// the limiter shares the cache's fate, and a cache outage must not take the
// redirect path down with it.
func withRateLimit(limiter RequestLimiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if limiter == nil || rateLimitExempt(r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}

			ok, retryAfter, err := limiter.Allow(r.Context(), clientIP(r))
			if err != nil {
				httplog.LogEntrySetField(r.Context(), "err", slog.AnyValue(err))
				next.ServeHTTP(w, r)
				return
			}

			if !ok {
				seconds := int(retryAfter.Round(time.Second).Seconds())
				if seconds < 1 {
					seconds = 1
				}

				w.Header().Set("Retry-After", strconv.Itoa(seconds))
				render.Status(r, http.StatusTooManyRequests)
				render.JSON(w, r, newErrorResponse(
					fmt.Sprintf("rate limit exceeded, try again in %d seconds", seconds)))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// clientIP returns the client address without the port. middleware.RealIP
// runs earlier and may have already replaced RemoteAddr with a bare IP.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}

	return host
}
