package middleware

import (
	"net"
	"net/http"
	"strings"

	"github.com/harmonyhub/portal-api/internal/pkg/ratelimit"
)

// RateLimit enforces the scope's sliding-window policy per caller. The caller
// identity comes from the first X-Forwarded-For hop, then the connection
// address, then the literal "unknown".
func RateLimit(l *ratelimit.Limiter, scope string, p ratelimit.Policy) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !l.AllowNow(scope, realIP(r), p) {
				writeJSONError(w, http.StatusTooManyRequests, "Too many requests. Please wait and try again.")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func realIP(r *http.Request) string {
	if xf := r.Header.Get("X-Forwarded-For"); xf != "" {
		return strings.TrimSpace(strings.Split(xf, ",")[0])
	}
	if xr := r.Header.Get("X-Real-Ip"); xr != "" {
		return strings.TrimSpace(xr)
	}
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil && host != "" {
		return host
	}
	if r.RemoteAddr != "" {
		return r.RemoteAddr
	}
	return "unknown"
}
