// Package middleware holds net/http middleware for the function host.
package middleware

import (
	"crypto/subtle"
	"log/slog"
	"net/http"

	"github.com/aanand-mishra/student-functions/internal/utils/response"
)

const (
	// FunctionKeyHeader and FunctionKeyParam are the two places a caller
	// may put the function key.
	FunctionKeyHeader = "x-functions-key"
	FunctionKeyParam  = "code"

	msgUnauthorized = "Unauthorized."
)

// FunctionKey enforces function-level authorization: the request must carry
// key in the x-functions-key header or the code query parameter.
// An empty key disables the check.
func FunctionKey(key string, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if key == "" {
			return next
		}

		want := []byte(key)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got := r.Header.Get(FunctionKeyHeader)
			if got == "" {
				got = r.URL.Query().Get(FunctionKeyParam)
			}

			if subtle.ConstantTimeCompare([]byte(got), want) != 1 {
				log.Warn("rejected request without a valid function key",
					slog.String("method", r.Method),
					slog.String("path", r.URL.Path))
				response.WriteText(w, http.StatusUnauthorized, msgUnauthorized)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
