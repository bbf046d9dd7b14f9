package middleware

import (
	"fmt"
	"net/http"

	"github.com/cloo-solutions/tutorai/internal/api"
)

// LimitBody rejects requests whose body exceeds limit bytes. Declared
// lengths are checked up front; chunked bodies fail on read.
func LimitBody(limit int64) func(http.Handler) http.Handler {
	message := fmt.Sprintf("request body exceeds %s", formatBytes(limit))
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if limit <= 0 || r.Body == nil || r.Body == http.NoBody {
				next.ServeHTTP(w, r)
				return
			}

			if r.ContentLength > limit {
				api.Error(w, http.StatusRequestEntityTooLarge, message)
				return
			}

			r.Body = http.MaxBytesReader(w, r.Body, limit)
			next.ServeHTTP(w, r)
		})
	}
}

func formatBytes(n int64) string {
	const mb = 1 << 20
	if n >= mb && n%mb == 0 {
		return fmt.Sprintf("%d MB", n/mb)
	}
	return fmt.Sprintf("%d bytes", n)
}
