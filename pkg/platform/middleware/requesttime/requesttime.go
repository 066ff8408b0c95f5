// Package requesttime provides middleware for request-scoped time.
// Every timestamp produced while serving one request comes from the same "now".
package requesttime

import (
	"net/http"
	"time"

	"validarfc/pkg/requestcontext"
)

// Middleware captures the current UTC time at the start of the request and
// stores it in the context.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := requestcontext.WithTime(r.Context(), time.Now().UTC())
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
