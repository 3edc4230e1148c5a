package middleware

import (
	"log"
	"net/http"
	"runtime/debug"

	"pg-backend/pkg/utils"
)

// PanicRecovery converts handler panics into a JSON 500. The panic value and
// stack go to the server log only; the client gets the generic message.
func PanicRecovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				log.Printf("[Panic] %s %s: %v\n%s", r.Method, r.URL.Path, rec, debug.Stack())
				utils.Error(w, http.StatusInternalServerError, "Internal server error")
			}
		}()

		next.ServeHTTP(w, r)
	})
}
