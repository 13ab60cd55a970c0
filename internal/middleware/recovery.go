package middleware

import (
	"log"
	"net/http"
	"runtime/debug"

	"concierge-backend/pkg/utils"
)

// PanicRecovery converts a handler panic into a 500 response instead of
// tearing down the connection. The stack goes to the log, not the client.
func PanicRecovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				log.Printf("[Recovery] panic on %s %s: %v\n%s", r.Method, r.URL.Path, err, debug.Stack())
				utils.JSON(w, http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
			}
		}()

		next.ServeHTTP(w, r)
	})
}
