package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/GabrielaCA88/ibitracker/internal/logger"
)

// RecoveryMiddleware ловить паніки та повертає 500 помилку
func RecoveryMiddleware(log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					log.Error("❌ PANIC: %v\n%s", err, debug.Stack())

					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					fmt.Fprintf(w, `{"error":"Internal server error","message":"%v"}`, err)
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
