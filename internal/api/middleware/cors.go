package middleware

import (
	"net/http"
	"strings"
)

// CORSMiddleware додає CORS headers для dashboard frontend.
// API read-only, тому дозволені лише GET та preflight OPTIONS.
func CORSMiddleware(allowedOrigins []string) func(http.Handler) http.Handler {
	exact := make(map[string]bool, len(allowedOrigins))
	var wildcards []string
	allowAll := len(allowedOrigins) == 0 // порожній список = dev mode

	for _, o := range allowedOrigins {
		switch {
		case o == "*":
			allowAll = true
		case strings.HasPrefix(o, "*."):
			// *.example.com → суфікс .example.com
			wildcards = append(wildcards, strings.TrimPrefix(o, "*"))
		default:
			exact[o] = true
		}
	}

	originAllowed := func(origin string) bool {
		if allowAll || exact[origin] {
			return true
		}
		for _, suffix := range wildcards {
			if strings.HasSuffix(origin, suffix) {
				return true
			}
		}
		return false
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if origin := r.Header.Get("Origin"); originAllowed(origin) {
				w.Header().Set("Access-Control-Allow-Origin", origin)
			}

			w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, X-Requested-With")
			w.Header().Set("Access-Control-Max-Age", "86400")

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
