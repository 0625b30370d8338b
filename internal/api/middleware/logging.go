package middleware

import (
	"net/http"
	"time"

	"github.com/GabrielaCA88/ibitracker/internal/logger"
)

// responseWriter обгортка для захоплення status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	written    int64
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	n, err := rw.ResponseWriter.Write(b)
	rw.written += int64(n)
	return n, err
}

// LoggingMiddleware логує всі HTTP запити
func LoggingMiddleware(log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			wrapped := &responseWriter{
				ResponseWriter: w,
				statusCode:     http.StatusOK,
			}

			next.ServeHTTP(wrapped, r)

			duration := time.Since(start)
			log.Info(
				"📡 %s %s | Status: %d | Duration: %v | Size: %d bytes | IP: %s",
				r.Method,
				r.RequestURI,
				wrapped.statusCode,
				duration,
				wrapped.written,
				r.RemoteAddr,
			)
		})
	}
}
