package server

import (
	"log"
	"net/http"
	"time"

	"github.com/fatih/color"
)

// responseWriter wraps http.ResponseWriter to capture status code and size
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	written    int64
}

func (rw *responseWriter) WriteHeader(code int) {
	if rw.statusCode == 0 {
		rw.statusCode = code
	}
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	if rw.statusCode == 0 {
		rw.statusCode = http.StatusOK
	}
	n, err := rw.ResponseWriter.Write(b)
	rw.written += int64(n)
	return n, err
}

func (rw *responseWriter) status() int {
	if rw.statusCode == 0 {
		return http.StatusOK
	}
	return rw.statusCode
}

// Logger logs every request once it has been served: remote address,
// request line, status, bytes written and duration.
func Logger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		rw := &responseWriter{ResponseWriter: w}
		next.ServeHTTP(rw, r)

		log.Printf(
			"%s \"%s %s %s\" %s %d %v",
			r.RemoteAddr,
			r.Method,
			r.RequestURI,
			r.Proto,
			statusText(rw.status()),
			rw.written,
			time.Since(start),
		)
	})
}

// statusText colours client errors yellow and server errors red.
func statusText(code int) string {
	switch {
	case code >= 500:
		return color.RedString("%d", code)
	case code >= 400:
		return color.YellowString("%d", code)
	default:
		return color.GreenString("%d", code)
	}
}
