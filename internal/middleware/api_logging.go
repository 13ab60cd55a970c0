package middleware

import (
	"log"
	"net/http"
	"strings"
	"time"
)

// RequestLog is one access log line, queued so that slow log sinks never
// block request handling.
type RequestLog struct {
	Time       time.Time
	Method     string
	Path       string
	StatusCode int
	DurationMs float64
	Bytes      int
	Email      string
	IPAddress  string
	UserAgent  string
}

// APILoggingMiddleware writes an access log for API requests.
type APILoggingMiddleware struct {
	logChan chan *RequestLog
}

// authEmailRecorder lets the auth middleware report the authenticated
// email back out to the access log wrapper, which runs outside it and
// never sees the derived request context.
type authEmailRecorder interface {
	SetAuthEmail(email string)
}

// responseWriter wraps http.ResponseWriter to capture status code and size
type responseWriter struct {
	http.ResponseWriter
	statusCode   int
	bytesWritten int
	authEmail    string
}

func (rw *responseWriter) SetAuthEmail(email string) {
	rw.authEmail = email
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	n, err := rw.ResponseWriter.Write(b)
	rw.bytesWritten += n
	return n, err
}

func NewAPILoggingMiddleware() *APILoggingMiddleware {
	m := &APILoggingMiddleware{
		logChan: make(chan *RequestLog, 1000), // Buffer for async logging
	}

	// Start async log writer
	go m.asyncLogWriter()

	return m
}

func (m *APILoggingMiddleware) asyncLogWriter() {
	for entry := range m.logChan {
		log.Printf("[API] %s %s %d %.1fms %dB %s %s",
			entry.Method, entry.Path, entry.StatusCode,
			entry.DurationMs, entry.Bytes, entry.IPAddress, entry.Email)
	}
}

// Handler returns the middleware handler
func (m *APILoggingMiddleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Skip logging for static files and health checks
		if shouldSkipLogging(r.URL.Path) {
			next.ServeHTTP(w, r)
			return
		}

		start := time.Now()

		// Wrap response writer to capture status and size
		wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(wrapped, r)

		duration := time.Since(start)

		entry := &RequestLog{
			Time:       time.Now(),
			Method:     r.Method,
			Path:       sanitizePath(r.URL.Path),
			StatusCode: wrapped.statusCode,
			DurationMs: float64(duration.Microseconds()) / 1000.0,
			Bytes:      wrapped.bytesWritten,
			Email:      wrapped.authEmail,
			IPAddress:  getClientIP(r),
			UserAgent:  r.UserAgent(),
		}

		// Send to async writer (non-blocking)
		select {
		case m.logChan <- entry:
		default:
			log.Printf("[APILogging] Log buffer full, dropping log entry for %s", r.URL.Path)
		}
	})
}

// shouldSkipLogging returns true for paths that shouldn't be logged
func shouldSkipLogging(path string) bool {
	skipPaths := []string{
		"/health",
		"/metrics",
		"/favicon.ico",
		"/robots.txt",
		"/api/monitoring/", // Don't log monitoring endpoints to avoid recursion
	}

	for _, skip := range skipPaths {
		if strings.HasPrefix(path, skip) {
			return true
		}
	}

	return false
}

// sanitizePath removes sensitive data from paths
func sanitizePath(path string) string {
	// Remove query parameters that might contain sensitive data
	if idx := strings.Index(path, "?"); idx != -1 {
		path = path[:idx]
	}

	// Truncate very long paths
	if len(path) > 500 {
		path = path[:500]
	}

	return path
}

// getClientIP extracts the client IP from the request
func getClientIP(r *http.Request) string {
	// Check X-Forwarded-For header (for proxies/load balancers)
	xff := r.Header.Get("X-Forwarded-For")
	if xff != "" {
		// Take the first IP in the list
		if idx := strings.Index(xff, ","); idx != -1 {
			return strings.TrimSpace(xff[:idx])
		}
		return strings.TrimSpace(xff)
	}

	// Check X-Real-IP header
	xri := r.Header.Get("X-Real-IP")
	if xri != "" {
		return strings.TrimSpace(xri)
	}

	// Fall back to RemoteAddr
	ip := r.RemoteAddr
	if idx := strings.LastIndex(ip, ":"); idx != -1 {
		ip = ip[:idx]
	}

	return ip
}

// Close closes the middleware and flushes pending logs
func (m *APILoggingMiddleware) Close() {
	close(m.logChan)
}
