package server

import (
	"net/http"
	"strconv"
	"strings"
	"time"
)

// subscriptionKeyHeader is set by the API-management gateway. The gateway
// validates the key's value; this service only rejects requests that bypass
// the gateway entirely.
const subscriptionKeyHeader = "Ocp-Apim-Subscription-Key"

// requireKey rejects requests without a subscription key header.
func (s *Server) requireKey(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get(subscriptionKeyHeader) == "" {
			writeError(w, http.StatusUnauthorized, "Missing subscription key")
			return
		}
		next(w, r)
	}
}

// instrument wraps handler with request metrics and a debug trace. The label
// is the registered pattern's path, never the raw URL.
func (s *Server) instrument(pattern string, handler http.HandlerFunc) http.HandlerFunc {
	path := pattern
	if _, after, found := strings.Cut(pattern, " "); found {
		path = after
	}

	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		handler(recorder, r)

		duration := time.Since(start)
		recordRequest(r.Method, path, strconv.Itoa(recorder.status), duration.Seconds())
		s.logger.Debug("%s %s -> %d (%s)", r.Method, r.URL.Path, recorder.status, duration)
	}
}

// statusRecorder captures the status code written by a handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}
