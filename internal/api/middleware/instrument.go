package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/NIRMITI18/health-care-agent/internal/metrics"
	"github.com/NIRMITI18/health-care-agent/pkg/logger"
)

// RequestIDHeader carries the per-request correlation ID.
const RequestIDHeader = "X-Request-ID"

type requestIDKey struct{}

// RequestID returns the request ID stored in ctx, if any.
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// statusRecorder captures the status code written by the wrapped handler.
type statusRecorder struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
}

func (r *statusRecorder) WriteHeader(code int) {
	if r.wroteHeader {
		return
	}
	r.status = code
	r.wroteHeader = true
	r.ResponseWriter.WriteHeader(code)
}

func (r *statusRecorder) Write(b []byte) (int, error) {
	if !r.wroteHeader {
		r.WriteHeader(http.StatusOK)
	}
	return r.ResponseWriter.Write(b)
}

// Instrument assigns a request ID, logs the request and records HTTP metrics.
// Panics in next are recovered and answered with 500 unless a response
// has already been started.
func Instrument(route string, log *logger.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		id := r.Header.Get(RequestIDHeader)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		ctx := context.WithValue(r.Context(), requestIDKey{}, id)

		defer func() {
			if p := recover(); p != nil {
				log.Errorw("Handler panicked", "route", route, "request_id", id,
					"panic", p, "response_started", rec.wroteHeader)
				if !rec.wroteHeader {
					http.Error(rec, `{"detail":"internal server error"}`, http.StatusInternalServerError)
				}
			}

			duration := time.Since(start)
			metrics.RecordHTTPRequest(route, rec.status, duration)
			log.Infow("HTTP request",
				"method", r.Method,
				"route", route,
				"status", rec.status,
				"duration", duration,
				"request_id", id,
			)
		}()

		next.ServeHTTP(rec, r.WithContext(ctx))
	})
}
