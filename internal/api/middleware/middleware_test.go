package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NIRMITI18/health-care-agent/pkg/logger"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestRouteLimiters(t *testing.T) {
	limiters := NewRouteLimiters(10) // burst 1
	h := limiters.Limit("/meal-plan", okHandler())

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/meal-plan", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/meal-plan", nil))
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))
	assert.JSONEq(t, `{"detail":"rate limit exceeded, retry later"}`, rec.Body.String())

	// Routes have independent budgets
	other := limiters.Limit("/fitness-plan", okHandler())
	rec = httptest.NewRecorder()
	other.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/fitness-plan", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRouteLimitersDisabled(t *testing.T) {
	h := NewRouteLimiters(0).Limit("/meal-plan", okHandler())
	for i := 0; i < 100; i++ {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/meal-plan", nil))
		require.Equal(t, http.StatusOK, rec.Code)
	}
}

func TestInstrumentAssignsRequestID(t *testing.T) {
	var seen string
	h := Instrument("/x", logger.NewNop(), http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = RequestID(r.Context())
		w.WriteHeader(http.StatusAccepted)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/x", nil))

	assert.Equal(t, http.StatusAccepted, rec.Code)
	_, err := uuid.Parse(seen)
	require.NoError(t, err)
	assert.Equal(t, seen, rec.Header().Get(RequestIDHeader))

	// A valid incoming ID is kept
	incoming := uuid.NewString()
	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set(RequestIDHeader, incoming)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, incoming, seen)
}

func TestInstrumentRecoversPanics(t *testing.T) {
	h := Instrument("/boom", logger.NewNop(), http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	require.NotPanics(t, func() {
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/boom", nil))
	})
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestInstrumentPanicAfterResponseStarted(t *testing.T) {
	h := Instrument("/partial", logger.NewNop(), http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusAccepted)
		_, _ = w.Write([]byte(`{"partial":true}`))
		panic("late failure")
	}))

	rec := httptest.NewRecorder()
	require.NotPanics(t, func() {
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/partial", nil))
	})
	assert.Equal(t, http.StatusAccepted, rec.Code)
	assert.Equal(t, `{"partial":true}`, rec.Body.String())
}

func TestStatusRecorderImplicitOK(t *testing.T) {
	rec := httptest.NewRecorder()
	sr := &statusRecorder{ResponseWriter: rec, status: http.StatusOK}

	_, err := sr.Write([]byte("ok"))
	require.NoError(t, err)
	sr.WriteHeader(http.StatusTeapot)

	assert.True(t, sr.wroteHeader)
	assert.Equal(t, http.StatusOK, sr.status)
	assert.Equal(t, http.StatusOK, rec.Code)
}
