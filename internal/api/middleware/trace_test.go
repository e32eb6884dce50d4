package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/scry-study/internal/api/shared"
	"github.com/phrazzld/scry-study/internal/platform/logger"
)

func TestTraceMiddleware(t *testing.T) {
	log, buf := logger.GetTestLogger(t)

	var seenTrace, seenReqID string
	handler := chimw.RequestID(NewTraceMiddleware(log)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenTrace = shared.GetTraceID(r.Context())
		seenReqID = logger.RequestID(r.Context())
		l, ok := logger.FromContext(r.Context())
		require.True(t, ok)
		l.Info("inside handler")
		w.WriteHeader(http.StatusNoContent)
	})))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/sets", nil))

	assert.Equal(t, http.StatusNoContent, w.Code)
	require.NotEmpty(t, seenTrace)
	assert.NotEmpty(t, seenReqID)
	assert.Equal(t, seenTrace, w.Header().Get(TraceIDHeader))
	logger.AssertLogField(t, buf, "trace_id", seenTrace)
	logger.AssertLogField(t, buf, "msg", "request started")
}
