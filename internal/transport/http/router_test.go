package httptransport

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sattwik999/Trust-Score-Module/internal/ratelimit"
	"github.com/Sattwik999/Trust-Score-Module/internal/submission"
	submissionhandler "github.com/Sattwik999/Trust-Score-Module/internal/submission/handler"
)

type stubService struct{}

func (stubService) Evaluate(context.Context, submission.IdentityClaim, submission.EvidenceBundle) (submission.TrustScoreRecord, error) {
	return submission.TrustScoreRecord{}, nil
}

func (stubService) ListRecords(context.Context) ([]submission.TrustScoreRecord, error) {
	return nil, nil
}

func (stubService) ApplyAdjustment(context.Context, uuid.UUID, float64) (submission.TrustScoreRecord, error) {
	return submission.TrustScoreRecord{}, nil
}

type stubCheck struct{ err error }

func (c stubCheck) Health(context.Context) error { return c.err }

func newRouter(checks map[string]HealthChecker, limiter *ratelimit.Limiter) http.Handler {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewRouter(Deps{
		Submissions:   submissionhandler.New(stubService{}, logger, 0),
		RequireAdmin:  func(next http.Handler) http.Handler { return next },
		Logger:        logger,
		SubmitLimiter: limiter,
		Checks:        checks,
	})
}

func TestRouterRoot(t *testing.T) {
	router := newRouter(nil, nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "trust-score-module")
	assert.NotEmpty(t, rec.Result().Header.Get("X-Request-ID"))
}

func TestRouterHealth(t *testing.T) {
	t.Run("all dependencies healthy", func(t *testing.T) {
		router := newRouter(map[string]HealthChecker{"database": stubCheck{}}, nil)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"database":"ok"`)
	})

	t.Run("failing dependency degrades", func(t *testing.T) {
		router := newRouter(map[string]HealthChecker{
			"database": stubCheck{},
			"redis":    stubCheck{err: errors.New("connection refused")},
		}, nil)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

		require.Equal(t, http.StatusServiceUnavailable, rec.Code)
		assert.Contains(t, rec.Body.String(), `"status":"degraded"`)
		assert.Contains(t, rec.Body.String(), `"redis":"unavailable"`)
	})
}

func TestRouterMetricsExposed(t *testing.T) {
	router := newRouter(nil, nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRouterEchoesRequestID(t *testing.T) {
	router := newRouter(nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "req-42")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, "req-42", rec.Result().Header.Get("X-Request-ID"))
}

func TestRouterLimitsSubmit(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	limiter := ratelimit.NewLimiter(nil, 0, time.Minute, logger)
	router := newRouter(nil, limiter)

	// Zero-limit limiter rejects the first submission; other routes are
	// unaffected.
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/submit", nil))
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/records", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}
