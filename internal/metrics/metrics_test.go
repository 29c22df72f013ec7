package metrics

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestActionMetrics_Creation(t *testing.T) {
	t.Run("successfully create action metrics", func(t *testing.T) {
		metrics, err := NewActionMetrics()
		require.NoError(t, err)
		assert.NotNil(t, metrics)
		assert.NotNil(t, metrics.specsCreatedCounter)
		assert.NotNil(t, metrics.specsDeletedCounter)
		assert.NotNil(t, metrics.executionsCounter)
		assert.NotNil(t, metrics.buildDurationHisto)
		assert.NotNil(t, metrics.wizardTurnsCounter)
	})
}

func TestActionMetrics_Record(t *testing.T) {
	metrics, err := NewActionMetrics()
	require.NoError(t, err)
	ctx := context.Background()

	t.Run("record spec lifecycle", func(t *testing.T) {
		assert.NotPanics(t, func() {
			metrics.RecordSpecCreated(ctx, 3)
			metrics.RecordSpecDeleted(ctx)
		})
	})

	t.Run("record executions with and without build time", func(t *testing.T) {
		assert.NotPanics(t, func() {
			metrics.RecordExecution(ctx, OutcomeSuccess, 150*time.Millisecond)
			metrics.RecordExecution(ctx, OutcomeFailed, 2*time.Second)
			metrics.RecordExecution(ctx, OutcomeNotFound, 0)
			metrics.RecordExecution(ctx, OutcomeInvalid, 0)
		})
	})

	t.Run("record wizard turns", func(t *testing.T) {
		for _, state := range []string{"idle", "awaiting_title", "finalizing"} {
			metrics.RecordWizardTurn(ctx, state, "text")
		}
	})
}

func TestHTTPRecorder(t *testing.T) {
	gin.SetMode(gin.TestMode)
	recorder := NewHTTPRecorder()

	router := gin.New()
	router.Use(recorder.Middleware())
	router.GET("/endpoint/app/:id", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	router.GET("/metrics", gin.WrapH(recorder.Handler()))

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/endpoint/app/abc", nil))
	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/nowhere", nil))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)

	body, err := io.ReadAll(w.Body)
	require.NoError(t, err)
	text := string(body)
	assert.Contains(t, text, `usdc_actions_http_requests_total{method="GET",route="/endpoint/app/:id",status="200"} 1`)
	assert.Contains(t, text, `route="unmatched",status="404"`)
	assert.Contains(t, text, "usdc_actions_http_request_duration_seconds_bucket")
}
