package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Distribucion-api/internal/application/inventory"
)

func TestRecorder_DistributionCounters(t *testing.T) {
	r := NewRecorder()

	r.DistributionRecorded(2, 30)
	r.DistributionRecorded(1, 5)
	r.StockRejected()

	assert.Equal(t, float64(3), testutil.ToFloat64(r.distributionRows))
	assert.Equal(t, float64(35), testutil.ToFloat64(r.unitsDistributed))
	assert.Equal(t, float64(1), testutil.ToFloat64(r.stockRejections))
}

func TestRecorder_SubmissionsPorResultado(t *testing.T) {
	r := NewRecorder()

	r.Submission(inventory.OutcomeOK)
	r.Submission(inventory.OutcomeOK)
	r.Submission(inventory.OutcomeInsufficientStock)

	assert.Equal(t, float64(2), testutil.ToFloat64(r.submissions.WithLabelValues(inventory.OutcomeOK)))
	assert.Equal(t, float64(1), testutil.ToFloat64(r.submissions.WithLabelValues(inventory.OutcomeInsufficientStock)))
	assert.Equal(t, float64(0), testutil.ToFloat64(r.submissions.WithLabelValues(inventory.OutcomeDuplicate)))
}

func TestRecorder_Handler(t *testing.T) {
	r := NewRecorder()
	r.ObserveRequest(http.MethodPost, "/api/distributions", http.StatusCreated, 15*time.Millisecond)
	r.Submission(inventory.OutcomeOK)

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body, _ := io.ReadAll(rec.Body)
	assert.Contains(t, string(body), `distribucion_submissions_total{outcome="ok"} 1`)
	assert.Contains(t, string(body), `distribucion_http_requests_total{method="POST",route="/api/distributions",status="201"} 1`)
	assert.Contains(t, string(body), "go_goroutines")
}
