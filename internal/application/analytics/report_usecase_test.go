package analytics

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Distribucion-api/internal/application/dto"
	"github.com/jhoicas/Distribucion-api/internal/domain"
	"github.com/jhoicas/Distribucion-api/internal/domain/repository"
)

var (
	managerScope = Scope{CompanyID: "c1", UserID: "u-mgr", Role: "manager"}
	workerScope  = Scope{CompanyID: "c1", UserID: "u-wrk", Role: "worker"}
)

func TestBuildQuery_Visibilidad(t *testing.T) {
	q, err := buildQuery(managerScope, dto.ReportFilter{})
	require.NoError(t, err)
	assert.Empty(t, q.DistributedBy)

	q, err = buildQuery(workerScope, dto.ReportFilter{})
	require.NoError(t, err)
	assert.Equal(t, "u-wrk", q.DistributedBy)

	_, err = buildQuery(Scope{}, dto.ReportFilter{})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestBuildQuery_FechasInclusivasUTC(t *testing.T) {
	q, err := buildQuery(managerScope, dto.ReportFilter{StartDate: "2026-03-01", EndDate: "2026-03-04"})
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), *q.From)
	assert.Equal(t, time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC), *q.To)

	// un solo día
	q, err = buildQuery(managerScope, dto.ReportFilter{StartDate: "2026-03-04", EndDate: "2026-03-04"})
	require.NoError(t, err)
	assert.Equal(t, 24*time.Hour, q.To.Sub(*q.From))
}

func TestBuildQuery_FechasInvalidas(t *testing.T) {
	for _, f := range []dto.ReportFilter{
		{StartDate: "04/03/2026"},
		{EndDate: "2026-13-01"},
		{StartDate: "2026-03-05", EndDate: "2026-03-04"},
	} {
		_, err := buildQuery(managerScope, f)
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "%+v", f)
	}
}

func TestBuildQuery_FiltrosTextuales(t *testing.T) {
	q, err := buildQuery(managerScope, dto.ReportFilter{Worker: "Ana María", Product: "Arroz", Category: "Granos"})
	require.NoError(t, err)
	assert.Equal(t, "Ana María", q.Worker)
	assert.Equal(t, "Arroz", q.Product)
	assert.Equal(t, "Granos", q.Category)
	assert.Nil(t, q.From)
	assert.Nil(t, q.To)
}

func TestDistributions_SinLimite(t *testing.T) {
	repo := new(mockReportRepo)
	at := time.Date(2026, 3, 4, 10, 0, 0, 0, time.UTC)
	repo.On("ListDistributions", mock.Anything, mock.MatchedBy(func(q repository.ReportQuery) bool {
		return q.DistributedBy == "u-wrk" && q.Worker == "Ana"
	}), 0).Return([]repository.DistributionView{
		{ID: "d1", WorkerName: "Ana", Quantity: 3, DistributedAt: at, ProductName: "Arroz", DistributedBy: "Pepe"},
	}, nil)

	uc := NewReportUseCase(repo)
	rows, err := uc.Distributions(context.Background(), workerScope, dto.ReportFilter{Worker: "Ana"})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "d1", rows[0].ID)
	assert.Equal(t, "Pepe", rows[0].DistributedBy)
	repo.AssertExpectations(t)
}

func TestRecent_Limite10(t *testing.T) {
	repo := new(mockReportRepo)
	repo.On("ListDistributions", mock.Anything, mock.Anything, 10).Return([]repository.DistributionView{}, nil)

	rows, err := NewReportUseCase(repo).Recent(context.Background(), managerScope)
	require.NoError(t, err)
	assert.NotNil(t, rows)
	assert.Empty(t, rows)
	repo.AssertExpectations(t)
}

func TestProductAnalytics(t *testing.T) {
	repo := new(mockReportRepo)
	repo.On("ProductTotals", mock.Anything, mock.Anything).Return([]repository.ProductTotal{
		{ProductID: "p1", ProductName: "Arroz", TotalDistributed: 75, DistributionCount: 3, SharePct: decimal.RequireFromString("75.000")},
		{ProductID: "p2", ProductName: "Sal", TotalDistributed: 25, DistributionCount: 1, SharePct: decimal.RequireFromString("25")},
	}, nil)

	rows, err := NewReportUseCase(repo).ProductAnalytics(context.Background(), managerScope, dto.ReportFilter{})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Arroz", rows[0].ProductName)
	assert.True(t, rows[0].SharePct.Equal(decimal.NewFromInt(75)))
}

func TestWorkerAnalytics(t *testing.T) {
	repo := new(mockReportRepo)
	last := time.Date(2026, 3, 4, 10, 0, 0, 0, time.UTC)
	repo.On("WorkerTotals", mock.Anything, mock.Anything).Return([]repository.WorkerTotal{
		{WorkerName: "Ana", TotalItems: 10, DistributionCount: 2, LastDistribution: last},
		{WorkerName: "ana", TotalItems: 4, DistributionCount: 1, LastDistribution: last},
	}, nil)

	rows, err := NewReportUseCase(repo).WorkerAnalytics(context.Background(), managerScope, dto.ReportFilter{})
	require.NoError(t, err)
	// nombres distintos por mayúsculas son trabajadores distintos
	require.Len(t, rows, 2)
	assert.Equal(t, int64(10), rows[0].TotalItems)
	assert.Equal(t, last, rows[0].LastDistribution)
}

func TestReport_FechaInvalidaNoConsulta(t *testing.T) {
	repo := new(mockReportRepo)
	_, err := NewReportUseCase(repo).WorkerAnalytics(context.Background(), managerScope, dto.ReportFilter{StartDate: "ayer"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	repo.AssertNotCalled(t, "WorkerTotals", mock.Anything, mock.Anything)
}
