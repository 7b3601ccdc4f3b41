package analytics

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/jhoicas/Distribucion-api/internal/domain/repository"
)

type mockReportRepo struct{ mock.Mock }

func (m *mockReportRepo) ListDistributions(ctx context.Context, q repository.ReportQuery, limit int) ([]repository.DistributionView, error) {
	args := m.Called(ctx, q, limit)
	return args.Get(0).([]repository.DistributionView), args.Error(1)
}

func (m *mockReportRepo) ProductTotals(ctx context.Context, q repository.ReportQuery) ([]repository.ProductTotal, error) {
	args := m.Called(ctx, q)
	return args.Get(0).([]repository.ProductTotal), args.Error(1)
}

func (m *mockReportRepo) WorkerTotals(ctx context.Context, q repository.ReportQuery) ([]repository.WorkerTotal, error) {
	args := m.Called(ctx, q)
	return args.Get(0).([]repository.WorkerTotal), args.Error(1)
}

func (m *mockReportRepo) StockTotals(ctx context.Context, companyID string) (int64, int64, error) {
	args := m.Called(ctx, companyID)
	return args.Get(0).(int64), args.Get(1).(int64), args.Error(2)
}

func (m *mockReportRepo) PeriodTotals(ctx context.Context, companyID string, from, to time.Time) (repository.PeriodTotals, error) {
	args := m.Called(ctx, companyID, from, to)
	return args.Get(0).(repository.PeriodTotals), args.Error(1)
}
