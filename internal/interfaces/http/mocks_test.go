package http_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/jhoicas/Distribucion-api/internal/application/analytics"
	"github.com/jhoicas/Distribucion-api/internal/application/dto"
	"github.com/jhoicas/Distribucion-api/internal/application/inventory"
	"github.com/jhoicas/Distribucion-api/internal/domain/entity"
)

type mockAuth struct{ mock.Mock }

func (m *mockAuth) Register(ctx context.Context, in dto.RegisterRequest) (*dto.LoginResponse, error) {
	args := m.Called(ctx, in)
	out, _ := args.Get(0).(*dto.LoginResponse)
	return out, args.Error(1)
}

func (m *mockAuth) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	args := m.Called(ctx, in)
	out, _ := args.Get(0).(*dto.LoginResponse)
	return out, args.Error(1)
}

func (m *mockAuth) Me(ctx context.Context, companyID, id string) (*dto.UserResponse, error) {
	args := m.Called(ctx, companyID, id)
	out, _ := args.Get(0).(*dto.UserResponse)
	return out, args.Error(1)
}

type mockProducts struct{ mock.Mock }

func (m *mockProducts) Create(ctx context.Context, companyID string, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	args := m.Called(ctx, companyID, in)
	out, _ := args.Get(0).(*dto.ProductResponse)
	return out, args.Error(1)
}

func (m *mockProducts) BulkCreate(ctx context.Context, companyID string, items []dto.CreateProductRequest) (int, error) {
	args := m.Called(ctx, companyID, items)
	return args.Int(0), args.Error(1)
}

func (m *mockProducts) GetByID(ctx context.Context, companyID, id string) (*dto.ProductResponse, error) {
	args := m.Called(ctx, companyID, id)
	out, _ := args.Get(0).(*dto.ProductResponse)
	return out, args.Error(1)
}

func (m *mockProducts) ListWithStock(ctx context.Context, companyID string) ([]dto.ProductResponse, error) {
	args := m.Called(ctx, companyID)
	out, _ := args.Get(0).([]dto.ProductResponse)
	return out, args.Error(1)
}

func (m *mockProducts) ListAvailable(ctx context.Context, companyID string) ([]dto.AvailableProductResponse, error) {
	args := m.Called(ctx, companyID)
	out, _ := args.Get(0).([]dto.AvailableProductResponse)
	return out, args.Error(1)
}

type mockDistributions struct{ mock.Mock }

func (m *mockDistributions) SubmitFromRequest(ctx context.Context, companyID, userID, key string, in dto.CreateDistributionRequest) (*inventory.SubmitResult, error) {
	args := m.Called(ctx, companyID, userID, key, in)
	out, _ := args.Get(0).(*inventory.SubmitResult)
	return out, args.Error(1)
}

func (m *mockDistributions) PreviousWorkers(ctx context.Context, companyID string) ([]entity.WorkerIdentity, error) {
	args := m.Called(ctx, companyID)
	out, _ := args.Get(0).([]entity.WorkerIdentity)
	return out, args.Error(1)
}

type mockReports struct{ mock.Mock }

func (m *mockReports) Distributions(ctx context.Context, scope analytics.Scope, f dto.ReportFilter) ([]dto.DistributionResponse, error) {
	args := m.Called(ctx, scope, f)
	out, _ := args.Get(0).([]dto.DistributionResponse)
	return out, args.Error(1)
}

func (m *mockReports) Recent(ctx context.Context, scope analytics.Scope) ([]dto.DistributionResponse, error) {
	args := m.Called(ctx, scope)
	out, _ := args.Get(0).([]dto.DistributionResponse)
	return out, args.Error(1)
}

func (m *mockReports) ProductAnalytics(ctx context.Context, scope analytics.Scope, f dto.ReportFilter) ([]dto.ProductAnalyticsDTO, error) {
	args := m.Called(ctx, scope, f)
	out, _ := args.Get(0).([]dto.ProductAnalyticsDTO)
	return out, args.Error(1)
}

func (m *mockReports) WorkerAnalytics(ctx context.Context, scope analytics.Scope, f dto.ReportFilter) ([]dto.WorkerAnalyticsDTO, error) {
	args := m.Called(ctx, scope, f)
	out, _ := args.Get(0).([]dto.WorkerAnalyticsDTO)
	return out, args.Error(1)
}

type mockDashboard struct{ mock.Mock }

func (m *mockDashboard) GetSummary(ctx context.Context, companyID string) (*dto.DashboardStatsDTO, error) {
	args := m.Called(ctx, companyID)
	out, _ := args.Get(0).(*dto.DashboardStatsDTO)
	return out, args.Error(1)
}
