package inventory

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/jhoicas/Distribucion-api/internal/domain/entity"
	"github.com/jhoicas/Distribucion-api/internal/domain/repository"
)

var errInsertFailed = errors.New("insert falló")

// memStore implementa LedgerRepository y DistributionRepository en memoria.
type memStore struct {
	mu       sync.Mutex
	products map[string]entity.Product
	rows     []*entity.Distribution
	locked   []string
	failOn   string // product_id cuya inserción falla
}

func newMemStore(products ...entity.Product) *memStore {
	m := &memStore{products: map[string]entity.Product{}}
	for _, p := range products {
		m.products[p.ID] = p
	}
	return m
}

func (m *memStore) distributed(productID string) int64 {
	var sum int64
	for _, r := range m.rows {
		if r.ProductID == productID {
			sum += r.Quantity
		}
	}
	return sum
}

func (m *memStore) GetProductStock(_ context.Context, companyID, productID string) (*entity.ProductStock, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.products[productID]
	if !ok || p.CompanyID != companyID {
		return nil, nil
	}
	return &entity.ProductStock{Product: p, Distributed: m.distributed(productID)}, nil
}

func (m *memStore) ListProductStock(_ context.Context, companyID string) ([]entity.ProductStock, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []entity.ProductStock
	for _, p := range m.products {
		if p.CompanyID == companyID {
			out = append(out, entity.ProductStock{Product: p, Distributed: m.distributed(p.ID)})
		}
	}
	return out, nil
}

func (m *memStore) LockProducts(_ context.Context, _ string, ids []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.locked = append(m.locked, ids...)
	return nil
}

func (m *memStore) CreateBatch(_ context.Context, rows []*entity.Distribution) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range rows {
		if r.ProductID == m.failOn {
			return errInsertFailed
		}
	}
	m.rows = append(m.rows, rows...)
	return nil
}

func (m *memStore) PreviousWorkers(_ context.Context, companyID string, limit int) ([]entity.WorkerIdentity, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	sorted := append([]*entity.Distribution(nil), m.rows...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].DistributedAt.After(sorted[j].DistributedAt) })
	seen := map[entity.WorkerIdentity]bool{}
	var out []entity.WorkerIdentity
	for _, r := range sorted {
		if r.CompanyID != companyID || seen[r.Worker] {
			continue
		}
		seen[r.Worker] = true
		out = append(out, r.Worker)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (m *memStore) rowCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.rows)
}

// memTxRunner pasa el mismo memStore como repositorios "de la transacción".
type memTxRunner struct{ store *memStore }

func (r memTxRunner) Run(ctx context.Context, fn func(
	repository.LedgerRepository,
	repository.DistributionRepository,
	repository.ProductRepository,
) error) error {
	return fn(r.store, r.store, nil)
}

// memIdempotency almacén de llaves en memoria para tests.
type memIdempotency struct {
	mu   sync.Mutex
	keys map[string]bool
}

func (s *memIdempotency) Claim(_ context.Context, key string, _ time.Duration) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.keys == nil {
		s.keys = map[string]bool{}
	}
	if s.keys[key] {
		return false, nil
	}
	s.keys[key] = true
	return true, nil
}

func (s *memIdempotency) Release(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.keys, key)
	return nil
}

// mockMetrics registra las llamadas con testify/mock.
type mockMetrics struct{ mock.Mock }

func (m *mockMetrics) DistributionRecorded(rows int, units int64) { m.Called(rows, units) }
func (m *mockMetrics) StockRejected()                             { m.Called() }
func (m *mockMetrics) Submission(outcome string)                  { m.Called(outcome) }

// mockLedgerRepo para verificar que no se consulta la BD.
type mockLedgerRepo struct{ mock.Mock }

func (m *mockLedgerRepo) GetProductStock(ctx context.Context, companyID, productID string) (*entity.ProductStock, error) {
	args := m.Called(ctx, companyID, productID)
	if s := args.Get(0); s != nil {
		return s.(*entity.ProductStock), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockLedgerRepo) ListProductStock(ctx context.Context, companyID string) ([]entity.ProductStock, error) {
	args := m.Called(ctx, companyID)
	return args.Get(0).([]entity.ProductStock), args.Error(1)
}

func (m *mockLedgerRepo) LockProducts(ctx context.Context, companyID string, ids []string) error {
	return m.Called(ctx, companyID, ids).Error(0)
}

const (
	companyA = "company-a"
	companyB = "company-b"
	userMgr  = "user-manager"
)

func product(id, company, name string, initial int64) entity.Product {
	return entity.Product{ID: id, CompanyID: company, Name: name, InitialQuantity: initial}
}
