package inventory

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Distribucion-api/internal/domain"
	"github.com/jhoicas/Distribucion-api/internal/domain/entity"
)

func TestStockValidator_Acepta(t *testing.T) {
	store := newMemStore(product("p1", companyA, "Arroz", 10), product("p2", companyA, "Frijol", 5))
	v := NewStockValidator(store)

	err := v.Validate(context.Background(), companyA, []Allocation{{"p1", 10}, {"p2", 1}})
	assert.NoError(t, err)
}

func TestStockValidator_RechazaConDetalle(t *testing.T) {
	store := newMemStore(product("p1", companyA, "Arroz", 10), product("p2", companyA, "Frijol", 5))
	store.rows = []*entity.Distribution{{CompanyID: companyA, ProductID: "p2", Quantity: 3}}
	v := NewStockValidator(store)

	err := v.Validate(context.Background(), companyA, []Allocation{{"p1", 1}, {"p2", 3}})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInsufficientStock))

	var stockErr *domain.InsufficientStockError
	require.True(t, errors.As(err, &stockErr))
	assert.Equal(t, "p2", stockErr.ProductID)
	assert.Equal(t, "Frijol", stockErr.ProductName)
	assert.Equal(t, int64(2), stockErr.Available)
	assert.Equal(t, int64(3), stockErr.Requested)
}

func TestStockValidator_SumaLineasRepetidas(t *testing.T) {
	store := newMemStore(product("p1", companyA, "Arroz", 10))
	v := NewStockValidator(store)

	err := v.Validate(context.Background(), companyA, []Allocation{{"p1", 6}, {"p1", 6}})
	var stockErr *domain.InsufficientStockError
	require.True(t, errors.As(err, &stockErr))
	assert.Equal(t, int64(12), stockErr.Requested)
	assert.Equal(t, int64(10), stockErr.Available)
}

func TestStockValidator_LineasEnormesNoDesbordan(t *testing.T) {
	store := newMemStore(product("p1", companyA, "Arroz", 10))
	v := NewStockValidator(store)

	err := v.Validate(context.Background(), companyA, []Allocation{{"p1", math.MaxInt64}, {"p1", math.MaxInt64}})
	var stockErr *domain.InsufficientStockError
	require.True(t, errors.As(err, &stockErr))
	assert.Equal(t, int64(math.MaxInt64), stockErr.Requested)
	assert.Equal(t, int64(10), stockErr.Available)
}

func TestSubmit_LineasEnormesNoEscriben(t *testing.T) {
	store := newMemStore(product("p1", companyA, "Arroz", 10))
	uc := newTestUseCase(store)

	_, err := uc.Submit(context.Background(), submitInput("Ana",
		Allocation{"p1", math.MaxInt64}, Allocation{"p1", math.MaxInt64}))
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, 0, store.rowCount())
}

func TestStockValidator_ProductoDeOtraEmpresa(t *testing.T) {
	store := newMemStore(product("p1", companyB, "Arroz", 10))
	v := NewStockValidator(store)

	err := v.Validate(context.Background(), companyA, []Allocation{{"p1", 1}})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStockValidator_ProductosIndependientes(t *testing.T) {
	// p1 agotado no afecta a p2
	store := newMemStore(product("p1", companyA, "Arroz", 0), product("p2", companyA, "Frijol", 5))
	v := NewStockValidator(store)

	assert.NoError(t, v.Validate(context.Background(), companyA, []Allocation{{"p2", 5}}))
	assert.ErrorIs(t, v.Validate(context.Background(), companyA, []Allocation{{"p1", 1}}), domain.ErrInsufficientStock)
}
