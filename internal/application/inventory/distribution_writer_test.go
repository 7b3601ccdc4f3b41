package inventory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Distribucion-api/internal/domain"
	"github.com/jhoicas/Distribucion-api/internal/domain/entity"
)

func TestDistributionWriter_UnaFilaPorProducto(t *testing.T) {
	store := newMemStore(product("p1", companyA, "Arroz", 10), product("p2", companyA, "Frijol", 10))
	w := NewDistributionWriter(memTxRunner{store}, false)
	fixed := time.Date(2026, 3, 4, 15, 0, 0, 0, time.UTC)
	w.now = func() time.Time { return fixed }

	worker := entity.WorkerIdentity{Name: "Ana", Gender: "F", Mobile: "3001234567"}
	n, err := w.RecordDistribution(context.Background(), companyA, userMgr, worker, []Allocation{{"p1", 2}, {"p2", 3}})
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	require.Len(t, store.rows, 2)
	for _, r := range store.rows {
		assert.Equal(t, worker, r.Worker)
		assert.Equal(t, userMgr, r.DistributedByUserID)
		assert.Equal(t, fixed, r.DistributedAt)
		assert.Equal(t, companyA, r.CompanyID)
		assert.NotEmpty(t, r.ID)
	}
}

func TestDistributionWriter_FalloNoDejaFilasParciales(t *testing.T) {
	store := newMemStore(product("p1", companyA, "Arroz", 10), product("p2", companyA, "Frijol", 10))
	store.failOn = "p2"
	w := NewDistributionWriter(memTxRunner{store}, false)

	n, err := w.RecordDistribution(context.Background(), companyA, userMgr,
		entity.WorkerIdentity{Name: "Ana"}, []Allocation{{"p1", 2}, {"p2", 3}})
	assert.ErrorIs(t, err, errInsertFailed)
	assert.Zero(t, n)
	assert.Zero(t, store.rowCount())
}

func TestDistributionWriter_StrictLocking_Revalida(t *testing.T) {
	store := newMemStore(product("p1", companyA, "Arroz", 10))
	w := NewDistributionWriter(memTxRunner{store}, true)

	_, err := w.RecordDistribution(context.Background(), companyA, userMgr,
		entity.WorkerIdentity{Name: "Ana"}, []Allocation{{"p1", 6}})
	require.NoError(t, err)
	assert.Equal(t, []string{"p1"}, store.locked)

	// otro envío validado antes con la misma foto ya no cabe
	_, err = w.RecordDistribution(context.Background(), companyA, userMgr,
		entity.WorkerIdentity{Name: "Luis"}, []Allocation{{"p1", 6}})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, 1, store.rowCount())
}

func TestDistributionWriter_SinLocking_NoRevalida(t *testing.T) {
	// comportamiento por defecto: el writer confía en la validación previa
	store := newMemStore(product("p1", companyA, "Arroz", 10))
	w := NewDistributionWriter(memTxRunner{store}, false)

	for _, name := range []string{"Ana", "Luis"} {
		_, err := w.RecordDistribution(context.Background(), companyA, userMgr,
			entity.WorkerIdentity{Name: name}, []Allocation{{"p1", 6}})
		require.NoError(t, err)
	}
	assert.Empty(t, store.locked)
	assert.Equal(t, 2, store.rowCount())
}
