package allocation_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Distribucion-api/internal/application/allocation"
)

func snapshot() []allocation.StockItem {
	return []allocation.StockItem{
		{ProductID: "p-zan", Name: "zanahoria", Remaining: 10},
		{ProductID: "p-arr", Name: "Arroz", Remaining: 100},
		{ProductID: "p-nan", Name: "Ñame", Remaining: 5},
		{ProductID: "p-nar", Name: "Naranja", Remaining: 8},
	}
}

// recordingSubmitter acepta envíos y puede fallar en uno dado.
type recordingSubmitter struct {
	calls  []allocation.Submission
	failAt map[string]error // nombre del trabajador → error
}

func (r *recordingSubmitter) Submit(_ context.Context, s allocation.Submission) error {
	r.calls = append(r.calls, s)
	if err, ok := r.failAt[s.Worker.Name]; ok {
		return err
	}
	return nil
}

func fillWorker(t *testing.T, s *allocation.Session, name string, lines map[string]int64) {
	t.Helper()
	require.NoError(t, s.SetIdentity(name, "F", ""))
	for id, q := range lines {
		require.NoError(t, s.SetQuantity(id, q))
	}
	require.NoError(t, s.CompleteWorker())
}

func TestSession_FlujoCompleto(t *testing.T) {
	s := allocation.NewSession(snapshot())
	assert.Equal(t, allocation.StateCount, s.State())

	require.NoError(t, s.SetWorkerCount(2))
	assert.Equal(t, allocation.StateAllocation, s.State())

	fillWorker(t, s, "Ana", map[string]int64{"p-arr": 30})
	assert.Equal(t, allocation.StateAllocation, s.State())
	assert.Equal(t, 1, s.CurrentWorker())
	assert.Equal(t, int64(70), s.LocalRemaining("p-arr"))

	fillWorker(t, s, "Luis", map[string]int64{"p-arr": 70, "p-nan": 5})
	assert.Equal(t, allocation.StateSummary, s.State())

	sum := s.Summary()
	require.Len(t, sum.Workers, 2)
	require.Len(t, sum.Products, 2)
	assert.Equal(t, "Arroz", sum.Products[0].Name)
	assert.Equal(t, int64(100), sum.Products[0].Distributed)
	assert.Equal(t, int64(0), sum.Products[0].RemainingAfter)
	assert.Equal(t, "Ñame", sum.Products[1].Name)

	sub := &recordingSubmitter{}
	require.NoError(t, s.Confirm(context.Background(), sub))
	assert.Len(t, sub.calls, 2)
	assert.Equal(t, allocation.StateCount, s.State())

	// la nueva foto ya no tiene los productos agotados
	names := []string{}
	for _, it := range s.AvailableProducts() {
		names = append(names, it.Name)
	}
	assert.Equal(t, []string{"Naranja", "zanahoria"}, names)
}

func TestSession_AvailableProducts_ColacionEspanola(t *testing.T) {
	s := allocation.NewSession(snapshot())
	var names []string
	for _, it := range s.AvailableProducts() {
		names = append(names, it.Name)
	}
	// Ñ va después de N; mayúsculas no importan
	assert.Equal(t, []string{"Arroz", "Naranja", "Ñame", "zanahoria"}, names)
}

func TestSession_SetQuantity(t *testing.T) {
	s := allocation.NewSession(snapshot())
	require.NoError(t, s.SetWorkerCount(1))

	assert.ErrorIs(t, s.SetQuantity("p-nan", 6), allocation.ErrExceedsLocalStock)
	assert.ErrorIs(t, s.SetQuantity("otro", 1), allocation.ErrUnknownProduct)
	assert.ErrorIs(t, s.SetQuantity("p-nan", -1), allocation.ErrInvalidQuantity)

	require.NoError(t, s.SetQuantity("p-nan", 5))
	require.NoError(t, s.SetQuantity("p-nan", 2))
	assert.Equal(t, []allocation.Line{{ProductID: "p-nan", Quantity: 2}}, s.Draft().Lines)

	require.NoError(t, s.SetQuantity("p-nan", 0))
	assert.Empty(t, s.Draft().Lines)
	// la captura no descuenta hasta completar
	assert.Equal(t, int64(5), s.LocalRemaining("p-nan"))
}

func TestSession_CompleteWorker_Incompleto(t *testing.T) {
	s := allocation.NewSession(snapshot())
	require.NoError(t, s.SetWorkerCount(1))

	assert.ErrorIs(t, s.CompleteWorker(), allocation.ErrIncompleteWorker)

	require.NoError(t, s.SetIdentity("Ana", "", ""))
	require.NoError(t, s.SetQuantity("p-arr", 1))
	assert.ErrorIs(t, s.CompleteWorker(), allocation.ErrIncompleteWorker)

	require.NoError(t, s.SetIdentity("  ", "F", ""))
	assert.ErrorIs(t, s.CompleteWorker(), allocation.ErrIncompleteWorker)

	require.NoError(t, s.SetIdentity("Ana", "F", ""))
	require.NoError(t, s.SetQuantity("p-arr", 0))
	assert.ErrorIs(t, s.CompleteWorker(), allocation.ErrIncompleteWorker)
}

func TestSession_SegundoTrabajadorVeLaCopiaLocal(t *testing.T) {
	s := allocation.NewSession(snapshot())
	require.NoError(t, s.SetWorkerCount(2))
	fillWorker(t, s, "Ana", map[string]int64{"p-nar": 6})

	require.NoError(t, s.SetIdentity("Luis", "M", ""))
	assert.ErrorIs(t, s.SetQuantity("p-nar", 3), allocation.ErrExceedsLocalStock)
	assert.NoError(t, s.SetQuantity("p-nar", 2))
}

func TestSession_TransicionesInvalidas(t *testing.T) {
	ctx := context.Background()
	sub := &recordingSubmitter{}

	s := allocation.NewSession(snapshot())
	assert.ErrorIs(t, s.SetIdentity("Ana", "F", ""), allocation.ErrInvalidTransition)
	assert.ErrorIs(t, s.CompleteWorker(), allocation.ErrInvalidTransition)
	assert.ErrorIs(t, s.Cancel(), allocation.ErrInvalidTransition)
	assert.ErrorIs(t, s.Confirm(ctx, sub), allocation.ErrInvalidTransition)
	assert.ErrorIs(t, s.SetWorkerCount(0), allocation.ErrInvalidWorkerCount)

	require.NoError(t, s.SetWorkerCount(1))
	assert.ErrorIs(t, s.SetWorkerCount(2), allocation.ErrInvalidTransition)
	assert.ErrorIs(t, s.Confirm(ctx, sub), allocation.ErrInvalidTransition)

	fillWorker(t, s, "Ana", map[string]int64{"p-arr": 1})
	assert.ErrorIs(t, s.SetQuantity("p-arr", 1), allocation.ErrInvalidTransition)
	assert.ErrorIs(t, s.CompleteWorker(), allocation.ErrInvalidTransition)
	assert.Empty(t, sub.calls)
}

func TestSession_Cancel_RestauraLaFoto(t *testing.T) {
	s := allocation.NewSession(snapshot())
	require.NoError(t, s.SetWorkerCount(1))
	fillWorker(t, s, "Ana", map[string]int64{"p-arr": 100})
	assert.Equal(t, int64(0), s.LocalRemaining("p-arr"))

	require.NoError(t, s.Cancel())
	assert.Equal(t, allocation.StateCount, s.State())
	assert.Equal(t, int64(100), s.LocalRemaining("p-arr"))
	assert.Empty(t, s.Summary().Workers)
}

func TestSession_Confirm_FalloYReintento(t *testing.T) {
	s := allocation.NewSession(snapshot())
	require.NoError(t, s.SetWorkerCount(3))
	fillWorker(t, s, "Ana", map[string]int64{"p-arr": 10})
	fillWorker(t, s, "Luis", map[string]int64{"p-arr": 10})
	fillWorker(t, s, "Eva", map[string]int64{"p-arr": 10})

	serverErr := errors.New("INSUFFICIENT_STOCK: disponible 5, solicitado 10")
	sub := &recordingSubmitter{failAt: map[string]error{"Luis": serverErr}}

	err := s.Confirm(context.Background(), sub)
	assert.Same(t, serverErr, err)
	assert.Same(t, serverErr, s.LastError())
	assert.Equal(t, allocation.StateSummary, s.State())
	assert.Equal(t, 1, s.Submitted())
	require.Len(t, sub.calls, 2)

	// reintento: Ana no se reenvía
	delete(sub.failAt, "Luis")
	sub.calls = nil
	require.NoError(t, s.Confirm(context.Background(), sub))
	require.Len(t, sub.calls, 2)
	assert.Equal(t, "Luis", sub.calls[0].Worker.Name)
	assert.Equal(t, "Eva", sub.calls[1].Worker.Name)
	assert.Equal(t, allocation.StateCount, s.State())
}

func TestSession_Confirm_YaRegistradoCuentaComoEnviado(t *testing.T) {
	s := allocation.NewSession(snapshot())
	require.NoError(t, s.SetWorkerCount(1))
	fillWorker(t, s, "Ana", map[string]int64{"p-arr": 1})

	sub := &recordingSubmitter{failAt: map[string]error{"Ana": allocation.ErrAlreadySubmitted}}
	require.NoError(t, s.Confirm(context.Background(), sub))
	assert.Equal(t, allocation.StateCount, s.State())
}

func TestSession_LlavesDeIdempotenciaEstables(t *testing.T) {
	s := allocation.NewSession(snapshot())
	require.NoError(t, s.SetWorkerCount(2))
	fillWorker(t, s, "Ana", map[string]int64{"p-arr": 1})
	fillWorker(t, s, "Luis", map[string]int64{"p-arr": 1})

	boom := errors.New("red caída")
	sub := &recordingSubmitter{failAt: map[string]error{"Ana": boom}}
	require.Error(t, s.Confirm(context.Background(), sub))
	firstKey := sub.calls[0].IdempotencyKey

	delete(sub.failAt, "Ana")
	require.NoError(t, s.Confirm(context.Background(), sub))
	assert.Equal(t, firstKey, sub.calls[1].IdempotencyKey)
	assert.NotEqual(t, sub.calls[1].IdempotencyKey, sub.calls[2].IdempotencyKey)
}

func TestSession_Restart(t *testing.T) {
	s := allocation.NewSession(snapshot())
	require.NoError(t, s.SetWorkerCount(2))
	fillWorker(t, s, "Ana", map[string]int64{"p-arr": 1})

	s.Restart([]allocation.StockItem{{ProductID: "x", Name: "Sal", Remaining: 3}})
	assert.Equal(t, allocation.StateCount, s.State())
	require.Len(t, s.AvailableProducts(), 1)
	assert.Equal(t, int64(3), s.LocalRemaining("x"))
}
