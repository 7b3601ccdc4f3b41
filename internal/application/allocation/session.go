// Package allocation implementa el asistente de distribución a varios trabajadores.
//
// La sesión lleva una copia local de las existencias que se descuenta a medida que se
// completa cada trabajador y solo habla con el servidor al confirmar. La copia local es
// orientativa: el servidor vuelve a validar cada envío.
//
// Una Session no es segura para uso concurrente.
package allocation

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

var (
	ErrInvalidTransition  = errors.New("allocation: transición no permitida en el estado actual")
	ErrInvalidWorkerCount = errors.New("allocation: el número de trabajadores debe ser al menos 1")
	ErrUnknownProduct     = errors.New("allocation: producto fuera de la foto de existencias")
	ErrInvalidQuantity    = errors.New("allocation: la cantidad no puede ser negativa")
	ErrExceedsLocalStock  = errors.New("allocation: la cantidad supera las existencias locales")
	ErrIncompleteWorker   = errors.New("allocation: faltan nombre, género o productos del trabajador")
	// ErrAlreadySubmitted lo devuelve un Submitter cuando el servidor ya tenía ese envío.
	ErrAlreadySubmitted = errors.New("allocation: el envío ya estaba registrado")
)

// State etapa del asistente.
type State int

const (
	StateCount State = iota
	StateAllocation
	StateSummary
)

func (s State) String() string {
	switch s {
	case StateCount:
		return "count"
	case StateAllocation:
		return "allocation"
	case StateSummary:
		return "summary"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

type action string

const (
	actSetWorkerCount action = "set_worker_count"
	actEditWorker     action = "edit_worker"
	actCompleteWorker action = "complete_worker"
	actCancel         action = "cancel"
	actConfirm        action = "confirm"
)

// allowed acciones válidas por estado. Restart vale en cualquier estado.
var allowed = map[State]map[action]bool{
	StateCount:      {actSetWorkerCount: true},
	StateAllocation: {actEditWorker: true, actCompleteWorker: true},
	StateSummary:    {actCancel: true, actConfirm: true},
}

// StockItem existencias de un producto al momento de tomar la foto.
type StockItem struct {
	ProductID string
	Name      string
	Category  string
	Remaining int64
}

// Line cantidad de un producto para un trabajador.
type Line struct {
	ProductID string
	Quantity  int64
}

// Worker trabajador completado con sus líneas en orden de captura.
type Worker struct {
	Name   string
	Gender string
	Mobile string
	Lines  []Line
}

// Submission lo que se envía al servidor por cada trabajador.
type Submission struct {
	Worker         Worker
	IdempotencyKey string
}

// Submitter envía un trabajador al servidor.
type Submitter interface {
	Submit(ctx context.Context, s Submission) error
}

// StockSource entrega la foto inicial de existencias (productos con remanente > 0).
type StockSource interface {
	AvailableStock(ctx context.Context) ([]StockItem, error)
}

// Session estado del asistente.
type Session struct {
	state    State
	snapshot []StockItem
	items    map[string]StockItem
	local    map[string]int64

	workerCount int
	workers     []Worker
	submitted   []bool
	draft       Worker
	round       string // prefijo de las llaves de idempotencia de la ronda
	lastErr     error
}

// NewSession crea una sesión en estado Count con la foto dada.
func NewSession(snapshot []StockItem) *Session {
	s := &Session{}
	s.load(snapshot)
	return s
}

func (s *Session) load(snapshot []StockItem) {
	s.snapshot = append([]StockItem(nil), snapshot...)
	s.items = make(map[string]StockItem, len(snapshot))
	s.local = make(map[string]int64, len(snapshot))
	for _, it := range snapshot {
		s.items[it.ProductID] = it
		s.local[it.ProductID] = it.Remaining
	}
	s.reset()
}

func (s *Session) reset() {
	s.state = StateCount
	s.workerCount = 0
	s.workers = nil
	s.submitted = nil
	s.draft = Worker{}
	s.round = ""
	s.lastErr = nil
}

func (s *Session) check(a action) error {
	if !allowed[s.state][a] {
		return fmt.Errorf("%w: %s en %s", ErrInvalidTransition, a, s.state)
	}
	return nil
}

// State estado actual.
func (s *Session) State() State { return s.state }

// WorkerCount número de trabajadores de la ronda.
func (s *Session) WorkerCount() int { return s.workerCount }

// CurrentWorker índice (desde 0) del trabajador en captura.
func (s *Session) CurrentWorker() int { return len(s.workers) }

// Draft copia del trabajador en captura.
func (s *Session) Draft() Worker {
	d := s.draft
	d.Lines = append([]Line(nil), s.draft.Lines...)
	return d
}

// LastError último error de Confirm, tal como lo devolvió el servidor.
func (s *Session) LastError() error { return s.lastErr }

// Restart descarta todo y recarga la foto. Válido en cualquier estado.
func (s *Session) Restart(snapshot []StockItem) {
	s.load(snapshot)
}

// SetWorkerCount fija cuántos trabajadores tendrá la ronda: Count → Allocation.
func (s *Session) SetWorkerCount(n int) error {
	if err := s.check(actSetWorkerCount); err != nil {
		return err
	}
	if n < 1 {
		return ErrInvalidWorkerCount
	}
	s.workerCount = n
	s.workers = make([]Worker, 0, n)
	s.submitted = make([]bool, 0, n)
	s.draft = Worker{}
	s.round = uuid.New().String()
	s.state = StateAllocation
	return nil
}

// SetIdentity datos del trabajador en captura.
func (s *Session) SetIdentity(name, gender, mobile string) error {
	if err := s.check(actEditWorker); err != nil {
		return err
	}
	s.draft.Name = name
	s.draft.Gender = gender
	s.draft.Mobile = mobile
	return nil
}

// SetQuantity fija la cantidad de un producto para el trabajador en captura.
// 0 elimina la línea; más de lo que queda localmente devuelve ErrExceedsLocalStock.
func (s *Session) SetQuantity(productID string, qty int64) error {
	if err := s.check(actEditWorker); err != nil {
		return err
	}
	if _, ok := s.items[productID]; !ok {
		return ErrUnknownProduct
	}
	if qty < 0 {
		return ErrInvalidQuantity
	}
	if qty > s.local[productID] {
		return fmt.Errorf("%w: %s disponible %d, pedido %d", ErrExceedsLocalStock, productID, s.local[productID], qty)
	}

	for i, l := range s.draft.Lines {
		if l.ProductID != productID {
			continue
		}
		if qty == 0 {
			s.draft.Lines = append(s.draft.Lines[:i], s.draft.Lines[i+1:]...)
		} else {
			s.draft.Lines[i].Quantity = qty
		}
		return nil
	}
	if qty > 0 {
		s.draft.Lines = append(s.draft.Lines, Line{ProductID: productID, Quantity: qty})
	}
	return nil
}

// CompleteWorker cierra el trabajador en captura y descuenta sus cantidades de la copia local.
// Con el último trabajador pasa a Summary.
func (s *Session) CompleteWorker() error {
	if err := s.check(actCompleteWorker); err != nil {
		return err
	}
	d := s.draft
	if strings.TrimSpace(d.Name) == "" || strings.TrimSpace(d.Gender) == "" || len(d.Lines) == 0 {
		return ErrIncompleteWorker
	}
	for _, l := range d.Lines {
		if l.Quantity > s.local[l.ProductID] {
			return fmt.Errorf("%w: %s", ErrExceedsLocalStock, l.ProductID)
		}
	}
	for _, l := range d.Lines {
		s.local[l.ProductID] -= l.Quantity
	}
	s.workers = append(s.workers, s.Draft())
	s.submitted = append(s.submitted, false)
	s.draft = Worker{}
	if len(s.workers) == s.workerCount {
		s.state = StateSummary
	}
	return nil
}

// LocalRemaining existencias locales de un producto (después de los trabajadores completados).
func (s *Session) LocalRemaining(productID string) int64 {
	return s.local[productID]
}

// AvailableProducts productos con existencias locales > 0, ordenados por nombre (colación española).
func (s *Session) AvailableProducts() []StockItem {
	out := make([]StockItem, 0, len(s.items))
	for _, it := range s.snapshot {
		if rem := s.local[it.ProductID]; rem > 0 {
			it.Remaining = rem
			out = append(out, it)
		}
	}
	sortByName(out, func(i int) string { return out[i].Name })
	return out
}

// ProductSummary totales de un producto en la ronda.
type ProductSummary struct {
	ProductID      string
	Name           string
	Distributed    int64
	RemainingAfter int64
}

// Summary resumen de la ronda: trabajadores y totales por producto asignado.
type Summary struct {
	Workers  []Worker
	Products []ProductSummary
}

// Summary proyección de la ronda. Solo incluye productos con alguna asignación.
func (s *Session) Summary() Summary {
	totals := map[string]int64{}
	for _, w := range s.workers {
		for _, l := range w.Lines {
			totals[l.ProductID] += l.Quantity
		}
	}
	products := make([]ProductSummary, 0, len(totals))
	for id, total := range totals {
		products = append(products, ProductSummary{
			ProductID:      id,
			Name:           s.items[id].Name,
			Distributed:    total,
			RemainingAfter: s.items[id].Remaining - total,
		})
	}
	sortByName(products, func(i int) string { return products[i].Name })

	workers := make([]Worker, len(s.workers))
	for i, w := range s.workers {
		w.Lines = append([]Line(nil), w.Lines...)
		workers[i] = w
	}
	return Summary{Workers: workers, Products: products}
}

// Cancel descarta los trabajadores y restaura la foto original: Summary → Count.
func (s *Session) Cancel() error {
	if err := s.check(actCancel); err != nil {
		return err
	}
	s.load(s.snapshot)
	return nil
}

// Confirm envía los trabajadores en orden. Se detiene en el primer error y queda en Summary
// con ese error; los ya enviados quedan registrados y se saltan al reintentar.
// Si todo sale bien la sesión vuelve a Count con la copia local como nueva foto.
func (s *Session) Confirm(ctx context.Context, sub Submitter) error {
	if err := s.check(actConfirm); err != nil {
		return err
	}
	for i, w := range s.workers {
		if s.submitted[i] {
			continue
		}
		err := sub.Submit(ctx, Submission{
			Worker:         w,
			IdempotencyKey: fmt.Sprintf("%s-%d", s.round, i),
		})
		if err != nil && !errors.Is(err, ErrAlreadySubmitted) {
			s.lastErr = err
			return err
		}
		s.submitted[i] = true
	}

	next := make([]StockItem, 0, len(s.snapshot))
	for _, it := range s.snapshot {
		it.Remaining = s.local[it.ProductID]
		if it.Remaining > 0 {
			next = append(next, it)
		}
	}
	s.load(next)
	return nil
}

// Submitted cuántos trabajadores de la ronda ya fueron aceptados por el servidor.
func (s *Session) Submitted() int {
	n := 0
	for _, ok := range s.submitted {
		if ok {
			n++
		}
	}
	return n
}

func sortByName[T any](items []T, name func(i int) string) {
	c := collate.New(language.Spanish, collate.IgnoreCase)
	sort.SliceStable(items, func(i, j int) bool {
		return c.CompareString(name(i), name(j)) < 0
	})
}
