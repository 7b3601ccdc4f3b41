// Package metrics expone contadores Prometheus del flujo de distribución y de las peticiones HTTP.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jhoicas/Distribucion-api/internal/application/inventory"
)

const namespace = "distribucion"

// Recorder implementa inventory.MetricsRecorder sobre un registro propio
// (no el global, para que los tests puedan crear varios).
type Recorder struct {
	registry *prometheus.Registry

	distributionRows  prometheus.Counter
	unitsDistributed  prometheus.Counter
	stockRejections   prometheus.Counter
	submissions       *prometheus.CounterVec
	requestsTotal     *prometheus.CounterVec
	requestDurationSe *prometheus.HistogramVec
}

// NewRecorder crea el registro con las métricas de la aplicación y las del runtime de Go.
func NewRecorder() *Recorder {
	reg := prometheus.NewRegistry()
	r := &Recorder{
		registry: reg,
		distributionRows: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "distributions_recorded_total",
			Help:      "Filas de distribución escritas.",
		}),
		unitsDistributed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "units_distributed_total",
			Help:      "Unidades entregadas a trabajadores.",
		}),
		stockRejections: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "stock_rejections_total",
			Help:      "Envíos rechazados por stock insuficiente.",
		}),
		submissions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "submissions_total",
			Help:      "Envíos de distribución por resultado.",
		}, []string{"outcome"}),
		requestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Peticiones HTTP atendidas.",
		}, []string{"method", "route", "status"}),
		requestDurationSe: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duración de las peticiones HTTP.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}
	reg.MustRegister(
		r.distributionRows,
		r.unitsDistributed,
		r.stockRejections,
		r.submissions,
		r.requestsTotal,
		r.requestDurationSe,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return r
}

// DistributionRecorded suma las filas y unidades de un trabajador confirmado.
func (r *Recorder) DistributionRecorded(rows int, units int64) {
	r.distributionRows.Add(float64(rows))
	r.unitsDistributed.Add(float64(units))
}

func (r *Recorder) StockRejected() {
	r.stockRejections.Inc()
}

func (r *Recorder) Submission(outcome string) {
	r.submissions.WithLabelValues(outcome).Inc()
}

// ObserveRequest registra una petición HTTP. route es el patrón de la ruta, no la URL,
// para no disparar la cardinalidad con ids.
func (r *Recorder) ObserveRequest(method, route string, status int, elapsed time.Duration) {
	r.requestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	r.requestDurationSe.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// Handler sirve el formato de exposición de Prometheus.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}

// Registry devuelve el registro subyacente.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

var _ inventory.MetricsRecorder = (*Recorder)(nil)
