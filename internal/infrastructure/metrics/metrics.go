package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "trxrecords"

// Metrics holds the application's Prometheus collectors. It implements
// usecase.ImportMetrics and usecase.UpdateMetrics.
type Metrics struct {
	// Import metrics
	RecordsImported prometheus.Counter
	Imports         *prometheus.CounterVec
	ImportDuration  prometheus.Histogram

	// Update metrics
	DescriptionUpdates *prometheus.CounterVec

	// Rate limiting metrics
	RateLimitHits prometheus.Counter
}

// New creates all collectors and registers them with reg. A nil reg uses the
// default registerer.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	factory := promauto.With(reg)

	return &Metrics{
		RecordsImported: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "records_imported_total",
			Help:      "Total number of transaction records imported",
		}),
		Imports: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "imports_total",
				Help:      "Total number of import runs by result",
			},
			[]string{"result"},
		),
		ImportDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "import_duration_seconds",
			Help:      "Duration of import runs",
			Buckets:   []float64{.01, .05, .1, .5, 1, 5, 10, 30, 60, 300},
		}),

		DescriptionUpdates: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "description_updates_total",
				Help:      "Total description updates by result",
			},
			[]string{"result"},
		),

		RateLimitHits: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rate_limit_hits_total",
			Help:      "Total requests rejected by the rate limiter",
		}),
	}
}

// ObserveImport records one finished import run.
func (m *Metrics) ObserveImport(result string, records int, d time.Duration) {
	m.Imports.WithLabelValues(result).Inc()
	m.RecordsImported.Add(float64(records))
	m.ImportDuration.Observe(d.Seconds())
}

// ObserveUpdate records the outcome of a description update.
func (m *Metrics) ObserveUpdate(result string) {
	m.DescriptionUpdates.WithLabelValues(result).Inc()
}

// ObserveRateLimited counts a rejected request.
func (m *Metrics) ObserveRateLimited() {
	m.RateLimitHits.Inc()
}
