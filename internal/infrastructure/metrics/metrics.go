package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Movement metrics
	MovementsCreated *prometheus.CounterVec
	MovementsEdited  prometheus.Counter
	MovementsDeleted prometheus.Counter
	MovementAmount   *prometheus.HistogramVec

	// Closing metrics
	ClosingsCreated prometheus.Counter
	ClosingDiff     *prometheus.HistogramVec

	// Adjustment metrics
	AdjustmentsSynthesized *prometheus.CounterVec
	AdjustmentsEdited      prometheus.Counter
	AdjustmentsRemoved     prometheus.Counter

	// Movement type metrics
	TypesCreated  prometheus.Counter
	TypesDeleted  prometheus.Counter
	TypeReorders  prometheus.Counter
	TypeFallbacks *prometheus.CounterVec

	// Summary metrics
	SummariesServed prometheus.Counter

	// Consistency metrics
	OrphanedClosings prometheus.Gauge
	RepairsRun       prometheus.Counter

	// Database metrics
	DBConnections prometheus.Gauge

	// Rate limiting metrics
	RateLimitHits *prometheus.CounterVec
}

// New creates and registers all Prometheus metrics
func New() *Metrics {
	return NewWith(prometheus.DefaultRegisterer)
}

// NewWith creates all metrics on the given registerer. Tests use a fresh
// registry to avoid duplicate registration panics.
func NewWith(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		// Movement metrics
		MovementsCreated: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fondo_movements_created_total",
				Help: "Total number of movement entries created",
			},
			[]string{"account", "currency"},
		),
		MovementsEdited: factory.NewCounter(prometheus.CounterOpts{
			Name: "fondo_movements_edited_total",
			Help: "Total number of movement amount edits",
		}),
		MovementsDeleted: factory.NewCounter(prometheus.CounterOpts{
			Name: "fondo_movements_deleted_total",
			Help: "Total number of movement entries deleted",
		}),
		MovementAmount: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "fondo_movement_amount",
				Help:    "Movement entry amounts",
				Buckets: []float64{1, 10, 100, 1000, 10000, 100000, 1000000},
			},
			[]string{"currency"},
		),

		// Closing metrics
		ClosingsCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "fondo_closings_created_total",
			Help: "Total number of daily closings created",
		}),
		ClosingDiff: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "fondo_closing_diff",
				Help:    "Absolute difference between counted and recorded balances",
				Buckets: []float64{0, 1, 10, 100, 1000, 10000, 100000},
			},
			[]string{"currency"},
		),

		// Adjustment metrics
		AdjustmentsSynthesized: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fondo_adjustments_synthesized_total",
				Help: "Total number of auto-adjustment entries synthesized",
			},
			[]string{"currency", "kind"},
		),
		AdjustmentsEdited: factory.NewCounter(prometheus.CounterOpts{
			Name: "fondo_adjustments_edited_total",
			Help: "Total number of adjustment amount edits",
		}),
		AdjustmentsRemoved: factory.NewCounter(prometheus.CounterOpts{
			Name: "fondo_adjustments_removed_total",
			Help: "Total number of adjustment removal resolutions",
		}),

		// Movement type metrics
		TypesCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "fondo_movement_types_created_total",
			Help: "Total number of movement types created",
		}),
		TypesDeleted: factory.NewCounter(prometheus.CounterOpts{
			Name: "fondo_movement_types_deleted_total",
			Help: "Total number of movement types deleted",
		}),
		TypeReorders: factory.NewCounter(prometheus.CounterOpts{
			Name: "fondo_movement_type_reorders_total",
			Help: "Total number of movement type reorder operations",
		}),
		TypeFallbacks: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fondo_movement_type_fallbacks_total",
				Help: "Total number of classifications resolved by name heuristic",
			},
			[]string{"classification"},
		),

		// Summary metrics
		SummariesServed: factory.NewCounter(prometheus.CounterOpts{
			Name: "fondo_summaries_served_total",
			Help: "Total number of summary requests served",
		}),

		// Consistency metrics
		OrphanedClosings: factory.NewGauge(prometheus.GaugeOpts{
			Name: "fondo_orphaned_closings",
			Help: "Closings with a nonzero difference and no adjustment entries",
		}),
		RepairsRun: factory.NewCounter(prometheus.CounterOpts{
			Name: "fondo_consistency_repairs_total",
			Help: "Total number of consistency repair runs",
		}),

		// Database metrics
		DBConnections: factory.NewGauge(prometheus.GaugeOpts{
			Name: "fondo_db_connections",
			Help: "Current number of database connections",
		}),

		// Rate limiting metrics
		RateLimitHits: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fondo_rate_limit_hits_total",
				Help: "Total rate limit hits",
			},
			[]string{"ip"},
		),
	}
}
