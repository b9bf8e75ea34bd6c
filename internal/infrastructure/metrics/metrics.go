package metrics

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the application's Prometheus metrics.
type Metrics struct {
	// Outbox metrics
	EventsPublished    *prometheus.CounterVec
	EventPublishErrors *prometheus.CounterVec
	EventsPending      prometheus.Gauge
}

// New creates and registers all Prometheus metrics.
func New() *Metrics {
	return &Metrics{
		EventsPublished: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "clinicledger_outbox_events_published_total",
				Help: "Total outbox events published, by event type",
			},
			[]string{"event_type"},
		),
		EventPublishErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "clinicledger_outbox_publish_errors_total",
				Help: "Total outbox publish failures, by event type",
			},
			[]string{"event_type"},
		),
		EventsPending: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "clinicledger_outbox_events_pending",
			Help: "Unpublished outbox events seen in the last poll",
		}),
	}
}

// RegisterPoolStats exposes pgx pool statistics as gauges.
func RegisterPoolStats(pool *pgxpool.Pool) {
	promauto.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "clinicledger_db_connections_total",
		Help: "Current size of the database connection pool",
	}, func() float64 {
		return float64(pool.Stat().TotalConns())
	})
	promauto.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "clinicledger_db_connections_idle",
		Help: "Idle connections in the database pool",
	}, func() float64 {
		return float64(pool.Stat().IdleConns())
	})
}
