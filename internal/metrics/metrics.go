package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics for the service.
type Metrics struct {
	TradesRecorded     prometheus.Counter
	TradesDeleted      prometheus.Counter
	PriceFetchErrors   prometheus.Counter
	PriceFetchDuration prometheus.Histogram
	TrackedSymbols     prometheus.Gauge

	registry *prometheus.Registry
}

// New registers and returns all metrics on a dedicated registry.
func New() *Metrics {
	m := &Metrics{
		TradesRecorded: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tradeledger_trades_recorded_total",
			Help: "Total trades accepted into the ledger",
		}),
		TradesDeleted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tradeledger_trades_deleted_total",
			Help: "Total trades removed from the ledger",
		}),
		PriceFetchErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tradeledger_price_fetch_errors_total",
			Help: "Total failed quote fetches",
		}),
		PriceFetchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "tradeledger_price_fetch_duration_seconds",
			Help:    "Duration of single quote fetches",
			Buckets: prometheus.DefBuckets,
		}),
		TrackedSymbols: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "tradeledger_tracked_symbols",
			Help: "Number of symbols the price refresher is tracking",
		}),
		registry: prometheus.NewRegistry(),
	}

	m.registry.MustRegister(
		m.TradesRecorded,
		m.TradesDeleted,
		m.PriceFetchErrors,
		m.PriceFetchDuration,
		m.TrackedSymbols,
	)

	return m
}

// Handler exposes the registry in Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
