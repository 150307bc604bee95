package metrics

import (
	"time"

	"github.com/goodnatureofminers/blockinsight7000-validator/internal/utxo/model"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	clickhouseRepositoryRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "clickhouse_repository",
		Name:      "operations_total",
		Help:      "Count of repository operations.",
	}, []string{"operation", "coin", "network", "status"})
	clickhouseRepositoryRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "clickhouse_repository",
		Name:      "operation_duration_seconds",
		Help:      "Duration of repository operations.",
		Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10, 15, 20, 30},
	}, []string{"operation", "coin", "network", "status"})
	clickhouseRepositoryRows = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "clickhouse_repository",
		Name:      "rows_total",
		Help:      "Count of rows read or written by repository operations.",
	}, []string{"operation", "coin", "network"})
)

// ClickhouseRepository tracks metrics for ClickHouse repository operations.
type ClickhouseRepository struct{}

// NewClickhouseRepository creates a ClickhouseRepository metrics collector.
func NewClickhouseRepository() *ClickhouseRepository {
	return &ClickhouseRepository{}
}

// Observe records duration, status and row count of a repository operation.
func (m ClickhouseRepository) Observe(operation string, coin model.Coin, network model.Network, rows int, err error, started time.Time) {
	status := statusOf(err)
	c, n := labels(coin, network)

	clickhouseRepositoryRequestsTotal.WithLabelValues(operation, c, n, status).Inc()
	clickhouseRepositoryRequestDuration.WithLabelValues(operation, c, n, status).Observe(time.Since(started).Seconds())
	if rows > 0 {
		clickhouseRepositoryRows.WithLabelValues(operation, c, n).Add(float64(rows))
	}
}
