package metrics

import (
	"time"

	"github.com/goodnatureofminers/blockinsight7000-validator/internal/utxo/model"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ledgerImportTransactionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "ledger_importer",
		Name:      "transactions_total",
		Help:      "Count of ledger transactions queued for import.",
	}, []string{"coin", "network", "status"})

	ledgerImportFlushTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "ledger_importer",
		Name:      "flush_total",
		Help:      "Count of ledger output batch flushes.",
	}, []string{"coin", "network", "status"})

	ledgerImportFlushDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "ledger_importer",
		Name:      "flush_duration_seconds",
		Help:      "Duration of flushing a batch of ledger outputs.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"coin", "network", "status"})

	ledgerImportFlushSize = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "ledger_importer",
		Name:      "flush_size",
		Help:      "Number of ledger outputs written per flush.",
		Buckets:   prometheus.ExponentialBuckets(1, 2, 14), // 1..8192
	}, []string{"coin", "network"})
)

// LedgerImporter tracks metrics for the ledger import pipeline.
type LedgerImporter struct {
	coin    string
	network string
}

// NewLedgerImporter constructs a LedgerImporter collector.
func NewLedgerImporter(coin model.Coin, network model.Network) *LedgerImporter {
	c, n := labels(coin, network)
	return &LedgerImporter{coin: c, network: n}
}

// ObserveTransaction records one transaction being flattened and queued.
func (m LedgerImporter) ObserveTransaction(err error) {
	ledgerImportTransactionsTotal.WithLabelValues(m.coin, m.network, statusOf(err)).Inc()
}

// ObserveFlush records a batch write of rows outputs.
func (m LedgerImporter) ObserveFlush(err error, rows int, started time.Time) {
	status := statusOf(err)
	ledgerImportFlushTotal.WithLabelValues(m.coin, m.network, status).Inc()
	ledgerImportFlushDuration.WithLabelValues(m.coin, m.network, status).
		Observe(time.Since(started).Seconds())
	ledgerImportFlushSize.WithLabelValues(m.coin, m.network).Observe(float64(rows))
}
