package metrics

import (
	"errors"
	"time"

	"github.com/btcsuite/btcd/btcjson"
	"github.com/goodnatureofminers/blockinsight7000-validator/internal/utxo/model"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	rpcRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "rpc_client",
		Name:      "operations_total",
		Help:      "Count of node RPC operations.",
	}, []string{"operation", "coin", "network", "status"})
	rpcRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "rpc_client",
		Name:      "operation_duration_seconds",
		Help:      "Duration of node RPC operations.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"operation", "coin", "network", "status"})
)

// RPCClient tracks metrics for RPC calls to blockchain nodes.
type RPCClient struct {
	coin    string
	network string
}

// NewRPCClient constructs a metrics collector for RPC calls.
func NewRPCClient(coin model.Coin, network model.Network) *RPCClient {
	c, n := labels(coin, network)
	return &RPCClient{coin: c, network: n}
}

// Observe records a single RPC call outcome and duration. A node reporting
// an unknown transaction is counted as not_found rather than error.
func (m RPCClient) Observe(operation string, err error, started time.Time) {
	status := rpcStatus(err)
	rpcRequestsTotal.WithLabelValues(operation, m.coin, m.network, status).Inc()
	rpcRequestDuration.WithLabelValues(operation, m.coin, m.network, status).Observe(time.Since(started).Seconds())
}

func rpcStatus(err error) string {
	var rpcErr *btcjson.RPCError
	if errors.As(err, &rpcErr) && rpcErr.Code == btcjson.ErrRPCNoTxInfo {
		return "not_found"
	}
	return statusOf(err)
}
