package bitcoin

import (
	"time"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

// RPCClient wraps a node client with metrics instrumentation.
type RPCClient struct {
	client     NodeClient
	rpcMetrics RPCMetrics
}

// NewRPCClient constructs an instrumented RPC client.
func NewRPCClient(client NodeClient, rpcMetrics RPCMetrics) *RPCClient {
	return &RPCClient{
		client:     client,
		rpcMetrics: rpcMetrics,
	}
}

// GetRawTransaction returns the transaction with the given hash.
func (r *RPCClient) GetRawTransaction(txHash *chainhash.Hash) (tx *btcutil.Tx, err error) {
	started := time.Now()
	defer func() {
		r.rpcMetrics.Observe("get_raw_transaction", err, started)
	}()
	return r.client.GetRawTransaction(txHash)
}
