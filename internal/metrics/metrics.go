// Package metrics exposes application metrics collectors.
package metrics

import "github.com/goodnatureofminers/blockinsight7000-validator/internal/utxo/model"

const namespace = "blockinsight7000"

func statusOf(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}

func labels(coin model.Coin, network model.Network) (string, string) {
	if coin == "" {
		coin = "unknown"
	}
	if network == "" {
		network = "unknown"
	}
	return string(coin), string(network)
}
