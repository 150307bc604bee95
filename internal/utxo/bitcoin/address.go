package bitcoin

import (
	"fmt"
	"strings"

	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/txscript"
	"github.com/goodnatureofminers/blockinsight7000-validator/internal/utxo/model"
	"github.com/goodnatureofminers/blockinsight7000-validator/internal/utxo/script"
)

// AddressDecoder extracts human-readable addresses from locking scripts.
type AddressDecoder struct {
	params *chaincfg.Params
}

// NewAddressDecoder initializes a decoder using the params of network.
func NewAddressDecoder(network model.Network) (*AddressDecoder, error) {
	params, err := chainParamsForNetwork(network)
	if err != nil {
		return nil, err
	}
	return &AddressDecoder{params: params}, nil
}

// Addresses returns the addresses lockingScript pays to. Non-standard scripts
// yield no addresses.
func (d *AddressDecoder) Addresses(lockingScript []script.Element) ([]string, error) {
	program, err := script.Assemble(lockingScript)
	if err != nil {
		return nil, err
	}
	_, addrs, _, err := txscript.ExtractPkScriptAddrs(program.Raw(), d.params)
	if err != nil {
		return nil, err
	}

	result := make([]string, 0, len(addrs))
	for _, addr := range addrs {
		result = append(result, addr.EncodeAddress())
	}
	return result, nil
}

func chainParamsForNetwork(network model.Network) (*chaincfg.Params, error) {
	switch strings.ToLower(string(network)) {
	case "main", "mainnet", "bitcoin":
		return &chaincfg.MainNetParams, nil
	case "testnet", "testnet3":
		return &chaincfg.TestNet3Params, nil
	case "regtest":
		return &chaincfg.RegressionNetParams, nil
	case "signet":
		return &chaincfg.SigNetParams, nil
	default:
		return nil, fmt.Errorf("unsupported network %q", network)
	}
}
