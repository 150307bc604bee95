package model

// Coin labels the chain a ledger belongs to.
type Coin string

// Network labels the network of a chain.
type Network string

var (
	BTC Coin = "BTC"
	LTC Coin = "LTC"
)

var (
	Testnet Network = "testnet"
	Mainnet Network = "mainnet"
	Regtest Network = "regtest"
)
