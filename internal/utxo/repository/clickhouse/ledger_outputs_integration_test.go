//go:build integration

package clickhouse

import (
	"github.com/golang/mock/gomock"
	"github.com/goodnatureofminers/blockinsight7000-validator/internal/utxo/model"
	"github.com/goodnatureofminers/blockinsight7000-validator/internal/utxo/testvectors"
)

func (s *RepositorySuite) TestLedgerOutputsRoundTrip() {
	outputs := []model.LedgerOutput{
		{Coin: model.BTC, Network: model.Mainnet, TxID: testvectors.PrevTxID0, Index: 0, Value: 0, ScriptHex: ""},
		{Coin: model.BTC, Network: model.Mainnet, TxID: testvectors.PrevTxID0, Index: 1, Value: 9212969, ScriptHex: p2pkhHex},
		{Coin: model.BTC, Network: model.Testnet, TxID: testvectors.PrevTxID1, Index: 0, Value: 1, ScriptHex: p2pkhHex},
	}

	s.metrics.EXPECT().Observe("insert_ledger_outputs", model.BTC, model.Mainnet, 3, gomock.Nil(), gomock.Any()).Times(1)
	s.Require().NoError(s.repo.InsertLedgerOutputs(s.testCtx, outputs))
	s.Equal(uint64(3), s.countRows("ledger_transaction_outputs"))

	s.metrics.EXPECT().Observe("ledger_transactions_by_txids", model.BTC, model.Mainnet, 2, gomock.Nil(), gomock.Any()).Times(1)
	got, err := s.repo.LedgerTransactionsByTxIDs(s.testCtx, model.BTC, model.Mainnet, []string{testvectors.PrevTxID0, testvectors.PrevTxID1})
	s.Require().NoError(err)

	s.Require().Len(got, 1, "testnet row must not leak into mainnet lookups")
	prev := got[testvectors.PrevTxID0]
	s.Require().Len(prev.Outputs, 2)
	s.Equal("0.09212969", prev.Outputs[1].Amount.String())
	s.Equal(testvectors.PayToPubKeyHash(testvectors.PubKeyHash0), prev.Outputs[1].LockingScript)
}

func (s *RepositorySuite) TestLedgerOutputsDeduplicated() {
	row := model.LedgerOutput{Coin: model.BTC, Network: model.Mainnet, TxID: testvectors.PrevTxID1, Index: 0, Value: 7, ScriptHex: p2pkhHex}

	s.metrics.EXPECT().Observe("insert_ledger_outputs", model.BTC, model.Mainnet, 1, gomock.Nil(), gomock.Any()).Times(2)
	s.Require().NoError(s.repo.InsertLedgerOutputs(s.testCtx, []model.LedgerOutput{row}))
	s.Require().NoError(s.repo.InsertLedgerOutputs(s.testCtx, []model.LedgerOutput{row}))

	s.metrics.EXPECT().Observe("ledger_transactions_by_txids", model.BTC, model.Mainnet, 1, gomock.Nil(), gomock.Any()).Times(1)
	got, err := s.repo.LedgerTransactionsByTxIDs(s.testCtx, model.BTC, model.Mainnet, []string{testvectors.PrevTxID1})
	s.Require().NoError(err)
	s.Require().Len(got[testvectors.PrevTxID1].Outputs, 1)
}
