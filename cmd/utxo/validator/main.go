package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/goodnatureofminers/blockinsight7000-validator/internal/metrics"
	"github.com/goodnatureofminers/blockinsight7000-validator/internal/utxo/bitcoin"
	"github.com/goodnatureofminers/blockinsight7000-validator/internal/utxo/model"
	"github.com/goodnatureofminers/blockinsight7000-validator/internal/utxo/validator"
	"github.com/jessevdk/go-flags"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

type config struct {
	Input         string        `long:"input" env:"UTXO_VALIDATOR_INPUT" description:"JSON document with the ledger and the spending transaction"`
	Source        string        `long:"source" env:"UTXO_VALIDATOR_SOURCE" description:"where previous transactions are read from" choice:"file" choice:"clickhouse" choice:"rpc" default:"file"`
	ClickhouseDSN string        `long:"clickhouse-dsn" env:"UTXO_VALIDATOR_CLICKHOUSE_DSN" description:"ClickHouse DSN"`
	Coin          model.Coin    `long:"coin" env:"UTXO_VALIDATOR_COIN" description:"coin name" default:"BTC"`
	Network       model.Network `long:"network" env:"UTXO_VALIDATOR_NETWORK" description:"network name" default:"mainnet"`
	RPCURL        string        `long:"rpc-url" env:"UTXO_VALIDATOR_RPC_URL" description:"Bitcoin RPC URL" default:"http://127.0.0.1:8332"`
	RPCUser       string        `long:"rpc-user" env:"UTXO_VALIDATOR_RPC_USER" description:"Bitcoin RPC username"`
	RPCPassword   string        `long:"rpc-password" env:"UTXO_VALIDATOR_RPC_PASSWORD" description:"Bitcoin RPC password"`
	TxID          string        `long:"txid" env:"UTXO_VALIDATOR_TXID" description:"fetch the spending transaction from the node instead of the input document"`
	Index         []int         `long:"index" description:"input index to validate, repeatable (default all inputs)"`
	Workers       int           `long:"workers" env:"UTXO_VALIDATOR_WORKERS" description:"number of inputs validated concurrently" default:"4"`
	MetricsFile   string        `long:"metrics-file" env:"UTXO_VALIDATOR_METRICS_FILE" description:"write metrics in text exposition format to this file on exit"`
}

var errInvalid = errors.New("transaction has invalid inputs")

func main() {
	os.Exit(exitCode())
}

// exitCode runs the validator and maps its outcome to a process exit code:
// 0 when every input is valid, 1 when an input is invalid, 2 on failure.
// Deferred cleanup has completed by the time it returns.
func exitCode() int {
	cfg := config{}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger, err := zap.NewDevelopment()
	if err != nil {
		panic("can't initialize zap logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync()
	}()

	if _, err := flags.ParseArgs(&cfg, os.Args); err != nil {
		var ferr *flags.Error
		if errors.As(err, &ferr) && ferr.Type == flags.ErrHelp {
			return 0
		}
		logger.Error("failed to parse flags", zap.Error(err))
		return 2
	}

	err = run(ctx, cfg, logger, os.Stdout)
	if cfg.MetricsFile != "" {
		if werr := prometheus.WriteToTextfile(cfg.MetricsFile, prometheus.DefaultGatherer); werr != nil {
			logger.Error("failed to write metrics file", zap.String("path", cfg.MetricsFile), zap.Error(werr))
		}
	}
	return codeFor(err, logger)
}

func codeFor(err error, logger *zap.Logger) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, errInvalid):
		logger.Info("validation finished", zap.Error(err))
		return 1
	default:
		logger.Error("utxo validator failed", zap.Error(err))
		return 2
	}
}

func run(ctx context.Context, cfg config, logger *zap.Logger, out io.Writer) error {
	inputs, err := newInputs(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer inputs.close()

	tx, err := inputs.transaction(ctx)
	if err != nil {
		return err
	}
	ledger, err := inputs.ledger(ctx, tx)
	if err != nil {
		return err
	}

	var decoder validator.AddressDecoder
	if addresses, err := bitcoin.NewAddressDecoder(cfg.Network); err != nil {
		logger.Warn("addresses will not be logged", zap.Error(err))
	} else {
		decoder = addresses
	}

	v, err := validator.New(logger, metrics.NewValidator(cfg.Coin, cfg.Network), decoder, cfg.Workers)
	if err != nil {
		return fmt.Errorf("init validator: %w", err)
	}
	results, err := v.ValidateTransaction(ctx, tx, ledger, cfg.Index...)
	if err != nil {
		return fmt.Errorf("validate transaction: %w", err)
	}

	invalid := 0
	for _, res := range results {
		if !res.Valid {
			invalid++
		}
		if err := printResult(out, res); err != nil {
			return err
		}
	}
	if invalid > 0 {
		return fmt.Errorf("%w: %d of %d", errInvalid, invalid, len(results))
	}
	return nil
}

func printResult(out io.Writer, res validator.Result) error {
	verdict := "valid"
	if !res.Valid {
		verdict = "invalid"
	}
	line := fmt.Sprintf("input %d: %s stack=[%s]", res.InputIndex, verdict, strings.Join(res.StackHex(), " "))
	if res.Err != nil {
		line += " error=" + res.Err.Error()
	}
	_, err := fmt.Fprintln(out, line)
	return err
}
