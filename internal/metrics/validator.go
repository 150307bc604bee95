package metrics

import (
	"time"

	"github.com/goodnatureofminers/blockinsight7000-validator/internal/utxo/model"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	validatorInputsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "validator",
		Name:      "inputs_total",
		Help:      "Count of validated inputs by verdict.",
	}, []string{"coin", "network", "status"})

	validatorInputDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "validator",
		Name:      "input_duration_seconds",
		Help:      "Duration of validating a single input.",
		Buckets:   []float64{.0001, .00025, .0005, .001, .0025, .005, .01, .025, .05, .1},
	}, []string{"coin", "network", "status"})
)

// Validator tracks input verdicts. Status is valid, invalid or error.
type Validator struct {
	coin    string
	network string
}

// NewValidator constructs a Validator collector.
func NewValidator(coin model.Coin, network model.Network) *Validator {
	c, n := labels(coin, network)
	return &Validator{coin: c, network: n}
}

// ObserveInput records the verdict and duration of one input.
func (m Validator) ObserveInput(valid bool, err error, started time.Time) {
	status := "invalid"
	switch {
	case err != nil:
		status = "error"
	case valid:
		status = "valid"
	}
	validatorInputsTotal.WithLabelValues(m.coin, m.network, status).Inc()
	validatorInputDuration.WithLabelValues(m.coin, m.network, status).Observe(time.Since(started).Seconds())
}
