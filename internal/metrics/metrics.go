// Package metrics records settlement run metrics on a private Prometheus
// registry and writes them in the text exposition format.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/mmynk/splitcosts/internal/calculator"
)

// Prometheus metric names.
const (
	MetricRowsTotal         = "splitcosts_rows_total"
	MetricTransfersTotal    = "splitcosts_transfers_total"
	MetricParticipants      = "splitcosts_participants"
	MetricImbalance         = "splitcosts_imbalance"
	MetricTransferredAmount = "splitcosts_transferred_amount"
	MetricErrorsTotal       = "splitcosts_errors_total"
)

// Recorder collects the metrics of settlement runs.
type Recorder struct {
	registry *prometheus.Registry

	rowsTotal         prometheus.Counter
	transfersTotal    prometheus.Counter
	participants      prometheus.Gauge
	imbalance         prometheus.Gauge
	transferredAmount prometheus.Gauge
	errorsTotal       *prometheus.CounterVec
}

// NewRecorder creates a Recorder with its own registry.
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		rowsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: MetricRowsTotal,
			Help: "Expense rows processed",
		}),
		transfersTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: MetricTransfersTotal,
			Help: "Transfers emitted by the settlement",
		}),
		participants: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: MetricParticipants,
			Help: "Participants in the last settled sheet",
		}),
		imbalance: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: MetricImbalance,
			Help: "Sum of all balances in the last settled sheet; zero when the books close",
		}),
		transferredAmount: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: MetricTransferredAmount,
			Help: "Total amount moved by the last settlement",
		}),
		errorsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: MetricErrorsTotal,
			Help: "Failed runs by error kind",
		}, []string{"kind"}),
	}

	r.registry.MustRegister(
		r.rowsTotal,
		r.transfersTotal,
		r.participants,
		r.imbalance,
		r.transferredAmount,
		r.errorsTotal,
	)

	return r
}

// Registry returns the underlying registry.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// ObserveBalances records a built balance sheet.
func (r *Recorder) ObserveBalances(result *calculator.BalanceResult) {
	r.rowsTotal.Add(float64(result.Rows))
	r.participants.Set(float64(len(result.Balances)))
}

// ObserveSettlement records a computed settlement.
// Amounts are converted to float64 for exposition only.
func (r *Recorder) ObserveSettlement(s *calculator.Settlement) {
	r.transfersTotal.Add(float64(len(s.Transfers)))
	r.imbalance.Set(s.Imbalance.InexactFloat64())
	r.transferredAmount.Set(calculator.TotalTransferred(s.Transfers).InexactFloat64())
}

// ObserveError counts a failed run under the given kind.
func (r *Recorder) ObserveError(kind string) {
	r.errorsTotal.WithLabelValues(kind).Inc()
}

// WriteTextfile writes every metric to path in the Prometheus text format,
// suitable for the node exporter textfile collector.
func (r *Recorder) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("failed to write metrics: %w", err)
	}
	return nil
}
