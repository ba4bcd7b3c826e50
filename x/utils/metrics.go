package utils

import (
	"strconv"
	"sync"
	"time"

	"github.com/iov-one/timelock"
	"github.com/iov-one/timelock/errors"
	"github.com/prometheus/client_golang/prometheus"
)

// TxCounters are the transaction metrics shared by all Metrics decorators.
type TxCounters struct {
	processed *prometheus.CounterVec
	duration  *prometheus.HistogramVec
}

var (
	txMetricsOnce sync.Once
	txRegistry    *TxCounters
)

// TxMetrics returns the lazily registered transaction metrics.
func TxMetrics() *TxCounters {
	txMetricsOnce.Do(func() {
		txRegistry = &TxCounters{
			processed: prometheus.NewCounterVec(prometheus.CounterOpts{
				Namespace: "timelock",
				Subsystem: "tx",
				Name:      "processed_total",
				Help:      "Total transactions processed segmented by message path, phase and outcome.",
			}, []string{"path", "phase", "outcome"}),
			duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
				Namespace: "timelock",
				Subsystem: "tx",
				Name:      "duration_seconds",
				Help:      "Processing time of a transaction segmented by message path and phase.",
				Buckets:   prometheus.DefBuckets,
			}, []string{"path", "phase"}),
		}
		prometheus.MustRegister(txRegistry.processed, txRegistry.duration)
	})
	return txRegistry
}

// Observe records a single processed transaction. Outcome is "success"
// or the ABCI code of the failure.
func (m *TxCounters) Observe(path, phase string, err error, took time.Duration) {
	if m == nil {
		return
	}
	m.processed.WithLabelValues(path, phase, outcome(err)).Inc()
	m.duration.WithLabelValues(path, phase).Observe(took.Seconds())
}

// Processed returns the counter of the given labels.
func (m *TxCounters) Processed(path, phase, outcome string) prometheus.Counter {
	return m.processed.WithLabelValues(path, phase, outcome)
}

func outcome(err error) string {
	if err == nil {
		return "success"
	}
	code, _ := errors.ABCIInfo(err, false)
	return strconv.FormatUint(uint64(code), 10)
}

// Metrics is a decorator counting every transaction that passes through
// together with the time it took to process it.
type Metrics struct {
	m *TxCounters
}

var _ timelock.Decorator = Metrics{}

// NewMetrics creates a Metrics decorator using the process wide
// prometheus registry.
func NewMetrics() Metrics {
	return Metrics{m: TxMetrics()}
}

// Check records the check phase.
func (d Metrics) Check(ctx timelock.Context, db timelock.KVStore, tx timelock.Tx, next timelock.Checker) (*timelock.CheckResult, error) {
	start := time.Now()
	res, err := next.Check(ctx, db, tx)
	d.m.Observe(timelock.GetPath(tx), "check", err, time.Since(start))
	return res, err
}

// Deliver records the deliver phase.
func (d Metrics) Deliver(ctx timelock.Context, db timelock.KVStore, tx timelock.Tx, next timelock.Deliverer) (*timelock.DeliverResult, error) {
	start := time.Now()
	res, err := next.Deliver(ctx, db, tx)
	d.m.Observe(timelock.GetPath(tx), "deliver", err, time.Since(start))
	return res, err
}
