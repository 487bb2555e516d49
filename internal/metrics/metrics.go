package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	// HTTP
	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"route", "method", "status"},
	)

	// Ledger
	LedgerMutationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "savings_ledger_mutations_total",
			Help: "Applied ledger mutations",
		},
		[]string{"type"}, // DEPOSIT|WITHDRAWAL|add_funds
	)
	LedgerInsufficientFunds = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "savings_ledger_insufficient_funds_total",
			Help: "Withdrawals rejected for insufficient funds",
		},
	)
	LedgerFailures = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "savings_ledger_failures_total",
			Help: "Ledger mutations aborted by store errors",
		},
	)

	// Background queue
	WorkerQueueDepth = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "worker_queue_depth",
			Help: "Current worker queue depth",
		},
	)
)

func Init() {
	prometheus.MustRegister(RequestsTotal)
	prometheus.MustRegister(LedgerMutationsTotal)
	prometheus.MustRegister(LedgerInsufficientFunds)
	prometheus.MustRegister(LedgerFailures)
	prometheus.MustRegister(WorkerQueueDepth)
}
