package faucet

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	transfersTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "faucet_transfers_total",
		Help: "Number of confirmed outgoing transfers",
	})
	transferFailuresTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "faucet_transfer_failures_total",
		Help: "Number of failed outgoing transfers",
	})
	transferInFlight = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "faucet_transfers_in_flight",
		Help: "Transfers currently awaiting block inclusion",
	})
	refillPassesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "faucet_refill_passes_total",
		Help: "Number of completed refill passes",
	})
	refillJobsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "faucet_refill_jobs_total",
		Help: "Number of refill jobs planned",
	})
)

func init() {
	prometheus.MustRegister(
		transfersTotal,
		transferFailuresTotal,
		transferInFlight,
		refillPassesTotal,
		refillJobsTotal,
	)
}
