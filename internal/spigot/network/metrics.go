package network

import "github.com/prometheus/client_golang/prometheus"

var (
	httpRequestsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "spigot_http_requests_total",
		Help: "Total number of HTTP requests received",
	})
	creditRequestsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "spigot_credit_requests_total",
		Help: "Total number of credit requests accepted for sending",
	})
	creditFailuresTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "spigot_credit_failures_total",
		Help: "Total number of credit requests rejected or failed",
	})
)

func init() {
	prometheus.MustRegister(httpRequestsTotal)
	prometheus.MustRegister(creditRequestsTotal)
	prometheus.MustRegister(creditFailuresTotal)
}
