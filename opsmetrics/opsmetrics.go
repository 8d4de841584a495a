// ─────────────────────────────────────────────────────────────────────────────
// [Filename]: opsmetrics.go — process-health metrics, never trading state
//
// Notes:
//   - Only packet/parse/send counters live here. Trading state (quotes,
//     spreads, PnL, circuit/rate-limit flags) must never be exported through
//     this package — the shared region is the sole rendezvous for that, per
//     the shared region. Exporting it twice would let an observer see an
//     inconsistent view if it reads Prometheus and the shared region at
//     different instants.
// ─────────────────────────────────────────────────────────────────────────────

package opsmetrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	PacketsReceived = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "pockettrader_packets_received_total",
		Help: "Ingress datagrams received, by venue.",
	}, []string{"venue"})

	PacketsDropped = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "pockettrader_packets_dropped_total",
		Help: "Ingress datagrams dropped after a parse failure, by venue.",
	}, []string{"venue"})

	TradesSent = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "pockettrader_trades_sent_total",
		Help: "Trade datagrams successfully sent by the evaluator.",
	})

	SendErrors = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "pockettrader_send_errors_total",
		Help: "sendto errors encountered by the evaluator.",
	})

	EvaluatorIterations = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "pockettrader_evaluator_iterations_total",
		Help: "Strategy evaluator loop iterations.",
	})
)

// Register installs all process-health collectors with the default
// Prometheus registry. Safe to call once during startup.
func Register() {
	prometheus.MustRegister(PacketsReceived, PacketsDropped, TradesSent, SendErrors, EvaluatorIterations)
}

// Handler returns the HTTP handler that serves the /metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
