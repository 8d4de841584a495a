// ─────────────────────────────────────────────────────────────────────────────
// [Filename]: constants.go — Global core tunables for the arbitrage dataplane
//
// Purpose:
//   - Defines compile-time tunables for the shared-state layout, staleness
//     window, rate limiting, and the circuit breaker threshold.
//
// Notes:
//   - No runtime logic here — all values must be compile-time resolvable.
//   - Defaults mirror the reference implementation so behavior is identical
//     out of the box.
// ─────────────────────────────────────────────────────────────────────────────

package constants

import "time"

// ───────────────────────────── Network defaults ────────────────────────────

const (
	// DefaultExaPort is the UDP port the EXA feed receiver binds to.
	DefaultExaPort = 6001

	// DefaultExbPort is the UDP port the EXB feed receiver binds to.
	DefaultExbPort = 6002

	// DefaultTradePort is the UDP port trade datagrams are sent to.
	DefaultTradePort = 7000

	// MaxDatagramSize bounds a single ingress UDP read buffer.
	// TICK/TRADE lines are well under this; sized generously to avoid
	// truncation on noisy networks without growing the per-packet buffer.
	MaxDatagramSize = 256
)

// ───────────────────────────── Strategy defaults ───────────────────────────

const (
	// DefaultMinSpread is the initial cross-venue spread threshold.
	DefaultMinSpread = 0.10

	// DefaultTradeSize is the initial paper position size per trade.
	DefaultTradeSize = 0.01

	// StaleThreshold is the freshness window: a quote older than this is
	// treated as stale and blocks trading. Strict `<` — exactly at the
	// threshold is stale.
	StaleThreshold = 500 * time.Millisecond

	// MaxTradesPerWindow caps emitted trades within any rolling one-second
	// window measured from the core's own monotonic clock.
	MaxTradesPerWindow = 20

	// RateLimitWindow is the rolling window duration for MaxTradesPerWindow.
	RateLimitWindow = time.Second

	// PnLCircuitLimit trips the circuit breaker once cumulative PnL falls
	// below this value (exclusive — strictly less than).
	PnLCircuitLimit = -100.0

	// LatencyEMAAlpha is the smoothing factor for the inter-tick interval
	// exponential moving average: new = (1-alpha)*old + alpha*sample.
	LatencyEMAAlpha = 0.1
)

// ───────────────────────────── Shared memory layout ────────────────────────

const (
	// SharedRegionName is the POSIX shared-memory object name.
	SharedRegionName = "/pockettrader_shm"

	// SharedRegionMagic is written last by the creator and polled for by
	// attaching processes; value spells 'PKTR' in ASCII when its bytes are
	// read most-significant first.
	SharedRegionMagic uint32 = 0x504B5452

	// MagicPollInterval is the spin-wait granularity used by attaching
	// processes while waiting for the creator to finish initialization.
	MagicPollInterval = time.Millisecond
)

// ───────────────────────────── Strategy modes ──────────────────────────────

const (
	ModeOff     = 0
	ModeMonitor = 1
	ModePaper   = 2
)

// ───────────────────────────── Misc ─────────────────────────────────────────

const (
	// LatencyLogPath is the CSV file the evaluator appends latency samples to.
	LatencyLogPath = "latency_log.csv"

	// LatencyLogHeader is written once when the file is created.
	LatencyLogHeader = "t_now_ns,tick_to_trade_ns,exa_avg_tick_interval_ns,exb_avg_tick_interval_ns\n"

	// StrategyTag is the fixed tag embedded in every emitted trade datagram.
	StrategyTag = "ARB1"
)
