// ─────────────────────────────────────────────────────────────────────────────
// [Filename]: state.go — shared market-state record
//
// Notes:
//   - Every field is a fixed-size numeric or boolean value. This is load
//     bearing: the record is mirrored byte-for-byte into a memory-mapped
//     region (see region.go) via an unsafe.Pointer cast, so no field here
//     may be a pointer, string, or slice.
// ─────────────────────────────────────────────────────────────────────────────

package sharedstate

import "github.com/pockettrader/core/constants"

// Venue identifies one of the two ingress feeds.
type Venue int

const (
	Exa Venue = iota
	Exb
	venueCount = 2
)

func (v Venue) String() string {
	if v == Exa {
		return "EXA"
	}
	return "EXB"
}

// ExchangeQuote is the latest observed top-of-book for one venue.
type ExchangeQuote struct {
	Bid          float64
	Ask          float64
	Seq          uint64
	LastUpdateNs int64
	Connected    bool
}

// VenueLatency tracks inter-arrival timing for one venue's ticks.
type VenueLatency struct {
	LastTickIntervalNs int64
	AvgTickIntervalNs  int64
}

// StrategyParams are tunable by an external observer through WithLock.
type StrategyParams struct {
	MinSpread    float64
	StrategyMode int32
	TradeSize    float64
	KillSwitch   bool
}

// TradeMetrics accumulates performance statistics across the process
// lifetime.
type TradeMetrics struct {
	LastSpreadExaToExb float64
	LastSpreadExbToExa float64
	LastTradeTsNs      int64
	LastTradePnl       float64
	CumulativePnl      float64
	TradesCount        int64
	WinningTrades      int64
	LosingTrades       int64
	GrossProfit        float64
	GrossLoss          float64
	EquityHigh         float64
	MaxDrawdown        float64
	LastTickToTradeNs  int64
}

// SafetyFlags are sticky advisories surfaced to observers.
type SafetyFlags struct {
	CircuitTripped bool
	RateLimited    bool
}

// State is the full embedded record mirrored into shared memory. Observers and
// workers only ever see a consistent copy of it — Region.WithLock guarantees
// that every multi-field read or write is atomic with respect to other
// Region users.
type State struct {
	Quotes  [venueCount]ExchangeQuote
	Latency [venueCount]VenueLatency
	Params  StrategyParams
	Metrics TradeMetrics
	Safety  SafetyFlags

	// TradeAddrReady mirrors tradeaddr.Cell's armed flag for the benefit of
	// out-of-process observers reading the shared region. The canonical
	// copy of the flag — and the only copy the evaluator or feed receivers
	// may block on — lives in the tradeaddr package under its own mutex;
	// the trade-address mutex and the state mutex are never held nested.
	TradeAddrReady bool
}

// DefaultParams returns the parameter defaults open_or_create installs on
// first creation of the region: min_spread=0.10, strategy_mode=PAPER,
// trade_size=0.01.
func DefaultParams() StrategyParams {
	return StrategyParams{
		MinSpread:    constants.DefaultMinSpread,
		StrategyMode: constants.ModePaper,
		TradeSize:    constants.DefaultTradeSize,
	}
}
