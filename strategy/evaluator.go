// ─────────────────────────────────────────────────────────────────────────────
// [Filename]: evaluator.go — strategy evaluator: gate, decide, emit
//
// Architecture:
//   - Single worker. Never blocks except in sendto; yields the scheduler
//     between iterations (runtime.Gosched, Go's sched_yield analogue) per
//     the strategy loop's contract.
//   - Snapshot-under-lock, decide-out-of-lock: the lock contention window is
//     bounded to an O(state size) copy, never to I/O.
// ─────────────────────────────────────────────────────────────────────────────

package strategy

import (
	"fmt"
	"net"
	"runtime"

	"github.com/pockettrader/core/clock"
	"github.com/pockettrader/core/constants"
	"github.com/pockettrader/core/control"
	"github.com/pockettrader/core/debug"
	"github.com/pockettrader/core/opsmetrics"
	"github.com/pockettrader/core/sharedstate"
	"github.com/pockettrader/core/tradeaddr"
)

type direction int

const (
	exaToExb direction = iota
	exbToExa
)

// Evaluator is the single strategy worker.
type Evaluator struct {
	Region     *sharedstate.Region
	TradeAddr  *tradeaddr.Cell
	TradePort  int
	LatencyLog *LatencyLog

	// NowNs returns the current monotonic time in nanoseconds. Defaults to
	// clock.NowNs; overridden in tests to drive the window/freshness logic
	// against synthetic timestamps.
	NowNs func() int64

	conn *net.UDPConn

	windowStartNs int64
	windowCount   int
}

func (e *Evaluator) nowNs() int64 {
	if e.NowNs != nil {
		return e.NowNs()
	}
	return clock.NowNs()
}

// Dial opens the trade-emission socket. Unlike the feed receivers, this
// socket has no fixed local port; the kernel assigns one.
func (e *Evaluator) Dial() error {
	conn, err := net.ListenUDP("udp", &net.UDPAddr{Port: 0})
	if err != nil {
		return err
	}
	e.conn = conn
	return nil
}

// Close releases the evaluator's socket.
func (e *Evaluator) Close() error {
	if e.conn == nil {
		return nil
	}
	return e.conn.Close()
}

// Run executes the evaluator loop until control.Running() is false.
func (e *Evaluator) Run() {
	defer control.ShutdownWG.Done()

	for control.Running() {
		e.step()
		runtime.Gosched()
	}
}

func (e *Evaluator) step() {
	opsmetrics.EvaluatorIterations.Inc()

	tNow := e.nowNs()
	if e.windowStartNs == 0 || tNow-e.windowStartNs >= int64(constants.RateLimitWindow) {
		e.windowStartNs = tNow
		e.windowCount = 0
	}

	snap := e.Region.Snapshot()

	if !gate(snap, tNow) {
		return
	}

	spreadA := snap.Quotes[sharedstate.Exb].Bid - snap.Quotes[sharedstate.Exa].Ask
	spreadB := snap.Quotes[sharedstate.Exa].Bid - snap.Quotes[sharedstate.Exb].Ask

	dir, spread, fires := decide(spreadA, spreadB, snap.Params.MinSpread)
	if !fires {
		e.Region.WithLock(func(s *sharedstate.State) {
			s.Metrics.LastSpreadExaToExb = spreadA
			s.Metrics.LastSpreadExbToExa = spreadB
		})
		return
	}

	if e.windowCount >= constants.MaxTradesPerWindow {
		e.Region.WithLock(func(s *sharedstate.State) {
			s.Safety.RateLimited = true
		})
		return
	}

	ip, armed := e.TradeAddr.Snapshot()
	if !armed {
		return
	}

	trade := buildTrade(dir, snap, spread)

	tSend := e.nowNs()
	lastUpdate := snap.Quotes[sharedstate.Exa].LastUpdateNs
	if snap.Quotes[sharedstate.Exb].LastUpdateNs > lastUpdate {
		lastUpdate = snap.Quotes[sharedstate.Exb].LastUpdateNs
	}
	tickToTrade := tSend - lastUpdate
	if tickToTrade < 0 {
		tickToTrade = 0
	}

	datagram := trade.format(snap.Params.TradeSize, tSend)
	dst := &net.UDPAddr{IP: ip, Port: e.TradePort}
	if _, err := e.conn.WriteToUDP([]byte(datagram), dst); err != nil {
		opsmetrics.SendErrors.Inc()
		debug.DropError("trade sendto", err)
		return
	}
	opsmetrics.TradesSent.Inc()

	pnl := (trade.sellPrice() - trade.buyPrice()) * snap.Params.TradeSize

	e.Region.WithLock(func(s *sharedstate.State) {
		s.Metrics.LastSpreadExaToExb = spreadA
		s.Metrics.LastSpreadExbToExa = spreadB
		applyPostTrade(s, pnl, tSend, tickToTrade)
	})

	e.windowCount++

	if e.LatencyLog != nil {
		avgExa := snap.Latency[sharedstate.Exa].AvgTickIntervalNs
		avgExb := snap.Latency[sharedstate.Exb].AvgTickIntervalNs
		if err := e.LatencyLog.Append(tNow, tickToTrade, avgExa, avgExb); err != nil {
			debug.DropError("latency log append", err)
		}
	}
}

// applyPostTrade performs the post-trade update: PnL accounting, win/loss
// §4.3: PnL accounting, win/loss tallies, the equity curve, and the circuit
// breaker trip condition. Caller must hold the region's lock.
func applyPostTrade(s *sharedstate.State, pnl float64, tSend, tickToTrade int64) {
	s.Metrics.LastTradeTsNs = tSend
	s.Metrics.LastTickToTradeNs = tickToTrade
	s.Metrics.LastTradePnl = pnl
	s.Metrics.CumulativePnl += pnl
	s.Metrics.TradesCount++

	if pnl >= 0 {
		s.Metrics.GrossProfit += pnl
		s.Metrics.WinningTrades++
	} else {
		s.Metrics.GrossLoss += -pnl
		s.Metrics.LosingTrades++
	}

	if s.Metrics.TradesCount == 1 {
		s.Metrics.EquityHigh = s.Metrics.CumulativePnl
		s.Metrics.MaxDrawdown = 0
	} else {
		if s.Metrics.CumulativePnl > s.Metrics.EquityHigh {
			s.Metrics.EquityHigh = s.Metrics.CumulativePnl
		}
		dd := s.Metrics.CumulativePnl - s.Metrics.EquityHigh
		if dd < s.Metrics.MaxDrawdown {
			s.Metrics.MaxDrawdown = dd
		}
	}

	if s.Metrics.CumulativePnl < constants.PnLCircuitLimit {
		s.Safety.CircuitTripped = true
		s.Params.StrategyMode = constants.ModeOff
	}
}

// gate reports whether the evaluator may proceed to a trade decision.
func gate(s sharedstate.State, tNow int64) bool {
	if !control.Running() {
		return false
	}
	if s.Params.KillSwitch || s.Safety.CircuitTripped {
		return false
	}
	if s.Params.StrategyMode == constants.ModeOff {
		return false
	}
	exa := s.Quotes[sharedstate.Exa]
	exb := s.Quotes[sharedstate.Exb]
	if !exa.Connected || !exb.Connected {
		return false
	}
	staleNs := int64(constants.StaleThreshold)
	if tNow-exa.LastUpdateNs >= staleNs || tNow-exb.LastUpdateNs >= staleNs {
		return false
	}
	return true
}

// decide picks the first direction whose spread clears min_spread, favoring
// exa_to_exb on a tie.
func decide(spreadA, spreadB, minSpread float64) (direction, float64, bool) {
	if spreadA >= minSpread {
		return exaToExb, spreadA, true
	}
	if spreadB >= minSpread {
		return exbToExa, spreadB, true
	}
	return 0, 0, false
}

// tradeLegs holds the two legs of an emitted arbitrage trade.
type tradeLegs struct {
	dir                  direction
	legAExch, legBExch   string
	legAPrice, legBPrice float64
	spread               float64
}

func buildTrade(dir direction, s sharedstate.State, spread float64) tradeLegs {
	if dir == exaToExb {
		return tradeLegs{
			dir:      dir,
			legAExch: "EXA", legAPrice: s.Quotes[sharedstate.Exa].Ask,
			legBExch: "EXB", legBPrice: s.Quotes[sharedstate.Exb].Bid,
			spread: spread,
		}
	}
	return tradeLegs{
		dir:      dir,
		legAExch: "EXB", legAPrice: s.Quotes[sharedstate.Exb].Ask,
		legBExch: "EXA", legBPrice: s.Quotes[sharedstate.Exa].Bid,
		spread: spread,
	}
}

func (t tradeLegs) buyPrice() float64  { return t.legAPrice }
func (t tradeLegs) sellPrice() float64 { return t.legBPrice }

func (t tradeLegs) format(size float64, tSendNs int64) string {
	return fmt.Sprintf("TRADE %s %s BUY %.6f %s SELL %.6f %.6f %.6f %d",
		constants.StrategyTag,
		t.legAExch, t.legAPrice,
		t.legBExch, t.legBPrice,
		size, t.spread, tSendNs,
	)
}
