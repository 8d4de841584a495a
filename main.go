// ════════════════════════════════════════════════════════════════════════════════════════════════
// PocketTrader Core - Main Entry Point
// ────────────────────────────────────────────────────────────────────────────────────────────────
// Project: Two-Venue UDP Arbitrage Execution Core
// Component: Main Entry Point & System Orchestration
//
// Description:
//   System orchestration with phased initialization and clean separation of concerns.
//   Bootstrap → Shared State Attach → Worker Fan-Out → Metrics Server → Signal Handling
//
// Architecture:
//   - Phase 0: Flag/config resolution
//   - Phase 1: Shared-memory region attach and trade-address cell setup
//   - Phase 2: Feed receiver and evaluator worker startup
//   - Phase 3: Metrics endpoint and signal-driven graceful shutdown
// ════════════════════════════════════════════════════════════════════════════════════════════════

package main

import (
	"errors"
	"flag"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/pockettrader/core/config"
	"github.com/pockettrader/core/constants"
	"github.com/pockettrader/core/control"
	"github.com/pockettrader/core/debug"
	"github.com/pockettrader/core/feed"
	"github.com/pockettrader/core/opsmetrics"
	"github.com/pockettrader/core/sharedstate"
	"github.com/pockettrader/core/strategy"
	"github.com/pockettrader/core/tradeaddr"
)

// main orchestrates the complete process lifecycle in distinct phases.
func main() {
	// PHASE 0: Resolve configuration
	cfg, err := config.Parse(os.Args[1:])
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		debug.DropError("config parse", err)
		os.Exit(1)
	}

	debug.DropMessage("INIT", "Attaching shared state region")

	// PHASE 1: Attach (or create) the shared-memory region and the one-shot
	// trade-address resolver cell that both feed receivers arm.
	region, err := sharedstate.OpenOrCreate(constants.SharedRegionName)
	if err != nil {
		debug.DropError("shared region open", err)
		os.Exit(1)
	}
	defer region.Close()

	addr := &tradeaddr.Cell{}
	if cfg.TradeHost != "" {
		if ip := net.ParseIP(cfg.TradeHost); ip != nil {
			addr.Override(ip)
			region.WithLock(func(s *sharedstate.State) { s.TradeAddrReady = true })
		} else {
			debug.DropMessage("INIT", "ignoring unparsable --trade-host value "+cfg.TradeHost)
		}
	}

	latencyLog, err := strategy.OpenLatencyLog(constants.LatencyLogPath, constants.LatencyLogHeader)
	if err != nil {
		debug.DropError("latency log open", err)
		os.Exit(1)
	}
	defer latencyLog.Close()

	debug.DropMessage("READY", "Shared state attached")

	// PHASE 2: Start the two feed receivers and the strategy evaluator.
	exa := &feed.Receiver{Venue: sharedstate.Exa, Port: cfg.ExaPort, Region: region, TradeAddr: addr}
	exb := &feed.Receiver{Venue: sharedstate.Exb, Port: cfg.ExbPort, Region: region, TradeAddr: addr}

	if err := exa.Listen(); err != nil {
		debug.DropError("exa listen", err)
		os.Exit(1)
	}
	defer exa.Close()

	if err := exb.Listen(); err != nil {
		debug.DropError("exb listen", err)
		os.Exit(1)
	}
	defer exb.Close()

	eval := &strategy.Evaluator{
		Region:     region,
		TradeAddr:  addr,
		TradePort:  cfg.TradePort,
		LatencyLog: latencyLog,
	}
	if err := eval.Dial(); err != nil {
		debug.DropError("evaluator dial", err)
		os.Exit(1)
	}
	defer eval.Close()

	control.ShutdownWG.Add(3)
	go exa.Run()
	go exb.Run()
	go eval.Run()

	// PHASE 3: Expose process-health metrics and wait for shutdown.
	opsmetrics.Register()
	metricsSrv := &http.Server{Addr: ":9090", Handler: opsmetrics.Handler()}
	go func() {
		if err := metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			debug.DropError("metrics server", err)
		}
	}()

	setupSignalHandling(metricsSrv, exa, exb)

	debug.DropMessage("RUNNING", "Two-venue arbitrage core online")

	control.ShutdownWG.Wait()
	debug.DropMessage("SHUTDOWN", "All subsystems shutdown complete")
}

// setupSignalHandling configures graceful shutdown coordination. On SIGINT
// or SIGTERM it calls control.Shutdown, which every worker loop observes;
// main then waits on control.ShutdownWG. The feed
// receivers block in recvfrom, so their sockets are closed here to unblock
// them the moment a shutdown is requested rather than waiting for the next
// datagram to arrive.
func setupSignalHandling(metricsSrv *http.Server, exa, exb *feed.Receiver) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		debug.DropMessage("SIGNAL", "Received interrupt, shutting down...")

		control.Shutdown()
		_ = exa.Close()
		_ = exb.Close()
		_ = metricsSrv.Close()
	}()
}
