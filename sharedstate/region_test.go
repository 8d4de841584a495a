package sharedstate

import (
	"fmt"
	"os"
	"testing"

	"github.com/pockettrader/core/constants"
)

func freshRegionName(t *testing.T) string {
	name := fmt.Sprintf("/pockettrader_test_%d_%s", os.Getpid(), t.Name())
	t.Cleanup(func() { os.Remove(shmPath(name)) })
	return name
}

func TestOpenOrCreate_InstallsDefaults(t *testing.T) {
	r, err := OpenOrCreate(freshRegionName(t))
	if err != nil {
		t.Fatalf("OpenOrCreate: %v", err)
	}
	defer r.Close()

	snap := r.Snapshot()
	if snap.Params.MinSpread != 0.10 {
		t.Errorf("MinSpread = %v, want 0.10", snap.Params.MinSpread)
	}
	if snap.Params.StrategyMode != constants.ModePaper {
		t.Errorf("StrategyMode = %v, want ModePaper", snap.Params.StrategyMode)
	}
	if snap.Params.TradeSize != 0.01 {
		t.Errorf("TradeSize = %v, want 0.01", snap.Params.TradeSize)
	}
}

func TestWithLock_MutatesAndPersists(t *testing.T) {
	r, err := OpenOrCreate(freshRegionName(t))
	if err != nil {
		t.Fatalf("OpenOrCreate: %v", err)
	}
	defer r.Close()

	r.WithLock(func(s *State) {
		s.Quotes[Exa].Bid = 100.00
		s.Quotes[Exa].Ask = 100.05
		s.Quotes[Exa].Connected = true
	})

	snap := r.Snapshot()
	if snap.Quotes[Exa].Bid != 100.00 || snap.Quotes[Exa].Ask != 100.05 {
		t.Fatalf("quote not persisted: %+v", snap.Quotes[Exa])
	}
	if !snap.Quotes[Exa].Connected {
		t.Fatal("Connected should be true")
	}
}

func TestWithLock_MirrorsIntoSharedMemory(t *testing.T) {
	name := freshRegionName(t)
	r, err := OpenOrCreate(name)
	if err != nil {
		t.Fatalf("OpenOrCreate: %v", err)
	}
	defer r.Close()

	r.WithLock(func(s *State) {
		s.Metrics.TradesCount = 42
	})

	mirror := r.readMirror()
	if mirror.Metrics.TradesCount != 42 {
		t.Fatalf("mirror TradesCount = %d, want 42", mirror.Metrics.TradesCount)
	}
}

func TestOpenOrCreate_AttachSeesExistingState(t *testing.T) {
	name := freshRegionName(t)

	creator, err := OpenOrCreate(name)
	if err != nil {
		t.Fatalf("OpenOrCreate (creator): %v", err)
	}
	defer creator.Close()

	creator.WithLock(func(s *State) {
		s.Params.MinSpread = 0.25
	})

	attacher, err := OpenOrCreate(name)
	if err != nil {
		t.Fatalf("OpenOrCreate (attacher): %v", err)
	}
	defer attacher.Close()

	snap := attacher.Snapshot()
	if snap.Params.MinSpread != 0.25 {
		t.Errorf("attacher MinSpread = %v, want 0.25", snap.Params.MinSpread)
	}
}

func TestTradesCountInvariant(t *testing.T) {
	r, err := OpenOrCreate(freshRegionName(t))
	if err != nil {
		t.Fatalf("OpenOrCreate: %v", err)
	}
	defer r.Close()

	r.WithLock(func(s *State) {
		s.Metrics.WinningTrades = 3
		s.Metrics.LosingTrades = 2
		s.Metrics.TradesCount = s.Metrics.WinningTrades + s.Metrics.LosingTrades
	})

	snap := r.Snapshot()
	if snap.Metrics.TradesCount != snap.Metrics.WinningTrades+snap.Metrics.LosingTrades {
		t.Fatal("trades_count invariant violated")
	}
}
