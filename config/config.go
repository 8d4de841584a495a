// ─────────────────────────────────────────────────────────────────────────────
// [Filename]: config.go — CLI flags and optional JSON config overlay
//
// Notes:
//   - Precedence is fixed: built-in defaults, then the --config overlay,
//     then flags explicitly passed on the command line, which override both.
// ─────────────────────────────────────────────────────────────────────────────

package config

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/sugawarayuuta/sonnet"

	"github.com/pockettrader/core/constants"
)

// Config is the fully resolved set of tunables the core starts with.
type Config struct {
	ExaPort   int    `json:"exa_port"`
	ExbPort   int    `json:"exb_port"`
	TradePort int    `json:"trade_port"`
	TradeHost string `json:"trade_host"`
}

// Default returns the built-in defaults.
func Default() Config {
	return Config{
		ExaPort:   constants.DefaultExaPort,
		ExbPort:   constants.DefaultExbPort,
		TradePort: constants.DefaultTradePort,
	}
}

// Parse parses CLI flags (and an optional --config JSON overlay) out of
// args, starting from the built-in defaults. Unknown flags are ignored.
func Parse(args []string) (Config, error) {
	cfg := Default()

	fs := flag.NewFlagSet("pockettradercore", flag.ContinueOnError)
	fs.Usage = func() { printUsage(fs) }

	exaPort := fs.Int("exa-port", cfg.ExaPort, "UDP port for the EXA feed receiver")
	exbPort := fs.Int("exb-port", cfg.ExbPort, "UDP port for the EXB feed receiver")
	tradePort := fs.Int("trade-port", cfg.TradePort, "UDP port trade datagrams are sent to")
	tradeHost := fs.String("trade-host", "", "Override the inferred trade destination IP")
	configPath := fs.String("config", "", "Path to a JSON config overlay")

	// flag.ContinueOnError still reports unrecognized flags as an error;
	// Unknown flags are ignored, so we pre-filter args to only
	// those this flag set actually declares before parsing.
	filtered := filterKnownFlags(fs, args)
	if err := fs.Parse(filtered); err != nil {
		return cfg, err
	}

	if *configPath != "" {
		overlay, err := loadOverlay(*configPath)
		if err != nil {
			return cfg, fmt.Errorf("config: %w", err)
		}
		cfg = overlay
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "exa-port":
			cfg.ExaPort = *exaPort
		case "exb-port":
			cfg.ExbPort = *exbPort
		case "trade-port":
			cfg.TradePort = *tradePort
		case "trade-host":
			cfg.TradeHost = *tradeHost
		}
	})

	return cfg, nil
}

func loadOverlay(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := sonnet.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// filterKnownFlags drops any -flag/--flag token fs does not declare, so
// unrecognized flags are silently ignored rather than rejected. A known
// flag's separate "--flag value" argument is kept alongside it (unless the
// flag is boolean, which flag.Parse never expects a following value for) —
// dropping tokens independently would strip a legitimate value that happens
// not to start with '-', or worse, let fs.Parse swallow the next surviving
// flag as this one's value.
func filterKnownFlags(fs *flag.FlagSet, args []string) []string {
	known := map[string]bool{}
	fs.VisitAll(func(f *flag.Flag) { known[f.Name] = true })

	out := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		a := args[i]
		if a == "-h" || a == "--help" {
			out = append(out, a)
			continue
		}
		if len(a) == 0 || a[0] != '-' {
			// A bare value with no preceding flag token to attach to; only
			// reachable here if it trailed an unknown flag, so drop it too.
			continue
		}

		name := strings.TrimLeft(a, "-")
		attached := false
		if eq := strings.IndexByte(name, '='); eq >= 0 {
			name = name[:eq]
			attached = true
		}
		if !known[name] {
			continue
		}

		out = append(out, a)
		if attached || isBoolFlag(fs, name) {
			continue
		}
		if i+1 < len(args) {
			i++
			out = append(out, args[i])
		}
	}
	return out
}

// isBoolFlag reports whether the named flag takes no following value, per
// the same interface flag.FlagSet.Parse itself checks internally.
func isBoolFlag(fs *flag.FlagSet, name string) bool {
	f := fs.Lookup(name)
	if f == nil {
		return false
	}
	bf, ok := f.Value.(interface{ IsBoolFlag() bool })
	return ok && bf.IsBoolFlag()
}

func printUsage(fs *flag.FlagSet) {
	fmt.Fprintln(os.Stderr, "pockettradercore — two-venue UDP arbitrage execution core")
	fs.PrintDefaults()
}
