// ─────────────────────────────────────────────────────────────────────────────
// [Filename]: debug.go — cold-path logging for the feed receivers and evaluator
//
// Purpose:
//   - Reports socket errors, tick parse failures, sendto failures,
//     latency-log write failures and startup/shutdown progress, built with
//     plain string concatenation rather than fmt (each line still allocates
//     its message string).
//   - Every line is stamped with clock.NowNs() so a tailed log can be lined
//     up against the tick_to_trade timestamps in the latency CSV.
//
// Notes:
//   - It is the only sanctioned way to log from feed or strategy.
//
// ⚠️ Never invoke from the evaluator's per-tick hot path — reserved for the
// error branches only.
// ─────────────────────────────────────────────────────────────────────────────

package debug

import (
	"strconv"

	"github.com/pockettrader/core/clock"
	"github.com/pockettrader/core/utils"
)

// DropError logs a failed operation alongside its error, stamped with the
// same monotonic clock the evaluator uses for tick-to-trade accounting.
//
//go:nosplit
//go:inline
//go:registerparams
func DropError(prefix string, err error) {
	if err != nil {
		utils.PrintWarning(stamp() + prefix + ": " + err.Error() + "\n")
	} else {
		utils.PrintWarning(stamp() + prefix + "\n")
	}
}

// DropMessage logs a cold-path event: a dropped malformed tick, startup and
// shutdown progress.
//
//go:nosplit
//go:inline
//go:registerparams
func DropMessage(prefix, message string) {
	utils.PrintWarning(stamp() + prefix + ": " + message + "\n")
}

func stamp() string {
	return "[" + strconv.FormatInt(clock.NowNs(), 10) + "] "
}
