// ─────────────────────────────────────────────────────────────────────────────
// [Filename]: clock.go — monotonic nanosecond clock
//
// Notes:
//   - runtime.nanotime is the same clock source time.Now() reads internally,
//     exposed directly to avoid carrying a full time.Time (wall + monotonic
//     reading + location) through the hot path for a single int64 delta.
// ─────────────────────────────────────────────────────────────────────────────

package clock

import _ "unsafe" // for go:linkname

// NowNs returns the current monotonic time in nanoseconds. Values returned
// by NowNs are only meaningful relative to each other within a single
// process run — never persist or compare them across restarts.
//
//go:linkname NowNs runtime.nanotime
func NowNs() int64
