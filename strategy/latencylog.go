// ─────────────────────────────────────────────────────────────────────────────
// [Filename]: latencylog.go — CSV latency log, one row per emitted trade
//
// Notes:
//   - encoding/csv is stdlib; none of the reference repos carry a third-party
//     CSV writer, and a hand-rolled one would just reimplement quoting rules
//     the standard library already gets right. See DESIGN.md.
// ─────────────────────────────────────────────────────────────────────────────

package strategy

import (
	"encoding/csv"
	"os"
	"strconv"
)

// LatencyLog appends one row per emitted trade to a CSV file, flushing after
// every row so an external tail -f observer sees rows as they land.
type LatencyLog struct {
	f *os.File
	w *csv.Writer
}

// OpenLatencyLog truncates path and writes a fresh header row, so each
// process run starts its own latency log rather than accumulating rows
// across restarts.
func OpenLatencyLog(path, header string) (*LatencyLog, error) {
	f, err := os.OpenFile(path, os.O_TRUNC|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, err
	}

	if _, err := f.WriteString(header); err != nil {
		f.Close()
		return nil, err
	}

	return &LatencyLog{f: f, w: csv.NewWriter(f)}, nil
}

// Append writes one latency sample row and flushes immediately.
func (l *LatencyLog) Append(tNowNs, tickToTradeNs, avgExaNs, avgExbNs int64) error {
	row := []string{
		strconv.FormatInt(tNowNs, 10),
		strconv.FormatInt(tickToTradeNs, 10),
		strconv.FormatInt(avgExaNs, 10),
		strconv.FormatInt(avgExbNs, 10),
	}
	if err := l.w.Write(row); err != nil {
		return err
	}
	l.w.Flush()
	return l.w.Error()
}

// Close flushes and closes the underlying file.
func (l *LatencyLog) Close() error {
	l.w.Flush()
	return l.f.Close()
}
