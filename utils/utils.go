// ─────────────────────────────────────────────────────────────────────────────
// [Filename]: utils.go — zero-alloc helpers shared by feed parsing & logging
//
// Notes:
//   - Avoids fmt on hot paths to keep the feed receivers allocation free;
//     the only strconv use there is ParseFloatASCII's strconv.ParseFloat,
//     which does not allocate on success. Cold paths (CSV, config) use the
//     standard library freely.
// ─────────────────────────────────────────────────────────────────────────────

package utils

import (
	"strconv"
	"syscall"
	"unsafe"
)

///////////////////////////////////////////////////////////////////////////////
// Zero-alloc casts
///////////////////////////////////////////////////////////////////////////////

// B2s views a feed receiver's read buffer as a string without copying, so
// ParseFloatASCII can hand a datagram's ASCII field to strconv in place. The returned string aliases b; it must not outlive the buffer or
// survive the next ReadFromUDP into it.
//
//go:nosplit
//go:inline
func B2s(b []byte) string {
	return unsafe.String(unsafe.SliceData(b), len(b))
}

///////////////////////////////////////////////////////////////////////////////
// ASCII tick field scanning — whitespace-separated token splitting
///////////////////////////////////////////////////////////////////////////////

// SplitFields splits b on ASCII whitespace into at most len(out) tokens, writing
// the results into out and returning the number of fields found. It does
// not allocate: each returned slice aliases b.
//
//go:nosplit
//go:inline
func SplitFields(b []byte, out [][]byte) int {
	n := 0
	i := 0
	for n < len(out) {
		for i < len(b) && isSpace(b[i]) {
			i++
		}
		if i >= len(b) {
			break
		}
		start := i
		for i < len(b) && !isSpace(b[i]) {
			i++
		}
		out[n] = b[start:i]
		n++
	}
	return n
}

//go:nosplit
//go:inline
func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\n'
}

// ParseUint64ASCII parses an unsigned decimal integer without allocation.
// Returns (0, false) on empty input or a non-digit byte.
//
//go:nosplit
//go:inline
func ParseUint64ASCII(b []byte) (uint64, bool) {
	if len(b) == 0 {
		return 0, false
	}
	var v uint64
	for _, c := range b {
		if c < '0' || c > '9' {
			return 0, false
		}
		v = v*10 + uint64(c-'0')
	}
	return v, true
}

// ParseFloatASCII parses a decimal float using the standard library parser.
// Kept as a thin wrapper (rather than a hand-rolled scanner) because prices
// may carry exponents/signs the wire format does not otherwise constrain,
// and correctness here matters more than the last few nanoseconds.
//
//go:inline
func ParseFloatASCII(b []byte) (float64, bool) {
	v, err := strconv.ParseFloat(B2s(b), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

///////////////////////////////////////////////////////////////////////////////
// Cold-path logging primitive
///////////////////////////////////////////////////////////////////////////////

// PrintWarning writes msg directly to stderr (fd 2) via a raw syscall,
// bypassing os.Stderr's buffering and any fmt allocation. Used exclusively
// by the debug package's cold-path loggers.
//
//go:nosplit
//go:inline
func PrintWarning(msg string) {
	b := unsafe.Slice(unsafe.StringData(msg), len(msg))
	syscall.Write(2, b)
}
