// ─────────────────────────────────────────────────────────────────────────────
// [Filename]: receiver.go — UDP ingress feed receiver (parameterized by venue)
//
// Architecture:
//   - One Receiver instance per venue (EXA, EXB), each bound to its own port.
//   - recvfrom blocks; EINTR retries, any other error terminates the loop
//     after logging.
//   - All shared-state mutation happens under Region.WithLock; the trade
//     address is armed outside that lock via its own mutex.
// ─────────────────────────────────────────────────────────────────────────────

package feed

import (
	"errors"
	"net"
	"syscall"

	"github.com/pockettrader/core/clock"
	"github.com/pockettrader/core/constants"
	"github.com/pockettrader/core/control"
	"github.com/pockettrader/core/debug"
	"github.com/pockettrader/core/opsmetrics"
	"github.com/pockettrader/core/sharedstate"
	"github.com/pockettrader/core/tradeaddr"
	"github.com/pockettrader/core/utils"
)

// Receiver consumes TICK datagrams for one venue and publishes them into
// the shared state record.
type Receiver struct {
	Venue     sharedstate.Venue
	Port      int
	Region    *sharedstate.Region
	TradeAddr *tradeaddr.Cell

	conn *net.UDPConn
}

// Listen binds the receiver's UDP socket. Failure here is fatal
// §4.1/§7 — the caller should exit nonzero.
func (r *Receiver) Listen() error {
	addr := &net.UDPAddr{Port: r.Port}
	conn, err := net.ListenUDP("udp", addr)
	if err != nil {
		return err
	}
	_ = conn.SetReadBuffer(1 << 20)
	r.conn = conn
	return nil
}

// Close releases the receiver's socket.
func (r *Receiver) Close() error {
	if r.conn == nil {
		return nil
	}
	return r.conn.Close()
}

// Run consumes datagrams until control.Running() is false or a fatal socket
// error occurs. Call ShutdownWG.Add(1) before starting this in a goroutine.
func (r *Receiver) Run() {
	defer control.ShutdownWG.Done()

	buf := make([]byte, constants.MaxDatagramSize)
	var fields [8][]byte

	for control.Running() {
		n, srcAddr, err := r.conn.ReadFromUDP(buf)
		if err != nil {
			if errors.Is(err, syscall.EINTR) {
				continue
			}
			if !control.Running() {
				return
			}
			debug.DropError(r.Venue.String()+" feed recvfrom", err)
			return
		}
		if n == 0 {
			continue
		}

		if r.handleDatagram(buf[:n], fields[:]) {
			r.armTradeAddr(srcAddr)
		}
	}
}

// handleDatagram parses and publishes one tick, reporting whether it was
// well-formed. A malformed datagram is dropped with no side effects — in
// particular Run must not treat its source as a candidate trade address.
func (r *Receiver) handleDatagram(line []byte, fields [][]byte) bool {
	venue := r.Venue.String()
	opsmetrics.PacketsReceived.WithLabelValues(venue).Inc()

	n := utils.SplitFields(line, fields)
	if n < 7 {
		opsmetrics.PacketsDropped.WithLabelValues(venue).Inc()
		debug.DropMessage(venue+" tick parse", "fewer than six fields")
		return false
	}

	// Fields: TICK <exch> <symbol> <bid> <ask> <seq> <ts_ns>
	// fields[0] is the "TICK" tag and is otherwise unused here.
	bid, ok1 := utils.ParseFloatASCII(fields[3])
	ask, ok2 := utils.ParseFloatASCII(fields[4])
	seq, ok3 := utils.ParseUint64ASCII(fields[5])
	if !ok1 || !ok2 || !ok3 {
		opsmetrics.PacketsDropped.WithLabelValues(venue).Inc()
		debug.DropMessage(venue+" tick parse", "malformed numeric field")
		return false
	}

	tRecv := clock.NowNs()

	r.Region.WithLock(func(s *sharedstate.State) {
		q := &s.Quotes[r.Venue]
		lat := &s.Latency[r.Venue]

		if q.LastUpdateNs > 0 && tRecv > q.LastUpdateNs {
			interval := tRecv - q.LastUpdateNs
			lat.LastTickIntervalNs = interval
			if lat.AvgTickIntervalNs == 0 {
				lat.AvgTickIntervalNs = interval
			} else {
				lat.AvgTickIntervalNs = int64((1-constants.LatencyEMAAlpha)*float64(lat.AvgTickIntervalNs) + constants.LatencyEMAAlpha*float64(interval))
			}
		}

		q.Bid = bid
		q.Ask = ask
		q.Seq = seq
		q.LastUpdateNs = tRecv
		q.Connected = true
	})

	return true
}

func (r *Receiver) armTradeAddr(addr *net.UDPAddr) {
	if _, armed := r.TradeAddr.Snapshot(); armed {
		return
	}
	r.TradeAddr.Arm(addr.IP)
	r.Region.WithLock(func(s *sharedstate.State) {
		s.TradeAddrReady = true
	})
}
