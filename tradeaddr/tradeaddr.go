// ─────────────────────────────────────────────────────────────────────────────
// [Filename]: tradeaddr.go — one-shot trade destination resolver
//
// Notes:
//   - Guarded by its own mutex, independent of the shared-state mutex
//     (sharedstate.Region). The two are never held nested.
//   - Arm is one-shot: the first feed receiver to parse a well-formed
//     datagram wins; later Arm calls are no-ops. Override (used for
//     --trade-host) sets the address unconditionally.
// ─────────────────────────────────────────────────────────────────────────────

package tradeaddr

import (
	"net"
	"sync"
)

// Cell is the one-shot trade destination cell.
type Cell struct {
	mu    sync.Mutex
	ip    net.IP
	armed bool
}

// Arm records ip as the trade destination if the cell has not already been
// armed. Subsequent calls are no-ops — a one-shot contract.
func (c *Cell) Arm(ip net.IP) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.armed {
		return
	}
	c.ip = append(net.IP(nil), ip...)
	c.armed = true
}

// Override forcibly sets the trade destination and arms the cell,
// regardless of prior state. Used by the optional --trade-host CLI flag
// to bypass IP inference entirely.
func (c *Cell) Override(ip net.IP) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ip = append(net.IP(nil), ip...)
	c.armed = true
}

// Snapshot atomically copies out the current address and armed flag.
func (c *Cell) Snapshot() (net.IP, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.armed {
		return nil, false
	}
	return append(net.IP(nil), c.ip...), true
}
