// ─────────────────────────────────────────────────────────────────────────────
// [Filename]: region.go — SharedRegion: mutex-guarded state + shm mirror
//
// Architecture:
//   - The three core goroutines (two feed receivers, one evaluator) all live
//     in a single Go process and share one address space, so the contended
//     path uses a plain sync.Mutex — cheaper and simpler than a process-shared
//     primitive when no cross-process writer exists.
//   - For the out-of-process observer contract, every WithLock
//     call also publishes the post-mutation State into a POSIX-named shared
//     memory mapping using the seqlock protocol as an
//     equivalent to a process-shared mutex: readers retry while the version
//     counter is odd or changes mid-read.
//   - The creator writes the magic word last; attaching processes spin-poll
//     it at 1ms granularity.
// ─────────────────────────────────────────────────────────────────────────────

package sharedstate

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"
	"unsafe"

	"github.com/pockettrader/core/constants"
)

const (
	magicOffset   = 0
	versionOffset = 4
	stateOffset   = 8
)

// RegionSize is the total byte footprint of the mapped shared-memory region:
// 4-byte magic, 4-byte seqlock version, then the State record.
var RegionSize = stateOffset + int(unsafe.Sizeof(State{}))

// Region is a handle to the shared market-state record. The zero value is
// not usable; construct one with OpenOrCreate.
type Region struct {
	mu    sync.Mutex
	state State

	mmap    []byte
	created bool
}

// OpenOrCreate maps the named POSIX shared-memory region, creating and
// zero-initializing it (then installing default parameters) if this is
// the first opener, or attaching to an existing mapping and spin-waiting for
// the magic word otherwise. The error is fatal to the caller.
func OpenOrCreate(name string) (*Region, error) {
	data, created, err := mapSharedRegion(name, RegionSize)
	if err != nil {
		return nil, fmt.Errorf("sharedstate: map %s: %w", name, err)
	}

	r := &Region{mmap: data, created: created}

	magicPtr := (*uint32)(unsafe.Pointer(&data[magicOffset]))

	if created {
		r.state.Params = DefaultParams()
		r.publishLocked()
		atomic.StoreUint32(magicPtr, constants.SharedRegionMagic)
		return r, nil
	}

	for atomic.LoadUint32(magicPtr) != constants.SharedRegionMagic {
		time.Sleep(constants.MagicPollInterval)
	}
	r.state = r.readMirror()
	return r, nil
}

// WithLock acquires the in-process mutex, invokes f with a mutable reference
// to the state, mirrors the result into shared memory, then releases. f must
// not block or perform I/O.
func (r *Region) WithLock(f func(*State)) {
	r.mu.Lock()
	f(&r.state)
	r.publishLocked()
	r.mu.Unlock()
}

// Snapshot returns a copy of the state under the lock. Used by the strategy
// evaluator: snapshot under lock, decide outside it.
func (r *Region) Snapshot() State {
	r.mu.Lock()
	s := r.state
	r.mu.Unlock()
	return s
}

// Close unmaps the shared memory region. Safe to call once during shutdown.
func (r *Region) Close() error {
	return unmapSharedRegion(r.mmap)
}

// publishLocked copies the current state into the mmap mirror using the
// seqlock write protocol. Caller must hold r.mu.
func (r *Region) publishLocked() {
	verPtr := (*uint32)(unsafe.Pointer(&r.mmap[versionOffset]))
	atomic.AddUint32(verPtr, 1) // now odd: write in progress
	mirror := (*State)(unsafe.Pointer(&r.mmap[stateOffset]))
	*mirror = r.state
	atomic.AddUint32(verPtr, 1) // now even: write complete
}

// readMirror performs a seqlock read retry loop against the shm mirror.
// Used only when attaching to a region another process created.
func (r *Region) readMirror() State {
	verPtr := (*uint32)(unsafe.Pointer(&r.mmap[versionOffset]))
	mirror := (*State)(unsafe.Pointer(&r.mmap[stateOffset]))
	for {
		v1 := atomic.LoadUint32(verPtr)
		if v1&1 == 1 {
			continue
		}
		s := *mirror
		v2 := atomic.LoadUint32(verPtr)
		if v1 == v2 {
			return s
		}
	}
}
