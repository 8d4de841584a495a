//go:build linux
// +build linux

// ─────────────────────────────────────────────────────────────────────────────
// [Filename]: region_linux.go — POSIX named shared memory backing (Linux)
//
// Notes:
//   - Linux exposes POSIX shared-memory objects as ordinary files under
//     /dev/shm (tmpfs). Opening/creating a file there and mmap'ing it is
//     behaviorally equivalent to shm_open+mmap without requiring cgo.
// ─────────────────────────────────────────────────────────────────────────────

package sharedstate

import (
	"os"
	"strings"

	"golang.org/x/sys/unix"
)

const shmDir = "/dev/shm"

func shmPath(name string) string {
	return shmDir + "/" + strings.TrimPrefix(name, "/")
}

// mapSharedRegion opens or creates the named shared-memory object and maps
// it into the process's address space. The boolean result reports whether
// this call created the backing file (O_EXCL succeeded).
func mapSharedRegion(name string, size int) ([]byte, bool, error) {
	path := shmPath(name)

	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_EXCL, 0600)
	created := err == nil
	if os.IsExist(err) {
		f, err = os.OpenFile(path, os.O_RDWR, 0600)
	}
	if err != nil {
		return nil, false, err
	}
	defer f.Close()

	if created {
		if err := f.Truncate(int64(size)); err != nil {
			return nil, false, err
		}
	}

	data, err := unix.Mmap(int(f.Fd()), 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		return nil, false, err
	}
	return data, created, nil
}

func unmapSharedRegion(data []byte) error {
	return unix.Munmap(data)
}
