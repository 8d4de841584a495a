//go:build darwin
// +build darwin

// ─────────────────────────────────────────────────────────────────────────────
// [Filename]: region_darwin.go — POSIX named shared memory backing (macOS)
//
// Notes:
//   - macOS has no tmpfs-backed /dev/shm. We fall back to a regular file
//     under os.TempDir(), which mmap honors identically for our purposes:
//     a named, persistent, shareable mapping across processes.
// ─────────────────────────────────────────────────────────────────────────────

package sharedstate

import (
	"os"
	"strings"

	"golang.org/x/sys/unix"
)

func shmPath(name string) string {
	return os.TempDir() + "/" + strings.TrimPrefix(name, "/")
}

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
