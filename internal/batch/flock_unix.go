//go:build !windows

package batch

import (
	"golang.org/x/sys/unix"
)

// flockExclusive acquires an exclusive lock on the file descriptor.
func flockExclusive(fd uintptr) error {
	return unix.Flock(int(fd), unix.LOCK_EX)
}

// flockUnlock releases the lock on the file descriptor.
func flockUnlock(fd uintptr) error {
	return unix.Flock(int(fd), unix.LOCK_UN)
}
