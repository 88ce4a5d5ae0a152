//go:build linux || darwin || freebsd || netbsd || openbsd

package nativemem

import "golang.org/x/sys/unix"

// platformAlloc maps anonymous private pages. The kernel hands them out zeroed.
func platformAlloc(size int) ([]byte, error) {
	return unix.Mmap(-1, 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_ANON|unix.MAP_PRIVATE)
}

func platformFree(b []byte) error {
	return unix.Munmap(b)
}
