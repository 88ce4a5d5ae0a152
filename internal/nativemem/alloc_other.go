//go:build !(linux || darwin || freebsd || netbsd || openbsd)

package nativemem

// Platforms without mmap fall back to a pinned heap slice; the ownership
// rules are unchanged.
func platformAlloc(size int) ([]byte, error) {
	return make([]byte, size), nil
}

func platformFree(b []byte) error {
	return nil
}
