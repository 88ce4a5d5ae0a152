// Package nativemem provides fixed-size typed arrays backed by memory that
// lives outside the Go heap. The GC never scans or moves it, so the renderer
// can hand slices of it straight to the driver. Every Array has exactly one
// owner and must be freed exactly once.
package nativemem

import (
	"errors"
	"fmt"
	"unsafe"
)

// ErrFreed is returned when an Array is freed twice.
var ErrFreed = errors.New("nativemem: array already freed")

// Element is the set of element types an Array can hold.
type Element interface {
	~float32 | ~uint32
}

// noCopy makes `go vet` flag accidental copies of an Array value.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}

// Array is a fixed-length, off-heap array of T.
type Array[T Element] struct {
	_    noCopy
	raw  []byte
	data []T
}

// allocator and release are swapped in tests to simulate allocation failure.
var (
	allocate = platformAlloc
	release  = platformFree
)

// New allocates an array of count elements. The memory is zeroed.
func New[T Element](count int) (*Array[T], error) {
	if count <= 0 {
		return nil, fmt.Errorf("nativemem: invalid element count %d", count)
	}
	var zero T
	size := count * int(unsafe.Sizeof(zero))
	raw, err := allocate(size)
	if err != nil {
		return nil, fmt.Errorf("nativemem: allocating %d bytes: %w", size, err)
	}
	if len(raw) < size {
		_ = release(raw)
		return nil, fmt.Errorf("nativemem: short allocation (%d < %d bytes)", len(raw), size)
	}
	return &Array[T]{
		raw:  raw,
		data: unsafe.Slice((*T)(unsafe.Pointer(&raw[0])), count),
	}, nil
}

// NewWithRetry calls New up to attempts times. onRetry, if non-nil, is told
// about every failed attempt before the next one starts.
func NewWithRetry[T Element](count, attempts int, onRetry func(attempt int, err error)) (*Array[T], error) {
	if attempts < 1 {
		attempts = 1
	}
	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		a, err := New[T](count)
		if err == nil {
			return a, nil
		}
		lastErr = err
		if onRetry != nil && attempt < attempts {
			onRetry(attempt, err)
		}
	}
	return nil, fmt.Errorf("nativemem: giving up after %d attempts: %w", attempts, lastErr)
}

// Len returns the element count. It is zero once the array is freed.
func (a *Array[T]) Len() int {
	return len(a.data)
}

// Slice returns the whole array. The slice must not outlive the array.
func (a *Array[T]) Slice() []T {
	if a.data == nil {
		panic("nativemem: use of freed array")
	}
	return a.data
}

// Bytes returns a byte view of the first n elements.
func (a *Array[T]) Bytes(n int) []byte {
	if a.data == nil {
		panic("nativemem: use of freed array")
	}
	if n < 0 || n > len(a.data) {
		panic(fmt.Sprintf("nativemem: byte view of %d elements out of range [0,%d]", n, len(a.data)))
	}
	var zero T
	return a.raw[:n*int(unsafe.Sizeof(zero))]
}

// Free returns the memory to the system. Calling Free twice returns ErrFreed.
func (a *Array[T]) Free() error {
	if a.raw == nil {
		return ErrFreed
	}
	raw := a.raw
	a.raw = nil
	a.data = nil
	return release(raw)
}

// Freed reports whether Free has been called.
func (a *Array[T]) Freed() bool {
	return a.raw == nil
}
