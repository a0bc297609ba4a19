// Package heap provides an allocator backed by the Go heap.
package heap

import (
	"errors"
	"unsafe"
)

// ErrInvalidSize is returned for negative sizes.
var ErrInvalidSize = errors.New("heap: invalid size")

// Allocator hands out 8-byte aligned buffers from the Go heap. Free drops the
// reference and leaves reclamation to the garbage collector.
//
// Allocator is stateless and safe for concurrent use.
type Allocator struct{}

// New returns a heap allocator.
func New() *Allocator {
	return &Allocator{}
}

// Allocate returns a zeroed buffer of size bytes.
func (Allocator) Allocate(size int) ([]byte, error) {
	if size < 0 {
		return nil, ErrInvalidSize
	}
	return AlignedBytes(size), nil
}

// Reallocate returns a new buffer of newSize bytes holding the first
// min(oldSize, newSize) bytes of buf. When newSize fits within cap(buf) the
// buffer is resliced in place.
func (Allocator) Reallocate(buf []byte, oldSize, newSize int) ([]byte, error) {
	if oldSize < 0 || newSize < 0 || oldSize > len(buf) {
		return nil, ErrInvalidSize
	}
	if newSize <= cap(buf) {
		return buf[:newSize], nil
	}
	out := AlignedBytes(newSize)
	copy(out, buf[:min(oldSize, newSize)])
	return out, nil
}

// Free is a no-op; the buffer becomes garbage once unreferenced.
func (Allocator) Free([]byte) error {
	return nil
}

// AlignedBytes returns a zeroed byte slice of n bytes whose base is 8-byte
// aligned. It is backed by a []uint64 so the alignment holds on every
// platform.
func AlignedBytes(n int) []byte {
	if n <= 0 {
		return []byte{}
	}
	words := make([]uint64, (n+7)/8)
	return unsafe.Slice((*byte)(unsafe.Pointer(unsafe.SliceData(words))), len(words)*8)[:n]
}
