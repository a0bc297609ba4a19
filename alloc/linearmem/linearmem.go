// Package linearmem adapts a wazero linear memory into a single-buffer
// allocator, so a vector can live in the memory that backs a WebAssembly
// module.
//
// A linear memory is one contiguous region, so the allocator serves exactly
// one live buffer: the vector's header and payload. Growth is delegated to
// LinearMemory.Reallocate, which preserves contents and may or may not move
// the region depending on the memory implementation.
package linearmem

import (
	"errors"
	"unsafe"

	"github.com/tetratelabs/wazero/experimental"
)

var (
	// ErrInUse is returned by Allocate while a buffer is live.
	ErrInUse = errors.New("linearmem: buffer already allocated")
	// ErrClosed is returned after the buffer has been freed, since freeing
	// releases the linear memory itself.
	ErrClosed = errors.New("linearmem: memory freed")
	// ErrUnknownBuffer is returned for buffers not handed out by this allocator.
	ErrUnknownBuffer = errors.New("linearmem: unknown buffer")
	// ErrOutOfMemory is returned when the linear memory cannot grow.
	ErrOutOfMemory = errors.New("linearmem: out of memory")
	// ErrInvalidSize is returned for negative sizes.
	ErrInvalidSize = errors.New("linearmem: invalid size")
)

// Allocator hands out the region of one experimental.LinearMemory.
// It is not safe for concurrent use.
type Allocator struct {
	mem    experimental.LinearMemory
	base   *byte
	live   bool
	closed bool
}

// New wraps mem.
func New(mem experimental.LinearMemory) *Allocator {
	return &Allocator{mem: mem}
}

// FromMemoryAllocator creates a linear memory with ma, reserving capacity
// bytes up front and never growing past maxSize bytes.
func FromMemoryAllocator(ma experimental.MemoryAllocator, capacity, maxSize uint64) *Allocator {
	return New(ma.Allocate(capacity, maxSize))
}

// Allocate grows the linear memory to size bytes and returns it.
func (a *Allocator) Allocate(size int) ([]byte, error) {
	switch {
	case a.closed:
		return nil, ErrClosed
	case a.live:
		return nil, ErrInUse
	case size < 0:
		return nil, ErrInvalidSize
	}
	buf, err := a.resize(size)
	if err != nil {
		return nil, err
	}
	a.live = true
	return buf, nil
}

// Reallocate resizes the live buffer. The linear memory preserves its
// contents across the resize.
func (a *Allocator) Reallocate(buf []byte, oldSize, newSize int) ([]byte, error) {
	if err := a.owns(buf); err != nil {
		return nil, err
	}
	if oldSize < 0 || newSize < 0 || oldSize > len(buf) {
		return nil, ErrInvalidSize
	}
	return a.resize(newSize)
}

// Free releases the linear memory. The allocator cannot be used afterwards.
func (a *Allocator) Free(buf []byte) error {
	if err := a.owns(buf); err != nil {
		return err
	}
	a.mem.Free()
	a.live = false
	a.closed = true
	a.base = nil
	return nil
}

func (a *Allocator) owns(buf []byte) error {
	switch {
	case a.closed:
		return ErrClosed
	case !a.live || unsafe.SliceData(buf) != a.base:
		return ErrUnknownBuffer
	}
	return nil
}

func (a *Allocator) resize(size int) ([]byte, error) {
	if size == 0 {
		// An empty region has no address to identify it by.
		return nil, ErrInvalidSize
	}
	buf := a.mem.Reallocate(uint64(size))
	if buf == nil || len(buf) < size {
		return nil, ErrOutOfMemory
	}
	a.base = unsafe.SliceData(buf)
	return buf[:size], nil
}
