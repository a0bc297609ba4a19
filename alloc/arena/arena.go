// Package arena implements a chunked bump allocator (memory arena) that can
// back dynarr vectors.
// Typical usage: create one arena per request, build vectors from it, then
// Reset() at the end of the request for O(1) cleanup.
package arena

import (
	"errors"
	"unsafe"

	"github.com/pavanmanishd/dynarr/alloc/heap"
)

// DefaultChunkSize is the default chunk size for new arenas (64 KiB).
const DefaultChunkSize = 1 << 16

// align is the alignment of every allocation.
const align = 8

var (
	// ErrReleased is returned by allocator calls after Release.
	ErrReleased = errors.New("arena: use after Release()")
	// ErrInvalidSize is returned for negative sizes.
	ErrInvalidSize = errors.New("arena: invalid size")
)

// chunk represents a single memory chunk within an arena.
type chunk struct {
	buf    []byte  // backing memory
	offset uintptr // allocation offset within buf
	last   uintptr // start of the most recent allocation
}

// Arena is a chunked bump allocator. Not goroutine-safe by default.
// Use SafeArena for concurrent access.
//
// Individual buffers are not reclaimed by Free unless they are the most
// recent allocation of the current chunk; Reset reclaims everything and
// invalidates every vector built on the arena.
type Arena struct {
	chunks       []chunk
	chunkSize    int
	currentChunk *chunk
	cur          int // index of currentChunk
	inPlace      int
	copied       int
}

// NewArena creates a new Arena with the specified chunk size.
// If chunkSize <= 0, DefaultChunkSize is used.
func NewArena(chunkSize int) *Arena {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	a := &Arena{chunkSize: chunkSize}
	a.grow(chunkSize)
	return a
}

// allocBytes returns a []byte slice pointing into the arena's backing chunk.
// Returns nil if n <= 0.
func (a *Arena) allocBytes(n int) []byte {
	if n <= 0 {
		return nil
	}

	// Fast path: use cached current chunk
	c := a.currentChunk
	if c != nil {
		off := alignUp(c.offset)
		if off+uintptr(n) <= uintptr(len(c.buf)) {
			return c.take(off, n)
		}
	}

	// Slow path: next chunk kept by Reset, or a new one
	return a.allocBytesSlow(n)
}

// allocBytesSlow handles allocation when fast path fails
func (a *Arena) allocBytesSlow(n int) []byte {
	a.panicIfReleased()
	if !a.advance(n) {
		a.grow(n)
	}
	c := a.currentChunk
	return c.take(alignUp(c.offset), n)
}

// advance moves to the first chunk after the current one with room for n
// bytes. Chunks past the current one only exist after Reset.
func (a *Arena) advance(n int) bool {
	for i := a.cur + 1; i < len(a.chunks); i++ {
		c := &a.chunks[i]
		if alignUp(c.offset)+uintptr(n) <= uintptr(len(c.buf)) {
			a.cur = i
			a.currentChunk = c
			return true
		}
	}
	return false
}

func (c *chunk) take(off uintptr, n int) []byte {
	c.last = off
	c.offset = off + uintptr(n)
	return unsafe.Slice((*byte)(unsafe.Pointer(&c.buf[off])), n)
}

// tail reports whether buf is the most recent allocation of c and returns its
// offset.
func (c *chunk) tail(buf []byte) (uintptr, bool) {
	if c == nil || len(c.buf) == 0 || cap(buf) == 0 {
		return 0, false
	}
	base := uintptr(unsafe.Pointer(unsafe.SliceData(c.buf)))
	p := uintptr(unsafe.Pointer(unsafe.SliceData(buf)))
	if p < base || p >= base+uintptr(len(c.buf)) {
		return 0, false
	}
	off := p - base
	return off, off == c.last && off+uintptr(len(buf)) == c.offset
}

// EnsureCapacity ensures the current chunk has at least n free bytes,
// moving to a kept chunk or growing the arena if it does not. Calling it
// with the final byte size of a vector before building it lets every
// Reallocate extend the vector in place.
func (a *Arena) EnsureCapacity(n int) {
	a.panicIfReleased()
	c := a.currentChunk
	if c == nil || uintptr(n)+alignUp(c.offset) > uintptr(len(c.buf)) {
		if !a.advance(n) {
			a.grow(n)
		}
	}
}

// Reset resets allocation offsets to zero but keeps allocated chunks for reuse.
// Vectors allocated from the arena must not be used afterwards.
func (a *Arena) Reset() {
	a.panicIfReleased()
	for i := range a.chunks {
		a.chunks[i].offset = 0
		a.chunks[i].last = 0
	}
	if len(a.chunks) > 0 {
		a.cur = 0
		a.currentChunk = &a.chunks[0]
	}
}

// Release drops all chunks and makes the arena unusable.
// Any subsequent EnsureCapacity or Reset will panic and allocator
// calls return ErrReleased.
func (a *Arena) Release() {
	a.chunks = nil
	a.currentChunk = nil
	a.cur = 0
}

// Allocate implements dynarr.Allocator.
func (a *Arena) Allocate(size int) ([]byte, error) {
	if a.chunks == nil {
		return nil, ErrReleased
	}
	if size < 0 {
		return nil, ErrInvalidSize
	}
	if size == 0 {
		return []byte{}, nil
	}
	return a.allocBytes(size), nil
}

// Reallocate implements dynarr.Allocator. A buffer that is the most recent
// allocation of the current chunk grows in place when the chunk has room;
// otherwise the contents are copied to a fresh allocation.
func (a *Arena) Reallocate(buf []byte, oldSize, newSize int) ([]byte, error) {
	if a.chunks == nil {
		return nil, ErrReleased
	}
	if oldSize < 0 || newSize < 0 || oldSize > len(buf) {
		return nil, ErrInvalidSize
	}
	c := a.currentChunk
	if off, ok := c.tail(buf); ok && newSize > 0 && off+uintptr(newSize) <= uintptr(len(c.buf)) {
		a.inPlace++
		return c.take(off, newSize), nil
	}
	out, err := a.Allocate(newSize)
	if err != nil {
		return nil, err
	}
	copy(out, buf[:min(oldSize, newSize)])
	a.copied++
	return out, nil
}

// Free implements dynarr.Allocator. Only the most recent allocation of the
// current chunk is reclaimed; other buffers are reclaimed by Reset.
func (a *Arena) Free(buf []byte) error {
	if a.chunks == nil {
		return ErrReleased
	}
	c := a.currentChunk
	if off, ok := c.tail(buf); ok {
		// The allocation before it is not tracked, so no buffer is the
		// tail until the next take.
		c.offset = off
		c.last = off
	}
	return nil
}

// grow appends a new chunk of at least min bytes.
func (a *Arena) grow(min int) {
	size := a.chunkSize
	if min > size {
		size = min
	}
	a.chunks = append(a.chunks, chunk{buf: heap.AlignedBytes(size)})
	a.cur = len(a.chunks) - 1
	a.currentChunk = &a.chunks[a.cur]
}

// panicIfReleased panics if the arena has been released.
func (a *Arena) panicIfReleased() {
	if a.chunks == nil {
		panic("arena: use after Release()")
	}
}

// alignUp aligns the offset up to the allocation alignment.
func alignUp(off uintptr) uintptr {
	const mask = align - 1
	return (off + mask) &^ mask
}
