// Package mmap provides an allocator backed by anonymous memory mappings.
//
// Buffers live outside the Go heap, so vectors built on this allocator add no
// garbage collector pressure however large they grow. Every buffer is rounded
// up to whole pages; growth within the mapped pages happens in place.
package mmap

import (
	"errors"
	"fmt"
	"os"
	"sync"
)

var (
	// ErrInvalidSize is returned for negative sizes.
	ErrInvalidSize = errors.New("mmap: invalid size")
	// ErrUnknownBuffer is returned when a buffer was not mapped by this allocator.
	ErrUnknownBuffer = errors.New("mmap: unknown buffer")
)

var pageSize = os.Getpagesize()

// unmap is replaced in tests.
var unmap = osUnmap

// Allocator maps one anonymous region per buffer.
//
// Allocator is safe for concurrent use.
type Allocator struct {
	mu     sync.Mutex
	mapped int
	maps   int
}

// New returns an mmap allocator.
func New() *Allocator {
	return &Allocator{}
}

// Allocate maps at least size bytes of zeroed memory.
func (a *Allocator) Allocate(size int) ([]byte, error) {
	if size < 0 {
		return nil, ErrInvalidSize
	}
	n := roundToPage(size)
	data, err := osMapAnon(n)
	if err != nil {
		return nil, fmt.Errorf("mmap: map %d bytes: %w", n, err)
	}

	a.mu.Lock()
	a.mapped += cap(data)
	a.maps++
	a.mu.Unlock()

	return data[:size], nil
}

// Reallocate grows or shrinks buf. Sizes that fit in the pages already mapped
// reuse the region; larger sizes map a new region, copy the first
// min(oldSize, newSize) bytes and unmap the old one.
func (a *Allocator) Reallocate(buf []byte, oldSize, newSize int) ([]byte, error) {
	if oldSize < 0 || newSize < 0 || oldSize > len(buf) {
		return nil, ErrInvalidSize
	}
	if cap(buf) == 0 {
		return nil, ErrUnknownBuffer
	}
	if newSize <= cap(buf) {
		return buf[:newSize], nil
	}
	out, err := a.Allocate(newSize)
	if err != nil {
		return nil, err
	}
	copy(out, buf[:min(oldSize, newSize)])
	if err := a.Free(buf); err != nil {
		// buf is still mapped and still owned by the caller.
		_ = a.Free(out)
		return nil, err
	}
	return out, nil
}

// Free unmaps the region that backs buf.
func (a *Allocator) Free(buf []byte) error {
	if cap(buf) == 0 {
		return ErrUnknownBuffer
	}
	full := buf[:cap(buf)]
	if err := unmap(full); err != nil {
		return fmt.Errorf("mmap: unmap: %w", err)
	}

	a.mu.Lock()
	a.mapped -= len(full)
	a.maps--
	a.mu.Unlock()
	return nil
}

// Mapped returns the number of bytes currently mapped.
func (a *Allocator) Mapped() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.mapped
}

// Regions returns the number of live mappings.
func (a *Allocator) Regions() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.maps
}

// PageSize returns the granularity of every mapping.
func PageSize() int {
	return pageSize
}

func roundToPage(n int) int {
	if n == 0 {
		return pageSize
	}
	return (n + pageSize - 1) &^ (pageSize - 1)
}
