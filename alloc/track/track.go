// Package track wraps an allocator to count its calls and check that every
// buffer is freed exactly once.
package track

import (
	"errors"
	"fmt"
	"sync"
	"unsafe"

	"go.uber.org/zap"
)

var (
	// ErrDoubleFree is returned when a buffer is freed twice.
	ErrDoubleFree = errors.New("track: buffer freed twice")
	// ErrUnknownBuffer is returned for buffers this allocator never handed out.
	ErrUnknownBuffer = errors.New("track: unknown buffer")
)

// Allocator is the allocation capability being tracked.
type Allocator interface {
	Allocate(size int) ([]byte, error)
	Reallocate(buf []byte, oldSize, newSize int) ([]byte, error)
	Free(buf []byte) error
}

// Stats counts calls and bytes.
type Stats struct {
	Allocs    int // Successful Allocate calls
	Reallocs  int // Successful Reallocate calls
	Frees     int // Successful Free calls
	Failures  int // Calls rejected or failed by the inner allocator
	LiveBytes int // Bytes requested and not yet freed
	PeakBytes int // Highest LiveBytes seen
	Live      int // Buffers not yet freed
}

// Tracker forwards to an inner allocator and records every buffer by base
// address. It holds references to freed buffers, so it is meant for tests and
// diagnostics rather than long-running use.
//
// Tracker is safe for concurrent use if the inner allocator is.
type Tracker struct {
	inner Allocator
	log   *zap.Logger

	mu    sync.Mutex
	live  map[*byte]int
	freed map[*byte]struct{}
	stats Stats
}

// Option configures a Tracker.
type Option func(*Tracker)

// WithLogger logs every call at debug level.
func WithLogger(l *zap.Logger) Option {
	return func(t *Tracker) {
		t.log = l
	}
}

// New wraps inner.
func New(inner Allocator, opts ...Option) *Tracker {
	t := &Tracker{
		inner: inner,
		log:   zap.NewNop(),
		live:  make(map[*byte]int),
		freed: make(map[*byte]struct{}),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Allocate implements dynarr.Allocator.
func (t *Tracker) Allocate(size int) ([]byte, error) {
	buf, err := t.inner.Allocate(size)

	t.mu.Lock()
	defer t.mu.Unlock()
	if err != nil {
		t.stats.Failures++
		return nil, err
	}
	t.stats.Allocs++
	t.add(buf, size)
	t.log.Debug("allocate", zap.Int("bytes", size))
	return buf, nil
}

// Reallocate implements dynarr.Allocator.
func (t *Tracker) Reallocate(buf []byte, oldSize, newSize int) ([]byte, error) {
	t.mu.Lock()
	_, known := t.live[base(buf)]
	t.mu.Unlock()
	if !known {
		t.fail()
		return nil, ErrUnknownBuffer
	}

	out, err := t.inner.Reallocate(buf, oldSize, newSize)

	t.mu.Lock()
	defer t.mu.Unlock()
	if err != nil {
		t.stats.Failures++
		return nil, err
	}
	t.stats.Reallocs++
	t.remove(buf)
	t.add(out, newSize)
	t.log.Debug("reallocate", zap.Int("old_bytes", oldSize), zap.Int("new_bytes", newSize),
		zap.Bool("moved", base(out) != base(buf)))
	return out, nil
}

// Free implements dynarr.Allocator.
func (t *Tracker) Free(buf []byte) error {
	p := base(buf)

	t.mu.Lock()
	_, known := t.live[p]
	_, freed := t.freed[p]
	t.mu.Unlock()
	switch {
	case freed && !known:
		t.fail()
		return ErrDoubleFree
	case !known:
		t.fail()
		return ErrUnknownBuffer
	}

	if err := t.inner.Free(buf); err != nil {
		t.fail()
		return fmt.Errorf("track: %w", err)
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	t.stats.Frees++
	t.remove(buf)
	t.freed[p] = struct{}{}
	t.log.Debug("free", zap.Int("bytes", len(buf)))
	return nil
}

// Stats returns a snapshot of the counters.
func (t *Tracker) Stats() Stats {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.stats
}

func (t *Tracker) fail() {
	t.mu.Lock()
	t.stats.Failures++
	t.mu.Unlock()
}

func (t *Tracker) add(buf []byte, size int) {
	p := base(buf)
	delete(t.freed, p)
	t.live[p] = size
	t.stats.Live++
	t.stats.LiveBytes += size
	t.stats.PeakBytes = max(t.stats.PeakBytes, t.stats.LiveBytes)
}

func (t *Tracker) remove(buf []byte) {
	p := base(buf)
	size, ok := t.live[p]
	if !ok {
		return
	}
	delete(t.live, p)
	t.stats.Live--
	t.stats.LiveBytes -= size
}

func base(buf []byte) *byte {
	return unsafe.SliceData(buf)
}
