package arena

import "sync"

// SafeArena is a mutex-protected wrapper around Arena for concurrent access.
// It lets several goroutines, each owning its own vectors, share one arena.
type SafeArena struct {
	mu sync.Mutex
	a  *Arena
}

// NewSafeArena creates a new thread-safe arena with the specified chunk size.
// If chunkSize <= 0, DefaultChunkSize is used.
func NewSafeArena(chunkSize int) *SafeArena {
	return &SafeArena{a: NewArena(chunkSize)}
}

// Allocate thread-safely implements dynarr.Allocator.
func (s *SafeArena) Allocate(size int) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.a.Allocate(size)
}

// Reallocate thread-safely implements dynarr.Allocator.
func (s *SafeArena) Reallocate(buf []byte, oldSize, newSize int) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.a.Reallocate(buf, oldSize, newSize)
}

// Free thread-safely implements dynarr.Allocator.
func (s *SafeArena) Free(buf []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.a.Free(buf)
}

// Reset thread-safely resets allocation offsets to zero for arena reuse.
func (s *SafeArena) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.a.Reset()
}

// Release thread-safely drops all chunks and makes the arena unusable.
func (s *SafeArena) Release() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.a.Release()
}

// SizeInUse thread-safely returns the total number of bytes currently allocated.
func (s *SafeArena) SizeInUse() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.a.SizeInUse()
}
