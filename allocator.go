package dynarr

// Allocator is the memory capability every allocating vector operation goes
// through. The implementation's receiver plays the role of an opaque
// allocation context (an arena, a stack, a mapped region).
//
// Buffers are identified by their base address. Implementations must return
// buffers that are at least as long as requested and 8-byte aligned; a longer
// buffer is accepted and trimmed by the caller.
type Allocator interface {
	// Allocate returns a buffer of at least size bytes.
	Allocate(size int) ([]byte, error)

	// Reallocate resizes buf from oldSize to newSize bytes. The first
	// min(oldSize, newSize) bytes are preserved; the returned buffer may
	// live at a different address.
	Reallocate(buf []byte, oldSize, newSize int) ([]byte, error)

	// Free releases a buffer previously returned by Allocate or Reallocate.
	// Each buffer is freed exactly once.
	Free(buf []byte) error
}
