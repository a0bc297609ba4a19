package dynarr

import (
	"errors"
	"fmt"
)

var (
	// ErrOutOfBounds is returned when an index is outside the valid range.
	ErrOutOfBounds = errors.New("dynarr: index out of bounds")
	// ErrEmpty is returned by operations that need at least one element.
	ErrEmpty = errors.New("dynarr: vector is empty")
	// ErrReleased is returned when a vector is used after Release.
	ErrReleased = errors.New("dynarr: use after Release()")
	// ErrInvalidArgument is returned for negative counts or sizes that overflow.
	ErrInvalidArgument = errors.New("dynarr: invalid argument")
	// ErrUnsupportedType is returned for zero-sized element types and types
	// holding Go pointers.
	ErrUnsupportedType = errors.New("dynarr: unsupported element type")
	// ErrMisaligned is returned when an allocator hands out a buffer that is
	// not 8-byte aligned.
	ErrMisaligned = errors.New("dynarr: misaligned buffer")
	// ErrShortBuffer is returned when an allocator hands out fewer bytes than
	// requested.
	ErrShortBuffer = errors.New("dynarr: allocator returned short buffer")
	// ErrElemSizeMismatch is returned when a value or another vector does not
	// match the vector's element size.
	ErrElemSizeMismatch = errors.New("dynarr: element size mismatch")
)

// IndexError reports an index outside [0, Len) for accessors, or outside
// [0, Len] for Insert.
//
// It unwraps to ErrOutOfBounds.
type IndexError struct {
	Op    string
	Index int
	Len   int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("dynarr: %s: index %d out of bounds [0:%d]", e.Op, e.Index, e.Len)
}

func (e *IndexError) Unwrap() error { return ErrOutOfBounds }
