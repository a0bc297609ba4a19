package dynarr

import (
	"iter"
	"unsafe"
)

// Vector is a growable array of T backed by a single Allocator buffer that
// holds the header and the elements.
//
// T must have non-zero size and contain no Go pointers. Slices returned by
// Slice and iterators returned by All are invalid after any call that may
// grow the vector (Reserve, PushBack, Insert, Resize, CopyFrom) and after
// Release.
//
// A Vector is not safe for concurrent use.
type Vector[T any] struct {
	raw RawVector
}

// New allocates a vector holding n elements with room for 2n. The first n
// elements are not initialized; their contents depend on the allocator.
func New[T any](a Allocator, n int, opts ...Option) (*Vector[T], error) {
	if err := checkElemType[T](); err != nil {
		return nil, err
	}
	if a == nil || n < 0 {
		return nil, ErrInvalidArgument
	}
	var zero T
	v := &Vector[T]{raw: RawVector{alloc: a, log: applyOptions(opts).logger}}
	if err := v.raw.init(int(unsafe.Sizeof(zero)), n); err != nil {
		return nil, err
	}
	return v, nil
}

// Len returns the number of elements.
func (v *Vector[T]) Len() int { return v.raw.Len() }

// Cap returns the number of element slots currently allocated.
func (v *Vector[T]) Cap() int { return v.raw.Cap() }

// ElemSize returns unsafe.Sizeof(T) as recorded at construction.
func (v *Vector[T]) ElemSize() int { return v.raw.ElemSize() }

// Empty reports whether the vector holds no elements.
func (v *Vector[T]) Empty() bool { return v.raw.Empty() }

// Slice returns the elements [begin, end) as a slice that aliases the
// vector's storage. Its capacity equals Cap.
func (v *Vector[T]) Slice() []T {
	return viewOf[T](v.raw.payload(), v.raw.Len())
}

// All returns an iterator over index/value pairs.
func (v *Vector[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i, x := range v.Slice() {
			if !yield(i, x) {
				return
			}
		}
	}
}

// Reserve grows the capacity to at least n elements. It never shrinks.
func (v *Vector[T]) Reserve(n int) error { return v.raw.Reserve(n) }

// ShrinkToFit does nothing; capacity is never released early.
func (v *Vector[T]) ShrinkToFit() { v.raw.ShrinkToFit() }

// At returns element i, or an *IndexError if i is outside [0, Len).
func (v *Vector[T]) At(i int) (T, error) {
	if err := v.raw.checkIndex("at", i); err != nil {
		var zero T
		return zero, err
	}
	return v.Slice()[i], nil
}

// Set overwrites element i, or returns an *IndexError if i is outside [0, Len).
func (v *Vector[T]) Set(i int, val T) error {
	if err := v.raw.checkIndex("set", i); err != nil {
		return err
	}
	v.Slice()[i] = val
	return nil
}

// Front returns the first element.
func (v *Vector[T]) Front() (T, error) { return v.At(0) }

// Back returns the last element.
func (v *Vector[T]) Back() (T, error) { return v.At(v.Len() - 1) }

// PushBack appends val, growing to (Len+1)*2 once Cap <= Len+1.
func (v *Vector[T]) PushBack(val T) error {
	if err := v.raw.grow(); err != nil {
		return err
	}
	s := v.Slice()
	s[len(s)-1] = val
	return nil
}

// PopBack removes and returns the last element. The slot is not cleared.
func (v *Vector[T]) PopBack() (T, error) {
	var zero T
	if err := v.raw.live(); err != nil {
		return zero, err
	}
	if v.Len() == 0 {
		return zero, ErrEmpty
	}
	last := v.Slice()[v.Len()-1]
	v.raw.hdr().size--
	return last, nil
}

// Resize appends count copies of val. It never removes elements.
func (v *Vector[T]) Resize(count int, val T) error {
	if count < 0 {
		return ErrInvalidArgument
	}
	for range count {
		if err := v.PushBack(val); err != nil {
			return err
		}
	}
	return nil
}

// Insert places val at index pos, shifting [pos, Len) right by one.
// Valid positions are 0 through Len inclusive.
func (v *Vector[T]) Insert(pos int, val T) error {
	if err := v.raw.openGap(pos); err != nil {
		return err
	}
	v.Slice()[pos] = val
	return nil
}

// Erase removes the element at pos, shifting the following elements left.
func (v *Vector[T]) Erase(pos int) error { return v.raw.Erase(pos) }

// Clear sets the length to zero. Capacity and contents are kept.
func (v *Vector[T]) Clear() { v.raw.Clear() }

// Swap exchanges the storage of v and other in O(1).
func (v *Vector[T]) Swap(other *Vector[T]) { v.raw.Swap(&other.raw) }

// CopyFrom makes v an element-wise copy of src, reserving at least src's
// capacity. Later changes to src do not affect v.
func (v *Vector[T]) CopyFrom(src *Vector[T]) error { return v.raw.CopyFrom(&src.raw) }

// Release returns the buffer to the allocator. A second Release returns
// ErrReleased.
func (v *Vector[T]) Release() error { return v.raw.Release() }
