package dynarr

import (
	"fmt"
	"unsafe"

	"go.uber.org/zap"
)

// RawVector is a growable array whose element size is only known at runtime.
// Elements are exchanged as byte slices of exactly ElemSize bytes.
//
// The header and the payload share one buffer obtained from the Allocator.
// Any call that may grow the vector can move that buffer, so slices returned
// by Bytes, At, Front and Back are invalid after Reserve, PushBack, Insert,
// Resize, CopyFrom or Release.
//
// A RawVector is not safe for concurrent use.
type RawVector struct {
	buf      []byte // header followed by capacity*elemSize payload bytes
	alloc    Allocator
	log      *zap.Logger
	reallocs int
}

// NewRaw allocates a vector of n elements of elemSize bytes each, with room
// for 2n elements. The payload is not initialized.
func NewRaw(a Allocator, elemSize, n int, opts ...Option) (*RawVector, error) {
	if a == nil || elemSize <= 0 || n < 0 {
		return nil, ErrInvalidArgument
	}
	v := &RawVector{alloc: a, log: applyOptions(opts).logger}
	if err := v.init(elemSize, n); err != nil {
		return nil, err
	}
	return v, nil
}

func (v *RawVector) init(elemSize, n int) error {
	if n > 0 && n*2/2 != n {
		return ErrInvalidArgument
	}
	capacity := n * 2
	size, ok := bufferSize(elemSize, capacity)
	if !ok {
		return ErrInvalidArgument
	}
	buf, err := v.alloc.Allocate(size)
	if err != nil {
		v.log.Error("allocate failed", zap.Int("bytes", size), zap.Error(err))
		return fmt.Errorf("dynarr: allocate %d bytes: %w", size, err)
	}
	if err := checkBuffer(buf, size); err != nil {
		_ = v.alloc.Free(buf)
		return err
	}
	v.buf = buf[:size]
	h := headerOf(v.buf)
	h.size = n
	h.capacity = capacity
	h.elemSize = elemSize
	return nil
}

func checkBuffer(buf []byte, size int) error {
	if len(buf) < size {
		return ErrShortBuffer
	}
	if !aligned(buf) {
		return ErrMisaligned
	}
	return nil
}

func (v *RawVector) hdr() *header {
	if v.buf == nil {
		return nil
	}
	return headerOf(v.buf)
}

func (v *RawVector) live() error {
	if v.buf == nil {
		return ErrReleased
	}
	return nil
}

// Len returns the number of elements.
func (v *RawVector) Len() int {
	if h := v.hdr(); h != nil {
		return h.size
	}
	return 0
}

// Cap returns the number of element slots currently allocated.
func (v *RawVector) Cap() int {
	if h := v.hdr(); h != nil {
		return h.capacity
	}
	return 0
}

// ElemSize returns the size in bytes of one element.
func (v *RawVector) ElemSize() int {
	if h := v.hdr(); h != nil {
		return h.elemSize
	}
	return 0
}

// Empty reports whether the vector holds no elements.
func (v *RawVector) Empty() bool {
	return v.Len() == 0
}

// payload returns the elements as bytes: length Len*ElemSize, capacity
// Cap*ElemSize.
func (v *RawVector) payload() []byte {
	h := v.hdr()
	if h == nil {
		return nil
	}
	return v.buf[headerSize : headerSize+h.size*h.elemSize : headerSize+h.capacity*h.elemSize]
}

// Bytes returns the elements [begin, end) as one byte slice.
// Reslicing up to Cap()*ElemSize() reaches slots past the end.
func (v *RawVector) Bytes() []byte {
	return v.payload()
}

// Reserve grows the capacity to at least n elements. It never shrinks: a
// smaller or equal n is a no-op.
func (v *RawVector) Reserve(n int) error {
	if err := v.live(); err != nil {
		return err
	}
	h := v.hdr()
	if n <= h.capacity {
		return nil
	}
	oldSize := headerSize + h.capacity*h.elemSize
	newSize, ok := bufferSize(h.elemSize, n)
	if !ok {
		return ErrInvalidArgument
	}
	oldCap := h.capacity
	oldBase := unsafe.SliceData(v.buf)

	buf, err := v.alloc.Reallocate(v.buf, oldSize, newSize)
	if err != nil {
		v.log.Error("reallocate failed",
			zap.Int("old_bytes", oldSize),
			zap.Int("new_bytes", newSize),
			zap.Error(err))
		return fmt.Errorf("dynarr: reserve %d: %w", n, err)
	}
	if err := checkBuffer(buf, newSize); err != nil {
		// The old buffer may already be gone; the vector cannot continue.
		_ = v.alloc.Free(buf)
		v.buf = nil
		return err
	}
	v.buf = buf[:newSize]
	v.reallocs++
	headerOf(v.buf).capacity = n

	v.log.Debug("reserve",
		zap.Int("old_capacity", oldCap),
		zap.Int("new_capacity", n),
		zap.Int("bytes", newSize),
		zap.Bool("moved", unsafe.SliceData(v.buf) != oldBase))
	return nil
}

// ShrinkToFit is a non-binding request to release unused capacity.
// Capacity is never released early, so it does nothing.
func (v *RawVector) ShrinkToFit() {}

// checkIndex is the single bounds check used by every accessor.
func (v *RawVector) checkIndex(op string, i int) error {
	if err := v.live(); err != nil {
		return err
	}
	if n := v.Len(); i < 0 || i >= n {
		v.log.Debug("index out of bounds", zap.String("op", op), zap.Int("index", i), zap.Int("len", n))
		return &IndexError{Op: op, Index: i, Len: n}
	}
	return nil
}

func (v *RawVector) slot(i int) []byte {
	es := v.ElemSize()
	return v.payload()[i*es : (i+1)*es : (i+1)*es]
}

// At returns the bytes of element i. The slice aliases the vector's storage.
func (v *RawVector) At(i int) ([]byte, error) {
	if err := v.checkIndex("at", i); err != nil {
		return nil, err
	}
	return v.slot(i), nil
}

// Set overwrites element i with val, which must be ElemSize bytes long.
func (v *RawVector) Set(i int, val []byte) error {
	if err := v.checkIndex("set", i); err != nil {
		return err
	}
	if len(val) != v.ElemSize() {
		return ErrElemSizeMismatch
	}
	copy(v.slot(i), val)
	return nil
}

// Front returns the first element.
func (v *RawVector) Front() ([]byte, error) {
	return v.At(0)
}

// Back returns the last element.
func (v *RawVector) Back() ([]byte, error) {
	return v.At(v.Len() - 1)
}

// grow appends one uninitialized slot. Growth starts one element early:
// when Cap <= Len+1 the capacity becomes (Len+1)*2.
func (v *RawVector) grow() error {
	if err := v.live(); err != nil {
		return err
	}
	h := v.hdr()
	if h.capacity <= h.size+1 {
		if err := v.Reserve((h.size + 1) * 2); err != nil {
			return err
		}
	}
	headerOf(v.buf).size++
	return nil
}

// PushBack appends val, which must be ElemSize bytes long.
func (v *RawVector) PushBack(val []byte) error {
	if err := v.live(); err != nil {
		return err
	}
	if len(val) != v.ElemSize() {
		return ErrElemSizeMismatch
	}
	if err := v.grow(); err != nil {
		return err
	}
	copy(v.slot(v.Len()-1), val)
	return nil
}

// PopBack removes the last element and returns its bytes. The slot is not
// cleared and stays reachable through Bytes until overwritten.
func (v *RawVector) PopBack() ([]byte, error) {
	if err := v.live(); err != nil {
		return nil, err
	}
	h := v.hdr()
	if h.size == 0 {
		return nil, ErrEmpty
	}
	last := v.slot(h.size - 1)
	h.size--
	return last, nil
}

// Resize appends count copies of val. It never removes elements.
func (v *RawVector) Resize(count int, val []byte) error {
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

// openGap makes room for one element at pos, 0 <= pos <= Len, shifting
// [pos, Len) one slot to the right.
func (v *RawVector) openGap(pos int) error {
	if err := v.live(); err != nil {
		return err
	}
	if n := v.Len(); pos < 0 || pos > n {
		return &IndexError{Op: "insert", Index: pos, Len: n}
	}
	if err := v.grow(); err != nil {
		return err
	}
	es := v.ElemSize()
	p := v.payload()
	copy(p[(pos+1)*es:], p[pos*es:len(p)-es])
	return nil
}

// Insert places val before the element at pos, so that val ends up at index
// pos. Valid positions are 0 through Len inclusive.
func (v *RawVector) Insert(pos int, val []byte) error {
	if err := v.live(); err != nil {
		return err
	}
	if len(val) != v.ElemSize() {
		return ErrElemSizeMismatch
	}
	if err := v.openGap(pos); err != nil {
		return err
	}
	copy(v.slot(pos), val)
	return nil
}

// Erase removes the element at pos, shifting the following elements left.
func (v *RawVector) Erase(pos int) error {
	if err := v.checkIndex("erase", pos); err != nil {
		return err
	}
	es := v.ElemSize()
	p := v.payload()
	copy(p[pos*es:], p[(pos+1)*es:])
	headerOf(v.buf).size--
	return nil
}

// Clear sets the length to zero. Capacity and contents are kept.
func (v *RawVector) Clear() {
	if h := v.hdr(); h != nil {
		h.size = 0
	}
}

// Swap exchanges the storage of v and other in O(1).
func (v *RawVector) Swap(other *RawVector) {
	*v, *other = *other, *v
}

// CopyFrom makes v an element-wise copy of src. The capacity of v becomes at
// least the capacity of src. Both vectors must have the same element size.
func (v *RawVector) CopyFrom(src *RawVector) error {
	if err := v.live(); err != nil {
		return err
	}
	if err := src.live(); err != nil {
		return err
	}
	if v == src {
		return nil
	}
	if v.ElemSize() != src.ElemSize() {
		return ErrElemSizeMismatch
	}
	if err := v.Reserve(src.Cap()); err != nil {
		return err
	}
	headerOf(v.buf).size = src.Len()
	copy(v.payload(), src.payload())
	return nil
}

// Release returns the buffer to the allocator. The vector is unusable
// afterwards; a second Release returns ErrReleased.
func (v *RawVector) Release() error {
	if err := v.live(); err != nil {
		return err
	}
	buf := v.buf
	v.buf = nil
	if err := v.alloc.Free(buf); err != nil {
		v.log.Error("free failed", zap.Int("bytes", len(buf)), zap.Error(err))
		return fmt.Errorf("dynarr: release: %w", err)
	}
	return nil
}
