package dynarr

import (
	"math"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pavanmanishd/dynarr/alloc/heap"
)

func TestHeaderSize(t *testing.T) {
	assert.Zero(t, headerSize%bufAlign)
	assert.GreaterOrEqual(t, headerSize, int(unsafe.Sizeof(header{})))
}

func TestBufferSize(t *testing.T) {
	tests := []struct {
		name     string
		elemSize int
		capacity int
		want     int
		ok       bool
	}{
		{"empty", 4, 0, headerSize, true},
		{"ints", 4, 6, headerSize + 24, true},
		{"zero elem size", 0, 6, 0, false},
		{"negative capacity", 4, -1, 0, false},
		{"overflow", 8, math.MaxInt / 4, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := bufferSize(tt.elemSize, tt.capacity)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestHeaderPrecedesPayload(t *testing.T) {
	v, err := New[int32](heap.New(), 3)
	require.NoError(t, err)

	h := headerOf(v.raw.buf)
	assert.Equal(t, header{size: 3, capacity: 6, elemSize: 4}, *h)

	s := v.Slice()
	first := uintptr(unsafe.Pointer(&s[0]))
	start := uintptr(unsafe.Pointer(&v.raw.buf[0]))
	assert.Equal(t, uintptr(headerSize), first-start)
}

func TestViewOf(t *testing.T) {
	payload := heap.AlignedBytes(32)
	s := viewOf[uint64](payload[:16:32], 2)
	assert.Len(t, s, 2)
	assert.Equal(t, 4, cap(s))

	assert.Nil(t, viewOf[uint64](payload[:0:0], 0))
}

func TestCheckElemType(t *testing.T) {
	type flat struct {
		A int64
		B [4]float32
	}
	type withString struct {
		ID   int
		Name string
	}
	type withPointer struct {
		Next *withPointer
	}

	tests := []struct {
		name  string
		check func() error
		ok    bool
	}{
		{"int32", checkElemType[int32], true},
		{"float64", checkElemType[float64], true},
		{"complex128", checkElemType[complex128], true},
		{"flat struct", checkElemType[flat], true},
		{"byte array", checkElemType[[16]byte], true},
		{"empty struct", checkElemType[struct{}], false},
		{"zero-length array", checkElemType[[0]int], false},
		{"string", checkElemType[string], false},
		{"pointer", checkElemType[*int], false},
		{"slice", checkElemType[[]int], false},
		{"map", checkElemType[map[int]int], false},
		{"interface", checkElemType[any], false},
		{"func", checkElemType[func()], false},
		{"struct with string", checkElemType[withString], false},
		{"struct with pointer", checkElemType[withPointer], false},
		{"array of strings", checkElemType[[2]string], false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.check()
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrUnsupportedType)
			}
		})
	}
}

type misaligned struct{ heap.Allocator }

func (misaligned) Allocate(size int) ([]byte, error) {
	return heap.AlignedBytes(size + 1)[1:], nil
}

type short struct{ heap.Allocator }

func (short) Allocate(size int) ([]byte, error) {
	return heap.AlignedBytes(size - 1), nil
}

func TestNewRejectsBadBuffers(t *testing.T) {
	_, err := New[int64](misaligned{}, 2)
	assert.ErrorIs(t, err, ErrMisaligned)

	_, err = New[int64](short{}, 2)
	assert.ErrorIs(t, err, ErrShortBuffer)
}
