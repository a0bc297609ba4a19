package dynarr

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pavanmanishd/dynarr/alloc/heap"
)

func u32(x uint32) []byte {
	return binary.LittleEndian.AppendUint32(nil, x)
}

func rawValues(t *testing.T, v *RawVector) []uint32 {
	t.Helper()
	var out []uint32
	for i := range v.Len() {
		b, err := v.At(i)
		require.NoError(t, err)
		out = append(out, binary.LittleEndian.Uint32(b))
	}
	return out
}

func TestNewRaw(t *testing.T) {
	v, err := NewRaw(heap.New(), 4, 3)
	require.NoError(t, err)

	assert.Equal(t, 3, v.Len())
	assert.Equal(t, 6, v.Cap())
	assert.Equal(t, 4, v.ElemSize())
	assert.False(t, v.Empty())
	assert.Len(t, v.Bytes(), 12)
	assert.Equal(t, 24, cap(v.Bytes()))

	tests := []struct {
		name     string
		a        Allocator
		elemSize int
		n        int
	}{
		{"nil allocator", nil, 4, 1},
		{"zero elem size", heap.New(), 0, 1},
		{"negative count", heap.New(), 4, -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewRaw(tt.a, tt.elemSize, tt.n)
			assert.ErrorIs(t, err, ErrInvalidArgument)
		})
	}
}

func TestRawAccess(t *testing.T) {
	v, err := NewRaw(heap.New(), 4, 0)
	require.NoError(t, err)

	for _, x := range []uint32{10, 20, 30} {
		require.NoError(t, v.PushBack(u32(x)))
	}
	assert.Equal(t, []uint32{10, 20, 30}, rawValues(t, v))

	require.NoError(t, v.Set(1, u32(21)))
	front, err := v.Front()
	require.NoError(t, err)
	back, err := v.Back()
	require.NoError(t, err)
	assert.Equal(t, u32(10), front)
	assert.Equal(t, u32(30), back)
	assert.Equal(t, []uint32{10, 21, 30}, rawValues(t, v))

	assert.ErrorIs(t, v.Set(0, []byte{1, 2}), ErrElemSizeMismatch)
	assert.ErrorIs(t, v.PushBack([]byte{1}), ErrElemSizeMismatch)
	assert.ErrorIs(t, v.Insert(0, []byte{1}), ErrElemSizeMismatch)

	_, err = v.At(3)
	var ie *IndexError
	require.ErrorAs(t, err, &ie)
	assert.Equal(t, IndexError{Op: "at", Index: 3, Len: 3}, *ie)
}

func TestRawStructural(t *testing.T) {
	v, err := NewRaw(heap.New(), 4, 0)
	require.NoError(t, err)
	require.NoError(t, v.Resize(3, u32(7)))
	assert.Equal(t, []uint32{7, 7, 7}, rawValues(t, v))

	require.NoError(t, v.Insert(0, u32(1)))
	require.NoError(t, v.Insert(4, u32(9)))
	require.NoError(t, v.Insert(2, u32(5)))
	assert.Equal(t, []uint32{1, 7, 5, 7, 7, 9}, rawValues(t, v))

	require.NoError(t, v.Erase(0))
	require.NoError(t, v.Erase(4))
	assert.Equal(t, []uint32{7, 5, 7, 7}, rawValues(t, v))

	last, err := v.PopBack()
	require.NoError(t, err)
	assert.Equal(t, u32(7), last)
	assert.Equal(t, 3, v.Len())

	v.Clear()
	assert.True(t, v.Empty())
	_, err = v.PopBack()
	assert.ErrorIs(t, err, ErrEmpty)
}

func TestRawCopyAndSwap(t *testing.T) {
	a := heap.New()
	src, err := NewRaw(a, 4, 0)
	require.NoError(t, err)
	require.NoError(t, src.Resize(5, u32(3)))

	dst, err := NewRaw(a, 4, 1)
	require.NoError(t, err)
	require.NoError(t, dst.CopyFrom(src))
	assert.Equal(t, rawValues(t, src), rawValues(t, dst))
	assert.GreaterOrEqual(t, dst.Cap(), src.Cap())

	wide, err := NewRaw(a, 8, 1)
	require.NoError(t, err)
	assert.ErrorIs(t, wide.CopyFrom(src), ErrElemSizeMismatch)

	wide.Swap(src)
	assert.Equal(t, 8, src.ElemSize())
	assert.Equal(t, 4, wide.ElemSize())
	assert.Equal(t, 5, wide.Len())
}

func TestRawRelease(t *testing.T) {
	v, err := NewRaw(heap.New(), 4, 2)
	require.NoError(t, err)
	require.NoError(t, v.Release())

	assert.ErrorIs(t, v.Release(), ErrReleased)
	assert.Zero(t, v.Len())
	assert.Zero(t, v.Cap())
	assert.Zero(t, v.ElemSize())
	assert.Nil(t, v.Bytes())

	_, err = v.At(0)
	assert.ErrorIs(t, err, ErrReleased)
	assert.ErrorIs(t, v.PushBack(u32(1)), ErrReleased)
	assert.ErrorIs(t, v.Reserve(10), ErrReleased)
	assert.ErrorIs(t, v.Insert(0, u32(1)), ErrReleased)
	assert.ErrorIs(t, v.Erase(0), ErrReleased)
	_, err = v.PopBack()
	assert.ErrorIs(t, err, ErrReleased)
}
