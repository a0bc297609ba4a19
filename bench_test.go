package dynarr_test

import (
	"testing"

	"github.com/pavanmanishd/dynarr"
	"github.com/pavanmanishd/dynarr/alloc/arena"
	"github.com/pavanmanishd/dynarr/alloc/heap"
	"github.com/pavanmanishd/dynarr/alloc/mmap"
)

type record struct {
	ID    int64
	Score float64
	Data  [48]byte // Total 64 bytes
}

// BenchmarkPushBack compares appending through each allocator against the
// builtin append.
func BenchmarkPushBack(b *testing.B) {
	const n = 1000

	b.Run("Heap", func(b *testing.B) {
		a := heap.New()
		b.ReportAllocs()
		for b.Loop() {
			v, _ := dynarr.New[int64](a, 0)
			for j := range n {
				_ = v.PushBack(int64(j))
			}
			_ = v.Release()
		}
	})

	b.Run("Arena", func(b *testing.B) {
		a := arena.NewArena(64 * 1024)
		defer a.Release()
		b.ReportAllocs()
		for b.Loop() {
			v, _ := dynarr.New[int64](a, 0)
			for j := range n {
				_ = v.PushBack(int64(j))
			}
			// Reset drops the vector wholesale (simulates request cleanup)
			a.Reset()
		}
	})

	b.Run("Mmap", func(b *testing.B) {
		a := mmap.New()
		b.ReportAllocs()
		for b.Loop() {
			v, _ := dynarr.New[int64](a, 0)
			for j := range n {
				_ = v.PushBack(int64(j))
			}
			_ = v.Release()
		}
	})

	b.Run("Builtin", func(b *testing.B) {
		b.ReportAllocs()
		for b.Loop() {
			var s []int64
			for j := range n {
				s = append(s, int64(j))
			}
			_ = s
		}
	})
}

// BenchmarkStructVector pushes 64-byte records, the size the arena favours.
func BenchmarkStructVector(b *testing.B) {
	b.Run("Arena", func(b *testing.B) {
		a := arena.NewArena(64 * 1024)
		defer a.Release()
		for b.Loop() {
			v, _ := dynarr.New[record](a, 0)
			for j := range 50 {
				_ = v.PushBack(record{ID: int64(j)})
			}
			a.Reset()
		}
	})

	b.Run("Builtin", func(b *testing.B) {
		for b.Loop() {
			var s []record
			for j := range 50 {
				s = append(s, record{ID: int64(j)})
			}
			_ = s
		}
	})
}

func BenchmarkInsertErase(b *testing.B) {
	v, _ := dynarr.New[int32](heap.New(), 256)
	defer v.Release()
	mid := v.Len() / 2

	b.ResetTimer()
	for b.Loop() {
		_ = v.Insert(mid, 7)
		_ = v.Erase(mid)
	}
}

func BenchmarkAt(b *testing.B) {
	v, _ := dynarr.New[int64](heap.New(), 1024)
	defer v.Release()

	var sum int64
	for i := 0; b.Loop(); i++ {
		x, _ := v.At(i & 1023)
		sum += x
	}
	_ = sum
}
