// Package dynarr implements a growable array (vector) whose storage comes
// from a pluggable allocator.
//
// # Overview
//
// Every vector owns exactly one buffer obtained from an Allocator. The buffer
// starts with a small header recording the length, the capacity and the
// element size, followed by the elements themselves. Growth reallocates that
// one buffer; release frees it in one call. This makes vectors a natural fit
// for:
//
//   - Arena- or region-scoped data that is dropped in bulk
//   - Off-heap storage that adds no garbage collector pressure
//   - Arrays living inside a WebAssembly module's linear memory
//
// # Basic Usage
//
//	a := heap.New()              // or arena.NewArena(0), mmap.New(), ...
//	v, err := dynarr.New[int32](a, 3)
//	if err != nil {
//		return err
//	}
//	defer v.Release()
//
//	_ = v.Set(0, 7)
//	_ = v.PushBack(42)
//	x, err := v.At(3)
//
// Vector[T] is typed at compile time. RawVector offers the same operations
// for an element size known only at runtime.
//
// # Growth
//
// New(a, n) creates n elements with room for 2n. PushBack grows before it
// runs out: once Cap() <= Len()+1 the capacity becomes (Len()+1)*2. Reserve
// never shrinks and ShrinkToFit does nothing, so capacity only increases
// over the life of a vector.
//
// # Invalidation
//
// Any call that may reallocate (Reserve, PushBack, Insert, Resize, CopyFrom)
// can move the buffer. Slices from Slice, Bytes, At on a RawVector, Front
// and Back, and iterators from All, must not be used after such a call, even
// if it did not actually reallocate.
//
// # Errors
//
// Accessors never read or write outside [0, Len). They return an
// *IndexError, which matches ErrOutOfBounds with errors.Is. PopBack on an
// empty vector returns ErrEmpty. Allocator failures are wrapped and
// returned. Callers that prefer to fail fast can use Must or Abort:
//
//	x := dynarr.Must(v.At(i))   // panics on error
//	dynarr.Abort(v.PushBack(x)) // prints the error and exits with status 1
//
// # Element Types
//
// T must have a non-zero size and must not contain Go pointers, strings,
// slices, maps, channels, functions or interfaces: allocator memory is not
// scanned by the garbage collector. New returns ErrUnsupportedType
// otherwise.
//
// # Thread Safety
//
// Vectors are not safe for concurrent use. One goroutine owns a vector at a
// time; several goroutines may share a concurrency-safe allocator such as
// arena.SafeArena.
//
// # Logging
//
// Reallocations and rejected accesses are logged at debug level through
// go.uber.org/zap. The package logger is a no-op until SetLogger is called;
// WithLogger overrides it for a single vector.
package dynarr
