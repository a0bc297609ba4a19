package dynarr

import (
	"math"
	"reflect"
	"unsafe"
)

// bufAlign is the alignment required of every buffer an Allocator returns and
// the alignment of the payload that follows the header.
const bufAlign = 8

// header is stored at the start of every vector buffer, immediately before
// the first element.
type header struct {
	size     int
	capacity int
	elemSize int
}

// headerSize is the header rounded up so the payload stays 8-byte aligned.
const headerSize = (int(unsafe.Sizeof(header{})) + bufAlign - 1) &^ (bufAlign - 1)

// bufferSize returns the number of bytes needed for a header and capacity
// elements of elemSize bytes, or false if it would overflow.
func bufferSize(elemSize, capacity int) (int, bool) {
	if elemSize <= 0 || capacity < 0 {
		return 0, false
	}
	if capacity > (math.MaxInt-headerSize)/elemSize {
		return 0, false
	}
	return headerSize + elemSize*capacity, true
}

// headerOf returns the header stored at the start of buf.
func headerOf(buf []byte) *header {
	return (*header)(unsafe.Pointer(unsafe.SliceData(buf)))
}

// aligned reports whether the base of buf is 8-byte aligned.
func aligned(buf []byte) bool {
	return uintptr(unsafe.Pointer(unsafe.SliceData(buf)))%bufAlign == 0
}

// viewOf reinterprets payload bytes as n elements of T with the payload's
// full capacity reachable by reslicing. Returns nil if the payload is empty.
func viewOf[T any](payload []byte, n int) []T {
	if cap(payload) == 0 {
		return nil
	}
	var zero T
	c := cap(payload) / int(unsafe.Sizeof(zero))
	s := unsafe.Slice((*T)(unsafe.Pointer(unsafe.SliceData(payload))), c)
	return s[:n]
}

// checkElemType reports whether T can be stored in allocator memory: it must
// have non-zero size and hold no Go pointers, since the garbage collector does
// not scan buffers handed out by an Allocator.
func checkElemType[T any]() error {
	t := reflect.TypeFor[T]()
	if t.Size() == 0 {
		return ErrUnsupportedType
	}
	if hasPointers(t) {
		return ErrUnsupportedType
	}
	return nil
}

func hasPointers(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Pointer, reflect.UnsafePointer, reflect.Map, reflect.Chan,
		reflect.Func, reflect.Interface, reflect.Slice, reflect.String:
		return true
	case reflect.Array:
		return t.Len() > 0 && hasPointers(t.Elem())
	case reflect.Struct:
		for i := 0; i < t.NumField(); i++ {
			if hasPointers(t.Field(i).Type) {
				return true
			}
		}
	}
	return false
}
