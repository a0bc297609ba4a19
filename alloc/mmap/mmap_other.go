//go:build !unix && !windows

package mmap

import "github.com/pavanmanishd/dynarr/alloc/heap"

// Platforms without mappings fall back to the Go heap.
func osMapAnon(size int) ([]byte, error) {
	return heap.AlignedBytes(size), nil
}

func osUnmap([]byte) error {
	return nil
}
