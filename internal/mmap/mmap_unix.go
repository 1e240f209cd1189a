//go:build unix

// Package mmap wraps the platform mapping primitives the Manager needs:
// map a byte range of an open file, map anonymous memory backed by no
// file, flush a mapping to disk, and unmap it. Every chain segment,
// file-backed or anonymous, is created through one of these calls.
package mmap

import (
	"golang.org/x/sys/unix"
)

// Map maps the byte range [offset, offset+size) of fd as shared,
// read-write memory. Growth calls this with offset equal to the chain's
// prior total size once the file has been extended to at least
// offset+size.
func Map(fd uintptr, offset int64, size int) ([]byte, error) {
	return unix.Mmap(int(fd), offset, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
}

// MapAnon maps size bytes of anonymous, process-private memory: the
// backing store for a chain with no file underneath it.
func MapAnon(size int) ([]byte, error) {
	return unix.Mmap(-1, 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_ANON|unix.MAP_PRIVATE)
}

// Sync flushes a mapping's dirty pages back to its file. A no-op error
// path for anonymous mappings is the caller's responsibility to avoid.
func Sync(data []byte) error {
	return unix.Msync(data, unix.MS_SYNC)
}

// Unmap releases a mapping obtained from Map or MapAnon.
func Unmap(data []byte) error {
	return unix.Munmap(data)
}
