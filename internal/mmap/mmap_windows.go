//go:build windows

package mmap

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/windows"
)

// Map maps the byte range [offset, offset+size) of fd via
// CreateFileMapping/MapViewOfFile. The teacher's windows half of this
// package was a stub returning ErrNotSupported; this replaces it with a
// real binding so the module's mmap dependency is exercised on both
// platforms it targets.
func Map(fd uintptr, offset int64, size int) ([]byte, error) {
	h, err := windows.CreateFileMapping(windows.Handle(fd), nil, windows.PAGE_READWRITE, uint32(uint64(offset+int64(size))>>32), uint32(uint64(offset+int64(size))), nil)
	if err != nil {
		return nil, fmt.Errorf("mmap: CreateFileMapping: %w", err)
	}
	defer windows.CloseHandle(h)

	addr, err := windows.MapViewOfFile(h, windows.FILE_MAP_READ|windows.FILE_MAP_WRITE, uint32(uint64(offset)>>32), uint32(uint64(offset)), uintptr(size))
	if err != nil {
		return nil, fmt.Errorf("mmap: MapViewOfFile: %w", err)
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(addr)), size), nil
}

// MapAnon maps size bytes of anonymous memory via a page-file-backed
// mapping, Windows' equivalent of a private anonymous mapping.
func MapAnon(size int) ([]byte, error) {
	h, err := windows.CreateFileMapping(windows.InvalidHandle, nil, windows.PAGE_READWRITE, uint32(uint64(size)>>32), uint32(uint64(size)), nil)
	if err != nil {
		return nil, fmt.Errorf("mmap: CreateFileMapping(anon): %w", err)
	}
	defer windows.CloseHandle(h)

	addr, err := windows.MapViewOfFile(h, windows.FILE_MAP_READ|windows.FILE_MAP_WRITE, 0, 0, uintptr(size))
	if err != nil {
		return nil, fmt.Errorf("mmap: MapViewOfFile(anon): %w", err)
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(addr)), size), nil
}

// Sync flushes a mapping's dirty pages back to its file.
func Sync(data []byte) error {
	if len(data) == 0 {
		return nil
	}
	if err := windows.FlushViewOfFile(uintptr(unsafe.Pointer(&data[0])), uintptr(len(data))); err != nil {
		return fmt.Errorf("mmap: FlushViewOfFile: %w", err)
	}
	return nil
}

// Unmap releases a mapping obtained from Map or MapAnon.
func Unmap(data []byte) error {
	if len(data) == 0 {
		return nil
	}
	if err := windows.UnmapViewOfFile(uintptr(unsafe.Pointer(&data[0]))); err != nil {
		return fmt.Errorf("mmap: UnmapViewOfFile: %w", err)
	}
	return nil
}
