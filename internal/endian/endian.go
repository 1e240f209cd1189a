// Package endian stores fixed-width integers in canonical big-endian byte
// order regardless of host endianness, the way the on-disk format requires:
// every count and offset that ends up in a chain file goes through a cell
// here so a file written on one host reads correctly on another.
package endian

import (
	"encoding/binary"
	"unsafe"

	"chainarena/internal/errs"
)

// Width is the set of integer kinds a Cell can hold: 16, 32 or 64 bits,
// signed or unsigned. Anything else fails to satisfy the constraint, so an
// unsupported width is rejected at compile time rather than at runtime.
type Width interface {
	~uint16 | ~uint32 | ~uint64 | ~int16 | ~int32 | ~int64
}

// Cell is a fixed-size, big-endian buffer holding one integer of type T.
// Its zero value is all-zero bytes, which decodes to integer 0.
type Cell[T Width] struct {
	buf [8]byte
}

func widthOf[T Width]() int {
	var zero T
	return int(unsafe.Sizeof(zero))
}

// NewCell builds a Cell already holding v.
func NewCell[T Width](v T) Cell[T] {
	var c Cell[T]
	c.Put(v)
	return c
}

// Put stores the big-endian form of v.
func (c *Cell[T]) Put(v T) {
	switch widthOf[T]() {
	case 2:
		binary.BigEndian.PutUint16(c.buf[6:8], uint16(v))
	case 4:
		binary.BigEndian.PutUint32(c.buf[4:8], uint32(v))
	case 8:
		binary.BigEndian.PutUint64(c.buf[0:8], uint64(v))
	}
}

// Get reads the integer back from its big-endian form.
func (c Cell[T]) Get() T {
	switch widthOf[T]() {
	case 2:
		return T(binary.BigEndian.Uint16(c.buf[6:8]))
	case 4:
		return T(binary.BigEndian.Uint32(c.buf[4:8]))
	default:
		return T(binary.BigEndian.Uint64(c.buf[0:8]))
	}
}

// Kind names a dynamically-selected cell width, for the boundary APIs
// (façades built for a configured width) that don't know T at compile
// time and must reject bad widths at initialization instead.
type Kind int

const (
	KindUint16 Kind = iota
	KindUint32
	KindUint64
	KindInt16
	KindInt32
	KindInt64
)

// Bytes returns the on-disk width of a Kind, or ErrUnimplemented if k is
// not one of the supported widths.
func Bytes(k Kind) (int, error) {
	switch k {
	case KindUint16, KindInt16:
		return 2, nil
	case KindUint32, KindInt32:
		return 4, nil
	case KindUint64, KindInt64:
		return 8, nil
	default:
		return 0, errs.ErrUnimplemented
	}
}

// GetUint64 reads a big-endian uint64 directly from a buffer; used by the
// block and allocator headers, which are laid out as flat byte regions
// inside a mapped segment rather than as individual Cell values.
func GetUint64(b []byte) uint64 { return binary.BigEndian.Uint64(b[0:8]) }

// PutUint64 writes v as big-endian into b.
func PutUint64(b []byte, v uint64) { binary.BigEndian.PutUint64(b[0:8], v) }
