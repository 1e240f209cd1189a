// Package block defines the header that precedes every allocated or free
// block inside a chain. It is deliberately independent of chainptr: the
// free list is a doubly-linked list of positions manipulated only by the
// allocator itself, which already knows which chain it is working in, so
// its prev/next fields are plain chain positions rather than
// self-resolving chainptr.ChainPtr values (those exist for pointers that
// leave the allocator's hands and travel with user data).
package block

import "chainarena/internal/endian"

// NullPos is the sentinel position meaning "no neighbour" — the header
// equivalent of chainptr's null.
const NullPos = ^uint64(0)

// Size is the on-disk size of a block header: three 8-byte big-endian
// fields (prev, next, size) plus 8 bytes of reserved padding, rounding the
// header up to 32 bytes so user data always starts at an offset that is a
// multiple of 16 — the platform's common maximum scalar alignment.
const Size = 32

// Header is the in-memory view of a block header. Prev and Next are chain
// positions (NullPos when absent); for an allocated block both are
// NullPos. Size is the number of user-data bytes following the header,
// excluding the header itself.
type Header struct {
	Prev uint64
	Next uint64
	Size uint64
}

// Free reports whether h looks like it is threaded onto the free list —
// per the free-list invariant, a block with a non-null Prev or Next is on
// the list and therefore free.
func (h Header) Free() bool { return h.Prev != NullPos || h.Next != NullPos }

// Decode reads a header from the first Size bytes of b.
func Decode(b []byte) Header {
	return Header{
		Prev: endian.GetUint64(b[0:8]),
		Next: endian.GetUint64(b[8:16]),
		Size: endian.GetUint64(b[16:24]),
	}
}

// Encode writes h into the first Size bytes of b, zeroing the reserved tail.
func Encode(b []byte, h Header) {
	endian.PutUint64(b[0:8], h.Prev)
	endian.PutUint64(b[8:16], h.Next)
	endian.PutUint64(b[16:24], h.Size)
	endian.PutUint64(b[24:32], 0)
}
