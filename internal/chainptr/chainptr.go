// Package chainptr implements the relocation-safe pointer that lives
// inside a mapped chain: it stores a chain-relative position instead of a
// raw address, so its target survives remapping at a new virtual address
// and growth of the chain into additional segments.
package chainptr

import (
	"chainarena/internal/endian"
	"chainarena/internal/errs"
)

// ChainID is the opaque, process-unique identifier of a chain. NoChain is
// never a valid chain.
type ChainID uint64

// NoChain is the sentinel identifier meaning "not in any chain".
const NoChain ChainID = 0

// nullPos is the reserved position value meaning "this pointer is null".
const nullPos = ^uint64(0)

// Resolver is the slice of the Manager's contract a chain pointer needs:
// map an address to the chain containing it, map a chain position back to
// an address, and map an address back to a chain position. A chain pointer
// never talks to more of the Manager than this.
type Resolver interface {
	// ChainOf returns the chain containing addr, or ok=false if addr is
	// not inside any chain. Never fails loudly — unknown addresses are
	// reported through ok, not through an error.
	ChainOf(addr uintptr) (ChainID, bool)

	// Resolve returns the address of position pos within chain. If
	// length > 0, it additionally requires that [pos, pos+length) lie
	// entirely inside one segment, failing with ErrCrossSegment
	// otherwise.
	Resolve(chain ChainID, pos uint64, length uint64) (uintptr, error)

	// Locate is the inverse of Resolve: given an address, it returns
	// the chain and position it corresponds to. ErrOutOfChain if addr
	// is not in any chain; ErrCrossSegment if length > 0 and
	// [addr, addr+length) crosses a segment boundary.
	Locate(addr uintptr, length uint64) (ChainID, uint64, error)
}

// ChainPtr is a single big-endian position cell with the maximum uint64
// value reserved to mean null. Its zero value holds position 0, not null;
// Null returns the null pointer.
type ChainPtr struct {
	cell endian.Cell[uint64]
}

// Null returns a null chain pointer.
func Null() ChainPtr {
	var p ChainPtr
	p.cell.Put(nullPos)
	return p
}

// FromPosition builds a pointer that already targets pos, without going
// through Resolver — used by the allocator's own free-list bookkeeping,
// which manipulates positions directly rather than external addresses.
func FromPosition(pos uint64) ChainPtr {
	var p ChainPtr
	p.cell.Put(pos)
	return p
}

// IsNull reports whether p is the null pointer.
func (p ChainPtr) IsNull() bool { return p.cell.Get() == nullPos }

// Position returns the stored chain position and false if p is null.
func (p ChainPtr) Position() (uint64, bool) {
	v := p.cell.Get()
	return v, v != nullPos
}

// Assign resolves target to a (chain, position) pair via r, requires that
// it lies in the same chain as selfAddr (the address of the pointer cell
// itself), and stores the position. A nil target (0) stores the null
// sentinel regardless of selfAddr. It returns p so that, unlike the
// C++ original this is ported from, assignment always yields a usable
// value to chain further calls off of.
func (p *ChainPtr) Assign(r Resolver, selfAddr, target uintptr) (*ChainPtr, error) {
	if target == 0 {
		p.cell.Put(nullPos)
		return p, nil
	}
	targetChain, pos, err := r.Locate(target, 0)
	if err != nil {
		return nil, err
	}
	selfChain, ok := r.ChainOf(selfAddr)
	if !ok {
		return nil, errs.ErrOutOfChain
	}
	if selfChain != targetChain {
		return nil, errs.ErrChainMismatch
	}
	p.cell.Put(pos)
	return p, nil
}

// Deref resolves p to a host address, given the address at which p itself
// resides (used to determine which chain to resolve the position against).
func (p ChainPtr) Deref(r Resolver, selfAddr uintptr) (uintptr, error) {
	if p.IsNull() {
		return 0, errs.ErrNullDeref
	}
	chain, ok := r.ChainOf(selfAddr)
	if !ok {
		return 0, errs.ErrOutOfChain
	}
	return r.Resolve(chain, p.cell.Get(), 0)
}

// Offset returns Deref(...) + n*sizeOf, i.e. pointer arithmetic in units
// of a caller-supplied element size. The caller is responsible for the
// result staying within a single contiguous segment.
func (p ChainPtr) Offset(r Resolver, selfAddr uintptr, n int64, sizeOf uintptr) (uintptr, error) {
	base, err := p.Deref(r, selfAddr)
	if err != nil {
		return 0, err
	}
	return uintptr(int64(base) + n*int64(sizeOf)), nil
}
