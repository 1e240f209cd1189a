package chainarena

import "chainarena/internal/chainptr"

// ChainPtr is a relocation-safe pointer meant to be embedded inside a
// struct that itself lives in a chain. It stores a chain-relative
// position instead of a raw address, so copying the struct anywhere
// within the same chain — including across a remap or a grow that adds a
// segment — preserves its target. Its zero value holds position 0, not
// null; NullPtr returns the null pointer.
type ChainPtr struct {
	p chainptr.ChainPtr
}

// NullPtr returns a null ChainPtr.
func NullPtr() ChainPtr { return ChainPtr{p: chainptr.Null()} }

// IsNull reports whether p targets nothing.
func (p ChainPtr) IsNull() bool { return p.p.IsNull() }

// Assign resolves target (a host address obtained from Manager.Allocate,
// Handle.Get, or another ChainPtr's Deref) against m, requires that it
// lies in the same chain as selfAddr — the address at which p itself
// resides — and stores the resulting position. A target of 0 stores null
// regardless of selfAddr. It returns p so callers can chain off the
// result, e.g. `next.Assign(m, selfAddr, target)`.
func (p *ChainPtr) Assign(m *Manager, selfAddr, target uintptr) (*ChainPtr, error) {
	if _, err := p.p.Assign(resolverOf(m), selfAddr, target); err != nil {
		return nil, err
	}
	return p, nil
}

// Deref resolves p to a host address, given the address at which p
// itself resides. Returns ErrNullDeref if p is null.
func (p ChainPtr) Deref(m *Manager, selfAddr uintptr) (uintptr, error) {
	return p.p.Deref(resolverOf(m), selfAddr)
}

// Offset returns Deref(...) plus n*sizeOf — pointer arithmetic in units
// of a caller-chosen element size. The caller must ensure the result
// stays within a single contiguous segment.
func (p ChainPtr) Offset(m *Manager, selfAddr uintptr, n int64, sizeOf uintptr) (uintptr, error) {
	return p.p.Offset(resolverOf(m), selfAddr, n, sizeOf)
}
