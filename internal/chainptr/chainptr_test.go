package chainptr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chainarena/internal/errs"
)

// fakeResolver is a tiny in-memory Resolver: it treats uintptr addresses
// as chain-relative positions directly, with a fixed mapping of address
// ranges to chain ids, enough to exercise ChainPtr's contract without a
// real Manager.
type fakeResolver struct {
	// ranges maps a chain id to the [lo, hi) address range it owns.
	ranges map[ChainID][2]uintptr
}

func (f *fakeResolver) chainFor(addr uintptr) (ChainID, bool) {
	for id, r := range f.ranges {
		if addr >= r[0] && addr < r[1] {
			return id, true
		}
	}
	return NoChain, false
}

func (f *fakeResolver) ChainOf(addr uintptr) (ChainID, bool) {
	return f.chainFor(addr)
}

func (f *fakeResolver) Resolve(chain ChainID, pos uint64, length uint64) (uintptr, error) {
	r, ok := f.ranges[chain]
	if !ok {
		return 0, errs.ErrOutOfChain
	}
	addr := r[0] + uintptr(pos)
	if length > 0 && addr+uintptr(length) > r[1] {
		return 0, errs.ErrCrossSegment
	}
	return addr, nil
}

func (f *fakeResolver) Locate(addr uintptr, length uint64) (ChainID, uint64, error) {
	id, ok := f.chainFor(addr)
	if !ok {
		return NoChain, 0, errs.ErrOutOfChain
	}
	r := f.ranges[id]
	if length > 0 && addr+uintptr(length) > r[1] {
		return NoChain, 0, errs.ErrCrossSegment
	}
	return id, uint64(addr - r[0]), nil
}

func newTestResolver() *fakeResolver {
	return &fakeResolver{ranges: map[ChainID][2]uintptr{
		1: {1000, 2000},
		2: {5000, 6000},
	}}
}

func TestNullPointerIsNull(t *testing.T) {
	p := Null()
	assert.True(t, p.IsNull())
	_, ok := p.Position()
	assert.False(t, ok)
}

func TestZeroValueIsPositionZero(t *testing.T) {
	var p ChainPtr
	assert.False(t, p.IsNull())
	pos, ok := p.Position()
	require.True(t, ok)
	assert.Equal(t, uint64(0), pos)
}

func TestAssignAndDeref(t *testing.T) {
	r := newTestResolver()
	self := uintptr(1010) // inside chain 1
	target := uintptr(1500)

	var p ChainPtr
	got, err := p.Assign(r, self, target)
	require.NoError(t, err)
	assert.Same(t, &p, got)

	pos, ok := p.Position()
	require.True(t, ok)
	assert.Equal(t, uint64(500), pos)

	addr, err := p.Deref(r, self)
	require.NoError(t, err)
	assert.Equal(t, target, addr)
}

func TestAssignNilTargetStoresNull(t *testing.T) {
	r := newTestResolver()
	var p ChainPtr
	_, err := p.Assign(r, 1010, 0)
	require.NoError(t, err)
	assert.True(t, p.IsNull())
}

func TestAssignCrossChainFails(t *testing.T) {
	r := newTestResolver()
	var p ChainPtr
	_, err := p.Assign(r, 1010, 5500) // self in chain 1, target in chain 2
	assert.ErrorIs(t, err, errs.ErrChainMismatch)
}

func TestAssignSelfOutOfChainFails(t *testing.T) {
	r := newTestResolver()
	var p ChainPtr
	_, err := p.Assign(r, 9999, 1500)
	assert.ErrorIs(t, err, errs.ErrOutOfChain)
}

func TestDerefNullFails(t *testing.T) {
	r := newTestResolver()
	p := Null()
	_, err := p.Deref(r, 1010)
	assert.ErrorIs(t, err, errs.ErrNullDeref)
}

func TestOffset(t *testing.T) {
	r := newTestResolver()
	self := uintptr(1010)
	var p ChainPtr
	_, err := p.Assign(r, self, 1500)
	require.NoError(t, err)

	addr, err := p.Offset(r, self, 3, 8)
	require.NoError(t, err)
	assert.Equal(t, uintptr(1524), addr)
}

func TestFromPositionBypassesResolver(t *testing.T) {
	p := FromPosition(42)
	pos, ok := p.Position()
	require.True(t, ok)
	assert.Equal(t, uint64(42), pos)
}
