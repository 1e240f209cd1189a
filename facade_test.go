package chainarena_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chainarena"
)

func TestAllocFacadeForwardsToOwningChain(t *testing.T) {
	m := chainarena.NewManager()
	h := chainarena.NewHandle[node](m)
	require.NoError(t, h.Construct(nil, func(n *node) {}))
	defer h.Reset()

	root := h.Get()
	facade := chainarena.NewAlloc[int64](m, ptrOf(root))

	p, err := facade.Allocate(4)
	require.NoError(t, err)
	require.NotZero(t, p)

	chain, _, err := m.Locate(p, 4*8)
	require.NoError(t, err)
	assert.Equal(t, h.Chain(), chain)

	require.NoError(t, facade.Deallocate(p, 4))
}

func TestRebindSharesUnderlyingChain(t *testing.T) {
	m := chainarena.NewManager()
	h := chainarena.NewHandle[node](m)
	require.NoError(t, h.Construct(nil, func(n *node) {}))
	defer h.Reset()

	root := h.Get()
	facade := chainarena.NewAlloc[int64](m, ptrOf(root))
	rebound := chainarena.Rebind[byte](facade)

	p, err := rebound.Allocate(32)
	require.NoError(t, err)
	chain, _, err := m.Locate(p, 32)
	require.NoError(t, err)
	assert.Equal(t, h.Chain(), chain)
}
