// Package chainarena implements a file-backed, memory-mapped arena
// allocator with relocation-safe internal pointers. Complex in-memory data
// structures can live inside a chain — a logically contiguous byte
// sequence realized by one or more mmap segments — that can be created
// anonymously, bound to a file, grown on demand, saved to disk, or
// dissociated back into anonymous memory. Pointers stored inside a chain
// (ChainPtr) survive remapping and growth because they resolve through the
// package-wide Manager rather than holding a raw address.
package chainarena

import (
	"sync"

	"chainarena/internal/arena"
	"chainarena/internal/chainptr"
)

// Manager owns every live chain in the process: it creates, grows, maps,
// unmaps, dissociates and copies chains, and fronts the intra-chain
// allocator. Most programs need only Global; construct a private Manager
// with NewManager when isolation between call sites matters (tests, for
// instance).
type Manager = arena.Manager

// ChainID identifies a chain; NoChain is never a live chain.
type ChainID = arena.ChainID

// NoChain is the sentinel identifier for "no chain".
const NoChain = arena.NoChain

// FreeBlock and SegmentInfo re-export the Manager's read-only
// introspection types, for consumers like arenactl that report on a
// chain's shape without duplicating the allocator's own bookkeeping.
type (
	FreeBlock   = arena.FreeBlock
	SegmentInfo = arena.SegmentInfo
)

// NewManager returns a fresh, empty Manager.
func NewManager() *Manager { return arena.NewManager() }

var (
	globalOnce sync.Once
	globalMgr  *Manager
)

// Global returns the lazily-initialized, process-wide Manager. This is the
// middle ground the design notes call for between a Manager threaded
// explicitly through every consumer call and true global mutable state:
// one Manager per process, guarded the same as any other Manager by its
// own reader/writer discipline.
func Global() *Manager {
	globalOnce.Do(func() { globalMgr = NewManager() })
	return globalMgr
}

// resolverOf adapts a *Manager to chainptr.Resolver — always satisfied
// since Manager implements ChainOf/Resolve/Locate directly, kept as a
// named conversion point for readability at call sites.
func resolverOf(m *Manager) chainptr.Resolver { return m }
