package arena

import (
	"chainarena/internal/block"
	"chainarena/internal/errs"
)

// FreeBlock describes one node of a chain's free list, for read-only
// introspection (arenactl inspect and the test suite's shape assertions).
type FreeBlock struct {
	Position uint64
	Size     uint64
}

// SegmentInfo describes one mapped segment of a chain.
type SegmentInfo struct {
	Start  uint64
	Length uint64
}

// FreeList walks chain's free list head to tail and returns every node in
// order. It takes the allocator mutex for the duration of the walk, the
// same as allocate/deallocate, so the result is a consistent snapshot.
func (m *Manager) FreeList(chain ChainID) ([]FreeBlock, error) {
	c, ok := m.chainState(chain)
	if !ok {
		return nil, errs.ErrOutOfChain
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	first, _ := c.readAllocHeader()
	var out []FreeBlock
	for pos := first; pos != block.NullPos; {
		h, err := c.readHeader(pos)
		if err != nil {
			return nil, err
		}
		out = append(out, FreeBlock{Position: pos, Size: h.Size})
		pos = h.Next
	}
	return out, nil
}

// Prefix returns the bytes of the caller-supplied prefix chain was
// created or opened with.
func (m *Manager) Prefix(chain ChainID) ([]byte, error) {
	c, ok := m.chainState(chain)
	if !ok {
		return nil, errs.ErrOutOfChain
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]byte, c.prefixLn)
	copy(out, c.segments[0].data[:c.prefixLn])
	return out, nil
}

// Segments returns chain's segment table in chain order.
func (m *Manager) Segments(chain ChainID) ([]SegmentInfo, error) {
	c, ok := m.chainState(chain)
	if !ok {
		return nil, errs.ErrOutOfChain
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]SegmentInfo, len(c.segments))
	for i, seg := range c.segments {
		out[i] = SegmentInfo{Start: seg.start, Length: seg.length}
	}
	return out, nil
}

// ReadAt copies length bytes of chain starting at pos, for read-only
// inspection tools. It does not go through the allocator; callers are
// responsible for pos/length making sense as a region of the chain.
func (m *Manager) ReadAt(chain ChainID, pos uint64, length uint64) ([]byte, error) {
	c, ok := m.chainState(chain)
	if !ok {
		return nil, errs.ErrOutOfChain
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	seg, err := segmentForLocked(c, pos)
	if err != nil {
		return nil, err
	}
	off := pos - seg.start
	if off+length > seg.length {
		return nil, errs.ErrCrossSegment
	}
	out := make([]byte, length)
	copy(out, seg.data[off:off+length])
	return out, nil
}
