package arena

import (
	"fmt"

	"chainarena/internal/block"
	"chainarena/internal/errs"
)

// Allocate returns the address of n freshly allocated bytes inside chain,
// first-fitting the free list and growing the chain if nothing fits.
func (m *Manager) Allocate(chain ChainID, n uint64) (uintptr, error) {
	c, ok := m.chainState(chain)
	if !ok {
		return 0, errs.ErrOutOfChain
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return m.allocateLocked(c, n)
}

// AllocateFromSameChain resolves selfAddr to a chain and allocates n
// bytes from it — the operation the allocator façade forwards to.
func (m *Manager) AllocateFromSameChain(selfAddr uintptr, n uint64) (uintptr, error) {
	chain, ok := m.ChainOf(selfAddr)
	if !ok {
		return 0, errs.ErrOutOfChain
	}
	return m.Allocate(chain, n)
}

// allocateLocked implements the first-fit/split/grow algorithm. Caller
// must hold c.mu.
func (m *Manager) allocateLocked(c *chainState, n uint64) (uintptr, error) {
	first, last := c.readAllocHeader()

	pos := first
	for pos != block.NullPos {
		h, err := c.readHeader(pos)
		if err != nil {
			return 0, err
		}
		if h.Size >= n {
			break
		}
		pos = h.Next
	}

	if pos == block.NullPos {
		// Ask for room for n plus its own header, plus a second header's
		// worth of slack so the fresh block can still be split cleanly
		// instead of being forced into an exact-fit detach.
		seg, err := m.growLocked(c, n+2*uint64(block.Size))
		if err != nil {
			return 0, fmt.Errorf("%w: %v", errs.ErrNoSpace, err)
		}
		pos = seg.start
		if last == block.NullPos {
			first, last = pos, pos
		} else {
			lastH, err := c.readHeader(last)
			if err != nil {
				return 0, err
			}
			lastH.Next = pos
			if err := c.writeHeader(last, lastH); err != nil {
				return 0, err
			}
			newH, err := c.readHeader(pos)
			if err != nil {
				return 0, err
			}
			newH.Prev = last
			if err := c.writeHeader(pos, newH); err != nil {
				return 0, err
			}
			last = pos
		}
		c.writeAllocHeader(first, last)
	}

	h, err := c.readHeader(pos)
	if err != nil {
		return 0, err
	}

	if h.Size >= n+uint64(block.Size) {
		// Split: carve an n-byte allocated block at pos, and splice a
		// fresh free block holding the remainder into pos's place in
		// the free list. The leftover (h.Size-n) must be at least one
		// header's worth of bytes or the remainder couldn't carry a
		// valid free-block header of its own.
		newPos := pos + uint64(block.Size) + n
		newSize := h.Size - n - uint64(block.Size)
		if err := c.writeHeader(newPos, block.Header{Prev: h.Prev, Next: h.Next, Size: newSize}); err != nil {
			return 0, err
		}
		if h.Prev != block.NullPos {
			ph, err := c.readHeader(h.Prev)
			if err != nil {
				return 0, err
			}
			ph.Next = newPos
			if err := c.writeHeader(h.Prev, ph); err != nil {
				return 0, err
			}
		} else {
			first = newPos
		}
		if h.Next != block.NullPos {
			nh, err := c.readHeader(h.Next)
			if err != nil {
				return 0, err
			}
			nh.Prev = newPos
			if err := c.writeHeader(h.Next, nh); err != nil {
				return 0, err
			}
		} else {
			last = newPos
		}
		c.writeAllocHeader(first, last)
		if err := c.writeHeader(pos, block.Header{Prev: block.NullPos, Next: block.NullPos, Size: n}); err != nil {
			return 0, err
		}
	} else {
		// Detach the whole block; it is handed out at its existing size.
		if h.Prev != block.NullPos {
			ph, err := c.readHeader(h.Prev)
			if err != nil {
				return 0, err
			}
			ph.Next = h.Next
			if err := c.writeHeader(h.Prev, ph); err != nil {
				return 0, err
			}
		} else {
			first = h.Next
		}
		if h.Next != block.NullPos {
			nh, err := c.readHeader(h.Next)
			if err != nil {
				return 0, err
			}
			nh.Prev = h.Prev
			if err := c.writeHeader(h.Next, nh); err != nil {
				return 0, err
			}
		} else {
			last = h.Prev
		}
		c.writeAllocHeader(first, last)
		if err := c.writeHeader(pos, block.Header{Prev: block.NullPos, Next: block.NullPos, Size: h.Size}); err != nil {
			return 0, err
		}
	}

	return c.userAddr(pos)
}

// Deallocate returns the block underlying user-data address addr to its
// chain's free list, coalescing with immediately adjacent free
// neighbours in the same segment.
func (m *Manager) Deallocate(addr uintptr) error {
	headerAddr := addr - uintptr(block.Size)
	chain, pos, err := m.Locate(headerAddr, uint64(block.Size))
	if err != nil {
		return err
	}
	c, ok := m.chainState(chain)
	if !ok {
		return errs.ErrOutOfChain
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return m.deallocateLocked(c, pos)
}

// deallocateLocked implements insertion-in-position-order followed by
// adjacent coalescing. Caller must hold c.mu.
func (m *Manager) deallocateLocked(c *chainState, pos uint64) error {
	h, err := c.readHeader(pos)
	if err != nil {
		return err
	}
	first, last := c.readAllocHeader()

	prevPos := block.NullPos
	curPos := first
	for curPos != block.NullPos && curPos < pos {
		prevPos = curPos
		ch, err := c.readHeader(curPos)
		if err != nil {
			return err
		}
		curPos = ch.Next
	}

	h.Prev, h.Next = prevPos, curPos
	if err := c.writeHeader(pos, h); err != nil {
		return err
	}
	if prevPos != block.NullPos {
		ph, err := c.readHeader(prevPos)
		if err != nil {
			return err
		}
		ph.Next = pos
		if err := c.writeHeader(prevPos, ph); err != nil {
			return err
		}
	} else {
		first = pos
	}
	if curPos != block.NullPos {
		ch, err := c.readHeader(curPos)
		if err != nil {
			return err
		}
		ch.Prev = pos
		if err := c.writeHeader(curPos, ch); err != nil {
			return err
		}
	} else {
		last = pos
	}
	c.writeAllocHeader(first, last)

	// Coalesce right: pos's immediate successor in the free list, if it
	// starts exactly where pos's block ends and shares its segment.
	h, err = c.readHeader(pos)
	if err != nil {
		return err
	}
	if h.Next != block.NullPos && pos+uint64(block.Size)+h.Size == h.Next && sameSegment(c, pos, h.Next) {
		right := h.Next
		rh, err := c.readHeader(right)
		if err != nil {
			return err
		}
		merged := block.Header{Prev: h.Prev, Next: rh.Next, Size: h.Size + uint64(block.Size) + rh.Size}
		if err := c.writeHeader(pos, merged); err != nil {
			return err
		}
		if rh.Next != block.NullPos {
			nh, err := c.readHeader(rh.Next)
			if err != nil {
				return err
			}
			nh.Prev = pos
			if err := c.writeHeader(rh.Next, nh); err != nil {
				return err
			}
		} else {
			last = pos
		}
		c.writeAllocHeader(first, last)
		h = merged
	}

	// Coalesce left: pos's immediate predecessor, symmetric to the above.
	if h.Prev != block.NullPos {
		left := h.Prev
		lh, err := c.readHeader(left)
		if err != nil {
			return err
		}
		if left+uint64(block.Size)+lh.Size == pos && sameSegment(c, left, pos) {
			merged := block.Header{Prev: lh.Prev, Next: h.Next, Size: lh.Size + uint64(block.Size) + h.Size}
			if err := c.writeHeader(left, merged); err != nil {
				return err
			}
			if h.Next != block.NullPos {
				nh, err := c.readHeader(h.Next)
				if err != nil {
					return err
				}
				nh.Prev = left
				if err := c.writeHeader(h.Next, nh); err != nil {
					return err
				}
			} else {
				last = left
			}
			if lh.Prev == block.NullPos {
				first = left
			}
			c.writeAllocHeader(first, last)
		}
	}

	return nil
}
