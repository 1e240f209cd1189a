package arena

import (
	"bytes"
	"fmt"
	"os"

	"chainarena/internal/block"
	"chainarena/internal/endian"
	"chainarena/internal/errs"
	"chainarena/internal/mmap"
)

func (m *Manager) allocID() ChainID {
	m.nextID++
	return m.nextID
}

// initFresh writes the prefix, a fresh allocator header, and one maximal
// free block spanning the remainder of data — the layout of a brand new
// chain's first segment.
func initFresh(data []byte, prefix []byte) {
	// A freshly mapped anonymous region, or a file just truncated up
	// from empty, reads as all zero, so the prefix slot needs no
	// explicit zeroing before the prefix bytes are copied in.
	copy(data[:len(prefix)], prefix)
	hdr := data[prefixSlot : prefixSlot+allocHeaderSize]
	endian.PutUint64(hdr[0:8], FirstBlockOffset)
	endian.PutUint64(hdr[8:16], FirstBlockOffset)
	block.Encode(data[FirstBlockOffset:FirstBlockOffset+block.Size], block.Header{
		Prev: block.NullPos,
		Next: block.NullPos,
		Size: uint64(len(data)) - FirstBlockOffset - uint64(block.Size),
	})
}

// CreateAnonymous allocates a single anonymous segment of at least
// BaseSize bytes, installs a fresh allocator header and prefix, and
// registers a new chain.
func (m *Manager) CreateAnonymous(prefix []byte) (ChainID, error) {
	if len(prefix) > MaxPrefixLen {
		return NoChain, fmt.Errorf("chainarena: prefix longer than %d bytes", MaxPrefixLen)
	}
	data, err := mmap.MapAnon(BaseSize)
	if err != nil {
		return NoChain, fmt.Errorf("chainarena: map anonymous chain: %w", err)
	}
	initFresh(data, prefix)
	return m.registerNewChain(data, prefix, false, nil, false)
}

// CreateFile binds a chain to fd. An empty file is initialized exactly
// like CreateAnonymous, but mapped against the file. A non-empty file is
// mapped as-is and validated against prefix without being reinitialized:
// its allocator header and free list are already valid on disk.
func (m *Manager) CreateFile(f *os.File, prefix []byte) (ChainID, error) {
	if len(prefix) > MaxPrefixLen {
		return NoChain, fmt.Errorf("chainarena: prefix longer than %d bytes", MaxPrefixLen)
	}
	st, err := f.Stat()
	if err != nil {
		return NoChain, fmt.Errorf("chainarena: stat: %w", err)
	}
	if st.Size() == 0 {
		if err := f.Truncate(BaseSize); err != nil {
			return NoChain, fmt.Errorf("chainarena: truncate: %w", err)
		}
		data, err := mmap.Map(f.Fd(), 0, BaseSize)
		if err != nil {
			return NoChain, fmt.Errorf("chainarena: map file: %w", err)
		}
		initFresh(data, prefix)
		return m.registerNewChain(data, prefix, true, f, false)
	}

	data, err := mmap.Map(f.Fd(), 0, int(st.Size()))
	if err != nil {
		return NoChain, fmt.Errorf("chainarena: map file: %w", err)
	}
	if !bytes.Equal(data[:len(prefix)], prefix) {
		_ = mmap.Unmap(data)
		return NoChain, errs.ErrPrefixMismatch
	}
	return m.registerNewChain(data, prefix, true, f, false)
}

// CreateFilePath opens path itself (creating it if needed) and binds a
// chain to it, owning the resulting file descriptor: Destroy will close
// it. This is the one path through which the Manager can end up owning
// an fd, matching the {owns_fd, fd} fields of the spec's link record.
func (m *Manager) CreateFilePath(path string, prefix []byte) (ChainID, error) {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0644)
	if err != nil {
		return NoChain, fmt.Errorf("chainarena: open %s: %w", path, err)
	}
	chain, err := m.CreateFile(f, prefix)
	if err != nil {
		_ = f.Close()
		return NoChain, err
	}
	m.mu.Lock()
	m.chains[chain].ownsFD = true
	m.mu.Unlock()
	return chain, nil
}

// registerNewChain wraps an already-initialized, already-mapped first
// segment into a new chainState and adds it to both indexes.
func (m *Manager) registerNewChain(data []byte, prefix []byte, fileBacked bool, f *os.File, ownsFD bool) (ChainID, error) {
	base := addressOf(data)
	seg := &Segment{base: base, data: data, start: 0, length: uint64(len(data))}

	m.mu.Lock()
	defer m.mu.Unlock()
	id := m.allocID()
	c := &chainState{
		id:       id,
		segments: []*Segment{seg},
		total:    seg.length,
		prefixLn: len(prefix),
		fileBack: fileBacked,
		file:     f,
		ownsFD:   ownsFD,
	}
	m.chains[id] = c
	m.insertLink(linkRecord{base: base, length: seg.length, chain: id, start: 0, fileBacked: fileBacked})
	return id, nil
}

// growLocked appends a new segment to c, sized to the greater of c's
// current total size or requestedBytes, and returns it as one maximal,
// as-yet-unlinked free block. The caller (allocateLocked) is responsible
// for splicing that block into the free list; growLocked's job ends at
// registering the mapping in both indexes. The caller must already hold
// c.mu, and growLocked itself takes the index write lock — allocator
// mutex first, then index lock, exactly the order the spec requires and
// never the other way around.
func (m *Manager) growLocked(c *chainState, requestedBytes uint64) (*Segment, error) {
	newSize := c.total
	if requestedBytes > newSize {
		newSize = requestedBytes
	}

	var data []byte
	var err error
	if c.fileBack {
		if err = c.file.Truncate(int64(c.total + newSize)); err != nil {
			return nil, fmt.Errorf("chainarena: grow truncate: %w", err)
		}
		data, err = mmap.Map(c.file.Fd(), int64(c.total), int(newSize))
	} else {
		data, err = mmap.MapAnon(int(newSize))
	}
	if err != nil {
		return nil, fmt.Errorf("chainarena: grow map: %w", err)
	}

	block.Encode(data[:block.Size], block.Header{
		Prev: block.NullPos,
		Next: block.NullPos,
		Size: newSize - uint64(block.Size),
	})

	base := addressOf(data)
	seg := &Segment{base: base, data: data, start: c.total, length: newSize}

	m.mu.Lock()
	if _, exists := m.linkFor(base); exists {
		// A colliding base address would mean the OS handed back memory
		// that overlaps a live mapping — corrupt state we must not
		// register. Unwind the mapping we just made instead.
		m.mu.Unlock()
		_ = mmap.Unmap(data)
		return nil, fmt.Errorf("chainarena: grow: new segment address collides with an existing mapping")
	}
	c.segments = append(c.segments, seg)
	c.total += newSize
	m.insertLink(linkRecord{base: base, length: newSize, chain: c.id, start: seg.start, fileBacked: c.fileBack})
	m.mu.Unlock()

	return seg, nil
}

// Dissociate creates a new anonymous chain, copies the source chain's
// bytes segment-by-segment into one new segment sized to the source's
// total size, and returns the new chain's id. The source is unaffected.
func (m *Manager) Dissociate(chain ChainID) (ChainID, error) {
	c, ok := m.chainState(chain)
	if !ok {
		return NoChain, errs.ErrOutOfChain
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	data, err := mmap.MapAnon(int(c.total))
	if err != nil {
		return NoChain, fmt.Errorf("chainarena: dissociate map: %w", err)
	}
	copySegments(data, c)
	return m.registerNewChain(data, nil, false, nil, false)
}

// Associate is Dissociate onto a caller-supplied file descriptor, which
// is extended to the chain's size instead of mapped anonymously. fd is
// not owned by the Manager.
func (m *Manager) Associate(chain ChainID, f *os.File) (ChainID, error) {
	c, ok := m.chainState(chain)
	if !ok {
		return NoChain, errs.ErrOutOfChain
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := f.Truncate(int64(c.total)); err != nil {
		return NoChain, fmt.Errorf("chainarena: associate truncate: %w", err)
	}
	data, err := mmap.Map(f.Fd(), 0, int(c.total))
	if err != nil {
		return NoChain, fmt.Errorf("chainarena: associate map: %w", err)
	}
	copySegments(data, c)
	return m.registerNewChain(data, nil, true, f, false)
}

// copySegments flattens every segment of c into dst in chain order.
func copySegments(dst []byte, c *chainState) {
	for _, seg := range c.segments {
		copy(dst[seg.start:seg.start+seg.length], seg.data)
	}
}

// Destroy unmaps every segment of chain, removes it from both indexes,
// and closes an owned file descriptor if any. Pointers into the
// destroyed chain become invalid.
func (m *Manager) Destroy(chain ChainID) error {
	m.mu.Lock()
	c, ok := m.chains[chain]
	if !ok {
		m.mu.Unlock()
		return errs.ErrOutOfChain
	}
	delete(m.chains, chain)
	m.removeLinksForChain(chain)
	m.mu.Unlock()

	c.mu.Lock()
	defer c.mu.Unlock()

	var firstErr error
	for _, seg := range c.segments {
		if err := mmap.Unmap(seg.data); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if c.ownsFD && c.file != nil {
		if err := c.file.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
