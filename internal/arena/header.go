package arena

import "chainarena/internal/endian"

// readAllocHeader returns the chain's free-list head and tail positions.
func (c *chainState) readAllocHeader() (first, last uint64) {
	b := c.allocHeaderBytes()
	return endian.GetUint64(b[0:8]), endian.GetUint64(b[8:16])
}

// writeAllocHeader stores the chain's free-list head and tail positions.
func (c *chainState) writeAllocHeader(first, last uint64) {
	b := c.allocHeaderBytes()
	endian.PutUint64(b[0:8], first)
	endian.PutUint64(b[8:16], last)
}
