package block

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	h := Header{Prev: 128, Next: 256, Size: 4096}
	buf := make([]byte, Size)
	Encode(buf, h)
	got := Decode(buf)
	assert.Equal(t, h, got)
}

func TestFree(t *testing.T) {
	assert.True(t, Header{Prev: NullPos, Next: 10, Size: 0}.Free())
	assert.True(t, Header{Prev: 10, Next: NullPos, Size: 0}.Free())
	assert.False(t, Header{Prev: NullPos, Next: NullPos, Size: 0}.Free())
}

func TestSizeIsAlignedMultipleOf16(t *testing.T) {
	assert.Equal(t, 0, Size%16)
	assert.Equal(t, 32, Size)
}

func TestEncodeZeroesReservedTail(t *testing.T) {
	buf := make([]byte, Size)
	for i := range buf {
		buf[i] = 0xff
	}
	Encode(buf, Header{Prev: NullPos, Next: NullPos, Size: 0})
	assert.Equal(t, []byte{0, 0, 0, 0, 0, 0, 0, 0}, buf[24:32])
}
