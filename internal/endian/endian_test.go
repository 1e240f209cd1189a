package endian

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chainarena/internal/errs"
)

func TestCellZeroValueIsZero(t *testing.T) {
	var c Cell[uint32]
	assert.Equal(t, uint32(0), c.Get())
}

func TestCellRoundTrip(t *testing.T) {
	cases := []int64{0, 1, -1, 12345, -12345}
	for _, v := range cases {
		var c16 Cell[int16]
		c16.Put(int16(v))
		assert.Equal(t, int16(v), c16.Get())

		var c32 Cell[int32]
		c32.Put(int32(v))
		assert.Equal(t, int32(v), c32.Get())

		var c64 Cell[int64]
		c64.Put(v)
		assert.Equal(t, v, c64.Get())
	}
}

func TestCellBigEndianOnWire(t *testing.T) {
	c := NewCell[uint32](0x01020304)
	assert.Equal(t, []byte{0x01, 0x02, 0x03, 0x04}, c.buf[4:8])
}

func TestBytes(t *testing.T) {
	n, err := Bytes(KindUint16)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	n, err = Bytes(KindInt64)
	require.NoError(t, err)
	assert.Equal(t, 8, n)

	_, err = Bytes(Kind(99))
	assert.ErrorIs(t, err, errs.ErrUnimplemented)
}

func TestGetPutUint64(t *testing.T) {
	b := make([]byte, 8)
	PutUint64(b, 0xdeadbeefcafebabe)
	assert.Equal(t, uint64(0xdeadbeefcafebabe), GetUint64(b))
}
