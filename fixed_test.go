package chainarena_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chainarena"
)

type point struct {
	X, Y int32
}

type hasSlice struct {
	Data []byte
}

func TestPutGetValueRoundTrip(t *testing.T) {
	m := chainarena.NewManager()
	h, err := chainarena.PutValue(m, nil, point{X: 3, Y: 4})
	require.NoError(t, err)
	defer h.Reset()

	got, err := chainarena.GetValue[point](h)
	require.NoError(t, err)
	assert.Equal(t, point{X: 3, Y: 4}, got)
}

func TestGetValueOnClosedHandleFails(t *testing.T) {
	m := chainarena.NewManager()
	h := chainarena.NewHandle[point](m)
	_, err := chainarena.GetValue[point](h)
	assert.ErrorIs(t, err, chainarena.ErrClosed)
}

func TestPutValueRejectsPointerLikeFields(t *testing.T) {
	m := chainarena.NewManager()
	_, err := chainarena.PutValue(m, nil, hasSlice{Data: []byte("x")})
	assert.ErrorIs(t, err, chainarena.ErrHasPointers)
}
