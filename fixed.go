package chainarena

import (
	"reflect"

	"chainarena/internal/errs"
)

// PutValue constructs a new anonymous chain carrying prefix, whose root is
// a copy of v, and returns the handle owning it. T must contain no
// slices, maps, channels, funcs, interfaces or native pointers — anything
// that would not mean the same thing once copied into mmap'd memory.
// This generalizes the teacher's SetFixed (flat struct as a KV value) to
// a flat struct as the root of its own chain.
func PutValue[T any](m *Manager, prefix []byte, v T) (*Handle[T], error) {
	if err := assertNoPointers(reflect.TypeOf(v)); err != nil {
		return nil, err
	}
	h := NewHandle[T](m)
	if err := h.Construct(prefix, func(root *T) { *root = v }); err != nil {
		return nil, err
	}
	return h, nil
}

// GetValue copies h's root out by value. Returns ErrClosed if h is empty.
func GetValue[T any](h *Handle[T]) (T, error) {
	var zero T
	root := h.Get()
	if root == nil {
		return zero, errs.ErrClosed
	}
	return *root, nil
}
