package chainarena_test

import "unsafe"

func ptrOf[T any](v *T) uintptr {
	return uintptr(unsafe.Pointer(v))
}
