// Package pod reads plain-old-data values out of a foreign process through
// the raw byte-reader contract: sizeof(T) bytes are read and reinterpreted
// with T's in-memory layout. T must not contain pointers or other
// Go-managed references; a reflect-based guard rejects such types before
// any bytes are copied.
package pod

import (
	"errors"
	"fmt"
	"reflect"
	"unsafe"

	"procmem/process"
)

// SizeOf returns T's in-memory size in bytes.
func SizeOf[T any]() uint {
	var t T
	return uint(unsafe.Sizeof(t))
}

// ReadT reads one T at addr.
func ReadT[T any](r process.ByteReader, addr process.Address) (T, error) {
	var v T

	size := int(unsafe.Sizeof(v))
	if size == 0 {
		return v, errors.New("ReadT: size of T is zero")
	}
	if hasPointers[T]() {
		return v, errors.New("ReadT: T contains pointers; not POD-safe")
	}

	buf := make([]byte, size)
	if err := r.ReadBytes(addr, buf); err != nil {
		return v, err
	}

	dst := unsafe.Slice((*byte)(unsafe.Pointer(&v)), size)
	copy(dst, buf)

	return v, nil
}

// ReadSliceT reads count contiguous Ts starting at addr in one read.
func ReadSliceT[T any](r process.ByteReader, addr process.Address, count int) ([]T, error) {
	if count < 0 {
		return nil, errors.New("ReadSliceT: count must not be negative")
	}

	var elem T
	size := int(unsafe.Sizeof(elem))
	if size == 0 || count == 0 {
		return []T{}, nil
	}
	if hasPointers[T]() {
		return nil, errors.New("ReadSliceT: T contains pointers; not POD-safe")
	}

	buf := make([]byte, size*count)
	if err := r.ReadBytes(addr, buf); err != nil {
		return nil, fmt.Errorf("ReadSliceT: read at %s: %w", addr, err)
	}

	result := make([]T, count)
	dst := unsafe.Slice((*byte)(unsafe.Pointer(&result[0])), size*count)
	copy(dst, buf)

	return result, nil
}

// Bytes returns v's raw in-memory bytes. v must be POD for the bytes to be
// meaningful outside this process.
func Bytes[T any](v T) []byte {
	size := int(unsafe.Sizeof(v))
	if size == 0 {
		return []byte{}
	}
	src := unsafe.Slice((*byte)(unsafe.Pointer(&v)), size)
	out := make([]byte, size)
	copy(out, src)
	return out
}

// hasPointers reports whether T (recursively) contains any pointer-like
// fields.
func hasPointers[T any]() bool {
	var t T
	return typeHasPointers(reflect.TypeOf(t))
}

func typeHasPointers(rt reflect.Type) bool {
	if rt == nil {
		// reflect.TypeOf of a nil interface value; treat as pointer-bearing.
		return true
	}
	switch rt.Kind() {
	case reflect.Ptr, reflect.UnsafePointer, reflect.Interface, reflect.Func,
		reflect.Chan, reflect.Map, reflect.Slice, reflect.String:
		return true
	case reflect.Array:
		return typeHasPointers(rt.Elem())
	case reflect.Struct:
		for i := 0; i < rt.NumField(); i++ {
			if typeHasPointers(rt.Field(i).Type) {
				return true
			}
		}
		return false
	default:
		return false
	}
}
