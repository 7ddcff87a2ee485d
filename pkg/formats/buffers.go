// Package formats provides little-endian buffer views and the FMS
// field-mesh container parser.
package formats

import (
	"encoding/binary"
	"errors"
	"math"
	"unsafe"
)

// Buffer errors.
var (
	ErrShortBuffer = errors.New("buffer too short for element count")
)

// hostLittleEndian reports whether the host stores multi-byte values
// little-endian. Computed once; the zero-copy views are only valid when
// the host byte order matches the wire order.
var hostLittleEndian = func() bool {
	x := uint16(1)
	return *(*byte)(unsafe.Pointer(&x)) == 1
}()

// Float32View views a little-endian byte buffer as count float32 values.
// When the host is little-endian and the buffer is 4-byte aligned the
// returned slice aliases the input without copying; otherwise the values
// are decoded into a fresh slice. Callers that mutate the result must not
// assume either behavior.
func Float32View(data []byte, count int) ([]float32, error) {
	if len(data) < count*4 {
		return nil, ErrShortBuffer
	}
	if count == 0 {
		return nil, nil
	}

	if hostLittleEndian && uintptr(unsafe.Pointer(&data[0]))%4 == 0 {
		return unsafe.Slice((*float32)(unsafe.Pointer(&data[0])), count), nil
	}

	out := make([]float32, count)
	for i := range out {
		out[i] = math.Float32frombits(binary.LittleEndian.Uint32(data[i*4:]))
	}
	return out, nil
}

// Uint32View views a little-endian byte buffer as count uint32 values.
// Same aliasing rules as Float32View.
func Uint32View(data []byte, count int) ([]uint32, error) {
	if len(data) < count*4 {
		return nil, ErrShortBuffer
	}
	if count == 0 {
		return nil, nil
	}

	if hostLittleEndian && uintptr(unsafe.Pointer(&data[0]))%4 == 0 {
		return unsafe.Slice((*uint32)(unsafe.Pointer(&data[0])), count), nil
	}

	out := make([]uint32, count)
	for i := range out {
		out[i] = binary.LittleEndian.Uint32(data[i*4:])
	}
	return out, nil
}
