package process

import (
	"encoding/binary"
	"math"
	"unicode/utf8"
	"unsafe"

	"golang.org/x/exp/constraints"
)

// Typed decoders are layered entirely on top of ByteReader.ReadBytes so that
// neither backend duplicates decode logic. All fixed-width values are decoded
// little-endian and read exactly the type's byte width in one call.

// readUint reads and decodes an unsigned integer of T's exact width.
func readUint[T constraints.Unsigned](r ByteReader, addr Address) (T, error) {
	var v T
	buf := make([]byte, unsafe.Sizeof(v))
	if err := r.ReadBytes(addr, buf); err != nil {
		return 0, err
	}
	for i := len(buf) - 1; i >= 0; i-- {
		v = v<<8 | T(buf[i])
	}
	return v, nil
}

// ReadUint8 reads an unsigned 8-bit integer at addr.
func ReadUint8(r ByteReader, addr Address) (uint8, error) {
	return readUint[uint8](r, addr)
}

// ReadUint16 reads a little-endian unsigned 16-bit integer at addr.
func ReadUint16(r ByteReader, addr Address) (uint16, error) {
	return readUint[uint16](r, addr)
}

// ReadUint32 reads a little-endian unsigned 32-bit integer at addr.
func ReadUint32(r ByteReader, addr Address) (uint32, error) {
	return readUint[uint32](r, addr)
}

// ReadUint64 reads a little-endian unsigned 64-bit integer at addr.
func ReadUint64(r ByteReader, addr Address) (uint64, error) {
	return readUint[uint64](r, addr)
}

// ReadUint128 reads a little-endian unsigned 128-bit integer at addr.
func ReadUint128(r ByteReader, addr Address) (Uint128, error) {
	buf := make([]byte, 16)
	if err := r.ReadBytes(addr, buf); err != nil {
		return Uint128{}, err
	}
	return Uint128{
		Lo: binary.LittleEndian.Uint64(buf[:8]),
		Hi: binary.LittleEndian.Uint64(buf[8:]),
	}, nil
}

// ReadInt8 reads a signed 8-bit integer at addr.
func ReadInt8(r ByteReader, addr Address) (int8, error) {
	v, err := readUint[uint8](r, addr)
	return int8(v), err
}

// ReadInt16 reads a little-endian signed 16-bit integer at addr.
func ReadInt16(r ByteReader, addr Address) (int16, error) {
	v, err := readUint[uint16](r, addr)
	return int16(v), err
}

// ReadInt32 reads a little-endian signed 32-bit integer at addr.
func ReadInt32(r ByteReader, addr Address) (int32, error) {
	v, err := readUint[uint32](r, addr)
	return int32(v), err
}

// ReadInt64 reads a little-endian signed 64-bit integer at addr.
func ReadInt64(r ByteReader, addr Address) (int64, error) {
	v, err := readUint[uint64](r, addr)
	return int64(v), err
}

// ReadFloat32 reads a little-endian IEEE-754 single at addr.
func ReadFloat32(r ByteReader, addr Address) (float32, error) {
	v, err := readUint[uint32](r, addr)
	return math.Float32frombits(v), err
}

// ReadFloat64 reads a little-endian IEEE-754 double at addr.
func ReadFloat64(r ByteReader, addr Address) (float64, error) {
	v, err := readUint[uint64](r, addr)
	return math.Float64frombits(v), err
}

// ReadPointer reads a pointer-width value at addr.
func ReadPointer(r ByteReader, addr Address) (Address, error) {
	v, err := readUint[uintptr](r, addr)
	return Address(v), err
}

// ReadBool reads one byte at addr; the result is true iff the byte is
// exactly 1. Any other value, including other nonzero bytes, is false.
func ReadBool(r ByteReader, addr Address) (bool, error) {
	v, err := readUint[uint8](r, addr)
	return v == 1, err
}

// ReadString reads a NUL-terminated string starting at addr, one byte per
// read. The terminator is not part of the result. Bytes that are not valid
// UTF-8 yield the empty string rather than an error.
//
// There is no length bound: if no terminator exists before the end of the
// mapped region, reads continue until one fails. Use ReadStringN when the
// address is untrusted.
func ReadString(r ByteReader, addr Address) (string, error) {
	return readString(r, addr, -1)
}

// ReadStringN is ReadString with an upper bound: at most max bytes are read,
// and a missing terminator returns what was accumulated.
func ReadStringN(r ByteReader, addr Address, max int) (string, error) {
	if max < 0 {
		max = 0
	}
	return readString(r, addr, max)
}

func readString(r ByteReader, addr Address, max int) (string, error) {
	var buf []byte
	one := make([]byte, 1)
	for i := 0; max < 0 || i < max; i++ {
		if err := r.ReadBytes(addr+Address(i), one); err != nil {
			return "", err
		}
		if one[0] == 0 {
			break
		}
		buf = append(buf, one[0])
	}
	if !utf8.Valid(buf) {
		return "", nil
	}
	return string(buf), nil
}
