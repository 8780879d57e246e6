package pod_test

import (
	"testing"

	"procmem/pod"
	"procmem/process"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memReader struct {
	base process.Address
	data []byte
}

func (m *memReader) ReadBytes(addr process.Address, buf []byte) error {
	if addr < m.base || int(addr-m.base)+len(buf) > len(m.data) {
		return &process.InaccessibleMemoryAddressError{Address: addr}
	}
	off := int(addr - m.base)
	copy(buf, m.data[off:off+len(buf)])
	return nil
}

type vec3 struct {
	X, Y, Z float32
	Flags   uint32
}

type unit struct {
	ID     uint32
	Mode   uint32
	Pos    vec3
	Health int32
	Tag    [4]byte
}

func TestReadTRoundTrip(t *testing.T) {
	want := unit{
		ID:     42,
		Mode:   7,
		Pos:    vec3{X: 1.5, Y: -2.25, Z: 100, Flags: 0xFF},
		Health: -30,
		Tag:    [4]byte{'v', '1', 0, 0},
	}

	r := &memReader{base: 0x2000, data: pod.Bytes(want)}

	got, err := pod.ReadT[unit](r, 0x2000)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestReadTRejectsPointerTypes(t *testing.T) {
	type bad struct {
		Next *bad
	}
	r := &memReader{base: 0x2000, data: make([]byte, 64)}

	_, err := pod.ReadT[bad](r, 0x2000)
	assert.Error(t, err)

	type alsoBad struct {
		Name string
	}
	_, err = pod.ReadT[alsoBad](r, 0x2000)
	assert.Error(t, err)
}

func TestReadTPropagatesReadErrors(t *testing.T) {
	r := &memReader{base: 0x2000, data: make([]byte, 2)}

	_, err := pod.ReadT[uint64](r, 0x2000)
	var inacc *process.InaccessibleMemoryAddressError
	require.ErrorAs(t, err, &inacc)
}

func TestReadSliceT(t *testing.T) {
	want := []vec3{
		{X: 1, Y: 2, Z: 3, Flags: 4},
		{X: 5, Y: 6, Z: 7, Flags: 8},
		{X: 9, Y: 10, Z: 11, Flags: 12},
	}

	var data []byte
	for _, v := range want {
		data = append(data, pod.Bytes(v)...)
	}
	r := &memReader{base: 0x3000, data: data}

	got, err := pod.ReadSliceT[vec3](r, 0x3000, len(want))
	require.NoError(t, err)
	assert.Equal(t, want, got)

	empty, err := pod.ReadSliceT[vec3](r, 0x3000, 0)
	require.NoError(t, err)
	assert.Empty(t, empty)

	_, err = pod.ReadSliceT[vec3](r, 0x3000, -1)
	assert.Error(t, err)
}

func TestSizeOf(t *testing.T) {
	assert.Equal(t, uint(16), pod.SizeOf[vec3]())
	assert.Equal(t, uint(8), pod.SizeOf[uint64]())
	assert.Equal(t, uint(0), pod.SizeOf[struct{}]())
}
