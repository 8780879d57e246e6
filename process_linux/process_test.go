//go:build linux

package process_linux_test

import (
	"os"
	"os/exec"
	"runtime"
	"strings"
	"sync"
	"testing"
	"unsafe"

	"procmem/process"
	"procmem/process/memmap"
	"procmem/process_linux"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The tests read the test process's own memory: process_vm_readv against
// oneself is always permitted, which exercises the real syscall path
// without fixtures or elevated privileges.

func openSelf(t *testing.T) *process_linux.LinuxProcess {
	t.Helper()
	p, ok := process_linux.Open(process.Pid(os.Getpid()))
	require.True(t, ok)
	t.Cleanup(func() { p.Close() })
	return p
}

func addrOf(b *byte) process.Address {
	return process.Address(uintptr(unsafe.Pointer(b)))
}

func TestOpenSelf(t *testing.T) {
	p := openSelf(t)
	assert.Equal(t, process.Pid(os.Getpid()), p.Pid())
}

func TestOpenSpawnedHelper(t *testing.T) {
	cmd := exec.Command("sleep", "30")
	if err := cmd.Start(); err != nil {
		t.Skipf("cannot spawn helper: %v", err)
	}
	defer func() {
		cmd.Process.Kill()
		cmd.Wait()
	}()

	p, ok := process_linux.Open(process.Pid(cmd.Process.Pid))
	require.True(t, ok)
	defer p.Close()
	assert.Equal(t, process.Pid(cmd.Process.Pid), p.Pid())
}

func TestOpenMissingPidIsAbsent(t *testing.T) {
	// Far above the default pid_max; /proc has no such entry.
	_, ok := process_linux.Open(process.Pid(1 << 30))
	assert.False(t, ok)
}

func TestReadBytesExactLength(t *testing.T) {
	p := openSelf(t)

	data := []byte{0xDE, 0xAD, 0xBE, 0xEF, 0x01, 0x02, 0x03, 0x04}
	buf := make([]byte, len(data))
	err := p.ReadBytes(addrOf(&data[0]), buf)
	require.NoError(t, err)
	assert.Equal(t, data, buf)
	runtime.KeepAlive(data)
}

func TestReadBytesZeroLength(t *testing.T) {
	p := openSelf(t)
	assert.NoError(t, p.ReadBytes(0x1, nil))
}

func TestReadUnmappedAddress(t *testing.T) {
	p := openSelf(t)

	buf := make([]byte, 4)
	err := p.ReadBytes(0x1, buf)
	require.Error(t, err)

	var ioErr *process.IOError
	require.ErrorAs(t, err, &ioErr)
	assert.Error(t, ioErr.Cause)
}

func TestTypedReadsRoundTrip(t *testing.T) {
	p := openSelf(t)

	t.Run("uint32", func(t *testing.T) {
		data := []byte{0x01, 0x00, 0x00, 0x00}
		v, err := process.ReadUint32(p, addrOf(&data[0]))
		require.NoError(t, err)
		assert.Equal(t, uint32(1), v)
		runtime.KeepAlive(data)
	})

	t.Run("uint64", func(t *testing.T) {
		value := uint64(0x0123456789ABCDEF)
		v, err := process.ReadUint64(p, process.Address(uintptr(unsafe.Pointer(&value))))
		require.NoError(t, err)
		assert.Equal(t, value, v)
		runtime.KeepAlive(&value)
	})

	t.Run("float64", func(t *testing.T) {
		value := 3.141592653589793
		v, err := process.ReadFloat64(p, process.Address(uintptr(unsafe.Pointer(&value))))
		require.NoError(t, err)
		assert.Equal(t, value, v)
		runtime.KeepAlive(&value)
	})

	t.Run("bool", func(t *testing.T) {
		data := []byte{1, 0, 2}
		for i, want := range []bool{true, false, false} {
			v, err := process.ReadBool(p, addrOf(&data[i]))
			require.NoError(t, err)
			assert.Equal(t, want, v)
		}
		runtime.KeepAlive(data)
	})

	t.Run("string", func(t *testing.T) {
		data := []byte("hello\x00trailing")
		s, err := process.ReadString(p, addrOf(&data[0]))
		require.NoError(t, err)
		assert.Equal(t, "hello", s)
		runtime.KeepAlive(data)
	})
}

func TestFindByNameNoMatch(t *testing.T) {
	processes := process_linux.FindByName("nonexistent-xyz-b2a1c3")
	assert.Empty(t, processes)
}

func TestBaseAddressAbsentModule(t *testing.T) {
	p := openSelf(t)
	_, ok := p.BaseAddress("no-such-module-xyz.so")
	assert.False(t, ok)
}

func TestBaseAddressMatchesFirstMapsLine(t *testing.T) {
	p := openSelf(t)

	entries, err := memmap.ReadProcessMaps(os.Getpid())
	require.NoError(t, err)
	require.NotEmpty(t, entries)

	var target memmap.Entry
	found := false
	for _, e := range entries {
		if strings.HasPrefix(e.Path, "/") {
			target = e
			found = true
			break
		}
	}
	if !found {
		t.Skip("no file-backed mapping in own maps")
	}

	want, ok := memmap.Find(entries, target.Path)
	require.True(t, ok)

	addr, ok := p.BaseAddress(target.Path)
	require.True(t, ok)
	assert.Equal(t, process.Address(want.Start), addr)
}

func TestConcurrentReads(t *testing.T) {
	p := openSelf(t)

	value := uint64(0xCAFEBABE12345678)
	addr := process.Address(uintptr(unsafe.Pointer(&value)))

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 100 {
				v, err := process.ReadUint64(p, addr)
				assert.NoError(t, err)
				assert.Equal(t, uint64(0xCAFEBABE12345678), v)
			}
		}()
	}
	wg.Wait()
	runtime.KeepAlive(&value)
}
