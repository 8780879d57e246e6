//go:build linux

package process_linux

import (
	"unsafe"

	"procmem/process"

	"golang.org/x/sys/unix"
)

// processVMReadv issues one process_vm_readv call with a single local/remote
// iovec pair and returns the number of bytes transferred.
func processVMReadv(pid process.Pid, addr process.Address, buf []byte) (int, error) {
	localIov := unix.Iovec{
		Base: &buf[0],
		Len:  uint64(len(buf)),
	}
	remoteIov := unix.RemoteIovec{
		Base: uintptr(addr),
		Len:  len(buf),
	}

	n, _, errno := unix.Syscall6(
		unix.SYS_PROCESS_VM_READV,
		uintptr(pid),
		uintptr(unsafe.Pointer(&localIov)),
		uintptr(1),
		uintptr(unsafe.Pointer(&remoteIov)),
		uintptr(1),
		uintptr(0),
	)
	if errno != 0 {
		return 0, errno
	}

	return int(n), nil
}

// ReadBytes reads exactly len(buf) bytes at addr in one process_vm_readv
// call. A failing call surfaces as *process.IOError carrying the errno; a
// short but non-failing read surfaces as *process.LessBytesReadError. No
// caching, no retry.
func (p *LinuxProcess) ReadBytes(addr process.Address, buf []byte) error {
	if len(buf) == 0 {
		return nil
	}

	n, err := processVMReadv(p.pid, addr, buf)
	if err != nil {
		return &process.IOError{Cause: err}
	}
	if n != len(buf) {
		return &process.LessBytesReadError{
			Expected: uint64(len(buf)),
			Actual:   uint64(n),
		}
	}

	return nil
}
