//go:build windows

package process_windows

import (
	"procmem/process"

	"golang.org/x/sys/windows"
)

// ReadBytes reads exactly len(buf) bytes at addr in one ReadProcessMemory
// call. A failing call surfaces as *process.InaccessibleMemoryAddressError;
// a short but non-failing read surfaces as *process.LessBytesReadError. No
// caching, no retry.
func (p *WindowsProcess) ReadBytes(addr process.Address, buf []byte) error {
	if len(buf) == 0 {
		return nil
	}

	var read uintptr
	err := windows.ReadProcessMemory(
		p.handle,
		uintptr(addr),
		&buf[0],
		uintptr(len(buf)),
		&read,
	)
	if err != nil {
		return &process.InaccessibleMemoryAddressError{Address: addr}
	}
	if read != uintptr(len(buf)) {
		return &process.LessBytesReadError{
			Expected: uint64(len(buf)),
			Actual:   uint64(read),
		}
	}

	return nil
}
