//go:build windows

package process_windows

import (
	"strings"
	"unsafe"

	"procmem/process"

	"golang.org/x/sys/windows"
)

// maxModules bounds one EnumProcessModules call; module handles past the
// bound are not inspected.
const maxModules = 1024

// BaseAddress enumerates the target's loaded modules and returns the base
// address of the first module whose short base name equals module
// case-insensitively. It reports false when enumeration fails or nothing
// matches.
func (p *WindowsProcess) BaseAddress(module string) (process.Address, bool) {
	p.mu.Lock()
	handle := p.handle
	p.mu.Unlock()
	if handle == 0 {
		return 0, false
	}

	modules := make([]windows.Handle, maxModules)
	var needed uint32
	cb := uint32(uintptr(len(modules)) * unsafe.Sizeof(modules[0]))
	if err := windows.EnumProcessModules(handle, &modules[0], cb, &needed); err != nil {
		p.log.Debugln("EnumProcessModules failed:", err)
		return 0, false
	}

	count := int(uintptr(needed) / unsafe.Sizeof(modules[0]))
	if count > len(modules) {
		count = len(modules)
	}

	var baseName [windows.MAX_PATH]uint16
	for _, mod := range modules[:count] {
		if err := windows.GetModuleBaseName(handle, mod, &baseName[0], uint32(len(baseName))); err != nil {
			continue
		}
		if strings.EqualFold(windows.UTF16ToString(baseName[:]), module) {
			return process.Address(mod), true
		}
	}

	return 0, false
}
