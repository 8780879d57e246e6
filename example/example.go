package main

import (
	"fmt"

	"procmem/process"
)

// inspect demonstrates the backend-agnostic surface: everything below runs
// unchanged against either backend.
func inspect(p process.Process, module string) {
	defer p.Close()

	fmt.Printf("pid: %d\n", p.Pid())

	base, ok := p.BaseAddress(module)
	if !ok {
		fmt.Printf("module %q not found\n", module)
		return
	}
	fmt.Printf("%s loaded at %s\n", module, base)

	if v, err := process.ReadUint32(p, base); err == nil {
		fmt.Printf("first u32 at base: 0x%08X\n", v)
	}
}
