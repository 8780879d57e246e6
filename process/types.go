package process

import "fmt"

// Pid is an OS-assigned numeric process id.
type Pid int

// Address is a virtual address in the target process, sized to the host's
// pointer width. Addresses are opaque unsigned integers; no alignment is
// required anywhere in the contract.
type Address uintptr

func (a Address) String() string {
	return fmt.Sprintf("0x%X", uintptr(a))
}

// Uint128 is a little-endian 128-bit unsigned integer. Go has no native
// 128-bit type, so the two halves are exposed directly.
type Uint128 struct {
	Lo uint64
	Hi uint64
}

func (u Uint128) String() string {
	if u.Hi == 0 {
		return fmt.Sprintf("0x%X", u.Lo)
	}
	return fmt.Sprintf("0x%X%016X", u.Hi, u.Lo)
}
