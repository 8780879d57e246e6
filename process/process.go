// Package process defines the capability contract shared by the OS-specific
// backends: a raw byte reader over a foreign process's address space, module
// base-address resolution, and typed decoders layered on the raw reader.
//
// Exactly one backend package (process_linux or process_windows) is compiled
// into a binary; both satisfy Process identically, so calling code is
// backend-agnostic.
package process

// ByteReader is the single raw primitive every other read builds on.
type ByteReader interface {
	// ReadBytes reads exactly len(buf) bytes at addr in the target process.
	// It either fills buf completely or returns a structured error; a
	// partial result is never returned silently.
	ReadBytes(addr Address, buf []byte) error
}

// Process is an opened target process. A Process is only ever produced by a
// successful Open (or FindByName) in a backend package, and is valid until
// its Close. Concurrent reads on one Process are safe; the read path holds
// no mutable shared state.
type Process interface {
	ByteReader

	// Pid returns the target's process id.
	Pid() Pid

	// BaseAddress resolves the load address of a named module in the
	// target. It reports false when the module is not present or module
	// enumeration fails; resolution never produces an error.
	BaseAddress(module string) (Address, bool)

	// Close releases the process. On the handle-based backend this closes
	// the owned kernel handle exactly once; callers defer it at the scope
	// that opened the process.
	Close() error
}
