package process

import "fmt"

// The error model is a closed set. Read operations are the only operations
// that produce errors; open, enumerate and resolve operations report absence
// (a false bool or an empty slice) instead.

// InaccessibleMemoryAddressError reports that the remote read call itself
// failed, typically because the address is unmapped or protected.
type InaccessibleMemoryAddressError struct {
	Address Address
}

func (e *InaccessibleMemoryAddressError) Error() string {
	return fmt.Sprintf("inaccessible memory address %s", e.Address)
}

// LessBytesReadError reports a read call that succeeded but returned fewer
// bytes than requested.
type LessBytesReadError struct {
	Expected uint64
	Actual   uint64
}

func (e *LessBytesReadError) Error() string {
	return fmt.Sprintf("read %d of %d requested bytes", e.Actual, e.Expected)
}

// IOError carries an underlying OS error: the read syscall's errno on the
// syscall-based backend, or a failure opening a map-info source.
type IOError struct {
	Cause error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("io error: %v", e.Cause)
}

func (e *IOError) Unwrap() error {
	return e.Cause
}
