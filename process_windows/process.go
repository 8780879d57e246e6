//go:build windows

// Package process_windows implements the process.Process contract on top of
// an owned kernel process handle: OpenProcess for access, a Toolhelp32
// snapshot for enumeration, psapi module enumeration for base addresses and
// ReadProcessMemory for reads.
package process_windows

import (
	"fmt"
	"sync"
	"unsafe"

	"procmem/process"

	"github.com/Moonlight-Companies/gologger/coloransi"
	"github.com/Moonlight-Companies/gologger/logger"
	"golang.org/x/sys/windows"
)

// WindowsProcess implements the process.Process interface for Windows
// systems. It exclusively owns the kernel handle; the mutex only guards
// handle release, reads take no lock.
type WindowsProcess struct {
	pid    process.Pid
	log    *logger.Logger
	mu     sync.Mutex
	handle windows.Handle
}

var _ process.Process = (*WindowsProcess)(nil)

// Open opens the process with the given pid, requesting read plus
// query-information access. Opening is a best-effort probe: it reports
// false when the pid does not exist or access is denied, never an error.
func Open(pid process.Pid) (*WindowsProcess, bool) {
	handle, err := windows.OpenProcess(
		windows.PROCESS_VM_READ|windows.PROCESS_QUERY_INFORMATION,
		false,
		uint32(pid),
	)
	if err != nil || handle == 0 {
		return nil, false
	}

	p := &WindowsProcess{
		pid:    pid,
		handle: handle,
		log:    logger.NewLogger(coloransi.Color(coloransi.ColorPurple, coloransi.ColorOrange, fmt.Sprintf("process-%d", pid))),
	}
	p.log.Infoln("Process opened")

	return p, true
}

// FindByName opens every running process whose executable file name, as
// reported by a process snapshot, equals name exactly. Entries that match
// but fail to open are skipped. The result is empty, never an error, when
// nothing matches or the snapshot itself cannot be taken.
func FindByName(name string) []*WindowsProcess {
	var processes []*WindowsProcess

	snapshot, err := windows.CreateToolhelp32Snapshot(windows.TH32CS_SNAPPROCESS, 0)
	if err != nil {
		return processes
	}
	defer windows.CloseHandle(snapshot)

	var entry windows.ProcessEntry32
	entry.Size = uint32(unsafe.Sizeof(entry))

	if err := windows.Process32First(snapshot, &entry); err != nil {
		return processes
	}
	for {
		if windows.UTF16ToString(entry.ExeFile[:]) == name {
			if p, ok := Open(process.Pid(entry.ProcessID)); ok {
				processes = append(processes, p)
			}
		}
		if err := windows.Process32Next(snapshot, &entry); err != nil {
			break
		}
	}

	return processes
}

// Pid returns the process id.
func (p *WindowsProcess) Pid() process.Pid {
	return p.pid
}

// Close releases the owned kernel handle exactly once. Closing an already
// closed process is a no-op.
func (p *WindowsProcess) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.handle == 0 {
		return nil
	}

	err := windows.CloseHandle(p.handle)
	p.handle = 0
	if err != nil {
		return fmt.Errorf("CloseHandle: %w", err)
	}

	p.log.Infoln("Process closed")
	return nil
}
