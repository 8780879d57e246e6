//go:build linux

// Package process_linux implements the process.Process contract with the
// process_vm_readv syscall and the /proc/<pid>/maps text source. A pid is
// the whole handle here; no kernel resource is held open between reads.
package process_linux

import (
	"bufio"
	"fmt"
	"os"
	"strconv"

	"procmem/process"
	"procmem/process/memmap"

	"github.com/Moonlight-Companies/gologger/coloransi"
	"github.com/Moonlight-Companies/gologger/logger"
)

// LinuxProcess implements the process.Process interface for Linux systems.
type LinuxProcess struct {
	pid process.Pid
	log *logger.Logger
}

var _ process.Process = (*LinuxProcess)(nil)

// Open opens the process with the given pid for reading. Opening is a
// best-effort probe: it reports false when /proc/<pid> does not exist or is
// not visible, never an error.
func Open(pid process.Pid) (*LinuxProcess, bool) {
	if _, err := os.Stat(fmt.Sprintf("/proc/%d", pid)); err != nil {
		return nil, false
	}

	p := &LinuxProcess{
		pid: pid,
		log: logger.NewLogger(coloransi.Color(coloransi.ColorPurple, coloransi.ColorOrange, fmt.Sprintf("process-%d", pid))),
	}
	p.log.Infoln("Process opened")

	return p, true
}

// FindByName opens every running process whose memory map names it: a
// process matches when the first line of its /proc/<pid>/maps, trimmed,
// ends with name. That is a suffix match against a full mapped path, not an
// exact executable-name match. Processes that cannot be inspected or opened
// are skipped; the result is empty, never an error, when nothing matches or
// /proc itself is unavailable.
func FindByName(name string) []*LinuxProcess {
	var processes []*LinuxProcess

	entries, err := os.ReadDir("/proc")
	if err != nil {
		return processes
	}

	for _, dir := range entries {
		pid, err := strconv.Atoi(dir.Name())
		if err != nil || pid <= 0 {
			continue
		}

		line, err := firstMapsLine(pid)
		if err != nil {
			continue
		}
		entry, ok := memmap.ParseLine(line)
		if !ok || !entry.MatchesSuffix(name) {
			continue
		}

		if p, ok := Open(process.Pid(pid)); ok {
			processes = append(processes, p)
		}
	}

	return processes
}

// firstMapsLine returns the first line of /proc/<pid>/maps.
func firstMapsLine(pid int) (string, error) {
	file, err := os.Open(fmt.Sprintf("/proc/%d/maps", pid))
	if err != nil {
		return "", err
	}
	defer file.Close()

	reader := bufio.NewReader(file)
	line, err := reader.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return line, nil
}

// Pid returns the process id.
func (p *LinuxProcess) Pid() process.Pid {
	return p.pid
}

// Close releases the process. The pid is not an owned kernel resource, so
// there is nothing to free; Close exists to keep the contract uniform with
// the handle-based backend.
func (p *LinuxProcess) Close() error {
	p.log.Infoln("Process closed")
	return nil
}

// BaseAddress resolves module to the start address of the first
// /proc/<pid>/maps line whose trimmed text ends with module. A module
// usually spans several mapping entries; the first matching line's start is
// not guaranteed to be the true load base when earlier header segments are
// mapped separately.
func (p *LinuxProcess) BaseAddress(module string) (process.Address, bool) {
	entries, err := memmap.ReadProcessMaps(int(p.pid))
	if err != nil {
		p.log.Debugln("Failed to read memory map:", err)
		return 0, false
	}

	entry, ok := memmap.Find(entries, module)
	if !ok {
		return 0, false
	}
	return process.Address(entry.Start), true
}
