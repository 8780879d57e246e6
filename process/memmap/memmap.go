// Package memmap models the line-oriented memory-map text format exposed per
// process (`start-end perms offset dev inode [pathname]`, addresses in hex).
// The syscall-based backend consumes it for name matching and base-address
// resolution; parsing itself is OS-independent.
package memmap

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Entry is one parsed mapping line.
type Entry struct {
	Start  uintptr
	End    uintptr
	Perms  string // e.g. "r-xp"
	Offset uint64
	Dev    string
	Inode  uint64
	Path   string // empty for anonymous mappings; may be a pseudo path like [heap]

	raw string
}

func (e Entry) String() string {
	return strings.TrimSpace(e.raw)
}

// Size returns the mapping's length in bytes.
func (e Entry) Size() uint {
	return uint(e.End - e.Start)
}

// Contains reports whether addr falls inside the mapping.
func (e Entry) Contains(addr uintptr) bool {
	return addr >= e.Start && addr < e.End
}

func (e Entry) Readable() bool {
	return len(e.Perms) > 0 && e.Perms[0] == 'r'
}

func (e Entry) Writable() bool {
	return len(e.Perms) > 1 && e.Perms[1] == 'w'
}

func (e Entry) Executable() bool {
	return len(e.Perms) > 2 && e.Perms[2] == 'x'
}

// MatchesSuffix reports whether the trimmed mapping line ends with name.
// This is a suffix match against the whole line, so a name like
// "libc.so.6" matches any mapping of a path ending in it. Both the module
// resolver and name-based enumeration use exactly this rule.
func (e Entry) MatchesSuffix(name string) bool {
	return name != "" && strings.HasSuffix(strings.TrimSpace(e.raw), name)
}

// ParseLine parses a single mapping line. It reports false for lines that do
// not carry at least an address range and permissions.
func ParseLine(line string) (Entry, bool) {
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return Entry{}, false
	}

	addrRange := strings.SplitN(fields[0], "-", 2)
	if len(addrRange) != 2 {
		return Entry{}, false
	}
	start, err := strconv.ParseUint(addrRange[0], 16, 64)
	if err != nil {
		return Entry{}, false
	}
	end, err := strconv.ParseUint(addrRange[1], 16, 64)
	if err != nil {
		return Entry{}, false
	}

	e := Entry{
		Start: uintptr(start),
		End:   uintptr(end),
		Perms: fields[1],
		raw:   line,
	}
	if len(fields) > 2 {
		e.Offset, _ = strconv.ParseUint(fields[2], 16, 64)
	}
	if len(fields) > 3 {
		e.Dev = fields[3]
	}
	if len(fields) > 4 {
		e.Inode, _ = strconv.ParseUint(fields[4], 10, 64)
	}
	if len(fields) > 5 {
		// The pathname may contain spaces; take everything after the inode
		// field from the original line.
		rest := line
		for i := 0; i < 5; i++ {
			rest = rest[strings.Index(rest, fields[i])+len(fields[i]):]
		}
		e.Path = strings.TrimSpace(rest)
	}
	return e, true
}

// Parse reads a whole memory-map text source, skipping malformed lines.
func Parse(r io.Reader) ([]Entry, error) {
	var entries []Entry
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if e, ok := ParseLine(scanner.Text()); ok {
			entries = append(entries, e)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan memory map: %w", err)
	}
	return entries, nil
}

// Find returns the first entry whose trimmed line ends with name.
func Find(entries []Entry, name string) (Entry, bool) {
	for _, e := range entries {
		if e.MatchesSuffix(name) {
			return e, true
		}
	}
	return Entry{}, false
}

// Region returns the entry containing addr, if any.
func Region(entries []Entry, addr uintptr) (Entry, bool) {
	for _, e := range entries {
		if e.Contains(addr) {
			return e, true
		}
	}
	return Entry{}, false
}
