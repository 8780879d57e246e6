//go:build linux

package memmap

import (
	"fmt"
	"os"
)

// ReadProcessMaps parses /proc/<pid>/maps for the given process.
func ReadProcessMaps(pid int) ([]Entry, error) {
	file, err := os.Open(fmt.Sprintf("/proc/%d/maps", pid))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return Parse(file)
}
