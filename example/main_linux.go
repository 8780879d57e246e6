//go:build linux

package main

import (
	"fmt"
	"os"

	"procmem/process_linux"
)

func main() {
	if len(os.Args) < 3 {
		fmt.Fprintf(os.Stderr, "usage: %s <process-name> <module-name>\n", os.Args[0])
		os.Exit(1)
	}

	processes := process_linux.FindByName(os.Args[1])
	if len(processes) == 0 {
		fmt.Fprintf(os.Stderr, "no process matching %q\n", os.Args[1])
		os.Exit(1)
	}
	for _, p := range processes[1:] {
		p.Close()
	}

	inspect(processes[0], os.Args[2])
}
