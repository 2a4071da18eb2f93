// Package script parses and runs a line-oriented, whitespace-separated
// script file: a ten-field header line, followed by load/store/print
// commands.
package script

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"vmemsim"
)

// ParseHeader reads the script's first line and parses the ten
// configuration fields. Fewer than ten fields is a fatal init error;
// the caller should not proceed to build an Engine from a partial
// Config.
func ParseHeader(r *bufio.Reader) (vmemsim.Config, error) {
	line, err := r.ReadString('\n')
	if err != nil && line == "" {
		return vmemsim.Config{}, fmt.Errorf("script: empty or missing configuration line: %w", err)
	}

	fields := strings.Fields(line)
	if len(fields) != 10 {
		return vmemsim.Config{}, fmt.Errorf("script: invalid header format, got %d fields, want 10", len(fields))
	}

	ints := make([]int, 8)
	for i, f := range fields[2:] {
		n, err := strconv.Atoi(f)
		if err != nil {
			return vmemsim.Config{}, fmt.Errorf("script: invalid header field %q: %w", f, err)
		}
		ints[i] = n
	}

	return vmemsim.Config{
		ExePath:       fields[0],
		SwapPath:      fields[1],
		TextSize:      ints[0],
		DataSize:      ints[1],
		BssSize:       ints[2],
		HeapStackSize: ints[3],
		PageSize:      ints[4],
		NumPages:      ints[5],
		MemorySize:    ints[6],
		SwapSize:      ints[7],
	}, nil
}

// Run processes the remaining script lines as commands against e,
// writing the "Invalid script format" diagnostic to errOut for any
// line this grammar doesn't recognize, and continuing with the next
// line rather than aborting the run.
func Run(r *bufio.Reader, e *vmemsim.Engine, errOut io.Writer) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		runLine(line, e, errOut)
	}
}

func runLine(line string, e *vmemsim.Engine, errOut io.Writer) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return
	}

	switch fields[0] {
	case "load":
		if len(fields) != 2 {
			invalid(errOut)
			return
		}
		addr, err := strconv.Atoi(fields[1])
		if err != nil {
			invalid(errOut)
			return
		}
		e.Load(addr)

	case "store":
		if len(fields) != 3 || len(fields[2]) != 1 {
			invalid(errOut)
			return
		}
		addr, err := strconv.Atoi(fields[1])
		if err != nil {
			invalid(errOut)
			return
		}
		e.Store(addr, fields[2][0])

	case "print":
		if len(fields) != 2 {
			invalid(errOut)
			return
		}
		switch fields[1] {
		case "table":
			e.DumpPageTable()
		case "ram":
			e.DumpRAM()
		case "swap":
			e.DumpSwap()
		case "tlb":
			e.DumpTLB()
		default:
			invalid(errOut)
		}

	default:
		invalid(errOut)
	}
}

func invalid(errOut io.Writer) {
	fmt.Fprintln(errOut, "Error: Invalid script format")
}
