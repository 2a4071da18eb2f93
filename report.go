package vmemsim

import (
	"fmt"
	"io"
)

// DumpPageTable writes the page table report.
func (e *Engine) DumpPageTable() {
	fmt.Fprintln(e.Out, "=== PAGE TABLE ===")
	fmt.Fprintf(e.Out, "Number of pages: %d\n", e.pageTable.NumPages())
	fmt.Fprintln(e.Out, "Page | V | D | P | Frame/Swap | Segment")
	fmt.Fprintln(e.Out, "-----|---|---|---|------------|--------")

	for page := 0; page < e.pageTable.NumPages(); page++ {
		desc := e.pageTable.Get(page)
		loc := "     -    "
		if desc.Location != -1 {
			loc = fmt.Sprintf("   %4d   ", desc.Location)
		}
		fmt.Fprintf(e.Out, "%4d | %d | %d | %d |%s| %s\n",
			page, b2i(desc.V), b2i(desc.D), b2i(desc.P), loc, e.pageTable.SegmentOf(page))
	}
	fmt.Fprintln(e.Out, "==================")
	fmt.Fprintln(e.Out, "Legend: V=Valid, D=Dirty, P=Permission (1=Read-Only, 0=Read/Write)")
	fmt.Fprintln(e.Out, "        Frame/Swap: Frame number if in memory (V=1), Swap page if swapped out")
	fmt.Fprintln(e.Out)
}

// DumpRAM writes a per-frame hex/ASCII dump of physical memory.
func (e *Engine) DumpRAM() {
	fmt.Fprintln(e.Out, "=== MAIN MEMORY CONTENTS ===")
	fmt.Fprintf(e.Out, "Memory size: %d bytes, Page size: %d bytes, Number of frames: %d\n",
		e.cfg.MemorySize, e.cfg.PageSize, e.frameTable.NumFrames())

	for frame := 0; frame < e.frameTable.NumFrames(); frame++ {
		start := frame * e.cfg.PageSize
		dumpBlock(e.Out, fmt.Sprintf("Frame %d: ", frame), e.ram[start:start+e.cfg.PageSize])
	}
	fmt.Fprintln(e.Out, "=============================")
	fmt.Fprintln(e.Out)
}

// DumpSwap writes a per-slot hex/ASCII dump of the swap file.
func (e *Engine) DumpSwap() {
	numSlots := e.cfg.SwapSize / e.cfg.PageSize
	fmt.Fprintln(e.Out, "=== SWAP FILE CONTENTS ===")
	fmt.Fprintf(e.Out, "Swap size: %d bytes, Page size: %d bytes, Number of swap pages: %d\n",
		e.cfg.SwapSize, e.cfg.PageSize, numSlots)

	for slot := 0; slot < numSlots; slot++ {
		buf, err := e.swap.ReadPage(slot)
		if err != nil {
			fmt.Fprintf(e.Out, "Swap Page %d: [Error reading]\n", slot)
			continue
		}
		dumpBlock(e.Out, fmt.Sprintf("Swap Page %d: ", slot), buf)
	}
	fmt.Fprintln(e.Out, "===========================")
	fmt.Fprintln(e.Out)
}

// DumpTLB writes the TLB contents, or a "not enabled" notice when the
// engine was configured without one (Config.TLBSize == 0).
func (e *Engine) DumpTLB() {
	if e.tlb == nil {
		fmt.Fprintln(e.Out, "TLB not enabled")
		return
	}
	fmt.Fprintln(e.Out, "=== TLB CONTENTS ===")
	fmt.Fprintf(e.Out, "TLB size: %d entries\n", e.tlb.size)
	fmt.Fprintln(e.Out, "Entry | Valid | Page | Frame | Timestamp")
	fmt.Fprintln(e.Out, "------|-------|------|-------|----------")
	for i, ent := range e.tlb.entries {
		if ent.valid {
			fmt.Fprintf(e.Out, "  %d   |   1   | %4d | %5d |  %8d\n", i, ent.page, ent.frame, ent.timestamp)
		} else {
			fmt.Fprintf(e.Out, "  %d   |   0   |   -  |   -   |     -\n", i)
		}
	}
	fmt.Fprintln(e.Out, "====================")
	fmt.Fprintln(e.Out)
}

func dumpBlock(w io.Writer, prefix string, data []byte) {
	fmt.Fprint(w, prefix)
	for _, b := range data {
		fmt.Fprintf(w, "%02X ", b)
	}
	fmt.Fprint(w, "| ")
	for _, b := range data {
		if b >= 32 && b <= 126 {
			fmt.Fprintf(w, "%c", b)
		} else {
			fmt.Fprint(w, ".")
		}
	}
	fmt.Fprintln(w)
}

func b2i(b bool) int {
	if b {
		return 1
	}
	return 0
}
