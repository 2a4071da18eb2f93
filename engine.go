package vmemsim

import (
	"fmt"
	"io"
	"os"

	"vmemsim/backend"
)

// uninitializedMarker is the byte RAM and freed swap slots are filled
// with: ASCII '-'. BSS/HEAP/STACK fault-in fills with 0x00, which must
// stay visibly distinct from it.
const uninitializedMarker = '-'

// Engine is the single-instance handle: the page table, frame table,
// RAM, and the swap/executable-image backends all live here, created
// by NewEngine and released together by Close.
type Engine struct {
	cfg Config
	d   derived

	pageTable  *PageTable
	frameTable *FrameTable
	ram        []byte
	frameOwner []int // frame -> resident page, or -1 if none

	swap SwapStore
	exe  ExecutableImage

	tlb *tlb

	// Out/Err receive the engine's event lines. They default to
	// os.Stdout/os.Stderr; tests substitute a *bytes.Buffer to assert on
	// exact wording without touching process-global streams.
	Out io.Writer
	Err io.Writer
}

// SwapStore and ExecutableImage are re-exported aliases so callers don't
// need to import the backend package just to hold a field of this type.
type SwapStore = backend.SwapStore
type ExecutableImage = backend.ExecutableImage

// NewEngine validates cfg, opens the page table, frame table and RAM
// buffer, and wires in the given swap store and executable image. A
// malformed Config is a fatal BadConfig error; the engine never starts.
func NewEngine(cfg Config, swap SwapStore, exe ExecutableImage) (*Engine, Err) {
	d, err := cfg.validate()
	if err != ErrOk {
		return nil, err
	}

	ram := make([]byte, cfg.MemorySize)
	for i := range ram {
		ram[i] = uninitializedMarker
	}

	frameOwner := make([]int, d.numFrames)
	for i := range frameOwner {
		frameOwner[i] = -1
	}

	e := &Engine{
		cfg:        cfg,
		d:          d,
		pageTable:  newPageTable(cfg.NumPages, d),
		frameTable: newFrameTable(d.numFrames),
		ram:        ram,
		frameOwner: frameOwner,
		swap:       swap,
		exe:        exe,
		Out:        os.Stdout,
		Err:        os.Stderr,
	}
	if cfg.TLBSize > 0 {
		e.tlb = newTLB(cfg.TLBSize)
	}

	fmt.Fprintf(e.Out, "Loaded program %q with text=%d, data=%d, bss=%d, heap_stack=%d.\n",
		cfg.ExePath, cfg.TextSize, cfg.DataSize, cfg.BssSize, cfg.HeapStackSize)

	return e, ErrOk
}

// Close releases the engine's backends. RAM and the page/frame tables
// are ordinary Go heap values and need no explicit teardown; only the
// file-backed collaborators do.
func (e *Engine) Close() error {
	var firstErr error
	if err := e.swap.Close(); err != nil && firstErr == nil {
		firstErr = err
	}
	if err := e.exe.Close(); err != nil && firstErr == nil {
		firstErr = err
	}
	return firstErr
}

func (e *Engine) errPrintf(format string, args ...interface{}) {
	fmt.Fprintf(e.Err, format, args...)
}

// Load reads a byte from virtual address addr, faulting the containing
// page in first if it isn't resident.
func (e *Engine) Load(addr int) (byte, Err) {
	page, offset, derr := decodeAddress(e.d, addr)
	if derr != ErrOk {
		e.errPrintf("Error: Invalid address %d (out of range)\n", addr)
		return uninitializedMarker, derr
	}

	desc := e.pageTable.Get(page)
	if !desc.V {
		ferr := e.fault(page)
		if ferr != ErrOk {
			return uninitializedMarker, ferr
		}
		desc = e.pageTable.Get(page)
	}

	e.frameTable.touch(desc.Location)
	e.tlbInstall(page, desc.Location)
	phys := desc.Location*e.cfg.PageSize + offset
	val := e.ram[phys]
	fmt.Fprintf(e.Out, "Value at address %d = %c\n", addr, val)
	return val, ErrOk
}

// Store writes value to virtual address addr, rejecting writes to a
// read-only segment and faulting the containing page in first if it
// isn't resident.
func (e *Engine) Store(addr int, value byte) Err {
	page, offset, derr := decodeAddress(e.d, addr)
	if derr != ErrOk {
		e.errPrintf("Error: Invalid address %d (out of range)\n", addr)
		return derr
	}

	desc := e.pageTable.Get(page)
	if desc.P {
		e.errPrintf("Error: Invalid write operation to read-only segment at address %d\n", addr)
		return ErrPermission
	}

	if !desc.V {
		if ferr := e.fault(page); ferr != ErrOk {
			return ferr
		}
		desc = e.pageTable.Get(page)
	}

	phys := desc.Location*e.cfg.PageSize + offset
	e.ram[phys] = value
	desc.D = true
	e.pageTable.Set(page, desc)
	e.frameTable.touch(desc.Location)
	e.tlbInstall(page, desc.Location)
	fmt.Fprintf(e.Out, "Stored value '%c' at address %d\n", value, addr)
	return ErrOk
}
