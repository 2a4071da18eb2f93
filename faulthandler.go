package vmemsim

import "fmt"

// fault is invoked by Load/Store whenever a page's descriptor has
// V=0. It selects the source of initial contents, obtains a frame
// (possibly evicting a resident victim), installs the page, and
// returns. The caller retries the access after fault returns ErrOk.
func (e *Engine) fault(page int) Err {
	desc := e.pageTable.Get(page)

	var source []byte
	switch {
	case desc.P:
		buf := make([]byte, e.cfg.PageSize)
		fmt.Fprintf(e.Out, "Page fault: Loading page %d from %s\n", page, e.cfg.ExePath)
		if err := e.exe.ReadPage(page, buf); err != nil {
			return ErrIOError
		}
		source = buf

	case !desc.D && e.d.neverWritten(page):
		buf := make([]byte, e.cfg.PageSize)
		fmt.Fprintf(e.Out, "Page fault: Loading page %d from %s\n", page, e.cfg.ExePath)
		if err := e.exe.ReadPage(page, buf); err != nil {
			return ErrIOError
		}
		source = buf

	case !desc.D:
		fmt.Fprintf(e.Out, "Page fault: Loading page %d with zeros\n", page)
		source = make([]byte, e.cfg.PageSize)

	default: // P=0, D=1: written and evicted, fetch from swap
		fmt.Fprintf(e.Out, "Page fault: Loading page %d from %s\n", page, e.cfg.SwapPath)
		buf, err := e.swap.ReadPage(desc.Location)
		if err != nil {
			return ErrIOError
		}
		source = buf
	}

	priorSwapSlot := -1
	if !desc.V && desc.D {
		// the page being faulted in was itself tracked via a swap slot;
		// remember it so it can be released once the frame is populated
		// (step 4, "fault-back cleanup").
		priorSwapSlot = desc.Location
	}

	frame, wasOccupied := e.frameTable.acquire()
	if wasOccupied {
		if err := e.evict(frame); err != ErrOk {
			// reconciliation failed: the victim page is still resident
			// in this frame (evict aborted before touching its
			// descriptor), so the frame must keep a nonzero timestamp
			// rather than read as free.
			e.frameTable.touch(frame)
			victimPage := e.frameOwner[frame]
			if err == ErrSwapFull {
				e.errPrintf("Error: Swap file is full, cannot evict page %d\n", victimPage)
			} else {
				e.errPrintf("Error: I/O error evicting page %d to swap\n", victimPage)
			}
			return err
		}
	}

	copy(e.ram[frame*e.cfg.PageSize:(frame+1)*e.cfg.PageSize], source)

	if priorSwapSlot >= 0 {
		e.swap.ReleaseSlot(priorSwapSlot)
	}

	desc.V = true
	desc.D = false
	desc.Location = frame
	e.pageTable.Set(page, desc)
	e.frameOwner[frame] = page
	e.frameTable.touch(frame)
	e.tlbInstall(page, frame)

	return ErrOk
}

// evict reconciles the page currently resident in frame so the frame
// can be reused: a clean or TEXT page is simply discarded, a dirty
// writable page is written back to a newly allocated swap slot. TEXT
// pages must never enter swap; they are always reloadable from the
// executable image.
func (e *Engine) evict(frame int) Err {
	victimPage := e.frameOwner[frame]
	victim := e.pageTable.Get(victimPage)

	if !victim.P && victim.D {
		slot, ok := e.swap.AllocateSlot()
		if !ok {
			return ErrSwapFull
		}
		fmt.Fprintf(e.Out, "Page replacement: Evicting page %d to swap\n", victimPage)
		if err := e.swap.WritePage(slot, e.ram[frame*e.cfg.PageSize:(frame+1)*e.cfg.PageSize]); err != nil {
			e.swap.ReleaseSlot(slot)
			return ErrIOError
		}
		victim.Location = slot
		// D stays true: the descriptor still records a dirty body, now
		// authoritative in swap rather than in RAM.
	} else {
		victim.Location = -1
	}

	victim.V = false
	e.pageTable.Set(victimPage, victim)
	e.frameOwner[frame] = -1
	e.tlbInvalidate(victimPage)

	return ErrOk
}
