package vmemsim

// tlb is a small, strictly non-authoritative (page -> frame, timestamp)
// cache with write-through invalidation on eviction. It is never
// consulted to decide a hit/miss; Load/Store always go through the
// page table. It only mirrors what the table says, for the
// `print tlb` report.
type tlb struct {
	entries []tlbEntry
	size    int
	clock   uint64
}

type tlbEntry struct {
	valid     bool
	page      int
	frame     int
	timestamp uint64
}

func newTLB(size int) *tlb {
	return &tlb{entries: make([]tlbEntry, size), size: size}
}

// install records (page -> frame) in the TLB, reusing the slot that
// already names page if present, else the oldest entry (including any
// free one, which carries timestamp 0 and therefore sorts first).
func (e *Engine) tlbInstall(page, frame int) {
	if e.tlb == nil {
		return
	}
	t := e.tlb
	t.clock++

	for i := range t.entries {
		if t.entries[i].valid && t.entries[i].page == page {
			t.entries[i].frame = frame
			t.entries[i].timestamp = t.clock
			return
		}
	}

	victim := 0
	min := t.entries[0].timestamp
	for i, ent := range t.entries {
		if !ent.valid {
			victim = i
			break
		}
		if ent.timestamp < min {
			min = ent.timestamp
			victim = i
		}
	}
	t.entries[victim] = tlbEntry{valid: true, page: page, frame: frame, timestamp: t.clock}
}

// tlbInvalidate drops page's entry, if any, on eviction.
func (e *Engine) tlbInvalidate(page int) {
	if e.tlb == nil {
		return
	}
	for i := range e.tlb.entries {
		if e.tlb.entries[i].valid && e.tlb.entries[i].page == page {
			e.tlb.entries[i] = tlbEntry{}
		}
	}
}
