package vmemsim

// PageDescriptor is the per-virtual-page state: a resident bit, a dirty
// bit, a read-only bit, and a signed location that is either a frame
// index (V=1), a swap slot (V=0 and the page has a dirty body on disk),
// or -1 (never written back, or discarded on eviction).
type PageDescriptor struct {
	V        bool
	D        bool
	P        bool
	Location int
}

// PageTable is a dense array of page descriptors indexed directly by
// page number. The virtual address space is small, fixed at init, and
// already dense, so direct indexing needs no hashing.
type PageTable struct {
	entries []PageDescriptor
	d       derived
}

func newPageTable(numPages int, d derived) *PageTable {
	pt := &PageTable{
		entries: make([]PageDescriptor, numPages),
		d:       d,
	}
	for page := range pt.entries {
		pt.entries[page] = PageDescriptor{
			V:        false,
			D:        false,
			P:        d.segmentFor(page) == SegText,
			Location: -1,
		}
	}
	return pt
}

func (pt *PageTable) Get(page int) PageDescriptor {
	return pt.entries[page]
}

func (pt *PageTable) Set(page int, desc PageDescriptor) {
	pt.entries[page] = desc
}

func (pt *PageTable) NumPages() int {
	return len(pt.entries)
}

func (pt *PageTable) SegmentOf(page int) Segment {
	return pt.d.segmentFor(page)
}
