package vmemsim

// FrameTable tracks LRU usage timestamps for the fixed pool of physical
// frames: a free slot wins immediately, otherwise the slot with the
// smallest timestamp is the victim, ties broken by lowest index.
type FrameTable struct {
	timestamps []uint64
	now        uint64
}

func newFrameTable(numFrames int) *FrameTable {
	return &FrameTable{
		timestamps: make([]uint64, numFrames),
		now:        1,
	}
}

func (ft *FrameTable) NumFrames() int {
	return len(ft.timestamps)
}

// acquire returns the frame to use for a new mapping, and whether that
// frame was previously in use (an eviction victim the caller must
// reconcile before reusing it).
func (ft *FrameTable) acquire() (frame int, wasOccupied bool) {
	for i, ts := range ft.timestamps {
		if ts == 0 {
			ft.timestamps[i] = ft.now
			ft.now++
			return i, false
		}
	}

	victim := 0
	min := ft.timestamps[0]
	for i, ts := range ft.timestamps {
		if ts < min {
			min = ts
			victim = i
		}
	}

	ft.timestamps[victim] = ft.now
	ft.now++
	return victim, true
}

// touch sets frame's timestamp to the current clock value and advances
// it. Called on every load/store hit and on fault installation.
func (ft *FrameTable) touch(frame int) {
	ft.timestamps[frame] = ft.now
	ft.now++
}

// free clears a frame's timestamp so it is considered unmapped.
func (ft *FrameTable) free(frame int) {
	ft.timestamps[frame] = 0
}
