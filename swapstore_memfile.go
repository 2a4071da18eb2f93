package vmemsim

import "github.com/dsnet/golib/memfile"

// MemSwapStore is an in-memory SwapStore: a sample implementation of
// the backend interface that keeps everything in a byte slice instead
// of a real file, used by unit tests that don't want to touch the
// filesystem.
type MemSwapStore struct {
	file     *memfile.File
	occupied []bool
	pageSize int
}

// NewMemSwapStore creates an in-memory swap store of swapSize bytes,
// filled with the uninitialized marker, matching the truncate+fill
// step a real file-backed swap store performs at open.
func NewMemSwapStore(swapSize, pageSize int) *MemSwapStore {
	buf := make([]byte, swapSize)
	for i := range buf {
		buf[i] = uninitializedMarker
	}
	return &MemSwapStore{
		file:     memfile.New(buf),
		occupied: make([]bool, swapSize/pageSize),
		pageSize: pageSize,
	}
}

func (s *MemSwapStore) AllocateSlot() (int, bool) {
	for i, used := range s.occupied {
		if !used {
			s.occupied[i] = true
			return i, true
		}
	}
	return 0, false
}

func (s *MemSwapStore) ReleaseSlot(slot int) error {
	s.occupied[slot] = false
	marker := make([]byte, s.pageSize)
	for i := range marker {
		marker[i] = uninitializedMarker
	}
	_, err := s.file.WriteAt(marker, int64(slot*s.pageSize))
	return err
}

func (s *MemSwapStore) WritePage(slot int, data []byte) error {
	_, err := s.file.WriteAt(data, int64(slot*s.pageSize))
	return err
}

func (s *MemSwapStore) ReadPage(slot int) ([]byte, error) {
	buf := make([]byte, s.pageSize)
	n, err := s.file.ReadAt(buf, int64(slot*s.pageSize))
	if n == len(buf) {
		err = nil
	}
	return buf, err
}

func (s *MemSwapStore) Close() error {
	return s.file.Close()
}
