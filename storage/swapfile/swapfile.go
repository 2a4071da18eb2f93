// Package swapfile is the disk-backed implementation of
// backend.SwapStore: a fixed-size file, truncated and filled with the
// uninitialized marker at init, accessed only in whole, page-size
// aligned blocks, exactly the access pattern github.com/ncw/directio
// exists for.
package swapfile

import (
	"fmt"
	"os"

	"github.com/ncw/directio"
)

const uninitializedMarker = '-'

// SwapFile is a real-file SwapStore. Slot allocation is first-fit over
// an in-process bitmap; the file itself only ever holds raw page
// bytes, never allocation metadata.
type SwapFile struct {
	file     *os.File
	occupied []bool
	pageSize int
	direct   bool
}

// Open truncates path to swapSize bytes and fills it with the
// uninitialized marker. When pageSize is a multiple of
// directio.AlignSize the file is opened with O_DIRECT via
// directio.OpenFile, the realistic case of a page-aligned OS page
// size; smaller, non-block-aligned page sizes fall back to a buffered
// os.File, since O_DIRECT's alignment requirement would otherwise
// reject them outright. Either way, transfer buffers are allocated
// with directio.AlignedBlock.
func Open(path string, swapSize, pageSize int) (*SwapFile, error) {
	direct := pageSize%directio.AlignSize == 0

	var f *os.File
	var err error
	if direct {
		f, err = directio.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0o666)
	} else {
		f, err = os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0o666)
	}
	if err != nil {
		return nil, fmt.Errorf("swapfile: open %s: %w", path, err)
	}

	if err := f.Truncate(int64(swapSize)); err != nil {
		f.Close()
		return nil, fmt.Errorf("swapfile: truncate %s: %w", path, err)
	}

	marker := directio.AlignedBlock(pageSize)
	for i := range marker {
		marker[i] = uninitializedMarker
	}
	numSlots := swapSize / pageSize
	for slot := 0; slot < numSlots; slot++ {
		if _, err := f.WriteAt(marker, int64(slot*pageSize)); err != nil {
			f.Close()
			return nil, fmt.Errorf("swapfile: init %s: %w", path, err)
		}
	}

	return &SwapFile{
		file:     f,
		occupied: make([]bool, numSlots),
		pageSize: pageSize,
		direct:   direct,
	}, nil
}

func (s *SwapFile) AllocateSlot() (int, bool) {
	for i, used := range s.occupied {
		if !used {
			s.occupied[i] = true
			return i, true
		}
	}
	return 0, false
}

func (s *SwapFile) ReleaseSlot(slot int) error {
	s.occupied[slot] = false
	marker := directio.AlignedBlock(s.pageSize)
	for i := range marker {
		marker[i] = uninitializedMarker
	}
	_, err := s.file.WriteAt(marker, int64(slot*s.pageSize))
	return err
}

func (s *SwapFile) WritePage(slot int, data []byte) error {
	buf := directio.AlignedBlock(s.pageSize)
	copy(buf, data)
	_, err := s.file.WriteAt(buf, int64(slot*s.pageSize))
	return err
}

func (s *SwapFile) ReadPage(slot int) ([]byte, error) {
	buf := directio.AlignedBlock(s.pageSize)
	n, err := s.file.ReadAt(buf, int64(slot*s.pageSize))
	if n == len(buf) {
		return buf, nil
	}
	return buf, err
}

func (s *SwapFile) Close() error {
	return s.file.Close()
}
