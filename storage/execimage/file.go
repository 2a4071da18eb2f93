// Package execimage is the disk-backed implementation of
// backend.ExecutableImage: a read-only file read at page*page_size
// offsets.
package execimage

import (
	"errors"
	"fmt"
	"os"
)

// ErrShortRead is returned by ReadPage when ReadAt reports a short read
// without an error. os.File.ReadAt always pairs a short read with an
// error, so a page cut off or missing at end of file is reported as
// that wrapped error instead.
var ErrShortRead = errors.New("execimage: short read past end of file")

// File is a real-file ExecutableImage, opened read-only.
type File struct {
	f *os.File
}

func Open(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("execimage: open %s: %w", path, err)
	}
	return &File{f: f}, nil
}

func (i *File) ReadPage(page int, buf []byte) error {
	offset := int64(page) * int64(len(buf))
	n, err := i.f.ReadAt(buf, offset)
	if n == len(buf) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("execimage: read page %d: %w", page, err)
	}
	return ErrShortRead
}

func (i *File) Close() error {
	return i.f.Close()
}
