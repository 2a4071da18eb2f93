package vmemsim

import (
	"errors"

	"github.com/dsnet/golib/memfile"
)

var errShortRead = errors.New("short read")

// MemExecImage is an in-memory ExecutableImage: a fixed byte slice
// standing in for a program file, so tests can exercise TEXT/DATA
// fault-in without creating a real file on disk.
type MemExecImage struct {
	file     *memfile.File
	pageSize int
}

// NewMemExecImage wraps contents as a read-only executable image. A
// page entirely past the end of contents is an I/O error from
// ReadPage.
func NewMemExecImage(contents []byte, pageSize int) *MemExecImage {
	return &MemExecImage{file: memfile.New(contents), pageSize: pageSize}
}

func (m *MemExecImage) ReadPage(page int, buf []byte) error {
	n, err := m.file.ReadAt(buf, int64(page*m.pageSize))
	if n == len(buf) {
		return nil
	}
	if err != nil {
		return err
	}
	return errShortRead
}

func (m *MemExecImage) Close() error {
	return m.file.Close()
}
