//go:build unix

package mmapbuf

import (
	"os"

	"golang.org/x/sys/unix"
)

func mmapFile(path string) (*Buffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, err
	}
	if info.Size() == 0 {
		return &Buffer{}, nil
	}

	data, err := unix.Mmap(int(f.Fd()), 0, int(info.Size()), unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		return nil, err
	}
	return &Buffer{
		Bytes: data,
		close: func() error { return unix.Munmap(data) },
	}, nil
}
