//go:build !unix

package mmapbuf

import "errors"

func mmapFile(path string) (*Buffer, error) {
	return nil, errors.New("mmap not supported on this platform")
}
