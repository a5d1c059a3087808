package filesystem

import (
	"io"
	"os"
)

// GacheFs lets gache caches (the playlist draft, server versions) persist
// through API(), so they land in memory during tests.
type GacheFs struct{}

func (GacheFs) OpenFile(name string, flag int, perm os.FileMode) (io.ReadWriteCloser, error) {
	return API().OpenFile(name, flag, perm)
}

func (GacheFs) MkdirAll(path string, perm os.FileMode) error {
	return API().MkdirAll(path, perm)
}
