package mocks

import (
	"os"
	"time"
)

// MockFI describes one MockFS entry
type MockFI struct {
	Fname string
	Ftext string // the mocked file contents
	Dir   bool
}

func (mi MockFI) IsDir() bool {
	return mi.Dir
}

func (mi MockFI) ModTime() time.Time {
	return time.Time{}
}

func (mi MockFI) Mode() os.FileMode {
	if mi.Dir {
		return os.ModeDir | 0o755
	}
	return 0o644
}

func (mi MockFI) Name() string {
	return mi.Fname
}

func (mi MockFI) Size() int64 {
	return int64(len(mi.Ftext))
}

func (mi MockFI) Sys() interface{} {
	return nil
}
