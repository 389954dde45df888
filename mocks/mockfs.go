package mocks

import (
	"bytes"
	"errors"
	"net/http"
	"os"
	"sort"
	"strings"
)

// MockFS is an in memory program directory with switchable failures
type MockFS struct {
	Files      map[string]string // file name to its contents
	Dirs       []string          // names that are directories
	StatErr    bool              // return an error when stat is called
	ReaddirErr bool              // return an error when the directory is read
}

// mockFile is one open handle from a MockFS
type mockFile struct {
	*bytes.Reader
	fs   *MockFS
	name string
	dir  bool
}

func (mf *MockFS) isDir(name string) bool {
	if len(name) == 0 {
		return true
	}
	for _, d := range mf.Dirs {
		if d == name {
			return true
		}
	}
	return false
}

func (mf *MockFS) Open(file string) (http.File, error) {
	name := strings.TrimPrefix(file, "/")

	if mf.isDir(name) {
		return &mockFile{Reader: bytes.NewReader(nil), fs: mf, name: name, dir: true}, nil
	}

	content, ok := mf.Files[name]
	if !ok {
		return nil, os.ErrNotExist
	}
	return &mockFile{Reader: bytes.NewReader([]byte(content)), fs: mf, name: name}, nil
}

func (f *mockFile) Close() error {
	return nil
}

func (f *mockFile) Readdir(n int) ([]os.FileInfo, error) {
	if f.fs.ReaddirErr {
		return nil, errors.New("a faked readdir error")
	}

	var mi []os.FileInfo
	for nm, text := range f.fs.Files {
		mi = append(mi, MockFI{Fname: nm, Ftext: text})
	}
	for _, d := range f.fs.Dirs {
		mi = append(mi, MockFI{Fname: d, Dir: true})
	}

	// map order is random, hand them back in a stable one
	sort.Slice(mi, func(i, j int) bool { return mi[i].Name() > mi[j].Name() })
	return mi, nil
}

func (f *mockFile) Stat() (os.FileInfo, error) {
	if f.fs.StatErr {
		return nil, errors.New("a faked stat error")
	}

	return MockFI{Fname: f.name, Ftext: f.fs.Files[f.name], Dir: f.dir}, nil
}
