package filelist

import (
	"bytes"
	"encoding/json"
	"os"
	"sort"
	"strings"
)

// dirEntry holds information about a stored program
type dirEntry struct {
	Name string `json:"name"`
	Size int64  `json:"size"`
}

// FileList holds the array of entries
type FileList struct {
	Files []dirEntry
}

type fileSorter struct {
	list *FileList
}

// NewFileList builds a new, empty, list of programs
func NewFileList() *FileList {
	return &FileList{}
}

// AddFile takes a directory entry and adds it to the list,
// directories and dot files are not programs
func (fl *FileList) AddFile(file os.FileInfo) {
	if file.IsDir() || strings.HasPrefix(file.Name(), ".") {
		return
	}
	fl.Files = append(fl.Files, dirEntry{Name: file.Name(), Size: file.Size()})
}

// Build replaces the list with files and sorts it
func (fl *FileList) Build(files []os.FileInfo) {
	fl.Files = fl.Files[:0]
	for _, f := range files {
		fl.AddFile(f)
	}
	sort.Sort(&fileSorter{list: fl})
}

// JSON returns the list as a json array, never null
func (fl *FileList) JSON() []byte {
	if len(fl.Files) == 0 {
		return []byte("[]")
	}
	res, _ := json.Marshal(fl.Files)
	return res
}

// Text returns the names one per line
func (fl *FileList) Text() []byte {
	var out bytes.Buffer
	for _, f := range fl.Files {
		out.WriteString(f.Name)
		out.WriteString("\n")
	}
	return out.Bytes()
}

// Len is a part of the sort.Interface
// returns the number file entries
func (fs *fileSorter) Len() int {
	return len(fs.list.Files)
}

// Swap is part of sort.Interface
// change two elements
func (fs *fileSorter) Swap(i, j int) {
	fs.list.Files[i], fs.list.Files[j] = fs.list.Files[j], fs.list.Files[i]
}

// Less is part of sort.Interface, plain name order
func (fs *fileSorter) Less(i, j int) bool {
	return strings.Compare(fs.list.Files[i].Name, fs.list.Files[j].Name) == -1
}
