package resourcefs

import (
	"bytes"
	"io"
	"io/fs"
)

// resourceFile implements fs.File for regular files. The embedded reader
// adds Seek and ReadAt, which http.FileServer relies on.
type resourceFile struct {
	*bytes.Reader
	node *node
}

func newResourceFile(n *node) *resourceFile {
	return &resourceFile{Reader: bytes.NewReader(n.data), node: n}
}

// Stat returns the FileInfo structure describing file
func (f *resourceFile) Stat() (fs.FileInfo, error) {
	return &nodeFileInfo{node: f.node}, nil
}

// Close closes the file
func (f *resourceFile) Close() error {
	return nil
}

// resourceDir implements fs.ReadDirFile for directories
type resourceDir struct {
	node    *node
	entries []fs.DirEntry
	offset  int
}

// Stat returns the FileInfo structure describing dir
func (d *resourceDir) Stat() (fs.FileInfo, error) {
	return &nodeFileInfo{node: d.node}, nil
}

// Read fails: directories have no content
func (d *resourceDir) Read(b []byte) (int, error) {
	return 0, &fs.PathError{Op: "read", Path: d.node.name, Err: fs.ErrInvalid}
}

// ReadDir reads the contents of the directory and returns
// a slice of up to n DirEntry values in directory order
func (d *resourceDir) ReadDir(n int) ([]fs.DirEntry, error) {
	rest := d.entries[d.offset:]
	if n <= 0 {
		d.offset = len(d.entries)
		result := make([]fs.DirEntry, len(rest))
		copy(result, rest)
		return result, nil
	}

	if len(rest) == 0 {
		return nil, io.EOF
	}
	if n > len(rest) {
		n = len(rest)
	}

	result := make([]fs.DirEntry, n)
	copy(result, rest[:n])
	d.offset += n
	return result, nil
}

// Close closes the directory
func (d *resourceDir) Close() error {
	return nil
}
