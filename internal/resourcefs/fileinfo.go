package resourcefs

import (
	"io/fs"
	"time"
)

// nodeFileInfo wraps a node to implement fs.FileInfo
type nodeFileInfo struct {
	node *node
}

// Name returns the base name of the file
func (fi *nodeFileInfo) Name() string {
	return fi.node.name
}

// Size returns the length in bytes for regular files; 0 for directories
func (fi *nodeFileInfo) Size() int64 {
	return int64(len(fi.node.data))
}

// Mode returns the file mode bits
func (fi *nodeFileInfo) Mode() fs.FileMode {
	if fi.node.dir {
		return fs.ModeDir | 0555
	}
	return 0444
}

// ModTime returns the upload date of files and the zero time for directories
func (fi *nodeFileInfo) ModTime() time.Time {
	return fi.node.modTime
}

// IsDir reports whether the file describes a directory
func (fi *nodeFileInfo) IsDir() bool {
	return fi.node.dir
}

// Sys returns nil
func (fi *nodeFileInfo) Sys() any {
	return nil
}
