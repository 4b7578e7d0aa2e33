package resourcefs

import (
	"io/fs"
)

// nodeDirEntry wraps a node to implement fs.DirEntry
type nodeDirEntry struct {
	node *node
}

func newDirEntry(n *node) fs.DirEntry {
	return &nodeDirEntry{node: n}
}

// Name returns the name of the file (or subdirectory) described by the entry
func (de *nodeDirEntry) Name() string {
	return de.node.name
}

// IsDir reports whether the entry describes a directory
func (de *nodeDirEntry) IsDir() bool {
	return de.node.dir
}

// Type returns the type bits for the entry
func (de *nodeDirEntry) Type() fs.FileMode {
	if de.node.dir {
		return fs.ModeDir
	}
	return 0
}

// Info returns the FileInfo for the file or subdirectory described by the entry
func (de *nodeDirEntry) Info() (fs.FileInfo, error) {
	return &nodeFileInfo{node: de.node}, nil
}
