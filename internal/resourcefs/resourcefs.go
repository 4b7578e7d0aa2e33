// Package resourcefs projects the resource store as a read-only fs.FS laid
// out the way synthesized resource paths are: <standard>/<board>/<folder>/<file>,
// with the board level absent for standards without boards. Video and
// document folders of the same name share one directory. File contents are
// generated placeholders describing the stored entry.
package resourcefs

import (
	"fmt"
	"io/fs"
	"sort"
	"strings"
	"time"

	"github.com/nrjt/eduplatform/internal/catalog"
	"github.com/nrjt/eduplatform/internal/types"
)

// Lister is the part of the resource store the file system reads from
type Lister interface {
	Resources(scope types.Scope, kind types.Kind) ([]types.FolderEntry, error)
}

// FS implements fs.FS over a Lister
type FS struct {
	store  Lister
	layout string
}

// New creates a file system reading from store. dateLayout parses file
// dates into modification times.
func New(store Lister, dateLayout string) *FS {
	return &FS{store: store, layout: dateLayout}
}

// node is one resolved path: a directory with its entries or a file with
// its content
type node struct {
	name     string
	dir      bool
	modTime  time.Time
	data     []byte
	children []*node
}

// Open opens the named file or directory
func (f *FS) Open(name string) (fs.File, error) {
	if !fs.ValidPath(name) {
		return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrInvalid}
	}

	n, err := f.resolve(name)
	if err != nil {
		return nil, &fs.PathError{Op: "open", Path: name, Err: err}
	}

	if n.dir {
		entries := make([]fs.DirEntry, 0, len(n.children))
		for _, child := range n.children {
			entries = append(entries, newDirEntry(child))
		}
		return &resourceDir{node: n, entries: entries}, nil
	}
	return newResourceFile(n), nil
}

func (f *FS) resolve(name string) (*node, error) {
	if name == "." {
		return f.root(), nil
	}

	parts := strings.Split(name, "/")
	std, ok := catalog.Lookup(parts[0])
	if !ok {
		return nil, fs.ErrNotExist
	}

	scope := types.Scope{Standard: std.ID}
	rest := parts[1:]
	if len(std.Boards) > 0 {
		if len(rest) == 0 {
			return boardsDir(std), nil
		}
		if !catalog.HasBoard(std.ID, rest[0]) {
			return nil, fs.ErrNotExist
		}
		scope.Board = rest[0]
		rest = rest[1:]
	}

	switch len(rest) {
	case 0:
		return f.scopeDir(scope, parts[len(parts)-1])
	case 1:
		return f.folderDir(scope, rest[0])
	case 2:
		folder, err := f.folderDir(scope, rest[0])
		if err != nil {
			return nil, err
		}
		for _, child := range folder.children {
			if child.name == rest[1] {
				return child, nil
			}
		}
	}
	return nil, fs.ErrNotExist
}

func (f *FS) root() *node {
	root := &node{name: ".", dir: true}
	for _, std := range catalog.Standards() {
		root.children = append(root.children, &node{name: std.ID, dir: true})
	}
	sortNodes(root.children)
	return root
}

func boardsDir(std types.StandardDescriptor) *node {
	dir := &node{name: std.ID, dir: true}
	for _, board := range std.Boards {
		dir.children = append(dir.children, &node{name: board, dir: true})
	}
	sortNodes(dir.children)
	return dir
}

// scopeDir lists the folder names of every kind under scope
func (f *FS) scopeDir(scope types.Scope, name string) (*node, error) {
	dir := &node{name: name, dir: true}
	seen := make(map[string]bool)
	for _, kind := range types.Kinds {
		folders, err := f.store.Resources(scope, kind)
		if err != nil {
			return nil, err
		}
		for _, folder := range folders {
			if !validElem(folder.FolderName) || seen[folder.FolderName] {
				continue
			}
			seen[folder.FolderName] = true
			dir.children = append(dir.children, &node{name: folder.FolderName, dir: true})
		}
	}
	sortNodes(dir.children)
	return dir, nil
}

// folderDir lists the files of the named folder across kinds. A file name
// present in both kinds resolves to the video entry.
func (f *FS) folderDir(scope types.Scope, folderName string) (*node, error) {
	dir := &node{name: folderName, dir: true}
	found := false
	seen := make(map[string]bool)
	for _, kind := range types.Kinds {
		folders, err := f.store.Resources(scope, kind)
		if err != nil {
			return nil, err
		}
		for _, folder := range folders {
			if folder.FolderName != folderName {
				continue
			}
			found = true
			for _, file := range folder.Files {
				if !validElem(file.Name) || seen[file.Name] {
					continue
				}
				seen[file.Name] = true
				dir.children = append(dir.children, f.fileNode(scope, kind, folderName, file))
			}
		}
	}
	if !found {
		return nil, fs.ErrNotExist
	}
	sortNodes(dir.children)
	return dir, nil
}

func (f *FS) fileNode(scope types.Scope, kind types.Kind, folderName string, file types.FileEntry) *node {
	n := &node{name: file.Name, data: placeholder(scope, kind, folderName, file)}
	if t, err := time.Parse(f.layout, file.Date); err == nil {
		n.modTime = t
	}
	return n
}

// placeholder describes a stored file; uploaded content is never kept
func placeholder(scope types.Scope, kind types.Kind, folderName string, file types.FileEntry) []byte {
	if file.Type != "" {
		kind = file.Type
	}

	var b strings.Builder
	fmt.Fprintf(&b, "name: %s\n", file.Name)
	fmt.Fprintf(&b, "scope: %s\n", scope)
	fmt.Fprintf(&b, "folder: %s\n", folderName)
	fmt.Fprintf(&b, "type: %s\n", kind)
	fmt.Fprintf(&b, "size: %s\n", file.Size)
	fmt.Fprintf(&b, "uploaded: %s\n", file.Date)
	if file.Link != "" {
		fmt.Fprintf(&b, "link: %s\n", file.Link)
	}
	return []byte(b.String())
}

// validElem reports whether name can be a single path element
func validElem(name string) bool {
	return fs.ValidPath(name) && name != "." && !strings.Contains(name, "/")
}

func sortNodes(nodes []*node) {
	sort.Slice(nodes, func(i, j int) bool {
		return nodes[i].name < nodes[j].name
	})
}
