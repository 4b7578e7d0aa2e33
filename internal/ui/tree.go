package ui

import (
	"fmt"

	"github.com/nrjt/eduplatform/internal/types"
	"github.com/nrjt/eduplatform/internal/utils"
)

// EmptyMessage is shown by a tree view with no folders
const EmptyMessage = "No content uploaded yet."

// TreeView tracks which folders of one resource section are expanded and
// dispatches the open actions of folders and files.
type TreeView struct {
	kind     types.Kind
	scope    types.Scope
	base     string
	expanded map[string]bool
}

// NewTreeView creates a tree view for one kind. scope and base are only used
// to synthesize paths for files without a link.
func NewTreeView(kind types.Kind, scope types.Scope, base string) *TreeView {
	return &TreeView{
		kind:     kind,
		scope:    scope,
		base:     base,
		expanded: make(map[string]bool),
	}
}

// Kind returns the resource category of the view
func (v *TreeView) Kind() types.Kind {
	return v.kind
}

// Toggle flips the expansion flag of one folder. Other folders keep theirs.
func (v *TreeView) Toggle(folderName string) bool {
	v.expanded[folderName] = !v.expanded[folderName]
	return v.expanded[folderName]
}

// IsExpanded reports whether a folder is expanded. Unknown folders are collapsed.
func (v *TreeView) IsExpanded(folderName string) bool {
	return v.expanded[folderName]
}

// OpenReference opens a folder's reference link. It does nothing for
// folders without one and never changes expansion state.
func (v *TreeView) OpenReference(open Opener, folder types.FolderEntry) (string, bool) {
	if folder.Link == "" {
		return "", false
	}
	open.Open(folder.Link)
	return folder.Link, true
}

// FileTarget returns what activating a file opens: its own link when it has
// one, the synthesized resource path otherwise.
func (v *TreeView) FileTarget(folderName string, file types.FileEntry) string {
	if file.Link != "" {
		return file.Link
	}
	return utils.ResourcePath(v.base, v.scope, folderName, file.Name)
}

// OpenFile opens a file's target and returns it
func (v *TreeView) OpenFile(open Opener, folderName string, file types.FileEntry) string {
	target := v.FileTarget(folderName, file)
	open.Open(target)
	return target
}

// TreeRender is the display model of a tree view
type TreeRender struct {
	Kind  types.Kind
	Empty *EmptyState
	Rows  []FolderRow
}

// EmptyState is rendered in place of rows when there are no folders
type EmptyState struct {
	Icon    string
	Label   string
	Message string
}

// FolderRow is one folder line of the tree
type FolderRow struct {
	Name       string
	FileCount  int
	CountLabel string
	Expanded   bool
	Link       string // reference action is shown only when set
	Files      []FileRow
}

// FileRow is one file line of an expanded folder
type FileRow struct {
	Name   string
	Size   string
	Date   string
	Action string
	Target string
}

// Render builds the display model for resources, keeping their order
func (v *TreeView) Render(resources []types.FolderEntry) TreeRender {
	out := TreeRender{Kind: v.kind}
	if len(resources) == 0 {
		out.Empty = &EmptyState{
			Icon:    v.kind.Icon(),
			Label:   v.kind.SectionLabel(),
			Message: EmptyMessage,
		}
		return out
	}

	out.Rows = make([]FolderRow, 0, len(resources))
	for _, folder := range resources {
		row := FolderRow{
			Name:       folder.FolderName,
			FileCount:  len(folder.Files),
			CountLabel: fmt.Sprintf("(%d files)", len(folder.Files)),
			Expanded:   v.IsExpanded(folder.FolderName),
			Link:       folder.Link,
		}
		if row.Expanded {
			row.Files = make([]FileRow, 0, len(folder.Files))
			for _, file := range folder.Files {
				row.Files = append(row.Files, FileRow{
					Name:   file.Name,
					Size:   file.Size,
					Date:   file.Date,
					Action: v.kind.Verb(),
					Target: v.FileTarget(folder.FolderName, file),
				})
			}
		}
		out.Rows = append(out.Rows, row)
	}
	return out
}

// FindFolder returns the folder with the given name
func FindFolder(resources []types.FolderEntry, folderName string) (types.FolderEntry, bool) {
	for _, folder := range resources {
		if folder.FolderName == folderName {
			return folder, true
		}
	}
	return types.FolderEntry{}, false
}

// FindFile returns the named file of a folder
func FindFile(folder types.FolderEntry, fileName string) (types.FileEntry, bool) {
	for _, file := range folder.Files {
		if file.Name == fileName {
			return file, true
		}
	}
	return types.FileEntry{}, false
}
