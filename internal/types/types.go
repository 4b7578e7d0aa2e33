package types

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Config represents the complete configuration for the portal
type Config struct {
	Store    StoreConfig   `json:"store"`
	API      APIConfig     `json:"api"`
	Seed     SeedConfig    `json:"seed"`
	Paths    PathConfig    `json:"paths"`
	Logging  LoggingConfig `json:"logging"`
	Sessions SessionConfig `json:"sessions"`
}

// StoreConfig represents the resource store configuration
type StoreConfig struct {
	DBPath string `json:"db_path"`
}

// APIConfig represents the HTTP API configuration
type APIConfig struct {
	Host string `json:"host"`
	Port int    `json:"port"`
}

// SeedConfig controls the optional sample content generated into an empty store
type SeedConfig struct {
	Enabled  bool  `json:"enabled"`
	Seed     int64 `json:"seed"`
	Folders  int   `json:"folders"`   // folders per (standard, board, kind)
	MaxFiles int   `json:"max_files"` // upper bound of files per folder
}

// PathConfig controls how file paths without an explicit link are synthesized
type PathConfig struct {
	ResourceBase string `json:"resource_base"`
	DateLayout   string `json:"date_layout"`
	// PinnedScope, when set, replaces the active scope in synthesized paths.
	PinnedScope *Scope `json:"pinned_scope,omitempty"`
}

// LoggingConfig represents the zap logger configuration
type LoggingConfig struct {
	Level  string `json:"level"`  // debug, info, warn, error
	Format string `json:"format"` // json, console
}

// SessionConfig represents the browser mount session configuration
type SessionConfig struct {
	IdleTimeout Duration `json:"idle_timeout"`
}

// Kind is a resource category
type Kind string

// Kind constants
const (
	KindVideo    Kind = "video"
	KindDocument Kind = "document"
)

// Kinds lists every resource category in display order
var Kinds = []Kind{KindVideo, KindDocument}

// ParseKind converts a string into a Kind
func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case KindVideo, KindDocument:
		return Kind(s), nil
	}
	return "", fmt.Errorf("unknown resource kind: %q", s)
}

// IsVideo reports whether the kind is video
func (k Kind) IsVideo() bool {
	return k == KindVideo
}

// Verb returns the label of a file's action button
func (k Kind) Verb() string {
	if k.IsVideo() {
		return "Watch"
	}
	return "Read"
}

// SectionLabel returns the heading shown on the resource section
func (k Kind) SectionLabel() string {
	if k.IsVideo() {
		return "Watch Lectures"
	}
	return "Study Notes"
}

// Icon returns the icon name of the resource section
func (k Kind) Icon() string {
	if k.IsVideo() {
		return "play-circle"
	}
	return "book-open"
}

// Accept returns the file picker filter for the kind
func (k Kind) Accept() string {
	if k.IsVideo() {
		return "video/*"
	}
	return ".pdf"
}

// StandardDescriptor is an immutable catalog entry
type StandardDescriptor struct {
	ID     string   `json:"id"`
	Label  string   `json:"label"`
	Boards []string `json:"boards"`
}

// Scope is the navigational context resources are stored under
type Scope struct {
	Standard string `json:"standard"`
	Board    string `json:"board"` // empty for standards without boards
}

func (s Scope) String() string {
	if s.Board == "" {
		return s.Standard
	}
	return s.Standard + "/" + s.Board
}

// FileEntry is a file inside a folder
type FileEntry struct {
	Name string `json:"name"`
	Size string `json:"size"` // human-readable, pre-formatted
	Date string `json:"date"` // pre-formatted
	Type Kind   `json:"type"`
	Link string `json:"link,omitempty"`
}

// FolderEntry is a named group of files, unique by name within its list
type FolderEntry struct {
	FolderName string      `json:"folderName"`
	Files      []FileEntry `json:"files"`
	Link       string      `json:"link,omitempty"`
}

// DescriptorKind tags the FileDescriptor variants
type DescriptorKind string

// DescriptorKind constants
const (
	DescriptorAttached DescriptorKind = "attached"
	DescriptorLinkOnly DescriptorKind = "link_only"
)

// ErrInvalidDescriptor marks a descriptor that cannot be stored: no variant,
// or an attached file without a name
var ErrInvalidDescriptor = errors.New("invalid file descriptor")

// FileDescriptor is the record an upload hands to the host: either an
// attached file or a reference link with no file.
type FileDescriptor struct {
	kind DescriptorKind
	file FileEntry
	link string
}

// Attached returns a descriptor carrying a file
func Attached(file FileEntry) FileDescriptor {
	return FileDescriptor{kind: DescriptorAttached, file: file}
}

// LinkOnly returns a descriptor carrying only a reference link (possibly empty)
func LinkOnly(link string) FileDescriptor {
	return FileDescriptor{kind: DescriptorLinkOnly, link: link}
}

// Kind returns the descriptor variant
func (d FileDescriptor) Kind() DescriptorKind {
	return d.kind
}

// File returns the attached file; ok is false for link-only descriptors
func (d FileDescriptor) File() (FileEntry, bool) {
	return d.file, d.kind == DescriptorAttached
}

// Link returns the reference link of the descriptor
func (d FileDescriptor) Link() string {
	if d.kind == DescriptorAttached {
		return d.file.Link
	}
	return d.link
}

type fileDescriptorJSON struct {
	Kind DescriptorKind `json:"kind"`
	File *FileEntry     `json:"file,omitempty"`
	Link *string        `json:"link,omitempty"`
}

// MarshalJSON encodes the descriptor with an explicit variant tag
func (d FileDescriptor) MarshalJSON() ([]byte, error) {
	switch d.kind {
	case DescriptorAttached:
		file := d.file
		return json.Marshal(fileDescriptorJSON{Kind: d.kind, File: &file})
	case DescriptorLinkOnly:
		link := d.link
		return json.Marshal(fileDescriptorJSON{Kind: d.kind, Link: &link})
	}
	return nil, fmt.Errorf("file descriptor has no variant")
}

// UnmarshalJSON decodes a tagged descriptor
func (d *FileDescriptor) UnmarshalJSON(data []byte) error {
	var raw fileDescriptorJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	switch raw.Kind {
	case DescriptorAttached:
		if raw.File == nil {
			return fmt.Errorf("%w: attached descriptor without file", ErrInvalidDescriptor)
		}
		if raw.File.Name == "" {
			return fmt.Errorf("%w: attached file without name", ErrInvalidDescriptor)
		}
		*d = Attached(*raw.File)
	case DescriptorLinkOnly:
		var link string
		if raw.Link != nil {
			link = *raw.Link
		}
		*d = LinkOnly(link)
	default:
		return fmt.Errorf("%w: unknown kind %q", ErrInvalidDescriptor, raw.Kind)
	}
	return nil
}

// APIResponse represents a generic API response
type APIResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// TableInfo represents information about a database table
type TableInfo struct {
	Name     string `json:"name"`
	RowCount int    `json:"row_count"`
}
