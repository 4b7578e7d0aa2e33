package sdk

import (
	"fmt"
	"io/fs"
	"net/http"

	"github.com/nrjt/eduplatform/internal/api"
	"github.com/nrjt/eduplatform/internal/catalog"
	"github.com/nrjt/eduplatform/internal/config"
	"github.com/nrjt/eduplatform/internal/portal"
	"github.com/nrjt/eduplatform/internal/resourcefs"
	"github.com/nrjt/eduplatform/internal/types"
	"github.com/nrjt/eduplatform/internal/ui"
)

// Portal is the public SDK interface for the resource portal.
// This wraps the internal implementation to provide a clean public API.
type Portal struct {
	impl *portal.Portal
}

// New creates a new Portal using the specified config file. An empty path
// means defaults. EDU_* environment variables and .env apply on top.
func New(configPath string) (*Portal, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return NewWithConfig(cfg)
}

// NewWithConfig creates a new Portal from an already loaded configuration
func NewWithConfig(cfg *Config) (*Portal, error) {
	impl, err := portal.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize portal: %w", err)
	}

	return &Portal{
		impl: impl,
	}, nil
}

// NewWithDefaults creates a new Portal using the default configuration file
func NewWithDefaults() (*Portal, error) {
	return New("configs/default.json")
}

// Standards returns the catalog of standards and their boards
func (p *Portal) Standards() []StandardDescriptor {
	return catalog.Standards()
}

// Resources returns the folders stored under a scope and kind
func (p *Portal) Resources(scope Scope, kind Kind) ([]FolderEntry, error) {
	return p.impl.Resources(scope, kind)
}

// Upload applies an upload the same way the upload modal does
func (p *Portal) Upload(scope Scope, kind Kind, folderName string, desc FileDescriptor) error {
	return p.impl.Upload(scope, kind, folderName, desc)
}

// DeleteFolder removes a folder and its files
func (p *Portal) DeleteFolder(scope Scope, kind Kind, folderName string) error {
	return p.impl.DeleteFolder(scope, kind, folderName)
}

// Reset clears all stored resources
func (p *Portal) Reset() error {
	return p.impl.Reset()
}

// GetConfig returns the current configuration
func (p *Portal) GetConfig() Config {
	return p.impl.Config()
}

// GetTableInfo returns information about all tables
func (p *Portal) GetTableInfo() ([]TableInfo, error) {
	return p.impl.TableInfo()
}

// Handler returns the HTTP handler serving the page and the JSON API
func (p *Portal) Handler() http.Handler {
	return api.NewRouter(p.impl).SetupRoutes()
}

// NewServer returns an HTTP server bound to the configured address
func (p *Portal) NewServer() *api.Server {
	cfg := p.impl.Config()
	return api.NewServer(p.impl, &cfg.API)
}

// AsFS returns a read-only fs.FS laid out like the synthesized resource
// paths, without the resource base: <standard>/<board>/<folder>/<file>
func (p *Portal) AsFS() fs.FS {
	return resourcefs.New(p.impl, p.impl.Config().Paths.DateLayout)
}

// Close closes the resource store.
// Always call this method during graceful shutdown.
func (p *Portal) Close() error {
	return p.impl.Close()
}

// Re-export types for convenience
type (
	Config             = types.Config
	Scope              = types.Scope
	Kind               = types.Kind
	StandardDescriptor = types.StandardDescriptor
	FolderEntry        = types.FolderEntry
	FileEntry          = types.FileEntry
	FileDescriptor     = types.FileDescriptor
	TableInfo          = types.TableInfo
	APIResponse        = types.APIResponse
)

// Re-export constants
const (
	KindVideo    = types.KindVideo
	KindDocument = types.KindDocument

	DescriptorAttached = types.DescriptorAttached
	DescriptorLinkOnly = types.DescriptorLinkOnly
)

// Re-export errors
var (
	ErrUnknownStandard    = catalog.ErrUnknownStandard
	ErrUnknownBoard       = catalog.ErrUnknownBoard
	ErrFolderNameRequired = ui.ErrFolderNameRequired
)

// Attached returns a descriptor carrying a file
func Attached(file FileEntry) FileDescriptor {
	return types.Attached(file)
}

// LinkOnly returns a descriptor carrying only a reference link
func LinkOnly(link string) FileDescriptor {
	return types.LinkOnly(link)
}

// FormatSize renders a byte count the way uploaded files are labelled
func FormatSize(bytes int64) string {
	return ui.FormatSize(bytes)
}
