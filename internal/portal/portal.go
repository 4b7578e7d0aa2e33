// Package portal is the host side of the resource browser: it owns the
// resource store, applies uploads handed over by the upload flow, and keeps
// the per-browser sessions the page is rendered from.
package portal

import (
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/nrjt/eduplatform/internal/catalog"
	"github.com/nrjt/eduplatform/internal/db"
	"github.com/nrjt/eduplatform/internal/generator"
	"github.com/nrjt/eduplatform/internal/logging"
	"github.com/nrjt/eduplatform/internal/metrics"
	"github.com/nrjt/eduplatform/internal/types"
	"github.com/nrjt/eduplatform/internal/ui"
)

// Portal owns the resource store and the live sessions
type Portal struct {
	db       *db.DB
	config   *types.Config
	sessions *SessionManager
	now      func() time.Time
}

// Option customizes a Portal
type Option func(*Portal)

// WithClock replaces the clock used for upload dates, seeding and session expiry
func WithClock(now func() time.Time) Option {
	return func(p *Portal) {
		p.now = now
	}
}

// New opens the resource store and seeds sample content into it when
// seeding is enabled and the store is empty
func New(cfg *types.Config, opts ...Option) (*Portal, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}

	store, err := db.New(cfg.Store.DBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open resource store: %w", err)
	}

	p := &Portal{
		db:     store,
		config: cfg,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	p.sessions = NewSessionManager(cfg.Sessions.IdleTimeout.Duration, p.now)

	if cfg.Seed.Enabled {
		if err := p.seed(); err != nil {
			store.Close()
			return nil, err
		}
	}
	p.refreshFolderGauge()

	return p, nil
}

func (p *Portal) seed() error {
	count, err := p.db.CountRows("folders")
	if err != nil {
		return fmt.Errorf("failed to check resource store: %w", err)
	}
	if count > 0 {
		logging.L().Debug("store not empty, skipping seed", zap.Int("folders", count))
		return nil
	}

	applied, err := generator.Seed(p.db, p.config, p.now())
	if err != nil {
		return fmt.Errorf("failed to seed sample content: %w", err)
	}
	logging.L().Info("seeded sample content",
		zap.Int64("seed", p.config.Seed.Seed),
		zap.Int("uploads", applied))
	return nil
}

// Close closes the resource store
func (p *Portal) Close() error {
	return p.db.Close()
}

// Config returns a copy of the active configuration
func (p *Portal) Config() types.Config {
	return *p.config
}

// Sessions returns the session manager
func (p *Portal) Sessions() *SessionManager {
	return p.sessions
}

// Resources returns the folders stored under (scope, kind)
func (p *Portal) Resources(scope types.Scope, kind types.Kind) ([]types.FolderEntry, error) {
	if err := catalog.ValidateScope(scope); err != nil {
		return nil, err
	}
	return p.db.ListFolders(scope, kind)
}

// Upload applies a submitted upload to the store. It is the host end of the
// upload flow's callback and of the JSON upload endpoint.
func (p *Portal) Upload(scope types.Scope, kind types.Kind, folderName string, desc types.FileDescriptor) error {
	if err := catalog.ValidateScope(scope); err != nil {
		return err
	}
	if folderName == "" {
		return ui.ErrFolderNameRequired
	}
	if err := checkDescriptor(kind, desc); err != nil {
		return err
	}

	err := p.db.ApplyUpload(scope, kind, folderName, desc)
	metrics.RecordUpload(string(kind), string(desc.Kind()), err == nil)
	if err != nil {
		logging.L().Error("upload failed",
			zap.Stringer("scope", scope),
			zap.String("kind", string(kind)),
			zap.String("folder", folderName),
			zap.Error(err))
		return err
	}

	fields := []zap.Field{
		zap.Stringer("scope", scope),
		zap.String("kind", string(kind)),
		zap.String("folder", folderName),
		zap.String("variant", string(desc.Kind())),
	}
	if file, ok := desc.File(); ok {
		fields = append(fields, zap.String("file", file.Name), zap.String("size", file.Size))
	}
	logging.L().Info("upload applied", fields...)

	p.refreshFolderGauge()
	return nil
}

// checkDescriptor rejects descriptors the tree could not address: no variant,
// a nameless file, or a file typed for the other section
func checkDescriptor(kind types.Kind, desc types.FileDescriptor) error {
	switch desc.Kind() {
	case types.DescriptorLinkOnly:
		return nil
	case types.DescriptorAttached:
		file, _ := desc.File()
		if file.Name == "" {
			return fmt.Errorf("%w: attached file without name", types.ErrInvalidDescriptor)
		}
		if file.Type != "" && file.Type != kind {
			return fmt.Errorf("%w: %s file in %s section", types.ErrInvalidDescriptor, file.Type, kind)
		}
		return nil
	}
	return fmt.Errorf("%w: no variant", types.ErrInvalidDescriptor)
}

// DeleteFolder removes a folder and its files
func (p *Portal) DeleteFolder(scope types.Scope, kind types.Kind, folderName string) error {
	if err := catalog.ValidateScope(scope); err != nil {
		return err
	}
	if err := p.db.DeleteFolder(scope, kind, folderName); err != nil {
		return err
	}

	logging.L().Info("folder deleted",
		zap.Stringer("scope", scope),
		zap.String("kind", string(kind)),
		zap.String("folder", folderName))
	p.refreshFolderGauge()
	return nil
}

// Reset clears every stored folder and file
func (p *Portal) Reset() error {
	if err := p.db.DeleteAll(); err != nil {
		return fmt.Errorf("failed to reset resource store: %w", err)
	}
	logging.L().Warn("resource store reset")
	p.refreshFolderGauge()
	return nil
}

// TableInfo returns row counts of the store tables
func (p *Portal) TableInfo() ([]types.TableInfo, error) {
	return p.db.GetTableInfo()
}

func (p *Portal) refreshFolderGauge() {
	count, err := p.db.CountRows("folders")
	if err != nil {
		logging.L().Warn("failed to count folders", zap.Error(err))
		return
	}
	metrics.SetFoldersStored(count)
}

// OpenSession returns the live session with the given ID, or mounts a new
// one on scope when the ID is empty, unknown or expired. created reports
// whether a new session was mounted.
func (p *Portal) OpenSession(id string, scope types.Scope) (s *Session, created bool, err error) {
	if id != "" {
		s, err = p.sessions.Get(id)
		if err == nil {
			return s, false, nil
		}
		if !errors.Is(err, ErrSessionNotFound) {
			return nil, false, err
		}
	}

	if err := catalog.ValidateScope(scope); err != nil {
		return nil, false, err
	}
	s = newSession(p, scope)
	p.sessions.Put(s)
	metrics.SetSessionsActive(p.sessions.Len())
	logging.L().Debug("session mounted", zap.String("session", s.ID()), zap.Stringer("scope", scope))
	return s, true, nil
}

// pathScope is the scope synthesized file paths are built from
func (p *Portal) pathScope(active types.Scope) types.Scope {
	if pinned := p.config.Paths.PinnedScope; pinned != nil {
		return *pinned
	}
	return active
}
