package portal

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/nrjt/eduplatform/internal/catalog"
	"github.com/nrjt/eduplatform/internal/db"
	"github.com/nrjt/eduplatform/internal/logging"
	"github.com/nrjt/eduplatform/internal/metrics"
	"github.com/nrjt/eduplatform/internal/types"
	"github.com/nrjt/eduplatform/internal/ui"
)

// ErrSessionNotFound is returned for unknown or expired session IDs
var ErrSessionNotFound = errors.New("session not found")

// Session is one mounted page: the active scope plus a tree view and an
// upload flow per kind. All methods serialize on the session mutex.
type Session struct {
	id     string
	portal *Portal

	mu        sync.Mutex
	scope     types.Scope
	trees     map[types.Kind]*ui.TreeView
	uploads   map[types.Kind]*ui.UploadFlow
	uploadErr error
}

func newSession(p *Portal, scope types.Scope) *Session {
	s := &Session{
		id:     uuid.New().String(),
		portal: p,
	}
	s.mount(scope)
	return s
}

// mount builds fresh per-kind state for scope. Callers hold s.mu or own s.
func (s *Session) mount(scope types.Scope) {
	cfg := s.portal.config
	s.scope = scope
	s.trees = make(map[types.Kind]*ui.TreeView, len(types.Kinds))
	s.uploads = make(map[types.Kind]*ui.UploadFlow, len(types.Kinds))

	for _, kind := range types.Kinds {
		s.trees[kind] = ui.NewTreeView(kind, s.portal.pathScope(scope), cfg.Paths.ResourceBase)
		s.uploads[kind] = ui.NewUploadFlow(kind, func(folderName string, desc types.FileDescriptor) {
			s.uploadErr = s.portal.Upload(s.scope, kind, folderName, desc)
		}, ui.UploadOptions{
			Now:        s.portal.now,
			DateLayout: cfg.Paths.DateLayout,
		})
	}
}

// ID returns the session ID
func (s *Session) ID() string {
	return s.id
}

// Scope returns the active scope
func (s *Session) Scope() types.Scope {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.scope
}

// EnsureScope remounts the session on scope unless it is already active,
// checking and remounting under one lock. Expansion state and upload drafts
// start over on a remount. It reports whether it remounted.
func (s *Session) EnsureScope(scope types.Scope) (bool, error) {
	if err := catalog.ValidateScope(scope); err != nil {
		return false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.scope == scope {
		return false, nil
	}
	s.mount(scope)
	return true, nil
}

// SelectStandard selects a standard tab and remounts on its first board
func (s *Session) SelectStandard(key string) (types.Scope, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tabs := ui.StandardTabs(catalog.Standards(), s.scope.Standard, func(key string) {
		s.mount(catalog.ScopeFor(key))
	})
	if !tabs.Select(key) {
		return s.scope, fmt.Errorf("%w: %q", catalog.ErrUnknownStandard, key)
	}
	return s.scope, nil
}

// SelectBoard selects a board tab of the active standard and remounts on it
func (s *Session) SelectBoard(key string) (types.Scope, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	std, _ := catalog.Lookup(s.scope.Standard)
	tabs := ui.BoardTabs(std.Boards, s.scope.Board, func(key string) {
		s.mount(types.Scope{Standard: std.ID, Board: key})
	})
	if !tabs.Select(key) {
		return s.scope, fmt.Errorf("%w: %q for standard %q", catalog.ErrUnknownBoard, key, std.ID)
	}
	return s.scope, nil
}

// Toggle flips the expansion of a folder and returns its new state
func (s *Session) Toggle(kind types.Kind, folderName string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	metrics.RecordToggle(string(kind))
	return s.trees[kind].Toggle(folderName)
}

// OpenReference returns the reference link of a folder. ok is false when
// the folder has none, in which case nothing is opened.
func (s *Session) OpenReference(kind types.Kind, folderName string) (target string, ok bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	folder, err := s.findFolder(kind, folderName)
	if err != nil {
		return "", false, err
	}

	target, ok = s.trees[kind].OpenReference(s.opener(kind, metrics.TargetReference), folder)
	return target, ok, nil
}

// OpenFile returns what opening a file leads to: its link or its
// synthesized resource path
func (s *Session) OpenFile(kind types.Kind, folderName, fileName string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	folder, err := s.findFolder(kind, folderName)
	if err != nil {
		return "", err
	}
	file, ok := ui.FindFile(folder, fileName)
	if !ok {
		return "", fmt.Errorf("%w: %q in folder %q", db.ErrFileNotFound, fileName, folderName)
	}

	targetType := metrics.TargetPath
	if file.Link != "" {
		targetType = metrics.TargetLink
	}
	return s.trees[kind].OpenFile(s.opener(kind, targetType), folderName, file), nil
}

func (s *Session) opener(kind types.Kind, targetType string) ui.Opener {
	return ui.OpenerFunc(func(target string) {
		metrics.RecordOpen(string(kind), targetType)
		logging.L().Debug("open",
			zap.String("session", s.id),
			zap.String("kind", string(kind)),
			zap.String("target", target))
	})
}

func (s *Session) findFolder(kind types.Kind, folderName string) (types.FolderEntry, error) {
	resources, err := s.portal.Resources(s.scope, kind)
	if err != nil {
		return types.FolderEntry{}, err
	}
	folder, ok := ui.FindFolder(resources, folderName)
	if !ok {
		return types.FolderEntry{}, fmt.Errorf("%w: %s", db.ErrFolderNotFound, folderName)
	}
	return folder, nil
}

// SelectFile stages a picked file and opens the modal
func (s *Session) SelectFile(kind types.Kind, file *ui.PlatformFile) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.uploads[kind].SelectFile(file)
}

// OpenCreateFolder opens the modal in create-folder mode
func (s *Session) OpenCreateFolder(kind types.Kind) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.uploads[kind].OpenCreateFolder()
}

// Submit fills the draft with the form values and submits it. The store
// error of the resulting upload, if any, is returned.
func (s *Session) Submit(kind types.Kind, folderName, referenceLink string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	flow := s.uploads[kind]
	flow.SetFolderName(folderName)
	flow.SetReferenceLink(referenceLink)

	s.uploadErr = nil
	if err := flow.Submit(); err != nil {
		return err
	}
	return s.uploadErr
}

// Cancel closes the modal and discards the draft
func (s *Session) Cancel(kind types.Kind) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.uploads[kind].Cancel()
}

// Draft returns the staged upload form of a kind
func (s *Session) Draft(kind types.Kind) ui.UploadDraft {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.uploads[kind].Draft()
}

// IsExpanded reports whether a folder is expanded
func (s *Session) IsExpanded(kind types.Kind, folderName string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.trees[kind].IsExpanded(folderName)
}

// SessionManager holds live sessions in memory and expires idle ones
type SessionManager struct {
	mu      sync.Mutex
	entries map[string]*sessionEntry
	idle    time.Duration
	now     func() time.Time
}

type sessionEntry struct {
	session  *Session
	lastSeen time.Time
}

// NewSessionManager creates a manager. An idle timeout of zero disables expiry.
func NewSessionManager(idle time.Duration, now func() time.Time) *SessionManager {
	if now == nil {
		now = time.Now
	}
	return &SessionManager{
		entries: make(map[string]*sessionEntry),
		idle:    idle,
		now:     now,
	}
}

// Put registers a session
func (m *SessionManager) Put(s *Session) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[s.ID()] = &sessionEntry{session: s, lastSeen: m.now()}
}

// Get returns a live session and marks it as seen
func (m *SessionManager) Get(id string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.entries[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	now := m.now()
	if m.expired(entry, now) {
		delete(m.entries, id)
		return nil, fmt.Errorf("%w: %s expired", ErrSessionNotFound, id)
	}
	entry.lastSeen = now
	return entry.session, nil
}

// Delete drops a session
func (m *SessionManager) Delete(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, id)
	metrics.SetSessionsActive(len(m.entries))
}

// Len returns the number of held sessions
func (m *SessionManager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

// Sweep drops expired sessions and returns how many were dropped
func (m *SessionManager) Sweep() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	dropped := 0
	for id, entry := range m.entries {
		if m.expired(entry, now) {
			delete(m.entries, id)
			dropped++
		}
	}
	metrics.SetSessionsActive(len(m.entries))
	return dropped
}

func (m *SessionManager) expired(entry *sessionEntry, now time.Time) bool {
	return m.idle > 0 && now.Sub(entry.lastSeen) > m.idle
}
