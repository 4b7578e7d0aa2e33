package handlers

import (
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/nrjt/eduplatform/internal/catalog"
	"github.com/nrjt/eduplatform/internal/logging"
	"github.com/nrjt/eduplatform/internal/portal"
	"github.com/nrjt/eduplatform/internal/types"
	"github.com/nrjt/eduplatform/internal/ui"
)

// SessionCookie names the cookie carrying the session ID
const SessionCookie = "edu_session"

//go:embed templates/*.html
var templateFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templateFS, "templates/page.html"))

// pageData is what the page template renders
type pageData struct {
	Page       portal.Page
	Notice     string
	NoticeKind types.Kind
}

// PageHandler serves the session-bound HTML page and its form actions
type PageHandler struct {
	portal *portal.Portal
}

// NewPageHandler creates a new page handler
func NewPageHandler(p *portal.Portal) *PageHandler {
	return &PageHandler{portal: p}
}

// ScopeURL returns the page URL of a scope
func ScopeURL(scope types.Scope) string {
	u := "/s/" + url.PathEscape(scope.Standard)
	if scope.Board != "" {
		u += "/" + url.PathEscape(scope.Board)
	}
	return u
}

// Index redirects to the default scope
func (h *PageHandler) Index(w http.ResponseWriter, req *http.Request) {
	http.Redirect(w, req, ScopeURL(catalog.DefaultScope()), http.StatusFound)
}

// ShowStandard renders a standard without boards, or redirects to the first
// board of one that has them
func (h *PageHandler) ShowStandard(w http.ResponseWriter, req *http.Request) {
	standard := chi.URLParam(req, "standard")
	std, ok := catalog.Lookup(standard)
	if !ok {
		http.Error(w, fmt.Sprintf("%v: %q", catalog.ErrUnknownStandard, standard), http.StatusNotFound)
		return
	}
	if len(std.Boards) > 0 {
		http.Redirect(w, req, ScopeURL(catalog.ScopeFor(std.ID)), http.StatusFound)
		return
	}
	h.show(w, req, types.Scope{Standard: std.ID})
}

// ShowBoard renders a standard and board
func (h *PageHandler) ShowBoard(w http.ResponseWriter, req *http.Request) {
	h.show(w, req, types.Scope{
		Standard: chi.URLParam(req, "standard"),
		Board:    chi.URLParam(req, "board"),
	})
}

// show mounts the session on scope, remounting when the URL names a scope
// other than the session's, and renders the page
func (h *PageHandler) show(w http.ResponseWriter, req *http.Request, scope types.Scope) {
	if err := catalog.ValidateScope(scope); err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	var id string
	if cookie, err := req.Cookie(SessionCookie); err == nil {
		id = cookie.Value
	}

	s, created, err := h.portal.OpenSession(id, scope)
	if err != nil {
		h.fail(w, req, "open session", err)
		return
	}
	if created {
		http.SetCookie(w, &http.Cookie{
			Name:     SessionCookie,
			Value:    s.ID(),
			Path:     "/",
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
	} else if _, err := s.EnsureScope(scope); err != nil {
		h.fail(w, req, "remount session", err)
		return
	}

	h.render(w, req, s, http.StatusOK, pageData{})
}

func (h *PageHandler) render(w http.ResponseWriter, req *http.Request, s *portal.Session, status int, data pageData) {
	page, err := s.Render()
	if err != nil {
		h.fail(w, req, "render page", err)
		return
	}
	data.Page = page

	var buf strings.Builder
	if err := pageTemplate.Execute(&buf, data); err != nil {
		h.fail(w, req, "execute page template", err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	io.WriteString(w, buf.String())
}

func (h *PageHandler) fail(w http.ResponseWriter, req *http.Request, action string, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		logging.WithContext(req.Context()).Error(action+" failed", zap.Error(err))
	}
	http.Error(w, err.Error(), status)
}

// session returns the live session of the request. Without one the client
// is sent back to the start page and ok is false.
func (h *PageHandler) session(w http.ResponseWriter, req *http.Request) (s *portal.Session, ok bool) {
	cookie, err := req.Cookie(SessionCookie)
	if err == nil {
		s, err = h.portal.Sessions().Get(cookie.Value)
	}
	if err != nil {
		http.Redirect(w, req, "/", http.StatusSeeOther)
		return nil, false
	}
	return s, true
}

// sessionKind returns the live session and the {kind} URL parameter
func (h *PageHandler) sessionKind(w http.ResponseWriter, req *http.Request) (*portal.Session, types.Kind, bool) {
	kind, err := types.ParseKind(chi.URLParam(req, "kind"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return nil, "", false
	}
	s, ok := h.session(w, req)
	return s, kind, ok
}

func (h *PageHandler) back(w http.ResponseWriter, req *http.Request, s *portal.Session) {
	http.Redirect(w, req, ScopeURL(s.Scope()), http.StatusSeeOther)
}

// SelectStandard handles a standard tab click
func (h *PageHandler) SelectStandard(w http.ResponseWriter, req *http.Request) {
	s, ok := h.session(w, req)
	if !ok {
		return
	}
	scope, err := s.SelectStandard(req.FormValue("key"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	http.Redirect(w, req, ScopeURL(scope), http.StatusSeeOther)
}

// SelectBoard handles a board tab click
func (h *PageHandler) SelectBoard(w http.ResponseWriter, req *http.Request) {
	s, ok := h.session(w, req)
	if !ok {
		return
	}
	scope, err := s.SelectBoard(req.FormValue("key"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	http.Redirect(w, req, ScopeURL(scope), http.StatusSeeOther)
}

// Toggle handles a folder row click
func (h *PageHandler) Toggle(w http.ResponseWriter, req *http.Request) {
	s, kind, ok := h.sessionKind(w, req)
	if !ok {
		return
	}
	s.Toggle(kind, req.FormValue("folder"))
	h.back(w, req, s)
}

// OpenReference redirects to a folder's reference link
func (h *PageHandler) OpenReference(w http.ResponseWriter, req *http.Request) {
	s, kind, ok := h.sessionKind(w, req)
	if !ok {
		return
	}
	target, opened, err := s.OpenReference(kind, req.FormValue("folder"))
	if err != nil {
		h.fail(w, req, "open reference", err)
		return
	}
	if !opened {
		h.back(w, req, s)
		return
	}
	http.Redirect(w, req, redirectTarget(target), http.StatusSeeOther)
}

// OpenFile redirects to a file's link or resource path
func (h *PageHandler) OpenFile(w http.ResponseWriter, req *http.Request) {
	s, kind, ok := h.sessionKind(w, req)
	if !ok {
		return
	}
	target, err := s.OpenFile(kind, req.FormValue("folder"), req.FormValue("file"))
	if err != nil {
		h.fail(w, req, "open file", err)
		return
	}
	http.Redirect(w, req, redirectTarget(target), http.StatusSeeOther)
}

// redirectTarget escapes synthesized paths; links are used as given
func redirectTarget(target string) string {
	if strings.HasPrefix(target, "/") {
		return (&url.URL{Path: target}).EscapedPath()
	}
	return target
}

// SelectFile stages the picked file. The page script posts the file's name
// and size as plain form fields. Without script the browser sends the file
// itself; the multipart body is then streamed and only its byte count kept.
// An empty picker stages nothing.
func (h *PageHandler) SelectFile(w http.ResponseWriter, req *http.Request) {
	s, kind, ok := h.sessionKind(w, req)
	if !ok {
		return
	}

	var file *ui.PlatformFile
	var err error
	if mediaType, _, _ := mime.ParseMediaType(req.Header.Get("Content-Type")); mediaType == "multipart/form-data" {
		file, err = streamPickedFile(w, req)
	} else {
		file, err = pickedFileFromForm(req)
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	s.SelectFile(kind, file)
	h.back(w, req, s)
}

func pickedFileFromForm(req *http.Request) (*ui.PlatformFile, error) {
	name := req.PostFormValue("file_name")
	if name == "" {
		return nil, nil
	}
	size, err := strconv.ParseInt(req.PostFormValue("file_size"), 10, 64)
	if err != nil || size < 0 {
		return nil, fmt.Errorf("invalid file_size %q", req.PostFormValue("file_size"))
	}
	return &ui.PlatformFile{Name: name, Size: size}, nil
}

// streamPickedFile counts the bytes of the multipart "file" part. The
// server's read and write deadlines are lifted for this request since a
// whole video may be on the wire.
func streamPickedFile(w http.ResponseWriter, req *http.Request) (*ui.PlatformFile, error) {
	rc := http.NewResponseController(w)
	for _, err := range []error{rc.SetReadDeadline(time.Time{}), rc.SetWriteDeadline(time.Time{})} {
		if err != nil && !errors.Is(err, http.ErrNotSupported) {
			logging.WithContext(req.Context()).Warn("failed to lift deadline", zap.Error(err))
		}
	}

	reader, err := req.MultipartReader()
	if err != nil {
		return nil, fmt.Errorf("invalid multipart body: %w", err)
	}

	for {
		part, err := reader.NextPart()
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read multipart body: %w", err)
		}

		if part.FormName() != "file" || part.FileName() == "" {
			part.Close()
			continue
		}

		size, err := io.Copy(io.Discard, part)
		part.Close()
		if err != nil {
			return nil, fmt.Errorf("failed to read file %s: %w", part.FileName(), err)
		}
		return &ui.PlatformFile{Name: part.FileName(), Size: size}, nil
	}
}

// CreateFolder opens the modal in create-folder mode
func (h *PageHandler) CreateFolder(w http.ResponseWriter, req *http.Request) {
	s, kind, ok := h.sessionKind(w, req)
	if !ok {
		return
	}
	s.OpenCreateFolder(kind)
	h.back(w, req, s)
}

// Submit submits the modal. A missing folder name renders the page again
// with the modal still open.
func (h *PageHandler) Submit(w http.ResponseWriter, req *http.Request) {
	s, kind, ok := h.sessionKind(w, req)
	if !ok {
		return
	}

	err := s.Submit(kind, req.FormValue("folder_name"), req.FormValue("reference_link"))
	if errors.Is(err, ui.ErrFolderNameRequired) {
		h.render(w, req, s, http.StatusUnprocessableEntity, pageData{
			Notice:     "Please enter a folder name.",
			NoticeKind: kind,
		})
		return
	}
	if err != nil {
		h.fail(w, req, "submit upload", err)
		return
	}
	h.back(w, req, s)
}

// Cancel closes the modal without uploading
func (h *PageHandler) Cancel(w http.ResponseWriter, req *http.Request) {
	s, kind, ok := h.sessionKind(w, req)
	if !ok {
		return
	}
	s.Cancel(kind)
	h.back(w, req, s)
}
