package handlers

import (
	"net/http"
	"strings"

	"github.com/nrjt/eduplatform/internal/portal"
	"github.com/nrjt/eduplatform/internal/resourcefs"
)

// ResourceFiles serves the synthesized resource paths below the configured
// resource base. Files are served as their plain-text placeholders and
// directories as listings.
func ResourceFiles(p *portal.Portal) http.Handler {
	cfg := p.Config()
	fsys := resourcefs.New(p, cfg.Paths.DateLayout)
	files := http.StripPrefix(strings.TrimSuffix(cfg.Paths.ResourceBase, "/"), http.FileServer(http.FS(fsys)))

	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		// FileServer keeps a preset type for files and overrides it for listings
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		files.ServeHTTP(w, req)
	})
}
