package portal

import (
	"github.com/nrjt/eduplatform/internal/catalog"
	"github.com/nrjt/eduplatform/internal/types"
	"github.com/nrjt/eduplatform/internal/ui"
)

// Page is the display model of a whole mounted page
type Page struct {
	Scope        types.Scope
	StandardTabs []ui.Tab
	BoardTabs    []ui.Tab // empty for standards without boards
	Sections     []Section
	Footer       ui.Footer
}

// Section is one resource category: its tree and its upload card
type Section struct {
	Kind   types.Kind
	Label  string
	Icon   string
	Tree   ui.TreeRender
	Upload ui.UploadRender
}

// Render builds the page for the session's current state
func (s *Session) Render() (Page, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	page := Page{
		Scope:        s.scope,
		StandardTabs: ui.StandardTabs(catalog.Standards(), s.scope.Standard, nil).Render(),
		Footer:       ui.DefaultFooter(),
	}
	if std, ok := catalog.Lookup(s.scope.Standard); ok && len(std.Boards) > 0 {
		page.BoardTabs = ui.BoardTabs(std.Boards, s.scope.Board, nil).Render()
	}

	for _, kind := range types.Kinds {
		resources, err := s.portal.Resources(s.scope, kind)
		if err != nil {
			return Page{}, err
		}
		page.Sections = append(page.Sections, Section{
			Kind:   kind,
			Label:  kind.SectionLabel(),
			Icon:   kind.Icon(),
			Tree:   s.trees[kind].Render(resources),
			Upload: s.uploads[kind].Render(),
		})
	}
	return page, nil
}
