package web

import (
	"embed"
	"fmt"
	"html/template"
	"time"

	"github.com/Zachkp/folio/internal/content"
	"github.com/Zachkp/folio/internal/view"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

var templateFuncs = template.FuncMap{
	"glyph": func(id content.IconID) content.Glyph {
		g, _ := id.Glyph()
		return g
	},
	"date": func(t time.Time) string {
		if t.IsZero() {
			return ""
		}
		return t.Format("Jan 2, 2006")
	},
	"faqID": faqBlockID,
	"year":  func() int { return time.Now().Year() },
}

func parseTemplates() (*template.Template, error) {
	tmpl, err := template.New("").Funcs(templateFuncs).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parsing templates: %w", err)
	}
	return tmpl, nil
}

func faqBlockID(i int) string {
	return fmt.Sprintf("faq-%d", i)
}

// pageData is what every page and fragment template renders from.
type pageData struct {
	SessionID string
	Snap      view.Snapshot
	C         *content.Bundle
	Nav       []content.NavSection
	Locales   []string
	Highlight content.Highlight
	HasCV     bool
	// Invalid marks a contact submission that failed validation.
	Invalid bool
}

func (s *Server) pageData(sessionID string, ctrl *view.Controller) *pageData {
	snap := ctrl.Snapshot()
	b := s.content.Bundle(snap.Locale)
	d := &pageData{
		SessionID: sessionID,
		Snap:      snap,
		C:         b,
		Nav:       b.NavSections(),
		Locales:   s.content.Locales(),
		HasCV:     s.cfg.Content.CVPath != "",
	}
	d.Highlight, _ = b.Highlight(snap.Highlight)
	return d
}
