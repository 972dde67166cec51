package web

import (
	"net/http"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"

	"github.com/Zachkp/folio/internal/view"
)

const (
	sessionHeader = "X-Folio-Session"

	ctxController = "folio.controller"
	ctxSession    = "folio.session"
)

// index renders the whole page and starts a fresh session for it.
func (s *Server) index(c *gin.Context) {
	id, ctrl := s.sessions.New()

	pref := c.Query("lang")
	if pref == "" {
		pref = c.GetHeader("Accept-Language")
	}
	ctrl.SetLocale(s.content.Match(pref))

	c.Header("Cache-Control", "no-store")
	c.HTML(http.StatusOK, "index.html", s.pageData(id, ctrl))
}

// requireSession resolves the X-Folio-Session header. Unknown or expired
// sessions make htmx reload the page, which starts a new one.
func (s *Server) requireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(sessionHeader)
		ctrl, ok := s.sessions.Lookup(id)
		if !ok {
			c.Header("HX-Refresh", "true")
			c.AbortWithStatus(http.StatusGone)
			return
		}
		c.Set(ctxSession, id)
		c.Set(ctxController, ctrl)
		c.Next()
	}
}

func controller(c *gin.Context) *view.Controller {
	return c.MustGet(ctxController).(*view.Controller)
}

// render executes a fragment template for the request's session.
func (s *Server) render(c *gin.Context, status int, name string, mutate ...func(*pageData)) {
	d := s.pageData(c.GetString(ctxSession), controller(c))
	for _, m := range mutate {
		m(d)
	}
	c.HTML(status, name, d)
}

func (s *Server) privacy(c *gin.Context) {
	b := s.content.Bundle(s.content.Match(c.GetHeader("Accept-Language")))
	c.HTML(http.StatusOK, "privacy.html", gin.H{
		"title":         "Privacy Policy",
		"C":             b,
		"retentionDays": int(s.cfg.Privacy.Retention.Hours() / 24),
		"tracking":      s.store != nil,
	})
}

func (s *Server) cv(c *gin.Context) {
	path := s.cfg.Content.CVPath
	if path == "" {
		c.Status(http.StatusNotFound)
		return
	}
	if _, err := os.Stat(path); err != nil {
		s.log.WithError(err).Warn("cv file unavailable")
		c.Status(http.StatusNotFound)
		return
	}
	c.FileAttachment(path, filepath.Base(path))
}
