package web

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Zachkp/folio/internal/view"
)

// htmxScroller turns scroll requests into HX-Trigger events that the page
// script handles with scrollIntoView / scrollTo.
type htmxScroller struct {
	target string
	top    bool
}

func (h *htmxScroller) ScrollToSection(id string) { h.target = id }
func (h *htmxScroller) ScrollToTop()              { h.top = true }

func (h *htmxScroller) trigger(c *gin.Context) {
	events := map[string]any{}
	if h.target != "" {
		events["folio:scroll"] = map[string]string{"target": h.target}
	}
	if h.top {
		events["folio:scroll-top"] = map[string]string{}
	}
	if len(events) == 0 {
		return
	}
	b, err := json.Marshal(events)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.Header("HX-Trigger", string(b))
}

type scrollRequest struct {
	OffsetY  float64             `json:"offsetY"`
	Sections map[string]view.Box `json:"sections" binding:"required"`
}

func (s *Server) scroll(c *gin.Context) {
	var req scrollRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, controller(c).OnScroll(req.OffsetY, req.Sections))
}

// navigate closes the menu and, for a known section, asks the page to
// scroll there. The closed menu is returned either way.
func (s *Server) navigate(c *gin.Context) {
	sc := &htmxScroller{}
	controller(c).NavigateTo(c.Param("section"), sc)
	sc.trigger(c)
	s.render(c, http.StatusOK, "menu")
}

func (s *Server) scrollTop(c *gin.Context) {
	sc := &htmxScroller{}
	controller(c).ScrollToTop(sc)
	sc.trigger(c)
	c.Status(http.StatusNoContent)
}

func (s *Server) toggleTheme(c *gin.Context) {
	controller(c).ToggleTheme()
	s.render(c, http.StatusOK, "page")
}

func (s *Server) toggleMenu(c *gin.Context) {
	controller(c).ToggleMenu()
	s.render(c, http.StatusOK, "menu")
}

func (s *Server) closeMenu(c *gin.Context) {
	controller(c).CloseMenu()
	s.render(c, http.StatusOK, "menu")
}

const bioBlockID = "about-bio"

// toggleExpanded accepts "about-bio" and "faq-N" for an existing FAQ entry.
func (s *Server) toggleExpanded(c *gin.Context) {
	block := c.Param("block")
	ctrl := controller(c)

	fragment := ""
	switch {
	case block == bioBlockID:
		fragment = bioBlockID
	case strings.HasPrefix(block, "faq-"):
		i, err := strconv.Atoi(strings.TrimPrefix(block, "faq-"))
		b := s.content.Bundle(ctrl.Snapshot().Locale)
		if err == nil && i >= 0 && i < len(b.FAQ) && block == faqBlockID(i) {
			fragment = "faq-list"
		}
	}
	if fragment == "" {
		c.Status(http.StatusNotFound)
		return
	}

	if _, err := ctrl.ToggleExpanded(block); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}
	s.render(c, http.StatusOK, fragment)
}

func (s *Server) setLocale(c *gin.Context) {
	controller(c).SetLocale(s.content.Match(c.Param("tag")))
	s.render(c, http.StatusOK, "page")
}

func (s *Server) nextHighlight(c *gin.Context) {
	ctrl := controller(c)
	b := s.content.Bundle(ctrl.Snapshot().Locale)
	ctrl.AdvanceHighlight(len(b.Highlights))
	s.render(c, http.StatusOK, "highlight")
}
