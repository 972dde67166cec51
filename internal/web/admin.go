package web

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/Zachkp/folio/internal/config"
	"github.com/Zachkp/folio/internal/store"
)

const adminCookie = "admin_token"

type adminAuth struct {
	token    string
	username string
	password string
	enabled  bool
}

// newAdminAuth issues a fresh login token per process. Without configured
// credentials the admin pages are only reachable in debug mode, with the
// development defaults.
func newAdminAuth(cfg config.AdminConfig, mode string, log logrus.FieldLogger) (*adminAuth, error) {
	token, err := randomHex(32)
	if err != nil {
		return nil, err
	}
	a := &adminAuth{token: token, username: cfg.Username, password: cfg.Password, enabled: true}
	if a.username == "" || a.password == "" {
		if mode != gin.DebugMode {
			log.Info("admin pages disabled: set admin.username and admin.password")
			a.enabled = false
			return a, nil
		}
		log.Warn("using default admin credentials admin/admin123, set admin.username and admin.password")
		a.username, a.password = "admin", "admin123"
	}
	return a, nil
}

func (a *adminAuth) check(username, password string) bool {
	u := subtle.ConstantTimeCompare([]byte(username), []byte(a.username))
	p := subtle.ConstantTimeCompare([]byte(password), []byte(a.password))
	return u&p == 1
}

func randomHex(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generating random token: %w", err)
	}
	return hex.EncodeToString(b), nil
}

func (s *Server) adminEnabled() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !s.admin.enabled {
			c.AbortWithStatus(http.StatusNotFound)
			return
		}
		c.Next()
	}
}

func (s *Server) adminAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(adminCookie)
		if err != nil || subtle.ConstantTimeCompare([]byte(token), []byte(s.admin.token)) != 1 {
			c.Redirect(http.StatusFound, "/admin/login")
			c.Abort()
			return
		}
		c.Next()
	}
}

func (s *Server) adminRoutes(r *gin.Engine) {
	open := r.Group("/admin", s.adminEnabled())
	open.GET("/login", func(c *gin.Context) {
		c.HTML(http.StatusOK, "admin-login.html", gin.H{"title": "Admin Login"})
	})
	open.POST("/login", s.adminLogin)
	open.GET("/logout", func(c *gin.Context) {
		c.SetCookie(adminCookie, "", -1, "/admin", "", false, true)
		s.log.WithField("client", hashIP(s.salt, c.ClientIP())).Info("admin logout")
		c.Redirect(http.StatusFound, "/admin/login")
	})

	admin := r.Group("/admin", s.adminEnabled(), s.adminAuthMiddleware())
	admin.GET("/dashboard", s.adminDashboard)
	admin.GET("/api/stats", s.adminStatsJSON)
	admin.GET("/messages", s.adminMessages)
	admin.DELETE("/messages/:id", s.adminDeleteMessage)
	admin.GET("/visitors", s.adminVisitors)
	admin.POST("/privacy/cleanup", s.adminCleanup)
	admin.GET("/export/stats", s.adminExportStats)
}

func (s *Server) adminLogin(c *gin.Context) {
	client := hashIP(s.salt, c.ClientIP())
	if !s.admin.check(c.PostForm("username"), c.PostForm("password")) {
		s.log.WithField("client", client).Warn("failed admin login")
		c.HTML(http.StatusUnauthorized, "admin-login.html", gin.H{
			"title": "Admin Login",
			"error": "Invalid credentials",
		})
		return
	}
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(adminCookie, s.admin.token, 3600*24, "/admin", "", false, true)
	s.log.WithField("client", client).Info("admin login")
	c.Redirect(http.StatusFound, "/admin/dashboard")
}

func (s *Server) adminError(c *gin.Context, err error, msg string) {
	s.log.WithError(err).Error(msg)
	c.HTML(http.StatusInternalServerError, "admin-error.html", gin.H{
		"title": "Error",
		"error": msg,
	})
}

func (s *Server) adminDashboard(c *gin.Context) {
	stats, err := s.store.Stats(c.Request.Context())
	if err != nil {
		s.adminError(c, err, "Failed to load statistics")
		return
	}
	messages, err := s.store.ListMessages(c.Request.Context(), 10)
	if err != nil {
		s.adminError(c, err, "Failed to load messages")
		return
	}
	c.HTML(http.StatusOK, "admin-dashboard.html", gin.H{
		"title":    "Dashboard",
		"stats":    stats,
		"messages": messages,
	})
}

func (s *Server) adminStatsJSON(c *gin.Context) {
	stats, err := s.store.Stats(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load statistics"})
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (s *Server) adminMessages(c *gin.Context) {
	messages, err := s.store.ListMessages(c.Request.Context(), 200)
	if err != nil {
		s.adminError(c, err, "Failed to load messages")
		return
	}
	c.HTML(http.StatusOK, "admin-messages.html", gin.H{
		"title":    "Messages",
		"messages": messages,
	})
}

func (s *Server) adminDeleteMessage(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid message id"})
		return
	}
	err = s.store.DeleteMessage(c.Request.Context(), id)
	switch {
	case errors.Is(err, store.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "message not found"})
		return
	case err != nil:
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete message"})
		return
	}
	s.log.WithField("message", id).Info("message deleted by admin")
	c.JSON(http.StatusOK, gin.H{"message": "deleted"})
}

func (s *Server) adminVisitors(c *gin.Context) {
	visitors, err := s.store.RecentVisitors(c.Request.Context(), 200)
	if err != nil {
		s.adminError(c, err, "Failed to load visitors")
		return
	}
	c.HTML(http.StatusOK, "admin-visitors.html", gin.H{
		"title":    "Visitors",
		"visitors": visitors,
	})
}

func (s *Server) adminCleanup(c *gin.Context) {
	n, err := s.cleanupVisitors(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cleanup failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"removed": n})
}

func (s *Server) adminExportStats(c *gin.Context) {
	stats, err := s.store.Stats(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load statistics"})
		return
	}
	c.Header("Content-Disposition", "attachment; filename=folio-stats.json")
	s.log.WithField("client", hashIP(s.salt, c.ClientIP())).Info("stats exported")
	c.JSON(http.StatusOK, stats)
}
