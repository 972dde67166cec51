package web

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

var untrackedPrefixes = []string{
	"/static/",
	"/admin",
	"/favicon",
	"/privacy",
	"/ui/",
	"/contact",
	"/healthz",
}

// hashIP is stable for one process and one address. Raw addresses are
// never stored.
func hashIP(salt, ip string) string {
	sum := sha256.Sum256([]byte(ip + salt))
	return hex.EncodeToString(sum[:])[:16]
}

// trackVisits records page views in the background. Requests carrying
// DNT: 1 are skipped.
func (s *Server) trackVisits() gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if c.Request.Method != http.MethodGet || c.GetHeader("DNT") == "1" || untracked(path) {
			c.Next()
			return
		}

		hashed := hashIP(s.salt, c.ClientIP())
		ua := c.GetHeader("User-Agent")
		at := s.now()
		s.bg.Add(1)
		go func() {
			defer s.bg.Done()
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := s.store.RecordVisit(ctx, hashed, ua, path, at); err != nil {
				s.log.WithError(err).Warn("recording visit")
			}
		}()
		c.Next()
	}
}

func untracked(path string) bool {
	for _, p := range untrackedPrefixes {
		if strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}

func (s *Server) cleanupVisitors(ctx context.Context) (int64, error) {
	if s.cfg.Privacy.Retention <= 0 {
		return 0, nil
	}
	n, err := s.store.CleanupVisitors(ctx, s.now().Add(-s.cfg.Privacy.Retention))
	if err != nil {
		return 0, err
	}
	if n > 0 {
		s.log.WithField("removed", n).Info("privacy cleanup")
	}
	return n, nil
}

// runRetention applies the retention window at start and then daily.
func (s *Server) runRetention(ctx context.Context) {
	t := time.NewTicker(24 * time.Hour)
	defer t.Stop()
	for {
		if _, err := s.cleanupVisitors(ctx); err != nil {
			s.log.WithError(err).Warn("privacy cleanup")
		}
		select {
		case <-ctx.Done():
			return
		case <-t.C:
		}
	}
}
