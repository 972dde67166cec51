// Package web serves the portfolio over HTTP with gin. Pages are rendered
// on the server; htmx and a small page script forward browser events to
// the visitor's view.Controller and swap in the fragments it returns.
package web

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/Zachkp/folio/internal/config"
	"github.com/Zachkp/folio/internal/content"
	"github.com/Zachkp/folio/internal/logging"
	"github.com/Zachkp/folio/internal/mailer"
	"github.com/Zachkp/folio/internal/session"
	"github.com/Zachkp/folio/internal/store"
	"github.com/Zachkp/folio/internal/view"
)

// Deps are the collaborators a Server is built from.
type Deps struct {
	Config  *config.Config
	Content content.Provider
	// Store backs visitor tracking and the admin pages. Both are off
	// when it is nil.
	Store  *store.Store
	Sender mailer.Sender
	Log    logrus.FieldLogger
}

// Server is the portfolio's HTTP front end. It owns the session registry
// and the background work started on behalf of requests.
type Server struct {
	cfg      *config.Config
	content  content.Provider
	store    *store.Store
	sessions *session.Registry
	admin    *adminAuth
	salt     string
	log      logrus.FieldLogger
	engine   *gin.Engine
	now      func() time.Time

	// bg tracks background writes so shutdown can wait for them.
	bg sync.WaitGroup
	// sends counts contact deliveries still in flight.
	sends sync.WaitGroup
}

func New(d Deps) (*Server, error) {
	if d.Config == nil || d.Content == nil {
		return nil, errors.New("web: config and content are required")
	}
	cfg := d.Config
	log := d.Log
	if log == nil {
		log = logging.Log
	}

	s := &Server{
		cfg:     cfg,
		content: d.Content,
		store:   d.Store,
		log:     log,
		now:     time.Now,
	}
	s.sessions = session.NewRegistry(cfg.Session.TTL, cfg.Session.Max, func() *view.Controller {
		return view.NewController(view.Options{
			Sections:    content.SectionIDs(),
			DarkDefault: cfg.UI.DarkDefault,
			Sender:      d.Sender,
			SendTimeout: cfg.Contact.SendTimeout,
			Sends:       &s.sends,
			Log:         log,
		})
	})

	var err error
	if s.salt, err = randomHex(32); err != nil {
		return nil, err
	}
	if s.admin, err = newAdminAuth(cfg.Admin, cfg.Server.Mode, log); err != nil {
		return nil, err
	}

	gin.SetMode(cfg.Server.Mode)
	r := gin.New()
	r.Use(gin.Recovery(), logging.Middleware(log))
	if err := r.SetTrustedProxies(cfg.Server.TrustedProxies); err != nil {
		return nil, fmt.Errorf("setting trusted proxies: %w", err)
	}

	tmpl, err := parseTemplates()
	if err != nil {
		return nil, err
	}
	r.SetHTMLTemplate(tmpl)

	static, err := fs.Sub(staticFS, "static")
	if err != nil {
		return nil, err
	}
	r.StaticFS("/static", http.FS(static))

	s.engine = r
	s.routes()
	return s, nil
}

func (s *Server) routes() {
	r := s.engine
	if s.store != nil {
		r.Use(s.trackVisits())
	}

	r.GET("/", s.index)
	r.GET("/healthz", s.healthz)
	r.GET("/privacy", s.privacy)
	r.GET("/cv", s.cv)

	ui := r.Group("/ui", s.requireSession())
	ui.POST("/scroll", s.scroll)
	ui.POST("/navigate/:section", s.navigate)
	ui.POST("/top", s.scrollTop)
	ui.POST("/theme", s.toggleTheme)
	ui.POST("/menu", s.toggleMenu)
	ui.POST("/menu/close", s.closeMenu)
	ui.POST("/expand/:block", s.toggleExpanded)
	ui.POST("/locale/:tag", s.setLocale)
	ui.GET("/highlights/next", s.nextHighlight)

	contact := r.Group("/contact", s.requireSession())
	contact.POST("", s.submitContact)
	contact.POST("/field", s.setContactField)
	contact.GET("/status", s.contactStatus)

	if s.store != nil {
		s.adminRoutes(r)
	}
}

func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves until ctx is cancelled, then shuts down gracefully. Contact
// deliveries already in flight are given the send timeout to finish.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              ":" + s.cfg.Server.Port,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go s.sessions.Run(ctx, sweepInterval(s.cfg.Session.TTL))
	if s.store != nil {
		go s.runRetention(ctx)
	}

	errc := make(chan error, 1)
	go func() {
		s.log.WithField("addr", srv.Addr).Info("listening")
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout())
	defer cancel()
	err := srv.Shutdown(shutdownCtx)
	if !waitFor(shutdownCtx, &s.sends) {
		s.log.Warn("shutdown timed out with contact deliveries in flight")
	}
	s.bg.Wait()
	s.log.Info("server stopped")
	return err
}

func (s *Server) shutdownTimeout() time.Duration {
	send := s.cfg.Contact.SendTimeout
	if send <= 0 {
		send = 30 * time.Second
	}
	return 10*time.Second + send
}

// waitFor reports whether wg drained before ctx ended.
func waitFor(ctx context.Context, wg *sync.WaitGroup) bool {
	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return true
	case <-ctx.Done():
		return false
	}
}

func sweepInterval(ttl time.Duration) time.Duration {
	if iv := ttl / 4; iv > time.Minute {
		return iv
	}
	return time.Minute
}

func (s *Server) healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":   "ok",
		"sessions": s.sessions.Len(),
	})
}
