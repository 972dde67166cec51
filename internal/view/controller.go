// Package view holds the per-visitor page state: scroll-spy, theme, mobile
// menu, expandable blocks, the highlight carousel and the contact form.
//
// The browser forwards its events here and renders from Snapshot. Requests
// for one visitor may overlap, so every method serialises on one mutex; the
// mutex is never held while a contact message is being sent.
package view

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Zachkp/folio/internal/mailer"
)

// Scroller receives scroll requests for the presentation layer.
type Scroller interface {
	ScrollToSection(id string)
	ScrollToTop()
}

// Options configures a Controller. Sections lists the page's section ids in
// page order.
type Options struct {
	Sections    []string
	DarkDefault bool
	Locale      string
	Sender      mailer.Sender
	// SendTimeout bounds one send attempt. Zero means no bound.
	SendTimeout time.Duration
	// Sends, when set, counts deliveries in flight so the owner can wait
	// for them before shutting down.
	Sends *sync.WaitGroup
	Log   logrus.FieldLogger
}

// Controller holds the view state of one page load and applies the
// browser's events to it.
type Controller struct {
	mu sync.Mutex

	spy      *ScrollSpy
	known    map[string]bool
	isDark   bool
	menuOpen bool
	expanded map[string]bool
	form     ContactFormState
	locale   string
	carousel int

	sender      mailer.Sender
	sendTimeout time.Duration
	sends       *sync.WaitGroup
	inflight    chan struct{}
	log         logrus.FieldLogger
}

func NewController(opts Options) *Controller {
	c := &Controller{
		spy:         NewScrollSpy(opts.Sections),
		known:       make(map[string]bool, len(opts.Sections)),
		isDark:      opts.DarkDefault,
		expanded:    make(map[string]bool),
		locale:      opts.Locale,
		sender:      opts.Sender,
		sendTimeout: opts.SendTimeout,
		sends:       opts.Sends,
		log:         opts.Log,
	}
	for _, id := range opts.Sections {
		c.known[id] = true
	}
	if c.sender == nil {
		c.sender = mailer.Simulated{}
	}
	if c.log == nil {
		c.log = logrus.StandardLogger()
	}
	return c
}

// OnScroll feeds one scroll event to the scroll-spy.
func (c *Controller) OnScroll(offsetY float64, boxes map[string]Box) ScrollSpyState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.spy.Update(offsetY, boxes)
}

// NavigateTo closes the menu and asks sc to scroll to the section. It
// reports whether the section exists; unknown ids only close the menu.
func (c *Controller) NavigateTo(sectionID string, sc Scroller) bool {
	c.mu.Lock()
	c.menuOpen = false
	ok := c.known[sectionID]
	c.mu.Unlock()

	if !ok {
		return false
	}
	sc.ScrollToSection(sectionID)
	return true
}

func (c *Controller) ScrollToTop(sc Scroller) {
	sc.ScrollToTop()
}

func (c *Controller) ToggleTheme() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.isDark = !c.isDark
	return c.isDark
}

func (c *Controller) ToggleMenu() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.menuOpen = !c.menuOpen
	return c.menuOpen
}

func (c *Controller) CloseMenu() {
	c.mu.Lock()
	c.menuOpen = false
	c.mu.Unlock()
}

// ToggleExpanded flips one expandable block and returns its new state.
func (c *Controller) ToggleExpanded(blockID string) (bool, error) {
	if blockID == "" {
		return false, errors.New("empty block id")
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.expanded[blockID] = !c.expanded[blockID]
	return c.expanded[blockID], nil
}

func (c *Controller) SetLocale(locale string) {
	c.mu.Lock()
	c.locale = locale
	c.mu.Unlock()
}

// AdvanceHighlight moves the carousel to the next of n items.
func (c *Controller) AdvanceHighlight(n int) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	if n <= 0 {
		c.carousel = 0
		return 0
	}
	c.carousel = (c.carousel + 1) % n
	return c.carousel
}

func (c *Controller) SetField(name, value string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.form.set(name, value); err != nil {
		return fmt.Errorf("%w: %q", err, name)
	}
	return nil
}

// Submit starts delivering the form. A call made while a delivery is in
// flight does nothing and reports started=false. A blank required field
// returns ErrMissingField and leaves the status alone. Otherwise the status
// becomes Submitting and the send runs in the background: success clears
// the fields, failure keeps them. There is one attempt per call.
func (c *Controller) Submit(ctx context.Context) (started bool, err error) {
	c.mu.Lock()
	if c.form.Status == StatusSubmitting {
		c.mu.Unlock()
		return false, nil
	}
	if field, ok := c.form.missing(); ok {
		c.mu.Unlock()
		return false, fmt.Errorf("%w: %s", ErrMissingField, field)
	}
	c.form.Status = StatusSubmitting
	done := make(chan struct{})
	c.inflight = done
	msg := mailer.Message{Name: c.form.Name, Email: c.form.Email, Body: c.form.Message}
	c.mu.Unlock()

	// The send outlives the request that triggered it.
	sendCtx := context.WithoutCancel(ctx)
	cancel := func() {}
	if c.sendTimeout > 0 {
		sendCtx, cancel = context.WithTimeout(sendCtx, c.sendTimeout)
	}
	if c.sends != nil {
		c.sends.Add(1)
	}
	go func() {
		defer cancel()
		if c.sends != nil {
			defer c.sends.Done()
		}
		c.finish(c.sender.Send(sendCtx, msg), done)
	}()
	return true, nil
}

func (c *Controller) finish(err error, done chan struct{}) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.log.WithError(err).Debug("contact message not delivered")
		c.form.Status = StatusError
	} else {
		c.form.clear()
		c.form.Status = StatusSuccess
	}
	c.inflight = nil
	close(done)
}

// AwaitSubmission blocks until no delivery is in flight or ctx ends, and
// returns the form status at that point.
func (c *Controller) AwaitSubmission(ctx context.Context) ContactFormStatus {
	c.mu.Lock()
	done := c.inflight
	c.mu.Unlock()

	if done != nil {
		select {
		case <-done:
		case <-ctx.Done():
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	return c.form.Status
}
