// Package session maps page loads to their controllers. Every full page
// render starts a new session, so state ends with the tab or a reload.
// Sessions live only in memory. They are dropped after a period of
// inactivity, or earlier when the registry is full.
package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/Zachkp/folio/internal/view"
)

// DefaultMaxSessions is used when NewRegistry gets a non-positive size.
const DefaultMaxSessions = 10000

type entry struct {
	ctrl     *view.Controller
	lastSeen time.Time
}

// Registry holds live sessions by id. When it is full, starting a session
// evicts the least recently used one.
type Registry struct {
	mu      sync.Mutex
	entries *lru.Cache[string, *entry]
	ttl     time.Duration
	newCtrl func() *view.Controller
	now     func() time.Time
}

// NewRegistry returns a registry holding at most maxSessions sessions, each
// expiring after ttl without activity. newCtrl builds the controller for
// every new session.
func NewRegistry(ttl time.Duration, maxSessions int, newCtrl func() *view.Controller) *Registry {
	if maxSessions <= 0 {
		maxSessions = DefaultMaxSessions
	}
	// lru.New only fails for a non-positive size.
	entries, _ := lru.New[string, *entry](maxSessions)
	return &Registry{
		entries: entries,
		ttl:     ttl,
		newCtrl: newCtrl,
		now:     time.Now,
	}
}

// New starts a session and returns its id and controller.
func (r *Registry) New() (string, *view.Controller) {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := uuid.NewString()
	e := &entry{ctrl: r.newCtrl(), lastSeen: r.now()}
	r.entries.Add(id, e)
	return id, e.ctrl
}

// Lookup returns the controller of a live session and marks it active.
// Expired sessions are removed on the spot.
func (r *Registry) Lookup(id string) (*view.Controller, bool) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, false
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.entries.Get(id)
	if !ok {
		return nil, false
	}
	now := r.now()
	if now.Sub(e.lastSeen) >= r.ttl {
		r.entries.Remove(id)
		return nil, false
	}
	e.lastSeen = now
	return e.ctrl, true
}

// Sweep drops sessions idle for longer than the TTL.
func (r *Registry) Sweep() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	n := 0
	for _, id := range r.entries.Keys() {
		if e, ok := r.entries.Peek(id); ok && now.Sub(e.lastSeen) >= r.ttl {
			r.entries.Remove(id)
			n++
		}
	}
	return n
}

func (r *Registry) Len() int {
	return r.entries.Len()
}

// Run sweeps every interval until ctx is done.
func (r *Registry) Run(ctx context.Context, interval time.Duration) {
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			r.Sweep()
		}
	}
}
