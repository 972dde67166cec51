package session

import (
	"testing"
	"time"

	"github.com/Zachkp/folio/internal/view"
)

func newTestRegistry(ttl time.Duration, size int) (*Registry, *time.Time) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	r := NewRegistry(ttl, size, func() *view.Controller {
		return view.NewController(view.Options{Sections: []string{"home"}})
	})
	r.now = func() time.Time { return now }
	return r, &now
}

func TestNewAndLookup(t *testing.T) {
	r, _ := newTestRegistry(time.Hour, 0)

	id, c1 := r.New()
	c2, ok := r.Lookup(id)
	if !ok || c2 != c1 {
		t.Fatal("Lookup did not return the session's controller")
	}

	id2, c3 := r.New()
	if id2 == id || c3 == c1 {
		t.Fatal("New reused an existing session")
	}
}

func TestLookupRejectsForeignIDs(t *testing.T) {
	r, _ := newTestRegistry(time.Hour, 0)
	r.New()
	for _, id := range []string{"", "not-a-uuid", "6f1c1c2e-3c1b-4f2a-9d0e-2b8f8f0c9a11"} {
		if _, ok := r.Lookup(id); ok {
			t.Errorf("Lookup(%q) succeeded for an id the registry never issued", id)
		}
	}
}

func TestExpiry(t *testing.T) {
	r, now := newTestRegistry(time.Minute, 0)
	stale, _ := r.New()
	fresh, _ := r.New()

	*now = now.Add(30 * time.Second)
	r.Lookup(fresh)

	*now = now.Add(45 * time.Second)
	if _, ok := r.Lookup(stale); ok {
		t.Fatal("expired session was returned")
	}
	if n := r.Sweep(); n != 0 {
		t.Fatalf("Sweep removed %d sessions, want 0", n)
	}
	if r.Len() != 1 {
		t.Fatalf("Len = %d, want 1", r.Len())
	}

	*now = now.Add(2 * time.Minute)
	if n := r.Sweep(); n != 1 {
		t.Fatalf("Sweep removed %d sessions, want 1", n)
	}
	if r.Len() != 0 {
		t.Fatalf("Len = %d after sweep", r.Len())
	}
}

func TestCapEvictsLeastRecentlyUsed(t *testing.T) {
	r, _ := newTestRegistry(time.Hour, 2)

	a, _ := r.New()
	b, _ := r.New()
	r.Lookup(a)
	c, _ := r.New()

	if r.Len() != 2 {
		t.Fatalf("Len = %d, want the cap of 2", r.Len())
	}
	if _, ok := r.Lookup(b); ok {
		t.Error("least recently used session survived")
	}
	for _, id := range []string{a, c} {
		if _, ok := r.Lookup(id); !ok {
			t.Errorf("session %s evicted", id)
		}
	}
}
