package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"
)

func openTest(t *testing.T, now time.Time) *Store {
	t.Helper()
	s, err := OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	s.now = func() time.Time { return now }
	return s
}

func TestStats(t *testing.T) {
	now := time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)
	s := openTest(t, now)
	ctx := context.Background()

	visits := []struct {
		ip, path string
		at       time.Time
	}{
		{"aaa", "/", now.Add(-time.Hour)},
		{"aaa", "/", now.Add(-2 * time.Hour)},
		{"bbb", "/privacy", now.Add(-48 * time.Hour)},
		{"ccc", "/", now.Add(-30 * 24 * time.Hour)},
	}
	for _, v := range visits {
		if err := s.RecordVisit(ctx, v.ip, "test-agent", v.path, v.at); err != nil {
			t.Fatalf("RecordVisit: %v", err)
		}
	}
	if err := s.RecordMessage(ctx, "Ann", "ann@example.com", "hi", nil); err != nil {
		t.Fatalf("RecordMessage: %v", err)
	}
	if err := s.RecordMessage(ctx, "Bob", "bob@example.com", "yo", errors.New("smtp down")); err != nil {
		t.Fatalf("RecordMessage: %v", err)
	}

	stats, err := s.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	checks := map[string][2]int64{
		"total":   {stats.TotalVisitors, 4},
		"unique":  {stats.UniqueVisitors, 3},
		"today":   {stats.VisitorsToday, 2},
		"week":    {stats.VisitorsThisWeek, 3},
		"msgs":    {stats.TotalMessages, 2},
		"failed":  {stats.FailedMessages, 1},
		"recents": {int64(len(stats.RecentVisitors)), 4},
	}
	for name, c := range checks {
		if c[0] != c[1] {
			t.Errorf("%s = %d, want %d", name, c[0], c[1])
		}
	}
	if len(stats.TopPaths) == 0 || stats.TopPaths[0].Path != "/" || stats.TopPaths[0].Hits != 3 {
		t.Errorf("top paths = %+v", stats.TopPaths)
	}
}

func TestCleanupVisitors(t *testing.T) {
	now := time.Now().UTC()
	s := openTest(t, now)
	ctx := context.Background()

	s.RecordVisit(ctx, "old", "", "/", now.AddDate(-2, 0, 0))
	s.RecordVisit(ctx, "new", "", "/", now)

	n, err := s.CleanupVisitors(ctx, now.AddDate(-1, 0, 0))
	if err != nil {
		t.Fatalf("CleanupVisitors: %v", err)
	}
	if n != 1 {
		t.Fatalf("deleted %d rows, want 1", n)
	}
	left, err := s.RecentVisitors(ctx, 10)
	if err != nil {
		t.Fatalf("RecentVisitors: %v", err)
	}
	if len(left) != 1 || left[0].HashedIP != "new" {
		t.Fatalf("remaining visitors = %+v", left)
	}
}

func TestMessages(t *testing.T) {
	s := openTest(t, time.Unix(1_700_000_000, 0))
	ctx := context.Background()

	s.RecordMessage(ctx, "Ann", "ann@example.com", "first", nil)
	s.RecordMessage(ctx, "Bob", "bob@example.com", "second", errors.New("timeout"))

	msgs, err := s.ListMessages(ctx, 10)
	if err != nil {
		t.Fatalf("ListMessages: %v", err)
	}
	if len(msgs) != 2 || msgs[0].Name != "Bob" {
		t.Fatalf("messages = %+v", msgs)
	}
	if msgs[0].Status != MessageFailed || msgs[0].Error != "timeout" {
		t.Errorf("failed message recorded as %q/%q", msgs[0].Status, msgs[0].Error)
	}
	if !msgs[1].CreatedAt.Equal(time.Unix(1_700_000_000, 0)) {
		t.Errorf("created_at = %v", msgs[1].CreatedAt)
	}

	got, err := s.GetMessage(ctx, msgs[1].ID)
	if err != nil || got.Body != "first" {
		t.Fatalf("GetMessage = %+v, %v", got, err)
	}
	if err := s.DeleteMessage(ctx, got.ID); err != nil {
		t.Fatalf("DeleteMessage: %v", err)
	}
	if _, err := s.GetMessage(ctx, got.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("GetMessage after delete: %v", err)
	}
	if err := s.DeleteMessage(ctx, got.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("second delete: %v", err)
	}
}

func TestOpenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "folio.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer s.Close()
	if err := s.RecordMessage(context.Background(), "a", "b", "c", nil); err != nil {
		t.Fatalf("RecordMessage: %v", err)
	}
}
