package cmd

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/Zachkp/folio/internal/store"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() { logLevel = "" })
	err := rootCmd.Execute()
	return out.String(), err
}

func TestContentCheck(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "folio.yaml")
	out, err := run(t, "content", "check", "--config", missing)
	if err != nil {
		t.Fatalf("content check: %v\n%s", err, out)
	}
	for _, want := range []string{"en: ", "fr: ", "ok"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestContentCheckBadDir(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "folio.yaml")
	_, err := run(t, "content", "check", "--config", missing, "--dir", t.TempDir())
	contentDir = ""
	if err == nil {
		t.Fatal("expected an error for a directory without bundles")
	}
}

func TestBadLogLevel(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "folio.yaml")
	if _, err := run(t, "content", "check", "--config", missing, "--log-level", "loud"); err == nil {
		t.Fatal("expected an invalid log level to be rejected")
	}
}

func TestMessagesList(t *testing.T) {
	dir := t.TempDir()
	db := filepath.Join(dir, "folio.db")
	st, err := store.Open(db)
	if err != nil {
		t.Fatal(err)
	}
	if err := st.RecordMessage(context.Background(), "Ada", "ada@example.com", "Hello\nthere", nil); err != nil {
		t.Fatal(err)
	}
	st.Close()

	t.Setenv("FOLIO_DB__PATH", db)
	out, err := run(t, "messages", "list", "--config", filepath.Join(dir, "folio.yaml"))
	if err != nil {
		t.Fatalf("messages list: %v", err)
	}
	if !strings.Contains(out, "Ada <ada@example.com>") || !strings.Contains(out, "Hello there") {
		t.Errorf("unexpected output:\n%s", out)
	}
}

// seedMessages archives one sent and one failed message and points the
// config at the database.
func seedMessages(t *testing.T) (db, cfgPath string) {
	t.Helper()
	dir := t.TempDir()
	db = filepath.Join(dir, "folio.db")
	st, err := store.Open(db)
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()
	if err := st.RecordMessage(ctx, "Ada", "ada@example.com", "Hello\nthere", nil); err != nil {
		t.Fatal(err)
	}
	if err := st.RecordMessage(ctx, "Grace", "grace@example.com", "Ping", errors.New("smtp down")); err != nil {
		t.Fatal(err)
	}
	st.Close()

	t.Setenv("FOLIO_DB__PATH", db)
	return db, filepath.Join(dir, "folio.yaml")
}

func messageIDs(t *testing.T, db string) map[string]int64 {
	t.Helper()
	st, err := store.Open(db)
	if err != nil {
		t.Fatal(err)
	}
	defer st.Close()
	msgs, err := st.ListMessages(context.Background(), 10)
	if err != nil {
		t.Fatal(err)
	}
	ids := map[string]int64{}
	for _, m := range msgs {
		ids[m.Name] = m.ID
	}
	return ids
}

func TestMessagesShow(t *testing.T) {
	db, cfgPath := seedMessages(t)
	ids := messageIDs(t, db)

	out, err := run(t, "messages", "show", strconv.FormatInt(ids["Ada"], 10), "--config", cfgPath)
	if err != nil {
		t.Fatalf("messages show: %v", err)
	}
	for _, want := range []string{"Ada <ada@example.com>", "Status:   sent", "Hello\nthere"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}

	out, err = run(t, "messages", "show", strconv.FormatInt(ids["Grace"], 10), "--config", cfgPath)
	if err != nil {
		t.Fatalf("messages show: %v", err)
	}
	if !strings.Contains(out, "Error:    smtp down") {
		t.Errorf("failed delivery does not show its error:\n%s", out)
	}

	if _, err := run(t, "messages", "show", "9999", "--config", cfgPath); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("unknown id: err = %v, want ErrNotFound", err)
	}
	if _, err := run(t, "messages", "show", "abc", "--config", cfgPath); err == nil {
		t.Error("expected a non-numeric id to be rejected")
	}
}

func TestMessagesDelete(t *testing.T) {
	db, cfgPath := seedMessages(t)
	ids := messageIDs(t, db)

	out, err := run(t, "messages", "delete", strconv.FormatInt(ids["Ada"], 10), "--config", cfgPath)
	if err != nil {
		t.Fatalf("messages delete: %v", err)
	}
	if !strings.Contains(out, "deleted message") {
		t.Errorf("unexpected output:\n%s", out)
	}

	left := messageIDs(t, db)
	if _, ok := left["Ada"]; ok || len(left) != 1 {
		t.Errorf("remaining messages = %v, want only Grace", left)
	}

	if _, err := run(t, "messages", "delete", strconv.FormatInt(ids["Ada"], 10), "--config", cfgPath); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("deleting twice: err = %v, want ErrNotFound", err)
	}
}
