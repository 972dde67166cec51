package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != "8080" {
		t.Errorf("port = %q, want 8080", cfg.Server.Port)
	}
	if !cfg.UI.DarkDefault {
		t.Error("dark mode should be on by default")
	}
	if cfg.Contact.Mode != ContactSimulate {
		t.Errorf("contact mode = %q", cfg.Contact.Mode)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults do not validate: %v", err)
	}
}

func TestLoadFileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "folio.yaml")
	yaml := `
server:
  port: "9000"
  mode: debug
ui:
  dark_default: false
contact:
  mode: smtp
  send_timeout: 5s
  smtp:
    username: bot@example.com
    password: secret
    to: me@example.com
session:
  ttl: 30m
  max: 500
`
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("FOLIO_CONTACT__SMTP__HOST", "mail.example.com")
	t.Setenv("FOLIO_LOG__LEVEL", "debug")
	t.Setenv("PORT", "7777")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != "9000" {
		t.Errorf("port = %q, want the file value 9000", cfg.Server.Port)
	}
	if cfg.UI.DarkDefault {
		t.Error("dark_default from file ignored")
	}
	if cfg.Contact.SendTimeout != 5*time.Second {
		t.Errorf("send_timeout = %v", cfg.Contact.SendTimeout)
	}
	if cfg.Contact.SMTP.Host != "mail.example.com" {
		t.Errorf("smtp host = %q", cfg.Contact.SMTP.Host)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("log level = %q", cfg.Log.Level)
	}
	if cfg.Session.TTL != 30*time.Minute {
		t.Errorf("session ttl = %v", cfg.Session.TTL)
	}
	if cfg.Session.Max != 500 {
		t.Errorf("session max = %d", cfg.Session.Max)
	}
	if cfg.DB.Path != "data/folio.db" {
		t.Errorf("db path default lost: %q", cfg.DB.Path)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestPlainPortEnv(t *testing.T) {
	t.Setenv("PORT", "3000")
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != "3000" {
		t.Errorf("port = %q, want 3000", cfg.Server.Port)
	}
}

func TestValidate(t *testing.T) {
	tests := map[string]func(*Config){
		"empty port":        func(c *Config) { c.Server.Port = "" },
		"bad mode":          func(c *Config) { c.Server.Mode = "prod" },
		"bad contact":       func(c *Config) { c.Contact.Mode = "carrier-pigeon" },
		"smtp without auth": func(c *Config) { c.Contact.Mode = ContactSMTP },
		"zero ttl":          func(c *Config) { c.Session.TTL = 0 },
		"zero max sessions": func(c *Config) { c.Session.Max = 0 },
		"bad log level":     func(c *Config) { c.Log.Level = "loud" },
		"no locale":         func(c *Config) { c.UI.DefaultLocale = "" },
	}
	for name, mutate := range tests {
		t.Run(name, func(t *testing.T) {
			cfg := Default()
			mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Fatal("expected a validation error")
			}
		})
	}
}

func TestPlainSMTPEnv(t *testing.T) {
	t.Setenv("SMTP_USER", "bot@example.com")
	t.Setenv("SMTP_PASS", "secret")
	t.Setenv("TO_EMAIL", "me@example.com")
	t.Setenv("FOLIO_CONTACT__SMTP__TO", "inbox@example.com")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Contact.SMTP.Username != "bot@example.com" || cfg.Contact.SMTP.Password != "secret" {
		t.Errorf("smtp credentials = %q/%q", cfg.Contact.SMTP.Username, cfg.Contact.SMTP.Password)
	}
	if cfg.Contact.SMTP.To != "inbox@example.com" {
		t.Errorf("FOLIO_ variable should win over TO_EMAIL, got %q", cfg.Contact.SMTP.To)
	}
}
