// Package config loads the site configuration: defaults, then an optional
// YAML file, then FOLIO_* environment variables.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/Zachkp/folio/internal/mailer"
)

const envPrefix = "FOLIO_"

type Config struct {
	Server  ServerConfig  `koanf:"server"`
	UI      UIConfig      `koanf:"ui"`
	Content ContentConfig `koanf:"content"`
	Contact ContactConfig `koanf:"contact"`
	Admin   AdminConfig   `koanf:"admin"`
	DB      DBConfig      `koanf:"db"`
	Session SessionConfig `koanf:"session"`
	Privacy PrivacyConfig `koanf:"privacy"`
	Log     LogConfig     `koanf:"log"`
}

type ServerConfig struct {
	Port string `koanf:"port"`
	// Mode is the gin mode: debug, release or test.
	Mode           string   `koanf:"mode"`
	TrustedProxies []string `koanf:"trusted_proxies"`
}

type UIConfig struct {
	DarkDefault   bool   `koanf:"dark_default"`
	DefaultLocale string `koanf:"default_locale"`
}

type ContentConfig struct {
	// Dir overrides the bundles compiled into the binary.
	Dir    string `koanf:"dir"`
	CVPath string `koanf:"cv_path"`
}

const (
	ContactSimulate = "simulate"
	ContactSMTP     = "smtp"
)

type ContactConfig struct {
	Mode          string            `koanf:"mode"`
	SimulateDelay time.Duration     `koanf:"simulate_delay"`
	SendTimeout   time.Duration     `koanf:"send_timeout"`
	SMTP          mailer.SMTPConfig `koanf:"smtp"`
}

type AdminConfig struct {
	Username string `koanf:"username"`
	Password string `koanf:"password"`
}

type DBConfig struct {
	Path string `koanf:"path"`
}

type SessionConfig struct {
	TTL time.Duration `koanf:"ttl"`
	// Max caps live sessions; the least recently used one is evicted.
	Max int `koanf:"max"`
}

type PrivacyConfig struct {
	Retention time.Duration `koanf:"retention"`
}

type LogConfig struct {
	Level string `koanf:"level"`
}

func Default() *Config {
	return &Config{
		Server: ServerConfig{Port: "8080", Mode: "release"},
		UI:     UIConfig{DarkDefault: true, DefaultLocale: "en"},
		Contact: ContactConfig{
			Mode:          ContactSimulate,
			SimulateDelay: 2 * time.Second,
			SendTimeout:   30 * time.Second,
		},
		DB:      DBConfig{Path: "data/folio.db"},
		Session: SessionConfig{TTL: 2 * time.Hour, Max: 10000},
		Privacy: PrivacyConfig{Retention: 365 * 24 * time.Hour},
		Log:     LogConfig{Level: "info"},
	}
}

// Load builds the configuration. A missing file at path is not an error.
// FOLIO_SERVER__PORT sets server.port.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("reading config %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("accessing config %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(envPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	cfg := Default()
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	for _, v := range plainEnv(cfg) {
		if val := os.Getenv(v.name); val != "" && !k.Exists(v.key) {
			*v.dst = val
		}
	}
	return cfg, nil
}

// plainEnv lists the unprefixed variables a .env file usually carries. They
// apply only when neither the file nor a FOLIO_ variable set the key.
func plainEnv(cfg *Config) []struct {
	name, key string
	dst       *string
} {
	return []struct {
		name, key string
		dst       *string
	}{
		{"PORT", "server.port", &cfg.Server.Port},
		{"SMTP_HOST", "contact.smtp.host", &cfg.Contact.SMTP.Host},
		{"SMTP_PORT", "contact.smtp.port", &cfg.Contact.SMTP.Port},
		{"SMTP_USER", "contact.smtp.username", &cfg.Contact.SMTP.Username},
		{"SMTP_PASS", "contact.smtp.password", &cfg.Contact.SMTP.Password},
		{"TO_EMAIL", "contact.smtp.to", &cfg.Contact.SMTP.To},
		{"ADMIN_USERNAME", "admin.username", &cfg.Admin.Username},
		{"ADMIN_PASSWORD", "admin.password", &cfg.Admin.Password},
	}
}

// envKey maps FOLIO_CONTACT__SMTP__HOST to contact.smtp.host. A double
// underscore separates levels so keys may keep single underscores.
func envKey(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, envPrefix))
	return strings.ReplaceAll(s, "__", ".")
}

var logLevels = map[string]bool{"debug": true, "info": true, "warn": true, "warning": true, "error": true}

func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("server.port is required")
	}
	switch c.Server.Mode {
	case "debug", "release", "test":
	default:
		return fmt.Errorf("invalid server.mode %q: must be debug, release or test", c.Server.Mode)
	}
	switch c.Contact.Mode {
	case ContactSimulate:
	case ContactSMTP:
		if c.Contact.SMTP.Username == "" || c.Contact.SMTP.Password == "" {
			return fmt.Errorf("contact.mode smtp needs contact.smtp.username and contact.smtp.password")
		}
		if c.Contact.SMTP.To == "" {
			return fmt.Errorf("contact.mode smtp needs contact.smtp.to")
		}
	default:
		return fmt.Errorf("invalid contact.mode %q: must be simulate or smtp", c.Contact.Mode)
	}
	if c.Contact.SendTimeout < 0 || c.Contact.SimulateDelay < 0 {
		return fmt.Errorf("contact durations must not be negative")
	}
	if c.Session.TTL <= 0 {
		return fmt.Errorf("session.ttl must be positive")
	}
	if c.Session.Max <= 0 {
		return fmt.Errorf("session.max must be positive")
	}
	if c.UI.DefaultLocale == "" {
		return fmt.Errorf("ui.default_locale is required")
	}
	if !logLevels[strings.ToLower(c.Log.Level)] {
		return fmt.Errorf("invalid log.level %q", c.Log.Level)
	}
	return nil
}
