package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/vango-dev/contact/internal/errors"
)

func TestNew(t *testing.T) {
	cfg := New()

	if cfg.Server.Addr != DefaultAddr {
		t.Errorf("Server.Addr = %q, want %q", cfg.Server.Addr, DefaultAddr)
	}
	if !reflect.DeepEqual(cfg.Inbox.Sinks, []string{SinkLog}) {
		t.Errorf("Inbox.Sinks = %v, want [log]", cfg.Inbox.Sinks)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate, got %v", err)
	}
}

func TestLoadWithoutFile(t *testing.T) {
	cfg, err := load("", t.TempDir())
	if err != nil {
		t.Fatalf("missing default file should not fail: %v", err)
	}
	if cfg.Path() != "" {
		t.Errorf("Path() = %q, want empty", cfg.Path())
	}
	if cfg.Session.IdleTimeout != 15*time.Minute {
		t.Errorf("IdleTimeout = %v, want 15m", cfg.Session.IdleTimeout)
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))

	var ce *errors.ContactError
	if !errors.As(err, &ce) || ce.Code != "C100" {
		t.Errorf("expected C100, got %v", err)
	}
}

func TestLoadYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "contact.yaml")
	yaml := `
server:
  addr: "127.0.0.1:9000"
  dev_mode: true
session:
  idle_timeout: 2m
inbox:
  sinks: [log, sqlite]
  sqlite:
    path: /tmp/inbox.db
log:
  format: json
`
	if err := os.WriteFile(path, []byte(yaml), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := load("", dir)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.Path() != path {
		t.Errorf("Path() = %q, want %q", cfg.Path(), path)
	}
	if cfg.Server.Addr != "127.0.0.1:9000" || !cfg.Server.DevMode {
		t.Errorf("server not loaded: %+v", cfg.Server)
	}
	if cfg.Session.IdleTimeout != 2*time.Minute {
		t.Errorf("IdleTimeout = %v, want 2m", cfg.Session.IdleTimeout)
	}
	if !cfg.HasSink(SinkSQLite) || cfg.Inbox.SQLite.Path != "/tmp/inbox.db" {
		t.Errorf("inbox not loaded: %+v", cfg.Inbox)
	}
	if cfg.Log.Format != "json" {
		t.Errorf("Log.Format = %q, want json", cfg.Log.Format)
	}
	// Untouched keys keep their defaults
	if cfg.Session.MaxSessions != New().Session.MaxSessions {
		t.Errorf("MaxSessions = %d, want default", cfg.Session.MaxSessions)
	}
}

func TestLoadJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.json")
	if err := os.WriteFile(path, []byte(`{"server":{"title":"Write to us"}}`), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Server.Title != "Write to us" {
		t.Errorf("Title = %q", cfg.Server.Title)
	}
}

func TestLoadInvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "contact.json")
	if err := os.WriteFile(path, []byte(`{not json`), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); err == nil {
		t.Error("expected parse error")
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("CONTACT_SERVER_ADDR", ":7070")
	t.Setenv("CONTACT_INBOX_SINKS", "log,s3")
	t.Setenv("CONTACT_INBOX_S3_BUCKET", "contact-inbox")
	t.Setenv("CONTACT_SESSION_WRITE_TIMEOUT", "1s")

	cfg, err := load("", t.TempDir())
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.Server.Addr != ":7070" {
		t.Errorf("Addr = %q, want :7070", cfg.Server.Addr)
	}
	if !reflect.DeepEqual(cfg.Inbox.Sinks, []string{"log", "s3"}) {
		t.Errorf("Sinks = %v, want [log s3]", cfg.Inbox.Sinks)
	}
	if cfg.Inbox.S3.Bucket != "contact-inbox" {
		t.Errorf("Bucket = %q", cfg.Inbox.S3.Bucket)
	}
	if cfg.Session.WriteTimeout != time.Second {
		t.Errorf("WriteTimeout = %v, want 1s", cfg.Session.WriteTimeout)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantKey string
		code    string
	}{
		{"bad addr", func(c *Config) { c.Server.Addr = "8080" }, "server.addr", "C101"},
		{"bad port", func(c *Config) { c.Server.Addr = ":http" }, "server.addr", "C101"},
		{"port range", func(c *Config) { c.Server.Addr = ":70000" }, "server.addr", "C101"},
		{"sessions", func(c *Config) { c.Session.MaxSessions = 0 }, "session.max_sessions", "C102"},
		{"idle", func(c *Config) { c.Session.IdleTimeout = 0 }, "session.idle_timeout", "C102"},
		{"queue", func(c *Config) { c.Session.EventQueueSize = -1 }, "session.event_queue_size", "C102"},
		{"unknown sink", func(c *Config) { c.Inbox.Sinks = []string{"kafka"} }, "inbox.sinks", "C103"},
		{"s3 bucket", func(c *Config) { c.Inbox.Sinks = []string{"s3"} }, "inbox.s3.bucket", "C104"},
		{"sqlite path", func(c *Config) { c.Inbox.Sinks = []string{"sqlite"}; c.Inbox.SQLite.Path = "" }, "inbox.sqlite.path", "C105"},
		{"workers", func(c *Config) { c.Inbox.Workers = 0 }, "inbox.workers", "C107"},
		{"inbox queue", func(c *Config) { c.Inbox.QueueSize = 0 }, "inbox.queue_size", "C107"},
		{"level", func(c *Config) { c.Log.Level = "trace" }, "log.level", "C106"},
		{"format", func(c *Config) { c.Log.Format = "xml" }, "log.format", "C106"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := New()
			tt.mutate(cfg)

			var ce *errors.ContactError
			err := cfg.Validate()
			if !errors.As(err, &ce) {
				t.Fatalf("expected ContactError, got %v", err)
			}
			if ce.Code != tt.code || ce.Key != tt.wantKey {
				t.Errorf("got %s (%s), want %s (%s)", ce.Code, ce.Key, tt.code, tt.wantKey)
			}
		})
	}
}

func TestHasSink(t *testing.T) {
	cfg := New()
	cfg.Inbox.Sinks = []string{" SQLite ", "log"}
	if !cfg.HasSink(SinkSQLite) || !cfg.HasSink(SinkLog) || cfg.HasSink(SinkS3) {
		t.Errorf("HasSink mismatch for %v", cfg.Inbox.Sinks)
	}
}

func TestWriteDefaults(t *testing.T) {
	for _, ext := range []string{"json", "yaml", "toml"} {
		t.Run(ext, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "contact."+ext)

			if err := WriteDefaults(path, false); err != nil {
				t.Fatalf("WriteDefaults failed: %v", err)
			}

			cfg, err := Load(path)
			if err != nil {
				t.Fatalf("written file does not load: %v", err)
			}
			want := New()
			want.path = path
			if !reflect.DeepEqual(cfg, want) {
				t.Errorf("round trip mismatch:\n got %+v\nwant %+v", cfg, want)
			}
		})
	}
}

func TestWriteDefaultsRefusesOverwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "contact.json")
	if err := os.WriteFile(path, []byte(`{}`), 0644); err != nil {
		t.Fatal(err)
	}

	var ce *errors.ContactError
	if err := WriteDefaults(path, false); !errors.As(err, &ce) || ce.Code != "C402" {
		t.Errorf("expected C402, got %v", err)
	}
	if err := WriteDefaults(path, true); err != nil {
		t.Errorf("force overwrite failed: %v", err)
	}
}
