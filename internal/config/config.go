package config

import (
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/vango-dev/contact/internal/errors"
)

const (
	// ConfigName is the base name searched for when no file is given.
	// Any extension viper understands is accepted (contact.yaml, contact.json,
	// contact.toml).
	ConfigName = "contact"

	// EnvPrefix prefixes environment overrides, e.g. CONTACT_SERVER_ADDR.
	EnvPrefix = "CONTACT"

	// DefaultAddr is the default listen address.
	DefaultAddr = ":8080"
)

// Sink names accepted in inbox.sinks.
const (
	SinkLog    = "log"
	SinkSQLite = "sqlite"
	SinkS3     = "s3"
)

// Config is the complete contactd configuration.
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Session SessionConfig `mapstructure:"session"`
	Inbox   InboxConfig   `mapstructure:"inbox"`
	Log     LogConfig     `mapstructure:"log"`

	// path stores the file the config was loaded from, if any.
	path string
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	// Addr is the listen address (host:port).
	Addr string `mapstructure:"addr"`

	// Title is the page title of the contact page.
	Title string `mapstructure:"title"`

	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`

	// AllowedOrigins restricts WebSocket upgrades. Empty means same-origin.
	AllowedOrigins []string `mapstructure:"allowed_origins"`

	// DevMode disables client script caching and enables pretty HTML.
	DevMode bool `mapstructure:"dev_mode"`
}

// SessionConfig contains per-connection form session settings.
type SessionConfig struct {
	// MaxSessions caps concurrent WebSocket sessions.
	MaxSessions int `mapstructure:"max_sessions"`

	// IdleTimeout closes sessions without events for this long.
	IdleTimeout time.Duration `mapstructure:"idle_timeout"`

	// EventQueueSize is the per-session buffered event queue.
	EventQueueSize int `mapstructure:"event_queue_size"`

	// WriteTimeout bounds each WebSocket write.
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

// InboxConfig selects where accepted submissions are delivered.
type InboxConfig struct {
	// Sinks lists the enabled sinks: log, sqlite, s3.
	Sinks []string `mapstructure:"sinks"`

	QueueSize       int           `mapstructure:"queue_size"`
	Workers         int           `mapstructure:"workers"`
	DeliveryTimeout time.Duration `mapstructure:"delivery_timeout"`

	SQLite SQLiteConfig `mapstructure:"sqlite"`
	S3     S3Config     `mapstructure:"s3"`
}

// SQLiteConfig configures the SQLite sink.
type SQLiteConfig struct {
	Path string `mapstructure:"path"`
}

// S3Config configures the S3 sink. Credentials come from the standard
// AWS environment variables.
type S3Config struct {
	Bucket    string `mapstructure:"bucket"`
	Prefix    string `mapstructure:"prefix"`
	Region    string `mapstructure:"region"`
	Endpoint  string `mapstructure:"endpoint"`
	PathStyle bool   `mapstructure:"path_style"`
}

// LogConfig configures structured logging.
type LogConfig struct {
	// Level is debug, info, warn or error.
	Level string `mapstructure:"level"`

	// Format is text or json.
	Format string `mapstructure:"format"`

	// File, when set, receives a copy of every record.
	File string `mapstructure:"file"`
}

// New returns a Config with all defaults applied.
func New() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:            DefaultAddr,
			Title:           "Contact us",
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    10 * time.Second,
			ShutdownTimeout: 15 * time.Second,
			AllowedOrigins:  []string{},
		},
		Session: SessionConfig{
			MaxSessions:    10000,
			IdleTimeout:    15 * time.Minute,
			EventQueueSize: 64,
			WriteTimeout:   5 * time.Second,
		},
		Inbox: InboxConfig{
			Sinks:           []string{SinkLog},
			QueueSize:       256,
			Workers:         2,
			DeliveryTimeout: 10 * time.Second,
			SQLite:          SQLiteConfig{Path: "contact.db"},
			S3:              S3Config{Prefix: "contact", Region: "us-east-1"},
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// setDefaults registers every key with viper so that environment overrides
// and WriteConfigAs see the complete tree. Durations are registered as
// strings to keep written files readable.
func setDefaults(v *viper.Viper, c *Config) {
	v.SetDefault("server.addr", c.Server.Addr)
	v.SetDefault("server.title", c.Server.Title)
	v.SetDefault("server.read_timeout", c.Server.ReadTimeout.String())
	v.SetDefault("server.write_timeout", c.Server.WriteTimeout.String())
	v.SetDefault("server.shutdown_timeout", c.Server.ShutdownTimeout.String())
	v.SetDefault("server.allowed_origins", c.Server.AllowedOrigins)
	v.SetDefault("server.dev_mode", c.Server.DevMode)

	v.SetDefault("session.max_sessions", c.Session.MaxSessions)
	v.SetDefault("session.idle_timeout", c.Session.IdleTimeout.String())
	v.SetDefault("session.event_queue_size", c.Session.EventQueueSize)
	v.SetDefault("session.write_timeout", c.Session.WriteTimeout.String())

	v.SetDefault("inbox.sinks", c.Inbox.Sinks)
	v.SetDefault("inbox.queue_size", c.Inbox.QueueSize)
	v.SetDefault("inbox.workers", c.Inbox.Workers)
	v.SetDefault("inbox.delivery_timeout", c.Inbox.DeliveryTimeout.String())
	v.SetDefault("inbox.sqlite.path", c.Inbox.SQLite.Path)
	v.SetDefault("inbox.s3.bucket", c.Inbox.S3.Bucket)
	v.SetDefault("inbox.s3.prefix", c.Inbox.S3.Prefix)
	v.SetDefault("inbox.s3.region", c.Inbox.S3.Region)
	v.SetDefault("inbox.s3.endpoint", c.Inbox.S3.Endpoint)
	v.SetDefault("inbox.s3.path_style", c.Inbox.S3.PathStyle)

	v.SetDefault("log.level", c.Log.Level)
	v.SetDefault("log.format", c.Log.Format)
	v.SetDefault("log.file", c.Log.File)
}

// newViper creates a viper instance with defaults and environment binding.
func newViper() *viper.Viper {
	v := viper.New()
	setDefaults(v, New())
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Path returns the file the config was loaded from, or "" if none.
func (c *Config) Path() string {
	return c.path
}

// HasSink reports whether a sink is enabled.
func (c *Config) HasSink(name string) bool {
	for _, s := range c.Inbox.Sinks {
		if strings.EqualFold(strings.TrimSpace(s), name) {
			return true
		}
	}
	return false
}

// Validate checks the configuration and returns a *errors.ContactError
// describing the first problem found.
func (c *Config) Validate() error {
	host, port, err := net.SplitHostPort(c.Server.Addr)
	if err != nil {
		return errors.New("C101").WithKey("server.addr").Wrap(err)
	}
	if n, err := strconv.Atoi(port); err != nil || n < 0 || n > 65535 {
		return errors.New("C101").WithKey("server.addr").
			WithDetail("Port " + strconv.Quote(port) + " on host " + strconv.Quote(host) + " is not a number between 0 and 65535.")
	}

	switch {
	case c.Session.MaxSessions <= 0:
		return errors.New("C102").WithKey("session.max_sessions")
	case c.Session.IdleTimeout <= 0:
		return errors.New("C102").WithKey("session.idle_timeout")
	case c.Session.EventQueueSize <= 0:
		return errors.New("C102").WithKey("session.event_queue_size")
	case c.Session.WriteTimeout <= 0:
		return errors.New("C102").WithKey("session.write_timeout")
	}

	for _, s := range c.Inbox.Sinks {
		switch strings.ToLower(strings.TrimSpace(s)) {
		case SinkLog, SinkSQLite, SinkS3:
		default:
			return errors.New("C103").WithKey("inbox.sinks").
				WithDetail("Unknown sink " + strconv.Quote(s) + "; inbox.sinks may contain log, sqlite and s3.")
		}
	}
	if c.HasSink(SinkS3) && c.Inbox.S3.Bucket == "" {
		return errors.New("C104").WithKey("inbox.s3.bucket")
	}
	if c.HasSink(SinkSQLite) && c.Inbox.SQLite.Path == "" {
		return errors.New("C105").WithKey("inbox.sqlite.path")
	}
	if c.Inbox.QueueSize <= 0 {
		return errors.New("C107").WithKey("inbox.queue_size")
	}
	if c.Inbox.Workers <= 0 {
		return errors.New("C107").WithKey("inbox.workers")
	}

	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		return errors.New("C106").WithKey("log.level")
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		return errors.New("C106").WithKey("log.format")
	}

	return nil
}
