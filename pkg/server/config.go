package server

import (
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/vango-dev/contact/pkg/protocol"
)

// SessionConfig holds configuration for individual sessions.
type SessionConfig struct {
	// IdleTimeout is the time after which a session without events is closed.
	// Default: 15 minutes.
	IdleTimeout time.Duration

	// WriteTimeout is the maximum time to wait when sending a message.
	// Default: 5 seconds.
	WriteTimeout time.Duration

	// MaxEventQueue is the size of the event channel buffer.
	// Default: 64.
	MaxEventQueue int

	// Limits bounds incoming frames.
	// Default: protocol.DefaultLimits().
	Limits protocol.Limits
}

// DefaultSessionConfig returns a SessionConfig with sensible defaults.
func DefaultSessionConfig() *SessionConfig {
	return &SessionConfig{
		IdleTimeout:   15 * time.Minute,
		WriteTimeout:  5 * time.Second,
		MaxEventQueue: 64,
		Limits:        protocol.DefaultLimits(),
	}
}

// Clone returns a copy of the SessionConfig.
func (c *SessionConfig) Clone() *SessionConfig {
	if c == nil {
		return nil
	}
	clone := *c
	return &clone
}

// ServerConfig holds configuration for the HTTP/WebSocket server.
type ServerConfig struct {
	// Address is the address to listen on (e.g., ":8080" or "localhost:3000").
	// Default: ":8080".
	Address string

	// Title is the contact page title.
	// Default: "Contact us".
	Title string

	// HTTP timeouts. WriteTimeout does not apply to hijacked WebSocket
	// connections.
	ReadTimeout  time.Duration
	WriteTimeout time.Duration

	// ShutdownTimeout is the maximum time to wait for graceful shutdown.
	// Default: 15 seconds.
	ShutdownTimeout time.Duration

	// ReadBufferSize and WriteBufferSize size the WebSocket buffers.
	// Default: 4096.
	ReadBufferSize  int
	WriteBufferSize int

	// CheckOrigin is called to validate the WebSocket request origin.
	// Default: SameOriginCheck.
	CheckOrigin func(r *http.Request) bool

	// SessionConfig is the configuration for individual sessions.
	// Default: DefaultSessionConfig().
	SessionConfig *SessionConfig

	// MaxSessions is the maximum number of concurrent sessions.
	// 0 means no limit.
	MaxSessions int

	// CleanupInterval is the interval for the idle session sweep.
	// Default: 30 seconds.
	CleanupInterval time.Duration

	// MaxBodyBytes bounds POST bodies.
	// Default: 64KB.
	MaxBodyBytes int64

	// DevMode disables client script caching and pretty-prints pages.
	DevMode bool
}

// DefaultServerConfig returns a ServerConfig with sensible defaults.
func DefaultServerConfig() *ServerConfig {
	return &ServerConfig{
		Address:         ":8080",
		Title:           "Contact us",
		ReadTimeout:     10 * time.Second,
		WriteTimeout:    10 * time.Second,
		ShutdownTimeout: 15 * time.Second,
		ReadBufferSize:  4096,
		WriteBufferSize: 4096,
		CheckOrigin:     SameOriginCheck,
		SessionConfig:   DefaultSessionConfig(),
		CleanupInterval: 30 * time.Second,
		MaxBodyBytes:    64 * 1024,
	}
}

// withDefaults fills unset fields from DefaultServerConfig.
func (c *ServerConfig) withDefaults() *ServerConfig {
	defaults := DefaultServerConfig()
	if c == nil {
		return defaults
	}
	out := c.Clone()
	if out.Address == "" {
		out.Address = defaults.Address
	}
	if out.Title == "" {
		out.Title = defaults.Title
	}
	if out.ShutdownTimeout == 0 {
		out.ShutdownTimeout = defaults.ShutdownTimeout
	}
	if out.ReadBufferSize == 0 {
		out.ReadBufferSize = defaults.ReadBufferSize
	}
	if out.WriteBufferSize == 0 {
		out.WriteBufferSize = defaults.WriteBufferSize
	}
	if out.CheckOrigin == nil {
		out.CheckOrigin = defaults.CheckOrigin
	}
	if out.SessionConfig == nil {
		out.SessionConfig = defaults.SessionConfig
	}
	if out.CleanupInterval == 0 {
		out.CleanupInterval = defaults.CleanupInterval
	}
	if out.MaxBodyBytes == 0 {
		out.MaxBodyBytes = defaults.MaxBodyBytes
	}

	sc := out.SessionConfig
	ds := defaults.SessionConfig
	if sc.IdleTimeout == 0 {
		sc.IdleTimeout = ds.IdleTimeout
	}
	if sc.WriteTimeout == 0 {
		sc.WriteTimeout = ds.WriteTimeout
	}
	if sc.MaxEventQueue == 0 {
		sc.MaxEventQueue = ds.MaxEventQueue
	}
	if sc.Limits == (protocol.Limits{}) {
		sc.Limits = ds.Limits
	}
	return out
}

// SameOriginCheck validates that the WebSocket request origin matches the host.
// This is the default for CheckOrigin.
func SameOriginCheck(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		// No Origin header (e.g., curl or a native client)
		return true
	}

	originURL, err := url.Parse(origin)
	if err != nil {
		return false
	}

	host := r.Host
	if host == "" {
		return false
	}
	return originURL.Host == host
}

// AllowOrigins returns a CheckOrigin that accepts same-origin requests and
// the listed origins (scheme://host[:port]). An empty list means same-origin
// only.
func AllowOrigins(origins []string) func(r *http.Request) bool {
	allowed := make(map[string]bool, len(origins))
	for _, o := range origins {
		allowed[strings.TrimSuffix(strings.ToLower(o), "/")] = true
	}
	return func(r *http.Request) bool {
		if SameOriginCheck(r) {
			return true
		}
		return allowed[strings.ToLower(r.Header.Get("Origin"))]
	}
}

// Clone returns a copy of the ServerConfig.
func (c *ServerConfig) Clone() *ServerConfig {
	if c == nil {
		return nil
	}
	clone := *c
	if c.SessionConfig != nil {
		clone.SessionConfig = c.SessionConfig.Clone()
	}
	return &clone
}

// WithAddress sets the server address and returns the config for chaining.
func (c *ServerConfig) WithAddress(addr string) *ServerConfig {
	c.Address = addr
	return c
}

// WithSessionConfig sets the session configuration and returns the config for chaining.
func (c *ServerConfig) WithSessionConfig(sc *SessionConfig) *ServerConfig {
	c.SessionConfig = sc
	return c
}

// WithMaxSessions sets the maximum sessions and returns the config for chaining.
func (c *ServerConfig) WithMaxSessions(max int) *ServerConfig {
	c.MaxSessions = max
	return c
}

// WithDevMode enables development mode and returns the config for chaining.
func (c *ServerConfig) WithDevMode() *ServerConfig {
	c.DevMode = true
	return c
}
