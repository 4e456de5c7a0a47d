package server

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
)

// SessionManager manages all active sessions.
// It handles session creation, lookup, idle cleanup, and shutdown.
type SessionManager struct {
	// Sessions map protected by RWMutex
	sessions map[string]*Session
	mu       sync.RWMutex

	// Configuration
	config      *SessionConfig
	maxSessions int
	env         *sessionEnv

	// Cleanup (protected by cleanupMu)
	cleanupInterval time.Duration
	cleanupTicker   *time.Ticker
	cleanupMu       sync.Mutex
	done            chan struct{}
	cleanupDone     chan struct{} // Signals that cleanup goroutine has exited
	shutdownOnce    sync.Once

	// Metrics
	totalCreated atomic.Uint64
	totalClosed  atomic.Uint64
	peakSessions int

	logger *slog.Logger
}

// newSessionManager creates a SessionManager and starts its cleanup loop.
// maxSessions <= 0 means no limit.
func newSessionManager(config *SessionConfig, maxSessions int, cleanupInterval time.Duration, env *sessionEnv, logger *slog.Logger) *SessionManager {
	if config == nil {
		config = DefaultSessionConfig()
	}
	if cleanupInterval <= 0 {
		cleanupInterval = 30 * time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}

	sm := &SessionManager{
		sessions:        make(map[string]*Session),
		config:          config,
		maxSessions:     maxSessions,
		env:             env,
		cleanupInterval: cleanupInterval,
		done:            make(chan struct{}),
		cleanupDone:     make(chan struct{}),
		logger:          logger.With("component", "session_manager"),
	}

	go sm.cleanupLoop()
	return sm
}

// Create creates a new session for the given WebSocket connection.
// The session is registered but not started.
func (sm *SessionManager) Create(conn *websocket.Conn, remoteAddr string) (*Session, error) {
	sm.mu.Lock()

	select {
	case <-sm.done:
		sm.mu.Unlock()
		return nil, ErrSessionClosed
	default:
	}

	if sm.maxSessions > 0 && len(sm.sessions) >= sm.maxSessions {
		sm.mu.Unlock()
		return nil, ErrMaxSessionsReached
	}

	session := newSession(conn, remoteAddr, sm.config, sm.env, sm.logger)
	session.onClose = sm.remove

	sm.sessions[session.ID] = session
	sm.totalCreated.Add(1)
	if len(sm.sessions) > sm.peakSessions {
		sm.peakSessions = len(sm.sessions)
	}
	active := len(sm.sessions)
	sm.mu.Unlock()

	sm.env.metrics.SessionOpened()
	sm.logger.Info("session created",
		"session_id", session.ID,
		"remote_addr", remoteAddr,
		"active_sessions", active)

	return session, nil
}

// remove unregisters a session. It runs once per session, from Session.Close.
func (sm *SessionManager) remove(session *Session) {
	sm.mu.Lock()
	_, exists := sm.sessions[session.ID]
	if exists {
		delete(sm.sessions, session.ID)
	}
	sm.mu.Unlock()

	if exists {
		sm.totalClosed.Add(1)
		sm.env.metrics.SessionClosed()
	}
}

// Get retrieves a session by ID.
func (sm *SessionManager) Get(id string) *Session {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.sessions[id]
}

// Count returns the number of active sessions.
func (sm *SessionManager) Count() int {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return len(sm.sessions)
}

// cleanupLoop periodically closes idle sessions.
func (sm *SessionManager) cleanupLoop() {
	defer close(sm.cleanupDone)

	sm.cleanupMu.Lock()
	sm.cleanupTicker = time.NewTicker(sm.cleanupInterval)
	ticker := sm.cleanupTicker
	sm.cleanupMu.Unlock()
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			sm.cleanupExpired()
		case <-sm.done:
			return
		}
	}
}

// cleanupExpired closes sessions that have exceeded their idle timeout.
func (sm *SessionManager) cleanupExpired() {
	now := time.Now()

	sm.mu.RLock()
	var expired []*Session
	for _, session := range sm.sessions {
		if now.Sub(session.LastActive()) > sm.config.IdleTimeout {
			expired = append(expired, session)
		}
	}
	sm.mu.RUnlock()

	for _, session := range expired {
		session.Close()
	}

	if len(expired) > 0 {
		sm.logger.Info("cleaned up idle sessions",
			"count", len(expired),
			"remaining", sm.Count())
	}
}

// ShutdownWithContext stops the cleanup loop, closes every session and
// waits for their loops to exit or ctx to end.
func (sm *SessionManager) ShutdownWithContext(ctx context.Context) error {
	sm.shutdownOnce.Do(func() {
		sm.mu.Lock()
		close(sm.done)
		sm.mu.Unlock()
	})
	<-sm.cleanupDone

	sm.mu.RLock()
	sessions := make([]*Session, 0, len(sm.sessions))
	for _, s := range sm.sessions {
		sessions = append(sessions, s)
	}
	sm.mu.RUnlock()

	// Close all sessions concurrently
	var wg sync.WaitGroup
	for _, session := range sessions {
		wg.Add(1)
		go func(s *Session) {
			defer wg.Done()
			s.Close()
		}(session)
	}
	wg.Wait()

	var err error
	for _, session := range sessions {
		if werr := session.Wait(ctx); werr != nil {
			err = werr
			break
		}
	}

	sm.logger.Info("session manager shutdown",
		"closed_sessions", len(sessions))
	return err
}

// Stats returns aggregated session statistics.
func (sm *SessionManager) Stats() ManagerStats {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	return ManagerStats{
		Active:       len(sm.sessions),
		TotalCreated: sm.totalCreated.Load(),
		TotalClosed:  sm.totalClosed.Load(),
		Peak:         sm.peakSessions,
	}
}

// ManagerStats contains aggregated session manager statistics.
type ManagerStats struct {
	Active       int
	TotalCreated uint64
	TotalClosed  uint64
	Peak         int
}

// ForEach iterates over all sessions.
// The callback should not perform long-running operations as it holds the read lock.
func (sm *SessionManager) ForEach(fn func(*Session) bool) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	for _, session := range sm.sessions {
		if !fn(session) {
			break
		}
	}
}

// SetCleanupInterval sets the cleanup interval.
func (sm *SessionManager) SetCleanupInterval(d time.Duration) {
	sm.cleanupMu.Lock()
	defer sm.cleanupMu.Unlock()
	sm.cleanupInterval = d
	if sm.cleanupTicker != nil {
		sm.cleanupTicker.Reset(d)
	}
}
