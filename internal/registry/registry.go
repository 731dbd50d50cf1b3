// Package registry implements the session registry and reaper (spec §4.6),
// generalized from the teacher's BattleshipSessionManager map+mutex+
// CleanupPeriodically shape (models/connection/session_manager.go), but
// reaping on a session's own Finished() flag instead of a fixed TTL.
package registry

import (
	"log"
	"sync"
	"time"
)

// Session is the subset of *session.Session the registry depends on. The
// registry package does not import internal/session to avoid a dependency
// cycle (the matchmaker imports both).
type Session interface {
	ID() int
	Finished() bool
}

// ReapInterval is the reaper's scan cadence (spec §4.6: "e.g. 1 s cadence").
const ReapInterval = time.Second

// Registry tracks live sessions, keyed by session id. The reaper is the
// only component that deletes entries (spec §4.6).
type Registry struct {
	mu       sync.Mutex
	sessions map[int]Session
	logger   *log.Logger
}

// New returns an empty registry.
func New(logger *log.Logger) *Registry {
	return &Registry{
		sessions: make(map[int]Session),
		logger:   logger,
	}
}

// Add registers a newly-started session. Called by the matchmaker only.
func (r *Registry) Add(s Session) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[s.ID()] = s
}

// Len reports the number of tracked sessions, used by tests and logging.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// ReapOnce scans once and removes every session whose Finished() is true.
// It is exported separately from Run so tests can drive a single pass
// deterministically instead of waiting on a timer.
func (r *Registry) ReapOnce() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, s := range r.sessions {
		if s.Finished() {
			delete(r.sessions, id)
			r.logger.Printf("registry: reaped session %d", id)
		}
	}
}

// Run scans at ReapInterval cadence until stop is closed (spec §4.6, §5:
// "on shutdown... the reaper drains the registry" — callers close stop
// after giving live sessions a chance to finish naturally).
func (r *Registry) Run(stop <-chan struct{}) {
	ticker := time.NewTicker(ReapInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			r.ReapOnce()
		case <-stop:
			return
		}
	}
}
