package mdorg

import (
	"sync"

	"github.com/google/uuid"
)

// Registry owns the live sessions of concurrent producer streams, keyed by
// the opaque id supplied at creation. It exists so that an out-of-band
// "producer completed or cancelled" signal can be dispatched by id without
// the signaller holding a session reference. Individual sessions remain
// single-writer and lock-free; only the table itself is guarded.
type Registry struct {
	mu       sync.Mutex
	sessions map[string]*Session
	release  func(id string)
}

// RegistryOption configures a Registry.
type RegistryOption func(*Registry)

// WithReleaseHook registers fn to run exactly once per session when it is
// finalized or cancelled.
func WithReleaseHook(fn func(id string)) RegistryOption {
	return func(r *Registry) {
		r.release = fn
	}
}

// NewRegistry creates an empty session registry.
func NewRegistry(opts ...RegistryOption) *Registry {
	r := &Registry{sessions: make(map[string]*Session)}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

// Create allocates a session for a new producer stream. An empty id is
// replaced with a generated one. A live session under the same id is
// superseded: the new stream owns the identity, and the old session is
// released as if cancelled.
func (r *Registry) Create(id string) *Session {
	if id == "" {
		id = uuid.NewString()
	}
	s := NewSession(id)
	s.reg = r
	r.mu.Lock()
	_, had := r.sessions[id]
	r.sessions[id] = s
	r.mu.Unlock()
	if had {
		r.fireRelease(id)
	}
	return s
}

// Cancel handles the producer's completion or cancellation signal. It is
// safe to deliver at any time and is a no-op for unknown or already
// finalized ids: duplicate and stale signals are expected from the
// environment and never tear down an unrelated session. The cancelled
// session is only detached, never mutated, so a signal racing a Feed on
// another goroutine cannot corrupt it.
func (r *Registry) Cancel(id string) {
	r.mu.Lock()
	_, ok := r.sessions[id]
	if ok {
		delete(r.sessions, id)
	}
	r.mu.Unlock()
	if ok {
		r.fireRelease(id)
	}
}

// Get returns the live session for id, if any.
func (r *Registry) Get(id string) (*Session, bool) {
	r.mu.Lock()
	s, ok := r.sessions[id]
	r.mu.Unlock()
	return s, ok
}

// Len returns the number of live sessions.
func (r *Registry) Len() int {
	r.mu.Lock()
	n := len(r.sessions)
	r.mu.Unlock()
	return n
}

// drop deregisters a session that finalized itself. The identity check
// keeps a stale signal from removing a successor session under the same id.
func (r *Registry) drop(id string, s *Session) {
	r.mu.Lock()
	cur, ok := r.sessions[id]
	if ok && cur == s {
		delete(r.sessions, id)
	} else {
		ok = false
	}
	r.mu.Unlock()
	if ok {
		r.fireRelease(id)
	}
}

func (r *Registry) fireRelease(id string) {
	if r.release != nil {
		r.release(id)
	}
}
