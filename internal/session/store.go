package session

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"server/internal/domain"
)

const (
	// DefaultTTL discards sessions idle longer than this; the state is
	// meant to live only as long as one browser session.
	DefaultTTL    = 2 * time.Hour
	sweepInterval = 5 * time.Minute
)

// Store keeps live sessions in memory, keyed by id. Expired sessions are
// swept periodically; there is no other teardown path because state is
// transient by design.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	ttl      time.Duration
	debounce time.Duration
	stop     chan struct{}
	stopOnce sync.Once
}

type StoreOptions struct {
	TTL            time.Duration
	SearchDebounce time.Duration
}

func NewStore(opts StoreOptions) *Store {
	ttl := opts.TTL
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	s := &Store{
		sessions: make(map[string]*Session),
		ttl:      ttl,
		debounce: opts.SearchDebounce,
		stop:     make(chan struct{}),
	}
	go s.sweep()
	return s
}

// Create makes a new session with the fixed default design.
func (s *Store) Create() *Session {
	sess := newSession(uuid.NewString(), s.debounce)
	s.mu.Lock()
	s.sessions[sess.ID] = sess
	s.mu.Unlock()
	return sess
}

// Get returns the session with the given id.
func (s *Store) Get(id string) (*Session, error) {
	s.mu.RLock()
	sess, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return sess, nil
}

// Delete discards a session immediately.
func (s *Store) Delete(id string) {
	s.mu.Lock()
	sess, ok := s.sessions[id]
	delete(s.sessions, id)
	s.mu.Unlock()
	if ok {
		sess.Debounce.Stop()
	}
}

// Close stops the sweeper.
func (s *Store) Close() {
	s.stopOnce.Do(func() { close(s.stop) })
}

// Len reports the number of live sessions.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

func (s *Store) sweep() {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-s.stop:
			return
		case now := <-ticker.C:
			s.expire(now)
		}
	}
}

func (s *Store) expire(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, sess := range s.sessions {
		if sess.idle(now) > s.ttl {
			sess.Debounce.Stop()
			delete(s.sessions, id)
		}
	}
}
