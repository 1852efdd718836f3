package session

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/myrecovery365/sobrio/backend/internal/model/chat"
)

const (
	DefaultHistoryWindow = 5
	DefaultTTL           = 24 * time.Hour
	DefaultMaxSessions   = 10000

	sweepInterval = 5 * time.Minute
)

// Config bounds the in-memory store. Zero values fall back to defaults;
// a negative TTL disables expiry.
type Config struct {
	HistoryWindow int
	TTL           time.Duration
	MaxSessions   int
}

func (c Config) withDefaults() Config {
	if c.HistoryWindow <= 0 {
		c.HistoryWindow = DefaultHistoryWindow
	}
	if c.TTL == 0 {
		c.TTL = DefaultTTL
	}
	if c.MaxSessions <= 0 {
		c.MaxSessions = DefaultMaxSessions
	}
	return c
}

// MemoryStore keeps sessions in a mutex-guarded map. A background sweeper
// expires idle sessions so the map cannot grow without bound.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*chat.Session
	cfg      Config

	stopOnce sync.Once
	stop     chan struct{}
	done     chan struct{}
}

// NewMemoryStore bootstraps the store and starts the eviction sweeper.
func NewMemoryStore(cfg Config) *MemoryStore {
	s := &MemoryStore{
		sessions: make(map[string]*chat.Session),
		cfg:      cfg.withDefaults(),
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
	go s.sweep()
	return s
}

func (s *MemoryStore) GetOrCreate(_ context.Context, id string) (chat.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess := s.locked(id)
	return copySession(sess), nil
}

func (s *MemoryStore) RecordMessage(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess := s.locked(id)
	sess.MessageCount++
	sess.LastActiveAt = time.Now().UTC()
	return nil
}

func (s *MemoryStore) RecordTurn(_ context.Context, id, userText, assistantText string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok {
		return ErrSessionNotFound
	}

	sess.History = append(sess.History, chat.Turn{
		UserText:      userText,
		AssistantText: assistantText,
		CreatedAt:     time.Now().UTC(),
	})
	if len(sess.History) > s.cfg.HistoryWindow {
		sess.History = sess.History[len(sess.History)-s.cfg.HistoryWindow:]
	}
	sess.LastActiveAt = time.Now().UTC()
	return nil
}

func (s *MemoryStore) RecordTopics(_ context.Context, id string, topics []string) error {
	if len(topics) == 0 {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok {
		return ErrSessionNotFound
	}
	sess.Topics = append(sess.Topics, topics...)
	return nil
}

func (s *MemoryStore) Clear(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	return nil
}

func (s *MemoryStore) Stats(_ context.Context) (Stats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := Stats{
		ActiveSessions: len(s.sessions),
		TopicCounts:    make(map[string]int),
	}
	for _, sess := range s.sessions {
		stats.TotalMessages += sess.MessageCount
		for _, topic := range sess.Topics {
			stats.TopicCounts[topic]++
		}
	}
	return stats, nil
}

// Close stops the sweeper. Safe to call more than once.
func (s *MemoryStore) Close() error {
	s.stopOnce.Do(func() {
		close(s.stop)
		<-s.done
	})
	return nil
}

// locked fetches or creates a session entry. Caller must hold the write lock.
func (s *MemoryStore) locked(id string) *chat.Session {
	if sess, ok := s.sessions[id]; ok {
		return sess
	}

	if len(s.sessions) >= s.cfg.MaxSessions {
		s.evictOldestLocked()
	}

	now := time.Now().UTC()
	sess := &chat.Session{
		ID:           id,
		CreatedAt:    now,
		LastActiveAt: now,
	}
	s.sessions[id] = sess
	return sess
}

func (s *MemoryStore) evictOldestLocked() {
	var oldestID string
	var oldest time.Time
	for id, sess := range s.sessions {
		if oldestID == "" || sess.LastActiveAt.Before(oldest) {
			oldestID = id
			oldest = sess.LastActiveAt
		}
	}
	if oldestID != "" {
		delete(s.sessions, oldestID)
		log.Printf("[session] evicted oldest session %s to stay under cap", oldestID)
	}
}

func (s *MemoryStore) sweep() {
	defer close(s.done)

	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stop:
			return
		case <-ticker.C:
			s.expireIdle()
		}
	}
}

func (s *MemoryStore) expireIdle() {
	if s.cfg.TTL < 0 {
		return
	}
	cutoff := time.Now().UTC().Add(-s.cfg.TTL)

	s.mu.Lock()
	defer s.mu.Unlock()
	expired := 0
	for id, sess := range s.sessions {
		if sess.LastActiveAt.Before(cutoff) {
			delete(s.sessions, id)
			expired++
		}
	}
	if expired > 0 {
		log.Printf("[session] expired %d idle sessions", expired)
	}
}

func copySession(sess *chat.Session) chat.Session {
	out := *sess
	out.History = make([]chat.Turn, len(sess.History))
	copy(out.History, sess.History)
	out.Topics = make([]string, len(sess.Topics))
	copy(out.Topics, sess.Topics)
	return out
}
