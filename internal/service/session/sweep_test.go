package session

import (
	"context"
	"testing"
	"time"
)

// backdate rewinds a session's activity clock so expiry can be exercised
// without waiting out a real TTL.
func backdate(t *testing.T, s *MemoryStore, id string, by time.Duration) {
	t.Helper()
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok {
		t.Fatalf("session %q not found", id)
	}
	sess.LastActiveAt = time.Now().UTC().Add(-by)
}

func TestExpireIdleRemovesStaleSessions(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(Config{TTL: time.Minute})
	defer store.Close()

	if err := store.RecordMessage(ctx, "stale"); err != nil {
		t.Fatalf("record err: %v", err)
	}
	if err := store.RecordMessage(ctx, "fresh"); err != nil {
		t.Fatalf("record err: %v", err)
	}
	backdate(t, store, "stale", 2*time.Minute)

	store.expireIdle()

	stats, err := store.Stats(ctx)
	if err != nil {
		t.Fatalf("stats err: %v", err)
	}
	if stats.ActiveSessions != 1 {
		t.Fatalf("expected 1 surviving session, got %d", stats.ActiveSessions)
	}
	store.mu.RLock()
	_, staleOK := store.sessions["stale"]
	_, freshOK := store.sessions["fresh"]
	store.mu.RUnlock()
	if staleOK {
		t.Fatal("stale session survived expiry")
	}
	if !freshOK {
		t.Fatal("fresh session was expired")
	}
}

func TestExpireIdleDisabledByNegativeTTL(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(Config{TTL: -1})
	defer store.Close()

	if err := store.RecordMessage(ctx, "ancient"); err != nil {
		t.Fatalf("record err: %v", err)
	}
	backdate(t, store, "ancient", 365*24*time.Hour)

	store.expireIdle()

	stats, err := store.Stats(ctx)
	if err != nil {
		t.Fatalf("stats err: %v", err)
	}
	if stats.ActiveSessions != 1 {
		t.Fatal("negative TTL must disable expiry")
	}
}
