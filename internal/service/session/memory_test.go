package session_test

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/myrecovery365/sobrio/backend/internal/service/session"
)

func TestGetOrCreateReturnsStableSession(t *testing.T) {
	store := session.NewMemoryStore(session.Config{})
	defer store.Close()
	ctx := context.Background()

	first, err := store.GetOrCreate(ctx, "abc")
	if err != nil {
		t.Fatalf("GetOrCreate err: %v", err)
	}
	if first.ID != "abc" {
		t.Fatalf("unexpected session ID: %s", first.ID)
	}

	if err := store.RecordMessage(ctx, "abc"); err != nil {
		t.Fatalf("RecordMessage err: %v", err)
	}

	second, err := store.GetOrCreate(ctx, "abc")
	if err != nil {
		t.Fatalf("GetOrCreate err: %v", err)
	}
	if second.MessageCount != 1 {
		t.Fatalf("expected message count 1, got %d", second.MessageCount)
	}
}

func TestHistoryWindowEvictsOldest(t *testing.T) {
	store := session.NewMemoryStore(session.Config{HistoryWindow: 5})
	defer store.Close()
	ctx := context.Background()

	store.GetOrCreate(ctx, "abc")
	for i := 1; i <= 7; i++ {
		if err := store.RecordTurn(ctx, "abc", fmt.Sprintf("user %d", i), fmt.Sprintf("bot %d", i)); err != nil {
			t.Fatalf("RecordTurn err: %v", err)
		}
	}

	sess, _ := store.GetOrCreate(ctx, "abc")
	if len(sess.History) != 5 {
		t.Fatalf("expected window of 5 turns, got %d", len(sess.History))
	}
	if sess.History[0].UserText != "user 3" {
		t.Fatalf("expected oldest turn to be user 3, got %q", sess.History[0].UserText)
	}
	if sess.History[4].UserText != "user 7" {
		t.Fatalf("expected newest turn to be user 7, got %q", sess.History[4].UserText)
	}
}

func TestRecordTopicsKeepsInsertionOrder(t *testing.T) {
	store := session.NewMemoryStore(session.Config{})
	defer store.Close()
	ctx := context.Background()

	store.GetOrCreate(ctx, "abc")
	store.RecordTopics(ctx, "abc", []string{"cravings", "support"})
	store.RecordTopics(ctx, "abc", []string{"cravings"})

	sess, _ := store.GetOrCreate(ctx, "abc")
	want := []string{"cravings", "support", "cravings"}
	if len(sess.Topics) != len(want) {
		t.Fatalf("topics: got %v want %v", sess.Topics, want)
	}
	for i := range want {
		if sess.Topics[i] != want[i] {
			t.Fatalf("topics: got %v want %v", sess.Topics, want)
		}
	}
}

func TestRecordTurnUnknownSession(t *testing.T) {
	store := session.NewMemoryStore(session.Config{})
	defer store.Close()

	if err := store.RecordTurn(context.Background(), "missing", "hi", "hello"); err == nil {
		t.Fatal("expected error for unknown session")
	}
}

func TestClearDropsSession(t *testing.T) {
	store := session.NewMemoryStore(session.Config{})
	defer store.Close()
	ctx := context.Background()

	store.GetOrCreate(ctx, "abc")
	store.RecordMessage(ctx, "abc")
	store.Clear(ctx, "abc")

	sess, _ := store.GetOrCreate(ctx, "abc")
	if sess.MessageCount != 0 {
		t.Fatalf("expected fresh session after clear, got count %d", sess.MessageCount)
	}
}

func TestMaxSessionsEvictsOldest(t *testing.T) {
	store := session.NewMemoryStore(session.Config{MaxSessions: 3})
	defer store.Close()
	ctx := context.Background()

	for i := 0; i < 4; i++ {
		store.GetOrCreate(ctx, fmt.Sprintf("s%d", i))
	}

	stats, err := store.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats err: %v", err)
	}
	if stats.ActiveSessions != 3 {
		t.Fatalf("expected cap of 3 sessions, got %d", stats.ActiveSessions)
	}
}

func TestConcurrentDistinctSessions(t *testing.T) {
	store := session.NewMemoryStore(session.Config{})
	defer store.Close()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id := fmt.Sprintf("s%d", i)
			store.GetOrCreate(ctx, id)
			for j := 0; j < 10; j++ {
				store.RecordMessage(ctx, id)
				store.RecordTurn(ctx, id, "u", "a")
			}
		}(i)
	}
	wg.Wait()

	stats, _ := store.Stats(ctx)
	if stats.ActiveSessions != 16 {
		t.Fatalf("expected 16 sessions, got %d", stats.ActiveSessions)
	}
	if stats.TotalMessages != 160 {
		t.Fatalf("expected 160 messages, got %d", stats.TotalMessages)
	}
}
