package store

import (
	"context"
	"path/filepath"
	"testing"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLite(filepath.Join(t.TempDir(), "feedback.db"))
	if err != nil {
		t.Fatalf("NewSQLite err: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSaveAndListFeedback(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	records := []Feedback{
		{SessionID: "s1", Rating: 5, Comment: "really helped"},
		{SessionID: "s2", Rating: 3, Comment: "ok"},
		{SessionID: "s1", Rating: 4, Comment: "good follow-up"},
	}
	for _, fb := range records {
		if err := s.SaveFeedback(ctx, fb); err != nil {
			t.Fatalf("SaveFeedback err: %v", err)
		}
	}

	got, err := s.ListRecentFeedback(ctx, 10)
	if err != nil {
		t.Fatalf("ListRecentFeedback err: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 records, got %d", len(got))
	}
	// Newest first.
	if got[0].Comment != "good follow-up" {
		t.Fatalf("expected newest record first, got %q", got[0].Comment)
	}
}

func TestListRecentFeedbackLimit(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		if err := s.SaveFeedback(ctx, Feedback{SessionID: "s1", Rating: 4}); err != nil {
			t.Fatalf("SaveFeedback err: %v", err)
		}
	}

	got, err := s.ListRecentFeedback(ctx, 2)
	if err != nil {
		t.Fatalf("ListRecentFeedback err: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 records, got %d", len(got))
	}
}

func TestPing(t *testing.T) {
	s := newTestStore(t)
	if err := s.Ping(context.Background()); err != nil {
		t.Fatalf("Ping err: %v", err)
	}
}
