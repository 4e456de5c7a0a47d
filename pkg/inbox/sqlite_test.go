package inbox

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func openMemory(t *testing.T) *SQLiteSink {
	t.Helper()
	s, err := OpenSQLite(context.Background(), ":memory:")
	if err != nil {
		t.Fatalf("OpenSQLite failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSQLiteDeliverAndList(t *testing.T) {
	ctx := context.Background()
	s := openMemory(t)

	older := NewSubmission(testValues(), ChannelForm, "127.0.0.1:1")
	older.ReceivedAt = time.Date(2026, 1, 2, 3, 4, 5, 6, time.UTC)
	newer := NewSubmission(testValues(), ChannelAPI, "")
	newer.Message = "Another message, long enough"
	newer.ReceivedAt = older.ReceivedAt.Add(time.Minute)

	for _, sub := range []Submission{older, newer} {
		if err := s.Deliver(ctx, sub); err != nil {
			t.Fatalf("Deliver failed: %v", err)
		}
	}

	got, err := s.List(ctx, 10)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if diff := cmp.Diff([]Submission{newer, older}, got); diff != "" {
		t.Errorf("List mismatch (-want +got):\n%s", diff)
	}

	got, err = s.List(ctx, 1)
	if err != nil || len(got) != 1 || got[0].ID != newer.ID {
		t.Errorf("Expected only the newest submission, got %v (%v)", got, err)
	}
}

func TestSQLiteListOrdersWithinSecond(t *testing.T) {
	ctx := context.Background()
	s := openMemory(t)

	whole := NewSubmission(testValues(), ChannelForm, "")
	whole.ReceivedAt = time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	tenth := NewSubmission(testValues(), ChannelAPI, "")
	tenth.ReceivedAt = whole.ReceivedAt.Add(100 * time.Millisecond)
	twelve := NewSubmission(testValues(), ChannelSocket, "")
	twelve.ReceivedAt = whole.ReceivedAt.Add(120 * time.Millisecond)

	for _, sub := range []Submission{whole, twelve, tenth} {
		if err := s.Deliver(ctx, sub); err != nil {
			t.Fatalf("Deliver failed: %v", err)
		}
	}

	got, err := s.List(ctx, 10)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	var ids []string
	for _, sub := range got {
		ids = append(ids, sub.ID.String())
	}
	if diff := cmp.Diff([]string{twelve.ID.String(), tenth.ID.String(), whole.ID.String()}, ids); diff != "" {
		t.Errorf("List order mismatch (-want +got):\n%s", diff)
	}

	got, err = s.List(ctx, 1)
	if err != nil || len(got) != 1 || !got[0].ReceivedAt.Equal(twelve.ReceivedAt) {
		t.Errorf("Expected newest at %v, got %v (%v)", twelve.ReceivedAt, got, err)
	}
}

func TestSQLiteDuplicateIgnored(t *testing.T) {
	ctx := context.Background()
	s := openMemory(t)

	sub := NewSubmission(testValues(), ChannelSocket, "")
	for i := 0; i < 2; i++ {
		if err := s.Deliver(ctx, sub); err != nil {
			t.Fatalf("Deliver #%d failed: %v", i, err)
		}
	}
	n, err := s.Count(ctx)
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if n != 1 {
		t.Errorf("Expected 1 row, got %d", n)
	}
}

func TestSQLiteFilePersists(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "inbox.db")

	s, err := OpenSQLite(ctx, path)
	if err != nil {
		t.Fatalf("OpenSQLite failed: %v", err)
	}
	sub := NewSubmission(testValues(), ChannelForm, "")
	if err := s.Deliver(ctx, sub); err != nil {
		t.Fatalf("Deliver failed: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	s, err = OpenSQLite(ctx, path)
	if err != nil {
		t.Fatalf("Reopen failed: %v", err)
	}
	defer s.Close()

	got, err := s.List(ctx, 10)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(got) != 1 || got[0].ID != sub.ID {
		t.Errorf("Expected the stored submission after reopen, got %v", got)
	}
}
