package feedback

import (
	"os"
	"path/filepath"
	"testing"
)

func newTestLedger(t *testing.T) *Ledger {
	t.Helper()
	return NewLedger(filepath.Join(t.TempDir(), "feedback_log.json"))
}

func TestAverage_Empty(t *testing.T) {
	l := newTestLedger(t)
	if got := l.Average(); got != NeutralScore {
		t.Fatalf("expected neutral average %v for empty ledger, got %v", NeutralScore, got)
	}
}

func TestAverage_Mean(t *testing.T) {
	l := newTestLedger(t)
	for _, score := range []int{5, 5, 4} {
		if err := l.Append(Entry{Subject: "chapter1", Score: score}); err != nil {
			t.Fatalf("unexpected append error: %v", err)
		}
	}
	want := 14.0 / 3.0
	if got := l.Average(); got != want {
		t.Fatalf("expected average %v, got %v", want, got)
	}
}

func TestAverage_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "feedback_log.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	l := NewLedger(path)
	if got := l.Average(); got != NeutralScore {
		t.Fatalf("expected neutral average for corrupt ledger, got %v", got)
	}
}

func TestAverage_WrongShape(t *testing.T) {
	path := filepath.Join(t.TempDir(), "feedback_log.json")
	if err := os.WriteFile(path, []byte(`{"score": 5}`), 0o644); err != nil {
		t.Fatal(err)
	}
	l := NewLedger(path)
	if got := l.Average(); got != NeutralScore {
		t.Fatalf("expected neutral average for non-list ledger, got %v", got)
	}
}

func TestAppend_RejectsOutOfRange(t *testing.T) {
	l := newTestLedger(t)
	for _, score := range []int{0, 6, -1} {
		if err := l.Append(Entry{Score: score}); err == nil {
			t.Fatalf("expected error for score %d", score)
		}
	}
}

func TestAppend_CorruptLedgerDoesNotBlockAppend(t *testing.T) {
	path := filepath.Join(t.TempDir(), "feedback_log.json")
	if err := os.WriteFile(path, []byte("garbage"), 0o644); err != nil {
		t.Fatal(err)
	}
	l := NewLedger(path)
	if err := l.Append(Entry{Subject: "chapter1", Score: 4}); err != nil {
		t.Fatalf("append over corrupt ledger should reset, got: %v", err)
	}
	if got := l.Average(); got != 4 {
		t.Fatalf("expected average 4 after reset, got %v", got)
	}
}

func TestAppend_TimestampsMonotonic(t *testing.T) {
	l := newTestLedger(t)
	for i := 0; i < 5; i++ {
		if err := l.Append(Entry{Subject: "chapter1", Decision: "approve", Score: 3}); err != nil {
			t.Fatal(err)
		}
	}
	entries := l.Entries()
	if len(entries) != 5 {
		t.Fatalf("expected 5 entries, got %d", len(entries))
	}
	for i := 1; i < len(entries); i++ {
		if entries[i].Timestamp.Before(entries[i-1].Timestamp) {
			t.Fatalf("timestamps not monotonic at entry %d", i)
		}
	}
}

func TestStats(t *testing.T) {
	l := newTestLedger(t)
	for _, e := range []Entry{
		{Subject: "chapter1", Decision: "approve", Score: 5},
		{Subject: "chapter2", Decision: "edit", Score: 2},
		{Subject: "chapter3", Decision: "approve", Score: 5},
	} {
		if err := l.Append(e); err != nil {
			t.Fatal(err)
		}
	}
	stats := l.Stats()
	if stats.Count != 3 {
		t.Fatalf("expected count 3, got %d", stats.Count)
	}
	if stats.Average != 4 {
		t.Fatalf("expected average 4, got %v", stats.Average)
	}
	if stats.Decisions["approve"] != 2 || stats.Decisions["edit"] != 1 {
		t.Fatalf("unexpected decision counts: %v", stats.Decisions)
	}
}
