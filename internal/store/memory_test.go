package store

import (
	"errors"
	"testing"
	"time"

	"spotboard/internal/price"
)

func boardAt(cycle string, generated time.Time) price.Board {
	return price.Board{
		CycleID:     cycle,
		GeneratedAt: generated,
	}
}

func TestLatestEmptyStore(t *testing.T) {
	s := NewMemoryStore(0, 0)
	if _, err := s.Latest(); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSaveAndLatest(t *testing.T) {
	s := NewMemoryStore(0, 0)
	now := time.Now().UTC()

	s.SaveBoard(boardAt("a", now))
	s.SaveBoard(boardAt("b", now.Add(time.Minute)))

	b, err := s.Latest()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b.CycleID != "b" {
		t.Errorf("expected latest cycle b, got %s", b.CycleID)
	}
}

func TestRetentionByCount(t *testing.T) {
	s := NewMemoryStore(2, 0)
	now := time.Now().UTC()

	s.SaveBoard(boardAt("a", now))
	s.SaveBoard(boardAt("b", now.Add(time.Minute)))
	s.SaveBoard(boardAt("c", now.Add(2*time.Minute)))

	s.mu.RLock()
	n := len(s.boards)
	first := s.boards[0].CycleID
	s.mu.RUnlock()

	if n != 2 {
		t.Fatalf("expected 2 boards retained, got %d", n)
	}
	if first != "b" {
		t.Errorf("expected oldest retained board b, got %s", first)
	}
}

func TestRetentionByAge(t *testing.T) {
	s := NewMemoryStore(0, time.Hour)
	now := time.Now().UTC()

	s.SaveBoard(boardAt("old", now.Add(-2*time.Hour)))
	s.SaveBoard(boardAt("fresh", now))

	s.mu.RLock()
	n := len(s.boards)
	s.mu.RUnlock()

	if n != 1 {
		t.Fatalf("expected stale board evicted, got %d boards", n)
	}

	b, err := s.Latest()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b.CycleID != "fresh" {
		t.Errorf("expected fresh board retained, got %s", b.CycleID)
	}
}

func TestUpdateLatestRejectsStaleCycle(t *testing.T) {
	s := NewMemoryStore(0, 0)
	now := time.Now().UTC()

	stale := boardAt("old-cycle", now)
	s.SaveBoard(stale)

	// A rebuild appends a newer cycle after the caller read its copy.
	s.SaveBoard(boardAt("new-cycle", now.Add(time.Minute)))

	stale.CurrentIndex = 3
	if err := s.UpdateLatest(stale); !errors.Is(err, price.ErrCycleConflict) {
		t.Fatalf("expected ErrCycleConflict, got %v", err)
	}

	b, err := s.Latest()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b.CycleID != "new-cycle" {
		t.Errorf("newer board clobbered by stale update, latest is %s", b.CycleID)
	}
}

func TestRange(t *testing.T) {
	s := NewMemoryStore(0, 0)
	base := time.Date(2026, 8, 29, 10, 0, 0, 0, time.UTC)

	s.SaveBoard(boardAt("a", base))
	s.SaveBoard(boardAt("b", base.Add(15*time.Minute)))
	s.SaveBoard(boardAt("c", base.Add(30*time.Minute)))

	boards, err := s.Range(base, base.Add(15*time.Minute))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(boards) != 2 {
		t.Fatalf("expected 2 boards in range, got %d", len(boards))
	}
	if boards[0].CycleID != "a" || boards[1].CycleID != "b" {
		t.Errorf("unexpected boards in range: %s, %s", boards[0].CycleID, boards[1].CycleID)
	}

	if _, err := s.Range(base.Add(time.Hour), base.Add(2*time.Hour)); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for empty range, got %v", err)
	}
}

func TestUpdateLatest(t *testing.T) {
	s := NewMemoryStore(0, 0)

	if err := s.UpdateLatest(boardAt("x", time.Now())); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on empty store, got %v", err)
	}

	now := time.Now().UTC()
	s.SaveBoard(boardAt("a", now))

	updated := boardAt("a", now.Add(time.Minute))
	updated.CurrentIndex = 7
	if err := s.UpdateLatest(updated); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	b, _ := s.Latest()
	if b.CurrentIndex != 7 {
		t.Errorf("expected latest board replaced in place, got index %d", b.CurrentIndex)
	}

	s.mu.RLock()
	n := len(s.boards)
	s.mu.RUnlock()
	if n != 1 {
		t.Errorf("expected no new history entry, got %d boards", n)
	}
}
