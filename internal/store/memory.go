package store

import (
	"errors"
	"sync"
	"time"

	"spotboard/internal/price"
)

var (
	// ErrNotFound is returned when no board has been assembled yet.
	ErrNotFound = errors.New("no price board available")
)

// MemoryStore is a concurrency-safe in-memory holder for assembled boards.
// Boards are kept newest-last; each cycle appends, and view refreshes replace
// the newest entry in place. History exists only to let operators inspect
// recent cycles; nothing persists across process restarts.
type MemoryStore struct {
	mu sync.RWMutex

	boards []price.Board

	// retention configuration
	maxHistory int           // max number of boards kept
	maxAge     time.Duration // optional max age for boards
}

// NewMemoryStore creates a new MemoryStore with optional limits.
// If maxHistory is <= 0, it is treated as unlimited.
func NewMemoryStore(maxHistory int, maxAge time.Duration) *MemoryStore {
	return &MemoryStore{
		maxHistory: maxHistory,
		maxAge:     maxAge,
	}
}

// SaveBoard appends a freshly assembled board and enforces retention.
func (s *MemoryStore) SaveBoard(b price.Board) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.boards = append(s.boards, b)

	// Enforce retention by count.
	if s.maxHistory > 0 && len(s.boards) > s.maxHistory {
		over := len(s.boards) - s.maxHistory
		s.boards = s.boards[over:]
	}

	// Enforce retention by age.
	if s.maxAge > 0 {
		cutoff := time.Now().Add(-s.maxAge)
		i := 0
		for ; i < len(s.boards); i++ {
			if !s.boards[i].GeneratedAt.Before(cutoff) {
				break
			}
		}
		if i > 0 && i < len(s.boards) {
			s.boards = s.boards[i:]
		}
	}
}

// UpdateLatest replaces the newest board in place. Used by view refreshes,
// which recompute now-dependent fields of the current cycle rather than
// starting a new one. The replace is conditional on the cycle id: when a
// rebuild has appended a newer board since the caller read its copy, the
// update is stale and is rejected with price.ErrCycleConflict instead of
// clobbering the fresher data.
func (s *MemoryStore) UpdateLatest(b price.Board) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.boards) == 0 {
		return ErrNotFound
	}
	if s.boards[len(s.boards)-1].CycleID != b.CycleID {
		return price.ErrCycleConflict
	}
	s.boards[len(s.boards)-1] = b
	return nil
}

// Latest returns the most recent board.
func (s *MemoryStore) Latest() (price.Board, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.boards) == 0 {
		return price.Board{}, ErrNotFound
	}
	return s.boards[len(s.boards)-1], nil
}

// Range returns all retained boards generated between from and to
// (inclusive).
func (s *MemoryStore) Range(from, to time.Time) ([]price.Board, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []price.Board
	for _, b := range s.boards {
		if !b.GeneratedAt.Before(from) && !b.GeneratedAt.After(to) {
			result = append(result, b)
		}
	}

	if len(result) == 0 {
		return nil, ErrNotFound
	}
	return result, nil
}
