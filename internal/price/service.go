package price

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"spotboard/internal/common"
)

// Options carries the provider-specific knobs the core computations need.
type Options struct {
	// TaxMultiplier converts raw prices to tax-inclusive ones (e.g. 1.24).
	TaxMultiplier float64
	// CutoffHourUTC is the hour (UTC) at which the provider publishes the
	// next day's prices.
	CutoffHourUTC int
	// Location is the provider's local timezone, used for calendar-date
	// keys and day-boundary detection.
	Location *time.Location
}

// Service orchestrates one assembly cycle: fetch the three-day window,
// normalize, assemble, annotate, and store the resulting board. "now" is
// always an explicit argument so the core stays deterministic and testable;
// only the boundary adapters (scheduler, HTTP edge) sample a live clock.
type Service struct {
	fetcher Fetcher
	store   Store
	opts    Options
}

// NewService creates a new Service.
func NewService(fetcher Fetcher, store Store, opts Options) *Service {
	return &Service{
		fetcher: fetcher,
		store:   store,
		opts:    opts,
	}
}

// Rebuild runs a full cycle for the 3-day window around now (yesterday,
// today, tomorrow in the provider's calendar). The three fetches are issued
// concurrently and each may independently fail; any subset succeeding is
// fine. Only when no date yields data does the cycle fail, with
// ErrDataUnavailable. The assembled board is stored and returned.
func (s *Service) Rebuild(ctx context.Context, now time.Time) (Board, error) {
	dates := s.windowDates(now)

	var wg sync.WaitGroup
	docs := make([]*DayDocument, len(dates))

	for i, date := range dates {
		i, date := i, date
		wg.Add(1)
		go func() {
			defer wg.Done()

			doc, err := s.fetcher.FetchDay(ctx, date)
			if err != nil {
				// Log and continue; partial availability is normal, e.g.
				// tomorrow before the publish cutoff.
				log.Printf("fetch failed for %s via %s: %v", date, s.fetcher.Name(), err)
				return
			}
			docs[i] = doc
		}()
	}
	wg.Wait()

	normalized := make([][]HourPrice, len(docs))
	for i, doc := range docs {
		normalized[i] = Normalize(doc, s.opts.TaxMultiplier)
	}

	series, err := Assemble(normalized...)
	if err != nil {
		return Board{}, fmt.Errorf("assembling window %v: %w", dates, err)
	}

	board := s.compose(series, now)
	s.store.SaveBoard(board)
	return board, nil
}

// RefreshView recomputes only the now-dependent parts of the latest board
// (current index, current-hour box, refresh decision) without refetching.
// The stored board is replaced in place; the series and day annotations are
// carried over untouched.
func (s *Service) RefreshView(now time.Time) (Board, error) {
	b, err := s.store.Latest()
	if err != nil {
		return Board{}, err
	}

	idx, ok := Locate(b.Series, now)
	if !ok {
		idx = -1
	}

	anns := make(map[string]Annotation, len(b.Annotations))
	for k, v := range b.Annotations {
		if k == CurrentTimeID {
			continue
		}
		anns[k] = v
	}
	if idx >= 0 {
		anns[CurrentTimeID] = currentHourBox(idx)
	}

	b.CurrentIndex = idx
	b.Annotations = anns
	b.Refresh = NextRefresh(b.Series, now, s.opts.CutoffHourUTC)
	b.GeneratedAt = now.UTC()

	if err := s.store.UpdateLatest(b); err != nil {
		// A rebuild landed between our read and write: its board is newer
		// and already carries fresh now-dependent fields, so this refresh
		// is obsolete. Hand back the winning board instead.
		if errors.Is(err, ErrCycleConflict) {
			return s.store.Latest()
		}
		return Board{}, err
	}
	return b, nil
}

// Latest delegates to the underlying store.
func (s *Service) Latest() (Board, error) {
	return s.store.Latest()
}

// History delegates to the underlying store.
func (s *Service) History(from, to time.Time) ([]Board, error) {
	return s.store.Range(from, to)
}

// DayPrices fetches and normalizes a single date on demand. Unlike Rebuild,
// fetch failures here surface to the caller.
func (s *Service) DayPrices(ctx context.Context, date string) ([]HourPrice, error) {
	doc, err := s.fetcher.FetchDay(ctx, date)
	if err != nil {
		return nil, err
	}
	return Normalize(doc, s.opts.TaxMultiplier), nil
}

// compose derives everything downstream of the series for one cycle.
func (s *Service) compose(series Series, now time.Time) Board {
	idx, ok := Locate(series, now)
	if !ok {
		idx = -1
	}
	return Board{
		CycleID:      uuid.NewString(),
		GeneratedAt:  now.UTC(),
		Series:       series,
		CurrentIndex: idx,
		Annotations:  Annotate(series, idx, s.opts.Location),
		Refresh:      NextRefresh(series, now, s.opts.CutoffHourUTC),
	}
}

func (s *Service) windowDates(now time.Time) []string {
	return []string{
		common.DateKey(now.AddDate(0, 0, -1), s.opts.Location),
		common.DateKey(now, s.opts.Location),
		common.DateKey(now.AddDate(0, 0, 1), s.opts.Location),
	}
}
