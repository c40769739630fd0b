package scheduler

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/go-co-op/gocron"

	"spotboard/internal/price"
	"spotboard/internal/store"
)

// Scheduler is the thin clock-sampling adapter around the pure core. It runs
// two cadences: a full rebuild that refetches the 3-day window (and so
// notices when tomorrow's prices have been published), and a cheap view
// refresh that keeps the current-hour highlight aligned as "now" crosses
// hour boundaries.
type Scheduler struct {
	scheduler    *gocron.Scheduler
	service      *price.Service
	rebuildEvery time.Duration
	viewEvery    time.Duration
}

// New creates a new Scheduler.
func New(service *price.Service, rebuildEvery, viewEvery time.Duration) *Scheduler {
	s := gocron.NewScheduler(time.UTC)
	return &Scheduler{
		scheduler:    s,
		service:      service,
		rebuildEvery: rebuildEvery,
		viewEvery:    viewEvery,
	}
}

// Start schedules both jobs and starts the underlying scheduler.
func (s *Scheduler) Start() error {
	rebuildMinutes := int(s.rebuildEvery.Minutes())
	if rebuildMinutes <= 0 {
		rebuildMinutes = 15
	}
	viewMinutes := int(s.viewEvery.Minutes())
	if viewMinutes <= 0 {
		viewMinutes = 1
	}

	_, err := s.scheduler.Every(rebuildMinutes).Minutes().Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if _, err := s.service.Rebuild(ctx, time.Now()); err != nil {
			if errors.Is(err, price.ErrDataUnavailable) {
				// Fatal to this cycle only; the next scheduled run retries.
				log.Printf("ERROR: rebuild produced no data: %v", err)
				return
			}
			log.Printf("ERROR: rebuild failed: %v", err)
		}
	})
	if err != nil {
		return err
	}

	_, err = s.scheduler.Every(viewMinutes).Minutes().Do(func() {
		if _, err := s.service.RefreshView(time.Now()); err != nil && !errors.Is(err, store.ErrNotFound) {
			log.Printf("ERROR: view refresh failed: %v", err)
		}
	})
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	return nil
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
