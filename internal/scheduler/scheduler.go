package scheduler

import (
	"context"
	"log"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/okarhu/daylight-api/internal/gazetteer"
)

// Scheduler periodically rebuilds the gazetteer index from the artifact.
// Each run builds a complete snapshot and publishes it in one swap, so
// searches never see a partially loaded index.
type Scheduler struct {
	scheduler *gocron.Scheduler
	loader    *gazetteer.Loader
	index     *gazetteer.Index
	interval  time.Duration
}

// New creates a new Scheduler.
func New(loader *gazetteer.Loader, index *gazetteer.Index, interval time.Duration) *Scheduler {
	s := gocron.NewScheduler(time.UTC)
	return &Scheduler{
		scheduler: s,
		loader:    loader,
		index:     index,
		interval:  interval,
	}
}

// Start schedules the periodic reload and starts the underlying scheduler.
// A zero or negative interval disables reloading.
func (s *Scheduler) Start() error {
	if s.interval <= 0 {
		log.Println("scheduler: gazetteer reload disabled")
		return nil
	}

	minutes := int(s.interval.Minutes())
	if minutes <= 0 {
		minutes = 60
	}

	_, err := s.scheduler.Every(minutes).Minutes().Do(func() {
		log.Println("scheduler: running gazetteer reload job")

		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()

		cities, err := s.loader.Load(ctx)
		if err != nil {
			// Keep serving the last published snapshot.
			log.Printf("scheduler: gazetteer reload failed: %v", err)
			return
		}

		s.index.Replace(cities)
		log.Printf("scheduler: gazetteer reload completed, %d records", len(cities))
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
