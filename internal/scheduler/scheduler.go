// Package scheduler runs the periodic jobs: snapshot refreshes for
// tracked locations and the morning daily-summary dispatch.
package scheduler

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/skycast-io/skycast/internal/service"
	"github.com/skycast-io/skycast/internal/weather"
)

const fetchTimeout = 30 * time.Second

// Scheduler owns the gocron jobs for a fixed set of tracked locations.
type Scheduler struct {
	scheduler *gocron.Scheduler
	service   *service.Service
	locations []weather.Location

	interval time.Duration
	dailyAt  string // "HH:MM" local time for the morning summary
}

// New creates a Scheduler. interval drives the refresh job; dailyAt is
// the local wall-clock time ("07:00") for the daily summary.
func New(locations []weather.Location, interval time.Duration, dailyAt string, svc *service.Service) *Scheduler {
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.Local),
		service:   svc,
		locations: locations,
		interval:  interval,
		dailyAt:   dailyAt,
	}
}

// Start registers and starts both jobs. With no tracked locations there
// is nothing to schedule and Start is a no-op.
func (s *Scheduler) Start() error {
	if len(s.locations) == 0 {
		log.Println("scheduler: no locations configured; nothing to schedule")
		return nil
	}

	minutes := int(s.interval.Minutes())
	if minutes <= 0 {
		minutes = 15
	}

	if _, err := s.scheduler.Every(minutes).Minutes().Do(s.refreshAll); err != nil {
		return err
	}

	if _, err := s.scheduler.Every(1).Day().At(s.dailyAt).Do(s.sendDailySummaries); err != nil {
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

// refreshAll fans out one refresh per tracked location. Refreshes are
// independent and may race freely; each writes its own cache slot.
func (s *Scheduler) refreshAll() {
	log.Println("scheduler: running weather refresh job")

	var wg sync.WaitGroup
	for _, loc := range s.locations {
		loc := loc
		wg.Add(1)
		go func() {
			defer wg.Done()

			ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
			defer cancel()

			if _, err := s.service.Refresh(ctx, loc); err != nil {
				log.Printf("scheduler: refresh failed for %s: %v", loc.Key(), err)
			}
		}()
	}
	wg.Wait()

	log.Println("scheduler: completed weather refresh job")
}

// sendDailySummaries dispatches the morning digest for every tracked
// location, sequentially; there is no urgency at 07:00.
func (s *Scheduler) sendDailySummaries() {
	log.Println("scheduler: sending daily summaries")

	for _, loc := range s.locations {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		if err := s.service.SendDailySummary(ctx, loc); err != nil {
			log.Printf("scheduler: daily summary failed for %s: %v", loc.Key(), err)
		}
		cancel()
	}
}
