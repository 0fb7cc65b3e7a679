package scheduler

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/kasiv/weather-lookup/internal/weather"
)

// Scheduler periodically looks up configured locations so their results are
// warm in the cache before users ask for them.
type Scheduler struct {
	scheduler *gocron.Scheduler
	service   *weather.Service
	locations []weather.Location
	interval  time.Duration
}

// New creates a new Scheduler.
func New(locations []weather.Location, interval time.Duration, service *weather.Service) *Scheduler {
	s := gocron.NewScheduler(time.UTC)
	return &Scheduler{
		scheduler: s,
		service:   service,
		locations: locations,
		interval:  interval,
	}
}

// Start schedules the periodic warm job and starts the underlying scheduler.
func (s *Scheduler) Start() error {
	if len(s.locations) == 0 {
		log.Println("scheduler: no warm locations configured; nothing to schedule")
		return nil
	}

	minutes := int(s.interval.Minutes())
	if minutes <= 0 {
		minutes = 15
	}

	_, err := s.scheduler.Every(minutes).Minutes().Do(func() {
		log.Println("scheduler: warming configured locations")

		var wg sync.WaitGroup
		for _, loc := range s.locations {
			loc := loc
			wg.Add(1)
			go func() {
				defer wg.Done()

				ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
				defer cancel()

				res, err := s.service.Lookup(ctx, weather.WeatherQuery{Lat: &loc.Lat, Lon: &loc.Lon})
				if err != nil {
					log.Printf("scheduler: warm lookup failed for %.2f,%.2f: %v", loc.Lat, loc.Lon, err)
					return
				}
				if res.Source != weather.SourceProvider {
					log.Printf("scheduler: warm lookup for %.2f,%.2f degraded to %s", loc.Lat, loc.Lon, res.Source)
				}
			}()
		}
		wg.Wait()
		log.Println("scheduler: completed warm job")
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
