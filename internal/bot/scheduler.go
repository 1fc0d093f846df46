package bot

import (
	"fmt"
	"sync"

	"github.com/robfig/cron/v3"

	"github.com/minhokang/schedbot/internal/storage"
	"github.com/minhokang/schedbot/pkg/models"
)

// Scheduler drives the scheduled daily-report notifications. It owns a cron
// instance built from the current settings; settings mutations call Rebuild
// to swap in a fresh schedule instead of reconfiguring in place.
type Scheduler struct {
	settings storage.SettingsManager
	notify   func()

	mu   sync.Mutex
	cron *cron.Cron
}

// NewScheduler creates a Scheduler that invokes notify on every trigger.
func NewScheduler(settings storage.SettingsManager, notify func()) *Scheduler {
	return &Scheduler{settings: settings, notify: notify}
}

// cronSpecs returns the cron expressions for the given settings: one
// "M H * * *" entry per notification time, or a single minutely entry in
// test mode.
func cronSpecs(settings *models.Settings) []string {
	if settings.TestMode {
		return []string{"@every 1m"}
	}
	times := storage.ParseNotificationTimes(settings)
	specs := make([]string, 0, len(times))
	for _, t := range times {
		specs = append(specs, fmt.Sprintf("%d %d * * *", t.Minute, t.Hour))
	}
	return specs
}

// Start loads the current settings and starts a cron schedule in the
// configured timezone. Starting an already-started scheduler rebuilds it.
func (s *Scheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.startLocked()
}

func (s *Scheduler) startLocked() error {
	settings, err := s.settings.Load()
	if err != nil {
		return fmt.Errorf("loading settings for scheduler: %w", err)
	}

	c := cron.New(cron.WithLocation(storage.Location(settings)))
	for _, spec := range cronSpecs(settings) {
		if _, err := c.AddFunc(spec, s.notify); err != nil {
			return fmt.Errorf("adding cron entry %q: %w", spec, err)
		}
	}

	if s.cron != nil {
		s.cron.Stop()
	}
	s.cron = c
	s.cron.Start()
	return nil
}

// Rebuild stops the running schedule and starts a new one from the current
// settings. Called after every settings mutation.
func (s *Scheduler) Rebuild() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.startLocked()
}

// Stop halts the running schedule. Safe to call on a never-started
// scheduler.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cron != nil {
		s.cron.Stop()
		s.cron = nil
	}
}
