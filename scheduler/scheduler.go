// Package scheduler runs the periodic forecast sweep for the refill core.
// It walks every tracked medicine, recomputes its depletion prediction and
// offers the ones due for reorder to the reminder sink, coordinating with the
// data store through dependency injection.
package scheduler

import (
	"fmt"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/mediloon/refill-core/interfaces"
	"github.com/mediloon/refill-core/logging"
	"github.com/mediloon/refill-core/metrics"
)

// Scheduler runs forecast sweeps on an interval using injected dependencies
type Scheduler struct {
	dataStore  interfaces.DataStore
	forecaster interfaces.DepletionForecaster
	reminders  interfaces.ReminderSink
	sweepHours int
	scheduler  *gocron.Scheduler
	stopHealth chan struct{}
}

// NewScheduler creates a new scheduler instance with injected dependencies.
// sweepHours is the interval between forecast sweeps.
func NewScheduler(dataStore interfaces.DataStore, forecaster interfaces.DepletionForecaster, reminders interfaces.ReminderSink, sweepHours int) *Scheduler {
	if sweepHours < 1 {
		sweepHours = 6
	}
	return &Scheduler{
		dataStore:  dataStore,
		forecaster: forecaster,
		reminders:  reminders,
		sweepHours: sweepHours,
		scheduler:  gocron.NewScheduler(time.Local),
		stopHealth: make(chan struct{}),
	}
}

// Start runs an initial sweep, schedules recurring sweeps and begins health
// monitoring.
func (s *Scheduler) Start() error {
	// Initial sweep
	if err := s.SweepOnce(); err != nil {
		logging.Error("Failed to perform initial forecast sweep", "error", err)
		return fmt.Errorf("initial forecast sweep failed: %w", err)
	}

	_, err := s.scheduler.Every(s.sweepHours).Hours().Do(func() {
		if err := s.SweepOnce(); err != nil {
			logging.Error("Failed to run forecast sweep", "error", err)
		}
	})

	if err != nil {
		logging.Error("Failed to schedule forecast sweeps", "error", err)
		return fmt.Errorf("failed to schedule forecast sweeps: %w", err)
	}

	s.scheduler.StartAsync()

	s.startHealthMonitoring()

	return nil
}

// Stop stops the scheduler and health monitoring
func (s *Scheduler) Stop() {
	s.scheduler.Stop()
	select {
	case <-s.stopHealth:
	default:
		close(s.stopHealth)
	}
}

// SweepOnce recomputes predictions for every tracked medicine and offers the
// ones due for reorder to the reminder sink.
func (s *Scheduler) SweepOnce() error {
	// Prevent concurrent sweeps
	if !s.dataStore.BeginUpdate() {
		logging.Info("Sweep already in progress, skipping...")
		return nil
	}
	defer s.dataStore.EndUpdate()

	start := time.Now()
	medicines := s.dataStore.Medicines()
	metrics.TrackedMedicines.Set(float64(len(medicines)))

	predicted := 0
	notified := 0
	for _, id := range medicines {
		prediction := s.forecaster.Predict(id, s.dataStore.History(id))
		if prediction == nil {
			continue
		}
		predicted++

		if !s.forecaster.ShouldNotify(prediction) {
			continue
		}
		if s.reminders != nil && s.reminders.Offer(id, prediction) {
			notified++
		}
	}

	elapsed := time.Since(start)
	metrics.SweepDuration.Observe(elapsed.Seconds())
	logging.Info("Forecast sweep completed",
		"duration", elapsed.String(),
		"medicines", len(medicines),
		"predictions", predicted,
		"reminders", notified)

	return nil
}

// startHealthMonitoring watches for a store that has gone stale
func (s *Scheduler) startHealthMonitoring() {
	go func() {
		ticker := time.NewTicker(1 * time.Hour)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				lastUpdate := s.dataStore.GetLastUpdated()
				staleAfter := time.Duration(s.sweepHours+1) * time.Hour
				if !lastUpdate.IsZero() && time.Since(lastUpdate) > staleAfter {
					logging.Warn("Order history hasn't changed since the last sweep window",
						"last_updated", lastUpdate.Format(time.RFC3339))
				}
			case <-s.stopHealth:
				return
			}
		}
	}()
}
