// Package reminder delivers reorder reminders with a per-medicine cooldown so
// repeated forecast sweeps never spam the same suggestion.
package reminder

import (
	"sync"
	"time"

	"github.com/juju/ratelimit"

	"github.com/mediloon/refill-core/entities"
	"github.com/mediloon/refill-core/interfaces"
	"github.com/mediloon/refill-core/logging"
	"github.com/mediloon/refill-core/metrics"
)

// Per-medicine reminder throttling

// Throttle implements interfaces.ReminderSink. Each key gets a token bucket
// holding a single token that refills once per cooldown period, so at most
// one reminder per key per cooldown is let through.
type Throttle struct {
	cooldown time.Duration
	notify   func(key string, p *entities.DepletionPrediction)
	buckets  map[string]*ratelimit.Bucket
	mu       sync.RWMutex
	done     chan struct{}
	once     sync.Once
}

var _ interfaces.ReminderSink = (*Throttle)(nil)

// NewThrottle creates a reminder throttle. notify is invoked for every
// accepted reminder; pass nil to only record acceptance. Non-positive
// cooldowns fall back to 24h.
func NewThrottle(cooldown time.Duration, notify func(key string, p *entities.DepletionPrediction)) *Throttle {
	if cooldown <= 0 {
		cooldown = 24 * time.Hour
	}
	t := &Throttle{
		cooldown: cooldown,
		notify:   notify,
		buckets:  make(map[string]*ratelimit.Bucket),
		done:     make(chan struct{}),
	}
	t.cleanup()
	return t
}

func (t *Throttle) getBucket(key string) *ratelimit.Bucket {
	t.mu.RLock()
	bucket, exists := t.buckets[key]
	t.mu.RUnlock()

	if !exists {
		t.mu.Lock()
		if bucket, exists = t.buckets[key]; !exists {
			// One token, refilled once per cooldown
			bucket = ratelimit.NewBucket(t.cooldown, 1)
			t.buckets[key] = bucket
		}
		t.mu.Unlock()
	}

	return bucket
}

// Offer submits a prediction for delivery. It reports whether the reminder
// was emitted or suppressed by the cooldown.
func (t *Throttle) Offer(key string, prediction *entities.DepletionPrediction) bool {
	if prediction == nil {
		return false
	}

	bucket := t.getBucket(key)
	if bucket.TakeAvailable(1) < 1 {
		logging.Debug("Reminder suppressed by cooldown",
			"medicine", key,
			"reorderDate", prediction.SuggestedReorderDate.Format("2006-01-02"))
		metrics.RecordReminder("suppressed")
		return false
	}

	logging.Info("Reorder reminder",
		"medicine", key,
		"reorderDate", prediction.SuggestedReorderDate.Format("2006-01-02"),
		"quantity", prediction.SuggestedQuantity,
		"confidence", prediction.Confidence)
	metrics.RecordReminder("emitted")

	if t.notify != nil {
		t.notify(key, prediction)
	}
	return true
}

// Clean up idle keys periodically
func (t *Throttle) cleanup() {
	ticker := time.NewTicker(t.cooldown)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				t.mu.Lock()
				// Remove keys with full buckets
				for key, bucket := range t.buckets {
					if bucket.Available() == bucket.Capacity() {
						delete(t.buckets, key)
					}
				}
				t.mu.Unlock()
			case <-t.done:
				return
			}
		}
	}()
}

// Close stops the background cleanup goroutine.
func (t *Throttle) Close() {
	t.once.Do(func() { close(t.done) })
}
