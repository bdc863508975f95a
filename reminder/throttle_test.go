package reminder

import (
	"testing"
	"time"

	"github.com/mediloon/refill-core/entities"
)

func testPrediction(id string) *entities.DepletionPrediction {
	return &entities.DepletionPrediction{
		MedicineID:           id,
		MedicineName:         id,
		SuggestedReorderDate: time.Date(2026, 4, 24, 0, 0, 0, 0, time.UTC),
		SuggestedQuantity:    60,
		Confidence:           entities.ConfidenceHigh,
	}
}

func TestOfferEmitsThenSuppresses(t *testing.T) {
	throttle := NewThrottle(time.Hour, nil)
	defer throttle.Close()

	if !throttle.Offer("metformin", testPrediction("metformin")) {
		t.Error("first offer should be emitted")
	}
	if throttle.Offer("metformin", testPrediction("metformin")) {
		t.Error("second offer within cooldown should be suppressed")
	}
}

func TestOfferIndependentKeys(t *testing.T) {
	throttle := NewThrottle(time.Hour, nil)
	defer throttle.Close()

	if !throttle.Offer("metformin", testPrediction("metformin")) {
		t.Error("first key should be emitted")
	}
	if !throttle.Offer("aspirin", testPrediction("aspirin")) {
		t.Error("second key should not share the first key's cooldown")
	}
}

func TestOfferAfterCooldown(t *testing.T) {
	throttle := NewThrottle(20*time.Millisecond, nil)
	defer throttle.Close()

	if !throttle.Offer("metformin", testPrediction("metformin")) {
		t.Error("first offer should be emitted")
	}
	if throttle.Offer("metformin", testPrediction("metformin")) {
		t.Error("immediate second offer should be suppressed")
	}

	time.Sleep(50 * time.Millisecond)

	if !throttle.Offer("metformin", testPrediction("metformin")) {
		t.Error("offer after cooldown should be emitted")
	}
}

func TestNewThrottleDefaultsCooldown(t *testing.T) {
	throttle := NewThrottle(0, nil)
	defer throttle.Close()

	if throttle.cooldown != 24*time.Hour {
		t.Errorf("cooldown = %v, want default 24h", throttle.cooldown)
	}
	if !throttle.Offer("metformin", testPrediction("metformin")) {
		t.Error("first offer should be emitted")
	}
	if throttle.Offer("metformin", testPrediction("metformin")) {
		t.Error("second offer within the default cooldown should be suppressed")
	}
}

func TestOfferNilPrediction(t *testing.T) {
	throttle := NewThrottle(time.Hour, nil)
	defer throttle.Close()

	if throttle.Offer("metformin", nil) {
		t.Error("nil prediction should never be emitted")
	}
}

func TestNotifyCallback(t *testing.T) {
	var gotKey string
	var gotPrediction *entities.DepletionPrediction
	throttle := NewThrottle(time.Hour, func(key string, p *entities.DepletionPrediction) {
		gotKey = key
		gotPrediction = p
	})
	defer throttle.Close()

	want := testPrediction("metformin")
	throttle.Offer("metformin", want)

	if gotKey != "metformin" {
		t.Errorf("notify key = %q, want %q", gotKey, "metformin")
	}
	if gotPrediction != want {
		t.Error("notify should receive the offered prediction")
	}

	// Suppressed offers must not reach the callback
	gotKey = ""
	throttle.Offer("metformin", want)
	if gotKey != "" {
		t.Error("suppressed offer should not invoke notify")
	}
}

func TestConcurrentOffers(t *testing.T) {
	throttle := NewThrottle(time.Hour, nil)
	defer throttle.Close()

	emitted := make(chan bool, 20)
	for i := 0; i < 20; i++ {
		go func() {
			emitted <- throttle.Offer("metformin", testPrediction("metformin"))
		}()
	}

	count := 0
	for i := 0; i < 20; i++ {
		if <-emitted {
			count++
		}
	}
	if count != 1 {
		t.Errorf("exactly one concurrent offer should be emitted, got %d", count)
	}
}
