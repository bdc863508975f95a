// Package forecaster projects when a medicine will run out based on its
// purchase history. Predictions are recomputed from the full history on
// every call and carry a confidence level derived from how regular the
// ordering cadence has been.
package forecaster

import (
	"math"
	"sort"
	"time"

	"github.com/mediloon/refill-core/entities"
	"github.com/mediloon/refill-core/interfaces"
	"github.com/mediloon/refill-core/logging"
	"github.com/mediloon/refill-core/metrics"
)

// Compile-time check to ensure Forecaster implements DepletionForecaster
var _ interfaces.DepletionForecaster = (*Forecaster)(nil)

// Options configures a Forecaster. Zero values fall back to the defaults
// below.
type Options struct {
	MinOrders               int     // Minimum orders before predicting (default 3)
	HighConfidenceThreshold float64 // Score at or above which confidence is high (default 0.7)
	ReorderLeadDays         int     // Days before depletion to suggest reordering (default 7)
	NotifyWindowDays        int     // Reminder window before depletion (default 7)

	// Now overrides the clock, for tests. Defaults to time.Now.
	Now func() time.Time
}

// Forecaster predicts medicine depletion from order history
type Forecaster struct {
	minOrders        int
	highThreshold    float64
	reorderLeadDays  int
	notifyWindowDays int
	now              func() time.Time
}

// New creates a forecaster with the given options
func New(opts Options) *Forecaster {
	if opts.MinOrders < 2 {
		opts.MinOrders = 3
	}
	if opts.HighConfidenceThreshold <= 0 || opts.HighConfidenceThreshold > 1 {
		opts.HighConfidenceThreshold = 0.7
	}
	if opts.ReorderLeadDays <= 0 {
		opts.ReorderLeadDays = 7
	}
	if opts.NotifyWindowDays <= 0 {
		opts.NotifyWindowDays = 7
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Forecaster{
		minOrders:        opts.MinOrders,
		highThreshold:    opts.HighConfidenceThreshold,
		reorderLeadDays:  opts.ReorderLeadDays,
		notifyWindowDays: opts.NotifyWindowDays,
		now:              opts.Now,
	}
}

// Predict projects the depletion date for one medicine from its order
// history. The caller's slice is not mutated; entries may arrive in any
// order. Returns nil when the history is too short or the consumption rate
// is degenerate. Fractional depletion offsets round to the nearest day so
// results are reproducible.
func (f *Forecaster) Predict(medicineID string, history []entities.OrderHistoryEntry) (prediction *entities.DepletionPrediction) {
	defer func() {
		if r := recover(); r != nil {
			logging.Error("Forecaster recovered from panic", "medicine_id", medicineID, "panic", r)
			prediction = nil
		}
	}()

	if len(history) < f.minOrders {
		logging.Debug("Insufficient data for prediction",
			"medicine_id", medicineID,
			"orders", len(history),
			"min_orders", f.minOrders,
		)
		return nil
	}

	sorted := make([]entities.OrderHistoryEntry, len(history))
	copy(sorted, history)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].OrderDate.Before(sorted[j].OrderDate)
	})

	rate := consumptionRate(sorted)
	if rate <= 0 {
		logging.Warn("Invalid consumption rate calculated", "medicine_id", medicineID)
		return nil
	}

	last := sorted[len(sorted)-1]
	daysToDeplete := float64(last.Quantity) / rate
	depletionDate := dateOnly(last.OrderDate).AddDate(0, 0, int(math.Round(daysToDeplete)))

	today := dateOnly(f.now())
	reorderDate := depletionDate.AddDate(0, 0, -f.reorderLeadDays)
	if reorderDate.Before(today) {
		reorderDate = today
	}

	score := intervalConfidence(sorted)
	level := f.confidenceLevel(score)
	metrics.RecordPrediction(string(level))

	return &entities.DepletionPrediction{
		MedicineID:             medicineID,
		MedicineName:           last.MedicineName,
		AverageConsumptionRate: math.Round(rate*100) / 100,
		LastOrderDate:          dateOnly(last.OrderDate),
		LastOrderQuantity:      last.Quantity,
		PredictedDepletionDate: depletionDate,
		SuggestedReorderDate:   reorderDate,
		SuggestedQuantity:      suggestedQuantity(sorted),
		Confidence:             level,
		ConfidenceScore:        math.Round(score*100) / 100,
	}
}

// PredictAll runs Predict for every medicine in the map, skipping the ones
// without enough data. Each medicine is independent.
func (f *Forecaster) PredictAll(histories map[string][]entities.OrderHistoryEntry) []entities.DepletionPrediction {
	predictions := make([]entities.DepletionPrediction, 0, len(histories))

	ids := make([]string, 0, len(histories))
	for id := range histories {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		if p := f.Predict(id, histories[id]); p != nil {
			predictions = append(predictions, *p)
		}
	}

	logging.Info("Generated depletion predictions", "medicines", len(histories), "predictions", len(predictions))
	return predictions
}

// ShouldNotify reports whether the user should be reminded about an upcoming
// depletion: only when it falls within the notification window from today
// AND the prediction confidence is high. Partial matches never notify.
func (f *Forecaster) ShouldNotify(prediction *entities.DepletionPrediction) bool {
	if prediction == nil {
		return false
	}

	today := dateOnly(f.now())
	daysUntil := int(math.Round(prediction.PredictedDepletionDate.Sub(today).Hours() / 24))

	return daysUntil >= 0 &&
		daysUntil <= f.notifyWindowDays &&
		prediction.Confidence == entities.ConfidenceHigh
}

// confidenceLevel maps a [0,1] score to a confidence level
func (f *Forecaster) confidenceLevel(score float64) entities.ConfidenceLevel {
	switch {
	case score >= f.highThreshold:
		return entities.ConfidenceHigh
	case score >= 0.5:
		return entities.ConfidenceMedium
	default:
		return entities.ConfidenceLow
	}
}

// suggestedQuantity is the mean of the last three order quantities (fewer if
// the history is shorter), rounded to the nearest integer
func suggestedQuantity(sorted []entities.OrderHistoryEntry) int {
	recent := sorted
	if len(recent) > 3 {
		recent = recent[len(recent)-3:]
	}

	sum := 0
	for _, e := range recent {
		sum += e.Quantity
	}
	return int(math.Round(float64(sum) / float64(len(recent))))
}

// dateOnly truncates a timestamp to its calendar date in UTC
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
