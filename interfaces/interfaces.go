// Package interfaces defines core abstractions for the refill core
// to improve testability, maintainability, and separation of concerns.
package interfaces

import (
	"time"

	"github.com/mediloon/refill-core/entities"
)

// DataStore defines the contract for order-history storage. It provides
// thread-safe access to per-medicine purchase histories with atomic
// replacement for zero-downtime reloads.
type DataStore interface {
	// History returns a copy of the recorded orders for one medicine
	History(medicineID string) []entities.OrderHistoryEntry

	// Medicines returns the ids of all tracked medicines in sorted order
	Medicines() []string

	// Append records one confirmed order for a medicine
	Append(medicineID string, entry entities.OrderHistoryEntry)

	// ReplaceAll atomically swaps in a complete new history set
	ReplaceAll(histories map[string][]entities.OrderHistoryEntry)

	Len() int
	GetLastUpdated() time.Time
	IsUpdating() bool
	BeginUpdate() bool
	EndUpdate()
}

// MessageParser defines the contract for turning one free-form user message
// into structured medicine requests plus a routing decision. Implementations
// must never fail the caller: malformed input degrades to a clarification
// result.
type MessageParser interface {
	Parse(message string) entities.ParseResult
}

// DepletionForecaster defines the contract for projecting when a medicine
// runs out based on its order history, and for the reminder gate on top of a
// prediction. Predict returns nil on insufficient or degenerate data.
type DepletionForecaster interface {
	Predict(medicineID string, history []entities.OrderHistoryEntry) *entities.DepletionPrediction
	PredictAll(histories map[string][]entities.OrderHistoryEntry) []entities.DepletionPrediction
	ShouldNotify(prediction *entities.DepletionPrediction) bool
}

// ReminderSink receives reminder-worthy predictions. Offer reports whether
// the reminder was accepted or suppressed (for example by a cooldown).
type ReminderSink interface {
	Offer(key string, prediction *entities.DepletionPrediction) bool
}

// HealthChecker defines the contract for reporting operational state.
type HealthChecker interface {
	HealthCheck() entities.HealthStatus
	CalculateNextSweep() time.Time
}

// HistoryValidator defines the contract for guarding caller-supplied data
// before it enters the store.
type HistoryValidator interface {
	ValidateHistoryEntry(medicineID string, entry entities.OrderHistoryEntry) error
	SanitizeMessage(message string, maxLength int) string
}
