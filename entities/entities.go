// Package entities defines the shared data types exchanged between the order
// intake parser, the depletion forecaster and their consumers.
package entities

import "time"

// NextAction values returned in a ParseResult.
const (
	ActionGreet      = "greet"
	ActionConfirm    = "confirm"
	ActionAskDetails = "ask_details"
)

// Medicine forms recognized by the intake parser.
const (
	FormTablet    = "tablet"
	FormCapsule   = "capsule"
	FormSyrup     = "syrup"
	FormInjection = "injection"
	FormCream     = "cream"
	FormDrops     = "drops"
	FormInhaler   = "inhaler"
	FormPatch     = "patch"
)

// MedicineRequest is a single structured medicine request extracted from a
// free-form user message. Name holds the canonical lowercase identifier when
// the alias table matched, otherwise the lowercased heuristic token.
type MedicineRequest struct {
	Name             string  `json:"name"`
	Dosage           string  `json:"dosage,omitempty"`
	Quantity         int     `json:"quantity"`
	QuantityExplicit bool    `json:"quantity_explicit"`
	Form             string  `json:"form"`
	Confidence       float64 `json:"confidence"`
}

// ParseResult is the full outcome of parsing one user message. It is
// constructed fresh per message and never mutated afterwards.
type ParseResult struct {
	Medicines             []MedicineRequest `json:"medicines"`
	RequiresClarification bool              `json:"requires_clarification"`
	NextAction            string            `json:"next_action"`
	Confidence            float64           `json:"confidence"`
	Response              string            `json:"response"`
}

// OrderHistoryEntry is one historical purchase of a medicine. The forecaster
// accepts entries in any order and sorts internally.
type OrderHistoryEntry struct {
	OrderDate    time.Time `json:"order_date"`
	Quantity     int       `json:"quantity"`
	MedicineName string    `json:"medicine_name,omitempty"`
}

// ConfidenceLevel classifies how much trust a depletion prediction deserves.
type ConfidenceLevel string

const (
	ConfidenceLow    ConfidenceLevel = "low"
	ConfidenceMedium ConfidenceLevel = "medium"
	ConfidenceHigh   ConfidenceLevel = "high"
)

// DepletionPrediction is the forecaster output for one medicine. It is
// recomputed from the full history on every call, there is no incremental
// update path.
type DepletionPrediction struct {
	MedicineID             string          `json:"medicine_id"`
	MedicineName           string          `json:"medicine_name,omitempty"`
	AverageConsumptionRate float64         `json:"average_consumption_rate"`
	LastOrderDate          time.Time       `json:"last_order_date"`
	LastOrderQuantity      int             `json:"last_order_quantity"`
	PredictedDepletionDate time.Time       `json:"predicted_depletion_date"`
	SuggestedReorderDate   time.Time       `json:"suggested_reorder_date"`
	SuggestedQuantity      int             `json:"suggested_quantity"`
	Confidence             ConfidenceLevel `json:"confidence"`
	ConfidenceScore        float64         `json:"confidence_score"`
}

// HealthStatus is a point-in-time snapshot of store and sweep health.
type HealthStatus struct {
	Status       string    `json:"status"`
	Medicines    int       `json:"medicines"`
	Orders       int       `json:"orders"`
	LastUpdate   time.Time `json:"last_update"`
	DataAgeHours float64   `json:"data_age_hours"`
	IsSweeping   bool      `json:"is_sweeping"`
	NextSweep    time.Time `json:"next_sweep"`
}
