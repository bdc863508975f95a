// Package metrics provides Prometheus metrics collection for the refill core.
// It exports counters for parsed messages, extracted requests, predictions and
// reminders, a histogram for forecast sweep latency, and a gauge for the
// number of tracked medicines.
//
// All metrics are automatically registered with the Prometheus default registry
// during package initialization.
package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	MessagesParsedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "intake_messages_parsed_total",
			Help: "Total parsed intake messages by resulting action",
		},
		[]string{"action"},
	)

	RequestsExtractedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "intake_requests_extracted_total",
			Help: "Total medicine requests extracted from intake messages",
		},
	)

	PredictionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "forecast_predictions_total",
			Help: "Total depletion predictions by confidence level",
		},
		[]string{"confidence"},
	)

	RemindersTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reminders_total",
			Help: "Total reorder reminders by outcome",
		},
		[]string{"outcome"},
	)

	SweepDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "forecast_sweep_duration_seconds",
			Help:    "Forecast sweep latency",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		},
	)

	TrackedMedicines = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "tracked_medicines_total",
			Help: "Number of medicines with stored order history",
		},
	)
)

func init() {
	prometheus.MustRegister(MessagesParsedTotal)
	prometheus.MustRegister(RequestsExtractedTotal)
	prometheus.MustRegister(PredictionsTotal)
	prometheus.MustRegister(RemindersTotal)
	prometheus.MustRegister(SweepDuration)
	prometheus.MustRegister(TrackedMedicines)
}

// RecordParse records one parsed message and its extracted request count.
func RecordParse(action string, requests int) {
	MessagesParsedTotal.WithLabelValues(action).Inc()
	if requests > 0 {
		RequestsExtractedTotal.Add(float64(requests))
	}
}

// RecordPrediction records one depletion prediction by confidence level.
func RecordPrediction(confidence string) {
	PredictionsTotal.WithLabelValues(confidence).Inc()
}

// RecordReminder records one reminder outcome ("emitted" or "suppressed").
func RecordReminder(outcome string) {
	RemindersTotal.WithLabelValues(outcome).Inc()
}
