package forecaster

import (
	"math"
	"time"

	"github.com/mediloon/refill-core/entities"
)

// consumptionRate is the mean daily consumption over the history: for each
// consecutive order pair, the quantity bought at the earlier order is
// assumed consumed over the interval leading to the next one. The indexing
// is deliberate; attributing the interval to the later quantity changes the
// meaning of the rate entirely. Same-day duplicates and non-positive rates
// are discarded. Returns 0 when no valid interval remains.
func consumptionRate(sorted []entities.OrderHistoryEntry) float64 {
	if len(sorted) < 2 {
		return 0
	}

	sum := 0.0
	valid := 0
	for i := 1; i < len(sorted); i++ {
		days := daysBetween(sorted[i-1].OrderDate, sorted[i].OrderDate)
		if days <= 0 {
			continue
		}
		rate := float64(sorted[i-1].Quantity) / days
		if rate <= 0 {
			continue
		}
		sum += rate
		valid++
	}

	if valid == 0 {
		return 0
	}
	return sum / float64(valid)
}

// intervalConfidence scores ordering regularity in [0,1]: the coefficient of
// variation of the inter-order intervals, inverted. A perfectly steady
// cadence scores 1.0. With fewer than two intervals variability is
// undefined and the neutral 0.5 is returned.
func intervalConfidence(sorted []entities.OrderHistoryEntry) float64 {
	intervals := make([]float64, 0, len(sorted)-1)
	for i := 1; i < len(sorted); i++ {
		intervals = append(intervals, daysBetween(sorted[i-1].OrderDate, sorted[i].OrderDate))
	}

	if len(intervals) < 2 {
		return 0.5
	}

	mean := 0.0
	for _, d := range intervals {
		mean += d
	}
	mean /= float64(len(intervals))

	if mean <= 0 {
		return 0.5
	}

	// Sample standard deviation
	variance := 0.0
	for _, d := range intervals {
		variance += (d - mean) * (d - mean)
	}
	variance /= float64(len(intervals) - 1)

	cv := math.Sqrt(variance) / mean
	return math.Max(0.0, math.Min(1.0, 1.0-cv))
}

// daysBetween returns the whole-day distance between two calendar dates
func daysBetween(from, to time.Time) float64 {
	return dateOnly(to).Sub(dateOnly(from)).Hours() / 24
}
