// Package health reports the operational state of the refill core.
package health

import (
	"math"
	"time"

	"github.com/mediloon/refill-core/entities"
	"github.com/mediloon/refill-core/interfaces"
)

// HealthCheckerImpl implements the interfaces.HealthChecker interface
type HealthCheckerImpl struct {
	dataStore  interfaces.DataStore
	sweepHours int
}

// NewHealthChecker creates a new health checker with injected dependencies
func NewHealthChecker(dataStore interfaces.DataStore, sweepHours int) interfaces.HealthChecker {
	if sweepHours < 1 {
		sweepHours = 6
	}
	return &HealthCheckerImpl{
		dataStore:  dataStore,
		sweepHours: sweepHours,
	}
}

// HealthCheck classifies the store as healthy, degraded or empty. A store
// whose last change predates two sweep windows counts as degraded: either
// sweeps stopped running or nothing is feeding the history.
func (h *HealthCheckerImpl) HealthCheck() entities.HealthStatus {
	medicines := h.dataStore.Medicines()
	lastUpdate := h.dataStore.GetLastUpdated()
	isSweeping := h.dataStore.IsUpdating()

	dataAge := time.Since(lastUpdate)

	var status string
	switch {
	case len(medicines) == 0:
		status = "empty"
	case dataAge > 2*time.Duration(h.sweepHours)*time.Hour:
		status = "degraded"
	default:
		status = "healthy"
	}

	orders := 0
	for _, id := range medicines {
		orders += len(h.dataStore.History(id))
	}

	return entities.HealthStatus{
		Status:       status,
		Medicines:    len(medicines),
		Orders:       orders,
		LastUpdate:   lastUpdate,
		DataAgeHours: math.Round(dataAge.Hours()*10) / 10,
		IsSweeping:   isSweeping,
		NextSweep:    h.CalculateNextSweep(),
	}
}

// CalculateNextSweep returns the next sweep time implied by the last store
// change and the sweep interval.
func (h *HealthCheckerImpl) CalculateNextSweep() time.Time {
	now := time.Now()
	interval := time.Duration(h.sweepHours) * time.Hour

	lastUpdate := h.dataStore.GetLastUpdated()
	if lastUpdate.IsZero() {
		return now.Add(interval)
	}

	next := lastUpdate.Add(interval)
	for !next.After(now) {
		next = next.Add(interval)
	}
	return next
}
