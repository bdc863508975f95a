package health

import (
	"testing"
	"time"

	"github.com/mediloon/refill-core/data"
	"github.com/mediloon/refill-core/entities"
)

func seedOrders(store *data.HistoryContainer, id string, count int) {
	for i := 0; i < count; i++ {
		store.Append(id, entities.OrderHistoryEntry{
			OrderDate:    time.Now().AddDate(0, 0, -30*(count-i)),
			Quantity:     60,
			MedicineName: id,
		})
	}
}

func TestHealthCheckEmptyStore(t *testing.T) {
	checker := NewHealthChecker(data.NewHistoryContainer(), 6)

	status := checker.HealthCheck()
	if status.Status != "empty" {
		t.Errorf("status = %q, want %q", status.Status, "empty")
	}
	if status.Medicines != 0 || status.Orders != 0 {
		t.Errorf("empty store reported %d medicines, %d orders", status.Medicines, status.Orders)
	}
}

func TestHealthCheckHealthyStore(t *testing.T) {
	store := data.NewHistoryContainer()
	seedOrders(store, "metformin", 3)
	seedOrders(store, "aspirin", 2)

	checker := NewHealthChecker(store, 6)
	status := checker.HealthCheck()

	if status.Status != "healthy" {
		t.Errorf("status = %q, want %q", status.Status, "healthy")
	}
	if status.Medicines != 2 {
		t.Errorf("medicines = %d, want 2", status.Medicines)
	}
	if status.Orders != 5 {
		t.Errorf("orders = %d, want 5", status.Orders)
	}
	if status.DataAgeHours > 1 {
		t.Errorf("data age = %v hours, want recent", status.DataAgeHours)
	}
	if status.IsSweeping {
		t.Error("idle store should not report a sweep in progress")
	}
}

func TestHealthCheckReportsSweepInProgress(t *testing.T) {
	store := data.NewHistoryContainer()
	seedOrders(store, "metformin", 3)
	if !store.BeginUpdate() {
		t.Fatal("BeginUpdate() should succeed on an idle store")
	}
	defer store.EndUpdate()

	checker := NewHealthChecker(store, 6)
	if !checker.HealthCheck().IsSweeping {
		t.Error("HealthCheck() should report the sweep in progress")
	}
}

func TestCalculateNextSweep(t *testing.T) {
	store := data.NewHistoryContainer()
	seedOrders(store, "metformin", 1)

	checker := NewHealthChecker(store, 6)
	next := checker.CalculateNextSweep()

	now := time.Now()
	if !next.After(now) {
		t.Errorf("next sweep %v should be in the future", next)
	}
	if next.Sub(now) > 6*time.Hour {
		t.Errorf("next sweep %v should be within one interval of now", next)
	}
}

func TestNewHealthCheckerDefaultsSweepHours(t *testing.T) {
	checker := NewHealthChecker(data.NewHistoryContainer(), 0)

	next := checker.CalculateNextSweep()
	if until := time.Until(next); until < 5*time.Hour || until > 7*time.Hour {
		t.Errorf("default interval should be 6 hours, next sweep in %v", until)
	}
}
