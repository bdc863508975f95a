package data

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/mediloon/refill-core/entities"
)

func entry(day, quantity int) entities.OrderHistoryEntry {
	return entities.OrderHistoryEntry{
		OrderDate: time.Date(2026, 1, day, 0, 0, 0, 0, time.UTC),
		Quantity:  quantity,
	}
}

func TestNewHistoryContainerIsEmpty(t *testing.T) {
	hc := NewHistoryContainer()

	if hc.Len() != 0 {
		t.Errorf("Expected empty container, got %d medicines", hc.Len())
	}
	if got := hc.History("metformin"); len(got) != 0 {
		t.Errorf("Expected empty history, got %d entries", len(got))
	}
	if got := hc.Medicines(); len(got) != 0 {
		t.Errorf("Expected no medicines, got %v", got)
	}
	if !hc.GetLastUpdated().IsZero() {
		t.Error("Expected zero last-updated time")
	}
}

func TestAppendAndHistory(t *testing.T) {
	hc := NewHistoryContainer()

	hc.Append("metformin", entry(1, 60))
	hc.Append("metformin", entry(31, 60))
	hc.Append("aspirin", entry(10, 30))

	if hc.Len() != 2 {
		t.Errorf("Expected 2 medicines, got %d", hc.Len())
	}

	history := hc.History("metformin")
	if len(history) != 2 {
		t.Fatalf("Expected 2 entries, got %d", len(history))
	}
	if history[0].Quantity != 60 {
		t.Errorf("Expected quantity 60, got %d", history[0].Quantity)
	}

	medicines := hc.Medicines()
	if len(medicines) != 2 || medicines[0] != "aspirin" || medicines[1] != "metformin" {
		t.Errorf("Expected sorted ids [aspirin metformin], got %v", medicines)
	}

	if hc.GetLastUpdated().IsZero() {
		t.Error("Expected last-updated to be set after append")
	}
}

func TestHistoryReturnsCopy(t *testing.T) {
	hc := NewHistoryContainer()
	hc.Append("metformin", entry(1, 60))

	history := hc.History("metformin")
	history[0].Quantity = 999

	if got := hc.History("metformin")[0].Quantity; got != 60 {
		t.Errorf("Stored entry was mutated through the returned slice: %d", got)
	}
}

func TestReplaceAll(t *testing.T) {
	hc := NewHistoryContainer()
	hc.Append("old", entry(1, 10))

	source := map[string][]entities.OrderHistoryEntry{
		"metformin": {entry(1, 60), entry(31, 60)},
		"aspirin":   {entry(5, 30)},
	}
	hc.ReplaceAll(source)

	if hc.Len() != 2 {
		t.Errorf("Expected 2 medicines after replace, got %d", hc.Len())
	}
	if len(hc.History("old")) != 0 {
		t.Error("Expected old medicine to be gone after replace")
	}

	// The container must not retain the caller's slices
	source["metformin"][0].Quantity = 999
	if got := hc.History("metformin")[0].Quantity; got != 60 {
		t.Errorf("Container retained the caller's slice: %d", got)
	}
}

func TestBeginUpdateGate(t *testing.T) {
	hc := NewHistoryContainer()

	if !hc.BeginUpdate() {
		t.Fatal("First BeginUpdate should succeed")
	}
	if hc.BeginUpdate() {
		t.Error("Second BeginUpdate should fail while updating")
	}
	if !hc.IsUpdating() {
		t.Error("IsUpdating should be true during an update")
	}

	hc.EndUpdate()
	if hc.IsUpdating() {
		t.Error("IsUpdating should be false after EndUpdate")
	}
	if !hc.BeginUpdate() {
		t.Error("BeginUpdate should succeed after EndUpdate")
	}
	hc.EndUpdate()
}

func TestConcurrentAppendsAndReads(t *testing.T) {
	hc := NewHistoryContainer()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(2)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 20; j++ {
				hc.Append(fmt.Sprintf("med-%d", n%3), entry(j%28+1, 30))
			}
		}(i)
		go func() {
			defer wg.Done()
			for j := 0; j < 20; j++ {
				_ = hc.History("med-0")
				_ = hc.Medicines()
			}
		}()
	}
	wg.Wait()

	total := 0
	for _, id := range hc.Medicines() {
		total += len(hc.History(id))
	}
	if total != 200 {
		t.Errorf("Expected 200 entries across medicines, got %d", total)
	}
}
