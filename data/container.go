// Package data provides thread-safe storage for per-medicine order
// histories. The HistoryContainer uses an atomic pointer with copy-on-write
// updates so readers never block and bulk reloads swap in with zero
// downtime.
package data

import (
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/mediloon/refill-core/entities"
	"github.com/mediloon/refill-core/interfaces"
)

// Compile-time check to ensure HistoryContainer implements DataStore
var _ interfaces.DataStore = (*HistoryContainer)(nil)

// HistoryContainer holds order histories keyed by medicine id. Reads go
// through an atomic pointer; writers serialize on a mutex and publish a new
// map copy.
type HistoryContainer struct {
	histories   atomic.Value // map[string][]entities.OrderHistoryEntry
	lastUpdated atomic.Value // time.Time
	updating    atomic.Bool
	writeMu     sync.Mutex
}

// NewHistoryContainer creates a container with empty data
func NewHistoryContainer() *HistoryContainer {
	hc := &HistoryContainer{}
	hc.histories.Store(make(map[string][]entities.OrderHistoryEntry))
	hc.lastUpdated.Store(time.Time{})
	return hc
}

// History returns a copy of the recorded orders for one medicine, so
// callers can sort or mutate freely
func (hc *HistoryContainer) History(medicineID string) []entities.OrderHistoryEntry {
	entries, ok := hc.load()[medicineID]
	if !ok {
		return []entities.OrderHistoryEntry{}
	}

	out := make([]entities.OrderHistoryEntry, len(entries))
	copy(out, entries)
	return out
}

// Medicines returns the ids of all tracked medicines in sorted order
func (hc *HistoryContainer) Medicines() []string {
	histories := hc.load()
	ids := make([]string, 0, len(histories))
	for id := range histories {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Append records one confirmed order for a medicine
func (hc *HistoryContainer) Append(medicineID string, entry entities.OrderHistoryEntry) {
	hc.writeMu.Lock()
	defer hc.writeMu.Unlock()

	current := hc.load()
	next := make(map[string][]entities.OrderHistoryEntry, len(current)+1)
	for id, entries := range current {
		next[id] = entries
	}

	// Copy the medicine's slice before appending so published slices stay
	// immutable
	entries := make([]entities.OrderHistoryEntry, len(current[medicineID]), len(current[medicineID])+1)
	copy(entries, current[medicineID])
	next[medicineID] = append(entries, entry)

	hc.histories.Store(next)
	hc.lastUpdated.Store(time.Now())
}

// ReplaceAll atomically swaps in a complete new history set. The caller's
// map is copied, not retained.
func (hc *HistoryContainer) ReplaceAll(histories map[string][]entities.OrderHistoryEntry) {
	hc.writeMu.Lock()
	defer hc.writeMu.Unlock()

	next := make(map[string][]entities.OrderHistoryEntry, len(histories))
	for id, entries := range histories {
		copied := make([]entities.OrderHistoryEntry, len(entries))
		copy(copied, entries)
		next[id] = copied
	}

	hc.histories.Store(next)
	hc.lastUpdated.Store(time.Now())
}

// Len returns the number of tracked medicines
func (hc *HistoryContainer) Len() int {
	return len(hc.load())
}

// GetLastUpdated returns the time of the last write
func (hc *HistoryContainer) GetLastUpdated() time.Time {
	if v := hc.lastUpdated.Load(); v != nil {
		if lastUpdated, ok := v.(time.Time); ok {
			return lastUpdated
		}
	}
	return time.Time{}
}

// IsUpdating returns whether a bulk update is in progress
func (hc *HistoryContainer) IsUpdating() bool {
	return hc.updating.Load()
}

// BeginUpdate marks the start of a bulk update. Returns false if one is
// already in progress.
func (hc *HistoryContainer) BeginUpdate() bool {
	return hc.updating.CompareAndSwap(false, true)
}

// EndUpdate marks the end of a bulk update
func (hc *HistoryContainer) EndUpdate() {
	hc.updating.Store(false)
}

func (hc *HistoryContainer) load() map[string][]entities.OrderHistoryEntry {
	if v := hc.histories.Load(); v != nil {
		if histories, ok := v.(map[string][]entities.OrderHistoryEntry); ok {
			return histories
		}
	}
	return make(map[string][]entities.OrderHistoryEntry)
}
