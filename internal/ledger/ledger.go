// Package ledger implements the in-memory cost entry cache and the
// aggregation that derives monthly totals from it.
package ledger

import (
	"sync"

	"github.com/moneta-app/backend/internal/models"
	"github.com/moneta-app/backend/internal/types"
	"github.com/shopspring/decimal"
)

// Ledger caches the cost entries of the currently selected month.
//
// The collection is owned exclusively by the sync coordinator; everything
// else only ever sees snapshots. Entries keep their insertion order because
// the category rollup breaks ties by first-seen order.
type Ledger struct {
	mu      sync.RWMutex
	entries []models.CostEntry
}

// New returns an empty ledger.
func New() *Ledger {
	return &Ledger{}
}

// Snapshot returns a copy of all cached entries. The copy is safe to keep,
// the ledger never modifies handed out snapshots.
func (l *Ledger) Snapshot() []models.CostEntry {
	l.mu.RLock()
	defer l.mu.RUnlock()

	entries := make([]models.CostEntry, len(l.entries))
	copy(entries, l.entries)
	return entries
}

// Replace swaps the cached collection wholesale, used when a month load
// returns fresh data from the costs API.
func (l *Ledger) Replace(entries []models.CostEntry) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.entries = make([]models.CostEntry, len(entries))
	copy(l.entries, entries)
}

// Append adds an entry to the cache.
func (l *Ledger) Append(entry models.CostEntry) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.entries = append(l.entries, entry)
}

// Get returns the cached entry with the ID.
func (l *Ledger) Get(id string) (models.CostEntry, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	for _, entry := range l.entries {
		if entry.ID == id {
			return entry, true
		}
	}

	return models.CostEntry{}, false
}

// SetOverride patches the override of one entry for one month. A nil value
// removes the override. It reports whether an entry with the ID was cached.
func (l *Ledger) SetOverride(id string, month types.Month, value *decimal.Decimal) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	for i, entry := range l.entries {
		if entry.ID == id {
			l.entries[i] = entry.WithOverride(month, value)
			return true
		}
	}

	return false
}

// Remove deletes the entry with the ID from the cache and reports whether
// it was cached. Removed entries only come back through a fresh month load.
func (l *Ledger) Remove(id string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	for i, entry := range l.entries {
		if entry.ID == id {
			l.entries = append(l.entries[:i], l.entries[i+1:]...)
			return true
		}
	}

	return false
}

// Len returns the number of cached entries.
func (l *Ledger) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return len(l.entries)
}
