package memory

import (
	"sort"

	"github.com/jakesmtg/cardbox/pkg/domain/entities"
	"github.com/jakesmtg/cardbox/pkg/domain/repositories"
)

// Ledger is an in-memory ledger of card entries keyed by id. It is the
// working representation of one persisted ledger document; a run owns
// it exclusively, so no locking is needed.
type Ledger struct {
	entries map[entities.CardID]*entities.CardEntry
}

// NewLedger creates an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{
		entries: make(map[entities.CardID]*entities.CardEntry),
	}
}

// FromEntries creates a ledger over the given entries, keyed by entry id.
func FromEntries(entries map[entities.CardID]*entities.CardEntry) *Ledger {
	if entries == nil {
		entries = make(map[entities.CardID]*entities.CardEntry)
	}
	return &Ledger{entries: entries}
}

// Verify interface compliance
var _ repositories.LedgerRepository = (*Ledger)(nil)

// Get returns the entry for id, or false if the id is unknown.
func (l *Ledger) Get(id entities.CardID) (*entities.CardEntry, bool) {
	entry, ok := l.entries[id]
	return entry, ok
}

// IDs returns every card id in ascending order.
func (l *Ledger) IDs() []entities.CardID {
	ids := make([]entities.CardID, 0, len(l.entries))
	for id := range l.entries {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Len returns the number of distinct card identities.
func (l *Ledger) Len() int {
	return len(l.entries)
}

// Entries exposes the underlying map for whole-document serialization.
func (l *Ledger) Entries() map[entities.CardID]*entities.CardEntry {
	return l.entries
}

// UpsertBoxQuantity creates the entry from template when id is absent,
// then applies delta to boxes[box][condition]. Negative results are
// clamped to zero; the clamp is reported, never stored.
func (l *Ledger) UpsertBoxQuantity(id entities.CardID, box, condition string, delta entities.Quantity, template *entities.CardEntry) (entities.Quantity, bool) {
	entry, ok := l.entries[id]
	if !ok {
		if template != nil {
			entry = template.Clone()
			entry.ID = id
		} else {
			entry = &entities.CardEntry{ID: id}
		}
		entry.Boxes = make(map[string]map[string]entities.Quantity)
		l.entries[id] = entry
	}
	if entry.Boxes == nil {
		entry.Boxes = make(map[string]map[string]entities.Quantity)
	}

	conditions, ok := entry.Boxes[box]
	if !ok {
		conditions = make(map[string]entities.Quantity)
		entry.Boxes[box] = conditions
	}

	next := conditions[condition] + delta
	clamped := false
	if next < 0 {
		next = 0
		clamped = true
	}
	conditions[condition] = next

	return next, clamped
}

// TotalQuantity sums boxes[*][condition] for id; 0 when id is absent.
func (l *Ledger) TotalQuantity(id entities.CardID, condition string) entities.Quantity {
	entry, ok := l.entries[id]
	if !ok {
		return 0
	}
	return entry.TotalQuantity(condition)
}
