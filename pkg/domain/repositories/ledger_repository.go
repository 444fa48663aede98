package repositories

import "github.com/jakesmtg/cardbox/pkg/domain/entities"

// LedgerRepository provides access to one ledger's card entries. The
// store ledger and the backlog ledger are two independent instances of
// the same contract.
type LedgerRepository interface {
	// Get returns the entry for id, or false if the id is unknown.
	Get(id entities.CardID) (*entities.CardEntry, bool)

	// IDs returns every card id in ascending order. Iteration over the
	// ledger is deterministic only through this method.
	IDs() []entities.CardID

	// Len returns the number of distinct card identities.
	Len() int

	// UpsertBoxQuantity creates the entry from template when id is
	// absent, then sets boxes[box][condition] = max(0, current+delta).
	// It returns the resulting quantity and whether a negative result
	// was clamped to zero.
	UpsertBoxQuantity(id entities.CardID, box, condition string, delta entities.Quantity, template *entities.CardEntry) (entities.Quantity, bool)

	// TotalQuantity sums boxes[*][condition] for id; 0 when id is absent.
	TotalQuantity(id entities.CardID, condition string) entities.Quantity
}
