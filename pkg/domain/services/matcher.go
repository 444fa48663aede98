package services

import (
	"strings"

	"github.com/jakesmtg/cardbox/pkg/domain/entities"
	"github.com/jakesmtg/cardbox/pkg/domain/repositories"
)

// KeyFunc builds the composite identity key from the four descriptive
// fields. The default is a lower-cased concatenation with no separator;
// a caller may substitute a stronger scheme without touching the
// matcher's algorithm.
type KeyFunc func(name, condition, set, number string) string

// DefaultKey concatenates {name, condition, set, number} lower-cased.
// Fields are assumed not to collide under concatenation; duplicate
// descriptive tuples resolve to whichever entry is indexed last.
func DefaultKey(name, condition, set, number string) string {
	return strings.ToLower(name + condition + set + number)
}

// Matcher resolves externally described rows, which carry no stable id,
// to ledger entry ids by exact composite-key lookup.
type Matcher struct {
	key KeyFunc
}

// NewMatcher creates a matcher using key, or DefaultKey when key is nil.
func NewMatcher(key KeyFunc) *Matcher {
	if key == nil {
		key = DefaultKey
	}
	return &Matcher{key: key}
}

// Index builds the reverse index key -> id in a single pass over the
// ledger. Ids are visited in ascending order, so a duplicate key
// deterministically resolves to the highest id.
func (m *Matcher) Index(ledger repositories.LedgerRepository) map[string]entities.CardID {
	index := make(map[string]entities.CardID, ledger.Len())
	for _, id := range ledger.IDs() {
		entry, ok := ledger.Get(id)
		if !ok {
			continue
		}
		key := m.key(entry.ProductName, entry.Condition, entry.SetName, entry.Number)
		index[key] = id
	}
	return index
}

// Resolve matches every pull row against the ledger, returning resolved
// requests in input order and the rows that matched nothing. Unmatched
// rows are soft failures: the caller logs and skips them, the batch
// continues. A resolved request carries the ledger entry's condition
// spelling, not the row's: keys match case-insensitively but box
// quantities are stored under the ledger's spelling.
func (m *Matcher) Resolve(rows []entities.PullRow, ledger repositories.LedgerRepository) ([]entities.PullRequest, []entities.PullRow) {
	index := m.Index(ledger)

	requests := make([]entities.PullRequest, 0, len(rows))
	var unmatched []entities.PullRow

	for _, row := range rows {
		key := m.key(row.ProductName, row.Condition, row.SetName, row.Number)
		id, ok := index[key]
		if !ok {
			unmatched = append(unmatched, row)
			continue
		}
		condition := row.Condition
		if entry, ok := ledger.Get(id); ok {
			condition = entry.Condition
		}
		requests = append(requests, entities.PullRequest{
			ID:        id,
			Condition: condition,
			Quantity:  row.Quantity,
			Row:       row,
		})
	}

	return requests, unmatched
}
