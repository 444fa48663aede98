package entities

import (
	"fmt"
	"sort"
)

// CardID is the stable identifier assigned by the upstream catalog.
// It is never generated locally.
type CardID string

// Quantity represents an integer count of physical cards.
type Quantity int64

// CardEntry is one distinct card identity in a ledger, holding its
// per-box, per-condition quantities. The JSON field names match the
// ledger document produced by the upstream export tooling.
type CardEntry struct {
	ID          CardID                         `json:"TCGplayer Id"`
	ProductLine string                         `json:"Product Line"`
	SetName     string                         `json:"Set Name"`
	ProductName string                         `json:"Product Name"`
	Title       string                         `json:"Title"`
	Number      string                         `json:"Number"`
	Rarity      string                         `json:"Rarity"`
	Condition   string                         `json:"Condition"`
	Boxes       map[string]map[string]Quantity `json:"Boxes"`
}

// NewCardEntry creates a validated CardEntry with empty boxes.
func NewCardEntry(id CardID, productLine, setName, productName, title, number, rarity, condition string) (*CardEntry, error) {
	if id == "" {
		return nil, fmt.Errorf("card id cannot be empty")
	}
	if productName == "" {
		return nil, fmt.Errorf("product name cannot be empty")
	}

	return &CardEntry{
		ID:          id,
		ProductLine: productLine,
		SetName:     setName,
		ProductName: productName,
		Title:       title,
		Number:      number,
		Rarity:      rarity,
		Condition:   condition,
		Boxes:       make(map[string]map[string]Quantity),
	}, nil
}

// Clone returns a deep copy of the entry, including its box map.
func (c *CardEntry) Clone() *CardEntry {
	clone := *c
	clone.Boxes = make(map[string]map[string]Quantity, len(c.Boxes))
	for box, conditions := range c.Boxes {
		inner := make(map[string]Quantity, len(conditions))
		for condition, qty := range conditions {
			inner[condition] = qty
		}
		clone.Boxes[box] = inner
	}
	return &clone
}

// TotalQuantity sums the entry's quantity of the given condition across
// all boxes.
func (c *CardEntry) TotalQuantity(condition string) Quantity {
	var total Quantity
	for _, conditions := range c.Boxes {
		total += conditions[condition]
	}
	return total
}

// BoxQuantities returns the boxes holding a non-zero quantity of the
// given condition, as box id -> quantity.
func (c *CardEntry) BoxQuantities(condition string) map[string]Quantity {
	quantities := make(map[string]Quantity)
	for box, conditions := range c.Boxes {
		if qty := conditions[condition]; qty > 0 {
			quantities[box] = qty
		}
	}
	return quantities
}

// BoxIDs returns the entry's box identifiers in ascending order.
func (c *CardEntry) BoxIDs() []string {
	ids := make([]string, 0, len(c.Boxes))
	for box := range c.Boxes {
		ids = append(ids, box)
	}
	sort.Strings(ids)
	return ids
}
