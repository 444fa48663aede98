package services

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jakesmtg/cardbox/pkg/domain/entities"
	"github.com/jakesmtg/cardbox/pkg/domain/repositories"
)

// ReceivingPolicy holds the per-invocation routing constants. Nothing
// here is hard-coded in the engine.
type ReceivingPolicy struct {
	StoreBox    string
	BacklogBox  string
	MinQuantity entities.Quantity
	MaxQuantity entities.Quantity
}

// Validate checks the policy invariants.
func (p ReceivingPolicy) Validate() error {
	if p.StoreBox == "" {
		return fmt.Errorf("store box cannot be empty")
	}
	if p.BacklogBox == "" {
		return fmt.Errorf("backlog box cannot be empty")
	}
	if p.MinQuantity < 0 {
		return fmt.Errorf("min quantity cannot be negative, got %d", p.MinQuantity)
	}
	if p.MinQuantity > p.MaxQuantity {
		return fmt.Errorf("min quantity %d exceeds max quantity %d", p.MinQuantity, p.MaxQuantity)
	}
	return nil
}

// ReceivingResult carries the ordered store and backlog sheet lines for
// one batch, plus the number of rows skipped for a non-positive
// quantity. Persistence of the mutated ledgers is the caller's job once
// the whole batch has been processed.
type ReceivingResult struct {
	StoreLines   []entities.ReceivingLine
	BacklogLines []entities.ReceivingLine
	Skipped      int
}

// ReceivingRouter ingests new-stock rows and decides store-box versus
// backlog-box placement under the policy's capacity thresholds.
type ReceivingRouter struct {
	policy ReceivingPolicy
}

// NewReceivingRouter creates a router with a validated policy.
func NewReceivingRouter(policy ReceivingPolicy) (*ReceivingRouter, error) {
	if err := policy.Validate(); err != nil {
		return nil, fmt.Errorf("invalid receiving policy: %w", err)
	}
	return &ReceivingRouter{policy: policy}, nil
}

// Route processes the batch in input order, mutating both ledgers.
//
// A card/condition with an existing store total below MinQuantity is
// topped up toward MaxQuantity; any remainder goes to the backlog. Once
// the store total has reached MinQuantity, every further receipt of
// that condition routes entirely to backlog until manually rebalanced.
// The threshold check reads the store ledger only, never the backlog's
// existing quantity for the same card.
func (r *ReceivingRouter) Route(store, backlog repositories.LedgerRepository, rows []entities.ReceivingRow) ReceivingResult {
	var result ReceivingResult

	for _, row := range rows {
		if row.Quantity <= 0 {
			result.Skipped++
			continue
		}

		template := row.Entry
		template.ID = row.ID
		price := MarketplacePrice(row.MarketPrice, row.LowPrice, row.Entry.Rarity)

		_, known := store.Get(row.ID)
		existing := store.TotalQuantity(row.ID, row.Condition)

		if !known || existing < r.policy.MinQuantity {
			room := r.policy.MaxQuantity - existing
			if room < 0 {
				room = 0
			}
			toStore := row.Quantity
			if toStore > room {
				toStore = room
			}

			if toStore > 0 {
				store.UpsertBoxQuantity(row.ID, r.policy.StoreBox, row.Condition, toStore, &template)
				result.StoreLines = append(result.StoreLines, r.line(row, r.policy.StoreBox, toStore, price))
			}

			if rest := row.Quantity - toStore; rest > 0 {
				backlog.UpsertBoxQuantity(row.ID, r.policy.BacklogBox, row.Condition, rest, &template)
				result.BacklogLines = append(result.BacklogLines, r.line(row, r.policy.BacklogBox, rest, price))
			}
			continue
		}

		// Well stocked: the entire receipt goes to backlog.
		backlog.UpsertBoxQuantity(row.ID, r.policy.BacklogBox, row.Condition, row.Quantity, &template)
		result.BacklogLines = append(result.BacklogLines, r.line(row, r.policy.BacklogBox, row.Quantity, price))
	}

	return result
}

func (r *ReceivingRouter) line(row entities.ReceivingRow, box string, qty entities.Quantity, price decimal.Decimal) entities.ReceivingLine {
	return entities.ReceivingLine{
		Box:         box,
		ID:          row.ID,
		ProductName: row.Entry.ProductName,
		Condition:   row.Condition,
		SetName:     row.Entry.SetName,
		Number:      row.Entry.Number,
		Quantity:    qty,
		Price:       price,
	}
}
