package services

import (
	"sort"

	"github.com/jakesmtg/cardbox/pkg/domain/entities"
	"github.com/jakesmtg/cardbox/pkg/domain/repositories"
)

// AllocationResult is the plan for one pull request: per-box draw
// records plus the quantity that could not be satisfied.
type AllocationResult struct {
	Records   []entities.AllocationRecord
	Shortfall entities.Quantity
}

// BatchResult aggregates a full pull list's allocation plan.
type BatchResult struct {
	Records    []entities.AllocationRecord
	Shortfalls []entities.Shortfall
}

// Allocator plans greedy multi-box draws against a read-only view of
// the store ledger. Allocation is read-then-decide: the allocator never
// mutates the ledger; Commit applies a reviewed plan separately.
type Allocator struct{}

// NewAllocator creates an allocator.
func NewAllocator() *Allocator {
	return &Allocator{}
}

// Allocate drains the requested quantity from the boxes holding the
// most stock of the card's condition. Boxes are visited by quantity
// descending, ties broken by box identifier ascending, so the plan is
// reproducible regardless of map iteration order.
func (a *Allocator) Allocate(ledger repositories.LedgerRepository, req entities.PullRequest) AllocationResult {
	entry, ok := ledger.Get(req.ID)
	if !ok {
		return AllocationResult{Shortfall: req.Quantity}
	}

	quantities := entry.BoxQuantities(req.Condition)
	type boxQuantity struct {
		box string
		qty entities.Quantity
	}
	candidates := make([]boxQuantity, 0, len(quantities))
	for box, qty := range quantities {
		candidates = append(candidates, boxQuantity{box: box, qty: qty})
	}
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].qty != candidates[j].qty {
			return candidates[i].qty > candidates[j].qty
		}
		return boxLess(candidates[i].box, candidates[j].box)
	})

	var result AllocationResult
	remaining := req.Quantity
	for _, candidate := range candidates {
		if remaining <= 0 {
			break
		}
		draw := remaining
		if draw > candidate.qty {
			draw = candidate.qty
		}
		result.Records = append(result.Records, entities.AllocationRecord{
			Box:         candidate.box,
			ID:          req.ID,
			ProductName: entry.ProductName,
			Condition:   req.Condition,
			SetName:     entry.SetName,
			Number:      entry.Number,
			Quantity:    draw,
		})
		remaining -= draw
	}

	result.Shortfall = remaining
	return result
}

// AllocateBatch plans the full pull list in input order. Shortfalls are
// reported per request; they never abort the batch.
func (a *Allocator) AllocateBatch(ledger repositories.LedgerRepository, reqs []entities.PullRequest) BatchResult {
	var batch BatchResult
	for _, req := range reqs {
		result := a.Allocate(ledger, req)
		batch.Records = append(batch.Records, result.Records...)
		if result.Shortfall > 0 {
			batch.Shortfalls = append(batch.Shortfalls, entities.Shortfall{
				ID:        req.ID,
				Condition: req.Condition,
				Requested: req.Quantity,
				Allocated: req.Quantity - result.Shortfall,
			})
		}
	}
	return batch
}

// Commit applies a reviewed allocation plan to the ledger as negative
// deltas. A decrement that would go below zero clamps to zero and is
// reported as an underflow; the ledger is never left negative.
func (a *Allocator) Commit(ledger repositories.LedgerRepository, records []entities.AllocationRecord) []entities.Underflow {
	var underflows []entities.Underflow
	for _, record := range records {
		var available entities.Quantity
		if entry, ok := ledger.Get(record.ID); ok {
			available = entry.Boxes[record.Box][record.Condition]
		}
		_, clamped := ledger.UpsertBoxQuantity(record.ID, record.Box, record.Condition, -record.Quantity, nil)
		if clamped {
			underflows = append(underflows, entities.Underflow{
				ID:        record.ID,
				Box:       record.Box,
				Condition: record.Condition,
				Requested: record.Quantity,
				Available: available,
			})
		}
	}
	return underflows
}
