package entities

import "fmt"

// LoadError indicates a ledger or input file was missing, unreadable,
// or malformed. It is fatal: a run aborts before any mutation.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("failed to load %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// Underflow records a decrement that would have driven a box/condition
// quantity below zero. The quantity is clamped to zero and the batch
// continues; the record surfaces the upstream inconsistency.
type Underflow struct {
	ID        CardID
	Box       string
	Condition string
	Requested Quantity
	Available Quantity
}

func (u Underflow) String() string {
	return fmt.Sprintf("underflow for %s box %s condition %q: requested %d, available %d",
		u.ID, u.Box, u.Condition, u.Requested, u.Available)
}

// Shortfall records a pull request that could not be fully satisfied
// from available stock. It is part of the allocation result, not an
// error; the caller decides whether partial fulfillment is acceptable.
type Shortfall struct {
	ID        CardID
	Condition string
	Requested Quantity
	Allocated Quantity
}

func (s Shortfall) String() string {
	return fmt.Sprintf("shortfall for %s condition %q: requested %d, allocated %d",
		s.ID, s.Condition, s.Requested, s.Allocated)
}

// RunSummary reports the per-batch soft-failure counts alongside the
// primary output.
type RunSummary struct {
	BatchID    string
	Matched    int
	Unmatched  int
	Underflows []Underflow
	Shortfalls []Shortfall
}
