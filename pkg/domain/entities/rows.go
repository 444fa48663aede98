package entities

import "github.com/shopspring/decimal"

// ReceivingRow is one row of a receiving batch: new stock for a single
// card and condition, carrying the descriptive fields needed to create
// the ledger entry on first receipt.
type ReceivingRow struct {
	ID          CardID
	Condition   string
	Quantity    Quantity
	Entry       CardEntry // descriptive template; Boxes ignored
	MarketPrice decimal.Decimal
	LowPrice    decimal.Decimal
}

// PullRow is one row of an externally supplied pull list. Pull lists
// name cards descriptively and carry no stable id.
type PullRow struct {
	ProductName string
	Condition   string
	SetName     string
	Number      string
	Quantity    Quantity
	Line        int // 1-based position in the source file, for notices
}

// PullRequest is a pull row whose identity has been resolved against
// the ledger. Ephemeral, never persisted.
type PullRequest struct {
	ID        CardID
	Condition string
	Quantity  Quantity
	Row       PullRow
}

// AllocationRecord is a single planned draw from one box. One or more
// records are produced per PullRequest.
type AllocationRecord struct {
	Box         string
	ID          CardID
	ProductName string
	Condition   string
	SetName     string
	Number      string
	Quantity    Quantity
}

// ReceivingLine is one line of a store or backlog receiving sheet.
// It additionally carries the card id and a computed resale price.
type ReceivingLine struct {
	Box         string
	ID          CardID
	ProductName string
	Condition   string
	SetName     string
	Number      string
	Quantity    Quantity
	Price       decimal.Decimal
}
