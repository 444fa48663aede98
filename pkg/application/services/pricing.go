package services

import "github.com/shopspring/decimal"

// Rarity price floors: a marketplace listing never goes below these
// regardless of the observed market and low prices.
var (
	mythicFloor  = decimal.RequireFromString("0.40")
	rareFloor    = decimal.RequireFromString("0.30")
	defaultFloor = decimal.RequireFromString("0.24")
)

// MarketplacePrice computes the resale price for a card: the highest of
// the market price, the low price, and the rarity floor ("M" 0.40,
// "R" 0.30, anything else 0.24).
func MarketplacePrice(market, low decimal.Decimal, rarity string) decimal.Decimal {
	floor := defaultFloor
	switch rarity {
	case "M":
		floor = mythicFloor
	case "R":
		floor = rareFloor
	}

	price := market
	if low.GreaterThan(price) {
		price = low
	}
	if floor.GreaterThan(price) {
		price = floor
	}
	return price
}
