// Package buyers provides the buyer agent model: financial state, savings
// projection, and the segment-driven purchase attempt.
package buyers

import (
	"github.com/talgya/mini-market/internal/market"
)

// Buyer is one competing household in the simulation. Segment is fixed at
// creation; Home is set at most once, during clearing.
type Buyer struct {
	ID           int            `json:"id"`
	AnnualIncome float64        `json:"annual_income"`
	Dependents   int            `json:"dependents"`
	Segment      market.Segment `json:"segment"`
	Home         *market.House  `json:"-"`
	Savings      float64        `json:"savings"`
	SavingRate   float64        `json:"saving_rate"`
	InterestRate float64        `json:"interest_rate"`
}

// Housed reports whether the buyer acquired a listing.
func (b *Buyer) Housed() bool {
	return b.Home != nil
}

// MonthlyIncome returns the buyer's gross monthly income.
func (b *Buyer) MonthlyIncome() float64 {
	return b.AnnualIncome / 12
}

// ProjectSavings sets Savings to the future value of saving a fixed share of
// income every year for the given horizon, compounded annually:
//
//	income × rate × ((1+i)^years − 1) / i
//
// A zero interest rate degenerates to simple accumulation (income × rate ×
// years); the formula is special-cased to avoid dividing by zero.
func (b *Buyer) ProjectSavings(years int) {
	annual := b.AnnualIncome * b.SavingRate
	if b.InterestRate == 0 {
		b.Savings = annual * float64(years)
		return
	}
	factor := 1.0
	for i := 0; i < years; i++ {
		factor *= 1 + b.InterestRate
	}
	b.Savings = annual * (factor - 1) / b.InterestRate
}

// AttemptPurchase scans the inventory for listings matching the buyer's
// segment, in inventory order, and buys the first one the buyer can afford
// (savings >= price). Buying marks the listing sold and deducts its price.
//
// Returns true when a purchase happened. Ending the round unhoused is a
// normal outcome, not an error. A buyer who already owns a home never
// re-enters the scan.
func (b *Buyer) AttemptPurchase(inv *market.Inventory, referenceYear int) bool {
	if b.Home != nil {
		return false
	}

	// AVERAGE buyers shop against the mean list price of the whole market,
	// computed once before the scan.
	avgPrice := 0.0
	if b.Segment == market.SegmentAverage {
		avgPrice = inv.ListAveragePrice()
	}

	for _, h := range inv.Houses {
		if !h.Available || !b.wants(h, referenceYear, avgPrice) {
			continue
		}
		if b.Savings < h.Price {
			continue
		}
		b.Home = h
		h.MarkSold()
		b.Savings -= h.Price
		return true
	}
	return false
}

// wants applies the buyer-side candidate predicate for the buyer's segment.
// The OPTIMIZER threshold here is monthly income, which differs from the
// maxPrice/area threshold used by Inventory.MatchingRequirements.
func (b *Buyer) wants(h *market.House, referenceYear int, avgPrice float64) bool {
	switch b.Segment {
	case market.SegmentFancy:
		return h.IsNewConstruction(referenceYear) && h.Quality == market.QualityExcellent
	case market.SegmentOptimizer:
		ppa, err := h.PricePerArea()
		if err != nil {
			return false
		}
		return ppa <= b.MonthlyIncome()
	case market.SegmentAverage:
		return h.Price <= avgPrice
	default:
		return false
	}
}
