package market

import "fmt"

// Inventory holds the full set of listings for one run. The set is fixed
// after construction — only per-listing availability mutates, and only
// through House.MarkSold during clearing.
type Inventory struct {
	Houses []*House
}

// NewInventory builds an inventory from external seed rows, one listing per
// row, preserving row order.
func NewInventory(rows []SeedRow) *Inventory {
	houses := make([]*House, 0, len(rows))
	for _, r := range rows {
		houses = append(houses, &House{
			ID:        r.ID,
			Price:     r.Price,
			Area:      r.Area,
			Bedrooms:  r.Bedrooms,
			YearBuilt: r.YearBuilt,
			Quality:   r.Quality,
			Available: r.Available,
		})
	}
	return &Inventory{Houses: houses}
}

// FindByID returns the listing with the given id, or ErrNotFound.
func (inv *Inventory) FindByID(id int) (*House, error) {
	for _, h := range inv.Houses {
		if h.ID == id {
			return h, nil
		}
	}
	return nil, fmt.Errorf("%w: id %d", ErrNotFound, id)
}

// AveragePrice returns the mean price of available listings, filtered to an
// exact bedroom count when bedrooms >= 0. An empty candidate set yields 0;
// that is a documented degenerate case, not an error.
func (inv *Inventory) AveragePrice(bedrooms int) float64 {
	total := 0.0
	count := 0
	for _, h := range inv.Houses {
		if !h.Available {
			continue
		}
		if bedrooms >= 0 && h.Bedrooms != bedrooms {
			continue
		}
		total += h.Price
		count++
	}
	if count == 0 {
		return 0
	}
	return total / float64(count)
}

// ListAveragePrice returns the mean price over every listing, sold included.
// This is the baseline the AVERAGE buyer segment shops against; it
// deliberately differs from AveragePrice, which only counts available stock.
func (inv *Inventory) ListAveragePrice() float64 {
	if len(inv.Houses) == 0 {
		return 0
	}
	total := 0.0
	for _, h := range inv.Houses {
		total += h.Price
	}
	return total / float64(len(inv.Houses))
}

// Available returns how many listings are still on the market.
func (inv *Inventory) Available() int {
	n := 0
	for _, h := range inv.Houses {
		if h.Available {
			n++
		}
	}
	return n
}

// MatchingRequirements returns the available listings priced at or below
// maxPrice that also satisfy the segment predicate. Unknown segments return
// ErrInvalidSegment.
func (inv *Inventory) MatchingRequirements(maxPrice float64, segment Segment) ([]*House, error) {
	if !segment.Valid() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidSegment, segment)
	}

	var matches []*House
	for _, h := range inv.Houses {
		if !h.Available || h.Price > maxPrice {
			continue
		}
		if segmentMatches(h, maxPrice, segment) {
			matches = append(matches, h)
		}
	}
	return matches, nil
}

// segmentMatches applies the per-segment eligibility predicate used by the
// population-level requirements query. Note the OPTIMIZER threshold here is
// maxPrice/area, not the buyer's monthly income — the buyer-side candidate
// scan in the buyers package uses its own formula.
func segmentMatches(h *House, maxPrice float64, segment Segment) bool {
	switch segment {
	case SegmentFancy:
		return h.Quality != QualityUnset && h.Quality >= QualityGood
	case SegmentOptimizer:
		if h.Area <= 0 {
			return false
		}
		ppa, err := h.PricePerArea()
		if err != nil {
			return false
		}
		return ppa < maxPrice/h.Area
	case SegmentAverage:
		return h.Price <= maxPrice
	default:
		return false
	}
}
