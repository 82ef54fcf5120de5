// Package market provides the listing model and the fixed inventory the
// clearing pass consumes.
package market

import "math"

// QualityScore is a five-level ordinal rating of a listing.
// The zero value means no score has been assigned yet.
type QualityScore int

const (
	QualityUnset     QualityScore = 0
	QualityPoor      QualityScore = 1
	QualityFair      QualityScore = 2
	QualityAverage   QualityScore = 3
	QualityGood      QualityScore = 4
	QualityExcellent QualityScore = 5
)

// newConstructionAge is the age (in years) below which a listing counts
// as new construction.
const newConstructionAge = 5

// House is a single listing in the market.
// Everything but Quality and Available is fixed at load time.
type House struct {
	ID        int          `json:"id" db:"id"`
	Price     float64      `json:"price" db:"price"`
	Area      float64      `json:"area" db:"area"` // Square feet
	Bedrooms  int          `json:"bedrooms" db:"bedrooms"`
	YearBuilt int          `json:"year_built" db:"year_built"`
	Quality   QualityScore `json:"quality_score,omitempty" db:"quality_score"`
	Available bool         `json:"available" db:"available"`
}

// PricePerArea returns the price per square foot, rounded to two decimals.
// A zero-area listing is a data-integrity problem and returns ErrZeroArea.
func (h *House) PricePerArea() (float64, error) {
	if h.Area == 0 {
		return 0, ErrZeroArea
	}
	return math.Round(h.Price/h.Area*100) / 100, nil
}

// IsNewConstruction reports whether the listing is under five years old
// relative to referenceYear.
func (h *House) IsNewConstruction(referenceYear int) bool {
	return referenceYear-h.YearBuilt < newConstructionAge
}

// AssignQuality computes and stores the quality score once. A listing that
// already carries a score keeps it — the score never changes after
// assignment.
//
// Base score comes from age bands, with bonuses for large area and extra
// bedrooms, capped at Excellent.
func (h *House) AssignQuality(referenceYear int) {
	if h.Quality != QualityUnset {
		return
	}

	age := referenceYear - h.YearBuilt
	var base QualityScore
	switch {
	case age < 5:
		base = QualityExcellent
	case age < 15:
		base = QualityGood
	case age < 30:
		base = QualityAverage
	case age < 50:
		base = QualityFair
	default:
		base = QualityPoor
	}

	if h.Area > 2000 {
		base++
	}
	if h.Bedrooms > 3 {
		base++
	}
	if base > QualityExcellent {
		base = QualityExcellent
	}
	h.Quality = base
}

// MarkSold takes the listing off the market. Safe to call more than once;
// a sold listing stays sold for the rest of the run.
func (h *House) MarkSold() {
	h.Available = false
}

// SeedRow is one listing record as supplied by an external tabular source.
// Quality may be QualityUnset; Available defaults to true at load time.
type SeedRow struct {
	ID        int
	Price     float64
	Area      float64
	Bedrooms  int
	YearBuilt int
	Quality   QualityScore
	Available bool
}
