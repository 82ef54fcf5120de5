package market

import "fmt"

// Segment is a buyer demand policy. The set is closed: every dispatch on
// Segment must handle exactly these three variants.
type Segment uint8

const (
	SegmentFancy     Segment = iota // New construction at the top quality score
	SegmentOptimizer                // Price-per-square-foot value hunters
	SegmentAverage                  // Listings at or below the market average
)

// NumSegments is the number of demand-policy variants.
const NumSegments = 3

// String returns the canonical upper-case segment tag.
func (s Segment) String() string {
	switch s {
	case SegmentFancy:
		return "FANCY"
	case SegmentOptimizer:
		return "OPTIMIZER"
	case SegmentAverage:
		return "AVERAGE"
	default:
		return fmt.Sprintf("Segment(%d)", uint8(s))
	}
}

// Valid reports whether s is one of the three recognized variants.
func (s Segment) Valid() bool {
	return s == SegmentFancy || s == SegmentOptimizer || s == SegmentAverage
}

// ParseSegment maps a segment tag to its variant. Unknown tags return
// ErrInvalidSegment.
func ParseSegment(tag string) (Segment, error) {
	switch tag {
	case "FANCY":
		return SegmentFancy, nil
	case "OPTIMIZER":
		return SegmentOptimizer, nil
	case "AVERAGE":
		return SegmentAverage, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidSegment, tag)
	}
}
