package market

import "errors"

// Sentinel errors surfaced by market queries. All indicate either bad input
// data or a caller bug; none are retried internally.
var (
	// ErrNotFound means a lookup referenced an unknown listing id.
	ErrNotFound = errors.New("listing not found")

	// ErrZeroArea means price-per-area was requested on a zero-area listing.
	ErrZeroArea = errors.New("area is zero")

	// ErrInvalidSegment means a requirements query named an unknown buyer segment.
	ErrInvalidSegment = errors.New("invalid segment")
)
