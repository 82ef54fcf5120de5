package market

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testInventory() *Inventory {
	return NewInventory([]SeedRow{
		{ID: 1, Price: 100000, Area: 1000, Bedrooms: 2, YearBuilt: 2020, Available: true},
		{ID: 2, Price: 300000, Area: 2000, Bedrooms: 3, YearBuilt: 2010, Available: true},
		{ID: 3, Price: 200000, Area: 1500, Bedrooms: 3, YearBuilt: 1990, Available: true},
	})
}

func TestNewInventory_PreservesOrderAndDefaults(t *testing.T) {
	inv := testInventory()

	require.Len(t, inv.Houses, 3)
	assert.Equal(t, 1, inv.Houses[0].ID)
	assert.Equal(t, 3, inv.Houses[2].ID)
	for _, h := range inv.Houses {
		assert.True(t, h.Available)
		assert.Equal(t, QualityUnset, h.Quality)
	}
}

func TestInventory_FindByID(t *testing.T) {
	inv := testInventory()

	h, err := inv.FindByID(2)
	require.NoError(t, err)
	assert.Equal(t, 300000.0, h.Price)

	_, err = inv.FindByID(99)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestInventory_AveragePrice(t *testing.T) {
	inv := testInventory()

	// All available, no filter.
	assert.Equal(t, 200000.0, inv.AveragePrice(-1))

	// Bedroom filter.
	assert.Equal(t, 250000.0, inv.AveragePrice(3))

	// Empty candidate set is a degenerate 0, not an error.
	assert.Equal(t, 0.0, inv.AveragePrice(7))
}

func TestInventory_AveragePrice_ExcludesSold(t *testing.T) {
	inv := testInventory()
	inv.Houses[1].MarkSold()

	assert.Equal(t, 150000.0, inv.AveragePrice(-1))

	// The list average still counts sold stock.
	assert.Equal(t, 200000.0, inv.ListAveragePrice())
}

func TestInventory_Available(t *testing.T) {
	inv := testInventory()
	assert.Equal(t, 3, inv.Available())

	inv.Houses[0].MarkSold()
	assert.Equal(t, 2, inv.Available())
}

func TestInventory_MatchingRequirements_Average(t *testing.T) {
	inv := testInventory()

	matches, err := inv.MatchingRequirements(250000, SegmentAverage)
	require.NoError(t, err)
	require.Len(t, matches, 2)
	assert.Equal(t, 1, matches[0].ID)
	assert.Equal(t, 3, matches[1].ID)
}

func TestInventory_MatchingRequirements_Fancy(t *testing.T) {
	inv := testInventory()
	for _, h := range inv.Houses {
		h.AssignQuality(2024)
	}
	// House 1: age 4 → Excellent. House 2: age 14 → Good. House 3: age 34 → Fair.

	matches, err := inv.MatchingRequirements(500000, SegmentFancy)
	require.NoError(t, err)
	require.Len(t, matches, 2)
	assert.Equal(t, 1, matches[0].ID)
	assert.Equal(t, 2, matches[1].ID)
}

func TestInventory_MatchingRequirements_FancySkipsUnscored(t *testing.T) {
	inv := testInventory()

	matches, err := inv.MatchingRequirements(500000, SegmentFancy)
	require.NoError(t, err)
	assert.Empty(t, matches)
}

func TestInventory_MatchingRequirements_Optimizer(t *testing.T) {
	inv := testInventory()

	// maxPrice 200000: house 1 has ppa 100 < 200000/1000 = 200. House 2 is
	// over maxPrice. House 3 has rounded ppa 133.33, strictly below the
	// unrounded 200000/1500 threshold.
	matches, err := inv.MatchingRequirements(200000, SegmentOptimizer)
	require.NoError(t, err)
	require.Len(t, matches, 2)
	assert.Equal(t, 1, matches[0].ID)
	assert.Equal(t, 3, matches[1].ID)
}

func TestInventory_MatchingRequirements_OptimizerZeroArea(t *testing.T) {
	inv := NewInventory([]SeedRow{
		{ID: 1, Price: 50000, Area: 0, Bedrooms: 1, YearBuilt: 2020, Available: true},
	})

	matches, err := inv.MatchingRequirements(100000, SegmentOptimizer)
	require.NoError(t, err)
	assert.Empty(t, matches)
}

func TestInventory_MatchingRequirements_ExcludesSoldAndOverpriced(t *testing.T) {
	inv := testInventory()
	inv.Houses[0].MarkSold()

	matches, err := inv.MatchingRequirements(250000, SegmentAverage)
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, 3, matches[0].ID)
}

func TestInventory_MatchingRequirements_InvalidSegment(t *testing.T) {
	inv := testInventory()

	_, err := inv.MatchingRequirements(50000, Segment(99))
	assert.ErrorIs(t, err, ErrInvalidSegment)
}

func TestParseSegment(t *testing.T) {
	for _, tag := range []string{"FANCY", "OPTIMIZER", "AVERAGE"} {
		seg, err := ParseSegment(tag)
		require.NoError(t, err)
		assert.Equal(t, tag, seg.String())
		assert.True(t, seg.Valid())
	}

	_, err := ParseSegment("BOGUS")
	assert.ErrorIs(t, err, ErrInvalidSegment)
}
