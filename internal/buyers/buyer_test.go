package buyers

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/mini-market/internal/market"
)

func TestBuyer_ProjectSavings(t *testing.T) {
	b := &Buyer{AnnualIncome: 60000, SavingRate: 0.3, InterestRate: 0.05}

	b.ProjectSavings(10)

	// Closed-form annuity: 18000 × ((1.05^10 − 1) / 0.05)
	want := 18000 * (math.Pow(1.05, 10) - 1) / 0.05
	assert.InDelta(t, want, b.Savings, 1e-6)
}

func TestBuyer_ProjectSavings_ZeroInterest(t *testing.T) {
	b := &Buyer{AnnualIncome: 60000, SavingRate: 0.3, InterestRate: 0}

	b.ProjectSavings(10)
	assert.Equal(t, 180000.0, b.Savings)
}

func TestBuyer_ProjectSavings_ZeroYears(t *testing.T) {
	b := &Buyer{AnnualIncome: 60000, SavingRate: 0.3, InterestRate: 0.05}

	b.ProjectSavings(0)
	assert.Equal(t, 0.0, b.Savings)
}

func TestBuyer_ProjectSavings_MonotonicInYears(t *testing.T) {
	prev := -1.0
	for years := 0; years <= 40; years++ {
		b := &Buyer{AnnualIncome: 60000, SavingRate: 0.3, InterestRate: 0.05}
		b.ProjectSavings(years)
		assert.GreaterOrEqual(t, b.Savings, prev, "years=%d", years)
		prev = b.Savings
	}
}

func TestBuyer_AttemptPurchase_Average(t *testing.T) {
	inv := market.NewInventory([]market.SeedRow{
		{ID: 1, Price: 100000, Area: 1000, Bedrooms: 2, YearBuilt: 2020, Available: true},
	})
	b := &Buyer{ID: 1, AnnualIncome: 500000, Segment: market.SegmentAverage, Savings: 150000}

	bought := b.AttemptPurchase(inv, 2024)

	require.True(t, bought)
	require.NotNil(t, b.Home)
	assert.Equal(t, 1, b.Home.ID)
	assert.False(t, b.Home.Available)
	assert.Equal(t, 50000.0, b.Savings)
}

func TestBuyer_AttemptPurchase_AverageRejectsAboveMean(t *testing.T) {
	// Mean list price is 200000; the 300000 listing is above it even though
	// the buyer could afford it.
	inv := market.NewInventory([]market.SeedRow{
		{ID: 1, Price: 300000, Area: 2000, Bedrooms: 3, YearBuilt: 2015, Available: true},
		{ID: 2, Price: 100000, Area: 1000, Bedrooms: 2, YearBuilt: 2015, Available: true},
	})
	b := &Buyer{ID: 1, AnnualIncome: 200000, Segment: market.SegmentAverage, Savings: 500000}

	require.True(t, b.AttemptPurchase(inv, 2024))
	assert.Equal(t, 2, b.Home.ID)
}

func TestBuyer_AttemptPurchase_Optimizer(t *testing.T) {
	// Monthly income 5000; listing 1 ppa 200, listing 2 ppa 6000.
	inv := market.NewInventory([]market.SeedRow{
		{ID: 2, Price: 600000, Area: 100, Bedrooms: 2, YearBuilt: 2015, Available: true},
		{ID: 1, Price: 200000, Area: 1000, Bedrooms: 2, YearBuilt: 2015, Available: true},
	})
	b := &Buyer{ID: 1, AnnualIncome: 60000, Segment: market.SegmentOptimizer, Savings: 700000}

	require.True(t, b.AttemptPurchase(inv, 2024))
	assert.Equal(t, 1, b.Home.ID)
}

func TestBuyer_AttemptPurchase_OptimizerSkipsZeroArea(t *testing.T) {
	inv := market.NewInventory([]market.SeedRow{
		{ID: 1, Price: 1000, Area: 0, Bedrooms: 1, YearBuilt: 2015, Available: true},
	})
	b := &Buyer{ID: 1, AnnualIncome: 60000, Segment: market.SegmentOptimizer, Savings: 10000}

	assert.False(t, b.AttemptPurchase(inv, 2024))
	assert.Nil(t, b.Home)
}

func TestBuyer_AttemptPurchase_Fancy(t *testing.T) {
	inv := market.NewInventory([]market.SeedRow{
		// New but only Good after scoring (age 14).
		{ID: 1, Price: 100000, Area: 1000, Bedrooms: 2, YearBuilt: 2010, Available: true},
		// New construction, Excellent.
		{ID: 2, Price: 400000, Area: 1500, Bedrooms: 3, YearBuilt: 2022, Available: true},
	})
	for _, h := range inv.Houses {
		h.AssignQuality(2024)
	}
	b := &Buyer{ID: 1, AnnualIncome: 900000, Segment: market.SegmentFancy, Savings: 500000}

	require.True(t, b.AttemptPurchase(inv, 2024))
	assert.Equal(t, 2, b.Home.ID)
}

func TestBuyer_AttemptPurchase_FancyUnaffordable(t *testing.T) {
	inv := market.NewInventory([]market.SeedRow{
		{ID: 1, Price: 900000, Area: 2500, Bedrooms: 4, YearBuilt: 2023, Available: true},
	})
	inv.Houses[0].AssignQuality(2024)
	b := &Buyer{ID: 1, AnnualIncome: 100000, Segment: market.SegmentFancy, Savings: 50000}

	// No affordable match is a normal outcome: no error, state untouched.
	assert.False(t, b.AttemptPurchase(inv, 2024))
	assert.Nil(t, b.Home)
	assert.Equal(t, 50000.0, b.Savings)
	assert.True(t, inv.Houses[0].Available)
}

func TestBuyer_AttemptPurchase_FirstFitNotBestFit(t *testing.T) {
	// The sold listing lifts the mean list price to ~196667, so listings 1
	// and 2 both qualify and are affordable; the buyer takes the first in
	// inventory order even though the second is cheaper.
	inv := market.NewInventory([]market.SeedRow{
		{ID: 1, Price: 150000, Area: 1000, Bedrooms: 2, YearBuilt: 2015, Available: true},
		{ID: 2, Price: 100000, Area: 1000, Bedrooms: 2, YearBuilt: 2015, Available: true},
		{ID: 3, Price: 340000, Area: 2000, Bedrooms: 4, YearBuilt: 2015, Available: false},
	})
	b := &Buyer{ID: 1, AnnualIncome: 500000, Segment: market.SegmentAverage, Savings: 200000}

	require.True(t, b.AttemptPurchase(inv, 2024))
	assert.Equal(t, 1, b.Home.ID)
}

func TestBuyer_AttemptPurchase_AlreadyHoused(t *testing.T) {
	inv := market.NewInventory([]market.SeedRow{
		{ID: 1, Price: 100000, Area: 1000, Bedrooms: 2, YearBuilt: 2015, Available: true},
	})
	owned := &market.House{ID: 99}
	b := &Buyer{ID: 1, AnnualIncome: 500000, Segment: market.SegmentAverage, Savings: 200000, Home: owned}

	assert.False(t, b.AttemptPurchase(inv, 2024))
	assert.Same(t, owned, b.Home)
	assert.True(t, inv.Houses[0].Available)
}
