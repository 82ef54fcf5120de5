// Package marketgen builds synthetic listing inventories using layered
// simplex noise, for runs without an external seed file. Neighborhood price
// levels vary smoothly across a street grid so nearby listings share a price
// band, the way real districts do.
package marketgen

import (
	"math"
	"math/rand"

	opensimplex "github.com/ojrac/opensimplex-go"
	"golang.org/x/exp/constraints"

	"github.com/talgya/mini-market/internal/market"
)

// GenConfig holds synthetic inventory parameters.
type GenConfig struct {
	Count      int     // Number of listings to generate
	Seed       int64   // Random seed (0 = random)
	BasePrice  float64 // City-wide median price anchor
	NewestYear int     // Most recent construction year
	OldestYear int     // Oldest construction year
}

// DefaultGenConfig returns a reasonable mid-size market.
func DefaultGenConfig() GenConfig {
	return GenConfig{
		Count:      200,
		Seed:       0,
		BasePrice:  250000,
		NewestYear: 2024,
		OldestYear: 1950,
	}
}

// Generate creates a synthetic inventory. Deterministic for a non-zero seed.
func Generate(cfg GenConfig) []market.SeedRow {
	seed := cfg.Seed
	if seed == 0 {
		seed = rand.Int63()
	}

	// Two noise layers: neighborhood price level and lot desirability.
	priceNoise := opensimplex.NewNormalized(seed)
	lotNoise := opensimplex.NewNormalized(seed + 1)
	rng := rand.New(rand.NewSource(seed + 2))

	// Lay listings along a square street grid, one per cell.
	side := int(math.Ceil(math.Sqrt(float64(cfg.Count))))

	rows := make([]market.SeedRow, 0, cfg.Count)
	for i := 0; i < cfg.Count; i++ {
		x := float64(i % side)
		y := float64(i / side)

		neighborhood := octaveNoise(priceNoise, x, y, 3, 0.15, 0.5)
		lot := octaveNoise(lotNoise, x, y, 2, 0.30, 0.5)

		// Bedrooms and area scale with lot desirability plus jitter.
		bedrooms := clamp(1+int(lot*5)+rng.Intn(2), 1, 6)
		area := clamp(600+lot*2400+rng.Float64()*400, 500, 4000)

		// Construction year skews newer in desirable neighborhoods.
		span := cfg.NewestYear - cfg.OldestYear
		year := cfg.OldestYear + int(neighborhood*float64(span)*0.6) + rng.Intn(span/3+1)
		year = clamp(year, cfg.OldestYear, cfg.NewestYear)

		// Price: neighborhood level drives the band, size and age adjust it.
		price := cfg.BasePrice * (0.5 + neighborhood*1.2)
		price *= 0.7 + (area/2000)*0.4
		age := cfg.NewestYear - year
		price *= 1.0 - clamp(float64(age)*0.004, 0, 0.3)
		price = math.Round(price/1000) * 1000

		rows = append(rows, market.SeedRow{
			ID:        i + 1,
			Price:     price,
			Area:      math.Round(area),
			Bedrooms:  bedrooms,
			YearBuilt: year,
			Available: true,
		})
	}

	return rows
}

// octaveNoise sums several noise layers at increasing frequency and
// decreasing amplitude, normalized back to [0, 1].
func octaveNoise(noise opensimplex.Noise, x, y float64, octaves int, frequency, persistence float64) float64 {
	total := 0.0
	amplitude := 1.0
	maxValue := 0.0
	freq := frequency

	for i := 0; i < octaves; i++ {
		total += noise.Eval2(x*freq, y*freq) * amplitude
		maxValue += amplitude
		amplitude *= persistence
		freq *= 2
	}

	return total / maxValue
}

func clamp[T constraints.Ordered](v, lo, hi T) T {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
