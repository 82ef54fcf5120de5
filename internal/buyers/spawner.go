// Buyer spawning — creates the competing population with incomes drawn from
// a bounded normal distribution and segments assigned uniformly.
package buyers

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/talgya/mini-market/internal/market"
)

// ErrSamplingExhausted means the bounded income draw could not produce a
// value inside [min, max] within the retry budget. It signals a pathological
// min/max/mean/stddev combination in the configuration.
var ErrSamplingExhausted = errors.New("income sampling exhausted")

// maxIncomeDraws bounds the rejection-sampling loop per buyer.
const maxIncomeDraws = 1000

// IncomeStats describes the bounded normal distribution incomes are drawn
// from. Draws outside [Minimum, Maximum] are rejected and retried.
type IncomeStats struct {
	Minimum float64
	Average float64
	StdDev  float64
	Maximum float64
}

// DependentsRange bounds the uniform dependents draw, inclusive on both ends.
type DependentsRange struct {
	Minimum int
	Maximum int
}

// SpawnConfig controls population generation.
type SpawnConfig struct {
	Count        int
	Income       IncomeStats
	Dependents   DependentsRange
	SavingRate   float64
	InterestRate float64
}

// Spawner creates buyers with its own seeded rng so population generation is
// reproducible independent of other random draws in the run.
type Spawner struct {
	rng    *rand.Rand
	nextID int
}

// NewSpawner creates a buyer spawner with the given seed.
func NewSpawner(seed int64) *Spawner {
	return &Spawner{
		rng:    rand.New(rand.NewSource(seed + 100)),
		nextID: 1,
	}
}

// SpawnPopulation creates cfg.Count buyers. Income comes from the bounded
// normal draw, dependents from a uniform integer range, and the segment
// uniformly at random among the three variants.
func (s *Spawner) SpawnPopulation(cfg SpawnConfig) ([]*Buyer, error) {
	population := make([]*Buyer, 0, cfg.Count)

	for i := 0; i < cfg.Count; i++ {
		income, err := s.drawIncome(cfg.Income)
		if err != nil {
			return nil, err
		}

		id := s.nextID
		s.nextID++

		population = append(population, &Buyer{
			ID:           id,
			AnnualIncome: income,
			Dependents:   s.drawDependents(cfg.Dependents),
			Segment:      market.Segment(s.rng.Intn(market.NumSegments)),
			SavingRate:   cfg.SavingRate,
			InterestRate: cfg.InterestRate,
		})
	}

	return population, nil
}

// drawIncome samples the normal distribution until a value lands inside
// [min, max]. The loop is bounded so a bad configuration fails instead of
// spinning forever.
func (s *Spawner) drawIncome(stats IncomeStats) (float64, error) {
	for i := 0; i < maxIncomeDraws; i++ {
		income := stats.Average + s.rng.NormFloat64()*stats.StdDev
		if income >= stats.Minimum && income <= stats.Maximum {
			return income, nil
		}
	}
	return 0, fmt.Errorf("%w: no draw in [%.0f, %.0f] after %d attempts (mean %.0f, stddev %.0f)",
		ErrSamplingExhausted, stats.Minimum, stats.Maximum, maxIncomeDraws, stats.Average, stats.StdDev)
}

func (s *Spawner) drawDependents(r DependentsRange) int {
	if r.Maximum <= r.Minimum {
		return r.Minimum
	}
	return r.Minimum + s.rng.Intn(r.Maximum-r.Minimum+1)
}
