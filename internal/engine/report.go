// Run report — aggregate outcome statistics logged after clearing.
package engine

import (
	"fmt"
	"log/slog"

	"github.com/dustin/go-humanize"
	"golang.org/x/exp/constraints"
)

// RunStats summarizes a cleared run for reporting and archiving.
type RunStats struct {
	Buyers              int     `json:"buyers"`
	Listings            int     `json:"listings"`
	Housed              int     `json:"housed"`
	Unhoused            int     `json:"unhoused"`
	Sold                int     `json:"sold"`
	OwnershipRate       float64 `json:"ownership_rate"`
	AvailabilityRate    float64 `json:"availability_rate"`
	MeanIncome          float64 `json:"mean_income"`
	MeanResidualSavings float64 `json:"mean_residual_savings"`
	SoldValue           float64 `json:"sold_value"` // Total price of all purchased listings
}

// Report computes the outcome statistics. Fails before clearing, like the
// rate accessors it builds on.
func (s *Simulation) Report() (RunStats, error) {
	ownership, err := s.OwnershipRate()
	if err != nil {
		return RunStats{}, err
	}
	availability, err := s.AvailabilityRate()
	if err != nil {
		return RunStats{}, err
	}

	stats := RunStats{
		Buyers:           len(s.Buyers),
		Listings:         len(s.Inventory.Houses),
		OwnershipRate:    ownership,
		AvailabilityRate: availability,
	}

	incomes := make([]float64, 0, len(s.Buyers))
	savings := make([]float64, 0, len(s.Buyers))
	for _, b := range s.Buyers {
		incomes = append(incomes, b.AnnualIncome)
		savings = append(savings, b.Savings)
		if b.Housed() {
			stats.Housed++
			stats.SoldValue += b.Home.Price
		} else {
			stats.Unhoused++
		}
	}
	stats.Sold = stats.Listings - s.Inventory.Available()
	stats.MeanIncome = mean(incomes)
	stats.MeanResidualSavings = mean(savings)

	return stats, nil
}

// LogReport writes the run summary through slog.
func (s *Simulation) LogReport() error {
	stats, err := s.Report()
	if err != nil {
		return err
	}

	slog.Info("run report",
		"policy", s.cfg.Policy.String(),
		"seed", s.cfg.Seed,
		"years", s.cfg.Years,
		"buyers", stats.Buyers,
		"listings", stats.Listings,
		"housed", stats.Housed,
		"unhoused", stats.Unhoused,
		"sold", stats.Sold,
		"ownership_rate", fmt.Sprintf("%.3f", stats.OwnershipRate),
		"availability_rate", fmt.Sprintf("%.3f", stats.AvailabilityRate),
		"mean_income", humanize.CommafWithDigits(stats.MeanIncome, 0),
		"mean_residual_savings", humanize.CommafWithDigits(stats.MeanResidualSavings, 0),
		"sold_value", humanize.CommafWithDigits(stats.SoldValue, 0),
	)
	return nil
}

// mean returns the arithmetic mean, or 0 for an empty slice.
func mean[T constraints.Integer | constraints.Float](xs []T) float64 {
	if len(xs) == 0 {
		return 0
	}
	var total float64
	for _, x := range xs {
		total += float64(x)
	}
	return total / float64(len(xs))
}
