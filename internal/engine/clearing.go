// Market clearing — orders buyers by the configured policy, then runs one
// greedy allocation pass over the shared inventory.
package engine

import (
	"fmt"
	"log/slog"
	"math/rand"
	"sort"

	"github.com/talgya/mini-market/internal/buyers"
)

// ClearingPolicy selects the order buyers enter the market. Order decides
// who wins scarce inventory, so it is the central fairness lever of a run.
type ClearingPolicy uint8

const (
	IncomeDescending ClearingPolicy = iota // Richest buyers first
	IncomeAscending                        // Poorest buyers first
	RandomOrder                            // Seeded shuffle
)

func (p ClearingPolicy) String() string {
	switch p {
	case IncomeDescending:
		return "income_descending"
	case IncomeAscending:
		return "income_ascending"
	case RandomOrder:
		return "random"
	default:
		return fmt.Sprintf("ClearingPolicy(%d)", uint8(p))
	}
}

// ParseClearingPolicy maps a policy name to its variant.
func ParseClearingPolicy(name string) (ClearingPolicy, error) {
	switch name {
	case "income_descending":
		return IncomeDescending, nil
	case "income_ascending":
		return IncomeAscending, nil
	case "random":
		return RandomOrder, nil
	default:
		return 0, fmt.Errorf("unknown clearing policy %q", name)
	}
}

// ClearMarket orders buyers by the configured policy and gives each exactly
// one purchase attempt, sequentially. Each attempt observes the cumulative
// effect of all earlier ones — the pass is single-writer over the inventory
// and must never run concurrently.
//
// The pass is exactly reproducible for a given seed, policy, and inputs:
// sorts are stable (equal incomes keep spawn order) and the shuffle uses its
// own seeded source.
func (s *Simulation) ClearMarket() error {
	if err := s.advance(PhaseSavingsProjected, PhaseCleared, "ClearMarket"); err != nil {
		return err
	}

	ordered := s.orderBuyers()

	housed := 0
	for seq, b := range ordered {
		if b.AttemptPurchase(s.Inventory, s.cfg.ReferenceYear) {
			housed++
			s.Events = append(s.Events, Event{
				Seq:         seq,
				Description: fmt.Sprintf("buyer %d bought listing %d for %.2f", b.ID, b.Home.ID, b.Home.Price),
				Category:    "purchase",
			})
			slog.Debug("purchase",
				"buyer", b.ID,
				"listing", b.Home.ID,
				"price", b.Home.Price,
				"segment", b.Segment.String(),
				"residual_savings", b.Savings,
			)
		} else {
			s.Events = append(s.Events, Event{
				Seq:         seq,
				Description: fmt.Sprintf("buyer %d found no affordable listing", b.ID),
				Category:    "unhoused",
			})
		}
	}

	slog.Info("market cleared",
		"policy", s.cfg.Policy.String(),
		"buyers", len(ordered),
		"housed", housed,
		"remaining_listings", s.Inventory.Available(),
	)
	return nil
}

// orderBuyers returns the buyers in clearing order without disturbing the
// spawn-order slice.
func (s *Simulation) orderBuyers() []*buyers.Buyer {
	ordered := make([]*buyers.Buyer, len(s.Buyers))
	copy(ordered, s.Buyers)

	switch s.cfg.Policy {
	case IncomeDescending:
		sort.SliceStable(ordered, func(i, j int) bool {
			return ordered[i].AnnualIncome > ordered[j].AnnualIncome
		})
	case IncomeAscending:
		sort.SliceStable(ordered, func(i, j int) bool {
			return ordered[i].AnnualIncome < ordered[j].AnnualIncome
		})
	case RandomOrder:
		rng := rand.New(rand.NewSource(s.cfg.Seed + 200))
		rng.Shuffle(len(ordered), func(i, j int) {
			ordered[i], ordered[j] = ordered[j], ordered[i]
		})
	}
	return ordered
}
