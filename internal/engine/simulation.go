// Package engine owns the run lifecycle: market build, population
// generation, savings projection, market clearing, and outcome metrics.
package engine

import (
	"errors"
	"fmt"

	"github.com/talgya/mini-market/internal/buyers"
	"github.com/talgya/mini-market/internal/market"
)

// ErrInvalidState means an operation was invoked before its required
// predecessor stage completed. Stage transitions are one-way and one-time;
// re-running an earlier stage fails fast instead of silently redoing work.
var ErrInvalidState = errors.New("invalid simulation state")

// Phase is the run lifecycle stage. Transitions only move forward.
type Phase uint8

const (
	PhaseUninitialized Phase = iota
	PhaseMarketBuilt
	PhasePopulationBuilt
	PhaseSavingsProjected
	PhaseCleared
)

func (p Phase) String() string {
	switch p {
	case PhaseUninitialized:
		return "uninitialized"
	case PhaseMarketBuilt:
		return "market_built"
	case PhasePopulationBuilt:
		return "population_built"
	case PhaseSavingsProjected:
		return "savings_projected"
	case PhaseCleared:
		return "cleared"
	default:
		return fmt.Sprintf("Phase(%d)", uint8(p))
	}
}

// Config is the explicit run configuration supplied before any stage runs.
type Config struct {
	Seed            int64
	PopulationSize  int
	Years           int
	ReferenceYear   int // Year used for new-construction and quality checks
	Income          buyers.IncomeStats
	Dependents      buyers.DependentsRange
	DownPaymentRate float64 // Carried through to run records; not consumed by clearing
	SavingRate      float64
	InterestRate    float64
	Policy          ClearingPolicy
}

// Event is a notable occurrence during clearing.
type Event struct {
	Seq         int    `json:"seq"` // Position in the clearing order
	Description string `json:"description"`
	Category    string `json:"category"` // "purchase" or "unhoused"
}

// Simulation holds the complete run state and wires the stages together.
// One Simulation runs exactly one market round.
type Simulation struct {
	Inventory *market.Inventory
	Buyers    []*buyers.Buyer
	Events    []Event

	cfg     Config
	phase   Phase
	spawner *buyers.Spawner
}

// New creates a Simulation in the uninitialized phase.
func New(cfg Config) *Simulation {
	return &Simulation{
		cfg:     cfg,
		spawner: buyers.NewSpawner(cfg.Seed),
	}
}

// Phase returns the current lifecycle stage.
func (s *Simulation) Phase() Phase {
	return s.phase
}

// Config returns the run configuration.
func (s *Simulation) Config() Config {
	return s.cfg
}

// advance moves to the next stage after verifying the current one.
func (s *Simulation) advance(from, to Phase, op string) error {
	if s.phase != from {
		return fmt.Errorf("%w: %s requires phase %s, currently %s", ErrInvalidState, op, from, s.phase)
	}
	s.phase = to
	return nil
}

// BuildMarket constructs the inventory from external seed rows, one listing
// per row.
func (s *Simulation) BuildMarket(rows []market.SeedRow) error {
	if err := s.advance(PhaseUninitialized, PhaseMarketBuilt, "BuildMarket"); err != nil {
		return err
	}
	s.Inventory = market.NewInventory(rows)
	return nil
}

// GeneratePopulation draws the configured number of buyers. Deterministic
// for a given seed.
func (s *Simulation) GeneratePopulation() error {
	if err := s.advance(PhaseMarketBuilt, PhasePopulationBuilt, "GeneratePopulation"); err != nil {
		return err
	}

	population, err := s.spawner.SpawnPopulation(buyers.SpawnConfig{
		Count:        s.cfg.PopulationSize,
		Income:       s.cfg.Income,
		Dependents:   s.cfg.Dependents,
		SavingRate:   s.cfg.SavingRate,
		InterestRate: s.cfg.InterestRate,
	})
	if err != nil {
		s.phase = PhaseMarketBuilt // Failed draw leaves the stage incomplete.
		return fmt.Errorf("generate population: %w", err)
	}

	s.Buyers = population
	return nil
}

// ProjectAllSavings applies the savings projection to every buyer over the
// configured horizon. Each buyer's projection is independent.
func (s *Simulation) ProjectAllSavings() error {
	if err := s.advance(PhasePopulationBuilt, PhaseSavingsProjected, "ProjectAllSavings"); err != nil {
		return err
	}
	for _, b := range s.Buyers {
		b.ProjectSavings(s.cfg.Years)
	}
	return nil
}

// OwnershipRate returns the fraction of buyers holding a listing. Only valid
// after clearing.
func (s *Simulation) OwnershipRate() (float64, error) {
	if s.phase != PhaseCleared {
		return 0, fmt.Errorf("%w: OwnershipRate requires phase %s, currently %s", ErrInvalidState, PhaseCleared, s.phase)
	}
	if len(s.Buyers) == 0 {
		return 0, nil
	}
	housed := 0
	for _, b := range s.Buyers {
		if b.Housed() {
			housed++
		}
	}
	return float64(housed) / float64(len(s.Buyers)), nil
}

// AvailabilityRate returns the fraction of listings still on the market.
// Only valid after clearing.
func (s *Simulation) AvailabilityRate() (float64, error) {
	if s.phase != PhaseCleared {
		return 0, fmt.Errorf("%w: AvailabilityRate requires phase %s, currently %s", ErrInvalidState, PhaseCleared, s.phase)
	}
	if len(s.Inventory.Houses) == 0 {
		return 0, nil
	}
	return float64(s.Inventory.Available()) / float64(len(s.Inventory.Houses)), nil
}
