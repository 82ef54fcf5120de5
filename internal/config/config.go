// Package config loads runtime configuration from the environment and
// validates it before any simulation stage runs.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v6"

	"github.com/talgya/mini-market/internal/buyers"
	"github.com/talgya/mini-market/internal/engine"
)

// Config is the full runtime configuration for one run.
type Config struct {
	Seed          int64 `env:"MARKETSIM_SEED" envDefault:"42"`
	Population    int   `env:"MARKETSIM_POPULATION" envDefault:"100"`
	Years         int   `env:"MARKETSIM_YEARS" envDefault:"10"`
	ReferenceYear int   `env:"MARKETSIM_REFERENCE_YEAR" envDefault:"2024"`

	// Income distribution (bounded normal).
	IncomeMin    float64 `env:"MARKETSIM_INCOME_MIN" envDefault:"30000"`
	IncomeMean   float64 `env:"MARKETSIM_INCOME_MEAN" envDefault:"60000"`
	IncomeStdDev float64 `env:"MARKETSIM_INCOME_STDDEV" envDefault:"20000"`
	IncomeMax    float64 `env:"MARKETSIM_INCOME_MAX" envDefault:"150000"`

	DependentsMin int `env:"MARKETSIM_DEPENDENTS_MIN" envDefault:"0"`
	DependentsMax int `env:"MARKETSIM_DEPENDENTS_MAX" envDefault:"5"`

	DownPaymentRate float64 `env:"MARKETSIM_DOWN_PAYMENT_RATE" envDefault:"0.2"`
	SavingRate      float64 `env:"MARKETSIM_SAVING_RATE" envDefault:"0.3"`
	InterestRate    float64 `env:"MARKETSIM_INTEREST_RATE" envDefault:"0.05"`

	// Clearing order: income_descending, income_ascending, or random.
	Policy string `env:"MARKETSIM_POLICY" envDefault:"income_descending"`

	// SeedFile points at a listing CSV. Empty = generate a synthetic market.
	SeedFile  string  `env:"MARKETSIM_SEED_FILE"`
	Listings  int     `env:"MARKETSIM_LISTINGS" envDefault:"200"`
	BasePrice float64 `env:"MARKETSIM_BASE_PRICE" envDefault:"250000"`

	// DBPath enables the SQLite run archive when set.
	DBPath string `env:"MARKETSIM_DB"`

	LogLevel string `env:"MARKETSIM_LOG_LEVEL" envDefault:"info"`
}

// Load parses the environment into a validated Config.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects configurations the simulation cannot run with, including
// income bounds the rejection sampler could never satisfy cheaply.
func (c *Config) Validate() error {
	if c.Population <= 0 {
		return fmt.Errorf("population must be positive, got %d", c.Population)
	}
	if c.Years < 0 {
		return fmt.Errorf("years must be non-negative, got %d", c.Years)
	}
	if c.IncomeMin > c.IncomeMax {
		return fmt.Errorf("income minimum %.0f exceeds maximum %.0f", c.IncomeMin, c.IncomeMax)
	}
	if c.IncomeMean < c.IncomeMin || c.IncomeMean > c.IncomeMax {
		return fmt.Errorf("income mean %.0f outside [%.0f, %.0f]", c.IncomeMean, c.IncomeMin, c.IncomeMax)
	}
	if c.IncomeStdDev <= 0 {
		return fmt.Errorf("income stddev must be positive, got %.0f", c.IncomeStdDev)
	}
	if c.DependentsMin < 0 || c.DependentsMax < c.DependentsMin {
		return fmt.Errorf("bad dependents range [%d, %d]", c.DependentsMin, c.DependentsMax)
	}
	if c.SavingRate < 0 || c.SavingRate > 1 {
		return fmt.Errorf("saving rate must be in [0, 1], got %.2f", c.SavingRate)
	}
	if c.InterestRate < 0 {
		return fmt.Errorf("interest rate must be non-negative, got %.2f", c.InterestRate)
	}
	if c.SeedFile == "" && c.Listings <= 0 {
		return fmt.Errorf("listings must be positive when generating a synthetic market, got %d", c.Listings)
	}
	if _, err := engine.ParseClearingPolicy(c.Policy); err != nil {
		return err
	}
	return nil
}

// Engine converts the validated configuration into the simulation's
// explicit config structure.
func (c *Config) Engine() engine.Config {
	policy, _ := engine.ParseClearingPolicy(c.Policy) // Validated in Load.
	return engine.Config{
		Seed:           c.Seed,
		PopulationSize: c.Population,
		Years:          c.Years,
		ReferenceYear:  c.ReferenceYear,
		Income: buyers.IncomeStats{
			Minimum: c.IncomeMin,
			Average: c.IncomeMean,
			StdDev:  c.IncomeStdDev,
			Maximum: c.IncomeMax,
		},
		Dependents: buyers.DependentsRange{
			Minimum: c.DependentsMin,
			Maximum: c.DependentsMax,
		},
		DownPaymentRate: c.DownPaymentRate,
		SavingRate:      c.SavingRate,
		InterestRate:    c.InterestRate,
		Policy:          policy,
	}
}
