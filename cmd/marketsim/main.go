// Command marketsim runs one round of the agent-based housing-market
// simulation: build the market, spawn the buyer population, project savings,
// clear the market, and report the outcome.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/dustin/go-humanize"

	"github.com/talgya/mini-market/internal/config"
	"github.com/talgya/mini-market/internal/engine"
	"github.com/talgya/mini-market/internal/loader"
	"github.com/talgya/mini-market/internal/market"
	"github.com/talgya/mini-market/internal/marketgen"
	"github.com/talgya/mini-market/internal/persistence"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "configuration error:", err)
		os.Exit(1)
	}

	level := slog.LevelInfo
	if cfg.LogLevel == "debug" {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	slog.Info("marketsim starting",
		"seed", cfg.Seed,
		"population", cfg.Population,
		"years", cfg.Years,
		"policy", cfg.Policy,
	)

	// ── Seed data ─────────────────────────────────────────────────────
	var rows []market.SeedRow
	if cfg.SeedFile != "" {
		rows, err = loader.Load(cfg.SeedFile)
		if err != nil {
			slog.Error("failed to load seed file", "path", cfg.SeedFile, "error", err)
			os.Exit(1)
		}
		slog.Info("seed file loaded", "path", cfg.SeedFile, "listings", len(rows))
	} else {
		rows = marketgen.Generate(marketgen.GenConfig{
			Count:      cfg.Listings,
			Seed:       cfg.Seed,
			BasePrice:  cfg.BasePrice,
			NewestYear: cfg.ReferenceYear,
			OldestYear: cfg.ReferenceYear - 74,
		})
		slog.Info("synthetic market generated", "listings", len(rows))
	}

	// ── Run ───────────────────────────────────────────────────────────
	sim := engine.New(cfg.Engine())

	steps := []struct {
		name string
		run  func() error
	}{
		{"build market", func() error { return sim.BuildMarket(rows) }},
		{"generate population", sim.GeneratePopulation},
		{"project savings", sim.ProjectAllSavings},
		{"clear market", sim.ClearMarket},
	}
	for _, step := range steps {
		if err := step.run(); err != nil {
			slog.Error("stage failed", "stage", step.name, "error", err)
			os.Exit(1)
		}
	}

	stats, err := sim.Report()
	if err != nil {
		slog.Error("report failed", "error", err)
		os.Exit(1)
	}
	if err := sim.LogReport(); err != nil {
		slog.Error("report failed", "error", err)
		os.Exit(1)
	}

	// ── Optional archive ──────────────────────────────────────────────
	if cfg.DBPath != "" {
		db, err := persistence.Open(cfg.DBPath)
		if err != nil {
			slog.Error("failed to open archive database", "path", cfg.DBPath, "error", err)
			os.Exit(1)
		}
		defer db.Close()

		runID, err := db.SaveRun(sim, stats)
		if err != nil {
			slog.Error("failed to archive run", "error", err)
			os.Exit(1)
		}
		slog.Info("archive written", "path", cfg.DBPath, "run_id", runID)
	}

	fmt.Printf("\n%s of %s buyers housed (ownership %.1f%%), %s of %s listings still available (availability %.1f%%).\n",
		humanize.Comma(int64(stats.Housed)), humanize.Comma(int64(stats.Buyers)), stats.OwnershipRate*100,
		humanize.Comma(int64(stats.Listings-stats.Sold)), humanize.Comma(int64(stats.Listings)), stats.AvailabilityRate*100)
	fmt.Printf("Total sold value: %s\n", humanize.CommafWithDigits(stats.SoldValue, 0))
}
