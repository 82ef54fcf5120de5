// Package persistence provides SQLite-based archiving of finished runs:
// the run record plus the final listing and buyer state, for downstream
// aggregation. The simulation core never imports this package.
package persistence

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/talgya/mini-market/internal/engine"
)

// DB wraps a SQLite connection for run archiving.
type DB struct {
	conn *sqlx.DB
}

// Open opens or creates a SQLite database at the given path.
func Open(path string) (*DB, error) {
	conn, err := sqlx.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		run_id TEXT PRIMARY KEY,
		created_at TEXT NOT NULL,
		seed INTEGER NOT NULL,
		policy TEXT NOT NULL,
		years INTEGER NOT NULL,
		population INTEGER NOT NULL,
		listings INTEGER NOT NULL,
		down_payment_rate REAL NOT NULL,
		saving_rate REAL NOT NULL,
		interest_rate REAL NOT NULL,
		ownership_rate REAL NOT NULL,
		availability_rate REAL NOT NULL,
		sold_value REAL NOT NULL
	);

	CREATE TABLE IF NOT EXISTS listings (
		run_id TEXT NOT NULL,
		id INTEGER NOT NULL,
		price REAL NOT NULL,
		area REAL NOT NULL,
		bedrooms INTEGER NOT NULL,
		year_built INTEGER NOT NULL,
		quality_score INTEGER NOT NULL,
		available INTEGER NOT NULL,
		PRIMARY KEY (run_id, id)
	);

	CREATE TABLE IF NOT EXISTS buyers (
		run_id TEXT NOT NULL,
		id INTEGER NOT NULL,
		annual_income REAL NOT NULL,
		dependents INTEGER NOT NULL,
		segment TEXT NOT NULL,
		savings REAL NOT NULL,
		listing_id INTEGER,
		PRIMARY KEY (run_id, id)
	);

	CREATE INDEX IF NOT EXISTS idx_listings_run ON listings(run_id);
	CREATE INDEX IF NOT EXISTS idx_buyers_run ON buyers(run_id);
	`
	_, err := db.conn.Exec(schema)
	return err
}

// SaveRun writes one cleared run and its final state in a single
// transaction. Returns the generated run id.
func (db *DB) SaveRun(sim *engine.Simulation, stats engine.RunStats) (string, error) {
	runID := uuid.NewString()
	cfg := sim.Config()

	tx, err := db.conn.Beginx()
	if err != nil {
		return "", err
	}
	defer tx.Rollback()

	_, err = tx.Exec(`INSERT INTO runs
		(run_id, created_at, seed, policy, years, population, listings,
		 down_payment_rate, saving_rate, interest_rate,
		 ownership_rate, availability_rate, sold_value)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		runID, time.Now().UTC().Format(time.RFC3339), cfg.Seed, cfg.Policy.String(),
		cfg.Years, stats.Buyers, stats.Listings,
		cfg.DownPaymentRate, cfg.SavingRate, cfg.InterestRate,
		stats.OwnershipRate, stats.AvailabilityRate, stats.SoldValue,
	)
	if err != nil {
		return "", fmt.Errorf("insert run: %w", err)
	}

	stmt, err := tx.Preparex(`INSERT INTO listings
		(run_id, id, price, area, bedrooms, year_built, quality_score, available)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return "", err
	}
	defer stmt.Close()

	for _, h := range sim.Inventory.Houses {
		available := 0
		if h.Available {
			available = 1
		}
		if _, err := stmt.Exec(runID, h.ID, h.Price, h.Area, h.Bedrooms, h.YearBuilt, h.Quality, available); err != nil {
			return "", fmt.Errorf("insert listing %d: %w", h.ID, err)
		}
	}

	bstmt, err := tx.Preparex(`INSERT INTO buyers
		(run_id, id, annual_income, dependents, segment, savings, listing_id)
		VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return "", err
	}
	defer bstmt.Close()

	for _, b := range sim.Buyers {
		var listingID *int
		if b.Home != nil {
			listingID = &b.Home.ID
		}
		if _, err := bstmt.Exec(runID, b.ID, b.AnnualIncome, b.Dependents, b.Segment.String(), b.Savings, listingID); err != nil {
			return "", fmt.Errorf("insert buyer %d: %w", b.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", err
	}

	slog.Info("run archived", "run_id", runID, "listings", stats.Listings, "buyers", stats.Buyers)
	return runID, nil
}

// RunSummary is one archived run row.
type RunSummary struct {
	RunID            string  `db:"run_id" json:"run_id"`
	CreatedAt        string  `db:"created_at" json:"created_at"`
	Seed             int64   `db:"seed" json:"seed"`
	Policy           string  `db:"policy" json:"policy"`
	OwnershipRate    float64 `db:"ownership_rate" json:"ownership_rate"`
	AvailabilityRate float64 `db:"availability_rate" json:"availability_rate"`
}

// RecentRuns returns the most recent N archived runs.
func (db *DB) RecentRuns(limit int) ([]RunSummary, error) {
	var runs []RunSummary
	err := db.conn.Select(&runs,
		`SELECT run_id, created_at, seed, policy, ownership_rate, availability_rate
		 FROM runs ORDER BY created_at DESC LIMIT ?`, limit)
	return runs, err
}
