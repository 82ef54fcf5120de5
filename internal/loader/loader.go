// Package loader ingests listing seed data from CSV. It is the external
// tabular collaborator: the simulation core never touches files.
//
// Headers are normalized to snake_case before lookup, so "Year Built",
// "year_built" and "YearBuilt " all map to the same column. "NA" and empty
// cells in optional columns map to unset values.
package loader

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/talgya/mini-market/internal/market"
)

// Columns the seed file must provide, post-normalization.
var requiredColumns = []string{"id", "price", "area", "bedrooms", "year_built"}

// Load reads the CSV at path into seed rows, preserving file order.
func Load(path string) ([]market.SeedRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open seed file: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("seed file %s is empty", path)
	}

	cols, err := columnIndex(records[0])
	if err != nil {
		return nil, fmt.Errorf("seed file %s: %w", path, err)
	}

	rows := make([]market.SeedRow, 0, len(records)-1)
	for line, rec := range records[1:] {
		row, err := parseRow(rec, cols)
		if err != nil {
			return nil, fmt.Errorf("seed file %s line %d: %w", path, line+2, err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// columnIndex maps normalized header names to field positions and checks
// that every required column is present.
func columnIndex(header []string) (map[string]int, error) {
	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[NormalizeColumn(name)] = i
	}
	for _, name := range requiredColumns {
		if _, ok := cols[name]; !ok {
			return nil, fmt.Errorf("missing required column %q", name)
		}
	}
	return cols, nil
}

func parseRow(rec []string, cols map[string]int) (market.SeedRow, error) {
	var row market.SeedRow
	var err error

	if row.ID, err = intField(rec, cols, "id"); err != nil {
		return row, err
	}
	if row.Price, err = floatField(rec, cols, "price"); err != nil {
		return row, err
	}
	if row.Area, err = floatField(rec, cols, "area"); err != nil {
		return row, err
	}
	if row.Bedrooms, err = intField(rec, cols, "bedrooms"); err != nil {
		return row, err
	}
	if row.YearBuilt, err = intField(rec, cols, "year_built"); err != nil {
		return row, err
	}

	// Optional quality score: unset when absent, "NA", or empty.
	row.Quality = market.QualityUnset
	if raw, ok := optionalField(rec, cols, "quality_score"); ok {
		score, err := strconv.Atoi(raw)
		if err != nil || score < int(market.QualityPoor) || score > int(market.QualityExcellent) {
			return row, fmt.Errorf("bad quality_score %q", raw)
		}
		row.Quality = market.QualityScore(score)
	}

	// Optional availability flag: defaults to true.
	row.Available = true
	if raw, ok := optionalField(rec, cols, "available"); ok {
		avail, err := strconv.ParseBool(raw)
		if err != nil {
			return row, fmt.Errorf("bad available flag %q", raw)
		}
		row.Available = avail
	}

	return row, nil
}

func intField(rec []string, cols map[string]int, name string) (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(rec[cols[name]]))
	if err != nil {
		return 0, fmt.Errorf("bad %s value %q", name, rec[cols[name]])
	}
	return v, nil
}

func floatField(rec []string, cols map[string]int, name string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(rec[cols[name]]), 64)
	if err != nil {
		return 0, fmt.Errorf("bad %s value %q", name, rec[cols[name]])
	}
	return v, nil
}

// optionalField returns the trimmed cell for an optional column, reporting
// false when the column is absent or the cell is empty or "NA".
func optionalField(rec []string, cols map[string]int, name string) (string, bool) {
	idx, ok := cols[name]
	if !ok || idx >= len(rec) {
		return "", false
	}
	raw := strings.TrimSpace(rec[idx])
	if raw == "" || raw == "NA" {
		return "", false
	}
	return raw, true
}

// NormalizeColumn lowercases a header, converts spaces to underscores, and
// strips everything but alphanumerics and underscores.
func NormalizeColumn(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	name = strings.ReplaceAll(name, " ", "_")
	var b strings.Builder
	for _, r := range name {
		if r == '_' || (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}
