package loader

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/mini-market/internal/market"
)

func writeSeedFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "listings.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeSeedFile(t,
		"id,price,area,bedrooms,year_built,quality_score,available\n"+
			"1,100000,1000,2,2020,NA,\n"+
			"2,250000.5,1800,3,2015,4,true\n"+
			"3,180000,1400,3,1995,,false\n")

	rows, err := Load(path)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, market.SeedRow{
		ID: 1, Price: 100000, Area: 1000, Bedrooms: 2, YearBuilt: 2020,
		Quality: market.QualityUnset, Available: true,
	}, rows[0])
	assert.Equal(t, market.QualityGood, rows[1].Quality)
	assert.Equal(t, 250000.5, rows[1].Price)
	assert.False(t, rows[2].Available)
	assert.Equal(t, market.QualityUnset, rows[2].Quality)
}

func TestLoad_NormalizesHeaders(t *testing.T) {
	path := writeSeedFile(t,
		"ID,Price,Area,Bedrooms,Year Built\n"+
			"1,100000,1000,2,2020\n")

	rows, err := Load(path)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 2020, rows[0].YearBuilt)
	assert.True(t, rows[0].Available) // Missing column defaults to available.
}

func TestLoad_MissingRequiredColumn(t *testing.T) {
	path := writeSeedFile(t,
		"id,price,area,bedrooms\n"+
			"1,100000,1000,2\n")

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "year_built")
}

func TestLoad_BadValues(t *testing.T) {
	tests := []struct {
		name string
		row  string
	}{
		{"bad price", "1,lots,1000,2,2020,,"},
		{"bad quality", "1,100000,1000,2,2020,9,"},
		{"bad available", "1,100000,1000,2,2020,,maybe"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeSeedFile(t,
				"id,price,area,bedrooms,year_built,quality_score,available\n"+tt.row+"\n")
			_, err := Load(path)
			assert.Error(t, err)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.csv"))
	assert.Error(t, err)
}

func TestNormalizeColumn(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Year Built", "year_built"},
		{" Price ($) ", "price_"},
		{"quality_score", "quality_score"},
		{"BEDROOMS", "bedrooms"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeColumn(tt.in), "input %q", tt.in)
	}
}
