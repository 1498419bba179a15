package config

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"geodash/internal/stats"
)

func TestURLs(t *testing.T) {
	assert.Equal(t, "https://warm.storage.heigit.org/heigit-hdx-public/access/aux/countries.yaml", CountriesURL)
}

func TestAdminColor(t *testing.T) {
	assert.Equal(t, "#020b2e", AdminColor(0))
	assert.Equal(t, "#020b2e", AdminColor(9.99))
	assert.Equal(t, "#081d58", AdminColor(10))
	assert.Equal(t, "#1d91c0", AdminColor(42.5))
	assert.Equal(t, "#ffffd9", AdminColor(100))
	assert.Equal(t, "#ffffd9", AdminColor(250))
	assert.Equal(t, "#020b2e", AdminColor(-5))
	assert.Equal(t, "", AdminColor(math.NaN()))
	assert.Equal(t, "", AdminColor(math.Inf(1)))
}

func TestAdminLegend(t *testing.T) {
	l := AdminLegend()
	require.Len(t, l, 10)
	assert.Equal(t, stats.LegendItem{Color: "#020b2e", Label: "0-10%"}, l[0])
	assert.Equal(t, stats.LegendItem{Color: "#ffffd9", Label: "90-100%"}, l[9])
}

func TestIsochroneScaleEducation(t *testing.T) {
	s := IsochroneScale("education", func(label string) bool { return label == "10 km" })
	require.Len(t, s.Steps, 10)

	expr := s.Expression()
	require.Len(t, expr, 2+10+9)
	assert.Equal(t, "step", expr[0])
	assert.Equal(t, []any{"to-number", []any{"get", "range"}}, expr[1])
	assert.Equal(t, "#fde725", expr[2])
	assert.Equal(t, 5001.0, expr[3])
	assert.Equal(t, Transparent, expr[4])
	assert.Equal(t, 45001.0, expr[len(expr)-2])
	assert.Equal(t, "#440154", expr[len(expr)-1])

	assert.Equal(t, "#fde725", s.ColorFor(0))
	assert.Equal(t, "#fde725", s.ColorFor(5000))
	assert.Equal(t, Transparent, s.ColorFor(5001))
	assert.Equal(t, "#6ece58", s.ColorFor(10001))
	assert.Equal(t, "#440154", s.ColorFor(99999))

	legend := s.Legend()
	require.Len(t, legend, 10)
	assert.Equal(t, "50 km", legend[9].Label)
}

func TestIsochroneScaleOtherCategory(t *testing.T) {
	s := IsochroneScale("health", nil)
	assert.Empty(t, s.Steps)
	assert.Equal(t, []any{"step", []any{"to-number", []any{"get", "range"}}}, s.Expression())
	assert.Equal(t, "", s.ColorFor(10))
	assert.Empty(t, s.Legend())
}

func TestIsochroneScaleNilHidden(t *testing.T) {
	s := IsochroneScale("education", nil)
	for i, st := range s.Steps {
		assert.Equal(t, IsochroneColorsEducation[i], st.Color)
	}
}

func TestLoadCountries(t *testing.T) {
	p := filepath.Join(t.TempDir(), "countries.yaml")
	body := "- label: Kenya\n  value: ken\n- label: Missing\n- value: uga\n"
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))

	got, err := LoadCountries(p)
	require.NoError(t, err)
	assert.Equal(t, []stats.CountryOption{
		{Label: "Kenya", Value: "ken"},
		{Label: "uga", Value: "uga"},
	}, got)

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("label: [\n"), 0o644))
	_, err = LoadCountries(bad)
	assert.Error(t, err)

	_, err = LoadCountries(filepath.Join(t.TempDir(), "none.yaml"))
	assert.Error(t, err)
}
