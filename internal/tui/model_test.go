package tui

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"geodash/internal/config"
	"geodash/internal/geom"
	"geodash/internal/route"
)

const adminFC = `{"type":"FeatureCollection","features":[
 {"type":"Feature","id":"KE-01","properties":{"population":1200,"population_share":42.5},
  "geometry":{"type":"Polygon","coordinates":[[[0,0],[4,0],[4,3],[0,3],[0,0]]]}},
 {"type":"Feature","properties":{"id":7,"population":50,"population_share":3},
  "geometry":{"type":"MultiPolygon","coordinates":[[[[5,5],[7,5],[7,7],[5,7],[5,5]]]]}},
 {"type":"Feature","properties":{},"geometry":{"type":"Point","coordinates":[-2,1]}}
]}`

const isoFC = `{"type":"FeatureCollection","features":[
 {"type":"Feature","properties":{"range":5000},
  "geometry":{"type":"Polygon","coordinates":[[[0,0],[1,0],[1,1],[0,0]]]}},
 {"type":"Feature","properties":{"range":10000},
  "geometry":{"type":"Polygon","coordinates":[[[0,0],[2,0],[2,2],[0,0]]]}}
]}`

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	return p
}

func press(m Model, keys ...string) Model {
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "tab":
			msg = tea.KeyMsg{Type: tea.KeyTab}
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		case "right":
			msg = tea.KeyMsg{Type: tea.KeyRight}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		next, _ := m.Update(msg)
		m = next.(Model)
	}
	return m
}

func resize(m Model, w, h int) Model {
	next, _ := m.Update(tea.WindowSizeMsg{Width: w, Height: h})
	return next.(Model)
}

func newAdminModel(t *testing.T) Model {
	t.Helper()
	p := writeFile(t, t.TempDir(), "admin.geojson", adminFC)
	m, err := New(DefaultOptions().WithPath(p))
	require.NoError(t, err)
	return resize(m, 100, 40)
}

func TestNewValidatesOptions(t *testing.T) {
	_, err := New(DefaultOptions().WithRoute("/a/b"))
	assert.ErrorIs(t, err, route.ErrUnknownRoute)

	_, err = New(DefaultOptions().WithCategory("transit"))
	assert.Error(t, err)

	_, err = New(DefaultOptions().WithCountriesFile(filepath.Join(t.TempDir(), "missing.yaml")))
	assert.Error(t, err)
}

func TestLoadFitsDataset(t *testing.T) {
	m := newAdminModel(t)
	require.Len(t, m.data.Features, 3)
	assert.Equal(t, [4]float64{-2, 0, 7, 7}, m.data.BBox.Array())
	bb := m.bbox.Array()
	assert.InDeltaSlice(t, []float64{-2.45, -0.35, 7.45, 7.35}, bb[:], 1e-9)
	assert.True(t, m.showPolys)
	assert.False(t, m.showPoints)
	assert.Contains(t, m.status, "counts: pts=1 ls=0 poly=2")
}

func TestFitSelectedFeature(t *testing.T) {
	m := newAdminModel(t)
	m = press(m, "+", "right")
	m = press(m, "n", "f")
	assert.Equal(t, 0, m.selected)
	assert.InDelta(t, -0.2, m.bbox.MinX, 1e-9)
	assert.InDelta(t, -0.15, m.bbox.MinY, 1e-9)
	assert.InDelta(t, 4.2, m.bbox.MaxX, 1e-9)
	assert.InDelta(t, 3.15, m.bbox.MaxY, 1e-9)
	assert.Equal(t, 1.0, m.zoom)
	assert.Equal(t, 0, m.offsetX)
	assert.Contains(t, m.status, "fit KE-01")

	m = press(m, "F")
	assert.InDelta(t, -2.45, m.bbox.MinX, 1e-9)
	assert.Equal(t, "fit dataset", m.status)
}

func TestFitWithoutBoundsKeepsViewport(t *testing.T) {
	m := newAdminModel(t)
	m = press(m, "N") // wraps to the point feature
	require.Equal(t, 2, m.selected)
	assert.Contains(t, m.status, "(no bounds)")
	before := m.bbox
	m = press(m, "f")
	assert.Equal(t, before, m.bbox)
	assert.Equal(t, "no bounds: viewport unchanged", m.status)
}

func TestFitWithoutSelection(t *testing.T) {
	m := newAdminModel(t)
	m = press(m, "f")
	assert.Equal(t, "no feature selected", m.status)

	empty, err := New(DefaultOptions())
	require.NoError(t, err)
	empty = press(empty, "F")
	assert.Equal(t, "no data loaded", empty.status)
}

func TestAdminColors(t *testing.T) {
	m := newAdminModel(t)
	assert.Equal(t, "#1d91c0", m.featureColor(0))
	assert.Equal(t, "#020b2e", m.featureColor(1))
	assert.Equal(t, "", m.featureColor(2))
}

func TestStatsJoinOverridesProperties(t *testing.T) {
	dir := t.TempDir()
	p := writeFile(t, dir, "admin.geojson", adminFC)
	s := writeFile(t, dir, "stats.csv", "id,population_share\nKE-01,95\n")
	m, err := New(DefaultOptions().WithPath(p).WithStatsFile(s))
	require.NoError(t, err)
	assert.Equal(t, "#ffffd9", m.featureColor(0))
	assert.Equal(t, "#020b2e", m.featureColor(1))
}

func TestIsochroneViewAndBands(t *testing.T) {
	p := writeFile(t, t.TempDir(), "iso.geojson", isoFC)
	m, err := New(DefaultOptions().WithPath(p).WithRoute("/isochrones"))
	require.NoError(t, err)
	m = resize(m, 100, 40)

	assert.Equal(t, route.Isochrones, m.route.View)
	assert.Equal(t, "#fde725", m.featureColor(0))
	assert.Equal(t, "#b5de2b", m.featureColor(1))

	m = press(m, "2")
	assert.True(t, m.hidden["10 km"])
	assert.Equal(t, config.Transparent, m.featureColor(1))
	assert.Equal(t, "band 10 km: hidden", m.status)

	m = press(m, "2")
	assert.False(t, m.hidden["10 km"])

	m = press(m, "m")
	assert.Equal(t, route.Route{View: route.Admin}, m.route)
	assert.Equal(t, "route /", m.status)
	// digits are layer toggles again in the admin view
	m = press(m, "3")
	assert.False(t, m.showPolys)
}

func TestCountrySidebarLoadsCountry(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "ken.geojson", adminFC)
	countries := writeFile(t, dir, "countries.yaml", "- label: Kenya\n  value: ken\n- label: Uganda\n  value: uga\n")
	m, err := New(DefaultOptions().WithCountriesFile(countries).WithDataDir(dir))
	require.NoError(t, err)
	m = resize(m, 100, 40)

	m = press(m, "tab")
	require.True(t, m.showSidebar)
	require.Len(t, m.items, 2)
	m = press(m, "enter")
	assert.Equal(t, route.Route{View: route.Admin, Country: "ken"}, m.route)
	require.Len(t, m.data.Features, 3)
	assert.Equal(t, filepath.Join(dir, "ken.geojson"), m.selPath)
}

func TestCountryRouteAtLaunch(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "ken.geojson", adminFC)
	m, err := New(DefaultOptions().WithRoute("#/ken").WithDataDir(dir))
	require.NoError(t, err)
	assert.Equal(t, "ken", m.route.Country)
	assert.Len(t, m.data.Features, 3)

	m, err = New(DefaultOptions().WithRoute("/uga").WithDataDir(dir))
	require.NoError(t, err)
	assert.Empty(t, m.data.Features)
	assert.Equal(t, "no data for uga", m.status)
}

func TestPasteWKT(t *testing.T) {
	m, err := New(DefaultOptions())
	require.NoError(t, err)
	m = resize(m, 100, 40)
	m = press(m, "p")
	require.True(t, m.pasteMode)
	m.ta.SetValue("POLYGON((0 0, 2 0, 2 2, 0 0))")
	m = press(m, "enter")
	assert.False(t, m.pasteMode)
	require.Len(t, m.data.Features, 1)
	bb := m.bbox.Array()
	assert.InDeltaSlice(t, []float64{-0.1, -0.1, 2.1, 2.1}, bb[:], 1e-9)
	assert.Contains(t, m.status, "<pasted>")

	m = press(m, "p")
	m.ta.SetValue("NOT WKT")
	m = press(m, "enter")
	assert.True(t, m.pasteMode)
	assert.Contains(t, m.status, "wkt error")
	m = press(m, "esc")
	assert.False(t, m.pasteMode)
}

func TestInspectAndAttributes(t *testing.T) {
	m := newAdminModel(t)
	m = press(m, "i")
	assert.Contains(t, m.inspectPopup, "feature: ")
	assert.Contains(t, m.inspectPopup, "route: /")
	assert.Contains(t, m.inspectPopup, "center: ")
	assert.GreaterOrEqual(t, m.selected, 0)
	m = press(m, "esc")
	assert.Empty(t, m.inspectPopup)

	m = press(m, "a")
	require.True(t, m.showAttrs)
	cols := m.tbl.Columns()
	require.Len(t, cols, 4)
	assert.Equal(t, "id", cols[1].Title)
	assert.Len(t, m.tbl.Rows(), 3)
}

func TestHoverTracksLonLat(t *testing.T) {
	m := newAdminModel(t)
	next, _ := m.Update(tea.MouseMsg{X: 5, Y: 5})
	m = next.(Model)
	assert.True(t, m.hovering)
	assert.True(t, m.hoverHasGeo)

	next, _ = m.Update(tea.MouseMsg{X: 99, Y: 0})
	m = next.(Model)
	assert.False(t, m.hovering)
}

func TestViewRenders(t *testing.T) {
	m := newAdminModel(t)
	m = press(m, "n")
	out := m.View()
	assert.Contains(t, out, "geodash")
	assert.Contains(t, out, "Population share")
	assert.Contains(t, out, "0-10%")

	m = press(m, "g", "h")
	out = m.View()
	assert.NotContains(t, out, "Population share")
}

func hasBraille(s string) bool {
	return strings.IndexFunc(s, func(r rune) bool { return r > 0x2800 && r <= 0x28FF }) >= 0
}

func TestPasteSinglePointIsVisible(t *testing.T) {
	m, err := New(DefaultOptions())
	require.NoError(t, err)
	m = resize(m, 100, 40)
	m = press(m, "p")
	m.ta.SetValue("POINT(1 2)")
	m = press(m, "enter")
	require.Len(t, m.data.Features, 1)

	assert.InDelta(t, 1-minSpan, m.bbox.MinX, 1e-12)
	assert.InDelta(t, 2-minSpan, m.bbox.MinY, 1e-12)
	assert.InDelta(t, 1+minSpan, m.bbox.MaxX, 1e-12)
	assert.InDelta(t, 2+minSpan, m.bbox.MaxY, 1e-12)
	assert.True(t, hasBraille(m.renderAsciiMap(40, 12)))

	next, _ := m.Update(tea.MouseMsg{X: 5, Y: 5})
	m = next.(Model)
	assert.True(t, m.hoverHasGeo)
}

func TestRenderSkipsNonFiniteVertices(t *testing.T) {
	d, err := geom.ParseWKT("MULTIPOLYGON(((0 0, 4 0, 4 4, 0 0)),((NaN 1, 3 3, 1 3, NaN 1)))")
	require.NoError(t, err)
	require.False(t, d.Features[0].HasBBox)

	m, err := New(DefaultOptions())
	require.NoError(t, err)
	m = resize(m, 100, 40)
	m.setDataset("", d)

	_, _, ok := m.screenXYMicro(math.NaN(), 1, 40, 12)
	assert.False(t, ok)
	_, _, ok = m.screenXY(1, math.Inf(1), 40, 12)
	assert.False(t, ok)
	sx, _, ok := m.screenXYMicro(1e300, 1, 40, 12)
	require.True(t, ok)
	assert.LessOrEqual(t, sx, maxScreen)

	done := make(chan string, 1)
	go func() { done <- m.renderAsciiMap(40, 12) }()
	select {
	case out := <-done:
		assert.True(t, hasBraille(out))
	case <-time.After(5 * time.Second):
		t.Fatal("renderAsciiMap did not return")
	}

	m = press(m, "i")
	assert.Contains(t, m.inspectPopup, "feature: 0 (MultiPolygon)")
}

func TestInspectUsesMapLayout(t *testing.T) {
	fc := `{"type":"FeatureCollection","features":[
 {"type":"Feature","properties":{},"geometry":{"type":"Point","coordinates":[0,0]}},
 {"type":"Feature","properties":{},"geometry":{"type":"Point","coordinates":[10,10]}},
 {"type":"Feature","properties":{},"geometry":{"type":"Point","coordinates":[5.5,5]}},
 {"type":"Feature","properties":{},"geometry":{"type":"Point","coordinates":[5,3]}}
]}`
	p := writeFile(t, t.TempDir(), "pts.geojson", fc)
	m, err := New(DefaultOptions().WithPath(p))
	require.NoError(t, err)
	m = resize(m, 320, 40)
	m.bbox = geom.BBox{MaxX: 10, MaxY: 10}

	// on the wide map the vertical neighbour is closer in cells
	idx, lon, lat, ok := m.inspectNearest()
	require.True(t, ok)
	assert.Equal(t, 3, idx)
	assert.Equal(t, 5.0, lon)
	assert.Equal(t, 3.0, lat)
}

func TestHelpNamesDigitKeys(t *testing.T) {
	m := newAdminModel(t)
	assert.Contains(t, m.renderHelp(), "1/2/3 layers")

	m = press(m, "m")
	assert.Contains(t, m.renderHelp(), "0-9 bands")

	m = press(m, "g")
	assert.Contains(t, m.renderHelp(), "1/2/3 layers")
}
