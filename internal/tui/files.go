package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	list "github.com/charmbracelet/bubbles/list"

	"geodash/internal/geom"
	"geodash/internal/route"
	"geodash/internal/stats"
)

type sidebarItem struct {
	title, desc string
	path        string
	country     string
}

func (f sidebarItem) Title() string       { return f.title }
func (f sidebarItem) Description() string { return f.desc }
func (f sidebarItem) FilterValue() string { return f.title }

// refreshSidebar lists countries when configured, else data files in cwd.
func (m *Model) refreshSidebar() {
	var items []list.Item
	if len(m.countries) > 0 {
		for _, c := range m.countries {
			items = append(items, sidebarItem{title: c.Label, desc: c.Value, country: c.Value})
		}
	} else {
		entries, err := os.ReadDir(m.cwd)
		if err != nil {
			m.status = "read dir error: " + err.Error()
			m.log.Error(err, "read dir failed", "dir", m.cwd)
			return
		}
		for _, e := range entries {
			name := e.Name()
			if e.IsDir() {
				continue
			}
			ext := strings.ToLower(filepath.Ext(name))
			if ext == ".geojson" || ext == ".json" || ext == ".wkt" || ext == ".csv" {
				items = append(items, sidebarItem{title: name, desc: ext, path: filepath.Join(m.cwd, name)})
			}
		}
		sort.SliceStable(items, func(i, j int) bool { return items[i].(sidebarItem).Title() < items[j].(sidebarItem).Title() })
		if len(items) == 0 {
			m.status = "no supported files in current directory"
		}
	}
	m.items = items
	m.l.SetItems(items)
}

// openItem acts on a sidebar selection.
func (m *Model) openItem(it sidebarItem) {
	if it.country != "" {
		m.setRoute(route.Route{View: route.Admin, Country: it.country})
		m.loadCountry(it.country)
		return
	}
	m.loadPath(it.path)
}

// loadCountry loads <dataDir>/<country>.geojson when a data dir is set.
func (m *Model) loadCountry(country string) {
	if m.dataDir == "" {
		m.status = "route " + m.route.Path() + "  (no data dir)"
		return
	}
	p := filepath.Join(m.dataDir, country+".geojson")
	if _, err := os.Stat(p); err != nil {
		m.status = "no data for " + country
		m.log.V(1).Info("country data missing", "country", country, "path", p)
		return
	}
	m.loadPath(p)
}

// loadPath loads supported formats into the model.
func (m *Model) loadPath(p string) {
	ext := strings.ToLower(filepath.Ext(p))
	switch ext {
	case ".geojson", ".json":
		d, err := geom.LoadFeatures(p)
		if err != nil {
			m.status = "load error: " + err.Error()
			m.log.Error(err, "load failed", "path", p)
			return
		}
		m.setDataset(p, d)
	case ".wkt":
		data, err := os.ReadFile(p)
		if err != nil {
			m.status = "load error: " + err.Error()
			m.log.Error(err, "load failed", "path", p)
			return
		}
		d, err := geom.ParseWKT(string(data))
		if err != nil {
			m.status = "wkt error: " + err.Error()
			m.log.Error(err, "wkt parse failed", "path", p)
			return
		}
		m.setDataset(p, d)
	case ".csv":
		st, err := stats.LoadCSV(p)
		if err != nil {
			m.status = "load error: " + err.Error()
			m.log.Error(err, "stats load failed", "path", p)
			return
		}
		m.stats = st
		m.status = fmt.Sprintf("joined stats: %s  rows=%d", filepath.Base(p), len(st))
		m.log.V(1).Info("stats joined", "path", p, "rows", len(st))
		return
	default:
		m.status = "unsupported file: " + ext
		return
	}
	// If attributes are currently shown, verify availability for the new dataset
	if m.showAttrs {
		m.refreshAttrsFromCurrent()
	}
}

// setDataset replaces the current data and fits the viewport to it.
func (m *Model) setDataset(p string, d geom.Dataset) {
	m.selPath = p
	m.data = d
	m.selected = -1
	m.fitBBox(d.BBox, true)
	pts, ls, polys := d.Counts()
	// prefer polys > lines > points for visibility
	m.showPolys = polys > 0
	m.showLines = ls > 0 && !m.showPolys
	m.showPoints = pts > 0 && !m.showPolys
	name := filepath.Base(p)
	if p == "" {
		name = "<pasted>"
	}
	m.status = "loaded: " + name +
		fmt.Sprintf("  counts: pts=%d ls=%d poly=%d", pts, ls, polys)
	m.log.V(1).Info("dataset loaded", "path", p, "features", len(d.Features), "bbox", d.BBox.Array())
}
