package tui

import (
	"fmt"
	"strconv"

	"geodash/internal/config"
	"geodash/internal/geom"
	"geodash/internal/route"
	"geodash/internal/stats"
)

// fitPad is the share of the box added on each side when fitting.
const fitPad = 0.05

// minSpan keeps single-point boxes projectable.
const minSpan = 1e-6

// fitBBox frames the viewport on bb. A box that is not valid leaves the
// viewport as is and reports false.
func (m *Model) fitBBox(bb geom.BBox, ok bool) bool {
	if !ok || !bb.Valid() {
		m.status = "no bounds: viewport unchanged"
		return false
	}
	padX := bb.Width() * fitPad
	padY := bb.Height() * fitPad
	if padX < minSpan {
		padX = minSpan
	}
	if padY < minSpan {
		padY = minSpan
	}
	m.bbox = geom.BBox{MinX: bb.MinX - padX, MinY: bb.MinY - padY, MaxX: bb.MaxX + padX, MaxY: bb.MaxY + padY}
	m.zoom = 1.0
	m.offsetX, m.offsetY = 0, 0
	m.log.V(2).Info("viewport fitted", "bbox", bb.Array())
	return true
}

// fitSelected fits the viewport to the selected feature's polygon box.
func (m *Model) fitSelected() {
	if m.selected < 0 || m.selected >= len(m.data.Features) {
		m.status = "no feature selected"
		return
	}
	f := m.data.Features[m.selected]
	if m.fitBBox(f.BBox, f.HasBBox) {
		m.status = fmt.Sprintf("fit %s: [%.5f, %.5f, %.5f, %.5f]", f.ID, f.BBox.MinX, f.BBox.MinY, f.BBox.MaxX, f.BBox.MaxY)
	}
}

func (m *Model) fitDataset() {
	if len(m.data.Features) == 0 {
		m.status = "no data loaded"
		return
	}
	if m.fitBBox(m.data.BBox, true) {
		m.status = "fit dataset"
	}
}

// selectStep moves the feature selection by delta, wrapping around.
func (m *Model) selectStep(delta int) {
	n := len(m.data.Features)
	if n == 0 {
		m.status = "no data loaded"
		return
	}
	if m.selected < 0 {
		if delta > 0 {
			m.selected = 0
		} else {
			m.selected = n - 1
		}
	} else {
		m.selected = ((m.selected+delta)%n + n) % n
	}
	f := m.data.Features[m.selected]
	m.status = fmt.Sprintf("feature %d/%d  %s", m.selected+1, n, m.featureStats(m.selected))
	if !f.HasBBox {
		m.status += "  (no bounds)"
	}
}

// featureStats prefers a joined stats row over the feature's own properties.
func (m Model) featureStats(i int) stats.StatsData {
	f := m.data.Features[i]
	if s, ok := m.stats[f.ID]; ok {
		return s
	}
	return stats.FromProperties(f.ID, f.Props)
}

func (m Model) isHidden(label string) bool { return m.hidden[label] }

func (m Model) scale() config.Scale {
	return config.IsochroneScale(m.category, m.isHidden)
}

// featureColor returns the fill color of feature i for the current view.
// "" means the default foreground; config.Transparent means not drawn.
func (m Model) featureColor(i int) string {
	s := m.featureStats(i)
	if m.route.View == route.Isochrones {
		if s.Range == nil {
			return ""
		}
		return m.scale().ColorFor(*s.Range)
	}
	if _, ok := m.data.Features[i].Props["population_share"]; !ok {
		if _, joined := m.stats[m.data.Features[i].ID]; !joined {
			return ""
		}
	}
	return config.AdminColor(s.PopulationShare)
}

func (m Model) legend() []stats.LegendItem {
	if m.route.View == route.Isochrones {
		// show hidden bands under their own color, marked off
		return config.IsochroneScale(m.category, nil).Legend()
	}
	return config.AdminLegend()
}

// toggleBand hides or shows the isochrone band at legend index i.
func (m *Model) toggleBand(i int) {
	items := m.legend()
	if i < 0 || i >= len(items) {
		m.status = "no band " + strconv.Itoa(i+1)
		return
	}
	label := items[i].Label
	m.hidden[label] = !m.hidden[label]
	state := "shown"
	if m.hidden[label] {
		state = "hidden"
	}
	m.status = fmt.Sprintf("band %s: %s", label, state)
}

func (m *Model) setRoute(r route.Route) {
	m.route = r
	m.status = "route " + r.Path()
	m.log.V(1).Info("route changed", "route", r.Path())
	if r.View == route.Isochrones {
		m.log.V(2).Info("isochrone style", "category", m.category, "expression", m.scale().Expression())
	}
}

// toggleView flips between the admin and isochrone views.
func (m *Model) toggleView() {
	if m.route.View == route.Isochrones {
		m.setRoute(route.Route{View: route.Admin})
		return
	}
	m.setRoute(route.Route{View: route.Isochrones})
}
