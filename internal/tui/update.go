package tui

import (
	"fmt"
	"path/filepath"
	"strings"

	list "github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/paulmach/orb"

	"geodash/internal/config"
	"geodash/internal/geom"
	"geodash/internal/route"
)

const sidebarWidth = 28

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.showSidebar {
			m.l.SetSize(sidebarWidth-2, m.height-1-2) // provisional; will be refined in View
		}
	case tea.KeyMsg:
		// If list is visible and filtering, send keys to list and ignore global commands
		if m.showSidebar && m.l.FilterState() == list.Filtering {
			var cmd tea.Cmd
			m.l, cmd = m.l.Update(msg)
			return m, cmd
		}
		if m.pasteMode {
			return m.updatePaste(msg)
		}
		if m.route.View == route.Isochrones && m.showLegend {
			if k := msg.String(); len(k) == 1 && k[0] >= '0' && k[0] <= '9' {
				// 1..9 then 0 for the tenth band
				i := int(k[0]-'0') - 1
				if i < 0 {
					i = 9
				}
				m.toggleBand(i)
				return m, nil
			}
		}
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "1":
			m.showPoints = !m.showPoints
			m.status = fmt.Sprintf("points: %v", m.showPoints)
		case "2":
			m.showLines = !m.showLines
			m.status = fmt.Sprintf("lines: %v", m.showLines)
		case "3":
			m.showPolys = !m.showPolys
			m.status = fmt.Sprintf("polys: %v", m.showPolys)
		case "+", "=":
			if m.zoom < 64 {
				m.zoom *= 1.2
				m.status = fmt.Sprintf("zoom: %.2fx", m.zoom)
			}
		case "-", "_":
			if m.zoom > 0.05 {
				m.zoom /= 1.2
				m.status = fmt.Sprintf("zoom: %.2fx", m.zoom)
			}
		case "tab":
			m.showSidebar = !m.showSidebar
			if m.showSidebar {
				m.refreshSidebar()
				m.l.SetSize(sidebarWidth-2, m.height-1-2)
			}
		case "p":
			m.pasteMode = true
			m.ta.SetValue("")
			m.status = "paste mode"
			m.ta.Focus()
		case "h":
			m.helpVisible = !m.helpVisible
		case "a":
			m.showAttrs = !m.showAttrs
			if m.showAttrs {
				m.refreshAttrsFromCurrent()
			}
		case "g":
			m.showLegend = !m.showLegend
		case "m":
			m.toggleView()
		case "n":
			m.selectStep(1)
		case "N":
			m.selectStep(-1)
		case "f":
			m.fitSelected()
		case "F":
			m.fitDataset()
		case "esc":
			m.inspectPopup = ""
		case "i":
			m.inspect()
		case "l":
			// toggle all layers
			all := m.showPoints && m.showLines && m.showPolys
			m.showPoints = !all
			m.showLines = !all
			m.showPolys = !all
			m.status = fmt.Sprintf("layers: pts=%v ls=%v poly=%v", m.showPoints, m.showLines, m.showPolys)
		case "enter":
			if m.showSidebar {
				if it, ok := m.l.SelectedItem().(sidebarItem); ok {
					m.openItem(it)
				}
			}
		case "up":
			m.offsetY -= 1
		case "down":
			m.offsetY += 1
		case "left":
			m.offsetX -= 2
		case "right":
			m.offsetX += 2
		}
	case tea.MouseMsg:
		m.updateHover(msg)
	}
	// Pass messages to list when visible
	if m.showSidebar {
		var cmd tea.Cmd
		m.l, cmd = m.l.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) updatePaste(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.pasteMode = false
		m.ta.Blur()
		m.status = "view mode"
		return m, nil
	case "enter":
		w := strings.TrimSpace(m.ta.Value())
		if w == "" {
			m.status = "paste: empty"
			return m, nil
		}
		d, err := geom.ParseWKT(w)
		if err != nil {
			m.status = "wkt error: " + err.Error()
			m.log.V(1).Info("pasted wkt rejected", "error", err.Error())
			return m, nil
		}
		m.setDataset("", d)
		m.pasteMode = false
		m.ta.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.ta, cmd = m.ta.Update(msg)
	return m, cmd
}

// inspect selects the feature nearest to the viewport center and builds the popup.
func (m *Model) inspect() {
	idx, lon, lat, ok := m.inspectNearest()
	if !ok {
		m.inspectPopup = "no feature nearby"
		m.status = m.inspectPopup
		return
	}
	m.selected = idx
	f := m.data.Features[idx]
	name := filepath.Base(m.selPath)
	if m.selPath == "" {
		name = "<pasted>"
	}
	bounds, center := "none", "none"
	if f.HasBBox {
		bounds = fmt.Sprintf("[%.5f, %.5f, %.5f, %.5f]", f.BBox.MinX, f.BBox.MinY, f.BBox.MaxX, f.BBox.MaxY)
		cx, cy := f.BBox.Center()
		center = fmt.Sprintf("lon=%.6f lat=%.6f", cx, cy)
	}
	meta := []string{
		fmt.Sprintf("name: %s", name),
		fmt.Sprintf("route: %s", m.route.Path()),
		fmt.Sprintf("feature: %s (%s)", f.ID, geometryType(f.Geometry)),
		fmt.Sprintf("stats: %s", m.featureStats(idx)),
		fmt.Sprintf("bbox: %s", bounds),
		fmt.Sprintf("center: %s", center),
		fmt.Sprintf("nearest: lon=%.6f lat=%.6f", lon, lat),
	}
	if m.route.Country != "" {
		meta = append(meta, "source: "+config.HDXBaseURL+"/"+m.route.Country)
	}
	m.inspectPopup = strings.Join(meta, "\n")
	m.status = "inspect popup"
}

func geometryType(g orb.Geometry) string {
	if g == nil {
		return "none"
	}
	return g.GeoJSONType()
}

// updateHover tracks the hovered map cell and the nearest vertex to it.
func (m *Model) updateHover(msg tea.MouseMsg) {
	// compute map origin and size (must match View layout)
	mapOriginX, mapOriginY, mapWidth, mapHeight := m.mapLayout()
	cx, cy := msg.X, msg.Y
	if cx < mapOriginX || cx >= mapOriginX+mapWidth || cy < mapOriginY || cy >= mapOriginY+mapHeight {
		m.hovering = false
		m.hoverHasGeo = false
		return
	}
	m.hovering = true
	m.hoverCellX = cx - mapOriginX
	m.hoverCellY = cy - mapOriginY
	// compute lon/lat for footer
	if lon, lat, ok := m.cellToLonLat(m.hoverCellX, m.hoverCellY, mapWidth, mapHeight); ok {
		m.hoverHasGeo = true
		m.hoverLon = lon
		m.hoverLat = lat
	} else {
		m.hoverHasGeo = false
	}
	// find nearest vertex using micro coords
	hxMic := m.hoverCellX * 2
	hyMic := m.hoverCellY * 4
	best := 1<<31 - 1
	bx, by := hxMic, hyMic
	for _, f := range m.data.Features {
		eachVertex(f.Geometry, func(p orb.Point) {
			mx, my, ok := m.screenXYMicro(p[0], p[1], mapWidth, mapHeight)
			if !ok {
				return
			}
			dx := mx - hxMic
			dy := my - hyMic
			if d := dx*dx + dy*dy; d < best {
				best = d
				bx, by = mx, my
			}
		})
	}
	m.hoverMicX, m.hoverMicY = bx, by
}
