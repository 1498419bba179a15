package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"geodash/internal/route"
)

const (
	headerHeight = 1
	footerHeight = 2
	legendWidth  = 18
)

// mapLayout returns the map origin and size for the current window.
func (m Model) mapLayout() (x, y, w, h int) {
	contentHeight := max(4, m.height-headerHeight-footerHeight)
	contentWidth := max(10, m.width)
	w = contentWidth - 1
	if m.showSidebar {
		w -= sidebarWidth
		x = sidebarWidth + 1
	}
	if m.showLegend {
		w -= legendWidth
	}
	return x, headerHeight, max(10, w), contentHeight
}

func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	contentHeight := max(4, m.height-headerHeight-footerHeight)
	contentWidth := max(10, m.width)
	_, _, mapWidth, mapHeight := m.mapLayout()

	// Update list size with accurate content height when sidebar visible
	if m.showSidebar {
		m.l.SetSize(sidebarWidth-2, contentHeight-2)
	}

	// Header
	title := fmt.Sprintf(" geodash ─ %s view ─ %s ", m.route.View, m.route.Path())
	header := lipgloss.NewStyle().Width(contentWidth).Padding(0).Render(titleStyle.Render(title))

	// Sidebar
	var sidebar string
	if m.showSidebar {
		sidebar = lipgloss.NewStyle().Width(sidebarWidth).Render(m.l.View())
	}

	// map canvas has no border
	mapW := max(8, mapWidth)
	mapH := max(4, mapHeight)
	var mapView string
	if m.showAttrs {
		// infer a reasonable width from columns
		colW := 0
		for _, c := range m.tbl.Columns() {
			colW += c.Width + 3
		}
		if colW == 0 {
			colW = min(60, contentWidth-6)
		}
		maxW := min(mapWidth, max(32, colW))
		m.tbl.SetWidth(maxW - 4)
		m.tbl.SetHeight(min(mapHeight-2, 20))
		attrsBox := boxStyle.Width(maxW).Render(m.tbl.View())
		mapView = lipgloss.Place(mapWidth, mapHeight, lipgloss.Center, lipgloss.Center, attrsBox)
	} else {
		var ascii string
		if m.pasteMode {
			m.ta.SetWidth(mapW)
			m.ta.SetHeight(min(mapH, 12))
			ascii = m.ta.View()
		} else {
			ascii = m.renderAsciiMap(mapW, mapH)
		}
		// plain map canvas: no border, no background highlight
		mapView = lipgloss.NewStyle().Width(mapWidth).Height(mapHeight).Render(ascii)
	}

	// Build inspect popup box (center-left overlay, not in map column)
	popup := ""
	if m.inspectPopup != "" && !m.showAttrs {
		maxPopupW := max(20, min(56, contentWidth/2))
		box := lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1).MaxWidth(maxPopupW).Render(m.inspectPopup)
		popup = lipgloss.Place(contentWidth, contentHeight, lipgloss.Left, lipgloss.Center, box)
	}

	// Body row
	cols := []string{}
	if m.showSidebar {
		cols = append(cols, sidebar, " ")
	}
	cols = append(cols, mapView)
	if m.showLegend {
		cols = append(cols, m.renderLegend(contentHeight))
	}
	body := lipgloss.JoinHorizontal(lipgloss.Top, cols...)

	// Footer / help
	help := m.renderHelp()
	status := dimStyle.Render(" " + m.status + " ")
	// mouse coords at bottom-right
	coords := ""
	if m.hoverHasGeo {
		coords = dimStyle.Render(fmt.Sprintf("  lon=%.5f lat=%.5f  ", m.hoverLon, m.hoverLat))
	}
	left := lipgloss.JoinHorizontal(lipgloss.Bottom, status, help)
	spacerW := max(0, contentWidth-lipgloss.Width(left)-lipgloss.Width(coords))
	right := lipgloss.Place(spacerW+lipgloss.Width(coords), 1, lipgloss.Right, lipgloss.Center, coords)
	footer := lipgloss.NewStyle().Width(contentWidth).Render(lipgloss.JoinHorizontal(lipgloss.Bottom, left, right))

	// Compose UI with popup overlay between header and body
	ui := lipgloss.JoinVertical(lipgloss.Left, header, popup, body, footer)
	return appStyle.Width(contentWidth).Height(m.height).Render(ui)
}

func (m Model) renderLegend(h int) string {
	title := "Population share"
	if m.route.View == route.Isochrones {
		title = "Distance (" + m.category + ")"
	}
	rows := []string{titleStyle.Render(title)}
	items := m.legend()
	if len(items) == 0 {
		rows = append(rows, dimStyle.Render("no bands"))
	}
	for i, it := range items {
		label := it.Label
		if m.route.View == route.Isochrones {
			label = fmt.Sprintf("%d %s", (i+1)%10, label)
			if m.isHidden(it.Label) {
				rows = append(rows, swatch(it.Color)+" "+offStyle.Render(label))
				continue
			}
		}
		rows = append(rows, swatch(it.Color)+" "+label)
	}
	return lipgloss.NewStyle().Width(legendWidth).MaxHeight(h).Render(strings.Join(rows, "\n"))
}

func (m Model) renderHelp() string {
	if !m.helpVisible {
		return ""
	}
	keys := []string{
		"↑↓←→ pan",
		"+/- zoom",
		"n/N select",
		"f/F fit",
		"m view",
		"g legend",
		m.digitHint(),
		"Tab sidebar",
		"p paste",
		"a attrs",
		"i inspect",
		"q quit",
	}
	return dimStyle.Render("  " + strings.Join(keys, "  "))
}

// digitHint names what the digit keys do right now.
func (m Model) digitHint() string {
	if m.route.View == route.Isochrones && m.showLegend {
		return "0-9 bands"
	}
	return "1/2/3 layers"
}
