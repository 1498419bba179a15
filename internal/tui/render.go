package tui

import (
	"math"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/paulmach/orb"

	"geodash/internal/config"
)

// cellToLonLat converts a map cell coordinate back to lon/lat using bbox, zoom, and pan.
func (m Model) cellToLonLat(cx, cy, w, h int) (float64, float64, bool) {
	if !(m.bbox.MaxX > m.bbox.MinX && m.bbox.MaxY > m.bbox.MinY) {
		return 0, 0, false
	}
	if w <= 1 || h <= 1 {
		return 0, 0, false
	}
	zx := float64(cx-m.offsetX) / float64(w-1)
	zy := 1.0 - float64(cy-m.offsetY)/float64(h-1)
	nx := 0.5 + (zx-0.5)/m.zoom
	ny := 0.5 + (zy-0.5)/m.zoom
	lon := m.bbox.MinX + nx*(m.bbox.MaxX-m.bbox.MinX)
	lat := m.bbox.MinY + ny*(m.bbox.MaxY-m.bbox.MinY)
	return lon, lat, true
}

func polygonsOf(g orb.Geometry) []orb.Polygon {
	switch g := g.(type) {
	case orb.Polygon:
		return []orb.Polygon{g}
	case orb.MultiPolygon:
		return g
	case orb.Collection:
		var out []orb.Polygon
		for _, c := range g {
			out = append(out, polygonsOf(c)...)
		}
		return out
	}
	return nil
}

func linesOf(g orb.Geometry) []orb.LineString {
	switch g := g.(type) {
	case orb.LineString:
		return []orb.LineString{g}
	case orb.MultiLineString:
		return g
	case orb.Collection:
		var out []orb.LineString
		for _, c := range g {
			out = append(out, linesOf(c)...)
		}
		return out
	}
	return nil
}

func pointsOf(g orb.Geometry) []orb.Point {
	switch g := g.(type) {
	case orb.Point:
		return []orb.Point{g}
	case orb.MultiPoint:
		return g
	case orb.Collection:
		var out []orb.Point
		for _, c := range g {
			out = append(out, pointsOf(c)...)
		}
		return out
	}
	return nil
}

// eachVertex visits every vertex of g.
func eachVertex(g orb.Geometry, fn func(p orb.Point)) {
	for _, p := range pointsOf(g) {
		fn(p)
	}
	for _, ls := range linesOf(g) {
		for _, p := range ls {
			fn(p)
		}
	}
	for _, poly := range polygonsOf(g) {
		for _, ring := range poly {
			for _, p := range ring {
				fn(p)
			}
		}
	}
}

func (m Model) renderAsciiMap(w, h int) string {
	// High-resolution braille buffer for crisp lines/edges
	br := newBrailleBuf(w, h)
	_, nLines, nPolys := m.data.Counts()

	for i, f := range m.data.Features {
		col := m.featureColor(i)
		if col == config.Transparent {
			continue
		}
		br.color = col
		if m.showPolys {
			for _, poly := range polygonsOf(f.Geometry) {
				m.drawPolygon(br, poly, w, h, true)
			}
		}
		if m.showLines {
			for _, ls := range linesOf(f.Geometry) {
				m.drawLineString(br, ls, w, h)
			}
		}
		// Draw points only when dataset has no lines or polygons
		if m.showPoints && nLines == 0 && nPolys == 0 {
			for _, p := range pointsOf(f.Geometry) {
				mx, my, ok := m.screenXYMicro(p[0], p[1], w, h)
				if !ok {
					continue
				}
				br.setPixel(mx, my)
			}
		}
	}
	// selected feature outline on top
	if m.selected >= 0 && m.selected < len(m.data.Features) {
		br.color = string(accentFg)
		g := m.data.Features[m.selected].Geometry
		for _, poly := range polygonsOf(g) {
			m.drawPolygon(br, poly, w, h, false)
		}
		for _, ls := range linesOf(g) {
			m.drawLineString(br, ls, w, h)
		}
	}

	cells := br.toCells()
	// Hover highlight: draw an orange circle at the hovered vertex cell
	if m.hovering {
		cx := m.hoverMicX / 2
		cy := m.hoverMicY / 4
		if cy >= 0 && cy < len(cells) && cx >= 0 && cx < len(cells[cy]) {
			cells[cy][cx] = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFA500")).Render("◯")
		}
	}
	lines := make([]string, len(cells))
	for y, row := range cells {
		lines[y] = strings.Join(row, "")
	}
	return strings.Join(lines, "\n")
}

// drawPolygon draws ring edges, filling the outer ring first when fill is set.
func (m Model) drawPolygon(br *brailleBuf, poly orb.Polygon, w, h int, fill bool) {
	var ringsMic [][][2]int
	for _, ring := range poly {
		var sm [][2]int
		for _, p := range ring {
			mx, my, ok := m.screenXYMicro(p[0], p[1], w, h)
			if !ok {
				continue
			}
			sm = append(sm, [2]int{mx, my})
		}
		if len(sm) >= 3 {
			ringsMic = append(ringsMic, sm)
		}
	}
	if len(ringsMic) == 0 {
		return
	}
	// fill using even-odd rule per scanline on outer ring (microgrid, holes ignored for now)
	if fill {
		outerMic := ringsMic[0]
		hMic := h * 4
		for yMic := 0; yMic < hMic; yMic++ {
			var xs []int
			for i := 0; i < len(outerMic); i++ {
				a := outerMic[i]
				b := outerMic[(i+1)%len(outerMic)]
				if a[1] == b[1] { // horizontal edge: skip
					continue
				}
				y0, y1 := a[1], b[1]
				x0, x1 := a[0], b[0]
				if (yMic >= y0 && yMic < y1) || (yMic >= y1 && yMic < y0) {
					t := float64(yMic-y0) / float64(y1-y0)
					xs = append(xs, int(float64(x0)+t*float64(x1-x0)))
				}
			}
			if len(xs) < 2 {
				continue
			}
			sort.Ints(xs)
			for i := 0; i+1 < len(xs); i += 2 {
				xstart, xend := xs[i], xs[i+1]
				for xMic := max(0, xstart); xMic <= min(xend, w*2-1); xMic++ {
					br.setPixel(xMic, yMic)
				}
			}
		}
	}
	// draw edges (high-res)
	for _, r := range ringsMic {
		for i := 0; i < len(r); i++ {
			a := r[i]
			b := r[(i+1)%len(r)]
			br.drawLineMicro(a[0], a[1], b[0], b[1])
		}
	}
}

func (m Model) drawLineString(br *brailleBuf, ls orb.LineString, w, h int) {
	var prev *[2]int
	for _, p := range ls {
		mx, my, ok := m.screenXYMicro(p[0], p[1], w, h)
		if !ok {
			continue
		}
		if prev != nil {
			br.drawLineMicro(prev[0], prev[1], mx, my)
		}
		prev = &[2]int{mx, my}
	}
}

// screenXYMicro maps lon/lat into a 2x4 microgrid per cell for braille rendering.
func (m Model) screenXYMicro(lon, lat float64, w, h int) (int, int, bool) {
	if !(m.bbox.MaxX > m.bbox.MinX && m.bbox.MaxY > m.bbox.MinY) {
		return 0, 0, false
	}
	nx := (lon - m.bbox.MinX) / (m.bbox.MaxX - m.bbox.MinX)
	ny := (lat - m.bbox.MinY) / (m.bbox.MaxY - m.bbox.MinY)
	zx := 0.5 + (nx-0.5)*m.zoom
	zy := 0.5 + (ny-0.5)*m.zoom
	wMic := w * 2
	hMic := h * 4
	sx, okX := clampScreen(zx * float64(wMic-1))
	sy, okY := clampScreen((1.0 - zy) * float64(hMic-1))
	if !okX || !okY {
		return 0, 0, false
	}
	return sx + m.offsetX*2, sy + m.offsetY*4, true
}

// screenXY maps lon/lat to current screen integer coordinates considering zoom and pan.
func (m Model) screenXY(lon, lat float64, w, h int) (int, int, bool) {
	if !(m.bbox.MaxX > m.bbox.MinX && m.bbox.MaxY > m.bbox.MinY) {
		return 0, 0, false
	}
	nx := (lon - m.bbox.MinX) / (m.bbox.MaxX - m.bbox.MinX)
	ny := (lat - m.bbox.MinY) / (m.bbox.MaxY - m.bbox.MinY)
	// Apply zoom around center (0.5, 0.5)
	zx := 0.5 + (nx-0.5)*m.zoom
	zy := 0.5 + (ny-0.5)*m.zoom
	sx, okX := clampScreen(zx * float64(w-1))
	sy, okY := clampScreen((1.0 - zy) * float64(h-1))
	if !okX || !okY {
		return 0, 0, false
	}
	return sx + m.offsetX, sy + m.offsetY, true
}

// maxScreen bounds projected coordinates so far off-screen vertices stay
// cheap to rasterize.
const maxScreen = 1 << 15

// clampScreen truncates v to an int within ±maxScreen. NaN and Inf are
// rejected.
func clampScreen(v float64) (int, bool) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return int(math.Max(-maxScreen, math.Min(maxScreen, v))), true
}

// inspectNearest finds the feature with a vertex closest to the viewport
// center and returns its index and that vertex.
func (m Model) inspectNearest() (idx int, lon, lat float64, ok bool) {
	_, _, w, h := m.mapLayout()
	cx, cy := w/2, h/2
	bestD := 1<<31 - 1
	idx = -1
	var best orb.Point
	for i, f := range m.data.Features {
		eachVertex(f.Geometry, func(p orb.Point) {
			sx, sy, ok2 := m.screenXY(p[0], p[1], w, h)
			if !ok2 {
				return
			}
			dx := sx - cx
			dy := sy - cy
			if d := dx*dx + dy*dy; d < bestD {
				bestD = d
				best = p
				idx = i
			}
		})
	}
	if idx < 0 {
		return -1, 0, 0, false
	}
	return idx, best[0], best[1], true
}
