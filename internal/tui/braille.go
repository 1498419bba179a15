package tui

import "github.com/charmbracelet/lipgloss"

type brailleBuf struct {
	w, h  int        // in cells
	m     [][]uint8  // per-cell 8-bit mask
	c     [][]string // per-cell color, last writer wins
	color string     // color applied by setPixel
}

func newBrailleBuf(w, h int) *brailleBuf {
	m := make([][]uint8, h)
	c := make([][]string, h)
	for i := range m {
		m[i] = make([]uint8, w)
		c[i] = make([]string, w)
	}
	return &brailleBuf{w: w, h: h, m: m, c: c}
}

// setPixel sets a micro-pixel at micro coords (2x4 per cell)
func (b *brailleBuf) setPixel(mx, my int) {
	if mx < 0 || my < 0 {
		return
	}
	cx, rx := mx/2, mx%2
	cy, ry := my/4, my%4
	if cy >= b.h || cx >= b.w {
		return
	}
	var bit uint8
	if rx == 0 {
		switch ry {
		case 0:
			bit = 0x01
		case 1:
			bit = 0x02
		case 2:
			bit = 0x04
		case 3:
			bit = 0x40
		}
	} else {
		switch ry {
		case 0:
			bit = 0x08
		case 1:
			bit = 0x10
		case 2:
			bit = 0x20
		case 3:
			bit = 0x80
		}
	}
	b.m[cy][cx] |= bit
	b.c[cy][cx] = b.color
}

// drawLineMicro draws a line on the microgrid using Bresenham
func (b *brailleBuf) drawLineMicro(x0, y0, x1, y1 int) {
	dx := abs(x1 - x0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	dy := -abs(y1 - y0)
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx + dy
	for {
		b.setPixel(x0, y0)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// toCells renders each cell to a printable string, colored when set.
func (b *brailleBuf) toCells() [][]string {
	styles := map[string]lipgloss.Style{}
	out := make([][]string, b.h)
	for y := 0; y < b.h; y++ {
		row := make([]string, b.w)
		for x := 0; x < b.w; x++ {
			mask := b.m[y][x]
			if mask == 0 {
				row[x] = " "
				continue
			}
			glyph := string(rune(0x2800 + int(mask)))
			col := b.c[y][x]
			if col == "" {
				row[x] = glyph
				continue
			}
			st, ok := styles[col]
			if !ok {
				st = lipgloss.NewStyle().Foreground(lipgloss.Color(col))
				styles[col] = st
			}
			row[x] = st.Render(glyph)
		}
		out[y] = row
	}
	return out
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
