package geom

import (
	"math"

	"github.com/paulmach/orb"
)

// BBox is an axis-aligned box in lon/lat order.
type BBox struct {
	MinX float64
	MinY float64
	MaxX float64
	MaxY float64
}

// Array returns the box as [minX, minY, maxX, maxY].
func (b BBox) Array() [4]float64 {
	return [4]float64{b.MinX, b.MinY, b.MaxX, b.MaxY}
}

// Valid reports whether all four values are finite and ordered.
func (b BBox) Valid() bool {
	for _, v := range b.Array() {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return b.MinX <= b.MaxX && b.MinY <= b.MaxY
}

func (b BBox) Width() float64  { return b.MaxX - b.MinX }
func (b BBox) Height() float64 { return b.MaxY - b.MinY }

func (b BBox) Center() (float64, float64) {
	return (b.MinX + b.MaxX) / 2, (b.MinY + b.MaxY) / 2
}

// Union returns the smallest box containing both b and o.
func (b BBox) Union(o BBox) BBox {
	if o.MinX < b.MinX {
		b.MinX = o.MinX
	}
	if o.MinY < b.MinY {
		b.MinY = o.MinY
	}
	if o.MaxX > b.MaxX {
		b.MaxX = o.MaxX
	}
	if o.MaxY > b.MaxY {
		b.MaxY = o.MaxY
	}
	return b
}

// Feature is one decoded GeoJSON feature with its precomputed box.
type Feature struct {
	ID       string
	Geometry orb.Geometry
	Props    map[string]any
	BBox     BBox
	HasBBox  bool // false for non-polygon or degenerate geometry
}

// Dataset is a minimal geometry container for rendering
type Dataset struct {
	Features []Feature
	BBox     BBox
}

// Counts returns the number of point, line and polygon parts in the dataset.
func (d Dataset) Counts() (pts, lines, polys int) {
	for _, f := range d.Features {
		switch g := f.Geometry.(type) {
		case orb.Point:
			pts++
		case orb.MultiPoint:
			pts += len(g)
		case orb.LineString:
			lines++
		case orb.MultiLineString:
			lines += len(g)
		case orb.Polygon:
			polys++
		case orb.MultiPolygon:
			polys += len(g)
		}
	}
	return pts, lines, polys
}
