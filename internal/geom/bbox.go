package geom

import (
	"math"

	"github.com/paulmach/orb"
)

// ComputeBBox returns the bounding box of a Polygon or MultiPolygon.
// Any other geometry kind, a geometry without points, or a geometry holding
// a NaN or infinite coordinate yields false.
func ComputeBBox(g orb.Geometry) (BBox, bool) {
	acc := BBox{
		MinX: math.Inf(1),
		MinY: math.Inf(1),
		MaxX: math.Inf(-1),
		MaxY: math.Inf(-1),
	}
	switch g := g.(type) {
	case orb.Polygon:
		acc = foldPolygon(acc, g)
	case orb.MultiPolygon:
		for _, p := range g {
			acc = foldPolygon(acc, p)
		}
	case *orb.Polygon:
		if g != nil {
			acc = foldPolygon(acc, *g)
		}
	case *orb.MultiPolygon:
		if g != nil {
			for _, p := range *g {
				acc = foldPolygon(acc, p)
			}
		}
	}
	if !acc.Valid() {
		return BBox{}, false
	}
	return acc, true
}

func foldPolygon(acc BBox, p orb.Polygon) BBox {
	for _, r := range p {
		acc = foldRing(acc, r)
	}
	return acc
}

// foldRing uses math.Min/Max so a NaN coordinate sticks in the accumulator.
func foldRing(acc BBox, r orb.Ring) BBox {
	for _, pt := range r {
		acc.MinX = math.Min(acc.MinX, pt[0])
		acc.MinY = math.Min(acc.MinY, pt[1])
		acc.MaxX = math.Max(acc.MaxX, pt[0])
		acc.MaxY = math.Max(acc.MaxY, pt[1])
	}
	return acc
}
