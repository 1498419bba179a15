package geom

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/pkg/errors"
)

var (
	ErrNoGeometries = errors.New("no geometries found")
	ErrEmptyWKT     = errors.New("empty wkt")
)

// LoadFeatures reads a GeoJSON file and returns its features.
// Supports FeatureCollection, a single Feature, or a bare geometry object.
func LoadFeatures(path string) (Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Dataset{}, errors.Wrap(err, "read geojson")
	}
	return DecodeFeatures(data)
}

// DecodeFeatures decodes GeoJSON bytes, see LoadFeatures.
func DecodeFeatures(data []byte) (Dataset, error) {
	var head struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return Dataset{}, errors.Wrap(err, "decode geojson")
	}
	var feats []*geojson.Feature
	switch head.Type {
	case "FeatureCollection":
		fc, err := geojson.UnmarshalFeatureCollection(data)
		if err != nil {
			return Dataset{}, errors.Wrap(err, "decode feature collection")
		}
		feats = fc.Features
	case "Feature":
		f, err := geojson.UnmarshalFeature(data)
		if err != nil {
			return Dataset{}, errors.Wrap(err, "decode feature")
		}
		feats = []*geojson.Feature{f}
	case "":
		return Dataset{}, errors.New("invalid geojson: missing type")
	default:
		g, err := geojson.UnmarshalGeometry(data)
		if err != nil {
			return Dataset{}, errors.Wrapf(err, "decode %s geometry", head.Type)
		}
		feats = []*geojson.Feature{geojson.NewFeature(g.Geometry())}
	}
	return newDataset(feats)
}

func newDataset(feats []*geojson.Feature) (Dataset, error) {
	var d Dataset
	extent, hasExtent := BBox{}, false
	for i, f := range feats {
		if f == nil || f.Geometry == nil {
			continue
		}
		ft := Feature{
			ID:       featureID(f, i),
			Geometry: f.Geometry,
			Props:    map[string]any(f.Properties),
		}
		ft.BBox, ft.HasBBox = ComputeBBox(f.Geometry)
		bb, ok := ft.BBox, ft.HasBBox
		if !ok {
			// points and lines still count toward the viewport extent
			bb, ok = fromBound(f.Geometry.Bound())
		}
		if ok {
			if hasExtent {
				extent = extent.Union(bb)
			} else {
				extent, hasExtent = bb, true
			}
		}
		d.Features = append(d.Features, ft)
	}
	if len(d.Features) == 0 || !hasExtent {
		return Dataset{}, ErrNoGeometries
	}
	d.BBox = extent
	return d, nil
}

func fromBound(b orb.Bound) (BBox, bool) {
	bb := BBox{MinX: b.Min[0], MinY: b.Min[1], MaxX: b.Max[0], MaxY: b.Max[1]}
	return bb, bb.Valid()
}

// featureID prefers the GeoJSON id, then an "id" property, then the index.
func featureID(f *geojson.Feature, idx int) string {
	if f.ID != nil {
		return fmt.Sprint(f.ID)
	}
	if v, ok := f.Properties["id"]; ok && v != nil {
		return fmt.Sprint(v)
	}
	return fmt.Sprintf("%d", idx)
}
