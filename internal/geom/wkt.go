package geom

import (
	"strings"

	"github.com/paulmach/orb/encoding/wkt"
	"github.com/paulmach/orb/geojson"
	"github.com/pkg/errors"
)

// ParseWKT decodes a single WKT geometry into a one-feature Dataset.
func ParseWKT(s string) (Dataset, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Dataset{}, ErrEmptyWKT
	}
	g, err := wkt.Unmarshal(s)
	if err != nil {
		return Dataset{}, errors.Wrap(err, "wkt")
	}
	return newDataset([]*geojson.Feature{geojson.NewFeature(g)})
}
