package stats

import (
	"fmt"
	"strconv"
	"strings"
)

// StatsData is the per-unit statistic joined to a map feature.
type StatsData struct {
	ID              string
	Population      float64
	PopulationShare float64  // 0-100
	Range           *float64 // isochrone band upper bound in meters
	Extra           map[string]any
}

type CountryOption struct {
	Label string `yaml:"label"`
	Value string `yaml:"value"`
}

type LegendItem struct {
	Color string
	Label string
}

// FromProperties builds StatsData from GeoJSON feature properties.
// Unknown keys are kept in Extra.
func FromProperties(id string, props map[string]any) StatsData {
	s := StatsData{ID: id}
	for k, v := range props {
		switch k {
		case "population":
			s.Population, _ = toFloat(v)
		case "population_share":
			s.PopulationShare, _ = toFloat(v)
		case "range":
			if f, ok := toFloat(v); ok {
				s.Range = &f
			}
		case "id":
		default:
			if s.Extra == nil {
				s.Extra = map[string]any{}
			}
			s.Extra[k] = v
		}
	}
	return s
}

func (s StatsData) String() string {
	if s.Range != nil {
		return fmt.Sprintf("%s range=%g", s.ID, *s.Range)
	}
	return fmt.Sprintf("%s pop=%g share=%.1f%%", s.ID, s.Population, s.PopulationShare)
}

func toFloat(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case float32:
		return float64(t), true
	case int:
		return float64(t), true
	case int64:
		return float64(t), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		return f, err == nil
	}
	return 0, false
}
