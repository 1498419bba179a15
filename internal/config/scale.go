package config

import "geodash/internal/stats"

// Step is one band of a step color scale. Values >= Min take Color.
type Step struct {
	Min   float64
	Color string
	Label string
}

// Scale is a step function over an isochrone's range property.
// The first step has no lower bound.
type Scale struct {
	Steps []Step
}

var educationLabels = []string{"5 km", "10 km", "15 km", "20 km", "25 km", "30 km", "35 km", "40 km", "45 km", "50 km"}

// IsochroneScale returns the color scale for an isochrone category.
// Bands whose label is hidden are painted Transparent.
// Only "education" has fixed bands; other categories yield an empty scale.
func IsochroneScale(category string, hidden func(label string) bool) Scale {
	if category != "education" {
		return Scale{}
	}
	if hidden == nil {
		hidden = func(string) bool { return false }
	}
	var s Scale
	for i, label := range educationLabels {
		st := Step{Color: IsochroneColorsEducation[i], Label: label}
		if i > 0 {
			// ranges are in meters; 5001 starts the 10 km band
			st.Min = float64(i*5000 + 1)
		}
		if hidden(label) {
			st.Color = Transparent
		}
		s.Steps = append(s.Steps, st)
	}
	return s
}

// Expression renders the scale as a MapLibre step expression on "range".
func (s Scale) Expression() []any {
	expr := []any{"step", []any{"to-number", []any{"get", "range"}}}
	for i, st := range s.Steps {
		if i > 0 {
			expr = append(expr, st.Min)
		}
		expr = append(expr, st.Color)
	}
	return expr
}

// ColorFor evaluates the step function. An empty scale returns "".
func (s Scale) ColorFor(v float64) string {
	if len(s.Steps) == 0 {
		return ""
	}
	c := s.Steps[0].Color
	for _, st := range s.Steps[1:] {
		if v < st.Min {
			break
		}
		c = st.Color
	}
	return c
}

func (s Scale) Legend() []stats.LegendItem {
	out := make([]stats.LegendItem, 0, len(s.Steps))
	for _, st := range s.Steps {
		out = append(out, stats.LegendItem{Color: st.Color, Label: st.Label})
	}
	return out
}
