package config

import (
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"geodash/internal/stats"
)

// Remote data locations. Nothing is fetched by geodash itself. HDXBaseURL
// links a country route to its source dataset in the inspect popup; the
// others name where the published tiles, countries list and basemap live.
const (
	TilesBaseURL   = "https://warm.storage.heigit.org/heigit-hdx-public/access/aux/tiles"
	StorageBaseURL = "https://warm.storage.heigit.org/heigit-hdx-public"
	CountriesURL   = StorageBaseURL + "/access/aux/countries.yaml"
	HDXBaseURL     = "https://data.humdata.org/dataset"
	BasemapStyle   = "https://basemaps.cartocdn.com/gl/positron-gl-style/style.json"
)

// Transparent is used for hidden legend bands.
const Transparent = "rgba(0,0,0,0)"

// AdminColors10 is a 10-class YlGnBu-like ramp, reversed: low share is dark.
var AdminColors10 = []string{
	"#020b2e", // 0-10
	"#081d58",
	"#253494",
	"#225ea8",
	"#1d91c0",
	"#41b6c4",
	"#7fcdbb",
	"#c7e9b4",
	"#edf8b1",
	"#ffffd9", // 90-100
}

var IsochroneColorsEducation = []string{
	"#fde725", // yellow
	"#b5de2b",
	"#6ece58",
	"#35b779",
	"#1f9e89",
	"#26828e",
	"#31688e",
	"#3e4989",
	"#482878",
	"#440154", // dark purple
}

var IsochroneColorsHealth = []string{
	"#fde725",
	"#c2df23",
	"#86d549",
	"#52c569",
	"#2ab07f",
	"#1e9b8a",
	"#25858e",
	"#2d708e",
	"#38588c",
	"#433e85",
	"#482173",
	"#440154",
}

// AdminColor maps a population share (0-100) to its ramp class.
func AdminColor(share float64) string {
	if math.IsNaN(share) || math.IsInf(share, 0) {
		return ""
	}
	i := int(math.Floor(share / 10))
	if i < 0 {
		i = 0
	}
	if i >= len(AdminColors10) {
		i = len(AdminColors10) - 1
	}
	return AdminColors10[i]
}

// AdminLegend lists the admin classes from low to high share.
func AdminLegend() []stats.LegendItem {
	out := make([]stats.LegendItem, 0, len(AdminColors10))
	for i, c := range AdminColors10 {
		out = append(out, stats.LegendItem{Color: c, Label: fmt.Sprintf("%d-%d%%", i*10, i*10+10)})
	}
	return out
}

// LoadCountries reads a countries list of {label, value} entries.
func LoadCountries(path string) ([]stats.CountryOption, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read countries")
	}
	var raw []stats.CountryOption
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, errors.Wrap(err, "decode countries")
	}
	out := raw[:0]
	for _, c := range raw {
		c.Value = strings.TrimSpace(c.Value)
		if c.Value == "" {
			continue
		}
		if c.Label == "" {
			c.Label = c.Value
		}
		out = append(out, c)
	}
	return out, nil
}
