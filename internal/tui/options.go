package tui

import (
	"github.com/go-logr/logr"
	"github.com/pkg/errors"

	"geodash/internal/route"
)

// Options configures the dashboard at launch.
type Options struct {
	path          string
	route         string
	countriesFile string
	dataDir       string
	statsFile     string
	category      string
	logger        logr.Logger
}

func DefaultOptions() Options {
	return Options{route: "/", category: "education", logger: logr.Discard()}
}

// WithPath preloads a GeoJSON or WKT file.
func (o Options) WithPath(p string) Options {
	o.path = p
	return o
}

// WithRoute sets the initial dashboard route, e.g. "/isochrones" or "/ken".
func (o Options) WithRoute(r string) Options {
	o.route = r
	return o
}

func (o Options) WithCountriesFile(p string) Options {
	o.countriesFile = p
	return o
}

// WithDataDir sets where per-country files (<dir>/<country>.geojson) live.
func (o Options) WithDataDir(d string) Options {
	o.dataDir = d
	return o
}

// WithStatsFile joins a statistics CSV onto loaded features by id.
func (o Options) WithStatsFile(p string) Options {
	o.statsFile = p
	return o
}

// WithCategory picks the isochrone color scale ("education", "health").
func (o Options) WithCategory(c string) Options {
	o.category = c
	return o
}

func (o Options) WithLogger(l logr.Logger) Options {
	o.logger = l
	return o
}

func (o Options) validate() error {
	if _, err := route.Parse(o.route); err != nil {
		return err
	}
	switch o.category {
	case "education", "health":
	default:
		return errors.Errorf("unknown isochrone category %q", o.category)
	}
	return nil
}
