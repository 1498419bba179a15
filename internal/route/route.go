package route

import (
	"strings"

	"github.com/pkg/errors"
)

var ErrUnknownRoute = errors.New("unknown route")

type View int

const (
	Admin View = iota
	Isochrones
)

func (v View) String() string {
	if v == Isochrones {
		return "isochrones"
	}
	return "admin"
}

// Route is a resolved dashboard location. Every route renders the same
// dashboard; View and Country only select what it shows.
type Route struct {
	View    View
	Country string
}

// Resolve maps a dashboard path to a Route. Hash-history paths ("#/ken")
// are accepted. Static routes win over "/:country".
func Resolve(path string) (Route, bool) {
	p := strings.TrimSpace(path)
	p = strings.TrimPrefix(p, "#")
	p = strings.Trim(p, "/")
	switch {
	case p == "":
		return Route{View: Admin}, true
	case p == "isochrones":
		return Route{View: Isochrones}, true
	case strings.Contains(p, "/"):
		return Route{}, false
	}
	return Route{View: Admin, Country: p}, true
}

// Parse is Resolve returning ErrUnknownRoute on a miss.
func Parse(path string) (Route, error) {
	r, ok := Resolve(path)
	if !ok {
		return Route{}, errors.Wrapf(ErrUnknownRoute, "%q", path)
	}
	return r, nil
}

// Path renders the canonical path for r.
func (r Route) Path() string {
	switch {
	case r.View == Isochrones:
		return "/isochrones"
	case r.Country != "":
		return "/" + r.Country
	}
	return "/"
}
