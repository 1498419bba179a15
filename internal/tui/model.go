package tui

import (
	"os"

	list "github.com/charmbracelet/bubbles/list"
	table "github.com/charmbracelet/bubbles/table"
	textarea "github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/go-logr/logr"

	"geodash/internal/config"
	"geodash/internal/geom"
	"geodash/internal/route"
	"geodash/internal/stats"
)

type Model struct {
	width  int
	height int

	showSidebar bool
	helpVisible bool

	zoom    float64
	offsetX int
	offsetY int

	status string
	log    logr.Logger

	// Routing
	route    route.Route
	category string
	dataDir  string

	// Sidebar: countries, or data files when no countries list is configured
	cwd       string
	l         list.Model
	items     []list.Item
	countries []stats.CountryOption

	// Data
	selPath  string
	data     geom.Dataset
	stats    map[string]stats.StatsData
	bbox     geom.BBox // viewport frame
	selected int       // feature index, -1 when none

	// paste mode
	pasteMode bool
	ta        textarea.Model

	// layer visibility
	showPoints bool
	showLines  bool
	showPolys  bool

	// legend; hidden holds isochrone band labels switched off
	showLegend bool
	hidden     map[string]bool

	// inspect popup
	inspectPopup string

	// hover state
	hovering    bool
	hoverCellX  int
	hoverCellY  int
	hoverMicX   int
	hoverMicY   int
	hoverHasGeo bool
	hoverLon    float64
	hoverLat    float64

	// attributes table
	showAttrs bool
	tbl       table.Model
}

// New builds the dashboard from opts, loading the countries list, stats
// table and initial file when configured.
func New(opts Options) (Model, error) {
	if err := opts.validate(); err != nil {
		return Model{}, err
	}
	r, _ := route.Resolve(opts.route)
	m := Model{
		showSidebar: false,
		helpVisible: true,
		zoom:        1.0,
		status:      "geodash ready",
		log:         opts.logger,
		route:       r,
		category:    opts.category,
		dataDir:     opts.dataDir,
		selected:    -1,
		showPoints:  true,
		showLines:   true,
		showPolys:   true,
		showLegend:  true,
		hidden:      map[string]bool{},
	}
	m.cwd, _ = os.Getwd()
	if opts.dataDir != "" {
		m.cwd = opts.dataDir
	}
	if opts.countriesFile != "" {
		cs, err := config.LoadCountries(opts.countriesFile)
		if err != nil {
			return Model{}, err
		}
		m.countries = cs
	}
	if opts.statsFile != "" {
		st, err := stats.LoadCSV(opts.statsFile)
		if err != nil {
			return Model{}, err
		}
		m.stats = st
	}
	// list setup
	d := list.NewDefaultDelegate()
	d.ShowDescription = false
	m.l = list.New(nil, d, 0, 0)
	m.l.Title = "Countries"
	if len(m.countries) == 0 {
		m.l.Title = "Files"
	}
	m.l.SetShowHelp(false)
	m.l.SetShowStatusBar(false)
	m.l.SetFilteringEnabled(true)
	// textarea setup
	m.ta = textarea.New()
	m.ta.Placeholder = "Paste WKT here (POINT, LINESTRING, POLYGON, MULTIPOLYGON...). Press Enter to render; Esc to cancel."
	m.ta.CharLimit = 0
	m.ta.SetWidth(50)
	m.ta.SetHeight(6)
	// attributes table setup (columns will be inferred per dataset)
	m.tbl = table.New(table.WithFocused(true))
	m.tbl.SetHeight(12)
	m.refreshSidebar()

	switch {
	case opts.path != "":
		m.loadPath(opts.path)
	case r.Country != "":
		m.loadCountry(r.Country)
	}
	m.log.V(1).Info("dashboard started", "route", r.Path(), "category", m.category)
	return m, nil
}

func (m Model) Init() tea.Cmd { return nil }
