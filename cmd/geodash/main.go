package main

import (
	"io"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/go-logr/logr"
	"github.com/go-logr/stdr"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"geodash/internal/tui"
)

var (
	routeFlag     string
	countriesFlag string
	dataDirFlag   string
	statsFlag     string
	categoryFlag  string
	logFileFlag   string
	verbosity     int
)

var rootCmd = &cobra.Command{
	Use:   "geodash [file]",
	Short: "Terminal dashboard for population and isochrone statistics",
	Long: `geodash draws GeoJSON administrative units and isochrone bands on a
braille map, colored by population share or travel distance.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		logger, closeLog, err := newLogger(logFileFlag, verbosity)
		if err != nil {
			return err
		}
		defer closeLog()

		opts := tui.DefaultOptions().
			WithRoute(routeFlag).
			WithCountriesFile(countriesFlag).
			WithDataDir(dataDirFlag).
			WithStatsFile(statsFlag).
			WithCategory(categoryFlag).
			WithLogger(logger)
		if len(args) > 0 {
			opts = opts.WithPath(args[0])
		}
		m, err := tui.New(opts)
		if err != nil {
			logger.Error(err, "startup failed")
			return err
		}
		if _, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion()).Run(); err != nil {
			logger.Error(err, "program exited with error")
			return err
		}
		return nil
	},
}

// newLogger writes to path, or discards when path is empty; the alt screen owns stdout.
func newLogger(path string, v int) (logr.Logger, func(), error) {
	var w io.Writer = io.Discard
	closeFn := func() {}
	if path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return logr.Discard(), closeFn, errors.Wrap(err, "open log file")
		}
		w = f
		closeFn = func() { f.Close() }
	}
	stdr.SetVerbosity(v)
	std := log.New(w, "", log.LstdFlags)
	return stdr.NewWithOptions(std, stdr.Options{LogCaller: stdr.Error}).WithName("geodash"), closeFn, nil
}

func init() {
	f := rootCmd.Flags()
	f.StringVar(&routeFlag, "route", "/", `initial route: "/", "/isochrones" or "/<country>"`)
	f.StringVar(&countriesFlag, "countries", "", "countries list (YAML: - label/value)")
	f.StringVar(&dataDirFlag, "data-dir", "", "directory with <country>.geojson files")
	f.StringVar(&statsFlag, "stats", "", "statistics CSV joined to features by id")
	f.StringVar(&categoryFlag, "category", "education", "isochrone color scale: education or health")
	f.StringVar(&logFileFlag, "log-file", "", "write logs to this file")
	f.IntVarP(&verbosity, "verbose", "v", 0, "log verbosity (0-2)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
