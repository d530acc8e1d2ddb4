package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/juju/errors"
	"github.com/spf13/pflag"

	"github.com/dimonomid/gantt/clhistory"
	"github.com/dimonomid/gantt/clipboard"
	"github.com/dimonomid/gantt/core"
	"github.com/dimonomid/gantt/log"
	"github.com/dimonomid/gantt/statestore"
	"github.com/dimonomid/gantt/version"
)

// In the terminal, one char is one pixel of the layout.
const (
	termCellSize      = 4
	termBarMargin     = 1
	termViewportWidth = 120
)

func main() {
	if err := main2(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

func main2() error {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return errors.Annotatef(err, "getting home dir")
	}

	var (
		flagData      = pflag.StringP("data", "d", "", "JSON file with the rows to show (required)")
		flagConfig    = pflag.StringP("config", "c", filepath.Join(homeDir, ".config", "gantt", "config.yaml"), "Yaml config file; it's fine if the default one doesn't exist")
		flagRows      = pflag.StringP("rows", "r", "", "Only show the rows whose names match these comma-separated glob patterns, e.g. 'build-*,qa-*'")
		flagSet       = pflag.StringArrayP("set", "s", nil, "Set an option, like --set scale=weeks; can be given multiple times, overrides the config file")
		flagDump      = pflag.Bool("dump", false, "Print the chart as text to stdout and exit, instead of running the interactive UI")
		flagStateFile = pflag.String("state-file", filepath.Join(homeDir, ".gantt_state.yaml"), "Where to remember the scale and scroll position; set to an empty string to disable")
		flagLogLevel  = pflag.String("loglevel", "error", "Gantt's own log level. Valid values are: error, warning, info, verbose1, verbose2 or verbose3")
		flagLogFile   = pflag.String("logfile", "", "Log file; by default it's ~/"+log.LogFilename)
		flagVersion   = pflag.Bool("version", false, "Print version info and exit")
	)

	pflag.Parse()

	if *flagVersion {
		fmt.Print(version.VersionFullDescr())
		return nil
	}

	if *flagData == "" {
		pflag.Usage()
		return errors.Errorf("--data is required")
	}

	logLevel, err := log.ParseLevel(*flagLogLevel)
	if err != nil {
		return errors.Annotatef(err, "--loglevel")
	}

	if *flagLogFile != "" {
		logFile, err := os.OpenFile(*flagLogFile, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
		if err != nil {
			return errors.Annotatef(err, "opening log file")
		}
		defer logFile.Close()

		log.SetOutput(logFile)
	}

	logger := log.NewLogger(logLevel)

	opts, err := loadOptions(*flagConfig, pflag.CommandLine.Changed("config"), *flagSet)
	if err != nil {
		return errors.Trace(err)
	}

	allEntries, err := core.LoadEntriesFromFile(*flagData, opts.Location)
	if err != nil {
		return errors.Trace(err)
	}

	entries, err := core.FilterEntries(allEntries, *flagRows)
	if err != nil {
		return errors.Annotatef(err, "--rows")
	}

	if len(entries) == 0 {
		return errors.Errorf("no rows to show (%d rows loaded from %s, none match %q)", len(allEntries), *flagData, *flagRows)
	}

	chartParams := core.ChartParams{
		Options: opts,
		Entries: entries,
		Logger:  logger,
	}

	if *flagDump {
		chart, err := core.NewChart(chartParams)
		if err != nil {
			return errors.Trace(err)
		}

		return errors.Trace(dumpLayout(os.Stdout, chart.Layout(), chart.Entries()))
	}

	stateKey, err := filepath.Abs(*flagData)
	if err != nil {
		return errors.Trace(err)
	}

	chartParams.StateStore = statestore.New(statestore.StoreParams{
		Filename: *flagStateFile,
		Key:      stateKey,
		Logger:   logger,
	})

	cmdHistory, err := clhistory.New(clhistory.CLHistoryParams{
		Filename: filepath.Join(homeDir, ".gantt_history"),
	})
	if err != nil {
		return errors.Annotatef(err, "initializing cmdline history")
	}

	if clipboard.InitErr != nil {
		fmt.Printf("NOTE: X Clipboard is not available: %s\n", clipboard.InitErr.Error())
	}

	app, err := newGanttApp(ganttAppParams{
		chartParams: chartParams,
		allEntries:  allEntries,
		cmdHistory:  cmdHistory,
		logger:      logger,
	})
	if err != nil {
		return errors.Trace(err)
	}

	if err := app.runTViewApp(); err != nil {
		return errors.Trace(err)
	}

	return nil
}

// loadOptions returns the default options overridden first by the config
// file, and then by the "key=value" settings. A missing config file is only
// an error if it was given explicitly.
func loadOptions(configPath string, configRequired bool, settings []string) (core.Options, error) {
	opts := core.DefaultOptions()
	opts.CellSize = termCellSize
	opts.BarMargin = termBarMargin
	opts.ViewportWidth = termViewportWidth

	if configPath != "" {
		_, statErr := os.Stat(configPath)
		if statErr == nil || configRequired {
			cfg, err := core.LoadConfigFromFile(configPath)
			if err != nil {
				return core.Options{}, errors.Trace(err)
			}

			if err := cfg.Apply(&opts); err != nil {
				return core.Options{}, errors.Annotatef(err, "applying config %s", configPath)
			}
		}
	}

	for _, kv := range settings {
		if err := core.SetOption(&opts, kv); err != nil {
			return core.Options{}, errors.Annotatef(err, "--set")
		}
	}

	if err := opts.Validate(); err != nil {
		return core.Options{}, errors.Trace(err)
	}

	return opts, nil
}
