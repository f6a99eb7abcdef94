// Nurture - Wellness Activity Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nurture

package main

import (
	"fmt"
	"io"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/tomtom215/nurture/internal/config"
	"github.com/tomtom215/nurture/internal/logging"
	"github.com/tomtom215/nurture/internal/recommend"
	"github.com/tomtom215/nurture/internal/recommend/catalog"
	"github.com/tomtom215/nurture/internal/recommend/storage"
)

const (
	defaultCSVPath    = "data/interactions.csv"
	defaultBadgerPath = "data/interactions"
)

// rootOptions are the persistent flags shared by every subcommand.
type rootOptions struct {
	catalogPath string
	backend     string
	logPath     string
	badgerPath  string
	jsonOut     bool
	verbose     bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "nurturectl",
		Short:         "Nurture - wellness activity recommender CLI",
		Long:          `nurturectl ranks wellness activities and manages the interaction log offline.`,
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			level := "warn"
			if opts.verbose {
				level = "debug"
			}
			logging.Init(logging.Config{
				Level:  level,
				Format: "console",
				Output: cmd.ErrOrStderr(),
			})
			return nil
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.catalogPath, "catalog", "", "YAML catalog file (default: built-in catalog)")
	flags.StringVar(&opts.backend, "backend", config.BackendCSV, "Interaction log backend: csv or badger")
	flags.StringVar(&opts.logPath, "log-path", defaultCSVPath, "CSV interaction log path")
	flags.StringVar(&opts.badgerPath, "badger-path", defaultBadgerPath, "BadgerDB interaction log directory")
	flags.BoolVar(&opts.jsonOut, "json", false, "Write JSON instead of text")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "Enable debug logging")

	cmd.AddCommand(
		newCatalogCmd(opts),
		newRecommendCmd(opts),
		newPopularityCmd(opts),
		newLogCmd(opts),
	)
	return cmd
}

// openLog opens the configured interaction log.
func (o *rootOptions) openLog() (storage.InteractionLog, error) {
	switch o.backend {
	case config.BackendCSV:
		return storage.NewCSVLog(storage.CSVConfig{Path: o.logPath, SyncWrites: true})
	case config.BackendBadger:
		return storage.OpenBadger(storage.BadgerConfig{Path: o.badgerPath, SyncWrites: true}, logging.WithComponent("interaction-log"))
	default:
		return nil, fmt.Errorf("unknown backend %q (want csv or badger)", o.backend)
	}
}

// openEngine builds an engine over the catalog and the interaction log. A
// nil cfg uses recommend.DefaultConfig. The caller must close the returned log.
func (o *rootOptions) openEngine(cmd *cobra.Command, cfg *recommend.Config) (*recommend.Engine, storage.InteractionLog, error) {
	cat, err := catalog.Load(o.catalogPath)
	if err != nil {
		return nil, nil, err
	}
	ilog, err := o.openLog()
	if err != nil {
		return nil, nil, err
	}
	engine, err := recommend.NewEngine(cfg, cat, ilog, logging.WithComponent("nurturectl"))
	if err != nil {
		_ = ilog.Close()
		return nil, nil, err
	}
	engine.LoadPopularity(cmd.Context())
	return engine, ilog, nil
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
