// Package cli implements the melodygen command line.
package cli

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/togramago/melodygen/internal/history"
	"github.com/togramago/melodygen/internal/logger"
	"github.com/togramago/melodygen/internal/presets"
	"github.com/togramago/melodygen/internal/services"
)

const (
	formatText = "text"
	formatJSON = "json"
	formatMIDI = "midi"
)

type rootOptions struct {
	dbPath      string
	presetsPath string
	verbose     bool
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:           "melodygen",
		Short:         "Generate short melodies",
		Long:          "Procedurally generates bars of notes in a chosen time signature, scale and note granularity.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logger.SetDebug(opts.verbose)
			if !opts.verbose {
				log.SetOutput(io.Discard)
			}
		},
	}

	root.PersistentFlags().StringVarP(&opts.dbPath, "db", "d", "", "History database path (default: $HISTORY_DB or ~/.melodygen/history.db)")
	root.PersistentFlags().StringVar(&opts.presetsPath, "presets", "", "Presets YAML file (default: $PRESETS_PATH or the built-in presets)")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Log generator events to stderr")

	root.AddCommand(
		newGenerateCmd(opts),
		newCatalogueCmd(),
		newPresetsCmd(opts),
		newHistoryCmd(opts),
	)
	return root
}

// Execute runs the CLI and returns the process exit code.
func Execute() int {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}
	return 0
}

func (o *rootOptions) getDBPath() string {
	if o.dbPath != "" {
		return o.dbPath
	}
	if env := os.Getenv("HISTORY_DB"); env != "" {
		return env
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".melodygen", "history.db")
}

func (o *rootOptions) openStore() (*history.SQLiteStore, error) {
	return history.NewSQLiteStore(o.getDBPath())
}

func (o *rootOptions) loadPresets() (*presets.Set, error) {
	path := o.presetsPath
	if path == "" {
		path = os.Getenv("PRESETS_PATH")
	}
	return presets.Load(path)
}

func (o *rootOptions) newService(store history.Store) (*services.MelodyService, error) {
	set, err := o.loadPresets()
	if err != nil {
		return nil, err
	}
	return services.NewMelodyService(set, store, 0, nil), nil
}
