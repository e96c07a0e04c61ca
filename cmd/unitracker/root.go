// Root command for the unitracker CLI.
package main

import (
	"go.uber.org/zap"

	"github.com/spf13/cobra"

	"github.com/unitrackerhq/unitracker/internal/paths"
	"github.com/unitrackerhq/unitracker/internal/store"
	"github.com/unitrackerhq/unitracker/pkg/types"
)

// Exit codes: 0 success, 1 user error (bad input, missing record), 2
// system error (I/O, storage).
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// Global flag values.
var (
	flagConfigDir string
	flagDB        string
	flagJSON      bool
	flagVerbose   bool
)

// Globals initialized by PersistentPreRunE for all subcommands.
var (
	tracker *store.Store
	prefs   types.Preferences
	logger  *zap.SugaredLogger
)

var rootCmd = &cobra.Command{
	Use:   "unitracker",
	Short: "Unitracker is a local-first video game collection tracker",
	Long: `Unitracker tracks a personal video game collection in a single SQLite
file: per-game progress, playtime, achievements, genre and platform tags,
and derived per-series rollups. The collection can be moved between
machines as a snapshot of the store file or as a JSON document.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// version reports without touching config or storage.
		if cmd.Name() == "version" {
			return nil
		}
		return openTracker()
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return closeTracker()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfigDir, "config-dir", "", "configuration directory (default: platform config dir)")
	rootCmd.PersistentFlags().StringVar(&flagDB, "db", "", "store file (default: $(CWD)/"+paths.DefaultDBFileName+")")
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "output as JSON")
	rootCmd.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "log executed statements to stderr")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(editCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(seriesCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
}

// openTracker loads preferences and opens the live store, following the
// precedence chain flag > config > env > default for both locations.
func openTracker() error {
	logger = newLogger(flagVerbose)

	configDir, err := paths.ResolveConfigDir(flagConfigDir)
	if err != nil {
		return err
	}
	var dbFromConfig string
	prefs, dbFromConfig, err = loadConfig(configDir)
	if err != nil {
		return err
	}

	dbPath, err := paths.ResolveDBPath(flagDB, dbFromConfig)
	if err != nil {
		return err
	}

	tracker, err = store.Open(dbPath, logger)
	return err
}

// closeTracker releases the store handle and flushes the logger.
func closeTracker() error {
	if logger != nil {
		logger.Sync()
	}
	if tracker == nil {
		return nil
	}
	err := tracker.Close()
	tracker = nil
	return err
}

// newLogger returns a debug-level development logger when verbose, and a
// no-op logger otherwise.
func newLogger(verbose bool) *zap.SugaredLogger {
	if !verbose {
		return zap.NewNop().Sugar()
	}
	log, err := zap.NewDevelopment()
	if err != nil {
		return zap.NewNop().Sugar()
	}
	return log.Sugar()
}
