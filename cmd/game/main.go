// holefall is a platformer of stacked floors, holes and lifts.
//
// Usage:
//
//	holefall play <level>       - Play a level in a window
//	holefall simulate <level>   - Run a level headless and print the result
//	holefall validate [level]   - Check level files for topology errors
//
// A level is a name under levels/ or a path to a .yaml, .yml or .json file.
//	holefall levels             - List available levels
//	holefall runs <level>       - Show the best recorded runs
//
// Global flags:
//
//	--config <dir>      - Load configs from a directory instead of the embedded set
//	--seed <value>      - RNG seed for reproducible enemy behavior (0 = time based)
//	--log-level <lvl>   - debug, info, warn or error
//	--db <path>         - Run records database
package main

import (
	"fmt"
	"io/fs"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/younwookim/holefall/internal/infrastructure/config"
	"github.com/younwookim/holefall/internal/infrastructure/logging"
)

var (
	// Global flags
	flagConfigDir string
	flagSeed      int64
	flagLogLevel  string
	flagDBPath    string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "holefall",
	Short: "Holefall - climb through holes, ride lifts, dodge scanners",
	Long: `Holefall is a platformer built on stacked floors with holes punched
through them. Lifts ride up through some holes, patrolling enemies turn at
ledges and walls, and a finish portal opens once enough artifacts are found.

Examples:
  holefall play 1
  holefall simulate 2 --ticks 3600 --seed 42
  holefall validate
  holefall runs 1`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfigDir, "config", "", "Config directory (default: embedded configs)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.holefall/runs.db", "Path to run records database")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(runsCmd)
}

// newLoader returns a loader over --config or the embedded configs
func newLoader() (*config.Loader, error) {
	if flagConfigDir != "" {
		return config.NewLoader(flagConfigDir), nil
	}
	fsys, err := fs.Sub(configFS, "configs")
	if err != nil {
		return nil, fmt.Errorf("failed to get config subfs: %w", err)
	}
	return config.NewFSLoader(fsys, "configs"), nil
}

// loadLevel reads a level file when given a path, otherwise looks the name up
func loadLevel(loader *config.Loader, name string) (*config.LevelConfig, error) {
	if config.IsLevelFile(name) {
		return config.LoadLevelFile(name)
	}
	return loader.LoadLevel(name)
}

// newLogger builds the stderr logger for --log-level
func newLogger() (*log.Logger, error) {
	return logging.New(os.Stderr, flagLogLevel, "holefall")
}
