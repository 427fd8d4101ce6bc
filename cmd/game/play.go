package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/younwookim/holefall/internal/application/game"
	"github.com/younwookim/holefall/internal/application/scene/playing"
	"github.com/younwookim/holefall/internal/infrastructure/storage"
)

var (
	flagRecord  string
	flagNoStore bool
)

var playCmd = &cobra.Command{
	Use:   "play <level>",
	Short: "Play a level",
	Long: `Open a window and play the given level.

Controls:
  A/D or arrows   - Move
  W or Space      - Jump
  S or Down       - Crouch
  ESC             - Pause
  F5              - Save replay (with --record)

Examples:
  holefall play 1
  holefall play 2 --record run.json --seed 7`,
	Args: cobra.ExactArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagRecord, "record", "", "Record input to file (e.g., --record replay.json)")
	playCmd.Flags().BoolVar(&flagNoStore, "no-store", false, "Do not record the run in the database")
}

func runPlay(cmd *cobra.Command, args []string) error {
	logger, err := newLogger()
	if err != nil {
		return err
	}
	loader, err := newLoader()
	if err != nil {
		return err
	}
	physics, err := loader.LoadPhysics()
	if err != nil {
		return err
	}
	levelCfg, err := loadLevel(loader, args[0])
	if err != nil {
		return err
	}

	opts := playing.Options{
		Seed:       flagSeed,
		RecordPath: flagRecord,
		Logger:     logger,
	}
	if !flagNoStore {
		store, err := storage.Open(flagDBPath)
		if err != nil {
			return err
		}
		defer store.Close()
		opts.Store = store
	}

	scene, err := playing.New(physics, levelCfg, opts)
	if err != nil {
		return err
	}

	g := game.New(scene, physics.Display.ScreenWidth, physics.Display.ScreenHeight, physics.Display.Framerate)
	title := fmt.Sprintf("Holefall - %s", levelCfg.Name)
	return g.Run(title, physics.Display.Scale)
}
