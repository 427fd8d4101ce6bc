package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/younwookim/holefall/internal/application/system"
	"github.com/younwookim/holefall/internal/infrastructure/config"
)

var validateCmd = &cobra.Command{
	Use:   "validate [level]",
	Short: "Check level files for configuration errors",
	Long: `Build each level and report holes outside their platform, bad lift
bindings and other topology errors. With no argument every level is checked.

Examples:
  holefall validate
  holefall validate 2 --config ./configs
  holefall validate ./my-level.yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runValidate,
}

func runValidate(cmd *cobra.Command, args []string) error {
	loader, err := newLoader()
	if err != nil {
		return err
	}

	names := args
	if len(names) == 0 {
		names, err = loader.ListLevels()
		if err != nil {
			return err
		}
	}

	failed := validateLevels(cmd.OutOrStdout(), loader, names)
	if failed > 0 {
		return fmt.Errorf("%d of %d levels invalid", failed, len(names))
	}
	return nil
}

// validateLevels prints one line per level and returns the failure count
func validateLevels(w io.Writer, loader *config.Loader, names []string) int {
	failed := 0
	for _, name := range names {
		cfg, err := loadLevel(loader, name)
		if err == nil {
			_, err = system.LoadLevel(cfg)
		}
		if err != nil {
			failed++
			fmt.Fprintf(w, "  FAIL  %-8s %v\n", name, err)
			continue
		}
		fmt.Fprintf(w, "  ok    %-8s %s\n", name, cfg.Name)
	}
	return failed
}
