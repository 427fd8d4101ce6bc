package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "List available levels",
	Long:  `Shows every level file found in the config directory, after checking
that the physics config loads.`,
	RunE:  runLevels,
}

func runLevels(cmd *cobra.Command, args []string) error {
	loader, err := newLoader()
	if err != nil {
		return err
	}
	cfg, err := loader.LoadAll()
	if err != nil {
		return err
	}
	names := cfg.Levels

	out := cmd.OutOrStdout()
	if len(names) == 0 {
		fmt.Fprintln(out, "No levels available.")
		return nil
	}

	fmt.Fprintln(out, "Available levels:")
	fmt.Fprintln(out)
	fmt.Fprintf(out, "  %-6s  %-20s  %s\n", "ID", "Name", "Artifacts")
	fmt.Fprintf(out, "  %-6s  %-20s  %s\n", "--", "----", "---------")
	for _, name := range names {
		levelCfg, err := loader.LoadLevel(name)
		if err != nil {
			fmt.Fprintf(out, "  %-6s  (%v)\n", name, err)
			continue
		}
		fmt.Fprintf(out, "  %-6s  %-20s  %d\n", name, levelCfg.Name, len(levelCfg.Artifacts))
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, "Run 'holefall play <id>' to play a level.")
	return nil
}
