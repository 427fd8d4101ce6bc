package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/younwookim/holefall/internal/infrastructure/storage"
)

var flagLimit int

var runsCmd = &cobra.Command{
	Use:   "runs <level>",
	Short: "Show the best recorded runs for a level",
	Long: `Display the best runs for a level, highest score first and
fastest first among equal scores.

Examples:
  holefall runs 1
  holefall runs 2 --limit 5`,
	Args: cobra.ExactArgs(1),
	RunE: runRuns,
}

func init() {
	runsCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of runs to show")
}

func runRuns(cmd *cobra.Command, args []string) error {
	level := args[0]

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	runs, err := store.BestRuns(level, flagLimit)
	if err != nil {
		return err
	}
	total, err := store.CountRuns(level)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Best runs - level %s\n", level)
	fmt.Fprintln(out)

	if len(runs) == 0 {
		fmt.Fprintln(out, "No runs recorded yet.")
		fmt.Fprintln(out)
		fmt.Fprintf(out, "Play 'holefall play %s' to set the first record!\n", level)
		return nil
	}

	fmt.Fprintf(out, "  %-4s  %-8s  %-7s  %-10s  %-20s  %s\n", "Rank", "Score", "Ticks", "Outcome", "Seed", "Date")
	fmt.Fprintf(out, "  %-4s  %-8s  %-7s  %-10s  %-20s  %s\n", "----", "-----", "-----", "-------", "----", "----")
	for i, r := range runs {
		fmt.Fprintf(out, "  %-4d  %-8d  %-7d  %-10s  %-20d  %s\n",
			i+1, r.Score, r.Ticks, r.Outcome, r.Seed, r.CreatedAt.Format("2006-01-02 15:04"))
	}

	fmt.Fprintln(out)
	fmt.Fprintf(out, "%d runs recorded.\n", total)
	return nil
}
