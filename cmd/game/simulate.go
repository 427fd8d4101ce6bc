package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/younwookim/holefall/internal/application/replay"
	"github.com/younwookim/holefall/internal/application/session"
	"github.com/younwookim/holefall/internal/application/system"
	"github.com/younwookim/holefall/internal/infrastructure/config"
	"github.com/younwookim/holefall/internal/infrastructure/storage"
)

var (
	flagTicks    int
	flagReplay   string
	flagHold     string
	flagStoreRun bool
)

var simulateCmd = &cobra.Command{
	Use:   "simulate <level>",
	Short: "Run a level headless",
	Long: `Run a level without a window and print the outcome.

Input comes from a replay file (--replay) or from keys held for the
whole run (--hold). A replay also supplies the seed and level.

Examples:
  holefall simulate 1 --ticks 600
  holefall simulate 1 --hold right,jump --seed 3
  holefall simulate --replay run.json --store
  holefall simulate ./my-level.yaml --hold right`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSimulate,
}

func init() {
	simulateCmd.Flags().IntVar(&flagTicks, "ticks", 3600, "Maximum ticks to simulate")
	simulateCmd.Flags().StringVar(&flagReplay, "replay", "", "Replay file to feed as input")
	simulateCmd.Flags().StringVar(&flagHold, "hold", "", "Keys held every tick: left, right, jump, crouch")
	simulateCmd.Flags().BoolVar(&flagStoreRun, "store", false, "Record the run in the database")
}

// simResult is what a headless run reports
type simResult struct {
	Session *session.Session
	Events  []session.Event
}

// inputSource yields one input per tick; ok=false ends the run
type inputSource func(tick int) (system.InputState, bool)

// holdInput parses a comma separated key list into a constant input
func holdInput(keys string) (system.InputState, error) {
	var in system.InputState
	if keys == "" {
		return in, nil
	}
	for _, k := range strings.Split(keys, ",") {
		switch strings.TrimSpace(strings.ToLower(k)) {
		case "left":
			in.Left = true
		case "right":
			in.Right = true
		case "jump":
			in.Jump = true
			in.JumpPressed = true
		case "crouch":
			in.Crouch = true
		case "":
		default:
			return in, fmt.Errorf("unknown key %q", k)
		}
	}
	return in, nil
}

// simulate runs a session until it ends, input runs out or maxTicks pass
func simulate(levelCfg *config.LevelConfig, physics *config.PhysicsConfig, seed int64, maxTicks int, next inputSource, logger *log.Logger) (*simResult, error) {
	s, err := session.New(levelCfg, physics, seed, logger)
	if err != nil {
		return nil, err
	}

	res := &simResult{Session: s}
	for tick := 0; tick < maxTicks && !s.Done(); tick++ {
		input, ok := next(tick)
		if !ok {
			break
		}
		res.Events = append(res.Events, s.Step(input)...)
	}
	return res, nil
}

func runSimulate(cmd *cobra.Command, args []string) error {
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

	seed := flagSeed
	levelName := ""
	if len(args) == 1 {
		levelName = args[0]
	}

	var next inputSource
	if flagReplay != "" {
		data, err := replay.LoadReplay(flagReplay)
		if err != nil {
			return err
		}
		r := replay.NewReplayer(*data)
		seed = r.Seed()
		if levelName == "" {
			levelName = r.Level()
		}
		next = func(int) (system.InputState, bool) { return r.GetInput() }
	} else {
		held, err := holdInput(flagHold)
		if err != nil {
			return err
		}
		next = func(int) (system.InputState, bool) { return held, true }
	}
	if levelName == "" {
		return fmt.Errorf("no level given")
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	levelCfg, err := loadLevel(loader, levelName)
	if err != nil {
		return err
	}

	res, err := simulate(levelCfg, physics, seed, flagTicks, next, logger)
	if err != nil {
		return err
	}
	printResult(cmd.OutOrStdout(), levelCfg, res)

	if flagStoreRun {
		return storeResult(flagDBPath, levelCfg.ID, res.Session)
	}
	return nil
}

func printResult(w io.Writer, levelCfg *config.LevelConfig, res *simResult) {
	s := res.Session
	fmt.Fprintf(w, "Level %s (%s)\n", levelCfg.ID, levelCfg.Name)
	fmt.Fprintf(w, "  %-10s %d\n", "Seed", s.Seed)
	fmt.Fprintf(w, "  %-10s %s\n", "Status", s.Status)
	fmt.Fprintf(w, "  %-10s %d\n", "Ticks", s.Tick)
	fmt.Fprintf(w, "  %-10s %d\n", "Score", s.Score)
	fmt.Fprintf(w, "  %-10s %d/%d\n", "Artifacts", s.Artifacts, s.Level().ArtifactsRequired)
	fmt.Fprintf(w, "  %-10s %d\n", "Lives", s.Lives)
	fmt.Fprintf(w, "  %-10s %d\n", "Enemies", len(s.Enemies))
	fmt.Fprintf(w, "  %-10s %d\n", "Events", len(res.Events))
}

// outcome maps a session status to a stored outcome
func outcome(s *session.Session) string {
	switch s.Status {
	case session.StatusCleared:
		return storage.OutcomeCleared
	case session.StatusGameOver:
		return storage.OutcomeGameOver
	default:
		return storage.OutcomeAborted
	}
}

func storeResult(dbPath, level string, s *session.Session) error {
	store, err := storage.Open(dbPath)
	if err != nil {
		return err
	}
	defer store.Close()

	if _, err := store.SaveRun(storage.Run{
		Level:   level,
		Seed:    s.Seed,
		Ticks:   s.Tick,
		Score:   s.Score,
		Outcome: outcome(s),
	}); err != nil {
		return err
	}
	fmt.Fprintln(os.Stderr, "Run recorded.")
	return nil
}
