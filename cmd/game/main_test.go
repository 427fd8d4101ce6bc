package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younwookim/holefall/internal/application/replay"
	"github.com/younwookim/holefall/internal/application/session"
	"github.com/younwookim/holefall/internal/application/system"
	"github.com/younwookim/holefall/internal/infrastructure/config"
	"github.com/younwookim/holefall/internal/infrastructure/logging"
	"github.com/younwookim/holefall/internal/infrastructure/storage"
)

func loadEmbedded(t *testing.T, level string) (*config.PhysicsConfig, *config.LevelConfig) {
	t.Helper()
	loader, err := newLoader()
	require.NoError(t, err)
	physics, err := loader.LoadPhysics()
	require.NoError(t, err)
	levelCfg, err := loader.LoadLevel(level)
	require.NoError(t, err)
	return physics, levelCfg
}

func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() { rootCmd.SetArgs(nil) })
	err := rootCmd.Execute()
	return out.String(), err
}

func TestHoldInput(t *testing.T) {
	tests := []struct {
		keys    string
		want    system.InputState
		wantErr bool
	}{
		{keys: "", want: system.InputState{}},
		{keys: "right", want: system.InputState{Right: true}},
		{keys: "Left, crouch", want: system.InputState{Left: true, Crouch: true}},
		{keys: "right,jump", want: system.InputState{Right: true, Jump: true, JumpPressed: true}},
		{keys: "dash", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.keys, func(t *testing.T) {
			got, err := holdInput(tt.keys)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEmbeddedLevelsValidate(t *testing.T) {
	loader, err := newLoader()
	require.NoError(t, err)
	names, err := loader.ListLevels()
	require.NoError(t, err)
	require.NotEmpty(t, names)

	var out bytes.Buffer
	failed := validateLevels(&out, loader, names)

	assert.Equal(t, 0, failed, out.String())
	assert.Contains(t, out.String(), "First Steps")
}

func TestValidateLevels_ReportsBadHole(t *testing.T) {
	fsys := fstest.MapFS{
		"levels/bad.yaml": {Data: []byte(`
id: bad
size: {width: 100, height: 100}
platforms:
  - {x: 0, y: 80, width: 100, height: 10, holes: [{x: 90, width: 20}]}
`)},
	}
	loader := config.NewFSLoader(fsys, ".")

	var out bytes.Buffer
	failed := validateLevels(&out, loader, []string{"bad", "missing"})

	assert.Equal(t, 2, failed)
	assert.Contains(t, out.String(), "hole exceeds platform span")
}

func TestValidateLevels_LevelFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "custom.yaml")
	require.NoError(t, os.WriteFile(file, []byte(`
id: custom
name: Custom Room
size: {width: 400, height: 300}
platforms:
  - {x: 0, y: 250, width: 400, height: 20, holes: [{x: 100, width: 50}]}
`), 0o644))
	loader, err := newLoader()
	require.NoError(t, err)

	var out bytes.Buffer
	failed := validateLevels(&out, loader, []string{file, "1"})

	assert.Equal(t, 0, failed, out.String())
	assert.Contains(t, out.String(), "Custom Room")
	assert.Contains(t, out.String(), "First Steps")
}

func TestSimulate_Deterministic(t *testing.T) {
	physics, levelCfg := loadEmbedded(t, "2")
	held := system.InputState{Left: true, JumpPressed: true}
	next := func(int) (system.InputState, bool) { return held, true }

	first, err := simulate(levelCfg, physics, 11, 1200, next, logging.Discard())
	require.NoError(t, err)
	second, err := simulate(levelCfg, physics, 11, 1200, next, logging.Discard())
	require.NoError(t, err)

	assert.Equal(t, first.Session.Tick, second.Session.Tick)
	assert.Equal(t, first.Session.Player.Rect, second.Session.Player.Rect)
	assert.Equal(t, first.Session.Score, second.Session.Score)
	assert.Equal(t, len(first.Events), len(second.Events))
}

func TestSimulate_StopsWhenInputEnds(t *testing.T) {
	physics, levelCfg := loadEmbedded(t, "1")
	data := replay.ReplayData{Seed: 3, Level: "1", Frames: make([]replay.FrameInput, 25)}
	r := replay.NewReplayer(data)

	res, err := simulate(levelCfg, physics, r.Seed(), 1000,
		func(int) (system.InputState, bool) { return r.GetInput() }, logging.Discard())
	require.NoError(t, err)

	assert.Equal(t, 25, res.Session.Tick)
	assert.Equal(t, session.StatusPlaying, res.Session.Status)
}

func TestOutcome(t *testing.T) {
	s := &session.Session{Status: session.StatusCleared}
	assert.Equal(t, storage.OutcomeCleared, outcome(s))
	s.Status = session.StatusGameOver
	assert.Equal(t, storage.OutcomeGameOver, outcome(s))
	s.Status = session.StatusPlaying
	assert.Equal(t, storage.OutcomeAborted, outcome(s))
}

func TestCommands(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "runs.db")

	t.Run("levels", func(t *testing.T) {
		out, err := executeCommand(t, "levels")
		require.NoError(t, err)
		assert.Contains(t, out, "First Steps")
		assert.Contains(t, out, "Shaft")
	})

	t.Run("validate", func(t *testing.T) {
		out, err := executeCommand(t, "validate", "1")
		require.NoError(t, err)
		assert.Contains(t, out, "ok")
	})

	t.Run("simulate and store", func(t *testing.T) {
		out, err := executeCommand(t, "simulate", "1",
			"--ticks", "60", "--seed", "5", "--log-level", "error",
			"--store", "--db", dbPath)
		require.NoError(t, err)
		assert.Contains(t, out, "Level 1 (First Steps)")
		assert.Regexp(t, `Seed\s+5\n`, out)
	})

	t.Run("simulate level file", func(t *testing.T) {
		out, err := executeCommand(t, "simulate", "configs/levels/2.json",
			"--ticks", "30", "--seed", "9", "--log-level", "error", "--store=false")
		require.NoError(t, err)
		assert.Contains(t, out, "Shaft")
	})

	t.Run("runs", func(t *testing.T) {
		out, err := executeCommand(t, "runs", "1", "--db", dbPath)
		require.NoError(t, err)
		assert.Contains(t, out, "1 runs recorded.")
		assert.Contains(t, out, storage.OutcomeAborted)
	})

	t.Run("unknown hold key", func(t *testing.T) {
		_, err := executeCommand(t, "simulate", "1", "--hold", "fly", "--store=false")
		assert.Error(t, err)
	})
}
