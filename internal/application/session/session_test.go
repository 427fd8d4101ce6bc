package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younwookim/holefall/internal/application/system"
	"github.com/younwookim/holefall/internal/domain/entity"
	"github.com/younwookim/holefall/internal/infrastructure/config"
	"github.com/younwookim/holefall/internal/infrastructure/logging"
)

// createTestLevelConfig builds a 1000x600 room: floor at y=500 with a pit at x=700..800
func createTestLevelConfig() *config.LevelConfig {
	return &config.LevelConfig{
		ID:                "t",
		Size:              config.LevelSizeConfig{Width: 1000, Height: 600},
		GroundLevel:       2000,
		PlayerSpawn:       config.PositionConfig{X: 40, Y: 420},
		ArtifactsRequired: 1,
		Platforms: []config.PlatformConfig{
			{X: 0, Y: 500, Width: 1000, Height: 20, Holes: []config.HoleConfig{{X: 700, Width: 100}}},
		},
		Coins:     []config.PickupConfig{{X: 150, Y: 460}},
		Artifacts: []config.PickupConfig{{X: 300, Y: 460}},
		Portals: []config.PortalConfig{
			{X: 20, Y: 420},
			{X: 500, Y: 420, Finish: true},
		},
	}
}

func createTestSession(t *testing.T, cfg *config.LevelConfig, seed int64) *Session {
	t.Helper()
	s, err := New(cfg, config.DefaultPhysicsConfig(), seed, logging.Discard())
	require.NoError(t, err)
	return s
}

func runUntilDone(s *Session, input system.InputState, limit int) []Event {
	var events []Event
	for i := 0; i < limit && !s.Done(); i++ {
		events = append(events, s.Step(input)...)
	}
	return events
}

func countEvents(events []Event, kind EventKind) int {
	n := 0
	for _, ev := range events {
		if ev.Kind == kind {
			n++
		}
	}
	return n
}

func TestNew(t *testing.T) {
	s := createTestSession(t, createTestLevelConfig(), 1)

	start, finish := s.Level().Portals()
	require.Len(t, start, 1)
	require.Len(t, finish, 1)
	assert.False(t, start[0].Active, "start portal consumed at spawn")
	assert.False(t, finish[0].Active, "finish closed until artifacts are found")
	assert.False(t, s.FinishOpen())

	assert.Equal(t, 3, s.Lives)
	assert.Equal(t, StatusPlaying, s.Status)
	assert.Equal(t, entity.NewRect(40, 420, 60, 80), s.Player.Rect)
	assert.True(t, s.Player.OnGround)
}

func TestNew_InvalidLevel(t *testing.T) {
	cfg := createTestLevelConfig()
	cfg.Platforms[0].Holes = []config.HoleConfig{{X: 950, Width: 100}}

	_, err := New(cfg, config.DefaultPhysicsConfig(), 1, logging.Discard())

	assert.ErrorIs(t, err, entity.ErrHoleOutsidePlatform)
}

func TestSession_ClearLevel(t *testing.T) {
	s := createTestSession(t, createTestLevelConfig(), 1)

	events := runUntilDone(s, system.InputState{Right: true}, 300)

	assert.Equal(t, StatusCleared, s.Status)
	assert.Equal(t, entity.CoinValue+entity.ArtifactValue, s.Score)
	assert.Equal(t, 1, s.Artifacts)
	assert.True(t, s.FinishOpen())
	assert.Equal(t, 2, countEvents(events, EventCollected))
	assert.Equal(t, 1, countEvents(events, EventFinishOpened))
	assert.Equal(t, 1, countEvents(events, EventCleared))
	assert.Equal(t, 3, s.Lives)

	assert.Nil(t, s.Step(system.InputState{Right: true}), "finished sessions do not tick")
}

func TestSession_ClosedPortalIgnored(t *testing.T) {
	cfg := createTestLevelConfig()
	cfg.Artifacts = []config.PickupConfig{{X: 900, Y: 460}}
	cfg.Portals[1].X = 200
	s := createTestSession(t, cfg, 1)

	for i := 0; i < 80; i++ {
		s.Step(system.InputState{Right: true})
	}

	require.Greater(t, s.Player.Rect.X, 300.0, "walked past the portal")
	assert.Equal(t, StatusPlaying, s.Status)
}

func TestSession_FallingCostsLives(t *testing.T) {
	cfg := createTestLevelConfig()
	cfg.PlayerSpawn = config.PositionConfig{X: 720, Y: 420} // over the pit
	s := createTestSession(t, cfg, 1)

	events := runUntilDone(s, system.InputState{}, 500)

	assert.Equal(t, StatusGameOver, s.Status)
	assert.Equal(t, 0, s.Lives)
	assert.Equal(t, 3, countEvents(events, EventLifeLost))
	assert.Equal(t, 2, countEvents(events, EventRespawn))
	assert.Equal(t, 1, countEvents(events, EventGameOver))
}

func TestSession_HazardRespawns(t *testing.T) {
	cfg := createTestLevelConfig()
	cfg.Coins = nil
	cfg.Spikes = []config.RectConfig{{X: 120, Y: 485, W: 20, H: 15}}
	s := createTestSession(t, cfg, 1)
	firstID := s.Player.ID

	var events []Event
	for i := 0; i < 30 && countEvents(events, EventLifeLost) == 0; i++ {
		events = append(events, s.Step(system.InputState{Right: true})...)
	}

	require.Equal(t, 1, countEvents(events, EventLifeLost))
	assert.Equal(t, 2, s.Lives)
	assert.NotEqual(t, firstID, s.Player.ID, "fresh body")
	assert.Equal(t, entity.NewRect(40, 420, 60, 80), s.Player.Rect)
	assert.True(t, s.Player.OnGround)
	assert.Equal(t, 0.0, s.Player.VelocityY)
}

func TestSession_Stomp(t *testing.T) {
	cfg := createTestLevelConfig()
	cfg.PlayerSpawn = config.PositionConfig{X: 100, Y: 200}
	cfg.Enemies = []config.EnemySpawn{{X: 100, Y: 420}}
	s := createTestSession(t, cfg, 1)
	require.Len(t, s.Enemies, 1)
	enemyID := s.Enemies[0].ID

	var events []Event
	for i := 0; i < 60 && len(s.Enemies) > 0; i++ {
		events = append(events, s.Step(system.InputState{})...)
	}

	assert.Empty(t, s.Enemies)
	require.Equal(t, 1, countEvents(events, EventStomp))
	for _, ev := range events {
		if ev.Kind == EventStomp {
			assert.Equal(t, enemyID, ev.ID)
		}
	}
	assert.Equal(t, 3, s.Lives)
}

func TestSession_EnemyFallsOut(t *testing.T) {
	cfg := createTestLevelConfig()
	cfg.Enemies = []config.EnemySpawn{{X: 720, Y: 420, FacingRight: true}}
	s := createTestSession(t, cfg, 1)

	var events []Event
	for i := 0; i < 120 && len(s.Enemies) > 0; i++ {
		events = append(events, s.Step(system.InputState{})...)
	}

	assert.Empty(t, s.Enemies)
	assert.Equal(t, 1, countEvents(events, EventEnemyLost))
	assert.Equal(t, StatusPlaying, s.Status)
}

func TestSession_Pause(t *testing.T) {
	s := createTestSession(t, createTestLevelConfig(), 1)
	s.Paused = true

	assert.Nil(t, s.Step(system.InputState{Right: true}))
	assert.Equal(t, 0, s.Tick)
	assert.Equal(t, 40.0, s.Player.Rect.X)

	s.Paused = false
	s.Step(system.InputState{Right: true})
	assert.Equal(t, 1, s.Tick)
	assert.Equal(t, s.Clock().Tick(), s.Clock().Now())
}

func TestSession_Deterministic(t *testing.T) {
	cfg := createTestLevelConfig()
	cfg.Platforms[0].Holes = nil
	cfg.Enemies = []config.EnemySpawn{
		{X: 400, Y: 420, FacingRight: true},
		{X: 800, Y: 420},
	}

	script := func(tick int) system.InputState {
		return system.InputState{
			Right:       tick%200 < 120,
			Left:        tick%200 >= 150,
			JumpPressed: tick%45 == 0,
			Crouch:      tick%300 > 260,
		}
	}

	run := func() (entity.Rect, []entity.Rect, int) {
		s := createTestSession(t, cfg, 99)
		for i := 0; i < 900 && !s.Done(); i++ {
			s.Step(script(i))
		}
		var enemies []entity.Rect
		for _, e := range s.Enemies {
			enemies = append(enemies, e.Rect)
		}
		return s.Player.Rect, enemies, s.Score
	}

	p1, e1, score1 := run()
	p2, e2, score2 := run()

	assert.Equal(t, p1, p2)
	assert.Equal(t, e1, e2)
	assert.Equal(t, score1, score2)
}

func TestStatus_String(t *testing.T) {
	assert.Equal(t, "playing", StatusPlaying.String())
	assert.Equal(t, "cleared", StatusCleared.String())
	assert.Equal(t, "game_over", StatusGameOver.String())
	assert.Equal(t, "stomp", EventStomp.String())
}
