package system

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younwookim/holefall/internal/domain/entity"
	"github.com/younwookim/holefall/internal/infrastructure/config"
)

func createTestLevelConfig() *config.LevelConfig {
	return &config.LevelConfig{
		ID:                "1",
		Name:              "Test",
		Size:              config.LevelSizeConfig{Width: 1280, Height: 960},
		GroundLevel:       2000,
		PlayerSpawn:       config.PositionConfig{X: 40, Y: 800},
		ArtifactsRequired: 1,
		Platforms: []config.PlatformConfig{
			{
				X: 0, Y: 880, Width: 1280, Height: 20,
				Holes: []config.HoleConfig{
					{X: 600, Width: 100, Lift: &config.LiftConfig{Speed: 2}},
					{X: 200, Width: 80},
				},
			},
			{
				X: 0, Y: 560, Width: 1280, Height: 20,
				Holes: []config.HoleConfig{{X: 600, Width: 100}},
			},
		},
		Walls:     []config.RectConfig{{X: 1200, Y: 780, W: 20, H: 100}},
		Spikes:    []config.RectConfig{{X: 900, Y: 860, W: 40, H: 20}},
		Coins:     []config.PickupConfig{{X: 300, Y: 820}},
		Artifacts: []config.PickupConfig{{X: 1000, Y: 500, Value: 500}},
		Portals: []config.PortalConfig{
			{X: 20, Y: 800},
			{X: 1180, Y: 480, Finish: true},
		},
	}
}

func TestLoadLevel(t *testing.T) {
	t.Run("builds geometry", func(t *testing.T) {
		level, err := LoadLevel(createTestLevelConfig())
		require.NoError(t, err)

		assert.Equal(t, "Test", level.Name)
		assert.Equal(t, 1280.0, level.Width)
		assert.Equal(t, 2000.0, level.GroundLevel)
		assert.Equal(t, 40.0, level.SpawnX)
		assert.Len(t, level.Platforms, 2)
		assert.Len(t, level.Holes, 3)
		require.Len(t, level.Lifts, 1)

		// Holes are kept ordered by x
		floor := level.Platforms[0]
		require.Len(t, floor.Holes, 2)
		assert.Equal(t, 200.0, level.Holes[floor.Holes[0]].Rect.X)
		assert.Equal(t, 600.0, level.Holes[floor.Holes[1]].Rect.X)
	})

	t.Run("binds lifts between platforms", func(t *testing.T) {
		level, err := LoadLevel(createTestLevelConfig())
		require.NoError(t, err)

		lift := level.Lifts[0]
		assert.Equal(t, 880.0, lift.LowerY)
		assert.Equal(t, 560.0, lift.UpperY)
		assert.Equal(t, 880.0, lift.Object.Rect.Y)
		assert.Equal(t, 600.0, lift.Object.Rect.X)
		assert.Equal(t, 100.0, lift.Object.Rect.W)
		assert.False(t, lift.Stationary())
	})

	t.Run("places objects", func(t *testing.T) {
		level, err := LoadLevel(createTestLevelConfig())
		require.NoError(t, err)

		assert.Equal(t, 1, level.CountActive(entity.KindStaticWall))
		assert.Equal(t, 1, level.CountActive(entity.KindSpike))
		assert.Equal(t, 1, level.CountActive(entity.KindCoin))

		start, finish := level.Portals()
		assert.Len(t, start, 1)
		require.Len(t, finish, 1)
		assert.Equal(t, float64(DefaultPortalHeight), finish[0].Rect.H)

		for _, obj := range level.Objects {
			switch obj.Kind {
			case entity.KindCoin:
				assert.Equal(t, entity.CoinValue, obj.Value)
				assert.Equal(t, float64(DefaultPickupSize), obj.Rect.W)
			case entity.KindArtifact:
				assert.Equal(t, 500, obj.Value)
			}
		}
	})

	t.Run("artifacts default to level number", func(t *testing.T) {
		cfg := createTestLevelConfig()
		cfg.ID = "3"
		cfg.ArtifactsRequired = 0
		cfg.Artifacts = append(cfg.Artifacts, config.PickupConfig{X: 10, Y: 10}, config.PickupConfig{X: 50, Y: 10})

		level, err := LoadLevel(cfg)
		require.NoError(t, err)
		assert.Equal(t, 3, level.ArtifactsRequired)

		cfg.ID = "9"
		level, err = LoadLevel(cfg)
		require.NoError(t, err)
		assert.Equal(t, 3, level.ArtifactsRequired, "capped at placed artifacts")
	})

	t.Run("ground defaults to level height", func(t *testing.T) {
		cfg := createTestLevelConfig()
		cfg.GroundLevel = 0

		level, err := LoadLevel(cfg)
		require.NoError(t, err)
		assert.Equal(t, 960.0, level.GroundLevel)
	})
}

func TestLoadLevel_Errors(t *testing.T) {
	tests := []struct {
		name   string
		modify func(cfg *config.LevelConfig)
		want   error
	}{
		{
			name: "hole wider than platform",
			modify: func(cfg *config.LevelConfig) {
				cfg.Platforms[1].Holes = []config.HoleConfig{{X: 1200, Width: 200}}
			},
			want: entity.ErrHoleOutsidePlatform,
		},
		{
			name: "hole left of platform",
			modify: func(cfg *config.LevelConfig) {
				cfg.Platforms[1].X = 100
				cfg.Platforms[1].Width = 500
				cfg.Platforms[1].Holes = []config.HoleConfig{{X: 50, Width: 100}}
			},
			want: entity.ErrHoleOutsidePlatform,
		},
		{
			name: "zero width hole",
			modify: func(cfg *config.LevelConfig) {
				cfg.Platforms[1].Holes = []config.HoleConfig{{X: 100, Width: 0}}
			},
			want: entity.ErrHoleOutsidePlatform,
		},
		{
			name: "missing size",
			modify: func(cfg *config.LevelConfig) {
				cfg.Size.Width = 0
			},
			want: ErrLevelSize,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := createTestLevelConfig()
			tt.modify(cfg)

			level, err := LoadLevel(cfg)

			assert.Nil(t, level)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestBodyConfigs(t *testing.T) {
	cfg := config.DefaultPhysicsConfig()

	player := PlayerBodyConfig(cfg)
	assert.Equal(t, cfg.Player.Width, player.Width)
	assert.Equal(t, cfg.Player.CrouchHeight, player.CrouchHeight)
	assert.InDelta(t, 1.2, player.FallThreshold, 1e-9)

	enemy := EnemyBodyConfig(cfg)
	assert.Equal(t, 4*time.Second, enemy.JumpInterval)
	assert.Equal(t, 250*time.Millisecond, enemy.MinDirectionChangeInterval)
	assert.Equal(t, 0.7, enemy.JumpChance)
	assert.Equal(t, cfg.Enemy.Height, enemy.Body.StandingHeight)
}
