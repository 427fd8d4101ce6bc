package system

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/younwookim/holefall/internal/domain/entity"
	"github.com/younwookim/holefall/internal/infrastructure/config"
)

// Default sizes for objects whose level entry omits them
const (
	DefaultPickupSize   = 30
	DefaultPortalWidth  = 60
	DefaultPortalHeight = 80
)

// ErrLevelSize is returned for levels without a positive size
var ErrLevelSize = errors.New("level size must be positive")

// LoadLevel converts a LevelConfig into a validated Level.
// Topology problems are returned here and never reach the simulation.
func LoadLevel(cfg *config.LevelConfig) (*entity.Level, error) {
	if cfg.Size.Width <= 0 || cfg.Size.Height <= 0 {
		return nil, fmt.Errorf("level %s: %w", cfg.ID, ErrLevelSize)
	}

	ground := cfg.GroundLevel
	if ground <= 0 {
		ground = cfg.Size.Height
	}
	level := entity.NewLevel(cfg.ID, cfg.Size.Width, cfg.Size.Height, ground)
	level.Name = cfg.Name
	level.SpawnX = cfg.PlayerSpawn.X
	level.SpawnY = cfg.PlayerSpawn.Y
	level.ArtifactsRequired = artifactsRequired(cfg)

	for i, pc := range cfg.Platforms {
		p := level.AddPlatform(entity.NewRect(pc.X, pc.Y, pc.Width, pc.Height))
		for j, hc := range pc.Holes {
			h, err := level.AddHole(p, hc.X, hc.Width)
			if err != nil {
				return nil, fmt.Errorf("level %s: platform %d hole %d: %w", cfg.ID, i, j, err)
			}
			if hc.Lift == nil {
				continue
			}
			lf := level.AddLift(hc.Lift.Speed)
			if err := level.BindLift(h, lf); err != nil {
				return nil, fmt.Errorf("level %s: platform %d hole %d: %w", cfg.ID, i, j, err)
			}
		}
	}

	addRects(level, entity.KindStaticWall, cfg.Walls)
	addRects(level, entity.KindStaticBeam, cfg.Beams)
	addRects(level, entity.KindSpike, cfg.Spikes)
	addRects(level, entity.KindSaw, cfg.Saws)
	addPickups(level, entity.KindCoin, cfg.Coins)
	addPickups(level, entity.KindArtifact, cfg.Artifacts)

	for _, pc := range cfg.Portals {
		obj := level.AddObject(entity.KindPortal,
			entity.NewRect(pc.X, pc.Y, DefaultPortalWidth, DefaultPortalHeight))
		obj.Finish = pc.Finish
	}

	if err := level.Validate(); err != nil {
		return nil, fmt.Errorf("level %s: %w", cfg.ID, err)
	}
	return level, nil
}

// artifactsRequired defaults to the level number and never exceeds
// the artifacts actually placed
func artifactsRequired(cfg *config.LevelConfig) int {
	n := cfg.ArtifactsRequired
	if n <= 0 {
		if num, err := strconv.Atoi(cfg.ID); err == nil {
			n = num
		}
	}
	return min(max(n, 0), len(cfg.Artifacts))
}

func addRects(level *entity.Level, kind entity.ObjectKind, rects []config.RectConfig) {
	for _, rc := range rects {
		level.AddObject(kind, entity.NewRect(rc.X, rc.Y, rc.W, rc.H))
	}
}

func addPickups(level *entity.Level, kind entity.ObjectKind, pickups []config.PickupConfig) {
	for _, pc := range pickups {
		w, h := pc.W, pc.H
		if w <= 0 {
			w = DefaultPickupSize
		}
		if h <= 0 {
			h = DefaultPickupSize
		}
		obj := level.AddObject(kind, entity.NewRect(pc.X, pc.Y, w, h))
		if pc.Value > 0 {
			obj.Value = pc.Value
		}
	}
}

// PlayerBodyConfig derives the player's body tuning from physics.json
func PlayerBodyConfig(cfg *config.PhysicsConfig) entity.BodyConfig {
	return entity.BodyConfig{
		Width:          cfg.Player.Width,
		StandingHeight: cfg.Player.StandingHeight,
		CrouchHeight:   cfg.Player.CrouchHeight,
		Speed:          cfg.Player.Speed,
		JumpForce:      cfg.Player.JumpForce,
		Gravity:        cfg.Physics.Gravity,
		MaxFallSpeed:   cfg.Physics.MaxFallSpeed,
		FallThreshold:  cfg.Physics.Gravity * cfg.Physics.FallThresholdMultiplier,
	}
}

// EnemyBodyConfig derives enemy tuning from physics.json
func EnemyBodyConfig(cfg *config.PhysicsConfig) entity.EnemyConfig {
	return entity.EnemyConfig{
		Body: entity.BodyConfig{
			Width:          cfg.Enemy.Width,
			StandingHeight: cfg.Enemy.Height,
			Speed:          cfg.Enemy.Speed,
			JumpForce:      cfg.Enemy.JumpForce,
			Gravity:        cfg.Physics.Gravity,
			MaxFallSpeed:   cfg.Physics.MaxFallSpeed,
			FallThreshold:  cfg.Physics.Gravity * cfg.Physics.FallThresholdMultiplier,
		},
		StepLimit:                  cfg.Enemy.StepLimit,
		JumpInterval:               config.Seconds(cfg.Enemy.JumpInterval),
		JumpChance:                 cfg.Enemy.JumpChance,
		MinDirectionChangeInterval: config.Seconds(cfg.Enemy.MinDirectionChangeInterval),
		ObstacleProbeDistance:      cfg.Enemy.ObstacleProbeDistance,
		LedgeProbeDepth:            cfg.Enemy.LedgeProbeDepth,
	}
}
