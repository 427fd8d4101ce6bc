package config

import "time"

// PhysicsConfig is the root config for physics.json
type PhysicsConfig struct {
	Display DisplayConfig   `json:"display"`
	Physics PhysicsSettings `json:"physics"`
	Player  PlayerConfig    `json:"player"`
	Enemy   EnemyConfig     `json:"enemy"`
	Session SessionConfig   `json:"session"`
}

type DisplayConfig struct {
	ScreenWidth  int `json:"screenWidth"`
	ScreenHeight int `json:"screenHeight"`
	Scale        int `json:"scale"`
	Framerate    int `json:"framerate"`
}

// PhysicsSettings values are per tick, not per second
type PhysicsSettings struct {
	Gravity      float64 `json:"gravity"`
	MaxFallSpeed float64 `json:"maxFallSpeed"` // 0 = unlimited
	// FallThresholdMultiplier is the multiple of gravity a body must exceed
	// while airborne before its action switches from jump to fall
	FallThresholdMultiplier float64 `json:"fallThresholdMultiplier"`
}

type PlayerConfig struct {
	Width          float64 `json:"width"`
	StandingHeight float64 `json:"standingHeight"`
	CrouchHeight   float64 `json:"crouchHeight"`
	Speed          float64 `json:"speed"`
	JumpForce      float64 `json:"jumpForce"`
}

type EnemyConfig struct {
	Width     float64 `json:"width"`
	Height    float64 `json:"height"`
	Speed     float64 `json:"speed"`
	JumpForce float64 `json:"jumpForce"`

	StepLimit                  int     `json:"stepLimit"`
	JumpInterval               float64 `json:"jumpInterval"` // seconds
	JumpChance                 float64 `json:"jumpChance"`
	MinDirectionChangeInterval float64 `json:"minDirectionChangeInterval"` // seconds
	ObstacleProbeDistance      float64 `json:"obstacleProbeDistance"`
	LedgeProbeDepth            float64 `json:"ledgeProbeDepth"`
}

type SessionConfig struct {
	Lives int `json:"lives"`
}

// Seconds converts a config value in seconds to a duration
func Seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}

// DefaultPhysicsConfig returns the tuning the game ships with
func DefaultPhysicsConfig() *PhysicsConfig {
	return &PhysicsConfig{
		Display: DisplayConfig{
			ScreenWidth:  1280,
			ScreenHeight: 960,
			Scale:        1,
			Framerate:    60,
		},
		Physics: PhysicsSettings{
			Gravity:                 0.6,
			MaxFallSpeed:            20,
			FallThresholdMultiplier: 2,
		},
		Player: PlayerConfig{
			Width:          60,
			StandingHeight: 80,
			CrouchHeight:   40,
			Speed:          5,
			JumpForce:      15,
		},
		Enemy: EnemyConfig{
			Width:                      60,
			Height:                     80,
			Speed:                      2,
			JumpForce:                  10,
			StepLimit:                  1000,
			JumpInterval:               4,
			JumpChance:                 0.7,
			MinDirectionChangeInterval: 0.25,
			ObstacleProbeDistance:      40,
			LedgeProbeDepth:            5,
		},
		Session: SessionConfig{
			Lives: 3,
		},
	}
}
