package entity

import "time"

// EnemyConfig holds the AI tuning of an enemy
type EnemyConfig struct {
	Body BodyConfig

	StepLimit                  int
	JumpInterval               time.Duration
	JumpChance                 float64 // probability of a timed jump roll
	MinDirectionChangeInterval time.Duration
	ObstacleProbeDistance      float64
	LedgeProbeDepth            float64
}

// Enemy is a body driven by the scanning AI
type Enemy struct {
	*Body
	Active bool

	CurrentDirection int
	StepCounter      int
	StepLimit        int

	LastJumpTime               time.Duration
	JumpInterval               time.Duration
	JumpChance                 float64
	LastDirectionChange        time.Duration
	MinDirectionChangeInterval time.Duration

	ObstacleProbeDistance float64
	LedgeProbeDepth       float64

	// Probe results of the last AI tick
	ObstacleDetected bool
	GroundAhead      bool
}

// NewEnemy creates an enemy standing at (x, y) facing the given direction.
// now is the clock reading at spawn; the first reversal is allowed immediately.
func NewEnemy(id EntityID, x, y, groundLevel float64, facing int, now time.Duration, cfg EnemyConfig) *Enemy {
	body := NewBody(id, KindEnemy, x, y, groundLevel, cfg.Body)
	dir := 1
	if facing < 0 {
		dir = -1
	}
	body.Facing = dir

	depth := cfg.LedgeProbeDepth
	if depth <= 0 {
		depth = 5
	}
	return &Enemy{
		Body:                       body,
		Active:                     true,
		CurrentDirection:           dir,
		StepLimit:                  cfg.StepLimit,
		LastJumpTime:               now,
		JumpInterval:               cfg.JumpInterval,
		JumpChance:                 cfg.JumpChance,
		LastDirectionChange:        now - cfg.MinDirectionChangeInterval,
		MinDirectionChangeInterval: cfg.MinDirectionChangeInterval,
		ObstacleProbeDistance:      cfg.ObstacleProbeDistance,
		LedgeProbeDepth:            depth,
	}
}

// Patrolling reports whether the enemy is grounded and evaluating its AI
func (e *Enemy) Patrolling() bool {
	return e.Active && e.OnGround
}

// CanTurn reports whether the reversal cooldown has elapsed
func (e *Enemy) CanTurn(now time.Duration) bool {
	return now-e.LastDirectionChange >= e.MinDirectionChangeInterval
}

// Reverse flips the patrol direction and restarts the step count
func (e *Enemy) Reverse(now time.Duration) {
	e.CurrentDirection = -e.CurrentDirection
	e.StepCounter = 0
	e.LastDirectionChange = now
}
