package system

import (
	"math/rand"

	"github.com/charmbracelet/log"
	"github.com/younwookim/holefall/internal/domain/entity"
)

// AISystem drives scanning enemies
type AISystem struct {
	clock  Clock
	rng    *rand.Rand
	level  *entity.Level
	logger *log.Logger
}

// NewAISystem creates a new AI system.
// The clock and rng are injected so runs are reproducible.
func NewAISystem(clock Clock, rng *rand.Rand, level *entity.Level, logger *log.Logger) *AISystem {
	return &AISystem{
		clock:  clock,
		rng:    rng,
		level:  level,
		logger: logger,
	}
}

// UpdateAI runs one AI tick for an enemy. Call it before ApplyPhysics.
func (s *AISystem) UpdateAI(e *entity.Enemy, objects []*entity.GameObject) {
	// Airborne enemies keep their heading until they land
	if !e.Patrolling() {
		return
	}
	now := s.clock.Now()

	e.ObstacleDetected = s.probeObstacle(e, objects)
	e.GroundAhead = s.probeGround(e, objects)

	if e.StepCounter >= e.StepLimit || e.ObstacleDetected || !e.GroundAhead {
		if e.CanTurn(now) {
			e.Reverse(now)
			if s.logger != nil {
				s.logger.Debug("enemy turned",
					"enemy", e.ID,
					"dir", e.CurrentDirection,
					"obstacle", e.ObstacleDetected,
					"ground", e.GroundAhead,
				)
			}
		}
	}

	e.Move(e.CurrentDirection)
	e.StepCounter++

	if e.ObstacleDetected {
		e.Jump()
	}

	if e.JumpInterval > 0 && now-e.LastJumpTime >= e.JumpInterval {
		e.LastJumpTime = now
		if s.rng != nil && s.rng.Float64() < e.JumpChance {
			e.Jump()
		}
	}
}

// probeObstacle looks for a solid directly ahead of the enemy
func (s *AISystem) probeObstacle(e *entity.Enemy, objects []*entity.GameObject) bool {
	probe := e.Rect.Offset(float64(e.CurrentDirection)*e.ObstacleProbeDistance, 0)
	for _, obj := range objects {
		if !obj.Active || obj.ID == e.ID || !obj.Kind.Solid() {
			continue
		}
		if !probe.Overlaps(obj.Rect) {
			continue
		}
		if obj.Kind.IsGround() {
			// Floors only count when they rise above the feet
			if obj.Rect.Top() >= e.Rect.Bottom() {
				continue
			}
			if s.holeContains(obj, probe) {
				continue
			}
		}
		return true
	}
	return false
}

// probeGround checks for support just past the leading edge
func (s *AISystem) probeGround(e *entity.Enemy, objects []*entity.GameObject) bool {
	strip := s.ledgeProbe(e)

	if s.level != nil && (strip.Left() < 0 || strip.Right() > s.level.Width) {
		return false
	}
	if strip.Bottom() > e.GroundLevel {
		return true
	}

	for _, obj := range objects {
		if !obj.Active || obj.ID == e.ID || !obj.Kind.IsGround() {
			continue
		}
		if !strip.Overlaps(obj.Rect) {
			continue
		}
		if s.holeContains(obj, strip) {
			continue
		}
		return true
	}
	return false
}

// ledgeProbe returns the 1px wide strip below the leading edge
func (s *AISystem) ledgeProbe(e *entity.Enemy) entity.Rect {
	d := e.ObstacleProbeDistance
	x := e.Rect.Left() - d
	if e.CurrentDirection > 0 {
		x = e.Rect.Right() + d - 1
	}
	return entity.Rect{X: x, Y: e.Rect.Bottom() + 1, W: 1, H: e.LedgeProbeDepth}
}

// holeContains reports whether r lies horizontally inside a hole of obj
func (s *AISystem) holeContains(obj *entity.GameObject, r entity.Rect) bool {
	if s.level == nil {
		return false
	}
	for _, h := range s.level.HolesOf(obj) {
		if h.ContainsX(r) {
			return true
		}
	}
	return false
}
