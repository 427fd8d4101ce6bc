package system

import (
	"math"
	"slices"

	"github.com/charmbracelet/log"
	"github.com/younwookim/holefall/internal/domain/entity"
)

// Collection is one collectible picked up during a tick
type Collection struct {
	Kind  entity.ObjectKind
	Value int
}

// TickReport is what a single ApplyPhysics call tells the caller
type TickReport struct {
	OnGround  bool
	OnLift    bool
	Hazard    bool               // touched a spike, saw or enemy from the side
	FellOut   bool               // dropped past the bottom of the world
	Portal    *entity.GameObject // active portal touched this tick
	Collected []Collection
	Stomped   []entity.EntityID // enemies landed on from above
	Anomaly   bool              // displacement was rejected and the pre-tick state restored
}

// PhysicsSystem resolves body motion against level geometry
type PhysicsSystem struct {
	level  *entity.Level
	logger *log.Logger
}

// NewPhysicsSystem creates a new physics system.
// level may be nil; lifts then carry no velocity and platforms have no holes.
func NewPhysicsSystem(level *entity.Level, logger *log.Logger) *PhysicsSystem {
	return &PhysicsSystem{
		level:  level,
		logger: logger,
	}
}

// ApplyPhysics advances one body by one tick against the active objects
func (s *PhysicsSystem) ApplyPhysics(b *entity.Body, objects []*entity.GameObject, worldWidth, worldHeight float64) TickReport {
	var report TickReport

	prev := b.Rect
	prevCrouching := b.Crouching
	prevVelocityY := b.VelocityY
	prevOnGround, prevOnLift := b.OnGround, b.OnLift

	// Gravity
	s.integrate(b)
	falling := b.VelocityY > 0

	if b.Rect.Top() < 0 {
		b.Rect.SetTop(0)
		b.VelocityY = 0
	}

	s.resolveVertical(b, prev, objects)

	// Ground fallback
	if b.Rect.Bottom() >= b.GroundLevel {
		b.Rect.SetBottom(b.GroundLevel)
		b.VelocityY = 0
		b.OnGround = true
	}

	prevX := b.Rect.X
	preMoveCenter := b.Rect.CenterX()
	b.Rect.X += b.Speed * float64(b.Direction)
	bumped := s.resolveHorizontal(b, prevX, preMoveCenter, objects)

	// World edges
	if b.Rect.Left() < 0 {
		b.Rect.SetLeft(0)
	}
	if worldWidth > 0 && b.Rect.Right() > worldWidth {
		b.Rect.SetRight(worldWidth)
	}

	// Crouch is grounded-only
	if b.Crouching && (!b.OnGround || b.VelocityY != 0) {
		s.StandUp(b, objects)
	}

	if s.displaced(b, prev) {
		report.Anomaly = true
		b.Rect = prev
		b.Crouching = prevCrouching
		b.VelocityY = prevVelocityY
		b.OnGround, b.OnLift = prevOnGround, prevOnLift
	}

	if b.Kind == entity.KindPlayer {
		s.resolveTriggers(b, prev, falling, objects, &report)
		// Walking into an enemy hurts even though the move was undone
		for _, id := range bumped {
			if !slices.Contains(report.Stomped, id) {
				report.Hazard = true
			}
		}
	}

	if worldHeight > 0 && b.Rect.Top() >= worldHeight {
		report.FellOut = true
	}

	b.RefreshAction()
	report.OnGround = b.OnGround
	report.OnLift = b.OnLift
	return report
}

// integrate applies gravity and vertical velocity, clearing support flags
func (s *PhysicsSystem) integrate(b *entity.Body) {
	b.VelocityY += b.Gravity
	if b.MaxFallSpeed > 0 && b.VelocityY > b.MaxFallSpeed {
		b.VelocityY = b.MaxFallSpeed
	}
	b.Rect.Y += b.VelocityY
	b.OnGround = false
	b.OnLift = false
}

// resolveVertical snaps the body against whatever it moved into vertically
func (s *PhysicsSystem) resolveVertical(b *entity.Body, prev entity.Rect, objects []*entity.GameObject) {
	for _, obj := range objects {
		if !obj.Active || obj.ID == b.ID || !obj.Kind.Solid() {
			continue
		}
		if !b.Rect.Overlaps(obj.Rect) {
			continue
		}

		switch obj.Kind {
		case entity.KindPlatform, entity.KindStaticWall, entity.KindStaticBeam:
			if s.inHole(obj, b.Rect.CenterX()) {
				continue
			}
			if prev.Overlaps(obj.Rect) {
				continue
			}
			if b.VelocityY > 0 {
				b.Rect.SetBottom(obj.Rect.Top())
				b.VelocityY = 0
				b.OnGround = true
			} else if b.VelocityY < 0 {
				b.Rect.SetTop(obj.Rect.Bottom())
				b.VelocityY = 0
			}

		case entity.KindLift:
			if !obj.Rect.ContainsPointX(b.Rect.CenterX()) || b.Rect.Bottom() >= obj.Rect.Bottom() {
				continue
			}
			b.OnLift = true
			b.OnGround = true
			b.VelocityY = s.liftVelocity(obj)
			b.Rect.SetBottom(obj.Rect.Top())

		case entity.KindEnemy:
			// Landing on an enemy is handled by the trigger pass
			if b.VelocityY < 0 {
				b.VelocityY = -b.JumpForce / 2
			}
		}
	}
}

// resolveHorizontal pushes the body out of anything it walked into.
// It returns the enemies that blocked the move.
func (s *PhysicsSystem) resolveHorizontal(b *entity.Body, prevX, preMoveCenter float64, objects []*entity.GameObject) []entity.EntityID {
	if b.Direction == 0 {
		return nil
	}
	var bumped []entity.EntityID
	prevLeft := prevX
	prevRight := prevX + b.Rect.W

	for _, obj := range objects {
		if !obj.Active || obj.ID == b.ID || !obj.Kind.Solid() {
			continue
		}
		if !b.Rect.Overlaps(obj.Rect) {
			continue
		}

		switch obj.Kind {
		case entity.KindPlatform, entity.KindStaticWall, entity.KindStaticBeam:
			before := b.Rect
			before.X = prevX
			embedded := before.Overlaps(obj.Rect)

			if hole, ok := s.holeAt(obj, preMoveCenter); ok {
				// Stop at the lip; a body already past it is not blocked
				if b.Direction > 0 && prevRight <= hole.Right() && b.Rect.Right() > hole.Right() {
					b.Rect.SetRight(hole.Right())
				} else if b.Direction < 0 && prevLeft >= hole.Left() && b.Rect.Left() < hole.Left() {
					b.Rect.SetLeft(hole.Left())
				}
				// Inside the slab the center may not leave the hole
				if embedded && !hole.ContainsPointX(b.Rect.CenterX()) {
					b.Rect.X = prevX
				}
				continue
			}
			if embedded {
				// Already inside the slab: keep falling through, never push across it
				b.Rect.X = prevX
				continue
			}
			if b.Direction > 0 {
				b.Rect.SetRight(obj.Rect.Left())
			} else {
				b.Rect.SetLeft(obj.Rect.Right())
			}

		case entity.KindEnemy:
			b.Rect.X = prevX
			bumped = append(bumped, obj.ID)
		}
	}
	return bumped
}

// resolveTriggers handles collectibles, hazards, portals and enemy contact
func (s *PhysicsSystem) resolveTriggers(b *entity.Body, prev entity.Rect, falling bool, objects []*entity.GameObject, report *TickReport) {
	for _, obj := range objects {
		if !obj.Active || obj.ID == b.ID {
			continue
		}
		if !b.Rect.Overlaps(obj.Rect) {
			continue
		}

		switch obj.Kind {
		case entity.KindCoin, entity.KindArtifact:
			kind := obj.Kind
			value := obj.Collect()
			report.Collected = append(report.Collected, Collection{Kind: kind, Value: value})

		case entity.KindSpike, entity.KindSaw:
			report.Hazard = true

		case entity.KindPortal:
			if report.Portal == nil {
				report.Portal = obj
			}

		case entity.KindEnemy:
			if falling && prev.Bottom() <= obj.Rect.Top() {
				report.Stomped = append(report.Stomped, obj.ID)
				b.VelocityY = -b.JumpForce / 2
				b.OnGround = false
				continue
			}
			report.Hazard = true
		}
	}
}

// displaced reports and logs a per-tick jump larger than the body itself
func (s *PhysicsSystem) displaced(b *entity.Body, prev entity.Rect) bool {
	dx := math.Abs(b.Rect.X - prev.X)
	dy := math.Abs(b.Rect.Bottom() - prev.Bottom())
	if dx <= prev.W && dy <= prev.H {
		return false
	}
	if s.logger != nil {
		s.logger.Warn("displacement rejected",
			"body", b.ID,
			"kind", b.Kind,
			"dx", dx,
			"dy", dy,
			"x", prev.X,
			"y", prev.Y,
		)
	}
	return true
}

// holeAt returns the hole of a platform object that contains x
func (s *PhysicsSystem) holeAt(obj *entity.GameObject, x float64) (entity.Rect, bool) {
	if s.level == nil || obj.Kind != entity.KindPlatform {
		return entity.Rect{}, false
	}
	for _, h := range s.level.HolesOf(obj) {
		if h.ContainsPointX(x) {
			return h, true
		}
	}
	return entity.Rect{}, false
}

// inHole reports whether x lies inside one of the platform's holes
func (s *PhysicsSystem) inHole(obj *entity.GameObject, x float64) bool {
	_, ok := s.holeAt(obj, x)
	return ok
}

// liftVelocity returns the per-tick velocity of a lift object
func (s *PhysicsSystem) liftVelocity(obj *entity.GameObject) float64 {
	if s.level == nil {
		return 0
	}
	lf, ok := s.level.LiftOf(obj)
	if !ok {
		return 0
	}
	return lf.Velocity()
}

