package system

import "github.com/younwookim/holefall/internal/domain/entity"

// StandUp tries to restore standing height. It returns false when an
// overhead solid blocks the standing rect; the body then stays crouched.
func (s *PhysicsSystem) StandUp(b *entity.Body, objects []*entity.GameObject) bool {
	if !b.Crouching {
		return true
	}
	if !s.CanStand(b, objects) {
		return false
	}
	b.Stand()
	return true
}

// CanStand reports whether the standing rect is clear of solids
func (s *PhysicsSystem) CanStand(b *entity.Body, objects []*entity.GameObject) bool {
	candidate := b.StandingRect()
	for _, obj := range objects {
		if !obj.Active || obj.ID == b.ID || !obj.Kind.Solid() || obj.Kind == entity.KindPlayer {
			continue
		}
		if !candidate.Overlaps(obj.Rect) {
			continue
		}
		if s.inHole(obj, candidate.CenterX()) {
			continue
		}
		return false
	}
	return true
}
