package system

import "github.com/younwookim/holefall/internal/domain/entity"

// Intent represents an action that a body wants to perform
type Intent interface {
	isIntent()
}

// MoveIntent sets the horizontal direction
type MoveIntent struct {
	EntityID  entity.EntityID
	Direction int // -1 left, 0 stop, 1 right
}

func (MoveIntent) isIntent() {}

// JumpIntent represents a jump intention
type JumpIntent struct {
	EntityID entity.EntityID
}

func (JumpIntent) isIntent() {}

// CrouchIntent asks the body to sit down
type CrouchIntent struct {
	EntityID entity.EntityID
}

func (CrouchIntent) isIntent() {}

// StandIntent asks the body to stand up, subject to clearance
type StandIntent struct {
	EntityID entity.EntityID
}

func (StandIntent) isIntent() {}

// ApplyIntent applies one intent to a body.
// It returns false when the body refused it.
func (s *PhysicsSystem) ApplyIntent(b *entity.Body, intent Intent, objects []*entity.GameObject) bool {
	switch in := intent.(type) {
	case MoveIntent:
		b.Move(in.Direction)
		return true
	case JumpIntent:
		return b.Jump()
	case CrouchIntent:
		return b.Crouch()
	case StandIntent:
		return s.StandUp(b, objects)
	}
	return false
}
