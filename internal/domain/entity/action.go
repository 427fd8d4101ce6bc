package entity

// ActionState is the animation-relevant classification of a body's motion
type ActionState int

const (
	ActionIdle ActionState = iota
	ActionMove
	ActionJump
	ActionFall
	ActionSit
	ActionSitMove
	ActionSitIdle
)

// String returns the animation key of the state
func (a ActionState) String() string {
	switch a {
	case ActionIdle:
		return "idle"
	case ActionMove:
		return "move"
	case ActionJump:
		return "jump"
	case ActionFall:
		return "fall"
	case ActionSit:
		return "sit"
	case ActionSitMove:
		return "sit_move"
	case ActionSitIdle:
		return "sit_idle"
	default:
		return "unknown"
	}
}

// DeriveAction classifies motion without side effects.
// Airborne bodies keep the Jump state through the apex until velocityY
// exceeds fallThreshold, which avoids flicker between Jump and Fall.
func DeriveAction(onGround bool, velocityY float64, crouching bool, direction int, fallThreshold float64) ActionState {
	if onGround {
		switch {
		case crouching && direction != 0:
			return ActionSitMove
		case crouching:
			return ActionSit
		case direction != 0:
			return ActionMove
		default:
			return ActionIdle
		}
	}
	if velocityY > fallThreshold {
		return ActionFall
	}
	return ActionJump
}

// SettleAction resolves the crouch rest state: a Sit that follows crawling
// (or an earlier rest) becomes SitIdle.
func SettleAction(prev, next ActionState) ActionState {
	if next == ActionSit && (prev == ActionSitMove || prev == ActionSitIdle) {
		return ActionSitIdle
	}
	return next
}
