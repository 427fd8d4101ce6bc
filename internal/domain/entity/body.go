package entity

// BodyConfig holds the tuning values of a physics body.
// All values are in pixels and pixels per tick.
type BodyConfig struct {
	Width          float64
	StandingHeight float64
	CrouchHeight   float64
	Speed          float64
	JumpForce      float64
	Gravity        float64
	MaxFallSpeed   float64 // 0 = unlimited
	FallThreshold  float64 // 0 = 2 * Gravity
}

// Body is the per-entity motion state of a player or enemy
type Body struct {
	ID   EntityID
	Kind ObjectKind
	Rect Rect

	VelocityY float64
	OnGround  bool
	OnLift    bool
	Crouching bool
	Direction int // -1, 0, 1: intended horizontal motion
	Facing    int // -1 or 1

	Speed          float64
	JumpForce      float64
	Gravity        float64
	MaxFallSpeed   float64
	GroundLevel    float64
	StandingHeight float64
	CrouchHeight   float64
	FallThreshold  float64

	Action ActionState
}

// NewBody creates a body standing with its top-left at (x, y).
// Fresh bodies start grounded with zero velocity.
func NewBody(id EntityID, kind ObjectKind, x, y, groundLevel float64, cfg BodyConfig) *Body {
	crouch := cfg.CrouchHeight
	if crouch <= 0 {
		crouch = cfg.StandingHeight / 2
	}
	threshold := cfg.FallThreshold
	if threshold <= 0 {
		threshold = 2 * cfg.Gravity
	}
	return &Body{
		ID:             id,
		Kind:           kind,
		Rect:           Rect{X: x, Y: y, W: cfg.Width, H: cfg.StandingHeight},
		OnGround:       true,
		Facing:         1,
		Speed:          cfg.Speed,
		JumpForce:      cfg.JumpForce,
		Gravity:        cfg.Gravity,
		MaxFallSpeed:   cfg.MaxFallSpeed,
		GroundLevel:    groundLevel,
		StandingHeight: cfg.StandingHeight,
		CrouchHeight:   crouch,
		FallThreshold:  threshold,
		Action:         ActionIdle,
	}
}

// Move sets the intended horizontal direction. Values are clamped to -1..1.
func (b *Body) Move(direction int) {
	switch {
	case direction > 0:
		b.Direction = 1
		b.Facing = 1
	case direction < 0:
		b.Direction = -1
		b.Facing = -1
	default:
		b.Direction = 0
	}
}

// Jump launches the body if it is grounded and standing.
// Returns false when the jump was refused.
func (b *Body) Jump() bool {
	if !b.OnGround || b.Crouching {
		return false
	}
	b.VelocityY = -b.JumpForce
	b.OnGround = false
	b.OnLift = false
	b.Action = ActionJump
	return true
}

// Crouch shrinks the body to crouch height, keeping its feet in place.
// Only grounded, standing bodies can crouch.
func (b *Body) Crouch() bool {
	if !b.OnGround || b.Crouching {
		return false
	}
	b.Rect.ResizeHeight(b.CrouchHeight)
	b.Crouching = true
	b.Action = ActionSit
	return true
}

// StandingRect returns the rect the body would occupy standing up
func (b *Body) StandingRect() Rect {
	r := b.Rect
	r.ResizeHeight(b.StandingHeight)
	return r
}

// Stand restores standing height without a clearance check.
// Callers are expected to probe StandingRect first.
func (b *Body) Stand() {
	if !b.Crouching {
		return
	}
	b.Rect.ResizeHeight(b.StandingHeight)
	b.Crouching = false
}

// Proxy returns the object other bodies collide with
func (b *Body) Proxy() *GameObject {
	return NewGameObject(b.ID, b.Kind, b.Rect)
}

// SyncProxy copies the current rect into an existing proxy
func (b *Body) SyncProxy(obj *GameObject) {
	obj.Rect = b.Rect
}

// RefreshAction recomputes the action state from the resolved motion
func (b *Body) RefreshAction() {
	next := DeriveAction(b.OnGround, b.VelocityY, b.Crouching, b.Direction, b.FallThreshold)
	b.Action = SettleAction(b.Action, next)
}
