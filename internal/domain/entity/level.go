package entity

import (
	"errors"
	"fmt"
	"sort"
)

// Topology errors. Level construction rejects these; the simulation never sees them.
var (
	ErrBadIndex            = errors.New("index out of range")
	ErrHoleOutsidePlatform = errors.New("hole exceeds platform span")
	ErrHoleMisaligned      = errors.New("hole does not share platform y/height")
	ErrHoleAlreadyBound    = errors.New("hole already bound to a lift")
	ErrLiftAlreadyBound    = errors.New("lift already bound to a hole")
	ErrLiftBounds          = errors.New("lift upper bound below lower bound")
)

// Platform is a static walkable slab with optional holes punched through it
type Platform struct {
	Object *GameObject
	Holes  []int // indices into Level.Holes, ordered by x
}

// Hole is a gap cut into a platform
type Hole struct {
	Rect     Rect
	Platform int // owning platform index
	Lift     int // bound lift index, -1 if none
}

// Lift is a vertically oscillating platform bound to a hole.
// Direction +1 moves down (y grows), -1 moves up.
type Lift struct {
	Object    *GameObject
	Speed     float64
	Direction int
	LowerY    float64 // rest position, flush with the hole's platform
	UpperY    float64 // ceiling, flush with the next platform above
	Hole      int     // bound hole index, -1 if none
}

// Stationary reports whether the lift has nowhere to travel
func (l *Lift) Stationary() bool {
	return l.UpperY >= l.LowerY || l.Speed == 0
}

// Velocity returns the lift's per-tick vertical displacement
func (l *Lift) Velocity() float64 {
	if l.Stationary() {
		return 0
	}
	return l.Speed * float64(l.Direction)
}

// Step moves the lift one tick and flips direction at either bound.
func (l *Lift) Step() {
	if l.Stationary() {
		return
	}
	r := &l.Object.Rect
	r.Y += l.Speed * float64(l.Direction)
	if r.Y <= l.UpperY {
		r.Y = l.UpperY
		l.Direction = 1
	} else if r.Y >= l.LowerY {
		r.Y = l.LowerY
		l.Direction = -1
	}
}

// Level holds the world geometry and every placed object.
// Platforms, holes and lifts live in parallel arrays and reference each other by index.
type Level struct {
	ID          string
	Name        string
	Width       float64
	Height      float64
	GroundLevel float64
	SpawnX      float64
	SpawnY      float64

	ArtifactsRequired int

	Platforms []Platform
	Holes     []Hole
	Lifts     []Lift
	Objects   []*GameObject // every placed object in insertion order

	nextID EntityID
}

// NewLevel creates an empty level
func NewLevel(id string, width, height, groundLevel float64) *Level {
	return &Level{
		ID:          id,
		Width:       width,
		Height:      height,
		GroundLevel: groundLevel,
		nextID:      1, // 0 is "nil"
	}
}

// NewEntityID returns a new unique entity ID (never recycled)
func (l *Level) NewEntityID() EntityID {
	id := l.nextID
	l.nextID++
	return id
}

// AddObject places a non-geometry object (hazard, collectible, portal, wall, beam)
func (l *Level) AddObject(kind ObjectKind, rect Rect) *GameObject {
	obj := NewGameObject(l.NewEntityID(), kind, rect)
	switch kind {
	case KindCoin:
		obj.Value = CoinValue
	case KindArtifact:
		obj.Value = ArtifactValue
	}
	l.Objects = append(l.Objects, obj)
	return obj
}

// AddPlatform places a platform and returns its index
func (l *Level) AddPlatform(rect Rect) int {
	obj := NewGameObject(l.NewEntityID(), KindPlatform, rect)
	obj.Index = len(l.Platforms)
	l.Platforms = append(l.Platforms, Platform{Object: obj})
	l.Objects = append(l.Objects, obj)
	return obj.Index
}

// AddHole punches a hole of the given x span into a platform.
// The hole inherits the platform's y and height.
func (l *Level) AddHole(platform int, x, width float64) (int, error) {
	if platform < 0 || platform >= len(l.Platforms) {
		return -1, fmt.Errorf("platform %d: %w", platform, ErrBadIndex)
	}
	p := &l.Platforms[platform]
	pr := p.Object.Rect
	hole := Hole{
		Rect:     Rect{X: x, Y: pr.Y, W: width, H: pr.H},
		Platform: platform,
		Lift:     -1,
	}
	if width <= 0 || !pr.ContainsX(hole.Rect) {
		return -1, fmt.Errorf("hole at x=%.0f w=%.0f on platform %d: %w", x, width, platform, ErrHoleOutsidePlatform)
	}

	idx := len(l.Holes)
	l.Holes = append(l.Holes, hole)
	p.Holes = append(p.Holes, idx)
	sort.Slice(p.Holes, func(i, j int) bool {
		return l.Holes[p.Holes[i]].Rect.X < l.Holes[p.Holes[j]].Rect.X
	})
	return idx, nil
}

// AddLift creates an unbound lift with the given speed and returns its index.
// Use BindLift to place it inside a hole.
func (l *Level) AddLift(speed float64) int {
	obj := NewGameObject(l.NewEntityID(), KindLift, Rect{})
	obj.Index = len(l.Lifts)
	l.Lifts = append(l.Lifts, Lift{
		Object:    obj,
		Speed:     speed,
		Direction: -1,
		Hole:      -1,
	})
	l.Objects = append(l.Objects, obj)
	return obj.Index
}

// BindLift binds a lift to a hole and computes its travel bounds.
// The lift rests flush with the hole's platform and rises to the top of the
// nearest platform strictly above it; with no platform above it stays put.
func (l *Level) BindLift(hole, lift int) error {
	if hole < 0 || hole >= len(l.Holes) {
		return fmt.Errorf("hole %d: %w", hole, ErrBadIndex)
	}
	if lift < 0 || lift >= len(l.Lifts) {
		return fmt.Errorf("lift %d: %w", lift, ErrBadIndex)
	}
	h := &l.Holes[hole]
	lf := &l.Lifts[lift]
	if h.Lift != -1 {
		return fmt.Errorf("hole %d: %w", hole, ErrHoleAlreadyBound)
	}
	if lf.Hole != -1 {
		return fmt.Errorf("lift %d: %w", lift, ErrLiftAlreadyBound)
	}

	platformTop := l.Platforms[h.Platform].Object.Rect.Top()
	lf.LowerY = platformTop
	lf.UpperY = platformTop
	if above, ok := l.platformAbove(platformTop); ok {
		lf.UpperY = above
	}

	lf.Object.Rect = Rect{X: h.Rect.X, Y: lf.LowerY, W: h.Rect.W, H: h.Rect.H}
	lf.Direction = -1
	h.Lift = lift
	lf.Hole = hole
	return nil
}

// platformAbove returns the top of the nearest platform strictly above y
func (l *Level) platformAbove(y float64) (float64, bool) {
	best, found := 0.0, false
	for _, p := range l.Platforms {
		top := p.Object.Rect.Top()
		if top < y && (!found || top > best) {
			best, found = top, true
		}
	}
	return best, found
}

// HolesOf returns the hole rects of a platform object. Non-platform objects have none.
func (l *Level) HolesOf(obj *GameObject) []Rect {
	if obj.Kind != KindPlatform || obj.Index < 0 || obj.Index >= len(l.Platforms) {
		return nil
	}
	idx := l.Platforms[obj.Index].Holes
	if len(idx) == 0 {
		return nil
	}
	rects := make([]Rect, len(idx))
	for i, h := range idx {
		rects[i] = l.Holes[h].Rect
	}
	return rects
}

// LiftOf returns the typed lift record for a lift object
func (l *Level) LiftOf(obj *GameObject) (*Lift, bool) {
	if obj.Kind != KindLift || obj.Index < 0 || obj.Index >= len(l.Lifts) {
		return nil, false
	}
	return &l.Lifts[obj.Index], true
}

// Validate checks the topology invariants.
func (l *Level) Validate() error {
	for i, h := range l.Holes {
		if h.Platform < 0 || h.Platform >= len(l.Platforms) {
			return fmt.Errorf("hole %d platform %d: %w", i, h.Platform, ErrBadIndex)
		}
		pr := l.Platforms[h.Platform].Object.Rect
		if !pr.ContainsX(h.Rect) {
			return fmt.Errorf("hole %d: %w", i, ErrHoleOutsidePlatform)
		}
		if h.Rect.Y != pr.Y || h.Rect.H != pr.H {
			return fmt.Errorf("hole %d: %w", i, ErrHoleMisaligned)
		}
		if h.Lift != -1 {
			if h.Lift < 0 || h.Lift >= len(l.Lifts) {
				return fmt.Errorf("hole %d lift %d: %w", i, h.Lift, ErrBadIndex)
			}
			if l.Lifts[h.Lift].Hole != i {
				return fmt.Errorf("hole %d lift %d: %w", i, h.Lift, ErrLiftAlreadyBound)
			}
		}
	}

	for i, lf := range l.Lifts {
		if lf.Hole == -1 {
			continue
		}
		if lf.Hole < 0 || lf.Hole >= len(l.Holes) {
			return fmt.Errorf("lift %d hole %d: %w", i, lf.Hole, ErrBadIndex)
		}
		if l.Holes[lf.Hole].Lift != i {
			return fmt.Errorf("lift %d hole %d: %w", i, lf.Hole, ErrHoleAlreadyBound)
		}
		if lf.UpperY > lf.LowerY {
			return fmt.Errorf("lift %d upper=%.0f lower=%.0f: %w", i, lf.UpperY, lf.LowerY, ErrLiftBounds)
		}
		y := lf.Object.Rect.Y
		if y < lf.UpperY || y > lf.LowerY {
			return fmt.Errorf("lift %d y=%.0f: %w", i, y, ErrLiftBounds)
		}
	}
	return nil
}

// Step advances moving geometry by one tick
func (l *Level) Step() {
	for i := range l.Lifts {
		if l.Lifts[i].Hole == -1 {
			continue
		}
		l.Lifts[i].Step()
	}
}

// ActiveObjects returns the active placed objects in insertion order.
// Unbound lifts are excluded.
func (l *Level) ActiveObjects() []*GameObject {
	out := make([]*GameObject, 0, len(l.Objects))
	for _, obj := range l.Objects {
		if !obj.Active {
			continue
		}
		if obj.Kind == KindLift {
			if lf, ok := l.LiftOf(obj); ok && lf.Hole == -1 {
				continue
			}
		}
		out = append(out, obj)
	}
	return out
}

// Portals returns start (non-finish) and finish portals
func (l *Level) Portals() (start, finish []*GameObject) {
	for _, obj := range l.Objects {
		if obj.Kind != KindPortal {
			continue
		}
		if obj.Finish {
			finish = append(finish, obj)
		} else {
			start = append(start, obj)
		}
	}
	return start, finish
}

// CountActive returns how many active objects of a kind remain
func (l *Level) CountActive(kind ObjectKind) int {
	n := 0
	for _, obj := range l.Objects {
		if obj.Kind == kind && obj.Active {
			n++
		}
	}
	return n
}
