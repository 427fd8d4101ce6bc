package entity

// EntityID is a unique identifier for an entity
type EntityID uint32

// ObjectKind is the closed set of things that can be placed in a level
type ObjectKind int

const (
	KindPlatform ObjectKind = iota
	KindLift
	KindHole
	KindStaticWall
	KindStaticBeam
	KindSpike
	KindSaw
	KindCoin
	KindArtifact
	KindPortal
	KindEnemy
	KindPlayer

	kindCount
)

// Capability holds the fixed per-kind collision flags
type Capability struct {
	Solid       bool
	Dangerous   bool
	Collectible bool
}

var capabilities = [kindCount]Capability{
	KindPlatform:   {Solid: true},
	KindLift:       {Solid: true},
	KindHole:       {},
	KindStaticWall: {Solid: true},
	KindStaticBeam: {Solid: true},
	KindSpike:      {Dangerous: true},
	KindSaw:        {Dangerous: true},
	KindCoin:       {Collectible: true},
	KindArtifact:   {Collectible: true},
	KindPortal:     {},
	KindEnemy:      {Solid: true, Dangerous: true},
	KindPlayer:     {Solid: true},
}

var kindNames = [kindCount]string{
	KindPlatform:   "platform",
	KindLift:       "lift",
	KindHole:       "hole",
	KindStaticWall: "wall",
	KindStaticBeam: "beam",
	KindSpike:      "spike",
	KindSaw:        "saw",
	KindCoin:       "coin",
	KindArtifact:   "artifact",
	KindPortal:     "portal",
	KindEnemy:      "enemy",
	KindPlayer:     "player",
}

// Capabilities returns the capability flags of a kind.
// Unknown kinds have no capabilities.
func Capabilities(k ObjectKind) Capability {
	if k < 0 || k >= kindCount {
		return Capability{}
	}
	return capabilities[k]
}

func (k ObjectKind) Solid() bool       { return Capabilities(k).Solid }
func (k ObjectKind) Dangerous() bool   { return Capabilities(k).Dangerous }
func (k ObjectKind) Collectible() bool { return Capabilities(k).Collectible }

// IsGround reports whether a body can stand on this kind of object
func (k ObjectKind) IsGround() bool {
	switch k {
	case KindPlatform, KindLift, KindStaticWall, KindStaticBeam:
		return true
	}
	return false
}

// String returns the lowercase name used in level files and logs
func (k ObjectKind) String() string {
	if k < 0 || k >= kindCount {
		return "unknown"
	}
	return kindNames[k]
}

// ParseKind converts a level-file name back to a kind
func ParseKind(name string) (ObjectKind, bool) {
	for k, n := range kindNames {
		if n == name {
			return ObjectKind(k), true
		}
	}
	return 0, false
}

// Default point values for collectibles
const (
	CoinValue     = 100
	ArtifactValue = 1000
)

// GameObject is the base unit placed in the world.
// Active=false removes it from collision and trigger passes without deleting it.
type GameObject struct {
	ID     EntityID
	Rect   Rect
	Kind   ObjectKind
	Active bool

	Value  int  // points for collectibles
	Finish bool // finish portal
	Index  int  // index into Level.Platforms / Level.Lifts, -1 otherwise
}

// NewGameObject creates an active object with no typed record
func NewGameObject(id EntityID, kind ObjectKind, rect Rect) *GameObject {
	return &GameObject{
		ID:     id,
		Rect:   rect,
		Kind:   kind,
		Active: true,
		Index:  -1,
	}
}

// Collect deactivates a collectible and returns its value.
// Collecting an inactive or non-collectible object yields 0.
func (o *GameObject) Collect() int {
	if !o.Active || !o.Kind.Collectible() {
		return 0
	}
	o.Active = false
	return o.Value
}
