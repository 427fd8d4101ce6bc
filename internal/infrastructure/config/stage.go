package config

// LevelConfig is the root config for level files (YAML or JSON)
type LevelConfig struct {
	ID                string           `json:"id" yaml:"id"`
	Name              string           `json:"name" yaml:"name"`
	Size              LevelSizeConfig  `json:"size" yaml:"size"`
	GroundLevel       float64          `json:"groundLevel" yaml:"groundLevel"`
	PlayerSpawn       PositionConfig   `json:"playerSpawn" yaml:"playerSpawn"`
	ArtifactsRequired int              `json:"artifactsRequired" yaml:"artifactsRequired"`
	Platforms         []PlatformConfig `json:"platforms" yaml:"platforms"`
	Walls             []RectConfig     `json:"walls,omitempty" yaml:"walls,omitempty"`
	Beams             []RectConfig     `json:"beams,omitempty" yaml:"beams,omitempty"`
	Spikes            []RectConfig     `json:"spikes,omitempty" yaml:"spikes,omitempty"`
	Saws              []RectConfig     `json:"saws,omitempty" yaml:"saws,omitempty"`
	Coins             []PickupConfig   `json:"coins,omitempty" yaml:"coins,omitempty"`
	Artifacts         []PickupConfig   `json:"artifacts,omitempty" yaml:"artifacts,omitempty"`
	Portals           []PortalConfig   `json:"portals,omitempty" yaml:"portals,omitempty"`
	Enemies           []EnemySpawn     `json:"enemies,omitempty" yaml:"enemies,omitempty"`
}

type LevelSizeConfig struct {
	Width  float64 `json:"width" yaml:"width"`
	Height float64 `json:"height" yaml:"height"`
}

type PositionConfig struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

type RectConfig struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
	W float64 `json:"w" yaml:"w"`
	H float64 `json:"h" yaml:"h"`
}

type PlatformConfig struct {
	X      float64      `json:"x" yaml:"x"`
	Y      float64      `json:"y" yaml:"y"`
	Width  float64      `json:"width" yaml:"width"`
	Height float64      `json:"height" yaml:"height"`
	Holes  []HoleConfig `json:"holes,omitempty" yaml:"holes,omitempty"`
}

type HoleConfig struct {
	X     float64     `json:"x" yaml:"x"`
	Width float64     `json:"width" yaml:"width"`
	Lift  *LiftConfig `json:"lift,omitempty" yaml:"lift,omitempty"`
}

type LiftConfig struct {
	Speed float64 `json:"speed" yaml:"speed"`
}

type PickupConfig struct {
	X     float64 `json:"x" yaml:"x"`
	Y     float64 `json:"y" yaml:"y"`
	W     float64 `json:"w,omitempty" yaml:"w,omitempty"`
	H     float64 `json:"h,omitempty" yaml:"h,omitempty"`
	Value int     `json:"value,omitempty" yaml:"value,omitempty"`
}

type PortalConfig struct {
	X      float64 `json:"x" yaml:"x"`
	Y      float64 `json:"y" yaml:"y"`
	Finish bool    `json:"finish" yaml:"finish"`
}

type EnemySpawn struct {
	X           float64 `json:"x" yaml:"x"`
	Y           float64 `json:"y" yaml:"y"`
	FacingRight bool    `json:"facingRight" yaml:"facingRight"`
}
