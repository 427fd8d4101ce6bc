package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// levelDir is where level files live relative to the config root
const levelDir = "levels"

// levelExtensions lists supported level formats in lookup order
var levelExtensions = []string{".yaml", ".yml", ".json"}

// GameConfig holds all loaded configurations
type GameConfig struct {
	Physics *PhysicsConfig
	Levels  []string // level names in play order
}

// Loader loads game configuration from files using fs.FS interface
type Loader struct {
	fsys     fs.FS
	basePath string
}

// NewLoader creates a new config loader from filesystem path
func NewLoader(basePath string) *Loader {
	return &Loader{
		fsys:     os.DirFS(basePath),
		basePath: basePath,
	}
}

// NewFSLoader creates a new config loader from fs.FS
func NewFSLoader(fsys fs.FS, basePath string) *Loader {
	return &Loader{
		fsys:     fsys,
		basePath: basePath,
	}
}

// LoadPhysics loads physics.json on top of the defaults
func (l *Loader) LoadPhysics() (*PhysicsConfig, error) {
	data, err := fs.ReadFile(l.fsys, "physics.json")
	if err != nil {
		return nil, fmt.Errorf("failed to read physics.json: %w", err)
	}

	cfg := DefaultPhysicsConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse physics.json: %w", err)
	}

	return cfg, nil
}

// LoadLevel loads a level by name, trying each supported extension
func (l *Loader) LoadLevel(name string) (*LevelConfig, error) {
	for _, ext := range levelExtensions {
		p := path.Join(levelDir, name+ext)
		data, err := fs.ReadFile(l.fsys, p)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read level %s: %w", name, err)
		}
		return ParseLevel(data, ext)
	}
	return nil, fmt.Errorf("failed to read level %s: %w", name, fs.ErrNotExist)
}

// LoadLevelFile loads a level from an explicit path on disk
func LoadLevelFile(filename string) (*LevelConfig, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read level %s: %w", filename, err)
	}
	return ParseLevel(data, path.Ext(filename))
}

// ParseLevel decodes level data; ext selects the format (".json", ".yaml", ".yml")
func ParseLevel(data []byte, ext string) (*LevelConfig, error) {
	var cfg LevelConfig
	switch strings.ToLower(ext) {
	case ".json":
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse level: %w", err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse level: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported level format %q", ext)
	}
	return &cfg, nil
}

// ListLevels returns level names found under levels/, sorted
func (l *Loader) ListLevels() ([]string, error) {
	entries, err := fs.ReadDir(l.fsys, levelDir)
	if err != nil {
		return nil, fmt.Errorf("failed to list levels: %w", err)
	}

	seen := make(map[string]bool)
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := path.Ext(e.Name())
		if !supportedExt(ext) {
			continue
		}
		name := strings.TrimSuffix(e.Name(), ext)
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names, nil
}

// IsLevelFile reports whether name looks like a level file path rather than a level name
func IsLevelFile(name string) bool {
	return supportedExt(strings.ToLower(path.Ext(name)))
}

func supportedExt(ext string) bool {
	for _, e := range levelExtensions {
		if e == ext {
			return true
		}
	}
	return false
}

// LoadAll loads the physics config and the level list
func (l *Loader) LoadAll() (*GameConfig, error) {
	physics, err := l.LoadPhysics()
	if err != nil {
		return nil, err
	}

	levels, err := l.ListLevels()
	if err != nil {
		return nil, err
	}

	return &GameConfig{
		Physics: physics,
		Levels:  levels,
	}, nil
}
