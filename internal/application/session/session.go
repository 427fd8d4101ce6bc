// Package session runs one level: tick ordering, scoring, lives and respawn.
package session

import (
	"fmt"
	"math/rand"

	"github.com/charmbracelet/log"
	"github.com/younwookim/holefall/internal/application/system"
	"github.com/younwookim/holefall/internal/domain/entity"
	"github.com/younwookim/holefall/internal/infrastructure/config"
)

// Status is the overall state of a session
type Status int

const (
	StatusPlaying Status = iota
	StatusCleared
	StatusGameOver
)

func (s Status) String() string {
	switch s {
	case StatusPlaying:
		return "playing"
	case StatusCleared:
		return "cleared"
	case StatusGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// EventKind classifies what happened during a tick
type EventKind int

const (
	EventCollected EventKind = iota
	EventFinishOpened
	EventStomp
	EventLifeLost
	EventRespawn
	EventEnemyLost
	EventCleared
	EventGameOver
)

func (k EventKind) String() string {
	switch k {
	case EventCollected:
		return "collected"
	case EventFinishOpened:
		return "finish_opened"
	case EventStomp:
		return "stomp"
	case EventLifeLost:
		return "life_lost"
	case EventRespawn:
		return "respawn"
	case EventEnemyLost:
		return "enemy_lost"
	case EventCleared:
		return "cleared"
	case EventGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// Event is one notable outcome of a tick
type Event struct {
	Kind  EventKind
	Tick  int
	ID    entity.EntityID   // body or object involved
	Value int               // points for collections
	What  entity.ObjectKind // collected kind
}

// Session owns a level and every body in it
type Session struct {
	cfg     *config.PhysicsConfig
	level   *entity.Level
	clock   *system.FrameClock
	physics *system.PhysicsSystem
	ai      *system.AISystem
	input   *system.InputSystem
	logger  *log.Logger

	Player  *entity.Body
	Enemies []*entity.Enemy

	Seed      int64
	Tick      int
	Score     int
	Artifacts int
	Lives     int
	Status    Status
	Paused    bool

	finishOpen bool
}

// New builds the level and spawns the player and enemies.
// Equal seeds and inputs replay to the same result.
func New(levelCfg *config.LevelConfig, cfg *config.PhysicsConfig, seed int64, logger *log.Logger) (*Session, error) {
	level, err := system.LoadLevel(levelCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to build level: %w", err)
	}

	clock := system.NewFrameClock(cfg.Display.Framerate)
	rng := rand.New(rand.NewSource(seed))

	lives := cfg.Session.Lives
	if lives <= 0 {
		lives = 1
	}

	s := &Session{
		cfg:     cfg,
		level:   level,
		clock:   clock,
		physics: system.NewPhysicsSystem(level, logger),
		ai:      system.NewAISystem(clock, rng, level, logger),
		input:   system.NewInputSystem(),
		logger:  logger,
		Seed:    seed,
		Lives:   lives,
	}

	s.spawnPlayer()

	enemyCfg := system.EnemyBodyConfig(cfg)
	for _, spawn := range levelCfg.Enemies {
		facing := -1
		if spawn.FacingRight {
			facing = 1
		}
		e := entity.NewEnemy(level.NewEntityID(), spawn.X, spawn.Y, level.GroundLevel, facing, clock.Now(), enemyCfg)
		s.Enemies = append(s.Enemies, e)
	}

	// The finish portal stays closed until enough artifacts are collected
	_, finish := level.Portals()
	s.finishOpen = level.ArtifactsRequired <= 0
	for _, p := range finish {
		p.Active = s.finishOpen
	}

	logger.Info("level started",
		"id", level.ID,
		"name", level.Name,
		"seed", seed,
		"enemies", len(s.Enemies),
		"artifacts", level.ArtifactsRequired,
	)
	return s, nil
}

// Level returns the level being played
func (s *Session) Level() *entity.Level {
	return s.level
}

// Clock returns the simulation clock
func (s *Session) Clock() *system.FrameClock {
	return s.clock
}

// FinishOpen reports whether the finish portal is active
func (s *Session) FinishOpen() bool {
	return s.finishOpen
}

// Done reports whether the session has ended
func (s *Session) Done() bool {
	return s.Status != StatusPlaying
}

// spawnPlayer creates a fresh body at the spawn point and consumes the start portal
func (s *Session) spawnPlayer() {
	s.Player = entity.NewBody(s.level.NewEntityID(), entity.KindPlayer,
		s.level.SpawnX, s.level.SpawnY, s.level.GroundLevel, system.PlayerBodyConfig(s.cfg))

	start, _ := s.level.Portals()
	for _, p := range start {
		p.Active = false
	}
}

// Step advances the session by one tick and returns what happened
func (s *Session) Step(input system.InputState) []Event {
	if s.Paused || s.Done() {
		return nil
	}

	s.clock.Advance()
	s.Tick++
	s.level.Step()

	// One snapshot per tick; proxies follow their bodies as each is resolved
	objects := s.level.ActiveObjects()
	playerProxy := s.Player.Proxy()
	objects = append(objects, playerProxy)
	proxies := make(map[entity.EntityID]*entity.GameObject, len(s.Enemies))
	for _, e := range s.Enemies {
		p := e.Proxy()
		proxies[e.ID] = p
		objects = append(objects, p)
	}

	for _, intent := range s.input.Intents(s.Player, input) {
		s.physics.ApplyIntent(s.Player, intent, objects)
	}

	for _, e := range s.Enemies {
		s.ai.UpdateAI(e, objects)
	}

	report := s.physics.ApplyPhysics(s.Player, objects, s.level.Width, s.level.Height)
	s.Player.SyncProxy(playerProxy)

	var events []Event
	for _, e := range s.Enemies {
		r := s.physics.ApplyPhysics(e.Body, objects, s.level.Width, s.level.Height)
		e.SyncProxy(proxies[e.ID])
		if r.FellOut {
			e.Active = false
			proxies[e.ID].Active = false
			events = append(events, Event{Kind: EventEnemyLost, Tick: s.Tick, ID: e.ID})
		}
	}

	events = append(events, s.applyReport(report, proxies)...)
	s.compact()

	for _, ev := range events {
		s.logger.Debug("event", "tick", ev.Tick, "kind", ev.Kind, "id", ev.ID, "value", ev.Value)
	}
	return events
}

// applyReport turns the player's tick report into score, lives and status
func (s *Session) applyReport(report system.TickReport, proxies map[entity.EntityID]*entity.GameObject) []Event {
	var events []Event

	for _, c := range report.Collected {
		s.Score += c.Value
		events = append(events, Event{Kind: EventCollected, Tick: s.Tick, Value: c.Value, What: c.Kind})
		if c.Kind == entity.KindArtifact {
			s.Artifacts++
		}
	}
	if !s.finishOpen && s.Artifacts >= s.level.ArtifactsRequired {
		s.openFinish()
		events = append(events, Event{Kind: EventFinishOpened, Tick: s.Tick})
	}

	for _, id := range report.Stomped {
		for _, e := range s.Enemies {
			if e.ID == id && e.Active {
				e.Active = false
				proxies[id].Active = false
				events = append(events, Event{Kind: EventStomp, Tick: s.Tick, ID: id})
			}
		}
	}

	if report.Portal != nil && report.Portal.Finish && s.finishOpen {
		s.Status = StatusCleared
		events = append(events, Event{Kind: EventCleared, Tick: s.Tick, ID: report.Portal.ID})
		s.logger.Info("level cleared", "id", s.level.ID, "tick", s.Tick, "score", s.Score)
		return events
	}

	if report.Hazard || report.FellOut {
		events = append(events, s.loseLife(report.FellOut)...)
	}
	return events
}

func (s *Session) openFinish() {
	s.finishOpen = true
	_, finish := s.level.Portals()
	for _, p := range finish {
		p.Active = true
	}
	s.logger.Info("finish portal opened", "artifacts", s.Artifacts)
}

// loseLife costs one life and respawns, or ends the session
func (s *Session) loseLife(fell bool) []Event {
	s.Lives--
	events := []Event{{Kind: EventLifeLost, Tick: s.Tick, ID: s.Player.ID}}
	s.logger.Info("life lost", "tick", s.Tick, "lives", s.Lives, "fell", fell)

	if s.Lives <= 0 {
		s.Status = StatusGameOver
		s.logger.Info("game over", "id", s.level.ID, "tick", s.Tick, "score", s.Score)
		return append(events, Event{Kind: EventGameOver, Tick: s.Tick})
	}

	s.spawnPlayer()
	return append(events, Event{Kind: EventRespawn, Tick: s.Tick, ID: s.Player.ID})
}

// compact drops defeated and lost enemies at end of tick
func (s *Session) compact() {
	alive := s.Enemies[:0]
	for _, e := range s.Enemies {
		if e.Active {
			alive = append(alive, e)
		}
	}
	for i := len(alive); i < len(s.Enemies); i++ {
		s.Enemies[i] = nil
	}
	s.Enemies = alive
}
