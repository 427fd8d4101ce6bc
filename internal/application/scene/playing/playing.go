// Package playing provides the main gameplay scene.
package playing

import (
	"fmt"
	"image/color"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/younwookim/holefall/internal/application/replay"
	"github.com/younwookim/holefall/internal/application/scene"
	"github.com/younwookim/holefall/internal/application/session"
	"github.com/younwookim/holefall/internal/application/state"
	"github.com/younwookim/holefall/internal/application/system"
	"github.com/younwookim/holefall/internal/domain/entity"
	"github.com/younwookim/holefall/internal/infrastructure/config"
	"github.com/younwookim/holefall/internal/infrastructure/storage"
)

// Colors for rendering
var (
	colorBG       = color.RGBA{26, 26, 46, 255}
	colorPlayer   = color.RGBA{100, 200, 100, 255}
	colorCrouch   = color.RGBA{80, 160, 80, 255}
	colorEnemy    = color.RGBA{200, 100, 100, 255}
	colorPortal   = color.RGBA{120, 120, 255, 255}
	colorClosed   = color.RGBA{60, 60, 90, 255}
	colorPaused   = color.RGBA{0, 0, 0, 128}
	colorGameOver = color.RGBA{100, 0, 0, 180}
	colorCleared  = color.RGBA{0, 80, 40, 180}
)

var kindColors = map[entity.ObjectKind]color.RGBA{
	entity.KindPlatform:   {80, 80, 100, 255},
	entity.KindLift:       {150, 150, 170, 255},
	entity.KindStaticWall: {90, 90, 110, 255},
	entity.KindStaticBeam: {110, 100, 80, 255},
	entity.KindSpike:      {200, 50, 50, 255},
	entity.KindSaw:        {220, 120, 40, 255},
	entity.KindCoin:       {255, 215, 0, 255},
	entity.KindArtifact:   {0, 220, 220, 255},
}

// messageTicks is how long an event line stays on screen
const messageTicks = 90

// Options configures a Playing scene
type Options struct {
	Seed       int64          // 0 = time based
	RecordPath string         // empty disables recording
	Store      *storage.Store // nil disables run records
	Logger     *log.Logger
}

// Playing is the main gameplay scene
type Playing struct {
	cfg      *config.PhysicsConfig
	levelCfg *config.LevelConfig
	opts     Options
	logger   *log.Logger

	session *session.Session
	input   *system.InputSystem
	state   state.GameState

	recorder *replay.Recorder
	stored   bool

	screenW int
	screenH int

	message      string
	messageTimer int
}

// New creates a new Playing scene for one level
func New(cfg *config.PhysicsConfig, levelCfg *config.LevelConfig, opts Options) (*Playing, error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	p := &Playing{
		cfg:      cfg,
		levelCfg: levelCfg,
		opts:     opts,
		logger:   logger,
		input:    system.NewInputSystem(),
		screenW:  cfg.Display.ScreenWidth,
		screenH:  cfg.Display.ScreenHeight,
	}
	if err := p.start(); err != nil {
		return nil, err
	}
	return p, nil
}

// start builds a fresh session and recorder
func (p *Playing) start() error {
	seed := p.opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	s, err := session.New(p.levelCfg, p.cfg, seed, p.logger)
	if err != nil {
		return err
	}
	p.session = s
	p.state = state.StatePlaying
	p.stored = false
	p.message = ""
	p.messageTimer = 0

	if p.opts.RecordPath != "" {
		p.recorder = replay.NewRecorder(seed, p.levelCfg.ID)
		p.logger.Info("recording enabled", "path", p.opts.RecordPath, "seed", seed)
	}
	return nil
}

// Session returns the running session
func (p *Playing) Session() *session.Session {
	return p.session
}

// State returns the scene state
func (p *Playing) State() state.GameState {
	return p.state
}

// Update proceeds the game state (implements scene.Scene)
func (p *Playing) Update(_ float64) (scene.Scene, error) {
	if p.state.Finished() {
		if inpututil.IsKeyJustPressed(ebiten.KeyQ) {
			return nil, scene.ErrQuit
		}
		if inpututil.IsKeyJustPressed(ebiten.KeyZ) || inpututil.IsKeyJustPressed(ebiten.KeySpace) {
			if err := p.start(); err != nil {
				return nil, err
			}
		}
		return nil, nil
	}

	// F5: Save recording manually
	if inpututil.IsKeyJustPressed(ebiten.KeyF5) {
		p.saveRecording()
	}

	p.step(p.input.GetInput())
	return nil, nil // nil = stay on this scene
}

// step advances one tick with the given input
func (p *Playing) step(input system.InputState) {
	if input.Pause {
		p.state = p.state.TogglePause()
		p.session.Paused = p.state == state.StatePaused
		return
	}
	if p.state != state.StatePlaying {
		return
	}

	if p.recorder != nil {
		p.recorder.RecordFrame(input)
	}

	for _, ev := range p.session.Step(input) {
		p.note(ev)
	}
	if p.messageTimer > 0 {
		p.messageTimer--
	}

	switch p.session.Status {
	case session.StatusCleared:
		p.state = state.StateLevelClear
		p.finish(storage.OutcomeCleared)
	case session.StatusGameOver:
		p.state = state.StateGameOver
		p.finish(storage.OutcomeGameOver)
	}
}

// note turns a session event into the on-screen message line
func (p *Playing) note(ev session.Event) {
	var msg string
	switch ev.Kind {
	case session.EventCollected:
		msg = fmt.Sprintf("%s +%d", ev.What, ev.Value)
	case session.EventFinishOpened:
		msg = "Finish portal open"
	case session.EventStomp:
		msg = "Stomp!"
	case session.EventLifeLost:
		msg = "Ouch"
	default:
		return
	}
	p.message = msg
	p.messageTimer = messageTicks
}

// finish flushes the recording and stores the run once
func (p *Playing) finish(outcome string) {
	p.saveRecording()
	if p.recorder != nil {
		p.recorder.Stop()
	}
	p.storeRun(outcome)
}

func (p *Playing) storeRun(outcome string) {
	if p.opts.Store == nil || p.stored || p.session.Tick == 0 {
		return
	}
	p.stored = true

	id, err := p.opts.Store.SaveRun(storage.Run{
		Level:   p.levelCfg.ID,
		Seed:    p.session.Seed,
		Ticks:   p.session.Tick,
		Score:   p.session.Score,
		Outcome: outcome,
	})
	if err != nil {
		p.logger.Error("failed to store run", "err", err)
		return
	}
	p.logger.Info("run stored", "run", id, "outcome", outcome, "score", p.session.Score)
}

// saveRecording saves the current recording to file
func (p *Playing) saveRecording() {
	if p.recorder == nil || p.recorder.FrameCount() == 0 {
		return
	}

	filename := p.opts.RecordPath
	if filename == "" {
		filename = replay.GenerateFilename()
	}

	if err := p.recorder.Save(filename); err != nil {
		p.logger.Error("failed to save recording", "err", err)
		return
	}
	p.logger.Info("recording saved", "path", filename, "frames", p.recorder.FrameCount())
}

// camera returns the top-left world position of the view, clamped to the level
func (p *Playing) camera() (float64, float64) {
	level := p.session.Level()
	cx, cy := p.session.Player.Rect.Center()
	camX := clamp(cx-float64(p.screenW)/2, 0, level.Width-float64(p.screenW))
	camY := clamp(cy-float64(p.screenH)/2, 0, level.Height-float64(p.screenH))
	return camX, camY
}

func clamp(v, lo, hi float64) float64 {
	if hi < lo {
		return lo
	}
	return min(max(v, lo), hi)
}

// Draw renders the game screen
func (p *Playing) Draw(screen *ebiten.Image) {
	screen.Fill(colorBG)

	camX, camY := p.camera()
	level := p.session.Level()

	for _, pl := range level.Platforms {
		if !pl.Object.Active {
			continue
		}
		for _, r := range platformSpans(level, pl) {
			drawRect(screen, r, camX, camY, kindColors[entity.KindPlatform])
		}
	}

	for _, obj := range level.ActiveObjects() {
		switch obj.Kind {
		case entity.KindPlatform:
			// drawn as spans above
		case entity.KindPortal:
			drawRect(screen, obj.Rect, camX, camY, colorPortal)
		default:
			if c, ok := kindColors[obj.Kind]; ok {
				drawRect(screen, obj.Rect, camX, camY, c)
			}
		}
	}

	// Closed finish portals are still visible
	if !p.session.FinishOpen() {
		_, finish := level.Portals()
		for _, portal := range finish {
			drawRect(screen, portal.Rect, camX, camY, colorClosed)
		}
	}

	for _, e := range p.session.Enemies {
		drawRect(screen, e.Rect, camX, camY, colorEnemy)
	}

	playerColor := colorPlayer
	if p.session.Player.Crouching {
		playerColor = colorCrouch
	}
	drawRect(screen, p.session.Player.Rect, camX, camY, playerColor)

	p.drawUI(screen)

	switch p.state {
	case state.StatePaused:
		p.drawOverlay(screen, colorPaused, "PAUSED\n\nPress ESC to resume")
	case state.StateGameOver:
		p.drawOverlay(screen, colorGameOver,
			fmt.Sprintf("GAME OVER\n\nScore: %d\n\nZ: restart  Q: quit", p.session.Score))
	case state.StateLevelClear:
		p.drawOverlay(screen, colorCleared,
			fmt.Sprintf("LEVEL CLEAR\n\nScore: %d in %d ticks\n\nZ: replay  Q: quit", p.session.Score, p.session.Tick))
	}
}

func (p *Playing) drawUI(screen *ebiten.Image) {
	s := p.session
	hud := fmt.Sprintf("Level %s  Score: %d  Lives: %d  Artifacts: %d/%d  %s",
		s.Level().ID, s.Score, s.Lives, s.Artifacts, s.Level().ArtifactsRequired, s.Player.Action)
	ebitenutil.DebugPrintAt(screen, hud, 10, p.screenH-20)

	if p.messageTimer > 0 {
		ebitenutil.DebugPrintAt(screen, p.message, 10, p.screenH-35)
	}

	ebitenutil.DebugPrint(screen, "A/D: Move | W/Space: Jump | S: Crouch | ESC: Pause | F5: Save replay")
}

func (p *Playing) drawOverlay(screen *ebiten.Image, c color.RGBA, text string) {
	ebitenutil.DrawRect(screen, 0, 0, float64(p.screenW), float64(p.screenH), c)
	ebitenutil.DebugPrintAt(screen, text, p.screenW/2-60, p.screenH/2-30)
}

func drawRect(screen *ebiten.Image, r entity.Rect, camX, camY float64, c color.Color) {
	ebitenutil.DrawRect(screen, r.X-camX, r.Y-camY, r.W, r.H, c)
}

// platformSpans returns the solid pieces of a platform between its holes
func platformSpans(level *entity.Level, pl entity.Platform) []entity.Rect {
	r := pl.Object.Rect

	// Holes are kept sorted by x
	var spans []entity.Rect
	x := r.Left()
	for _, hi := range pl.Holes {
		h := level.Holes[hi].Rect
		if h.Left() > x {
			spans = append(spans, entity.NewRect(x, r.Y, h.Left()-x, r.H))
		}
		x = max(x, h.Right())
	}
	if x < r.Right() {
		spans = append(spans, entity.NewRect(x, r.Y, r.Right()-x, r.H))
	}
	return spans
}

// OnEnter is called when entering this scene
func (p *Playing) OnEnter() {
	p.logger.Debug("entered level", "id", p.levelCfg.ID)
}

// OnExit is called when leaving this scene
func (p *Playing) OnExit() {
	if !p.state.Finished() {
		p.saveRecording()
		p.storeRun(storage.OutcomeAborted)
	}
}
