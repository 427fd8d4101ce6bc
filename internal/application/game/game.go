// Package game hosts a scene stack inside the ebiten run loop.
package game

import (
	"errors"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/younwookim/holefall/internal/application/scene"
)

// Game implements ebiten.Game and manages Scene transitions.
type Game struct {
	current scene.Scene
	screenW int
	screenH int
	tps     int
	dt      float64
}

// New creates a new Game with the given initial scene ticking tps times a second.
// The initial scene's OnEnter is called immediately.
func New(initialScene scene.Scene, screenW, screenH, tps int) *Game {
	if tps <= 0 {
		tps = 60
	}
	g := &Game{
		current: initialScene,
		screenW: screenW,
		screenH: screenH,
		tps:     tps,
		dt:      1.0 / float64(tps),
	}
	g.current.OnEnter()
	return g
}

// Update updates the current scene and handles scene transitions.
// Implements ebiten.Game interface.
func (g *Game) Update() error {
	next, err := g.current.Update(g.dt)
	if err != nil {
		g.current.OnExit()
		return err
	}

	if next != nil {
		g.current.OnExit()
		g.current = next
		g.current.OnEnter()
	}

	return nil
}

// Draw renders the current scene.
// Implements ebiten.Game interface.
func (g *Game) Draw(screen *ebiten.Image) {
	g.current.Draw(screen)
}

// Layout returns the game's logical screen dimensions.
// Implements ebiten.Game interface.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.screenW, g.screenH
}

// Current returns the active scene
func (g *Game) Current() scene.Scene {
	return g.current
}

// TPS returns the fixed tick rate
func (g *Game) TPS() int {
	return g.tps
}

// Run opens a window scaled by scale and blocks until the game ends.
// scene.ErrQuit from a scene is treated as a normal exit.
func (g *Game) Run(title string, scale int) error {
	if scale <= 0 {
		scale = 1
	}
	ebiten.SetWindowSize(g.screenW*scale, g.screenH*scale)
	ebiten.SetWindowTitle(title)
	ebiten.SetTPS(g.tps)

	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, scene.ErrQuit) {
		return fmt.Errorf("failed to run game: %w", err)
	}
	return nil
}
