package system

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/younwookim/holefall/internal/domain/entity"
)

// InputSystem turns keyboard state into body intents
type InputSystem struct{}

// NewInputSystem creates a new input system
func NewInputSystem() *InputSystem {
	return &InputSystem{}
}

// InputState holds the current input state
type InputState struct {
	Left        bool
	Right       bool
	Jump        bool
	JumpPressed bool
	Crouch      bool
	Pause       bool
}

// GetInput reads the current input state
func (s *InputSystem) GetInput() InputState {
	return InputState{
		Left:        ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyArrowLeft),
		Right:       ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyArrowRight),
		Jump:        ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeySpace),
		JumpPressed: inpututil.IsKeyJustPressed(ebiten.KeyW) || inpututil.IsKeyJustPressed(ebiten.KeySpace),
		Crouch:      ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyArrowDown),
		Pause:       inpututil.IsKeyJustPressed(ebiten.KeyEscape),
	}
}

// Intents converts input into the intents for this tick
func (s *InputSystem) Intents(b *entity.Body, input InputState) []Intent {
	dir := 0
	if input.Left {
		dir--
	}
	if input.Right {
		dir++
	}
	intents := []Intent{MoveIntent{EntityID: b.ID, Direction: dir}}

	// Crouch while held, try to stand every tick after release
	if input.Crouch && !b.Crouching {
		intents = append(intents, CrouchIntent{EntityID: b.ID})
	} else if !input.Crouch && b.Crouching {
		intents = append(intents, StandIntent{EntityID: b.ID})
	}

	if input.JumpPressed {
		intents = append(intents, JumpIntent{EntityID: b.ID})
	}
	return intents
}
