package replay

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/younwookim/holefall/internal/application/system"
)

// Version is written into every replay file
const Version = "1.0"

// FrameInput records input state for a single frame
type FrameInput struct {
	F  int  `json:"f"`            // Frame number
	L  bool `json:"l,omitempty"`  // Left
	R  bool `json:"r,omitempty"`  // Right
	J  bool `json:"j,omitempty"`  // Jump held
	JP bool `json:"jp,omitempty"` // JumpPressed
	C  bool `json:"c,omitempty"`  // Crouch
}

// ReplayData contains all data needed to replay a session
type ReplayData struct {
	Version   string       `json:"version"`
	Seed      int64        `json:"seed"`
	Level     string       `json:"level"`
	StartTime string       `json:"startTime"`
	Frames    []FrameInput `json:"frames"`
}

func frameFromInput(frame int, input system.InputState) FrameInput {
	return FrameInput{
		F:  frame,
		L:  input.Left,
		R:  input.Right,
		J:  input.Jump,
		JP: input.JumpPressed,
		C:  input.Crouch,
	}
}

// Input converts the frame back into an input state
func (fi FrameInput) Input() system.InputState {
	return system.InputState{
		Left:        fi.L,
		Right:       fi.R,
		Jump:        fi.J,
		JumpPressed: fi.JP,
		Crouch:      fi.C,
	}
}

// Encode writes the replay as indented JSON
func (d ReplayData) Encode(w io.Writer) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(d); err != nil {
		return fmt.Errorf("failed to encode replay: %w", err)
	}
	return nil
}

// Decode reads a replay written by Encode
func Decode(r io.Reader) (*ReplayData, error) {
	var data ReplayData
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return nil, fmt.Errorf("failed to decode replay: %w", err)
	}
	return &data, nil
}

// LoadReplay loads replay data from a file
func LoadReplay(filename string) (*ReplayData, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	return Decode(file)
}
