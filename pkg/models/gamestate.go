package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
)

// ErrInvalidSave is returned for save files that don't decode or can't be resumed
var ErrInvalidSave = errors.New("invalid save")

// Pose is where something stands and which way it faces
type Pose struct {
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	Z       float64 `json:"z"`
	Heading float64 `json:"heading"` // radians, 0 faces +Z
}

// CarState is the part of the car a save restores
type CarState struct {
	Pose
	Speed float64 `json:"speed"`
}

// GameState represents a saved game session
type GameState struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Scene     int       `json:"scene"`
	Preset    string    `json:"preset"`
	Car       CarState  `json:"car"`
	Player    Pose      `json:"player"`
	Inside    bool      `json:"inside"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewGameState creates a new game state
func NewGameState(name, preset string) *GameState {
	now := time.Now()
	return &GameState{
		ID:        uuid.New(),
		Name:      name,
		Preset:    preset,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// SaveToFile saves the game state to a JSON file
func (gs *GameState) SaveToFile(filename string) error {
	gs.UpdatedAt = time.Now()

	data, err := json.MarshalIndent(gs, "", "  ")
	if err != nil {
		return fmt.Errorf("encode save: %w", err)
	}

	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("write save: %w", err)
	}
	return nil
}

// LoadFromFile loads a game state from a JSON file
func LoadFromFile(filename string) (*GameState, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("read save: %w", err)
	}

	var gs GameState
	if err := json.Unmarshal(data, &gs); err != nil {
		return nil, fmt.Errorf("%w: decode %s: %v", ErrInvalidSave, filename, err)
	}
	if gs.ID == uuid.Nil {
		return nil, fmt.Errorf("%w: %s has no id", ErrInvalidSave, filename)
	}
	if gs.Preset == "" {
		return nil, fmt.Errorf("%w: %s has no car preset", ErrInvalidSave, filename)
	}

	return &gs, nil
}
