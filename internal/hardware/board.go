package hardware

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/iammorganparry/relaypanel/internal/models"
)

// Board describes how the panel is wired.
type Board struct {
	Name    string      `yaml:"name"`
	Buttons []ButtonPin `yaml:"buttons"`
	Relay   RelayPin    `yaml:"relay"`
}

type ButtonPin struct {
	Pin   int    `yaml:"pin"`
	Label string `yaml:"label"`
}

type RelayPin struct {
	Pin int `yaml:"pin"`
}

// DefaultBoard is the reference wiring used when no board file is given.
func DefaultBoard(name string) *Board {
	return &Board{
		Name: name,
		Buttons: []ButtonPin{
			{Pin: 32, Label: "Bouton 1"},
			{Pin: 33, Label: "Bouton 2"},
			{Pin: 25, Label: "Bouton 3"},
			{Pin: 27, Label: "Bouton 4"},
			{Pin: 14, Label: "Bouton 5"},
		},
		Relay: RelayPin{Pin: 26},
	}
}

// LoadBoard parses a YAML board file. Missing names fall back to fallbackName.
func LoadBoard(path, fallbackName string) (*Board, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read board file: %w", err)
	}
	return ParseBoard(data, fallbackName)
}

// ParseBoard decodes and validates a board layout.
func ParseBoard(data []byte, fallbackName string) (*Board, error) {
	var b Board
	if err := yaml.Unmarshal(data, &b); err != nil {
		return nil, fmt.Errorf("parse board yaml: %w", err)
	}
	if b.Name == "" {
		b.Name = fallbackName
	}
	for i := range b.Buttons {
		if b.Buttons[i].Label == "" {
			b.Buttons[i].Label = fmt.Sprintf("Bouton %d", i+1)
		}
	}
	if err := b.Validate(); err != nil {
		return nil, err
	}
	return &b, nil
}

// Validate checks the layout has one distinct pin per button plus the relay.
func (b *Board) Validate() error {
	if len(b.Buttons) != models.ButtonCount {
		return fmt.Errorf("board must define %d buttons, got %d", models.ButtonCount, len(b.Buttons))
	}
	seen := map[int]string{}
	for i, btn := range b.Buttons {
		if btn.Pin < 0 {
			return fmt.Errorf("button %d: pin must not be negative", i)
		}
		if owner, dup := seen[btn.Pin]; dup {
			return fmt.Errorf("button %d: pin %d already used by %s", i, btn.Pin, owner)
		}
		seen[btn.Pin] = fmt.Sprintf("button %d", i)
	}
	if owner, dup := seen[b.Relay.Pin]; dup {
		return fmt.Errorf("relay: pin %d already used by %s", b.Relay.Pin, owner)
	}
	if b.Relay.Pin < 0 {
		return fmt.Errorf("relay: pin must not be negative")
	}
	return nil
}
