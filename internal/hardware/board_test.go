package hardware

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBoard(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr string
	}{
		{
			name: "valid layout",
			input: `
name: garage
buttons:
  - {pin: 1, label: Sauna}
  - {pin: 2}
  - {pin: 3}
  - {pin: 4}
  - {pin: 5}
relay: {pin: 6}
`,
		},
		{
			name: "too few buttons",
			input: `
buttons:
  - {pin: 1}
relay: {pin: 6}
`,
			wantErr: "must define 5 buttons",
		},
		{
			name: "duplicate button pin",
			input: `
buttons: [{pin: 1}, {pin: 1}, {pin: 3}, {pin: 4}, {pin: 5}]
relay: {pin: 6}
`,
			wantErr: "already used by button 0",
		},
		{
			name: "relay shares a button pin",
			input: `
buttons: [{pin: 1}, {pin: 2}, {pin: 3}, {pin: 4}, {pin: 5}]
relay: {pin: 5}
`,
			wantErr: "relay: pin 5",
		},
		{
			name:    "not yaml",
			input:   "buttons: [",
			wantErr: "parse board yaml",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := ParseBoard([]byte(tt.input), "fallback")
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "garage", b.Name)
			assert.Equal(t, "Sauna", b.Buttons[0].Label)
			assert.Equal(t, "Bouton 2", b.Buttons[1].Label)
			assert.Equal(t, 6, b.Relay.Pin)
		})
	}
}

func TestLoadBoard_FallbackName(t *testing.T) {
	path := filepath.Join(t.TempDir(), "board.yaml")
	data := "buttons: [{pin: 1}, {pin: 2}, {pin: 3}, {pin: 4}, {pin: 5}]\nrelay: {pin: 9}\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	b, err := LoadBoard(path, "relay-panel")
	require.NoError(t, err)
	assert.Equal(t, "relay-panel", b.Name)
}

func TestDefaultBoard_IsValid(t *testing.T) {
	assert.NoError(t, DefaultBoard("x").Validate())
}

func TestSim(t *testing.T) {
	s := NewSim()

	levels, err := s.ReadLevels()
	require.NoError(t, err)
	assert.Equal(t, [5]bool{true, true, true, true, true}, levels)

	require.NoError(t, s.Press(3))
	levels, err = s.ReadLevels()
	require.NoError(t, err)
	assert.False(t, levels[3])

	assert.Error(t, s.Press(5))

	require.NoError(t, s.Drive(true))
	assert.True(t, s.Relay())
	assert.Equal(t, 1, s.Drives())
}
