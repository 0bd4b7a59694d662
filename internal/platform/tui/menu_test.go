package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/sakura-runner/internal/config"
)

func pressMenu(m MenuModel, keys ...tea.KeyMsg) MenuModel {
	for _, k := range keys {
		next, _ := m.Update(k)
		m = next.(MenuModel)
	}
	return m
}

func TestMenuDifficulty(t *testing.T) {
	m := NewMenuModel(config.DifficultyNormal, 0, 80, 24)
	if m.Preset() != config.DifficultyNormal {
		t.Fatalf("Preset() = %q", m.Preset())
	}

	// Left/right only change the preset on the difficulty row.
	m = pressMenu(m, tea.KeyMsg{Type: tea.KeyRight})
	if m.Preset() != config.DifficultyNormal {
		t.Error("right on Play changed the preset")
	}

	m = pressMenu(m, tea.KeyMsg{Type: tea.KeyDown}, tea.KeyMsg{Type: tea.KeyRight})
	if m.Preset() != config.DifficultyHard {
		t.Errorf("Preset() = %q, expected hard", m.Preset())
	}
	m = pressMenu(m, tea.KeyMsg{Type: tea.KeyRight}, tea.KeyMsg{Type: tea.KeyRight})
	if m.Preset() != config.DifficultyEasy {
		t.Errorf("Preset() = %q, expected wrap to easy", m.Preset())
	}
	if m.Choice() != ChoiceNone {
		t.Error("changing difficulty should not close the menu")
	}
}

func TestMenuChoices(t *testing.T) {
	tests := []struct {
		name     string
		keys     []tea.KeyMsg
		expected MenuChoice
	}{
		{"play", []tea.KeyMsg{{Type: tea.KeyEnter}}, ChoicePlay},
		{"scores", []tea.KeyMsg{{Type: tea.KeyDown}, {Type: tea.KeyDown}, {Type: tea.KeyEnter}}, ChoiceScores},
		{"quit item", []tea.KeyMsg{{Type: tea.KeyUp}, {Type: tea.KeyEnter}}, ChoiceQuit},
		{"quit key", []tea.KeyMsg{{Type: tea.KeyRunes, Runes: []rune("q")}}, ChoiceQuit},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m := pressMenu(NewMenuModel("", 0, 80, 24), tc.keys...)
			if m.Choice() != tc.expected {
				t.Errorf("Choice() = %v, expected %v", m.Choice(), tc.expected)
			}
		})
	}
}
