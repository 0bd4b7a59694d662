package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/sakura-runner/internal/config"
)

// MenuChoice is what the user picked on the title menu.
type MenuChoice int

const (
	ChoiceNone MenuChoice = iota
	ChoicePlay
	ChoiceScores
	ChoiceQuit
)

// Difficulty presets offered by the menu, in display order.
var menuPresets = []config.DifficultyPreset{
	config.DifficultyEasy,
	config.DifficultyNormal,
	config.DifficultyHard,
	config.DifficultyFixed,
}

const (
	itemPlay = iota
	itemDifficulty
	itemScores
	itemQuit
	itemCount
)

var (
	menuTitleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("213"))
	menuCursorStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	menuHintStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// MenuModel is the Bubble Tea model for the title menu.
type MenuModel struct {
	cursor int
	preset int
	width  int
	height int
	best   int
	choice MenuChoice
}

// NewMenuModel creates a title menu starting on preset.
// Unknown presets fall back to normal.
func NewMenuModel(preset config.DifficultyPreset, best, width, height int) MenuModel {
	m := MenuModel{width: width, height: height, best: best, preset: 1}
	for i, p := range menuPresets {
		if p == preset {
			m.preset = i
		}
	}
	return m
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}
	return m, nil
}

func (m *MenuModel) handleKey(msg tea.KeyMsg) {
	switch MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		m.choice = ChoiceQuit
	case MenuActionUp:
		m.cursor = (m.cursor + itemCount - 1) % itemCount
	case MenuActionDown:
		m.cursor = (m.cursor + 1) % itemCount
	case MenuActionLeft:
		if m.cursor == itemDifficulty {
			m.preset = (m.preset + len(menuPresets) - 1) % len(menuPresets)
		}
	case MenuActionRight:
		if m.cursor == itemDifficulty {
			m.preset = (m.preset + 1) % len(menuPresets)
		}
	case MenuActionSelect:
		switch m.cursor {
		case itemPlay:
			m.choice = ChoicePlay
		case itemDifficulty:
			m.preset = (m.preset + 1) % len(menuPresets)
		case itemScores:
			m.choice = ChoiceScores
		case itemQuit:
			m.choice = ChoiceQuit
		}
	}
}

// View renders the menu.
func (m MenuModel) View() string {
	var b strings.Builder

	top := (m.height - 12) / 2
	if top > 0 {
		b.WriteString(strings.Repeat("\n", top))
	}

	b.WriteString(centerText(menuTitleStyle.Render("✿  S A K U R A   R U N N E R  ✿"), m.width))
	b.WriteString("\n\n")
	if m.best > 0 {
		b.WriteString(centerText(fmt.Sprintf("Best: %dm", m.best), m.width))
	}
	b.WriteString("\n\n")

	items := []string{
		"Play",
		fmt.Sprintf("Difficulty: < %s >", strings.ToUpper(string(menuPresets[m.preset]))),
		"High Scores",
		"Quit",
	}
	for i, item := range items {
		line := "  " + item
		if i == m.cursor {
			line = menuCursorStyle.Render("> " + item)
		}
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText(menuHintStyle.Render("Up/Down: Navigate  |  Left/Right: Difficulty  |  Enter: Select  |  Q: Quit"), m.width))
	b.WriteString("\n")

	return b.String()
}

// Choice returns the user's pick, or ChoiceNone while the menu is open.
func (m MenuModel) Choice() MenuChoice {
	return m.choice
}

// Preset returns the selected difficulty preset.
func (m MenuModel) Preset() config.DifficultyPreset {
	return menuPresets[m.preset]
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}
