package tui

import (
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/sakura-runner/internal/config"
	"github.com/vovakirdan/sakura-runner/internal/core"
	"github.com/vovakirdan/sakura-runner/internal/registry"
	"github.com/vovakirdan/sakura-runner/internal/storage"
)

// GameFactory builds a game for a difficulty preset.
type GameFactory func(preset config.DifficultyPreset) (registry.Game, error)

// SessionOptions holds the collaborators shared by every run of a session.
type SessionOptions struct {
	NewGame GameFactory
	GameID  string
	Title   string
	Store   *storage.Store // May be nil
	Sound   SoundPlayer    // May be nil
	Logger  *log.Logger
	Preset  config.DifficultyPreset
}

// SessionModel manages the flow menu -> run or scoreboard -> menu.
// It is the top-level model of the interactive app and of SSH sessions.
type SessionModel struct {
	opts     SessionOptions
	config   core.RuntimeConfig
	menu     MenuModel
	run      *Model
	board    *ScoreboardModel
	notice   string
	quitting bool
}

// NewSessionModel creates a session showing the title menu.
func NewSessionModel(opts SessionOptions, cfg core.RuntimeConfig) SessionModel {
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	m := SessionModel{opts: opts, config: cfg}
	m.menu = NewMenuModel(opts.Preset, m.best(), cfg.ScreenW, cfg.ScreenH)
	return m
}

func (m SessionModel) best() int {
	if m.opts.Store == nil {
		return 0
	}
	best, err := m.opts.Store.HighScore(m.opts.GameID)
	if err != nil {
		m.opts.Logger.Warn("reading high score failed", "err", err)
	}
	return best
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
	}

	switch {
	case m.run != nil:
		return m.updateRun(msg)
	case m.board != nil:
		return m.updateBoard(msg)
	}
	return m.updateMenu(msg)
}

func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	if _, ok := msg.(tea.KeyMsg); ok {
		m.notice = ""
	}
	newMenu, cmd := m.menu.Update(msg)
	if menuModel, ok := newMenu.(MenuModel); ok {
		m.menu = menuModel
	}

	switch m.menu.Choice() {
	case ChoiceQuit:
		m.quitting = true
		return m, tea.Quit

	case ChoiceScores:
		board := NewScoreboardModel(m.opts.Store, m.opts.GameID, m.opts.Title, m.config.ScreenW, m.config.ScreenH)
		m.board = &board
		return m, board.Init()

	case ChoicePlay:
		return m.startRun()
	}

	return m, cmd
}

// startRun creates a game for the selected preset and enters it.
func (m SessionModel) startRun() (tea.Model, tea.Cmd) {
	preset := m.menu.Preset()
	m.menu = NewMenuModel(preset, m.best(), m.config.ScreenW, m.config.ScreenH)

	game, err := m.opts.NewGame(preset)
	if err == nil {
		var run Model
		cfg := m.config
		cfg.Seed = 0
		run, err = NewModel(game, m.opts.Store, m.opts.Sound, m.opts.Logger, cfg)
		if err == nil {
			run.embedded = true
			m.run = &run
			return m, run.Init()
		}
	}

	m.opts.Logger.Warn("could not start run", "preset", preset, "err", err)
	m.notice = "Could not start: " + err.Error()
	return m, nil
}

func (m SessionModel) updateRun(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.run.Update(msg)
	if run, ok := newModel.(Model); ok {
		m.run = &run
	}

	if m.run.BackToMenu() || m.run.IsQuitting() {
		m.run = nil
		m.menu = NewMenuModel(m.menu.Preset(), m.best(), m.config.ScreenW, m.config.ScreenH)
		return m, m.menu.Init()
	}

	return m, cmd
}

func (m SessionModel) updateBoard(msg tea.Msg) (tea.Model, tea.Cmd) {
	newBoard, cmd := m.board.Update(msg)
	if board, ok := newBoard.(ScoreboardModel); ok {
		m.board = &board
	}

	switch {
	case m.board.IsQuitting():
		m.quitting = true
		return m, tea.Quit
	case m.board.GoingBack():
		m.board = nil
		m.menu = NewMenuModel(m.menu.Preset(), m.best(), m.config.ScreenW, m.config.ScreenH)
		return m, m.menu.Init()
	}

	return m, cmd
}

// View renders the current view.
func (m SessionModel) View() string {
	switch {
	case m.quitting:
		return ""
	case m.run != nil:
		return m.run.View()
	case m.board != nil:
		return m.board.View()
	}
	view := m.menu.View()
	if m.notice != "" {
		view += "\n" + centerText(menuHintStyle.Render(m.notice), m.config.ScreenW)
	}
	return view
}

// RunSession runs the interactive app in the local terminal.
func RunSession(opts SessionOptions, cfg core.RuntimeConfig) error {
	p := tea.NewProgram(NewSessionModel(opts, cfg), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
