package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/sakura-runner/internal/core"
	"github.com/vovakirdan/sakura-runner/internal/registry"
	"github.com/vovakirdan/sakura-runner/internal/storage"
)

// SoundPlayer plays the sound of a game event. Kinds without a sound are ignored.
type SoundPlayer interface {
	Play(kind core.EventKind)
}

// Model is the Bubble Tea model for a Sakura Runner run.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	store      *storage.Store
	sound      SoundPlayer
	logger     *log.Logger
	config     core.RuntimeConfig
	keys       GameKeyMap
	inputFrame core.InputFrame
	gameState  core.GameState
	fixedSeed  bool
	embedded   bool // Quit and back return to the session menu instead of exiting
	quitting   bool
	backToMenu bool
}

// NewModel creates a model for game and starts its first run.
// store, sound and logger may be nil.
func NewModel(game registry.Game, store *storage.Store, sound SoundPlayer, logger *log.Logger, cfg core.RuntimeConfig) (Model, error) {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	fixed := cfg.Seed != 0
	if !fixed {
		cfg.Seed = time.Now().UnixNano()
	}

	if err := game.Reset(cfg); err != nil {
		return Model{}, fmt.Errorf("start %s: %w", game.ID(), err)
	}

	return Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:      store,
		sound:      sound,
		logger:     logger,
		config:     cfg,
		keys:       DefaultGameKeyMap(),
		inputFrame: core.NewInputFrame(),
		gameState:  game.State(),
		fixedSeed:  fixed,
	}, nil
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Screenshot):
		if path, err := m.saveScreenshot(); err != nil {
			m.logger.Warn("screenshot failed", "err", err)
		} else {
			m.logger.Info("screenshot saved", "path", path)
		}
		return m, nil

	case m.embedded && key.Matches(msg, m.keys.Back) && (m.gameState.GameOver || m.gameState.Paused):
		m.backToMenu = true
		return m, nil
	}

	if m.keys.MapKeyToFrame(msg, &m.inputFrame) {
		m.quitting = true
		if m.embedded {
			return m, nil
		}
		return m, tea.Quit
	}
	return m, nil
}

// handleResize resizes the screen and restarts a live run at the new size.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)

	if !m.gameState.GameOver {
		if score := m.game.State().Score; score > 0 {
			m.logger.Info("run cut short by resize", "score", score)
			m.saveRun(score)
		}
		if err := m.game.Reset(m.config); err != nil {
			m.logger.Warn("resize restart failed", "width", msg.Width, "height", msg.Height, "err", err)
		}
		m.gameState = m.game.State()
	}

	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.quitting || m.backToMenu {
		return m, nil
	}

	if m.inputFrame.Has(core.ActionRestart) && m.gameState.GameOver {
		m.restart()
		m.inputFrame.Clear()
		return m, tickCmd(m.config.TickRate)
	}

	result := m.game.Step(m.inputFrame)
	m.gameState = result.State
	m.dispatch(result.Events)

	m.inputFrame.Clear()
	return m, tickCmd(m.config.TickRate)
}

// restart begins a new run, with a fresh seed unless one was fixed.
func (m *Model) restart() {
	if !m.fixedSeed {
		m.config.Seed = time.Now().UnixNano()
	}
	if err := m.game.Reset(m.config); err != nil {
		m.logger.Error("restart failed", "err", err)
	}
	m.gameState = m.game.State()
}

// dispatch forwards the events of one tick to the sound player and the store.
func (m *Model) dispatch(events []core.Event) {
	for _, e := range events {
		switch e.Kind {
		case core.EventJumpSound, core.EventSlideSound, core.EventPowerUp, core.EventPowerDown:
			if m.sound != nil {
				m.sound.Play(e.Kind)
			}
		case core.EventHighScore:
			m.logger.Info("new high score", "game", m.game.ID(), "score", e.Score)
		case core.EventGameOver:
			m.saveRun(e.Score)
		}
	}
}

func (m *Model) saveRun(score int) {
	run := m.game.Summary()
	m.logger.Info("run over", "session", run.SessionID, "score", score, "power_ups", run.PowerUps)
	if m.store == nil || score <= 0 {
		return
	}
	if _, err := m.store.SaveRun(m.game.ID(), run); err != nil {
		m.logger.Warn("saving run failed", "session", run.SessionID, "err", err)
	}
}

// saveScreenshot saves the current screen to a file and returns its path.
func (m *Model) saveScreenshot() (string, error) {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("screenshot: %w", err)
	}
	dir := filepath.Join(home, ".sakura", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("screenshot: %w", err)
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		return "", fmt.Errorf("screenshot: %w", err)
	}
	return path, nil
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// State returns the game state after the last tick.
func (m Model) State() core.GameState {
	return m.gameState
}

// IsQuitting returns true if the user requested to quit.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if the user asked to leave the run for the menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// Run plays game in the terminal until the user quits.
func Run(game registry.Game, store *storage.Store, sound SoundPlayer, logger *log.Logger, cfg core.RuntimeConfig) error {
	model, err := NewModel(game, store, sound, logger, cfg)
	if err != nil {
		return err
	}

	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err = p.Run()
	return err
}
