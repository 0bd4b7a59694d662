package tui

import (
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/sakura-runner/internal/config"
	"github.com/vovakirdan/sakura-runner/internal/core"
	"github.com/vovakirdan/sakura-runner/internal/games/sakura"
	"github.com/vovakirdan/sakura-runner/internal/registry"
	"github.com/vovakirdan/sakura-runner/internal/storage"
)

type fakeSound struct {
	played []core.EventKind
}

func (f *fakeSound) Play(kind core.EventKind) {
	f.played = append(f.played, kind)
}

func testConfig() core.RuntimeConfig {
	return core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 7}
}

func openStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("storage.Open() error = %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func newTestModel(t *testing.T, store *storage.Store, sound SoundPlayer) Model {
	t.Helper()
	m, err := NewModel(sakura.New(), store, sound, nil, testConfig())
	if err != nil {
		t.Fatalf("NewModel() error = %v", err)
	}
	return m
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	model, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return model, cmd
}

func TestNewModelStartsRun(t *testing.T) {
	m := newTestModel(t, nil, nil)
	if m.State().GameOver || m.State().Speed == 0 {
		t.Errorf("initial state = %+v", m.State())
	}
	if m.Init() == nil {
		t.Error("Init should start the tick loop")
	}
}

func TestNewModelRejectsTinyScreen(t *testing.T) {
	cfg := testConfig()
	cfg.ScreenH = 3
	if _, err := NewModel(sakura.New(), nil, nil, nil, cfg); err == nil {
		t.Error("NewModel() on a 3-row screen should fail")
	}
}

func TestModelJumpPlaysSound(t *testing.T) {
	sound := &fakeSound{}
	m := newTestModel(t, nil, sound)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	m, cmd := update(t, m, TickMsg{})
	if cmd == nil {
		t.Error("tick should schedule the next tick")
	}
	if len(sound.played) != 1 || sound.played[0] != core.EventJumpSound {
		t.Errorf("played = %v, expected a jump sound", sound.played)
	}

	// The frame is cleared after each tick.
	update(t, m, TickMsg{})
	if len(sound.played) != 1 {
		t.Errorf("played = %v after an idle tick", sound.played)
	}
}

func TestModelQuit(t *testing.T) {
	m := newTestModel(t, nil, nil)
	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if !m.IsQuitting() || cmd == nil {
		t.Error("q should quit the program")
	}
	if m.View() != "" {
		t.Error("quitting model should render nothing")
	}
}

func TestModelSavesRunOnGameOver(t *testing.T) {
	store := openStore(t)
	m := newTestModel(t, store, nil)

	m.dispatch([]core.Event{{Kind: core.EventGameOver, Score: 12}})

	runs, err := store.RecentRuns("sakura", 10)
	if err != nil {
		t.Fatalf("RecentRuns() error = %v", err)
	}
	if len(runs) != 1 || runs[0].SessionID != m.game.Summary().SessionID {
		t.Errorf("runs = %+v, expected the current session", runs)
	}
}

func TestModelSkipsEmptyRun(t *testing.T) {
	store := openStore(t)
	m := newTestModel(t, store, nil)

	m.dispatch([]core.Event{{Kind: core.EventGameOver, Score: 0}})

	if runs, _ := store.RecentRuns("sakura", 10); len(runs) != 0 {
		t.Errorf("zero-score run saved: %+v", runs)
	}
}

func TestModelResize(t *testing.T) {
	m := newTestModel(t, nil, nil)
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
	if m.screen.Width() != 100 || m.screen.Height() != 30 {
		t.Errorf("screen = %dx%d, expected 100x30", m.screen.Width(), m.screen.Height())
	}
	if !strings.Contains(m.View(), string(sakura.GroundChar)) {
		t.Error("resized view has no ground")
	}
}

func TestModelResizeSavesLiveRun(t *testing.T) {
	store := openStore(t)
	m := newTestModel(t, store, nil)
	for i := 0; i < 30; i++ {
		m, _ = update(t, m, TickMsg{})
	}
	if m.State().GameOver || m.State().Score <= 0 {
		t.Fatalf("test setup: state = %+v, expected a live run with a score", m.State())
	}
	session := m.game.Summary().SessionID
	score := m.State().Score

	m, _ = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})

	runs, err := store.RecentRuns("sakura", 10)
	if err != nil {
		t.Fatalf("RecentRuns() error = %v", err)
	}
	if len(runs) != 1 || runs[0].SessionID != session || runs[0].Score != score {
		t.Errorf("runs = %+v, expected session %s with score %d", runs, session, score)
	}
	if m.State().Score != 0 {
		t.Errorf("score after resize = %d, expected a fresh run", m.State().Score)
	}
}

func TestModelBackToMenu(t *testing.T) {
	m := newTestModel(t, nil, nil)
	m.embedded = true
	back := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("b")}

	m, _ = update(t, m, back)
	if m.BackToMenu() {
		t.Error("back should be ignored while running")
	}

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("p")})
	m, _ = update(t, m, TickMsg{})
	if !m.State().Paused {
		t.Fatal("game not paused")
	}
	m, _ = update(t, m, back)
	if !m.BackToMenu() {
		t.Error("back while paused should return to the menu")
	}
	if _, cmd := update(t, m, TickMsg{}); cmd != nil {
		t.Error("tick loop should stop after leaving the run")
	}
}

func TestSessionFlow(t *testing.T) {
	opts := SessionOptions{
		NewGame: func(preset config.DifficultyPreset) (registry.Game, error) {
			return registry.Create("sakura", registry.Deps{Preset: string(preset)})
		},
		GameID: "sakura",
		Title:  "Sakura Runner",
		Preset: config.DifficultyEasy,
	}
	s := NewSessionModel(opts, testConfig())
	step := func(msg tea.Msg) tea.Cmd {
		next, cmd := s.Update(msg)
		s = next.(SessionModel)
		return cmd
	}

	if !strings.Contains(s.View(), "EASY") {
		t.Error("menu should show the starting preset")
	}

	step(tea.KeyMsg{Type: tea.KeyEnter})
	if s.run == nil {
		t.Fatal("Enter on Play should start a run")
	}

	step(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if s.run != nil {
		t.Fatal("q in a session run should return to the menu")
	}

	step(tea.KeyMsg{Type: tea.KeyDown})
	step(tea.KeyMsg{Type: tea.KeyDown})
	step(tea.KeyMsg{Type: tea.KeyEnter})
	if s.board == nil {
		t.Fatal("Enter on High Scores should open the scoreboard")
	}
	if !strings.Contains(s.View(), "no database") {
		t.Error("scoreboard without a store should say so")
	}

	if cmd := step(tea.KeyMsg{Type: tea.KeyEsc}); s.board != nil || cmd != nil {
		t.Error("esc should return to the menu without quitting")
	}

	if cmd := step(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")}); cmd == nil || !s.quitting {
		t.Error("q on the menu should quit")
	}
}
