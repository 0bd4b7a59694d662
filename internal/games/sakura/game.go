// Package sakura implements Sakura Runner, an endless runner where a ninja
// jumps spikes, slides under shuriken and collects sakura flowers for a
// short powered run.
//
// The game runs on a logical clock advanced once per Step. The spawn cycle,
// entity lifetimes and player animations are all timers on that clock, so a
// seed and an input sequence fully determine a run.
package sakura

import (
	"fmt"
	"io"
	"math"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/sakura-runner/internal/config"
	"github.com/vovakirdan/sakura-runner/internal/core"
	"github.com/vovakirdan/sakura-runner/internal/registry"
)

// Visual characters for rendering
const (
	GroundChar     = '═'
	SoilChar       = '░'
	SpikeChar      = '▲'
	FlowerChar     = '✿'
	ShurikenChar   = '✚'
	ShurikenTilted = '✕'
	BodyChar       = '█'
	LegLeft        = '╱'
	LegRight       = '╲'
)

// HighScores is the persistent best-score store: read when a run starts,
// written when a run ends above it.
type HighScores interface {
	HighScore() (int, error)
	SaveHighScore(score int) error
}

// Option configures a Game.
type Option func(*Game)

// WithLogger sets the logger for gameplay debug events.
func WithLogger(l *log.Logger) Option {
	return func(g *Game) {
		if l != nil {
			g.logger = l
		}
	}
}

// WithHighScores sets the high score store.
func WithHighScores(h HighScores) Option {
	return func(g *Game) {
		g.scores = h
	}
}

// WithConfig replaces the default runner config.
func WithConfig(cfg config.RunnerConfig) Option {
	return func(g *Game) {
		g.cfg = cfg
	}
}

// Game implements the Sakura Runner game logic.
type Game struct {
	cfg     config.RunnerConfig
	scores  HighScores
	logger  *log.Logger
	runtime core.RuntimeConfig
	best    int // Best score seen by this instance, survives restarts

	sched      *Scheduler
	world      *World
	player     *PlayerMachine
	spawner    *Spawner
	resolver   *Resolver
	score      ScoreTracker
	difficulty DifficultyController
	manager    *config.DifficultyManager
	session    *Session

	groundY float64
	paused  bool
	events  []core.Event
}

// New creates a game with the built-in config and a discarding logger.
func New(opts ...Option) *Game {
	g := &Game{
		cfg:    config.DefaultRunnerConfig(),
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return "sakura"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Sakura Runner"
}

// Reset tears down any previous run and starts a fresh session.
func (g *Game) Reset(runtime core.RuntimeConfig) error {
	if err := g.cfg.Validate(); err != nil {
		return fmt.Errorf("sakura: reset: %w", err)
	}
	if runtime.ScreenW <= 0 || runtime.ScreenH <= g.cfg.Player.GroundOffset+g.cfg.Player.Height {
		return fmt.Errorf("sakura: reset: screen %dx%d too small", runtime.ScreenW, runtime.ScreenH)
	}
	if g.sched != nil {
		g.teardown()
		g.best = max(g.best, g.session.HighScore)
	}
	g.runtime = runtime
	g.paused = false
	g.events = nil

	if g.scores != nil {
		stored, err := g.scores.HighScore()
		if err != nil {
			g.logger.Warn("reading high score failed", "err", err)
		}
		g.best = max(g.best, stored)
	}

	w := float64(runtime.ScreenW)
	h := float64(runtime.ScreenH)
	g.groundY = h - float64(g.cfg.Player.GroundOffset)

	g.manager = config.NewDifficultyManager(g.cfg)
	g.sched = NewScheduler()
	ids := &idSource{}
	g.world = NewWorld(g.sched, ids)
	g.session = NewSession(g.best, g.manager.Speed(0))
	g.score = NewScoreTracker(g.cfg.Scoring)
	g.difficulty = NewDifficultyController(g.manager)

	g.player = NewPlayerMachine(g.cfg, h, g.groundY, g.sched, ids, g.logger)
	g.player.OnPowerDown(g.powerDown)

	sp, err := NewSpawner(g.cfg.Spawner, w, h, g.groundY, NewPolicy(runtime.Seed), g.sched, g.world, g.session, g.logger)
	if err != nil {
		return fmt.Errorf("sakura: reset: %w", err)
	}
	g.spawner = sp
	g.resolver = NewResolver(g.session, g.player, g.world, g.scores, g.logger, g.emit, g.teardown)

	g.session.Started = true
	g.player.Start()
	g.spawner.Start()
	g.logger.Debug("run started", "session", g.session.ID, "seed", runtime.Seed, "speed", g.session.GameSpeed, "high", g.best)
	return nil
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.events = nil
	if g.session == nil || g.session.Dead {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	s := g.session
	if in.Has(core.ActionJump) && g.player.Jump(s.PoweredUp) {
		g.emit(core.Event{Kind: core.EventJumpSound})
	}
	if in.Has(core.ActionSlide) && g.player.Slide(s.PoweredUp) {
		g.emit(core.Event{Kind: core.EventSlideSound})
	}

	dt := g.runtime.TickSeconds()
	prev := g.sched.Now()
	g.score.Tick(s)
	g.difficulty.Tick(s)
	g.sched.Advance(dt)
	s.Elapsed += dt
	g.resolver.Detect(prev, g.sched.Now())

	if s.HighScore > g.best {
		g.best = s.HighScore
	}
	return core.StepResult{State: g.State(), Events: g.events}
}

func (g *Game) emit(e core.Event) {
	g.events = append(g.events, e)
}

func (g *Game) powerDown() {
	g.session.PoweredUp = false
	g.session.Label = ""
	g.logger.Debug("power-up expired", "score", g.session.Score)
	g.emit(core.Event{Kind: core.EventPowerDown})
}

// teardown cancels the spawn cycle, every pending timer and every entity.
// Nothing scheduled before it will run afterwards.
func (g *Game) teardown() {
	g.spawner.Stop()
	g.player.Teardown()
	g.sched.CancelAll()
	g.world.Clear()
	g.logger.Debug("scene torn down", "score", g.session.Score, "dead", g.session.Dead)
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.session == nil {
		return core.GameState{HighScore: g.best}
	}
	return core.GameState{
		Score:     g.session.Score,
		HighScore: g.session.HighScore,
		Speed:     g.session.GameSpeed,
		PoweredUp: g.session.PoweredUp,
		GameOver:  g.session.Dead,
		Paused:    g.paused,
	}
}

// Summary returns the current run for persistence.
func (g *Game) Summary() core.RunSummary {
	if g.session == nil {
		return core.RunSummary{}
	}
	return g.session.Summary()
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if g.session == nil {
		return
	}
	now := g.sched.Now()
	ground := int(g.groundY)

	dst.DrawHLine(0, ground, dst.Width(), GroundChar, core.ColorGray)
	for y := ground + 1; y < dst.Height(); y++ {
		dst.DrawHLine(0, y, dst.Width(), SoilChar, core.ColorGray)
	}

	for _, e := range g.world.Entities() {
		g.drawEntity(dst, e, now)
	}
	if g.player.Alive() {
		g.drawPlayer(dst, now)
	}

	s := g.session
	dst.DrawTextColored(2, 0, fmt.Sprintf(" %dm ", s.Score), core.ColorYellow)
	right := fmt.Sprintf(" Best: %dm  Spd: %.1f ", s.HighScore, s.GameSpeed)
	dst.DrawText(dst.Width()-len(right)-2, 0, right)
	if s.Label != "" {
		dst.DrawTextCentered(1, s.Label, core.ColorPink)
	}

	if g.paused {
		g.drawCenteredMessage(dst, "PAUSED", "Press P to resume")
	}
	if s.Dead {
		g.drawCenteredMessage(dst, "GAME OVER", fmt.Sprintf("%dm  |  Press R to restart", s.Score))
	}
}

func (g *Game) drawEntity(dst *core.Screen, e Entity, now float64) {
	r := e.Bounds(now).Cell()
	switch e.Kind {
	case KindShuriken:
		glyph := ShurikenChar
		if quarter := int(e.Motion.Angle(now) / (math.Pi / 4)); quarter%2 == 1 {
			glyph = ShurikenTilted
		}
		dst.DrawRect(r, glyph, core.ColorCyan)
	case KindSpike:
		dst.DrawRect(r, SpikeChar, core.ColorRed)
	case KindFlower:
		dst.DrawRect(r, FlowerChar, core.ColorPink)
	}
}

// drawPlayer renders the ninja inside its collision shape, so a slide is
// drawn crouched.
func (g *Game) drawPlayer(dst *core.Screen, now float64) {
	p := g.player.Player()
	r := p.HitBox(now).Cell()
	if g.player.State() == StateRunning || g.player.State() == StatePoweredRunning {
		r = p.Bounds(now).Cell()
	}
	// A slide sinks the hit box below the ground line; draw it standing on it.
	if ground := int(g.groundY); r.Bottom() > ground {
		r.Y = ground - r.H
	}

	color := core.ColorWhite
	if g.player.State() == StatePoweredRunning {
		color = core.ColorBrightMagenta
	}
	dst.DrawRect(core.NewRect(r.X, r.Y, r.W, r.H-1), BodyChar, color)

	// Legs alternate with the animation frame while on the ground.
	legs := [2]rune{LegLeft, LegRight}
	if g.player.State() != StateJumping && p.Anim.At(now).Frame%2 == 1 {
		legs = [2]rune{LegRight, LegLeft}
	}
	for dx := 0; dx < r.W; dx++ {
		dst.SetColored(r.X+dx, r.Bottom()-1, legs[dx%2], color)
	}
}

// drawCenteredMessage draws a message box in the center of the screen.
func (g *Game) drawCenteredMessage(dst *core.Screen, title, subtitle string) {
	w := dst.Width()
	h := dst.Height()

	boxW := core.Max(len(title), len(subtitle)) + 4
	boxH := 5
	box := core.NewRect((w-boxW)/2, (h-boxH)/2, boxW, boxH)

	dst.DrawRect(box, ' ', core.ColorDefault)
	dst.DrawBox(box, core.ColorPink)
	dst.DrawTextColored(box.X+(boxW-len(title))/2, box.Y+1, title, core.ColorPink)
	dst.DrawText(box.X+(boxW-len(subtitle))/2, box.Y+3, subtitle)
}

// NewFromDeps loads the runner config for deps and builds a game on it.
func NewFromDeps(deps registry.Deps) (*Game, error) {
	cfg, err := config.LoadRunner(deps.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("sakura: load config: %w", err)
	}
	if deps.Preset != "" {
		preset := config.ParsePreset(deps.Preset)
		if preset == "" {
			return nil, fmt.Errorf("sakura: unknown difficulty %q", deps.Preset)
		}
		config.ApplyRunnerPreset(&cfg, preset)
	}
	return New(WithConfig(cfg), WithLogger(deps.Logger), WithHighScores(deps.HighScores)), nil
}

// Register the game with the registry
func init() {
	registry.Register("sakura", "Sakura Runner", func(deps registry.Deps) (registry.Game, error) {
		g, err := NewFromDeps(deps)
		if err != nil {
			return nil, err
		}
		return g, nil
	})
}
