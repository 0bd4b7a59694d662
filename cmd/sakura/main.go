// sakura is an endless runner for the terminal: jump the spikes, slide
// under the shuriken and catch sakura flowers for a powered run.
//
// Usage:
//
//	sakura                  - Title menu (play, difficulty, high scores)
//	sakura play             - Start a run directly
//	sakura scores           - Print the high score table
//	sakura board            - Interactive scoreboard
//	sakura serve            - Start SSH server for remote play
//
// Global flags:
//
//	--fps <rate>        - Set tick rate (default: 60)
//	--seed <value>      - Set RNG seed for reproducible gameplay
//	--db <path>         - Set database path (default: ~/.sakura/scores.db)
//	--log-level <lvl>   - debug, info, warn or error
//	--log-file <path>   - Write logs to a file while the TUI is running
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/sakura-runner/internal/config"
	"github.com/vovakirdan/sakura-runner/internal/core"
	"github.com/vovakirdan/sakura-runner/internal/platform/audio"
	"github.com/vovakirdan/sakura-runner/internal/platform/tui"
	"github.com/vovakirdan/sakura-runner/internal/registry"
	"github.com/vovakirdan/sakura-runner/internal/storage"

	// Import the game to register it
	_ "github.com/vovakirdan/sakura-runner/internal/games/sakura"
)

const gameID = "sakura"

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagLogLevel string
	flagLogFile  string

	// Game flags shared by the menu and play
	flagConfig     string
	flagDifficulty string
	flagVolume     float64
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "sakura",
	Short: "Sakura Runner - an endless ninja runner for your terminal",
	Long: `Sakura Runner is an endless runner played in the terminal.

Jump over spikes, slide under shuriken and catch sakura flowers
for ten seconds of invincible, double-scoring running.

Available commands:
  play     - Start a run directly
  scores   - Print the high score table
  board    - Interactive scoreboard
  serve    - Start SSH server for remote play

Examples:
  sakura
  sakura play --difficulty hard
  sakura scores --recent
  sakura serve --ssh :2222`,
	SilenceUsage: true,
	RunE:         runMenu,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.sakura/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Log file for interactive commands (default: no logs)")

	rootCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom runner config YAML")
	rootCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Starting difficulty: easy, normal, hard, fixed")
	rootCmd.Flags().Float64Var(&flagVolume, "volume", 0.5, "Sound volume from 0 (mute) to 1")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(boardCmd)
	rootCmd.AddCommand(serveCmd)
}

// newLogger builds the application logger writing to w.
func newLogger(w io.Writer) (*log.Logger, error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
	}
	return log.NewWithOptions(w, log.Options{
		Level:           level,
		ReportTimestamp: true,
		Prefix:          "sakura",
	}), nil
}

// tuiLogger returns the logger for commands that own the terminal.
// Without --log-file logs are discarded. The returned func closes the file.
func tuiLogger() (*log.Logger, func(), error) {
	if flagLogFile == "" {
		logger, err := newLogger(io.Discard)
		return logger, func() {}, err
	}
	if err := os.MkdirAll(filepath.Dir(flagLogFile), 0o755); err != nil {
		return nil, nil, fmt.Errorf("create log directory: %w", err)
	}
	f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	logger, err := newLogger(f)
	if err != nil {
		f.Close()
		return nil, nil, err
	}
	return logger, func() { f.Close() }, nil
}

// openStore opens the scores database, or returns nil with a warning so the
// game can still be played.
func openStore(logger *log.Logger) *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database", "path", flagDBPath, "err", err)
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		return nil
	}
	return store
}

// terminalConfig returns the runtime config for the current terminal.
func terminalConfig() core.RuntimeConfig {
	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

// parseDifficulty validates the --difficulty flag. Empty keeps the config value.
func parseDifficulty() (config.DifficultyPreset, error) {
	if flagDifficulty == "" {
		return "", nil
	}
	preset := config.ParsePreset(strings.ToLower(flagDifficulty))
	if preset == "" {
		return "", fmt.Errorf("unknown difficulty %q (want easy, normal, hard or fixed)", flagDifficulty)
	}
	return preset, nil
}

// gameFactory creates games wired to the store and logger.
func gameFactory(store *storage.Store, logger *log.Logger) tui.GameFactory {
	var scores registry.HighScores
	if store != nil {
		scores = storage.NewHighScores(store, gameID)
	}
	return func(preset config.DifficultyPreset) (registry.Game, error) {
		return registry.Create(gameID, registry.Deps{
			Logger:     logger,
			HighScores: scores,
			ConfigPath: flagConfig,
			Preset:     string(preset),
		})
	}
}

func runMenu(_ *cobra.Command, _ []string) error {
	preset, err := parseDifficulty()
	if err != nil {
		return err
	}
	if preset == "" {
		preset = config.DifficultyNormal
	}

	logger, closeLog, err := tuiLogger()
	if err != nil {
		return err
	}
	defer closeLog()

	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}

	sound := audio.New(flagVolume, logger)
	defer sound.Close()

	opts := tui.SessionOptions{
		NewGame: gameFactory(store, logger),
		GameID:  gameID,
		Title:   "Sakura Runner",
		Store:   store,
		Sound:   sound,
		Logger:  logger,
		Preset:  preset,
	}
	return tui.RunSession(opts, terminalConfig())
}
