package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/sakura-runner/internal/platform/audio"
	"github.com/vovakirdan/sakura-runner/internal/platform/tui"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start a run",
	Long: `Start a run directly, skipping the title menu.

Controls:
  Space/Up/W  - Jump
  Down/S      - Slide
  P/Esc       - Pause
  R           - Restart (after game over)
  Ctrl+S      - Screenshot to ~/.sakura/screenshots
  Q/Ctrl+C    - Quit

Difficulty options:
  easy   - Slowest crossing speed, speeds up with score
  normal - Default speed, speeds up with score
  hard   - Fast from the start
  fixed  - No progression, stays at the config's speed

Examples:
  sakura play
  sakura play --difficulty hard
  sakura play --seed 42 --fps 30
  sakura play --config ./my-runner.yaml`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom runner config YAML")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	playCmd.Flags().Float64Var(&flagVolume, "volume", 0.5, "Sound volume from 0 (mute) to 1")
}

func runPlay(_ *cobra.Command, _ []string) error {
	preset, err := parseDifficulty()
	if err != nil {
		return err
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

	game, err := gameFactory(store, logger)(preset)
	if err != nil {
		return fmt.Errorf("create game: %w", err)
	}

	sound := audio.New(flagVolume, logger)
	defer sound.Close()

	return tui.Run(game, store, sound, logger, terminalConfig())
}
