package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/sakura-runner/internal/platform/tui"
	"github.com/vovakirdan/sakura-runner/internal/storage"
)

var boardCmd = &cobra.Command{
	Use:   "board",
	Short: "Browse scores in an interactive scoreboard",
	Long: `Open the scoreboard with top scores and recent runs.

Controls:
  Up/Down/j/k  - Scroll
  Tab          - Switch between top scores and recent runs
  Esc/Q        - Exit`,
	Args: cobra.NoArgs,
	RunE: runBoard,
}

func runBoard(_ *cobra.Command, _ []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		store = nil
	} else {
		defer store.Close()
	}

	cfg := terminalConfig()
	return tui.RunScoreboard(store, gameID, "Sakura Runner", cfg.ScreenW, cfg.ScreenH)
}
