package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/sakura-runner/internal/core"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	for _, score := range []int{100, 50, 200} {
		if _, err := store.SaveScore("sakura", score); err != nil {
			t.Fatalf("SaveScore() failed: %v", err)
		}
	}
	if _, err := store.SaveScore("other", 500); err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}

	scores, err := store.TopScores("sakura", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores, got %d", len(scores))
	}
	if scores[0].Score != 200 || scores[1].Score != 100 || scores[2].Score != 50 {
		t.Errorf("Scores not sorted descending: %v", scores)
	}
}

func TestStoreTopScoresLimit(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 5; i++ {
		store.SaveScore("sakura", (i+1)*100)
	}

	scores, err := store.TopScores("sakura", 3)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Errorf("Expected 3 scores with limit, got %d", len(scores))
	}
	if scores[0].Score != 500 || scores[1].Score != 400 || scores[2].Score != 300 {
		t.Errorf("Scores not in expected order: %v", scores)
	}
}

func TestStoreSaveRun(t *testing.T) {
	store := openTestStore(t)
	run := core.RunSummary{
		SessionID: "01HZY3J4XN1B8V6W2Q7R5T9K0M",
		Score:     42,
		RawScore:  252,
		PowerUps:  2,
		Seconds:   3.6,
	}

	id, err := store.SaveRun("sakura", run)
	if err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}

	again, err := store.SaveRun("sakura", run)
	if err != nil {
		t.Fatalf("SaveRun() twice failed: %v", err)
	}
	if again != id {
		t.Errorf("second SaveRun() returned id %d, expected %d", again, id)
	}

	runs, err := store.RecentRuns("sakura", 10)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("Expected 1 run, got %d", len(runs))
	}
	r := runs[0]
	if r.SessionID != run.SessionID || r.Score != 42 || r.RawScore != 252 || r.PowerUps != 2 || r.Duration != 4 {
		t.Errorf("stored run = %+v", r)
	}

	scores, _ := store.TopScores("sakura", 10)
	if len(scores) != 1 || scores[0].Score != 42 {
		t.Errorf("run should add exactly one score entry, got %v", scores)
	}
}

func TestStoreHighScore(t *testing.T) {
	store := openTestStore(t)

	high, err := store.HighScore("sakura")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("Expected high score of 0 for empty game, got %d", high)
	}

	store.SaveScore("sakura", 100)
	store.SaveScore("sakura", 300)
	store.SaveScore("sakura", 200)

	if high, _ = store.HighScore("sakura"); high != 300 {
		t.Errorf("Expected high score of 300, got %d", high)
	}

	if err := store.SetHighScore("sakura", 350); err != nil {
		t.Fatalf("SetHighScore() failed: %v", err)
	}
	if err := store.SetHighScore("sakura", 120); err != nil {
		t.Fatalf("SetHighScore() failed: %v", err)
	}
	if high, _ = store.HighScore("sakura"); high != 350 {
		t.Errorf("lower SetHighScore overwrote the best: got %d, expected 350", high)
	}
}

func TestHighScoreBook(t *testing.T) {
	store := openTestStore(t)
	book := NewHighScores(store, "sakura")

	if err := book.SaveHighScore(50); err != nil {
		t.Fatalf("SaveHighScore() failed: %v", err)
	}
	high, err := book.HighScore()
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 50 {
		t.Errorf("HighScore() = %d, expected 50", high)
	}
	if other, _ := NewHighScores(store, "other").HighScore(); other != 0 {
		t.Errorf("high scores leaked between games: %d", other)
	}
}

func TestStoreClearScores(t *testing.T) {
	store := openTestStore(t)

	store.SaveScore("sakura", 100)
	store.SaveRun("sakura", core.RunSummary{SessionID: "a", Score: 200})
	store.SetHighScore("sakura", 250)
	store.SaveScore("other", 300)

	if err := store.ClearScores("sakura"); err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}

	if scores, _ := store.TopScores("sakura", 10); len(scores) != 0 {
		t.Errorf("Expected 0 scores after clear, got %d", len(scores))
	}
	if runs, _ := store.RecentRuns("sakura", 10); len(runs) != 0 {
		t.Errorf("Expected 0 runs after clear, got %d", len(runs))
	}
	if high, _ := store.HighScore("sakura"); high != 0 {
		t.Errorf("Expected high score 0 after clear, got %d", high)
	}
	if other, _ := store.TopScores("other", 10); len(other) != 1 {
		t.Errorf("other game scores should not be affected by clearing")
	}
}

func TestStoreGameStats(t *testing.T) {
	store := openTestStore(t)

	store.SaveRun("sakura", core.RunSummary{SessionID: "a", Score: 10, PowerUps: 1, Seconds: 12})
	store.SaveRun("sakura", core.RunSummary{SessionID: "b", Score: 30, PowerUps: 2, Seconds: 40})

	stats, err := store.GetGameStats("sakura")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if stats.GamesCount != 2 || stats.HighScore != 30 || stats.TotalScore != 40 || stats.AvgScore != 20 {
		t.Errorf("stats = %+v", stats)
	}
	if stats.TotalPowerUps != 3 || stats.LongestRun != 40 {
		t.Errorf("run stats = %+v", stats)
	}
	if stats.LastPlayed.IsZero() {
		t.Error("LastPlayed should be set")
	}
}

func TestStoreExpandHomePath(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}
