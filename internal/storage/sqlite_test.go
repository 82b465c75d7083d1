package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/vovakirdan/arcade-world/internal/sim"
)

func openStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func saveScore(t *testing.T, store *Store, gameID string, score int) {
	t.Helper()
	if _, err := store.SaveResult(context.Background(), sim.Result{GameID: gameID, Score: score}); err != nil {
		t.Fatalf("SaveResult() failed: %v", err)
	}
}

func TestStoreCreatesNestedPath(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreTopScores(t *testing.T) {
	store := openStore(t)

	for _, score := range []int{100, 50, 200} {
		saveScore(t, store, "snake", score)
	}
	saveScore(t, store, "dino", 500)

	scores, err := store.TopScores("snake", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores, got %d", len(scores))
	}
	if scores[0].Score != 200 || scores[1].Score != 100 || scores[2].Score != 50 {
		t.Errorf("Scores not in expected order: %v", scores)
	}

	top, _ := store.TopScores("snake", 2)
	if len(top) != 2 {
		t.Errorf("Expected 2 scores with limit, got %d", len(top))
	}
}

func TestStoreSaveResult(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	results := []sim.Result{
		{GameID: "puzzle", Status: sim.StatusWon, Score: 80, Elapsed: 42 * time.Second, Moves: 10},
		{GameID: "puzzle", Status: sim.StatusWon, Score: 80, Elapsed: 30 * time.Second, Moves: 10},
		{GameID: "puzzle", Status: sim.StatusLost, Score: 0, Elapsed: time.Second, Moves: 2},
	}
	for _, r := range results {
		if _, err := store.SaveResult(ctx, r); err != nil {
			t.Fatalf("SaveResult() failed: %v", err)
		}
	}

	scores, err := store.AllScores("puzzle")
	if err != nil {
		t.Fatalf("AllScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores, got %d", len(scores))
	}
	// Equal scores rank the faster run first.
	if scores[0].Elapsed != 30*time.Second || scores[0].Outcome != "won" || scores[0].Moves != 10 {
		t.Errorf("first entry = %+v", scores[0])
	}
	if scores[2].Outcome != "lost" {
		t.Errorf("last outcome = %q", scores[2].Outcome)
	}

	if _, err := store.SaveResult(ctx, sim.Result{Score: 1}); err == nil {
		t.Error("SaveResult() accepted a result without a game id")
	}
}

func TestStoreReportSkipsWorldRuns(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	if err := store.Report(ctx, sim.Result{GameID: "world", Status: sim.StatusWon, Destination: "arcade"}); err != nil {
		t.Fatalf("Report() failed: %v", err)
	}
	if err := store.Report(ctx, sim.Result{GameID: "snake", Status: sim.StatusLost, Score: 7}); err != nil {
		t.Fatalf("Report() failed: %v", err)
	}

	if all, _ := store.AllScores("world"); len(all) != 0 {
		t.Errorf("world run was recorded: %v", all)
	}
	if high, _ := store.HighScore("snake"); high != 7 {
		t.Errorf("Expected high score of 7, got %d", high)
	}
}

func TestStoreHighScore(t *testing.T) {
	store := openStore(t)

	high, err := store.HighScore("snake")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("Expected high score of 0 for empty game, got %d", high)
	}

	saveScore(t, store, "snake", 100)
	saveScore(t, store, "snake", 300)
	saveScore(t, store, "snake", 200)

	if high, _ = store.HighScore("snake"); high != 300 {
		t.Errorf("Expected high score of 300, got %d", high)
	}
}

func TestStoreClearScores(t *testing.T) {
	store := openStore(t)

	saveScore(t, store, "snake", 100)
	saveScore(t, store, "snake", 200)
	saveScore(t, store, "dino", 300)

	if err := store.ClearScores("snake"); err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}
	if scores, _ := store.TopScores("snake", 10); len(scores) != 0 {
		t.Errorf("Expected 0 snake scores after clear, got %d", len(scores))
	}
	if scores, _ := store.TopScores("dino", 10); len(scores) != 1 {
		t.Error("Dino scores should not be affected by clearing snake")
	}
}

func TestStoreStats(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	empty, err := store.GetGameStats("dino")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if empty.GamesCount != 0 || empty.HighScore != 0 {
		t.Errorf("empty stats = %+v", empty)
	}

	store.SaveResult(ctx, sim.Result{GameID: "dino", Status: sim.StatusWon, Score: 12, Elapsed: 30 * time.Second})
	store.SaveResult(ctx, sim.Result{GameID: "dino", Status: sim.StatusLost, Score: 4, Elapsed: 9 * time.Second})
	store.SaveResult(ctx, sim.Result{GameID: "snake", Status: sim.StatusLost, Score: 3})

	st, err := store.GetGameStats("dino")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if st.GamesCount != 2 || st.Wins != 1 || st.HighScore != 12 || st.TotalScore != 16 {
		t.Errorf("stats = %+v", st)
	}
	if st.AvgScore != 8 {
		t.Errorf("AvgScore = %v, want 8", st.AvgScore)
	}
	// Only won runs count towards the best time.
	if st.BestTime != 30*time.Second {
		t.Errorf("BestTime = %v", st.BestTime)
	}

	all, err := store.GetAllGamesStats()
	if err != nil {
		t.Fatalf("GetAllGamesStats() failed: %v", err)
	}
	if len(all) != 2 || all["snake"].GamesCount != 1 || all["snake"].BestTime != 0 {
		t.Errorf("all stats = %+v", all)
	}
}
