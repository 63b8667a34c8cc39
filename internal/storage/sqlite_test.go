package storage

import (
	"os"
	"path/filepath"
	"testing"
)

func openTemp(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenCreatesNestedPath(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTemp(t)

	results := []Result{
		{StageID: "level-1", Avatar: "elementalWizard", Score: 100, Won: true, Kills: 10, Duration: 60},
		{StageID: "level-1", Avatar: "holyKnight", Score: 50, Kills: 4, Duration: 30},
		{StageID: "level-1", Avatar: "elementalWizard", Score: 200, Won: true, Kills: 18, Duration: 75},
		{StageID: "endless", Avatar: "holyKnight", Score: 500, Kills: 40, Duration: 300},
	}
	for _, r := range results {
		if _, err := store.SaveResult(r); err != nil {
			t.Fatalf("SaveResult() failed: %v", err)
		}
	}

	top, err := store.TopScores("level-1", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(top) != 3 {
		t.Fatalf("Expected 3 results, got %d", len(top))
	}
	for i, want := range []int{200, 100, 50} {
		if top[i].Score != want {
			t.Errorf("top[%d].Score = %d, expected %d", i, top[i].Score, want)
		}
	}
	if !top[0].Won || top[0].Kills != 18 || top[0].Avatar != "elementalWizard" {
		t.Errorf("top[0] = %+v", top[0])
	}
	if top[2].Won {
		t.Error("a lost stage should read back as lost")
	}

	endless, err := store.TopScores("endless", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(endless) != 1 || endless[0].Score != 500 {
		t.Errorf("endless results = %+v", endless)
	}
}

func TestStoreTopScoresLimit(t *testing.T) {
	store := openTemp(t)
	for i := range 15 {
		if _, err := store.SaveResult(Result{StageID: "level-2", Score: i * 10}); err != nil {
			t.Fatalf("SaveResult() failed: %v", err)
		}
	}

	top, err := store.TopScores("level-2", 5)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(top) != 5 {
		t.Fatalf("Expected 5 results, got %d", len(top))
	}
	if top[0].Score != 140 {
		t.Errorf("Expected highest score 140, got %d", top[0].Score)
	}
}

func TestStoreHighScore(t *testing.T) {
	store := openTemp(t)

	high, err := store.HighScore("level-3")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("Expected 0 for empty stage, got %d", high)
	}

	for _, score := range []int{100, 300, 200} {
		store.SaveResult(Result{StageID: "level-3", Score: score})
	}
	high, err = store.HighScore("level-3")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 300 {
		t.Errorf("Expected high score 300, got %d", high)
	}
}

func TestStoreClearScores(t *testing.T) {
	store := openTemp(t)
	store.SaveResult(Result{StageID: "level-1", Score: 100})
	store.SaveResult(Result{StageID: "level-2", Score: 200})

	if err := store.ClearScores("level-1"); err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}
	if top, _ := store.TopScores("level-1", 10); len(top) != 0 {
		t.Errorf("Expected 0 results after clear, got %d", len(top))
	}
	if top, _ := store.TopScores("level-2", 10); len(top) != 1 {
		t.Errorf("Other stages should keep their results, got %d", len(top))
	}
}

func TestStoreStats(t *testing.T) {
	store := openTemp(t)
	store.SaveResult(Result{StageID: "level-1", Score: 100, Won: true})
	store.SaveResult(Result{StageID: "level-1", Score: 50})
	store.SaveResult(Result{StageID: "endless", Score: 30})

	st, err := store.Stats("level-1")
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if st.Played != 2 || st.Wins != 1 || st.HighScore != 100 {
		t.Errorf("Stats() = %+v", st)
	}
	if st.AvgScore != 75 {
		t.Errorf("AvgScore = %v, expected 75", st.AvgScore)
	}
	if st.LastPlayed.IsZero() {
		t.Error("LastPlayed should be set")
	}

	empty, err := store.Stats("level-9")
	if err != nil {
		t.Fatalf("Stats() of empty stage failed: %v", err)
	}
	if empty.Played != 0 || !empty.LastPlayed.IsZero() {
		t.Errorf("Stats() of empty stage = %+v", empty)
	}

	all, err := store.AllStats()
	if err != nil {
		t.Fatalf("AllStats() failed: %v", err)
	}
	if len(all) != 2 || all["endless"].HighScore != 30 {
		t.Errorf("AllStats() = %v", all)
	}
}
