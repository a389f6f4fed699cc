package metrics

import (
	"path/filepath"
	"testing"
	"time"
)

func TestStore(t *testing.T) {
	store, err := NewStore(filepath.Join(t.TempDir(), "data", "metrics.db"))
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	defer store.Close()

	t.Run("RecordAndSummarize", func(t *testing.T) {
		if err := store.RecordStage("plan_text", 1200*time.Millisecond, true); err != nil {
			t.Fatalf("Failed to record stage: %v", err)
		}
		if err := store.RecordStage("plan_text", 800*time.Millisecond, false); err != nil {
			t.Fatalf("Failed to record stage: %v", err)
		}
		if err := store.RecordStage("meal_image", 5*time.Second, true); err != nil {
			t.Fatalf("Failed to record stage: %v", err)
		}

		sums, err := store.Summaries(1)
		if err != nil {
			t.Fatalf("Summaries failed: %v", err)
		}
		if len(sums) != 2 {
			t.Fatalf("Expected 2 stage summaries, got %d", len(sums))
		}
		if sums[0].Stage != "meal_image" || sums[0].Count != 1 {
			t.Errorf("Unexpected first summary: %+v", sums[0])
		}
		if sums[1].Stage != "plan_text" || sums[1].Count != 2 || sums[1].Failures != 1 {
			t.Errorf("Unexpected second summary: %+v", sums[1])
		}
	})

	t.Run("CleanupKeepsRecent", func(t *testing.T) {
		affected, err := store.Cleanup(30)
		if err != nil {
			t.Fatalf("Cleanup failed: %v", err)
		}
		if affected != 0 {
			t.Errorf("Expected no recent rows deleted, got %d", affected)
		}

		sums, err := store.Summaries(1)
		if err != nil {
			t.Fatalf("Summaries failed: %v", err)
		}
		if len(sums) != 2 {
			t.Errorf("Expected summaries to survive cleanup, got %d", len(sums))
		}
	})
}
