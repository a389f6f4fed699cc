package plan

import (
	"errors"
	"testing"
)

func TestReconcile(t *testing.T) {
	t.Run("EmptyInputsFail", func(t *testing.T) {
		_, err := Reconcile(nil, nil)
		if !errors.Is(err, ErrEmptyPlan) {
			t.Fatalf("Expected ErrEmptyPlan, got %v", err)
		}
	})

	t.Run("TitlesLimit", func(t *testing.T) {
		pairs, err := Reconcile([]string{"s0", "s1", "s2", "s3"}, []string{"t0", "t1"})
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if len(pairs) != 2 {
			t.Fatalf("Expected 2 pairs, got %d", len(pairs))
		}
		if pairs[0] != (Section{Text: "s0", Title: "t0"}) || pairs[1] != (Section{Text: "s1", Title: "t1"}) {
			t.Errorf("Unexpected pairs: %v", pairs)
		}
	})

	t.Run("SectionsLimit", func(t *testing.T) {
		pairs, err := Reconcile([]string{"s0"}, []string{"t0", "t1", "t2"})
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if len(pairs) != 1 {
			t.Fatalf("Expected 1 pair, got %d", len(pairs))
		}
		if pairs[0].Title != "t0" {
			t.Errorf("Expected title 't0', got %q", pairs[0].Title)
		}
	})

	t.Run("CappedAtThree", func(t *testing.T) {
		sections := []string{"s0", "s1", "s2", "s3", "s4"}
		titles := []string{"t0", "t1", "t2", "t3", "t4"}
		pairs, err := Reconcile(sections, titles)
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if len(pairs) != 3 {
			t.Fatalf("Expected 3 pairs, got %d", len(pairs))
		}
	})

	t.Run("MissingTitlesFail", func(t *testing.T) {
		_, err := Reconcile([]string{"s0", "s1"}, nil)
		if !errors.Is(err, ErrEmptyPlan) {
			t.Fatalf("Expected ErrEmptyPlan, got %v", err)
		}
	})
}
