package plan

import "testing"

func TestExtractTitles(t *testing.T) {
	t.Run("QuotedAndSpaced", func(t *testing.T) {
		titles := ExtractTitles("plan body\n'A', B ,C")
		if len(titles) != 3 {
			t.Fatalf("Expected 3 titles, got %d: %v", len(titles), titles)
		}
		for i, want := range []string{"A", "B", "C"} {
			if titles[i] != want {
				t.Errorf("Expected title %d to be %q, got %q", i, want, titles[i])
			}
		}
	})

	t.Run("SkipsTrailingBlankLines", func(t *testing.T) {
		titles := ExtractTitles("body\nOatmeal Bowl, Chicken Salad\n\n   \n")
		if len(titles) != 2 {
			t.Fatalf("Expected 2 titles, got %d: %v", len(titles), titles)
		}
		if titles[0] != "Oatmeal Bowl" || titles[1] != "Chicken Salad" {
			t.Errorf("Unexpected titles: %v", titles)
		}
	})

	t.Run("OnlyBlankLines", func(t *testing.T) {
		if titles := ExtractTitles("\n  \n\t\n"); len(titles) != 0 {
			t.Errorf("Expected no titles, got %v", titles)
		}
	})

	t.Run("EmptyInput", func(t *testing.T) {
		if titles := ExtractTitles(""); len(titles) != 0 {
			t.Errorf("Expected no titles, got %v", titles)
		}
	})

	t.Run("EmptyFragmentsDropped", func(t *testing.T) {
		titles := ExtractTitles("body\nA,, '' , B")
		if len(titles) != 2 {
			t.Fatalf("Expected 2 titles, got %d: %v", len(titles), titles)
		}
	})
}
