package plan

import "testing"

func TestSafeFilename(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Grilled *Chicken*, v2!", "Grilled_Chicken_v2"},
		{"  Oatmeal Bowl  ", "Oatmeal_Bowl"},
		{"Stir-Fry", "Stir-Fry"},
		{"crème brûlée", "crme_brle"},
		{"", ""},
	}

	for _, c := range cases {
		if got := SafeFilename(c.in); got != c.want {
			t.Errorf("SafeFilename(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestSlotFromName(t *testing.T) {
	if slot, ok := SlotFromName("Breakfast"); !ok || slot != SlotBreakfast {
		t.Errorf("Expected breakfast slot, got %q (ok=%v)", slot, ok)
	}
	if slot, ok := SlotFromName(" DINNER "); !ok || slot != SlotDinner {
		t.Errorf("Expected dinner slot, got %q (ok=%v)", slot, ok)
	}
	if _, ok := SlotFromName("brunch"); ok {
		t.Error("Expected brunch to be rejected")
	}
}
