package date

import "testing"

func TestAppend(t *testing.T) {
	h := new(History[string])
	d1, v1 := New(2025, 07, 01), "25 Jul 1"
	d2, v2 := New(2024, 07, 01), "24 Jul 1"

	// Test is about appending two values in reverse order and checking that everything is
	// as expected at every step of the way.

	if h.Len() != 0 {
		t.Errorf("History.Len() = %v want 0", h.Len())
	}

	h.Append(d1, v1)
	if h.Len() != 1 {
		t.Errorf("Append(d1, v1).Len() = %v want 1", h.Len())
	}

	h.Append(d2, v2)
	if h.Len() != 2 {
		t.Errorf("Append(d2, v2).Len() = %v want 2", h.Len())
	}

	if h.days[1] != d1 {
		t.Errorf("history[1].day = %v want %v", h.days[1], d1)
	}
	if h.days[0] != d2 {
		t.Errorf("history[0].day = %v want %v", h.days[0], d2)
	}
	if h.values[1] != v1 {
		t.Errorf("history[1].value = %v want %v", h.values[1], v1)
	}
	if h.values[0] != v2 {
		t.Errorf("history[0].value = %v want %v", h.values[0], v2)
	}

	h.Append(d1, "overwritten")
	if got, _ := h.Get(d1); h.Len() != 2 || got != "overwritten" {
		t.Errorf("Append(d1) on an existing day = %q (len %d), want overwrite", got, h.Len())
	}
}

func TestIntersect(t *testing.T) {
	a, b := new(History[float64]), new(History[float64])
	a.Append(New(2025, 1, 1), 1).Append(New(2025, 1, 2), 2).Append(New(2025, 1, 3), 3)
	b.Append(New(2025, 1, 2), 20).Append(New(2025, 1, 3), 30).Append(New(2025, 1, 4), 40)

	days, av, bv := Intersect(a, b)
	if len(days) != 2 || days[0] != New(2025, 1, 2) || days[1] != New(2025, 1, 3) {
		t.Fatalf("Intersect() days = %v", days)
	}
	if av[0] != 2 || av[1] != 3 || bv[0] != 20 || bv[1] != 30 {
		t.Errorf("Intersect() values = %v %v", av, bv)
	}
}
