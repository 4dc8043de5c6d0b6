package route

import "testing"

func TestResolvePage(t *testing.T) {
	cases := []struct {
		total, requested int
		number, pages    int
	}{
		{20, 3, 3, 3},
		{20, 1, 1, 3},
		{20, 99, 3, 3},
		{20, 0, 1, 3},
		{20, -4, 1, 3},
		{9, 2, 1, 1},
		{10, 2, 2, 2},
		{0, 5, 1, 1},
	}
	for _, tc := range cases {
		number, pages := resolvePage(tc.total, tc.requested)
		if number != tc.number || pages != tc.pages {
			t.Fatalf("resolvePage(%d, %d) = (%d, %d), want (%d, %d)",
				tc.total, tc.requested, number, pages, tc.number, tc.pages)
		}
	}
}

func TestParsePage(t *testing.T) {
	cases := map[string]int{"": 1, "abc": 1, "0": 1, "-2": 1, "1": 1, "7": 7, "2.5": 1}
	for raw, want := range cases {
		if got := ParsePage(raw); got != want {
			t.Fatalf("ParsePage(%q) = %d, want %d", raw, got, want)
		}
	}
}
