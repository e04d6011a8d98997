package domain

import "testing"

func TestNormalizeCategory(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"food", "food"},
		{"  Food ", "food"},
		{"TRANSPORTATION", "transportation"},
		{"gadgets", ""},
		{"", ""},
	}

	for _, tc := range cases {
		if got := NormalizeCategory(tc.in); got != tc.want {
			t.Errorf("NormalizeCategory(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestCategoriesComplete(t *testing.T) {
	if len(Categories) != 10 {
		t.Fatalf("Expected 10 categories, got %d", len(Categories))
	}
	for _, c := range Categories {
		if NormalizeCategory(c) != c {
			t.Errorf("Category %q does not normalize to itself", c)
		}
	}
}
