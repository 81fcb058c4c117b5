package ui

import "testing"

func TestPagerText(t *testing.T) {
	tests := []struct {
		name      string
		page      int
		pageCount int
		want      string
	}{
		{"empty catalogue", 1, 0, ""},
		{"single page", 1, 1, "[1]"},
		{"few pages", 2, 4, "1 [2] 3 4"},
		{"first of many", 1, 10, "[1] 2 3 … 8 9 10"},
		{"middle without leading ellipsis", 5, 10, "1 2 3 4 [5] 6 … 8 9 10"},
		{"middle with both ellipses", 6, 12, "1 2 3 … 5 [6] 7 … 10 11 12"},
		{"near end", 8, 10, "1 2 3 … 7 [8] 9 10"},
		{"last page", 10, 10, "1 2 3 … 9 [10]"},
		{"page clamped high", 40, 10, "1 2 3 … 9 [10]"},
		{"page clamped low", 0, 3, "[1] 2 3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := pagerText(pagerItems(tt.page, tt.pageCount))
			if got != tt.want {
				t.Fatalf("pagerItems(%d, %d) = %q, want %q", tt.page, tt.pageCount, got, tt.want)
			}
		})
	}
}

func TestPagerItems_NoDuplicatesAndAscending(t *testing.T) {
	for count := 1; count <= 25; count++ {
		for page := 1; page <= count; page++ {
			last := 0
			current := 0
			for _, it := range pagerItems(page, count) {
				if it.ellipsis {
					continue
				}
				if it.page <= last {
					t.Fatalf("pagerItems(%d, %d) not strictly ascending at %d", page, count, it.page)
				}
				last = it.page
				if it.current {
					current++
				}
			}
			if current != 1 {
				t.Fatalf("pagerItems(%d, %d) marks %d current pages, want 1", page, count, current)
			}
			if last != count {
				t.Fatalf("pagerItems(%d, %d) ends at %d, want last page", page, count, last)
			}
		}
	}
}
