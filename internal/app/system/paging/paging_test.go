package paging

import "testing"

func TestParsePage(t *testing.T) {
	cases := []struct {
		in   string
		want int
	}{
		{"", 1},
		{"0", 1},
		{"-3", 1},
		{"abc", 1},
		{"1", 1},
		{"7", 7},
	}
	for _, tc := range cases {
		if got := ParsePage(tc.in); got != tc.want {
			t.Errorf("ParsePage(%q) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestSkip(t *testing.T) {
	if got := Skip(1); got != 0 {
		t.Errorf("Skip(1) = %d, want 0", got)
	}
	if got := Skip(3); got != int64(2*PageSize) {
		t.Errorf("Skip(3) = %d, want %d", got, 2*PageSize)
	}
	if got := Skip(0); got != 0 {
		t.Errorf("Skip(0) = %d, want 0", got)
	}
}

func TestPageCount(t *testing.T) {
	cases := []struct {
		total int64
		want  int
	}{
		{0, 1},
		{1, 1},
		{int64(PageSize), 1},
		{int64(PageSize) + 1, 2},
		{int64(PageSize) * 3, 3},
	}
	for _, tc := range cases {
		if got := PageCount(tc.total); got != tc.want {
			t.Errorf("PageCount(%d) = %d, want %d", tc.total, got, tc.want)
		}
	}
}
