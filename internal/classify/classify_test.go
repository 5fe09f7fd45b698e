package classify

import "testing"

func TestIsRestored(t *testing.T) {
	cases := []struct {
		name string
		s    WindowState
		want bool
	}{
		{"fully restored", WindowState{HasSizebox: true, IsVisible: true}, true},
		{"iconic", WindowState{HasSizebox: true, IsVisible: true, IsIconic: true}, false},
		{"zoomed", WindowState{HasSizebox: true, IsVisible: true, IsZoomed: true}, false},
		{"arranged", WindowState{HasSizebox: true, IsVisible: true, IsArranged: true}, false},
		{"hidden", WindowState{HasSizebox: true, IsVisible: false}, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := IsRestored(c.s); got != c.want {
				t.Fatalf("IsRestored(%+v) = %v, want %v", c.s, got, c.want)
			}
		})
	}
}

func TestEligibleRequiresSizebox(t *testing.T) {
	if Eligible(WindowState{HasSizebox: false, IsVisible: true}) {
		t.Fatalf("window without a sizebox must never be eligible")
	}
	if !Eligible(WindowState{HasSizebox: true}) {
		t.Fatalf("window with a sizebox should be eligible regardless of other state")
	}
}
