package geometry

import "testing"

func TestToPosition_ZeroPaddingEqualsZoneModuloBorder(t *testing.T) {
	monitor := Zone{Left: 0, Top: 0, Right: 1920, Bottom: 1080}
	z := Zone{Left: 0, Top: 0, Right: 960, Bottom: 1080}

	got := ToPosition(z, monitor, 0, 0)
	want := Position{X: -7, Y: 0, CX: 960 + 14, CY: 1080 + 7}
	if got != want {
		t.Fatalf("ToPosition() = %+v, want %+v", got, want)
	}
}

func TestToPosition_EdgePaddingOverridesOnTouchingEdges(t *testing.T) {
	monitor := Zone{Left: 0, Top: 0, Right: 1920, Bottom: 1080}
	z := monitor // touches all four edges

	withWindowPadding := ToPosition(z, monitor, 10, 10)
	withEdgePadding := ToPosition(z, monitor, 10, 4)

	if withEdgePadding.X >= withWindowPadding.X {
		t.Fatalf("expected smaller edge padding to yield smaller X offset, got %+v vs %+v", withEdgePadding, withWindowPadding)
	}
	if withEdgePadding.CX <= withWindowPadding.CX {
		t.Fatalf("expected smaller edge padding to yield larger CX, got %+v vs %+v", withEdgePadding, withWindowPadding)
	}
}

func TestToPosition_PaddingMonotonicity(t *testing.T) {
	monitor := Zone{Left: 0, Top: 0, Right: 1920, Bottom: 1080}
	z := Zone{Left: 100, Top: 100, Right: 900, Bottom: 900} // interior zone, touches no monitor edge

	small := ToPosition(z, monitor, 4, 4)
	large := ToPosition(z, monitor, 12, 12)

	if large.CX >= small.CX || large.CY >= small.CY {
		t.Fatalf("increasing window_padding must strictly decrease CX/CY: small=%+v large=%+v", small, large)
	}
}

func TestZoneDimensions(t *testing.T) {
	z := Zone{Left: 10, Top: 20, Right: 110, Bottom: 220}
	if z.W() != 100 {
		t.Fatalf("W() = %d, want 100", z.W())
	}
	if z.H() != 200 {
		t.Fatalf("H() = %d, want 200", z.H())
	}
}
