package workspace

import "testing"

func TestInsertAtShiftsLaterHandles(t *testing.T) {
	w := New(0, 0)
	w.Append(1)
	w.Append(2)
	w.Append(3)

	w.InsertAt(1, 99)

	want := []Handle{1, 99, 2, 3}
	if len(w.Handles) != len(want) {
		t.Fatalf("Handles = %v, want %v", w.Handles, want)
	}
	for i := range want {
		if w.Handles[i] != want[i] {
			t.Fatalf("Handles = %v, want %v", w.Handles, want)
		}
	}
}

func TestRemoveAtShiftsLaterHandlesDown(t *testing.T) {
	w := New(0, 0)
	w.Append(1)
	w.Append(2)
	w.Append(3)

	w.RemoveAt(0)

	want := []Handle{2, 3}
	if len(w.Handles) != len(want) || w.Handles[0] != want[0] || w.Handles[1] != want[1] {
		t.Fatalf("Handles = %v, want %v", w.Handles, want)
	}
}

func TestSwapTwiceIsIdentity(t *testing.T) {
	w := New(0, 0)
	w.Append(1)
	w.Append(2)
	w.Append(3)
	before := append([]Handle(nil), w.Handles...)

	w.Swap(0, 2)
	w.Swap(0, 2)

	for i := range before {
		if w.Handles[i] != before[i] {
			t.Fatalf("double swap did not restore order: %v vs %v", w.Handles, before)
		}
	}
}

func TestEmptyWorkspaceIsEmpty(t *testing.T) {
	w := New(0, 0)
	if !w.Empty() {
		t.Fatalf("new workspace should be empty")
	}
	if w.IndexOf(5) != -1 {
		t.Fatalf("IndexOf on empty workspace should be -1")
	}
}
