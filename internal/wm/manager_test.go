package wm

import (
	"testing"

	"github.com/google/uuid"

	"github.com/1broseidon/termtile/internal/classify"
	"github.com/1broseidon/termtile/internal/geometry"
	"github.com/1broseidon/termtile/internal/layout"
	"github.com/1broseidon/termtile/internal/layoutgroup"
)

var testDesktop = uuid.Must(uuid.NewRandom())

type fakeOS struct {
	desktops map[Handle]VirtualDesktopID
	monitors map[Handle]MonitorID
	states   map[Handle]classify.WindowState
	rects    map[Handle]geometry.Zone
	dpi      map[Handle]uint32
	windows  map[Handle]bool
	fg       Handle
	hasFG    bool

	positions []struct {
		h Handle
		p geometry.Position
	}
	denyPos map[Handle]bool
}

func newFakeOS() *fakeOS {
	return &fakeOS{
		desktops: map[Handle]VirtualDesktopID{},
		monitors: map[Handle]MonitorID{},
		states:   map[Handle]classify.WindowState{},
		rects:    map[Handle]geometry.Zone{},
		dpi:      map[Handle]uint32{},
		windows:  map[Handle]bool{},
		denyPos:  map[Handle]bool{},
	}
}

func (f *fakeOS) GetWindowDesktopID(h Handle) (VirtualDesktopID, error) {
	return f.desktops[h], nil
}
func (f *fakeOS) MonitorFromWindow(h Handle) (MonitorID, bool) {
	m, ok := f.monitors[h]
	return m, ok
}
func (f *fakeOS) GetForegroundWindow() (Handle, bool) { return f.fg, f.hasFG }
func (f *fakeOS) SetForegroundWindow(h Handle) error {
	f.fg = h
	f.hasFG = true
	return nil
}
func (f *fakeOS) SetWindowPos(h Handle, p geometry.Position) error {
	if f.denyPos[h] {
		return &OSError{Code: AccessDeniedCode}
	}
	f.positions = append(f.positions, struct {
		h Handle
		p geometry.Position
	}{h, p})
	z := geometry.Zone{Left: p.X, Top: p.Y, Right: p.X + p.CX, Bottom: p.Y + p.CY}
	f.rects[h] = z
	return nil
}
func (f *fakeOS) GetWindowRect(h Handle) (geometry.Zone, error) { return f.rects[h], nil }
func (f *fakeOS) GetDPI(h Handle) (uint32, error) {
	if d, ok := f.dpi[h]; ok {
		return d, nil
	}
	return 96, nil
}
func (f *fakeOS) SetBorder(h Handle, focused bool, s Settings) error { return nil }
func (f *fakeOS) IsWindow(h Handle) bool                             { return f.windows[h] }
func (f *fakeOS) WindowState(h Handle) (classify.WindowState, error) { return f.states[h], nil }
func (f *fakeOS) Minimize(h Handle) error {
	s := f.states[h]
	s.IsIconic = true
	f.states[h] = s
	return nil
}

func (f *fakeOS) show(h Handle, monitor MonitorID) {
	f.desktops[h] = testDesktop
	f.monitors[h] = monitor
	f.states[h] = classify.WindowState{HasSizebox: true, IsVisible: true}
	f.windows[h] = true
}

func testManager() (*Manager, *fakeOS) {
	os := newFakeOS()
	settings := Settings{DefaultLayoutIdx: 0}
	m := New(os, settings, nil)

	monitor := geometry.Zone{Left: 0, Top: 0, Right: 1920, Bottom: 1080}
	l := layout.New(monitor, &layout.DirectionalEndTiling{Direction: layout.Horizontal, StartFrom: 1, ZoneIdx: 0})
	l.NewZoneVec()
	group := layoutgroup.New("default", l)

	m.Initialize([]MonitorInfo{{ID: 0, Rect: monitor}}, []*layoutgroup.LayoutGroup{group}, nil)
	return m, os
}

func TestScenario_CreateTwoThenDestroyFirst(t *testing.T) {
	m, os := testManager()

	const A, B Handle = 1, 2
	os.show(A, 0)
	m.WindowCreated(A)

	os.show(B, 0)
	m.WindowCreated(B)

	key := workspaceKey{Desktop: testDesktop, Monitor: 0}
	ws := m.workspaces[key]
	if ws.Len() != 2 || ws.Handles[0] != A || ws.Handles[1] != B {
		t.Fatalf("handles = %v, want [A B]", ws.Handles)
	}

	rectA := os.rects[A]
	rectB := os.rects[B]
	if rectB.Top <= rectA.Top {
		t.Fatalf("expected B below A: A=%+v B=%+v", rectA, rectB)
	}

	m.WindowDestroyed(A)
	if ws.Len() != 1 || ws.Handles[0] != B {
		t.Fatalf("after destroy, handles = %v, want [B]", ws.Handles)
	}
}

func TestScenario_MaximizeThenRestore(t *testing.T) {
	m, os := testManager()
	const A, B Handle = 1, 2
	os.show(A, 0)
	m.WindowCreated(A)
	os.show(B, 0)
	m.WindowCreated(B)

	m.WindowMinimizedOrMaximized(A)
	key := workspaceKey{Desktop: testDesktop, Monitor: 0}
	ws := m.workspaces[key]
	if ws.Len() != 1 || ws.Handles[0] != B {
		t.Fatalf("after maximize, handles = %v, want [B]", ws.Handles)
	}

	os.states[A] = classify.WindowState{HasSizebox: true, IsVisible: true}
	m.WindowCreated(A) // WINDOW_RESTORED is treated as WINDOW_CREATED

	if ws.Len() != 2 || ws.Handles[0] != A || ws.Handles[1] != B {
		t.Fatalf("after restore, handles = %v, want [A B]", ws.Handles)
	}
}

func TestScenario_ToggleWorkspaceSuppressesRetile(t *testing.T) {
	m, os := testManager()
	const A Handle = 1
	os.show(A, 0)
	m.WindowCreated(A)
	m.ForegroundWindowChanged(A)

	m.ToggleWorkspace()
	before := len(os.positions)

	const B Handle = 2
	os.show(B, 0)
	m.WindowCreated(B)
	if len(os.positions) != before {
		t.Fatalf("expected no repositions while workspace ignored, got %d new calls", len(os.positions)-before)
	}

	m.ForegroundWindowChanged(A)
	m.ToggleWorkspace()
	if len(os.positions) <= before {
		t.Fatalf("expected a re-tile after re-enabling the workspace")
	}
}

func TestAccessDeniedHandleIsPermanentlyIgnored(t *testing.T) {
	m, os := testManager()
	const A, B Handle = 1, 2
	os.show(A, 0)
	m.WindowCreated(A)
	os.denyPos[A] = true

	os.show(B, 0)
	m.WindowCreated(B)

	if !m.isIgnoredHwnd(A) {
		t.Fatalf("expected A to be permanently ignored after access-denied reposition")
	}
	key := workspaceKey{Desktop: testDesktop, Monitor: 0}
	ws := m.workspaces[key]
	if ws.IndexOf(A) != -1 {
		t.Fatalf("ignored handle should be removed from the workspace")
	}
}
