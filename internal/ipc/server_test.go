package ipc

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/1broseidon/termtile/internal/classify"
	"github.com/1broseidon/termtile/internal/daemon"
	"github.com/1broseidon/termtile/internal/geometry"
	"github.com/1broseidon/termtile/internal/platform"
	"github.com/1broseidon/termtile/internal/wm"
)

type fakeBackend struct {
	platform.Backend
	displays []platform.Display
}

func (f *fakeBackend) Displays() ([]platform.Display, error) { return f.displays, nil }

func (f *fakeBackend) ActiveDisplay() (platform.Display, error) {
	if len(f.displays) == 0 {
		return platform.Display{}, errors.New("no displays")
	}
	return f.displays[0], nil
}

func (f *fakeBackend) ListWindowsOnDisplay(displayID int) ([]platform.Window, error) {
	return nil, nil
}

func TestServer_StatusAndReload(t *testing.T) {
	socketPath := filepath.Join(t.TempDir(), "termtile.sock")

	loop := daemon.NewLoop(nil, 4)
	loopCtx, cancelLoop := context.WithCancel(context.Background())
	defer cancelLoop()
	go loop.Run(loopCtx)

	mgr := wm.New(fakeOS{}, wm.Settings{}, nil)
	mgr.Initialize([]wm.MonitorInfo{{ID: 0, Rect: fixedZone}}, nil, nil)

	backend := &fakeBackend{displays: []platform.Display{{ID: 0, Name: "eDP-1"}}}

	reloaded := make(chan struct{}, 1)
	server := NewServer(socketPath, loop, mgr, backend, func() { reloaded <- struct{}{} }, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go server.Serve(ctx)

	client := NewClient(socketPath)

	var status *StatusData
	var err error
	for i := 0; i < 50; i++ {
		status, err = client.Status()
		if err == nil {
			break
		}
		time.Sleep(10 * time.Millisecond)
	}
	if err != nil {
		t.Fatalf("Status(): %v", err)
	}
	if len(status.Monitors) != 1 || status.Monitors[0].Name != "eDP-1" {
		t.Fatalf("Status() monitors = %+v", status.Monitors)
	}
	if status.ActiveDisplay == nil || status.ActiveDisplay.Name != "eDP-1" {
		t.Fatalf("Status() active display = %+v", status.ActiveDisplay)
	}

	if err := client.Reload(); err != nil {
		t.Fatalf("Reload(): %v", err)
	}
	select {
	case <-reloaded:
	case <-time.After(time.Second):
		t.Fatal("reload callback was not invoked")
	}
}

// fixedZone and fakeOS give wm.New/Initialize enough of a no-op OS to build
// a Manager without a real X11 connection.
var fixedZone = zoneOf(0, 0, 100, 100)

type fakeOS struct{}

func (fakeOS) GetWindowDesktopID(wm.Handle) (wm.VirtualDesktopID, error) {
	return wm.VirtualDesktopID{}, errors.New("unused")
}
func (fakeOS) MonitorFromWindow(wm.Handle) (wm.MonitorID, bool)   { return 0, false }
func (fakeOS) GetForegroundWindow() (wm.Handle, bool)             { return 0, false }
func (fakeOS) SetForegroundWindow(wm.Handle) error                { return nil }
func (fakeOS) SetWindowPos(wm.Handle, geometry.Position) error    { return nil }
func (fakeOS) GetWindowRect(wm.Handle) (geometry.Zone, error)     { return geometry.Zone{}, nil }
func (fakeOS) GetDPI(wm.Handle) (uint32, error)                   { return 96, nil }
func (fakeOS) SetBorder(wm.Handle, bool, wm.Settings) error       { return nil }
func (fakeOS) IsWindow(wm.Handle) bool                            { return true }
func (fakeOS) WindowState(wm.Handle) (classify.WindowState, error) {
	return classify.WindowState{}, nil
}
func (fakeOS) Minimize(wm.Handle) error { return nil }

func zoneOf(left, top, right, bottom int) geometry.Zone {
	return geometry.Zone{Left: left, Top: top, Right: right, Bottom: bottom}
}
