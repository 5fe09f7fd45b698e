package hotkeys

import (
	"os"
	"testing"

	"github.com/1broseidon/termtile/internal/x11"
)

type fakeCommands struct {
	calls []string
}

func (f *fakeCommands) FocusPrevious()        { f.calls = append(f.calls, "FocusPrevious") }
func (f *fakeCommands) FocusNext()            { f.calls = append(f.calls, "FocusNext") }
func (f *fakeCommands) SwapPrevious()         { f.calls = append(f.calls, "SwapPrevious") }
func (f *fakeCommands) SwapNext()             { f.calls = append(f.calls, "SwapNext") }
func (f *fakeCommands) VariantPrevious()      { f.calls = append(f.calls, "VariantPrevious") }
func (f *fakeCommands) VariantNext()          { f.calls = append(f.calls, "VariantNext") }
func (f *fakeCommands) LayoutPrevious()       { f.calls = append(f.calls, "LayoutPrevious") }
func (f *fakeCommands) LayoutNext()           { f.calls = append(f.calls, "LayoutNext") }
func (f *fakeCommands) FocusPreviousMonitor() { f.calls = append(f.calls, "FocusPreviousMonitor") }
func (f *fakeCommands) FocusNextMonitor()     { f.calls = append(f.calls, "FocusNextMonitor") }
func (f *fakeCommands) SwapPreviousMonitor()  { f.calls = append(f.calls, "SwapPreviousMonitor") }
func (f *fakeCommands) SwapNextMonitor()      { f.calls = append(f.calls, "SwapNextMonitor") }
func (f *fakeCommands) GrabWindow()           { f.calls = append(f.calls, "GrabWindow") }
func (f *fakeCommands) ReleaseWindow()        { f.calls = append(f.calls, "ReleaseWindow") }
func (f *fakeCommands) RefreshWorkspace()     { f.calls = append(f.calls, "RefreshWorkspace") }
func (f *fakeCommands) ToggleWorkspace()      { f.calls = append(f.calls, "ToggleWorkspace") }

var _ Commands = (*fakeCommands)(nil)

func requireConnection(t *testing.T) *x11.Connection {
	t.Helper()
	if os.Getenv("DISPLAY") == "" {
		t.Skip("no X11 display available")
	}
	conn, err := x11.NewConnection()
	if err != nil {
		t.Skipf("could not connect to X11 display: %v", err)
	}
	t.Cleanup(conn.Close)
	return conn
}

func TestRegisterAll_SkipsEmptyBindings(t *testing.T) {
	conn := requireConnection(t)
	h := NewHandler(conn)
	cmds := &fakeCommands{}

	// Only FocusNext is bound; every other zero-value sequence must be
	// skipped rather than passed to RegisterFunc.
	err := h.RegisterAll(cmds, Bindings{FocusNext: "Mod4-k"})
	if err != nil {
		t.Fatalf("RegisterAll: %v", err)
	}
}

func TestRegisterAll_PropagatesFirstRegistrationError(t *testing.T) {
	conn := requireConnection(t)
	h := NewHandler(conn)
	cmds := &fakeCommands{}

	err := h.RegisterAll(cmds, Bindings{FocusPrevious: "not-a-valid-key-sequence"})
	if err == nil {
		t.Fatalf("expected an error for an invalid key sequence")
	}
}
