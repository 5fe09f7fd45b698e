// Package platform adapts a concrete window-system connection to the
// dispatcher's OS contract (internal/wm.OS), plus a small read-only
// inspection surface the CLI uses for status reporting.
package platform

import (
	"github.com/1broseidon/termtile/internal/wm"
)

// Rect describes a rectangular region in screen coordinates.
type Rect struct {
	X      int
	Y      int
	Width  int
	Height int
}

// Display describes a physical display. Usable is the area windows are tiled
// into; the Linux backend sets it equal to Bounds (panels and docks are not
// subtracted).
type Display struct {
	ID     int
	Name   string
	Bounds Rect
	Usable Rect
}

// Window contains metadata and geometry for a top-level window, used by the
// "tilewmd status" inspection subcommand.
type Window struct {
	ID     wm.Handle
	PID    int
	AppID  string
	Title  string
	Bounds Rect
}

// Backend is the OS contract the dispatcher drives windows through, plus a
// read-only inspection surface. Component G (internal/x11) provides the
// underlying connection; a Backend wraps it per-platform.
type Backend interface {
	wm.OS

	Displays() ([]Display, error)
	ActiveDisplay() (Display, error)
	ListWindowsOnDisplay(displayID int) ([]Window, error)
}
