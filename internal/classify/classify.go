// Package classify holds the pure predicates that decide which windows the
// manager touches and whether a touched window is currently tileable.
package classify

import "github.com/1broseidon/termtile/internal/workspace"

// WindowState is the minimal set of OS-reported window attributes the
// classifier predicates need. Backends (component G) produce this; the
// core never queries the OS directly.
type WindowState struct {
	HasSizebox bool
	IsIconic   bool
	IsZoomed   bool
	IsArranged bool
	IsVisible  bool
}

// HasSizebox reports whether a window has a resizable frame. Windows
// without one are never enrolled, under any event.
func HasSizebox(s WindowState) bool {
	return s.HasSizebox
}

// IsRestored reports whether a window is simultaneously not iconic, not
// zoomed (maximized), not arranged (snapped), and visible.
func IsRestored(s WindowState) bool {
	return !s.IsIconic && !s.IsZoomed && !s.IsArranged && s.IsVisible
}

// Eligible reports whether a window should ever be considered by the
// manager: it must have a resize box, full stop.
func Eligible(s WindowState) bool {
	return HasSizebox(s)
}

// Query is the read side of the OS boundary the classifier needs.
// Implemented by component G's concrete backend.
type Query interface {
	WindowState(h workspace.Handle) (WindowState, error)
}
