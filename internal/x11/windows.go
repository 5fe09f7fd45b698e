package x11

import (
	"fmt"
	"strconv"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/icccm"
	"github.com/BurntSushi/xgbutil/xwindow"

	"github.com/1broseidon/termtile/internal/classify"
	"github.com/1broseidon/termtile/internal/geometry"
)

// MoveResizeWindow moves and resizes a window to the specified geometry
func (c *Connection) MoveResizeWindow(windowID xproto.Window, x, y, width, height int) error {
	// First, check if window is maximized and unmaximize it
	if err := c.unmaximizeWindow(windowID); err != nil {
		// Log but don't fail - some windows might not support this
	}

	// Create xwindow wrapper
	win := xwindow.New(c.XUtil, windowID)

	// Use EWMH MoveResize for better WM compatibility
	err := ewmh.MoveresizeWindow(
		c.XUtil,
		windowID,
		x, y, width, height,
	)

	if err != nil {
		// Fallback to direct window manipulation
		win.MoveResize(x, y, width, height)
		return nil
	}

	return nil
}

// unmaximizeWindow removes maximized state from a window
func (c *Connection) unmaximizeWindow(windowID xproto.Window) error {
	// Get current window states
	states, err := ewmh.WmStateGet(c.XUtil, windowID)
	if err != nil {
		return err
	}

	// Check if window is maximized
	hasMaxH := false
	hasMaxV := false

	for _, state := range states {
		if state == "_NET_WM_STATE_MAXIMIZED_HORZ" {
			hasMaxH = true
		}
		if state == "_NET_WM_STATE_MAXIMIZED_VERT" {
			hasMaxV = true
		}
	}

	// Remove maximized states if present
	if hasMaxH || hasMaxV {
		// Request state removal
		if hasMaxH {
			ewmh.WmStateReq(c.XUtil, windowID, 0, "_NET_WM_STATE_MAXIMIZED_HORZ")
		}
		if hasMaxV {
			ewmh.WmStateReq(c.XUtil, windowID, 0, "_NET_WM_STATE_MAXIMIZED_VERT")
		}
	}

	return nil
}

// GetFrameExtents returns the window decoration sizes (if available)
func (c *Connection) GetFrameExtents(windowID xproto.Window) (left, right, top, bottom int, err error) {
	extents, err := ewmh.FrameExtentsGet(c.XUtil, windowID)
	if err != nil {
		// No frame extents available, return zeros
		return 0, 0, 0, 0, nil
	}

	return int(extents.Left), int(extents.Right), int(extents.Top), int(extents.Bottom), nil
}

// IsNormalWindow checks if a window is a normal application window
func (c *Connection) IsNormalWindow(windowID xproto.Window) bool {
	types, err := ewmh.WmWindowTypeGet(c.XUtil, windowID)
	if err != nil {
		// If we can't determine type, assume it's normal
		return true
	}

	// Check for normal window type
	for _, t := range types {
		if t == "_NET_WM_WINDOW_TYPE_NORMAL" {
			return true
		}
		// Reject desktop, dock, splash, etc.
		if t == "_NET_WM_WINDOW_TYPE_DESKTOP" ||
			t == "_NET_WM_WINDOW_TYPE_DOCK" ||
			t == "_NET_WM_WINDOW_TYPE_SPLASH" ||
			t == "_NET_WM_WINDOW_TYPE_NOTIFICATION" {
			return false
		}
	}

	// If no specific type is set, assume it's normal
	return len(types) == 0
}

func (c *Connection) GetActiveWindow() (xproto.Window, error) {
	return ewmh.ActiveWindowGet(c.XUtil)
}

// SetWindowPosition applies a computed tiling placement. p's coordinates are
// already border/edge-compensated (see internal/geometry.ToPosition).
func (c *Connection) SetWindowPosition(windowID xproto.Window, p geometry.Position) error {
	return c.MoveResizeWindow(windowID, p.X, p.Y, p.CX, p.CY)
}

// GetWindowRect returns windowID's current on-screen rectangle, in root
// window coordinates.
func (c *Connection) GetWindowRect(windowID xproto.Window) (geometry.Zone, error) {
	geom, err := xproto.GetGeometry(c.XUtil.Conn(), xproto.Drawable(windowID)).Reply()
	if err != nil {
		return geometry.Zone{}, fmt.Errorf("failed to get window geometry: %w", err)
	}
	translate, err := xproto.TranslateCoordinates(c.XUtil.Conn(), windowID, c.Root, 0, 0).Reply()
	if err != nil {
		return geometry.Zone{}, fmt.Errorf("failed to translate window coordinates: %w", err)
	}
	x := int(translate.DstX)
	y := int(translate.DstY)
	return geometry.Zone{
		Left: x, Top: y,
		Right: x + int(geom.Width), Bottom: y + int(geom.Height),
	}, nil
}

// GetDPI returns the X screen's DPI, derived from the root screen's physical
// size. X11 exposes one DPI per screen, not per monitor or per window; the
// windowID parameter exists to satisfy the OS contract uniformly with
// per-window backends.
func (c *Connection) GetDPI(windowID xproto.Window) (uint32, error) {
	screen := c.XUtil.Screen()
	if screen == nil || screen.WidthInMillimeters == 0 {
		return 96, nil
	}
	dpi := uint32(float64(screen.WidthInPixels) * 25.4 / float64(screen.WidthInMillimeters))
	if dpi == 0 {
		return 96, nil
	}
	return dpi, nil
}

// IsWindow reports whether windowID still names a window the X server
// knows about.
func (c *Connection) IsWindow(windowID xproto.Window) bool {
	_, err := xproto.GetGeometry(c.XUtil.Conn(), xproto.Drawable(windowID)).Reply()
	return err == nil
}

// WindowState queries the attributes the classifier predicates need:
// resizability (WM_NORMAL_HINTS), iconic/maximized/viewable state
// (_NET_WM_STATE and the core MapState).
func (c *Connection) WindowState(windowID xproto.Window) (classify.WindowState, error) {
	var s classify.WindowState

	attrs, err := xproto.GetWindowAttributes(c.XUtil.Conn(), windowID).Reply()
	if err != nil {
		return s, fmt.Errorf("failed to get window attributes: %w", err)
	}
	s.IsVisible = attrs.MapState == xproto.MapStateViewable

	hints, err := icccm.WmNormalHintsGet(c.XUtil, windowID)
	if err == nil {
		s.HasSizebox = hints.MaxWidth == 0 || hints.MaxHeight == 0 ||
			hints.MaxWidth != hints.MinWidth || hints.MaxHeight != hints.MinHeight
	} else {
		s.HasSizebox = true // no hints at all: assume freely resizable
	}

	states, err := ewmh.WmStateGet(c.XUtil, windowID)
	if err == nil {
		var maxH, maxV bool
		for _, st := range states {
			switch st {
			case "_NET_WM_STATE_HIDDEN":
				s.IsIconic = true
			case "_NET_WM_STATE_MAXIMIZED_HORZ":
				maxH = true
			case "_NET_WM_STATE_MAXIMIZED_VERT":
				maxV = true
			}
		}
		s.IsZoomed = maxH && maxV
		s.IsArranged = maxH != maxV
	}

	return s, nil
}

// SetBorder colours windowID's decoration to reflect focus, using colour as
// a 0xRRGGBB packed value. disableUnfocused suppresses the border entirely
// when focused is false.
func (c *Connection) SetBorder(windowID xproto.Window, focused bool, colour uint32, disableUnfocused bool) error {
	if !focused && disableUnfocused {
		return xproto.ConfigureWindowChecked(c.XUtil.Conn(), windowID,
			xproto.ConfigWindowBorderWidth, []uint32{0}).Check()
	}

	width := uint32(2)
	if err := xproto.ConfigureWindowChecked(c.XUtil.Conn(), windowID,
		xproto.ConfigWindowBorderWidth, []uint32{width}).Check(); err != nil {
		return fmt.Errorf("failed to set border width: %w", err)
	}
	if !focused {
		return nil
	}
	return xproto.ChangeWindowAttributesChecked(c.XUtil.Conn(), windowID,
		xproto.CwBorderPixel, []uint32{colour}).Check()
}

// ParseBorderColour parses a "#RRGGBB" or "RRGGBB" string into the packed
// form SetBorder expects.
func ParseBorderColour(s string) (uint32, error) {
	s = stripHashPrefix(s)
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid border colour %q: %w", s, err)
	}
	return uint32(v), nil
}

func stripHashPrefix(s string) string {
	if len(s) > 0 && s[0] == '#' {
		return s[1:]
	}
	return s
}
