//go:build linux

package platform

import (
	"fmt"
	"sort"
	"strings"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/icccm"

	"github.com/1broseidon/termtile/internal/classify"
	"github.com/1broseidon/termtile/internal/geometry"
	"github.com/1broseidon/termtile/internal/wm"
	"github.com/1broseidon/termtile/internal/x11"
)

// LinuxBackend wraps an X11 connection behind the platform Backend
// interface, translating domain handles/ids to and from xproto types.
type LinuxBackend struct {
	conn *x11.Connection
}

var _ Backend = (*LinuxBackend)(nil)

// NewLinuxBackend creates a Linux platform backend from an existing X11 connection.
func NewLinuxBackend(conn *x11.Connection) *LinuxBackend {
	return &LinuxBackend{conn: conn}
}

// NewLinuxBackendFromDisplay creates a new Linux backend by opening a fresh X11 connection.
func NewLinuxBackendFromDisplay() (*LinuxBackend, error) {
	conn, err := x11.NewConnection()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to X11: %w", err)
	}
	return &LinuxBackend{conn: conn}, nil
}

// Disconnect closes the underlying X11 connection.
func (b *LinuxBackend) Disconnect() {
	if b != nil && b.conn != nil {
		b.conn.Close()
	}
}

// EventLoop starts the X11 event loop (blocking).
func (b *LinuxBackend) EventLoop() {
	if b != nil && b.conn != nil {
		b.conn.EventLoop()
	}
}

// Connection exposes the underlying x11.Connection for the hotkey layer,
// which needs raw xgbutil access to register global key grabs.
func (b *LinuxBackend) Connection() *x11.Connection {
	if b == nil {
		return nil
	}
	return b.conn
}

// GetWindowDesktopID implements wm.OS.
func (b *LinuxBackend) GetWindowDesktopID(h wm.Handle) (wm.VirtualDesktopID, error) {
	return b.conn.GetWindowDesktopID(uint32(h))
}

// MonitorFromWindow implements wm.OS.
func (b *LinuxBackend) MonitorFromWindow(h wm.Handle) (wm.MonitorID, bool) {
	mon, ok := b.conn.MonitorForWindow(xproto.Window(h))
	if !ok {
		return 0, false
	}
	return wm.MonitorID(mon.ID), true
}

// GetForegroundWindow implements wm.OS.
func (b *LinuxBackend) GetForegroundWindow() (wm.Handle, bool) {
	active, err := b.conn.GetActiveWindow()
	if err != nil || active == 0 {
		return 0, false
	}
	return wm.Handle(active), true
}

// SetForegroundWindow implements wm.OS.
func (b *LinuxBackend) SetForegroundWindow(h wm.Handle) error {
	return b.conn.FocusWindow(uint32(h))
}

// SetWindowPos implements wm.OS.
func (b *LinuxBackend) SetWindowPos(h wm.Handle, p geometry.Position) error {
	return b.conn.SetWindowPosition(xproto.Window(h), p)
}

// GetWindowRect implements wm.OS.
func (b *LinuxBackend) GetWindowRect(h wm.Handle) (geometry.Zone, error) {
	return b.conn.GetWindowRect(xproto.Window(h))
}

// GetDPI implements wm.OS.
func (b *LinuxBackend) GetDPI(h wm.Handle) (uint32, error) {
	return b.conn.GetDPI(xproto.Window(h))
}

// SetBorder implements wm.OS.
func (b *LinuxBackend) SetBorder(h wm.Handle, focused bool, s wm.Settings) error {
	return b.conn.SetBorder(xproto.Window(h), focused, s.FocusedBorderColour, s.DisableUnfocusedBorder)
}

// IsWindow implements wm.OS.
func (b *LinuxBackend) IsWindow(h wm.Handle) bool {
	return b.conn.IsWindow(xproto.Window(h))
}

// WindowState implements wm.OS and classify.Query.
func (b *LinuxBackend) WindowState(h wm.Handle) (classify.WindowState, error) {
	return b.conn.WindowState(xproto.Window(h))
}

// Minimize implements wm.OS.
func (b *LinuxBackend) Minimize(h wm.Handle) error {
	return b.conn.Minimize(uint32(h))
}

// Displays returns all active displays.
func (b *LinuxBackend) Displays() ([]Display, error) {
	monitors, err := b.conn.GetMonitors()
	if err != nil {
		return nil, err
	}

	displays := make([]Display, 0, len(monitors))
	for _, m := range monitors {
		displays = append(displays, displayFromMonitor(m))
	}

	sort.Slice(displays, func(i, j int) bool {
		return displays[i].ID < displays[j].ID
	})

	return displays, nil
}

// ActiveDisplay returns the currently active display.
func (b *LinuxBackend) ActiveDisplay() (Display, error) {
	active, err := b.conn.GetActiveMonitor()
	if err != nil {
		return Display{}, err
	}
	return displayFromMonitor(*active), nil
}

// ListWindowsOnDisplay lists normal windows whose centers are inside the display bounds.
func (b *LinuxBackend) ListWindowsOnDisplay(displayID int) ([]Window, error) {
	displays, err := b.Displays()
	if err != nil {
		return nil, err
	}

	var target *Display
	for i := range displays {
		if displays[i].ID == displayID {
			target = &displays[i]
			break
		}
	}
	if target == nil {
		return nil, fmt.Errorf("display with id %d not found", displayID)
	}

	clients, err := ewmh.ClientListGet(b.conn.XUtil)
	if err != nil {
		return nil, err
	}

	currentDesktop, desktopErr := ewmh.CurrentDesktopGet(b.conn.XUtil)
	hasCurrentDesktop := desktopErr == nil

	windows := make([]Window, 0, len(clients))
	for _, windowID := range clients {
		if !b.conn.IsNormalWindow(windowID) {
			continue
		}

		if hasCurrentDesktop {
			desktop, err := ewmh.WmDesktopGet(b.conn.XUtil, windowID)
			if err == nil && desktop != uint(0xFFFFFFFF) && desktop != currentDesktop {
				continue
			}
		}

		if b.shouldSkipByState(windowID) {
			continue
		}

		rect, ok := b.windowRect(windowID)
		if !ok {
			continue
		}

		if !containsPoint(target.Bounds, rect.X+rect.Width/2, rect.Y+rect.Height/2) {
			continue
		}

		pid := 0
		if p, err := ewmh.WmPidGet(b.conn.XUtil, windowID); err == nil {
			pid = int(p)
		}

		windows = append(windows, Window{
			ID:     wm.Handle(windowID),
			PID:    pid,
			AppID:  b.windowAppID(windowID),
			Title:  b.windowTitle(windowID),
			Bounds: rect,
		})
	}

	sort.Slice(windows, func(i, j int) bool {
		return windows[i].ID < windows[j].ID
	})

	return windows, nil
}

func (b *LinuxBackend) shouldSkipByState(windowID xproto.Window) bool {
	states, err := ewmh.WmStateGet(b.conn.XUtil, windowID)
	if err != nil {
		return false
	}
	for _, state := range states {
		switch state {
		case "_NET_WM_STATE_HIDDEN", "_NET_WM_STATE_FULLSCREEN":
			return true
		}
	}
	return false
}

func displayFromMonitor(m x11.Monitor) Display {
	bounds := Rect{X: m.X, Y: m.Y, Width: m.Width, Height: m.Height}
	return Display{ID: m.ID, Name: m.Name, Bounds: bounds, Usable: bounds}
}

func containsPoint(r Rect, x, y int) bool {
	return x >= r.X && x < r.X+r.Width && y >= r.Y && y < r.Y+r.Height
}

func (b *LinuxBackend) windowRect(windowID xproto.Window) (Rect, bool) {
	z, err := b.conn.GetWindowRect(windowID)
	if err != nil {
		return Rect{}, false
	}
	return Rect{X: z.Left, Y: z.Top, Width: z.W(), Height: z.H()}, true
}

func (b *LinuxBackend) windowAppID(windowID xproto.Window) string {
	wmClass, err := icccm.WmClassGet(b.conn.XUtil, windowID)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(wmClass.Class)
}

func (b *LinuxBackend) windowTitle(windowID xproto.Window) string {
	title, err := ewmh.WmNameGet(b.conn.XUtil, windowID)
	if err == nil {
		title = strings.TrimSpace(title)
		if title != "" {
			return title
		}
	}

	title, err = icccm.WmNameGet(b.conn.XUtil, windowID)
	if err == nil {
		title = strings.TrimSpace(title)
		if title != "" {
			return title
		}
	}

	return ""
}
