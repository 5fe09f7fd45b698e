package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/google/uuid"
)

// desktopNamespace roots the deterministic virtual-desktop ids DesktopID
// derives from an EWMH desktop index, so the same desktop keeps the same id
// across daemon restarts on the same display.
var desktopNamespace = uuid.MustParse("2a1e6c3e-9b7d-4f1a-8c2e-6f6d9b9a6e21")

// DesktopID mints (or returns the cached) opaque virtual-desktop id for an
// EWMH desktop index. The dispatcher treats virtual desktops as 128-bit
// opaque ids; X11 only has a small integer, so this is the bridge.
func (c *Connection) DesktopID(index int) uuid.UUID {
	if id, ok := c.desktopIDs[index]; ok {
		return id
	}
	id := uuid.NewSHA1(desktopNamespace, []byte(fmt.Sprintf("%s/%d", c.displayName, index)))
	c.desktopIDs[index] = id
	return id
}

// GetWindowDesktopID returns windowID's virtual desktop as an opaque id,
// resolving sticky windows (those on every desktop) to the current one.
func (c *Connection) GetWindowDesktopID(windowID uint32) (uuid.UUID, error) {
	idx, err := c.GetWindowDesktop(windowID)
	if err != nil {
		return uuid.UUID{}, err
	}
	if idx < 0 {
		idx, err = c.GetCurrentDesktop()
		if err != nil {
			return uuid.UUID{}, err
		}
	}
	return c.DesktopID(idx), nil
}

// Minimize iconifies windowID via the ICCCM WM_CHANGE_STATE client message.
func (c *Connection) Minimize(windowID uint32) error {
	atomReply, err := xproto.InternAtom(c.XUtil.Conn(), false,
		uint16(len("WM_CHANGE_STATE")), "WM_CHANGE_STATE").Reply()
	if err != nil {
		return fmt.Errorf("failed to intern WM_CHANGE_STATE: %w", err)
	}

	const iconicState = 3
	ev := xproto.ClientMessageEvent{
		Format: 32,
		Window: xproto.Window(windowID),
		Type:   atomReply.Atom,
		Data:   xproto.ClientMessageDataUnionData32New([]uint32{iconicState, 0, 0, 0, 0}),
	}

	return xproto.SendEventChecked(
		c.XUtil.Conn(),
		false,
		c.Root,
		xproto.EventMaskSubstructureRedirect|xproto.EventMaskSubstructureNotify,
		string(ev.Bytes()),
	).Check()
}

// GetCurrentDesktop returns the current virtual desktop number (0-indexed).
// Uses _NET_CURRENT_DESKTOP atom. Returns 0 with an error if detection fails.
func (c *Connection) GetCurrentDesktop() (int, error) {
	desktop, err := ewmh.CurrentDesktopGet(c.XUtil)
	if err != nil {
		return 0, fmt.Errorf("failed to get current desktop: %w", err)
	}
	return int(desktop), nil
}

// GetWindowDesktop returns the desktop number a window is on.
// Uses _NET_WM_DESKTOP atom. Returns -1 for "sticky" windows (visible on all desktops).
// Returns 0 with an error if detection fails.
func (c *Connection) GetWindowDesktop(windowID uint32) (int, error) {
	desktop, err := ewmh.WmDesktopGet(c.XUtil, xproto.Window(windowID))
	if err != nil {
		return 0, fmt.Errorf("failed to get window desktop: %w", err)
	}
	// 0xFFFFFFFF means the window is on all desktops (sticky)
	if desktop == 0xFFFFFFFF {
		return -1, nil
	}
	return int(desktop), nil
}

// FocusWindow activates and raises a window using _NET_ACTIVE_WINDOW.
// Sends a client message to the root window per EWMH spec. We build the
// message manually because the xgbutil ewmh helpers panic on this library
// version.
func (c *Connection) FocusWindow(windowID uint32) error {
	atomReply, err := xproto.InternAtom(c.XUtil.Conn(), false,
		uint16(len("_NET_ACTIVE_WINDOW")), "_NET_ACTIVE_WINDOW").Reply()
	if err != nil {
		return fmt.Errorf("failed to intern _NET_ACTIVE_WINDOW: %w", err)
	}

	const sourceIndication = 2 // pager/direct action
	ev := xproto.ClientMessageEvent{
		Format: 32,
		Window: xproto.Window(windowID),
		Type:   atomReply.Atom,
		Data:   xproto.ClientMessageDataUnionData32New([]uint32{sourceIndication, 0, 0, 0, 0}),
	}

	return xproto.SendEventChecked(
		c.XUtil.Conn(),
		false,
		c.Root,
		xproto.EventMaskSubstructureRedirect|xproto.EventMaskSubstructureNotify,
		string(ev.Bytes()),
	).Check()
}

