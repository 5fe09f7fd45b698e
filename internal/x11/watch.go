package x11

import (
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/xevent"
	"github.com/BurntSushi/xgbutil/xprop"
)

// Watcher is the set of callbacks the dispatcher wants invoked for root-level
// window lifecycle and focus changes. Every callback runs on the xgbutil
// event goroutine; callers post them onto their own single-threaded loop
// (see internal/daemon.Loop) rather than acting on them directly.
type Watcher struct {
	OnCreate          func(windowID xproto.Window)
	OnDestroy         func(windowID xproto.Window)
	OnActiveChanged   func(windowID xproto.Window)
	OnWmStateChanged  func(windowID xproto.Window)
	OnDesktopChanged  func(windowID xproto.Window)
	OnConfigureNotify func(windowID xproto.Window)
}

func atomOrZero(xu *xgbutil.XUtil, name string) xproto.Atom {
	id, err := xprop.Atm(xu, name)
	if err != nil {
		return 0
	}
	return xproto.Atom(id)
}

// Watch subscribes w's callbacks to the root window's substructure and
// property-change events. Call once, after NewConnection and before
// EventLoop. Per-window property notifications (state, desktop) require the
// caller to also call WatchWindow for each window it manages, since X11 only
// delivers PropertyNotify to clients selecting events on that window.
func (c *Connection) Watch(w Watcher) error {
	root := c.Root

	if err := xproto.ChangeWindowAttributesChecked(
		c.XUtil.Conn(), root, xproto.CwEventMask,
		[]uint32{xproto.EventMaskSubstructureNotify | xproto.EventMaskPropertyChange},
	).Check(); err != nil {
		return err
	}

	activeWindowAtom := atomOrZero(c.XUtil, "_NET_ACTIVE_WINDOW")

	xevent.CreateNotifyFun(func(xu *xgbutil.XUtil, ev xevent.CreateNotifyEvent) {
		if w.OnCreate != nil {
			w.OnCreate(ev.Window)
		}
	}).Connect(c.XUtil, root)

	xevent.DestroyNotifyFun(func(xu *xgbutil.XUtil, ev xevent.DestroyNotifyEvent) {
		if w.OnDestroy != nil {
			w.OnDestroy(ev.Window)
		}
	}).Connect(c.XUtil, root)

	xevent.PropertyNotifyFun(func(xu *xgbutil.XUtil, ev xevent.PropertyNotifyEvent) {
		if ev.Atom != activeWindowAtom || w.OnActiveChanged == nil {
			return
		}
		active, err := ewmh.ActiveWindowGet(xu)
		if err == nil {
			w.OnActiveChanged(active)
		}
	}).Connect(c.XUtil, root)

	return nil
}

// WatchWindow subscribes w's per-window callbacks (state/desktop changes,
// and the configure events that signal a drag/resize finished) to windowID.
// Windows are destroyed out from under us constantly; a failed attribute
// change just means the window is already gone and the caller's Reconciler
// will notice on its next tick.
func (c *Connection) WatchWindow(windowID xproto.Window, w Watcher) {
	_ = xproto.ChangeWindowAttributesChecked(
		c.XUtil.Conn(), windowID, xproto.CwEventMask,
		[]uint32{xproto.EventMaskPropertyChange | xproto.EventMaskStructureNotify},
	).Check()

	stateAtom := atomOrZero(c.XUtil, "_NET_WM_STATE")
	desktopAtom := atomOrZero(c.XUtil, "_NET_WM_DESKTOP")

	xevent.PropertyNotifyFun(func(xu *xgbutil.XUtil, ev xevent.PropertyNotifyEvent) {
		switch ev.Atom {
		case stateAtom:
			if w.OnWmStateChanged != nil {
				w.OnWmStateChanged(windowID)
			}
		case desktopAtom:
			if w.OnDesktopChanged != nil {
				w.OnDesktopChanged(windowID)
			}
		}
	}).Connect(c.XUtil, windowID)

	xevent.ConfigureNotifyFun(func(xu *xgbutil.XUtil, ev xevent.ConfigureNotifyEvent) {
		if w.OnConfigureNotify != nil {
			w.OnConfigureNotify(windowID)
		}
	}).Connect(c.XUtil, windowID)
}

// EnumerateTopLevelWindows lists the windows EWMH's _NET_CLIENT_LIST
// reports, for the dispatcher's bootstrap scan.
func (c *Connection) EnumerateTopLevelWindows() ([]xproto.Window, error) {
	return ewmh.ClientListGet(c.XUtil)
}
