package main

import (
	"github.com/BurntSushi/xgb/xproto"

	"github.com/1broseidon/termtile/internal/daemon"
	"github.com/1broseidon/termtile/internal/geometry"
	"github.com/1broseidon/termtile/internal/platform"
	"github.com/1broseidon/termtile/internal/wm"
	"github.com/1broseidon/termtile/internal/x11"
)

func geometryZone(d platform.Display) geometry.Zone {
	return geometry.Zone{
		Left:   d.Usable.X,
		Top:    d.Usable.Y,
		Right:  d.Usable.X + d.Usable.Width,
		Bottom: d.Usable.Y + d.Usable.Height,
	}
}

// rootWatcher turns root-window X11 events into posts onto loop. A newly
// created window is also subscribed to its own per-window property events,
// since X11 only delivers those to a client that selected them on that
// specific window.
func rootWatcher(loop *daemon.Loop, mgr *wm.Manager, conn *x11.Connection) x11.Watcher {
	return x11.Watcher{
		OnCreate: func(windowID xproto.Window) {
			conn.WatchWindow(windowID, perWindowWatcher(loop, mgr, windowID))
			loop.Post(func() { mgr.WindowCreated(wm.Handle(windowID)) })
		},
		OnDestroy: func(windowID xproto.Window) {
			loop.Post(func() { mgr.WindowDestroyed(wm.Handle(windowID)) })
		},
		OnActiveChanged: func(windowID xproto.Window) {
			loop.Post(func() { mgr.ForegroundWindowChanged(wm.Handle(windowID)) })
		},
	}
}

func perWindowWatcher(loop *daemon.Loop, mgr *wm.Manager, windowID xproto.Window) x11.Watcher {
	return x11.Watcher{
		OnWmStateChanged: func(windowID xproto.Window) {
			loop.Post(func() { mgr.WindowMinimizedOrMaximized(wm.Handle(windowID)) })
		},
		OnDesktopChanged: func(windowID xproto.Window) {
			loop.Post(func() { mgr.WindowCloaked(wm.Handle(windowID)) })
		},
		OnConfigureNotify: func(windowID xproto.Window) {
			loop.TryPost(func() { mgr.WindowMoveFinished(wm.Handle(windowID)) })
		},
	}
}
