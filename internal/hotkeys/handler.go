// Package hotkeys binds global X11 key sequences to wm.Manager commands.
package hotkeys

import (
	"sync"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/keybind"
	"github.com/BurntSushi/xgbutil/xevent"

	"github.com/1broseidon/termtile/internal/x11"
)

// Commands is the subset of wm.Manager's method surface the hotkey layer
// dispatches to. A narrow interface here keeps this package from depending
// on internal/wm directly.
type Commands interface {
	FocusPrevious()
	FocusNext()
	SwapPrevious()
	SwapNext()
	VariantPrevious()
	VariantNext()
	LayoutPrevious()
	LayoutNext()
	FocusPreviousMonitor()
	FocusNextMonitor()
	SwapPreviousMonitor()
	SwapNextMonitor()
	GrabWindow()
	ReleaseWindow()
	RefreshWorkspace()
	ToggleWorkspace()
}

// Bindings maps each command to the key sequence that triggers it (e.g.
// "Mod4-j"), in xgbutil's keybind string syntax. A zero-value entry leaves
// that command unbound.
type Bindings struct {
	FocusPrevious        string
	FocusNext            string
	SwapPrevious         string
	SwapNext             string
	VariantPrevious      string
	VariantNext          string
	LayoutPrevious       string
	LayoutNext           string
	FocusPreviousMonitor string
	FocusNextMonitor     string
	SwapPreviousMonitor  string
	SwapNextMonitor      string
	GrabWindow           string
	ReleaseWindow        string
	RefreshWorkspace     string
	ToggleWorkspace      string
}

// Handler manages global keyboard shortcuts bound to Commands.
type Handler struct {
	xu   *xgbutil.XUtil
	root xproto.Window
}

var ignoreModsOnce sync.Once

// NewHandler creates a hotkey handler over an existing X11 connection.
func NewHandler(conn *x11.Connection) *Handler {
	ignoreModsOnce.Do(func() {
		configureIgnoreMods(conn.XUtil)
	})
	return &Handler{xu: conn.XUtil, root: conn.Root}
}

// RegisterAll binds every non-empty sequence in b to its Commands method.
// Registration stops and returns the first error encountered.
func (h *Handler) RegisterAll(cmds Commands, b Bindings) error {
	pairs := []struct {
		seq string
		fn  func()
	}{
		{b.FocusPrevious, cmds.FocusPrevious},
		{b.FocusNext, cmds.FocusNext},
		{b.SwapPrevious, cmds.SwapPrevious},
		{b.SwapNext, cmds.SwapNext},
		{b.VariantPrevious, cmds.VariantPrevious},
		{b.VariantNext, cmds.VariantNext},
		{b.LayoutPrevious, cmds.LayoutPrevious},
		{b.LayoutNext, cmds.LayoutNext},
		{b.FocusPreviousMonitor, cmds.FocusPreviousMonitor},
		{b.FocusNextMonitor, cmds.FocusNextMonitor},
		{b.SwapPreviousMonitor, cmds.SwapPreviousMonitor},
		{b.SwapNextMonitor, cmds.SwapNextMonitor},
		{b.GrabWindow, cmds.GrabWindow},
		{b.ReleaseWindow, cmds.ReleaseWindow},
		{b.RefreshWorkspace, cmds.RefreshWorkspace},
		{b.ToggleWorkspace, cmds.ToggleWorkspace},
	}

	for _, p := range pairs {
		if p.seq == "" {
			continue
		}
		if err := h.RegisterFunc(p.seq, p.fn); err != nil {
			return err
		}
	}
	return nil
}

// RegisterFunc registers an arbitrary hotkey callback.
func (h *Handler) RegisterFunc(keySequence string, callback func()) error {
	return keybind.KeyPressFun(func(xu *xgbutil.XUtil, ev xevent.KeyPressEvent) {
		callback()
	}).Connect(h.xu, h.root, keySequence, true)
}

func configureIgnoreMods(xu *xgbutil.XUtil) {
	// Always ignore CapsLock.
	caps := uint16(xproto.ModMaskLock)

	numLock := modMaskForKeysym(xu, "Num_Lock")
	scrollLock := modMaskForKeysym(xu, "Scroll_Lock")

	unique := make(map[uint16]struct{})
	add := func(mask uint16) {
		unique[mask] = struct{}{}
	}

	add(0)
	base := []uint16{caps}
	if numLock != 0 && numLock != caps {
		base = append(base, numLock)
	}
	if scrollLock != 0 && scrollLock != caps && scrollLock != numLock {
		base = append(base, scrollLock)
	}

	for subset := 1; subset < (1 << len(base)); subset++ {
		var mask uint16
		for bit := range base {
			if subset&(1<<bit) != 0 {
				mask |= base[bit]
			}
		}
		add(mask)
	}

	ignore := make([]uint16, 0, len(unique))
	for mask := range unique {
		ignore = append(ignore, mask)
	}

	xevent.IgnoreMods = ignore
}

func modMaskForKeysym(xu *xgbutil.XUtil, keysym string) uint16 {
	for _, keycode := range keybind.StrToKeycodes(xu, keysym) {
		if mask := keybind.ModGet(xu, keycode); mask != 0 {
			return mask
		}
	}
	return 0
}
