package wm

import (
	"github.com/1broseidon/termtile/internal/classify"
	"github.com/1broseidon/termtile/internal/geometry"
)

// WindowCreated handles a SHOW event. A window without a resize box is
// never enrolled.
func (m *Manager) WindowCreated(h Handle) {
	m.logger.Debug("wm: window_created", "handle", h)
	if m.isIgnoredHwnd(h) {
		return
	}

	loc, known := m.hwndLocations[h]
	if known && !loc.Suspended {
		return // duplicate creation
	}

	state, err := m.os.WindowState(h)
	if err != nil {
		m.logger.Warn("wm: window_created: WindowState failed", "handle", h, "error", err)
		return
	}
	if !classify.Eligible(state) {
		return
	}
	restored := classify.IsRestored(state)

	if known && loc.Suspended {
		if !restored {
			return
		}
		key := workspaceKey{Desktop: loc.Desktop, Monitor: loc.Monitor}
		ws := m.getOrCreateWorkspace(key)
		idx := loc.Idx
		if idx > ws.Len() {
			idx = ws.Len()
		}
		ws.InsertAt(idx, h)
		m.reindexWorkspace(loc.Desktop, loc.Monitor, ws)
		m.retile(key)
		return
	}

	desktop, ok := m.pollDesktopID(h)
	if !ok {
		return
	}
	monitor, ok := m.os.MonitorFromWindow(h)
	if !ok {
		return
	}
	key := workspaceKey{Desktop: desktop, Monitor: monitor}

	if restored {
		ws := m.getOrCreateWorkspace(key)
		idx := ws.Append(h)
		m.hwndLocations[h] = location{Desktop: desktop, Monitor: monitor, Suspended: false, Idx: idx}
		m.reindexWorkspace(desktop, monitor, ws)
	} else {
		idx := 0
		if ws, ok := m.workspaces[key]; ok {
			idx = ws.Len()
		}
		m.hwndLocations[h] = location{Desktop: desktop, Monitor: monitor, Suspended: true, Idx: idx}
		m.os.SetBorder(h, false, m.settings)
	}
	m.retile(key)
}

// pollDesktopID polls up to CreateRetries times for a nonzero virtual
// desktop id, the OS race between window creation and the desktop
// property being set.
func (m *Manager) pollDesktopID(h Handle) (VirtualDesktopID, bool) {
	for i := 0; i < CreateRetries; i++ {
		id, err := m.os.GetWindowDesktopID(h)
		if err == nil && id != (VirtualDesktopID{}) {
			return id, true
		}
	}
	return VirtualDesktopID{}, false
}

// WindowDestroyed handles window destruction.
func (m *Manager) WindowDestroyed(h Handle) {
	m.logger.Debug("wm: window_destroyed", "handle", h)
	if m.isIgnoredHwnd(h) {
		delete(m.ignoredHwnds, h)
		return
	}

	key, ok := m.removeHwnd(h)
	m.clearForegroundIfMatches(h)
	m.clearGrabbedIfMatches(h)
	if ok {
		m.retile(key)
	}
}

// WindowMinimizedOrMaximized handles a transition into the suspended state.
func (m *Manager) WindowMinimizedOrMaximized(h Handle) {
	m.logger.Debug("wm: window_minimized_or_maximized", "handle", h)
	loc, known := m.hwndLocations[h]
	if !known || loc.Suspended {
		return
	}

	key := workspaceKey{Desktop: loc.Desktop, Monitor: loc.Monitor}
	ws := m.workspaces[key]
	idx := ws.IndexOf(h)
	if idx >= 0 {
		ws.RemoveAt(idx)
		m.reindexWorkspace(loc.Desktop, loc.Monitor, ws)
	}
	// idx is deliberately left as its pre-suspension value: it is the slot
	// window_created will re-insert H at when it is later restored.
	loc.Suspended = true
	m.hwndLocations[h] = loc
	m.clearGrabbedIfMatches(h)
	m.retile(key)
}

// WindowCloaked handles the OS reporting a window moved to another virtual
// desktop.
func (m *Manager) WindowCloaked(h Handle) {
	m.logger.Debug("wm: window_cloaked", "handle", h)
	loc, known := m.hwndLocations[h]
	if !known {
		return
	}
	newDesktop, err := m.os.GetWindowDesktopID(h)
	if err != nil || newDesktop == loc.Desktop {
		return
	}

	oldKey := workspaceKey{Desktop: loc.Desktop, Monitor: loc.Monitor}
	newKey := workspaceKey{Desktop: newDesktop, Monitor: loc.Monitor}

	if !loc.Suspended {
		if ws, ok := m.workspaces[oldKey]; ok {
			idx := ws.IndexOf(h)
			if idx >= 0 {
				ws.RemoveAt(idx)
				m.reindexWorkspace(loc.Desktop, loc.Monitor, ws)
			}
		}
		dst := m.getOrCreateWorkspace(newKey)
		idx := dst.Append(h)
		loc.Desktop = newDesktop
		loc.Idx = idx
		m.hwndLocations[h] = loc
		m.reindexWorkspace(newDesktop, loc.Monitor, dst)
		m.retile(oldKey)
		m.retile(newKey)
		return
	}

	loc.Desktop = newDesktop
	if ws, ok := m.workspaces[newKey]; ok {
		loc.Idx = ws.Len()
	} else {
		loc.Idx = 0
	}
	m.hwndLocations[h] = loc
}

// ForegroundWindowChanged handles a focus change.
func (m *Manager) ForegroundWindowChanged(h Handle) {
	m.logger.Debug("wm: foreground_window_changed", "handle", h)
	loc, known := m.hwndLocations[h]
	if !known {
		return
	}

	m.os.SetBorder(h, true, m.settings)
	if m.hasForeground && m.foregroundHwnd != h {
		m.os.SetBorder(m.foregroundHwnd, false, m.settings)
	}
	m.foregroundHwnd = h
	m.hasForeground = true

	state, err := m.os.WindowState(h)
	if err != nil || !classify.IsRestored(state) {
		return
	}

	for other, otherLoc := range m.hwndLocations {
		if other == h {
			continue
		}
		if otherLoc.Desktop != loc.Desktop || otherLoc.Monitor != loc.Monitor {
			continue
		}
		if !otherLoc.Suspended {
			continue
		}
		otherState, err := m.os.WindowState(other)
		if err != nil || otherState.IsIconic {
			continue
		}
		m.os.Minimize(other)
	}
}

// WindowMoveFinished handles the user finishing a drag/resize.
func (m *Manager) WindowMoveFinished(h Handle) {
	m.logger.Debug("wm: window_move_finished", "handle", h)
	loc, known := m.hwndLocations[h]
	if !known {
		return
	}

	newMonitor, ok := m.os.MonitorFromWindow(h)
	if !ok {
		return
	}

	if loc.Suspended {
		loc.Monitor = newMonitor
		key := workspaceKey{Desktop: loc.Desktop, Monitor: newMonitor}
		if ws, ok := m.workspaces[key]; ok {
			loc.Idx = ws.Len()
		} else {
			loc.Idx = 0
		}
		m.hwndLocations[h] = loc
		return
	}

	rect, err := m.os.GetWindowRect(h)
	if err != nil {
		return
	}

	oldKey := workspaceKey{Desktop: loc.Desktop, Monitor: loc.Monitor}
	monitorChanged := newMonitor != loc.Monitor

	if !monitorChanged {
		oldWs := m.workspaces[oldKey]
		active := m.activeLayout(oldWs, loc.Monitor)
		if active != nil && active.PositionsLen() > loc.Idx {
			cur := active.GetPositionsAt(oldWs.Len() - 1)[loc.Idx]
			if positionEqualsRect(cur, rect) {
				return // pure internal noop
			}
		}
	}

	newKey := workspaceKey{Desktop: loc.Desktop, Monitor: newMonitor}
	_, dstExisted := m.workspaces[newKey]
	dstWs := m.getOrCreateWorkspace(newKey)
	if !dstExisted && monitorChanged {
		oldWs := m.workspaces[oldKey]
		idx := oldWs.IndexOf(h)
		if idx >= 0 {
			oldWs.RemoveAt(idx)
			m.reindexWorkspace(loc.Desktop, loc.Monitor, oldWs)
		}
		loc.Monitor = newMonitor
		loc.Idx = dstWs.Append(h)
		m.hwndLocations[h] = loc
		m.reindexWorkspace(loc.Desktop, newMonitor, dstWs)
		m.retile(oldKey)
		m.retile(newKey)
		return
	}

	headCount := dstWs.Len()
	if monitorChanged {
		headCount++
	}
	active := m.activeLayout(dstWs, newMonitor)
	targetIdx := loc.Idx
	if monitorChanged {
		targetIdx = dstWs.Len()
	}
	if active != nil {
		active.EnsurePositions(headCount, m.settings.WindowPadding, m.settings.EdgePadding)
		positions := active.GetPositionsAt(headCount - 1)
		bestOverlap := -1
		for i, p := range positions {
			if monitorChanged && i >= dstWs.Len() {
				continue
			}
			overlap := overlapArea(p, rect)
			if overlap > bestOverlap {
				bestOverlap = overlap
				targetIdx = i
			}
			if overlap == rect.W()*rect.H() {
				break
			}
		}
	}

	if monitorChanged {
		oldWs := m.workspaces[oldKey]
		oldIdx := oldWs.IndexOf(h)
		m.moveWindowsAcrossMonitors(loc.Desktop, loc.Monitor, newMonitor, oldIdx, targetIdx)
		m.retile(oldKey)
		m.retile(newKey)
		return
	}

	if targetIdx != loc.Idx {
		m.swapWindows(oldKey, loc.Idx, targetIdx)
	}
	m.retile(oldKey)
}

func positionEqualsRect(p geometry.Position, rect geometry.Zone) bool {
	return p.X == rect.Left && p.Y == rect.Top && p.CX == rect.W() && p.CY == rect.H()
}

// overlapArea computes the intersection area of a Position (treated as a
// rect at (X,Y) sized CX x CY) and a Zone.
func overlapArea(p geometry.Position, rect geometry.Zone) int {
	x1 := maxInt(p.X, rect.Left)
	y1 := maxInt(p.Y, rect.Top)
	x2 := minInt(p.X+p.CX, rect.Right)
	y2 := minInt(p.Y+p.CY, rect.Bottom)
	if x2 <= x1 || y2 <= y1 {
		return 0
	}
	return (x2 - x1) * (y2 - y1)
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
