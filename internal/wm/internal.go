package wm

import "github.com/1broseidon/termtile/internal/workspace"

// retile re-tiles the workspace at key if it exists; a no-op on an absent
// workspace (nothing has ever enrolled there).
func (m *Manager) retile(key workspaceKey) {
	if _, ok := m.workspaces[key]; !ok {
		return
	}
	m.updateWorkspace(key)
}

// updateWorkspace is the sole placement primitive. It ensures the
// active layout has enough tilings, repositions every handle in order, and
// evicts any handle the OS refuses to reposition, re-tiling once more with
// the smaller set.
func (m *Manager) updateWorkspace(key workspaceKey) {
	if m.isIgnoredCombination(key) {
		return
	}
	ws, ok := m.workspaces[key]
	if !ok || ws.Empty() {
		return
	}

	active := m.activeLayout(ws, key.Monitor)
	if active == nil {
		m.logger.Warn("wm: no active layout for workspace", "monitor", key.Monitor)
		return
	}

	active.EnsurePositions(ws.Len(), m.settings.WindowPadding, m.settings.EdgePadding)
	positions := active.GetPositionsAt(ws.Len() - 1)

	var failed []int
	var lastFailure error
	for i, h := range ws.Handles {
		if err := m.os.SetWindowPos(h, positions[i]); err != nil {
			m.logger.Warn("wm: SetWindowPos failed", "handle", h, "error", err)
			failed = append(failed, i)
			lastFailure = err
		}
	}

	if len(failed) == 0 {
		return
	}

	if isAccessDenied(lastFailure) {
		for _, i := range failed {
			m.ignoredHwnds[ws.Handles[i]] = struct{}{}
		}
	}
	for i := len(failed) - 1; i >= 0; i-- {
		idx := failed[i]
		delete(m.hwndLocations, ws.Handles[idx])
		ws.RemoveAt(idx)
	}
	m.reindexWorkspace(key.Desktop, key.Monitor, ws)
	m.updateWorkspace(key)
}

// swapWindows exchanges positions i and j in the workspace at key and keeps
// hwnd_locations coherent.
func (m *Manager) swapWindows(key workspaceKey, i, j int) {
	if i == j {
		return
	}
	ws := m.workspaces[key]
	ws.Swap(i, j)
	for _, idx := range [2]int{i, j} {
		h := ws.Handles[idx]
		loc := m.hwndLocations[h]
		loc.Idx = idx
		m.hwndLocations[h] = loc
	}
}

// moveWindowsAcrossMonitors removes handles[i] from workspace(g,m1), appends
// it to workspace(g,m2), then swaps it into position j there.
func (m *Manager) moveWindowsAcrossMonitors(desktop VirtualDesktopID, m1, m2 MonitorID, i, j int) {
	srcKey := workspaceKey{Desktop: desktop, Monitor: m1}
	dstKey := workspaceKey{Desktop: desktop, Monitor: m2}

	src := m.workspaces[srcKey]
	h := src.Handles[i]
	src.RemoveAt(i)
	m.reindexWorkspace(desktop, m1, src)

	dst := m.getOrCreateWorkspace(dstKey)
	loc := m.hwndLocations[h]
	loc.Desktop = desktop
	loc.Monitor = m2
	loc.Idx = len(dst.Handles)
	m.hwndLocations[h] = loc
	dst.Append(h)

	last := len(dst.Handles) - 1
	m.swapWindows(dstKey, j, last)
}

// removeHwnd drops h from whichever workspace currently holds it (if tiled)
// and from hwnd_locations, re-establishing the invariant for the remainder.
func (m *Manager) removeHwnd(h Handle) (workspaceKey, bool) {
	loc, ok := m.hwndLocations[h]
	if !ok {
		return workspaceKey{}, false
	}
	delete(m.hwndLocations, h)

	key := workspaceKey{Desktop: loc.Desktop, Monitor: loc.Monitor}
	if !loc.Suspended {
		if ws, ok := m.workspaces[key]; ok {
			idx := ws.IndexOf(h)
			if idx >= 0 {
				ws.RemoveAt(idx)
				m.reindexWorkspace(loc.Desktop, loc.Monitor, ws)
			}
		}
	}
	return key, true
}

func (m *Manager) clearForegroundIfMatches(h Handle) {
	if m.hasForeground && m.foregroundHwnd == h {
		m.hasForeground = false
	}
}

func (m *Manager) clearGrabbedIfMatches(h Handle) {
	if m.hasGrabbed && m.grabbedWindow == h {
		m.hasGrabbed = false
	}
}

func (m *Manager) foregroundWorkspaceKey() (workspaceKey, *workspace.Workspace, bool) {
	if !m.hasForeground {
		return workspaceKey{}, nil, false
	}
	loc, ok := m.hwndLocations[m.foregroundHwnd]
	if !ok || loc.Suspended {
		return workspaceKey{}, nil, false
	}
	key := workspaceKey{Desktop: loc.Desktop, Monitor: loc.Monitor}
	ws, ok := m.workspaces[key]
	if !ok {
		return workspaceKey{}, nil, false
	}
	return key, ws, true
}
