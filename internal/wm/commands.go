package wm

// The sixteen hotkey-layer commands.

// FocusPrevious moves focus to the previous window in the foreground's
// workspace, with wrap-around.
func (m *Manager) FocusPrevious() { m.focusNeighbour(-1) }

// FocusNext moves focus to the next window in the foreground's workspace,
// with wrap-around.
func (m *Manager) FocusNext() { m.focusNeighbour(1) }

func (m *Manager) focusNeighbour(delta int) {
	_, ws, ok := m.foregroundWorkspaceKey()
	if !ok || ws.Len() <= 1 {
		return
	}
	loc := m.hwndLocations[m.foregroundHwnd]
	n := ws.Len()
	next := ((loc.Idx+delta)%n + n) % n
	m.forceForeground(ws.Handles[next])
}

func (m *Manager) forceForeground(h Handle) {
	if err := m.os.SetForegroundWindow(h); err != nil {
		m.logger.Warn("wm: SetForegroundWindow failed", "handle", h, "error", err)
		return
	}
	m.ForegroundWindowChanged(h)
}

// SwapPrevious swaps the foreground window with its predecessor and re-tiles.
func (m *Manager) SwapPrevious() { m.swapNeighbour(-1) }

// SwapNext swaps the foreground window with its successor and re-tiles.
func (m *Manager) SwapNext() { m.swapNeighbour(1) }

func (m *Manager) swapNeighbour(delta int) {
	key, ws, ok := m.foregroundWorkspaceKey()
	if !ok || ws.Len() <= 1 {
		return
	}
	if m.isIgnoredCombination(key) {
		return
	}
	loc := m.hwndLocations[m.foregroundHwnd]
	n := ws.Len()
	next := ((loc.Idx+delta)%n + n) % n
	m.swapWindows(key, loc.Idx, next)
	m.retile(key)
}

// VariantPrevious cycles to the previous variant of the active layout,
// without wrap. A layout with only one variant is a no-op.
func (m *Manager) VariantPrevious() { m.cycleVariant(-1) }

// VariantNext cycles to the next variant of the active layout, without wrap.
func (m *Manager) VariantNext() { m.cycleVariant(1) }

func (m *Manager) cycleVariant(delta int) {
	key, ws, ok := m.foregroundWorkspaceKey()
	if !ok {
		return
	}
	group := m.activeLayoutGroup(ws, key.Monitor)
	if group == nil || len(group.Layouts) <= 1 {
		return
	}
	next := ws.VariantIdx + delta
	if next < 0 || next >= len(group.Layouts) {
		return
	}
	ws.VariantIdx = next
	m.retile(key)
}

// LayoutPrevious cycles to the previous layout on the foreground's monitor,
// with wrap, resetting the variant to that layout's default.
func (m *Manager) LayoutPrevious() { m.cycleLayout(-1) }

// LayoutNext cycles to the next layout, with wrap.
func (m *Manager) LayoutNext() { m.cycleLayout(1) }

func (m *Manager) cycleLayout(delta int) {
	key, ws, ok := m.foregroundWorkspaceKey()
	if !ok {
		return
	}
	groups := m.layouts[key.Monitor]
	if len(groups) == 0 {
		return
	}
	n := len(groups)
	ws.LayoutIdx = ((ws.LayoutIdx+delta)%n + n) % n
	ws.VariantIdx = groups[ws.LayoutIdx].DefaultIdx
	m.retile(key)
}

// FocusPreviousMonitor moves focus to the previous monitor's (same desktop)
// workspace, if it has any managed windows.
func (m *Manager) FocusPreviousMonitor() { m.focusMonitorNeighbour(-1) }

// FocusNextMonitor moves focus to the next monitor's workspace.
func (m *Manager) FocusNextMonitor() { m.focusMonitorNeighbour(1) }

func (m *Manager) focusMonitorNeighbour(delta int) {
	if len(m.monitors) <= 1 || !m.hasForeground {
		return
	}
	loc, ok := m.hwndLocations[m.foregroundHwnd]
	if !ok {
		return
	}
	idx := m.monitorIndex(loc.Monitor)
	if idx < 0 {
		return
	}
	n := len(m.monitors)
	target := m.monitors[((idx+delta)%n+n)%n]
	ws, ok := m.workspaces[workspaceKey{Desktop: loc.Desktop, Monitor: target}]
	if !ok || ws.Empty() {
		return
	}
	m.forceForeground(ws.Handles[0])
}

func (m *Manager) monitorIndex(id MonitorID) int {
	for i, mid := range m.monitors {
		if mid == id {
			return i
		}
	}
	return -1
}

// SwapPreviousMonitor moves the foreground window to the previous
// non-ignored monitor's workspace.
func (m *Manager) SwapPreviousMonitor() { m.swapMonitorNeighbour(-1) }

// SwapNextMonitor moves the foreground window to the next non-ignored
// monitor's workspace.
func (m *Manager) SwapNextMonitor() { m.swapMonitorNeighbour(1) }

func (m *Manager) swapMonitorNeighbour(delta int) {
	if len(m.monitors) <= 1 || !m.hasForeground {
		return
	}
	loc, ok := m.hwndLocations[m.foregroundHwnd]
	if !ok || loc.Suspended {
		return
	}
	idx := m.monitorIndex(loc.Monitor)
	if idx < 0 {
		return
	}

	h := m.foregroundHwnd
	n := len(m.monitors)
	for hop := 1; hop <= n; hop++ {
		target := m.monitors[((idx+delta*hop)%n+n)%n]
		key := workspaceKey{Desktop: loc.Desktop, Monitor: target}
		if m.isIgnoredCombination(key) {
			continue
		}

		beforeDPI, _ := m.os.GetDPI(h)

		oldKey := workspaceKey{Desktop: loc.Desktop, Monitor: loc.Monitor}
		oldWs := m.workspaces[oldKey]
		oldIdx := oldWs.IndexOf(h)
		dst := m.getOrCreateWorkspace(key)
		m.moveWindowsAcrossMonitors(loc.Desktop, loc.Monitor, target, oldIdx, dst.Len())

		m.retile(oldKey)
		m.retile(key)
		m.dpiCompensate(h, key, beforeDPI)
		return
	}
}

// dpiCompensate re-issues SetWindowPos with the freshly tiled geometry if
// the handle's DPI changed, working around the OS emitting a spurious
// resize at DPI transitions.
func (m *Manager) dpiCompensate(h Handle, key workspaceKey, beforeDPI uint32) {
	afterDPI, err := m.os.GetDPI(h)
	if err != nil || afterDPI == beforeDPI {
		return
	}
	ws, ok := m.workspaces[key]
	if !ok {
		return
	}
	idx := ws.IndexOf(h)
	if idx < 0 {
		return
	}
	active := m.activeLayout(ws, key.Monitor)
	if active == nil || active.PositionsLen() < ws.Len() {
		return
	}
	positions := active.GetPositionsAt(ws.Len() - 1)
	if err := m.os.SetWindowPos(h, positions[idx]); err != nil {
		m.logger.Warn("wm: dpi-compensation SetWindowPos failed", "handle", h, "error", err)
	}
}

// GrabWindow remembers the current foreground handle for a subsequent
// ReleaseWindow, provided it is tiled (not suspended).
func (m *Manager) GrabWindow() {
	if !m.hasForeground {
		return
	}
	loc, ok := m.hwndLocations[m.foregroundHwnd]
	if !ok || loc.Suspended {
		return
	}
	m.grabbedWindow = m.foregroundHwnd
	m.hasGrabbed = true
}

// ReleaseWindow places the grabbed window at the current foreground
// window's slot, on the same or a different monitor.
func (m *Manager) ReleaseWindow() {
	if !m.hasGrabbed || !m.hasForeground || m.grabbedWindow == m.foregroundHwnd {
		return
	}
	grabbedLoc, ok := m.hwndLocations[m.grabbedWindow]
	if !ok || grabbedLoc.Suspended {
		m.hasGrabbed = false
		return
	}
	fgLoc, ok := m.hwndLocations[m.foregroundHwnd]
	if !ok || fgLoc.Suspended || fgLoc.Desktop != grabbedLoc.Desktop {
		return
	}
	fgKey := workspaceKey{Desktop: fgLoc.Desktop, Monitor: fgLoc.Monitor}
	if m.isIgnoredCombination(fgKey) {
		return
	}

	grabbed := m.grabbedWindow
	if grabbedLoc.Monitor == fgLoc.Monitor {
		m.swapWindows(fgKey, grabbedLoc.Idx, fgLoc.Idx)
		m.retile(fgKey)
	} else {
		beforeDPI, _ := m.os.GetDPI(grabbed)
		oldKey := workspaceKey{Desktop: grabbedLoc.Desktop, Monitor: grabbedLoc.Monitor}
		m.moveWindowsAcrossMonitors(grabbedLoc.Desktop, grabbedLoc.Monitor, fgLoc.Monitor, grabbedLoc.Idx, fgLoc.Idx)
		m.retile(oldKey)
		m.retile(fgKey)
		m.dpiCompensate(grabbed, fgKey, beforeDPI)
	}

	m.forceForeground(grabbed)
	m.hasGrabbed = false
}

// RefreshWorkspace synthesizes destroy events for handles the OS no longer
// recognizes as windows, scoped to the foreground's workspace.
func (m *Manager) RefreshWorkspace() {
	_, ws, ok := m.foregroundWorkspaceKey()
	if !ok {
		return
	}
	var stale []Handle
	for _, h := range ws.Handles {
		if !m.os.IsWindow(h) {
			stale = append(stale, h)
		}
	}
	for _, h := range stale {
		m.WindowDestroyed(h)
	}
}

// ToggleWorkspace toggles whether the manager tiles the foreground's
// (desktop, monitor) workspace at all.
func (m *Manager) ToggleWorkspace() {
	if !m.hasForeground {
		return
	}
	loc, ok := m.hwndLocations[m.foregroundHwnd]
	if !ok {
		return
	}
	key := workspaceKey{Desktop: loc.Desktop, Monitor: loc.Monitor}
	if m.isIgnoredCombination(key) {
		delete(m.ignoredCombinations, key)
		m.retile(key)
	} else {
		m.ignoredCombinations[key] = struct{}{}
	}
}
