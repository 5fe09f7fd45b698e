package wm

import (
	"github.com/1broseidon/termtile/internal/classify"
	"github.com/1broseidon/termtile/internal/geometry"
	"github.com/1broseidon/termtile/internal/layoutgroup"
)

// MonitorInfo is what the bootstrap caller (the concrete backend's
// enumeration) reports about one physical monitor.
type MonitorInfo struct {
	ID   MonitorID
	Rect geometry.Zone
}

// Initialize enrolls monitors and layout templates, then enumerates
// top-level windows and runs a full re-tile.
func (m *Manager) Initialize(monitors []MonitorInfo, templates []*layoutgroup.LayoutGroup, windows []Handle) {
	m.monitors = m.monitors[:0]
	for _, mon := range monitors {
		m.monitors = append(m.monitors, mon.ID)
		groups := make([]*layoutgroup.LayoutGroup, 0, len(templates))
		for _, tmpl := range templates {
			converted := tmpl.ConvertForMonitor(mon.Rect)
			if converted == nil {
				converted = tmpl.Clone()
			}
			converted.UpdateAll(m.settings.WindowPadding, m.settings.EdgePadding)
			groups = append(groups, converted)
		}
		m.layouts[mon.ID] = groups
	}

	for _, h := range windows {
		m.enrollAtBootstrap(h)
	}

	if fg, ok := m.os.GetForegroundWindow(); ok {
		if _, known := m.hwndLocations[fg]; known {
			m.foregroundHwnd = fg
			m.hasForeground = true
		}
	}

	for key := range m.workspaces {
		m.retile(key)
	}
}

func (m *Manager) enrollAtBootstrap(h Handle) {
	state, err := m.os.WindowState(h)
	if err != nil || !classify.Eligible(state) {
		return
	}
	if !state.IsVisible {
		return
	}

	desktop, err := m.os.GetWindowDesktopID(h)
	if err != nil || desktop == (VirtualDesktopID{}) {
		return
	}
	monitor, ok := m.os.MonitorFromWindow(h)
	if !ok {
		return
	}
	key := workspaceKey{Desktop: desktop, Monitor: monitor}

	if classify.IsRestored(state) {
		ws := m.getOrCreateWorkspace(key)
		idx := ws.Append(h)
		m.hwndLocations[h] = location{Desktop: desktop, Monitor: monitor, Suspended: false, Idx: idx}
	} else {
		idx := 0
		if ws, ok := m.workspaces[key]; ok {
			idx = ws.Len()
		}
		m.hwndLocations[h] = location{Desktop: desktop, Monitor: monitor, Suspended: true, Idx: idx}
		m.os.SetBorder(h, false, m.settings)
	}
}
