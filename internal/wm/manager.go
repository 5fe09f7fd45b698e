// Package wm is the reactive core: a single-threaded event dispatcher that
// ingests OS-classified window events, maintains the workspace/location
// invariant described in the data model, and drives the layout engine to
// reposition managed windows.
package wm

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/1broseidon/termtile/internal/classify"
	"github.com/1broseidon/termtile/internal/geometry"
	"github.com/1broseidon/termtile/internal/layout"
	"github.com/1broseidon/termtile/internal/layoutgroup"
	"github.com/1broseidon/termtile/internal/workspace"
)

// Handle identifies a top-level window. Handles are compared by identity;
// the manager never dereferences them.
type Handle = workspace.Handle

// VirtualDesktopID is the OS's opaque 128-bit virtual desktop identifier.
type VirtualDesktopID = uuid.UUID

// MonitorID identifies a physical monitor for the lifetime of a session.
type MonitorID int

// CreateRetries bounds the poll for a newly created window's virtual
// desktop id before the manager gives up enrolling it.
const CreateRetries = 100

// Settings are the user-tunable tiling parameters.
type Settings struct {
	DefaultLayoutIdx       int
	WindowPadding          int
	EdgePadding            int
	DisableRounding        bool
	DisableUnfocusedBorder bool
	FocusedBorderColour    uint32
}

type workspaceKey struct {
	Desktop VirtualDesktopID
	Monitor MonitorID
}

// location is the hwnd_locations reverse-index entry for one handle.
type location struct {
	Desktop   VirtualDesktopID
	Monitor   MonitorID
	Suspended bool
	Idx       int
}

// OSError wraps an OS-reported failure code (e.g. Windows' ERROR_ACCESS_DENIED = 5).
type OSError struct {
	Code int
	Err  error
}

func (e *OSError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("os error %d: %v", e.Code, e.Err)
	}
	return fmt.Sprintf("os error %d", e.Code)
}

func (e *OSError) Unwrap() error { return e.Err }

// AccessDeniedCode is the OS failure code that permanently blacklists a handle.
const AccessDeniedCode = 5

func isAccessDenied(err error) bool {
	var oe *OSError
	return errors.As(err, &oe) && oe.Code == AccessDeniedCode
}

// OS is the contract the dispatcher calls against real windows. Component G
// (the concrete X11 backend) implements this; the dispatcher never touches
// the OS directly.
type OS interface {
	GetWindowDesktopID(h Handle) (VirtualDesktopID, error)
	MonitorFromWindow(h Handle) (MonitorID, bool)
	GetForegroundWindow() (Handle, bool)
	SetForegroundWindow(h Handle) error
	SetWindowPos(h Handle, p geometry.Position) error
	GetWindowRect(h Handle) (geometry.Zone, error)
	GetDPI(h Handle) (uint32, error)
	SetBorder(h Handle, focused bool, s Settings) error
	IsWindow(h Handle) bool
	WindowState(h Handle) (classify.WindowState, error)
	Minimize(h Handle) error
}

// Manager is the dispatcher: the sole owner of all workspace/location state.
// Every exported method must be called from a single goroutine; the manager
// performs no internal synchronization.
type Manager struct {
	os       OS
	logger   *slog.Logger
	settings Settings

	monitors []MonitorID
	layouts  map[MonitorID][]*layoutgroup.LayoutGroup

	workspaces    map[workspaceKey]*workspace.Workspace
	hwndLocations map[Handle]location

	foregroundHwnd Handle
	hasForeground  bool

	grabbedWindow Handle
	hasGrabbed    bool

	ignoredCombinations map[workspaceKey]struct{}
	ignoredHwnds        map[Handle]struct{}
}

// New constructs an empty Manager. Call Initialize before driving events.
func New(os OS, settings Settings, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{
		os:                  os,
		logger:              logger,
		settings:            settings,
		layouts:             make(map[MonitorID][]*layoutgroup.LayoutGroup),
		workspaces:          make(map[workspaceKey]*workspace.Workspace),
		hwndLocations:       make(map[Handle]location),
		ignoredCombinations: make(map[workspaceKey]struct{}),
		ignoredHwnds:        make(map[Handle]struct{}),
	}
}

// Snapshot reports point-in-time counts for status reporting. Like every
// other Manager method it must be called from the dispatcher goroutine.
type Snapshot struct {
	Monitors       int
	Workspaces     int
	ManagedWindows int
	HasForeground  bool
	ForegroundHwnd Handle
}

func (m *Manager) Snapshot() Snapshot {
	return Snapshot{
		Monitors:       len(m.monitors),
		Workspaces:     len(m.workspaces),
		ManagedWindows: len(m.hwndLocations),
		HasForeground:  m.hasForeground,
		ForegroundHwnd: m.foregroundHwnd,
	}
}

func (m *Manager) isIgnoredHwnd(h Handle) bool {
	_, ok := m.ignoredHwnds[h]
	return ok
}

func (m *Manager) isIgnoredCombination(key workspaceKey) bool {
	_, ok := m.ignoredCombinations[key]
	return ok
}

func (m *Manager) getOrCreateWorkspace(key workspaceKey) *workspace.Workspace {
	ws, ok := m.workspaces[key]
	if ok {
		return ws
	}
	ws = workspace.New(m.settings.DefaultLayoutIdx, m.defaultVariantIdx(key.Monitor, m.settings.DefaultLayoutIdx))
	m.workspaces[key] = ws
	return ws
}

func (m *Manager) defaultVariantIdx(monitor MonitorID, layoutIdx int) int {
	groups := m.layouts[monitor]
	if layoutIdx < 0 || layoutIdx >= len(groups) {
		return 0
	}
	return groups[layoutIdx].DefaultIdx
}

func (m *Manager) activeLayoutGroup(ws *workspace.Workspace, monitor MonitorID) *layoutgroup.LayoutGroup {
	groups := m.layouts[monitor]
	if ws.LayoutIdx < 0 || ws.LayoutIdx >= len(groups) {
		return nil
	}
	return groups[ws.LayoutIdx]
}

func (m *Manager) activeLayout(ws *workspace.Workspace, monitor MonitorID) *layout.Layout {
	group := m.activeLayoutGroup(ws, monitor)
	if group == nil {
		return nil
	}
	if ws.VariantIdx < 0 || ws.VariantIdx >= len(group.Layouts) {
		return nil
	}
	return group.Layouts[ws.VariantIdx]
}

// reindexWorkspace rewrites the hwnd_locations entry of every handle in ws
// to (desktop, monitor, not suspended, its current position),
// re-establishing the location invariant after a slice insertion/removal.
func (m *Manager) reindexWorkspace(desktop VirtualDesktopID, monitor MonitorID, ws *workspace.Workspace) {
	for i, h := range ws.Handles {
		loc := m.hwndLocations[h]
		loc.Desktop = desktop
		loc.Monitor = monitor
		loc.Suspended = false
		loc.Idx = i
		m.hwndLocations[h] = loc
	}
}
