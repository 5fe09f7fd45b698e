// Command tilewmd is the termtile daemon: it connects to the X11 display,
// loads configuration, and drives internal/wm.Manager from OS window events
// and global hotkeys until it receives a termination signal.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/1broseidon/termtile/internal/config"
	"github.com/1broseidon/termtile/internal/daemon"
	"github.com/1broseidon/termtile/internal/hotkeys"
	"github.com/1broseidon/termtile/internal/ipc"
	"github.com/1broseidon/termtile/internal/platform"
	"github.com/1broseidon/termtile/internal/runtimepath"
	"github.com/1broseidon/termtile/internal/wm"
)

// main dispatches by subcommand, mirroring the host repo's cmd/termtile CLI
// shape: "daemon" (the default) runs the dispatcher; "status" and "reload"
// are short-lived clients that talk to an already-running daemon over its
// control socket.
func main() {
	sub := "daemon"
	args := os.Args[1:]
	if len(args) > 0 && len(args[0]) > 0 && args[0][0] != '-' {
		sub = args[0]
		args = args[1:]
	}

	switch sub {
	case "daemon":
		mainDaemon(args)
	case "status":
		mainStatus(args)
	case "reload":
		mainReload(args)
	default:
		fmt.Fprintf(os.Stderr, "termtile: unknown subcommand %q (want daemon, status, reload)\n", sub)
		os.Exit(2)
	}
}

func mainDaemon(args []string) {
	fs := flag.NewFlagSet("tilewmd daemon", flag.ContinueOnError)
	path := fs.String("config", "", "Config file path (default: ~/.config/termtile/config.yaml)")
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			os.Exit(0)
		}
		os.Exit(2)
	}

	cfg, err := loadConfig(*path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "termtile: %v\n", err)
		os.Exit(1)
	}

	logger := newLogger(cfg.LogLevel)

	backend, err := platform.NewLinuxBackendFromDisplay()
	if err != nil {
		logger.Error("failed to connect to X11 display", "error", err)
		os.Exit(1)
	}

	if err := run(backend, cfg, logger); err != nil {
		logger.Error("termtile daemon exited", "error", err)
		os.Exit(1)
	}
}

func socketPathOrExit() string {
	path, err := runtimepath.SocketPath()
	if err != nil {
		fmt.Fprintf(os.Stderr, "termtile: %v\n", err)
		os.Exit(1)
	}
	return path
}

func mainStatus(args []string) {
	client := ipc.NewClient(socketPathOrExit())
	status, err := client.Status()
	if err != nil {
		fmt.Fprintf(os.Stderr, "termtile: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("uptime: %ds\n", status.UptimeSeconds)
	fmt.Printf("workspaces: %d  managed windows: %d  foreground: %v\n",
		status.Workspaces, status.ManagedWindows, status.HasForeground)
	for _, m := range status.Monitors {
		fmt.Printf("monitor %d (%s): %dx%d at (%d,%d)\n", m.ID, m.Name, m.Width, m.Height, m.X, m.Y)
	}
	if status.ActiveDisplay != nil {
		fmt.Printf("active display: %s (%d windows)\n", status.ActiveDisplay.Name, status.WindowsOnActiveDisplay)
	}
}

func mainReload(args []string) {
	client := ipc.NewClient(socketPathOrExit())
	if err := client.Reload(); err != nil {
		fmt.Fprintf(os.Stderr, "termtile: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("reload requested")
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFromPath(path)
	}
	return config.Load()
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}

// run wires the manager, the X11 backend, hotkeys, and the reconciler onto a
// single daemon.Loop and blocks until ctx is cancelled by a signal.
func run(backend *platform.LinuxBackend, cfg *config.Config, logger *slog.Logger) error {
	groups, err := config.BuildLayoutGroups(cfg.LayoutGroups)
	if err != nil {
		return fmt.Errorf("building layout groups: %w", err)
	}

	settings := wm.Settings{
		DefaultLayoutIdx:       cfg.DefaultLayoutIdx,
		WindowPadding:          cfg.WindowPadding,
		EdgePadding:            cfg.EdgePadding,
		DisableRounding:        cfg.DisableRounding,
		DisableUnfocusedBorder: cfg.DisableUnfocusedBorder,
		FocusedBorderColour:    cfg.BorderColour(),
	}

	mgr := wm.New(backend, settings, logger)

	displays, err := backend.Displays()
	if err != nil {
		return fmt.Errorf("enumerating displays: %w", err)
	}
	monitors := make([]wm.MonitorInfo, 0, len(displays))
	for _, d := range displays {
		monitors = append(monitors, wm.MonitorInfo{
			ID:   wm.MonitorID(d.ID),
			Rect: geometryZone(d),
		})
	}

	conn := backend.Connection()
	loop := daemon.NewLoop(logger, 64)

	rawWindows, err := conn.EnumerateTopLevelWindows()
	if err != nil {
		return fmt.Errorf("enumerating windows: %w", err)
	}
	windows := make([]wm.Handle, 0, len(rawWindows))
	for _, w := range rawWindows {
		windows = append(windows, wm.Handle(w))
		conn.WatchWindow(w, perWindowWatcher(loop, mgr, w))
	}

	mgr.Initialize(monitors, groups, windows)
	logger.Info("termtile initialized", "monitors", len(monitors), "windows", len(windows))

	if err := conn.Watch(rootWatcher(loop, mgr, conn)); err != nil {
		return fmt.Errorf("subscribing to root window events: %w", err)
	}

	handler := hotkeys.NewHandler(conn)
	hotkeyCmds := loopCommands{loop: loop, mgr: mgr}
	if err := handler.RegisterAll(hotkeyCmds, cfg.Hotkeys); err != nil {
		return fmt.Errorf("registering hotkeys: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go loop.Run(ctx)

	reconciler := daemon.NewReconciler(daemon.ReconcilerConfig{
		Interval: 10 * time.Second,
		Logger:   logger,
	}, loop, func() { mgr.RefreshWorkspace() })
	go reconciler.Run(ctx)

	if socketPath, err := runtimepath.SocketPath(); err != nil {
		logger.Warn("control socket unavailable, status/reload subcommands won't work", "error", err)
	} else {
		server := ipc.NewServer(socketPath, loop, mgr, backend, func() { mgr.RefreshWorkspace() }, logger)
		go func() {
			if err := server.Serve(ctx); err != nil {
				logger.Warn("ipc server exited", "error", err)
			}
		}()
	}

	go func() {
		<-ctx.Done()
		backend.Disconnect()
	}()

	logger.Info("entering event loop")
	backend.EventLoop()
	return nil
}

// loopCommands adapts wm.Manager's command methods to hotkeys.Commands,
// posting each invocation onto the daemon loop rather than calling the
// manager directly from the xgbutil keybind goroutine.
type loopCommands struct {
	loop *daemon.Loop
	mgr  *wm.Manager
}

func (c loopCommands) FocusPrevious()        { c.loop.Post(c.mgr.FocusPrevious) }
func (c loopCommands) FocusNext()            { c.loop.Post(c.mgr.FocusNext) }
func (c loopCommands) SwapPrevious()         { c.loop.Post(c.mgr.SwapPrevious) }
func (c loopCommands) SwapNext()             { c.loop.Post(c.mgr.SwapNext) }
func (c loopCommands) VariantPrevious()      { c.loop.Post(c.mgr.VariantPrevious) }
func (c loopCommands) VariantNext()          { c.loop.Post(c.mgr.VariantNext) }
func (c loopCommands) LayoutPrevious()       { c.loop.Post(c.mgr.LayoutPrevious) }
func (c loopCommands) LayoutNext()           { c.loop.Post(c.mgr.LayoutNext) }
func (c loopCommands) FocusPreviousMonitor() { c.loop.Post(c.mgr.FocusPreviousMonitor) }
func (c loopCommands) FocusNextMonitor()     { c.loop.Post(c.mgr.FocusNextMonitor) }
func (c loopCommands) SwapPreviousMonitor()  { c.loop.Post(c.mgr.SwapPreviousMonitor) }
func (c loopCommands) SwapNextMonitor()      { c.loop.Post(c.mgr.SwapNextMonitor) }
func (c loopCommands) GrabWindow()           { c.loop.Post(c.mgr.GrabWindow) }
func (c loopCommands) ReleaseWindow()        { c.loop.Post(c.mgr.ReleaseWindow) }
func (c loopCommands) RefreshWorkspace()     { c.loop.Post(c.mgr.RefreshWorkspace) }
func (c loopCommands) ToggleWorkspace()      { c.loop.Post(c.mgr.ToggleWorkspace) }
