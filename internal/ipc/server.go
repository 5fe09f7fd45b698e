package ipc

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net"
	"os"
	"sync"
	"time"

	"github.com/1broseidon/termtile/internal/daemon"
	"github.com/1broseidon/termtile/internal/platform"
	"github.com/1broseidon/termtile/internal/wm"
)

// Server answers GET_STATUS/RELOAD requests on a unix socket. GET_STATUS
// reads Manager state by posting a closure onto loop and waiting for the
// result, since Manager itself is single-threaded (see internal/daemon);
// RELOAD posts reload directly, fire-and-forget.
type Server struct {
	socketPath string
	loop       *daemon.Loop
	mgr        *wm.Manager
	backend    platform.Backend
	reload     func()
	logger     *slog.Logger
	startTime  time.Time

	mu       sync.Mutex
	listener net.Listener
}

// NewServer builds a Server listening at socketPath once Serve is called.
// reload is invoked (on the daemon loop, via loop.Post) for a RELOAD request.
func NewServer(socketPath string, loop *daemon.Loop, mgr *wm.Manager, backend platform.Backend, reload func(), logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		socketPath: socketPath,
		loop:       loop,
		mgr:        mgr,
		backend:    backend,
		reload:     reload,
		logger:     logger,
		startTime:  time.Now(),
	}
}

// Serve listens on the socket and accepts connections until ctx is
// cancelled, removing the socket file on the way in and out.
func (s *Server) Serve(ctx context.Context) error {
	os.Remove(s.socketPath)

	listener, err := net.Listen("unix", s.socketPath)
	if err != nil {
		return fmt.Errorf("ipc: listen on %s: %w", s.socketPath, err)
	}
	if err := os.Chmod(s.socketPath, 0600); err != nil {
		listener.Close()
		return fmt.Errorf("ipc: chmod socket: %w", err)
	}

	s.mu.Lock()
	s.listener = listener
	s.mu.Unlock()

	go func() {
		<-ctx.Done()
		listener.Close()
		os.Remove(s.socketPath)
	}()

	for {
		conn, err := listener.Accept()
		if err != nil {
			select {
			case <-ctx.Done():
				return nil
			default:
				s.logger.Warn("ipc: accept failed", "error", err)
				continue
			}
		}
		go s.handle(conn)
	}
}

func (s *Server) handle(conn net.Conn) {
	defer conn.Close()

	data, err := bufio.NewReader(conn).ReadBytes('\n')
	if err != nil && err != io.EOF {
		s.logger.Warn("ipc: read failed", "error", err)
		return
	}

	req, err := ParseRequest(data)
	if err != nil {
		s.writeResponse(conn, NewErrorResponse(err.Error()))
		return
	}

	switch req.Command {
	case CommandGetStatus:
		s.writeResponse(conn, s.handleStatus())
	case CommandReload:
		s.writeResponse(conn, s.handleReload())
	default:
		s.writeResponse(conn, NewErrorResponse(fmt.Sprintf("unknown command: %s", req.Command)))
	}
}

func (s *Server) handleStatus() *Response {
	displays, err := s.backend.Displays()
	if err != nil {
		return NewErrorResponse(fmt.Sprintf("enumerating displays: %v", err))
	}
	monitors := make([]MonitorInfo, 0, len(displays))
	for _, d := range displays {
		monitors = append(monitors, MonitorInfo{
			ID: d.ID, Name: d.Name,
			X: d.Bounds.X, Y: d.Bounds.Y,
			Width: d.Bounds.Width, Height: d.Bounds.Height,
		})
	}

	snapshot := make(chan wm.Snapshot, 1)
	s.loop.Post(func() { snapshot <- s.mgr.Snapshot() })
	snap := <-snapshot

	data := StatusData{
		UptimeSeconds:  int64(time.Since(s.startTime).Seconds()),
		Monitors:       monitors,
		Workspaces:     snap.Workspaces,
		ManagedWindows: snap.ManagedWindows,
		HasForeground:  snap.HasForeground,
	}

	if active, err := s.backend.ActiveDisplay(); err == nil {
		info := MonitorInfo{
			ID: active.ID, Name: active.Name,
			X: active.Bounds.X, Y: active.Bounds.Y,
			Width: active.Bounds.Width, Height: active.Bounds.Height,
		}
		data.ActiveDisplay = &info
		if windows, err := s.backend.ListWindowsOnDisplay(active.ID); err == nil {
			data.WindowsOnActiveDisplay = len(windows)
		}
	}
	resp, err := NewOKResponse(data)
	if err != nil {
		return NewErrorResponse(err.Error())
	}
	return resp
}

func (s *Server) handleReload() *Response {
	s.loop.Post(s.reload)
	resp, _ := NewOKResponse(nil)
	return resp
}

func (s *Server) writeResponse(conn net.Conn, resp *Response) {
	data, err := resp.Marshal()
	if err != nil {
		s.logger.Warn("ipc: marshal response failed", "error", err)
		return
	}
	data = append(data, '\n')
	if _, err := conn.Write(data); err != nil {
		s.logger.Warn("ipc: write response failed", "error", err)
	}
}
