package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/bubbletea"
	"github.com/muesli/termenv"

	"github.com/vovakirdan/tui-chapters/internal/audio"
	"github.com/vovakirdan/tui-chapters/internal/config"
	"github.com/vovakirdan/tui-chapters/internal/storage"
)

// IdleTimeout is how long to wait before closing idle connections.
const IdleTimeout = 30 * time.Minute

// SSHServer wraps a Wish SSH server that gives every session its own hub.
type SSHServer struct {
	settings config.Settings
	server   *ssh.Server
	store    *storage.Store
	logger   *log.Logger

	mu   sync.Mutex
	hubs map[ssh.Session]*HubModel
}

// NewSSHServer creates a new SSH server. The store may be nil.
func NewSSHServer(settings config.Settings, store *storage.Store, logger *log.Logger) (*SSHServer, error) {
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "chapters-ssh",
		})
	}

	srv := &SSHServer{
		settings: settings,
		store:    store,
		logger:   logger,
		hubs:     make(map[ssh.Session]*HubModel),
	}

	hostKeyPath, err := config.ExpandHome(settings.SSH.HostKey)
	if err != nil {
		return nil, err
	}
	if hostKeyPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("cannot get home directory: %w", err)
		}
		hostKeyPath = filepath.Join(home, ".chapters", "host_key")
	}

	// Ensure host key directory exists
	if err := os.MkdirAll(filepath.Dir(hostKeyPath), 0o700); err != nil {
		return nil, fmt.Errorf("cannot create host key directory: %w", err)
	}

	server, err := wish.NewServer(
		wish.WithAddress(settings.SSH.Addr),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithIdleTimeout(IdleTimeout),
		wish.WithMiddleware(
			bubbletea.MiddlewareWithColorProfile(srv.teaHandler, termenv.TrueColor),
			activeterm.Middleware(),
			srv.sessionMiddleware,
		),
	)
	if err != nil {
		return nil, fmt.Errorf("cannot create SSH server: %w", err)
	}

	srv.server = server
	return srv, nil
}

// teaHandler creates an isolated hub for each SSH session. Remote readers
// get no chime.
func (s *SSHServer) teaHandler(sess ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, _ := sess.Pty()

	hub := NewHubModel(Options{
		Settings: s.settings,
		Logger:   s.logger.With("user", sess.User()),
		Store:    s.store,
		Chime:    audio.Nop{},
		Session:  fmt.Sprintf("%s@%s", sess.User(), sess.RemoteAddr()),
		Width:    pty.Window.Width,
		Height:   pty.Window.Height,
	})

	s.mu.Lock()
	s.hubs[sess] = hub
	s.mu.Unlock()

	return hub, []tea.ProgramOption{
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	}
}

// sessionMiddleware logs session events and releases the session's hub
// once its program has exited.
func (s *SSHServer) sessionMiddleware(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		s.logger.Info("session started",
			"user", sess.User(),
			"remote", sess.RemoteAddr().String(),
		)
		next(sess)

		s.mu.Lock()
		hub := s.hubs[sess]
		delete(s.hubs, sess)
		s.mu.Unlock()
		if hub != nil {
			hub.Close()
		}

		s.logger.Info("session ended",
			"user", sess.User(),
			"remote", sess.RemoteAddr().String(),
		)
	}
}

// Sessions returns the number of live sessions.
func (s *SSHServer) Sessions() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.hubs)
}

// ListenAndServe starts the SSH server and blocks until shutdown.
func (s *SSHServer) ListenAndServe() error {
	s.logger.Info("starting SSH server", "address", s.settings.SSH.Addr)

	// Setup signal handling for graceful shutdown
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			s.logger.Error("server error", "error", err)
		}
	}()

	<-done
	s.logger.Info("shutting down...")
	return s.Shutdown()
}

// Shutdown gracefully stops the server.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.server.Shutdown(ctx)
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return s.settings.SSH.Addr
}
