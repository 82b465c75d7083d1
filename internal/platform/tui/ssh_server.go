package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/bubbletea"

	"github.com/vovakirdan/arcade-world/internal/core"
	"github.com/vovakirdan/arcade-world/internal/logging"
	"github.com/vovakirdan/arcade-world/internal/registry"
	"github.com/vovakirdan/arcade-world/internal/storage"
)

const (
	defaultHostKey  = "~/.arcade/host_key"
	shutdownTimeout = 10 * time.Second
)

// SSHServerConfig configures the multi-user world server.
type SSHServerConfig struct {
	Address     string        // host:port to listen on
	HostKeyPath string        // generated on first start when missing; empty means ~/.arcade/host_key
	DBPath      string        // shared scores database
	IdleTimeout time.Duration // idle connections are closed after this
	FPS         int           // redraw rate of each session
	LogLevel    string
	Options     registry.Options // passed to every game factory
}

// DefaultSSHServerConfig returns the defaults used by `hub serve`.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":23234",
		DBPath:      "~/.arcade/scores.db",
		IdleTimeout: 30 * time.Minute,
		FPS:         30,
		LogLevel:    "info",
	}
}

// SSHServer gives every SSH connection its own world session. All
// sessions share one score store.
type SSHServer struct {
	config SSHServerConfig
	server *ssh.Server
	store  *storage.Store
	logger *log.Logger
	active atomic.Int64
}

// NewSSHServer prepares the server without listening yet. A database that
// cannot be opened only disables score keeping.
func NewSSHServer(cfg SSHServerConfig) (*SSHServer, error) {
	logger := logging.New(os.Stderr, "arcade-ssh", cfg.LogLevel)

	keyPath, err := hostKeyPath(cfg.HostKeyPath)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(keyPath), 0o700); err != nil {
		return nil, fmt.Errorf("tui: cannot create host key directory: %w", err)
	}

	store, err := storage.Open(cfg.DBPath)
	if err != nil {
		logger.Warn("scores disabled", "db", cfg.DBPath, "error", err)
	}

	srv := &SSHServer{config: cfg, store: store, logger: logger}
	// Middlewares run last to first: sessions are logged, then checked for
	// a terminal, then handed to Bubble Tea.
	server, err := wish.NewServer(
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(keyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			activeterm.Middleware(),
			srv.sessionLog,
		),
	)
	if err != nil {
		srv.closeStore()
		return nil, fmt.Errorf("tui: cannot create SSH server: %w", err)
	}
	srv.server = server
	return srv, nil
}

// hostKeyPath expands ~ and applies the default location.
func hostKeyPath(p string) (string, error) {
	if p == "" {
		p = defaultHostKey
	}
	if !strings.HasPrefix(p, "~") {
		return p, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("tui: cannot get home directory: %w", err)
	}
	return filepath.Join(home, p[1:]), nil
}

func (s *SSHServer) teaHandler(sess ssh.Session) (tea.Model, []tea.ProgramOption) {
	// activeterm rejects sessions without a PTY before this runs.
	pty, _, _ := sess.Pty()
	user := sess.User()

	env := Env{
		Store:   s.store,
		Logger:  s.logger.With("user", user),
		Options: s.config.Options,
		Ctx:     sess.Context(),
	}
	cfg := core.RuntimeConfig{
		ScreenW:  pty.Window.Width,
		ScreenH:  pty.Window.Height,
		TickRate: s.config.FPS,
	}
	model, err := NewSessionModel(env, cfg, user)
	if err != nil {
		s.logger.Error("could not start session", "user", user, "error", err)
		wish.Fatalln(sess, "arcade unavailable, try again later")
		return nil, nil
	}
	return model, []tea.ProgramOption{tea.WithAltScreen()}
}

func (s *SSHServer) sessionLog(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		started := time.Now()
		n := s.active.Add(1)
		s.logger.Info("session started", "user", sess.User(), "remote", sess.RemoteAddr().String(), "active", n)
		next(sess)
		n = s.active.Add(-1)
		s.logger.Info("session ended", "user", sess.User(), "duration", time.Since(started).Round(time.Second), "active", n)
	}
}

// ListenAndServe serves until ctx is done, then shuts down gracefully.
func (s *SSHServer) ListenAndServe(ctx context.Context) error {
	s.logger.Info("starting SSH server", "address", s.config.Address)

	errc := make(chan error, 1)
	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			errc <- err
		}
		close(errc)
	}()

	select {
	case err, ok := <-errc:
		s.closeStore()
		if ok {
			return fmt.Errorf("tui: SSH server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}
	s.logger.Info("shutting down", "active", s.active.Load())
	return s.Shutdown()
}

// Shutdown waits for open sessions up to a timeout and closes the store.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	err := s.server.Shutdown(ctx)
	s.closeStore()
	return err
}

func (s *SSHServer) closeStore() {
	if s.store != nil {
		s.store.Close()
		s.store = nil
	}
}

// Addr returns the configured listen address.
func (s *SSHServer) Addr() string {
	return s.config.Address
}
