package server

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/bubbletea"
	"github.com/charmbracelet/wish/logging"

	"github.com/tnguyen21/scenebook/internal/app"
	"github.com/tnguyen21/scenebook/internal/autosave"
	"github.com/tnguyen21/scenebook/internal/config"
	"github.com/tnguyen21/scenebook/internal/scene"
)

// HostKeyFile is the name of the server's host key inside the host key dir.
const HostKeyFile = "scenebook_host_key"

// Server wraps a wish SSH server that serves the scene book TUI. Every
// session edits the same shared book.
type Server struct {
	config *config.Config
	wish   *ssh.Server
	logger *log.Logger
}

// New creates a Server configured from cfg.
func New(cfg *config.Config, shared *scene.Shared, saver autosave.Saver, logger *log.Logger) (*Server, error) {
	teaHandler := func(sess ssh.Session) (tea.Model, []tea.ProgramOption) {
		logger.Debug("starting session", "user", sess.User(), "remote", sess.RemoteAddr())
		model := app.New(*cfg, shared, saver)
		return model, []tea.ProgramOption{
			tea.WithAltScreen(),
			tea.WithMouseCellMotion(),
		}
	}

	s, err := wish.NewServer(
		wish.WithAddress(fmt.Sprintf(":%d", cfg.Port)),
		wish.WithHostKeyPath(HostKeyPath(cfg)),
		wish.WithPublicKeyAuth(publicKeyHandler),
		wish.WithMiddleware(
			bubbletea.Middleware(teaHandler),
			activeterm.Middleware(),
			logging.StructuredMiddlewareWithLogger(logger, log.InfoLevel),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("creating wish server: %w", err)
	}

	return &Server{config: cfg, wish: s, logger: logger}, nil
}

// HostKeyPath returns where the server keeps its host key.
func HostKeyPath(cfg *config.Config) string {
	return filepath.Join(cfg.HostKeyDir, HostKeyFile)
}

// Start begins listening for SSH connections. It blocks until the server
// is shut down or encounters a fatal error. Returns nil on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("listening", "addr", s.wish.Addr)
	if err := s.wish.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.wish.Shutdown(ctx)
}

// publicKeyHandler accepts all SSH public keys. The scene book is meant for
// a single table behind a firewall.
func publicKeyHandler(_ ssh.Context, _ ssh.PublicKey) bool {
	return true
}
