package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"

	"github.com/vovakirdan/memory-match/internal/achievements"
	"github.com/vovakirdan/memory-match/internal/config"
	"github.com/vovakirdan/memory-match/internal/engine"
	"github.com/vovakirdan/memory-match/internal/storage"
)

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":23234").
	Address string

	// HostKeyPath is the path to the host key file.
	// If empty, a key will be auto-generated at ~/.memory-match/host_key.
	HostKeyPath string

	// DBPath is the path to the game database.
	DBPath string

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration

	// Tables are the resolved mode/difficulty tables shared by sessions.
	Tables config.Tables

	// Mode and Difficulty select the rules each session plays under.
	Mode       config.Mode
	Difficulty config.Difficulty
	Theme      string
}

// DefaultSSHServerConfig returns a config with sensible defaults.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":23234",
		DBPath:      "~/.memory-match/scores.db",
		IdleTimeout: 30 * time.Minute,
		Mode:        config.ModeClassic,
		Difficulty:  config.DifficultyEasy,
	}
}

// SSHServer wraps a Wish SSH server that deals a fresh board per session.
type SSHServer struct {
	config SSHServerConfig
	server *ssh.Server
	store  *storage.Store
	logger *log.Logger
}

// NewSSHServer creates a new SSH server with the given configuration.
func NewSSHServer(cfg SSHServerConfig) (*SSHServer, error) {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "memory-ssh",
	})

	// Open storage
	store, err := storage.Open(cfg.DBPath)
	if err != nil {
		logger.Warn("could not open game database", "error", err)
		// Continue without storage
	}

	srv := &SSHServer{
		config: cfg,
		store:  store,
		logger: logger,
	}

	// Resolve host key path
	hostKeyPath := cfg.HostKeyPath
	if hostKeyPath == "" {
		home, homeErr := os.UserHomeDir()
		if homeErr != nil {
			return nil, fmt.Errorf("cannot get home directory: %w", homeErr)
		}
		hostKeyPath = filepath.Join(home, ".memory-match", "host_key")
	}

	// Ensure host key directory exists
	hostKeyDir := filepath.Dir(hostKeyPath)
	if mkdirErr := os.MkdirAll(hostKeyDir, 0o700); mkdirErr != nil {
		return nil, fmt.Errorf("cannot create host key directory: %w", mkdirErr)
	}

	opts := []ssh.Option{
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			srv.loggingMiddleware,
		),
	}

	server, err := wish.NewServer(opts...)
	if err != nil {
		if store != nil {
			store.Close()
		}
		return nil, fmt.Errorf("cannot create SSH server: %w", err)
	}

	srv.server = server
	return srv, nil
}

// teaHandler creates a Bubble Tea program for each SSH session. Every
// session gets its own engine; the database is shared.
func (s *SSHServer) teaHandler(sshSession ssh.Session) (tea.Model, []tea.ProgramOption) {
	_, _, ok := sshSession.Pty()
	if !ok {
		s.logger.Warn("no PTY requested", "user", sshSession.User())
		return nil, nil
	}

	flash := NewFlashNotifier()
	game := engine.New(engine.Options{
		Tables:     s.config.Tables,
		KV:         s.kv(),
		Stats:      s.statsStore(),
		Notifier:   flash,
		Mode:       s.config.Mode,
		Difficulty: s.config.Difficulty,
		Theme:      s.config.Theme,
	})

	model := NewSessionModel(game, s.store, flash)

	return model, []tea.ProgramOption{
		tea.WithAltScreen(),
	}
}

func (s *SSHServer) kv() achievements.KV {
	if s.store == nil {
		return nil
	}
	return s.store
}

func (s *SSHServer) statsStore() engine.Stats {
	if s.store == nil {
		return nil
	}
	return s.store
}

// loggingMiddleware logs SSH session events.
func (s *SSHServer) loggingMiddleware(next ssh.Handler) ssh.Handler {
	return func(sshSession ssh.Session) {
		s.logger.Info("session started",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
		next(sshSession)
		s.logger.Info("session ended",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
	}
}

// ListenAndServe starts the SSH server and blocks until shutdown.
func (s *SSHServer) ListenAndServe() error {
	s.logger.Info("starting SSH server", "address", s.config.Address)

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

	if s.store != nil {
		s.store.Close()
	}

	return s.server.Shutdown(ctx)
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return s.config.Address
}

// SessionModel runs a full session flow: the roster form first when the
// mode needs one, then the board. Used both locally and over SSH.
type SessionModel struct {
	game  *engine.Game
	form  *NameFormModel
	board BoardModel
}

// NewSessionModel wires the flow for a prepared engine.
func NewSessionModel(game *engine.Game, store *storage.Store, flash *FlashNotifier) SessionModel {
	m := SessionModel{
		game:  game,
		board: NewBoardModel(game, store, flash),
	}
	if game.Config().IsMultiplayer && !game.CanStartGame() {
		form := NewNameFormModel(game)
		m.form = &form
	}
	return m
}

func (m SessionModel) Init() tea.Cmd {
	if m.form != nil {
		return m.form.Init()
	}
	return m.board.Init()
}

func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.form == nil {
		next, cmd := m.board.Update(msg)
		m.board = next.(BoardModel)
		return m, cmd
	}

	next, cmd := m.form.Update(msg)
	form := next.(NameFormModel)
	m.form = &form

	if form.Cancelled() {
		return m, tea.Quit
	}
	if form.Submitted() {
		// The form's quit must not tear the whole session down; swap to
		// the board instead.
		m.form = nil
		m.game.StartGame()
		return m, m.board.Init()
	}
	return m, cmd
}

func (m SessionModel) View() string {
	if m.form != nil {
		return m.form.View()
	}
	return m.board.View()
}
