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

	"github.com/vovakirdan/tetrion/internal/config"
	"github.com/vovakirdan/tetrion/internal/storage"
)

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":23234").
	Address string

	// HostKeyPath is the path to the host key file.
	// If empty, a key will be auto-generated at ~/.tetrion/host_key.
	HostKeyPath string

	// DBPath is the path to the match history database.
	DBPath string

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration

	// Rules are the match rules every session plays with.
	Rules config.TetrionConfig
}

// DefaultSSHServerConfig returns a config with sensible defaults.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":23234",
		DBPath:      "~/.tetrion/tetrion.db",
		IdleTimeout: 30 * time.Minute,
		Rules:       config.DefaultTetrionConfig(),
	}
}

// SSHServer hosts one Tetrion session per SSH connection.
type SSHServer struct {
	config SSHServerConfig
	server *ssh.Server
	store  *storage.Store
	logger *log.Logger
}

// NewSSHServer creates a new SSH server. A nil logger writes to stderr.
func NewSSHServer(cfg SSHServerConfig, logger *log.Logger) (*SSHServer, error) {
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "tetrion-ssh",
		})
	}
	if err := cfg.Rules.Validate(); err != nil {
		return nil, err
	}

	store, err := storage.Open(cfg.DBPath)
	if err != nil {
		logger.Warn("could not open match database", "error", err)
		// Continue without storage
	}

	srv := &SSHServer{
		config: cfg,
		store:  store,
		logger: logger,
	}

	hostKeyPath := cfg.HostKeyPath
	if hostKeyPath == "" {
		home, homeErr := os.UserHomeDir()
		if homeErr != nil {
			return nil, fmt.Errorf("cannot get home directory: %w", homeErr)
		}
		hostKeyPath = filepath.Join(home, ".tetrion", "host_key")
	}

	if mkdirErr := os.MkdirAll(filepath.Dir(hostKeyPath), 0o700); mkdirErr != nil {
		return nil, fmt.Errorf("cannot create host key directory: %w", mkdirErr)
	}

	server, err := wish.NewServer(
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			srv.loggingMiddleware,
		),
	)
	if err != nil {
		if store != nil {
			store.Close()
		}
		return nil, fmt.Errorf("cannot create SSH server: %w", err)
	}

	srv.server = server
	return srv, nil
}

// teaHandler creates a session model for each SSH connection.
func (s *SSHServer) teaHandler(sshSession ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sshSession.Pty()
	if !ok {
		s.logger.Warn("no PTY requested", "user", sshSession.User())
		return nil, nil
	}

	model := NewSessionModel(SessionOptions{
		Context: sshSession.Context(),
		Store:   s.store,
		Rules:   s.config.Rules,
		Player:  sshSession.User(),
		Logger:  s.logger.With("user", sshSession.User()),
		Width:   pty.Window.Width,
		Height:  pty.Window.Height,
	})

	return model, []tea.ProgramOption{
		tea.WithAltScreen(),
	}
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

// ListenAndServe starts the SSH server and blocks until SIGINT or SIGTERM.
func (s *SSHServer) ListenAndServe() error {
	s.logger.Info("starting SSH server", "address", s.config.Address, "variant", s.config.Rules.Variant)

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	errc := make(chan error, 1)
	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			errc <- err
		}
	}()

	select {
	case <-done:
		s.logger.Info("shutting down...")
		return s.Shutdown()
	case err := <-errc:
		s.logger.Error("server error", "error", err)
		s.Shutdown()
		return err
	}
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

// SessionOptions configures a session model.
type SessionOptions struct {
	Context    context.Context // ends running matches when done
	Store      *storage.Store
	Rules      config.TetrionConfig
	Player     string
	Seed       int64
	Logger     *log.Logger
	RecordPath string
	Width      int
	Height     int
}

type sessionScreen int

const (
	screenMenu sessionScreen = iota
	screenPlay
	screenScores
)

// SessionModel manages the full flow of one player: menu -> match or
// scoreboard -> menu. It is the top-level model of SSH sessions and of
// the local menu.
type SessionModel struct {
	opts     SessionOptions
	screen   sessionScreen
	menu     MenuModel
	play     *PlayModel
	scores   ScoreboardModel
	quitting bool
}

// NewSessionModel creates a new session model.
func NewSessionModel(opts SessionOptions) SessionModel {
	m := SessionModel{opts: opts}
	m.menu = m.newMenu()
	return m
}

func (m SessionModel) newMenu() MenuModel {
	menu := NewMenuModel(m.opts.Store, m.opts.Player, m.opts.Rules.Variant, m.opts.Width, m.opts.Height)
	menu.embedded = true
	return menu
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.opts.Width = wsm.Width
		m.opts.Height = wsm.Height
	}

	switch m.screen {
	case screenPlay:
		return m.updatePlay(msg)
	case screenScores:
		return m.updateScores(msg)
	default:
		return m.updateMenu(msg)
	}
}

// updateMenu handles updates when in menu mode.
func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.menu.Update(msg)
	if menu, ok := next.(MenuModel); ok {
		m.menu = menu
	}

	switch m.menu.Selected() {
	case ChoiceQuit:
		m.quitting = true
		return m, tea.Quit

	case ChoicePlay:
		play := NewPlayModel(PlayOptions{
			Context:    m.opts.Context,
			Rules:      m.opts.Rules,
			Seed:       m.opts.Seed,
			Player:     m.opts.Player,
			Store:      m.opts.Store,
			Logger:     m.opts.Logger,
			RecordPath: m.opts.RecordPath,
			Width:      m.opts.Width,
			Height:     m.opts.Height,
			Embedded:   true,
		})
		m.play = &play
		m.screen = screenPlay
		return m, m.play.Init()

	case ChoiceScores:
		m.scores = NewScoreboardModel(m.opts.Store, m.opts.Width, m.opts.Height)
		m.scores.embedded = true
		m.screen = screenScores
		return m, m.scores.Init()
	}

	return m, cmd
}

// updatePlay handles updates when a match is on screen.
func (m SessionModel) updatePlay(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.play.Update(msg)
	if play, ok := next.(PlayModel); ok {
		m.play = &play
	}

	if m.play.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.play.Leaving() {
		m.play.Close()
		m.play = nil
		m.screen = screenMenu
		m.menu = m.newMenu()
		return m, m.menu.Init()
	}

	return m, cmd
}

// updateScores handles updates when the scoreboard is on screen.
func (m SessionModel) updateScores(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.scores.Update(msg)
	if scores, ok := next.(ScoreboardModel); ok {
		m.scores = scores
	}

	if m.scores.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.scores.IsGoingBack() {
		m.screen = screenMenu
		m.menu = m.newMenu()
		return m, m.menu.Init()
	}

	return m, cmd
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.screen {
	case screenPlay:
		return m.play.View()
	case screenScores:
		return m.scores.View()
	default:
		return m.menu.View()
	}
}

// Close stops a match that is still running.
func (m SessionModel) Close() {
	if m.play != nil {
		m.play.Close()
	}
}

// RunSession runs the menu flow locally in the alternate screen buffer.
func RunSession(opts SessionOptions) error {
	p := tea.NewProgram(NewSessionModel(opts), tea.WithAltScreen())

	final, err := p.Run()
	if sm, ok := final.(SessionModel); ok {
		sm.Close()
	}
	return err
}
