// Package session runs an interactive shell on a pseudo terminal. Output is
// mirrored to the user's terminal and keystrokes are forwarded to the shell,
// so commands that ask for input (sudo, execution policy prompts) still work.
package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"sync"

	clog "github.com/charmbracelet/log"
	"github.com/charmbracelet/x/xpty"
)

// ErrSessionActive is returned by Manager.Open while another session is
// still running.
var ErrSessionActive = errors.New("a setup session is already running")

// Options configures a session.
type Options struct {
	Name string
	// Shell is the argv of the interactive shell.
	Shell []string
	Dir   string
	Env   []string
	// Marker is the output that marks the queued commands as drained.
	Marker string

	Stdin  *os.File
	Stdout io.Writer
	Log    *clog.Logger
}

// Session is one running shell.
type Session struct {
	name string
	pty  xpty.Pty
	cmd  *exec.Cmd
	log  *clog.Logger

	writeMu sync.Mutex

	closed   event
	inactive event
	done     chan struct{}

	input *input
}

// Start launches the shell and begins pumping output.
func Start(ctx context.Context, opts Options) (*Session, error) {
	if len(opts.Shell) == 0 {
		return nil, errors.New("session: no shell configured")
	}
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	if opts.Log == nil {
		opts.Log = clog.New(io.Discard)
	}

	w, h := termSize(opts.Stdout)
	pty, err := xpty.NewPty(w, h)
	if err != nil {
		return nil, fmt.Errorf("open pty: %w", err)
	}

	cmd := exec.Command(opts.Shell[0], opts.Shell[1:]...)
	cmd.Dir = opts.Dir
	cmd.Env = append(os.Environ(), opts.Env...)
	if err := pty.Start(cmd); err != nil {
		_ = pty.Close()
		return nil, fmt.Errorf("start %s: %w", opts.Shell[0], err)
	}

	s := &Session{
		name: opts.Name,
		pty:  pty,
		cmd:  cmd,
		log:  opts.Log,
		done: make(chan struct{}),
	}
	s.log.Debug("session started", "name", s.name, "shell", strings.Join(opts.Shell, " "), "dir", opts.Dir)

	if opts.Stdin != nil {
		in, err := forwardInput(opts.Stdin, pty)
		if err != nil {
			s.log.Debug("stdin not forwarded", "err", err)
		}
		s.input = in
	}

	go s.pumpOutput(opts.Stdout, opts.Marker)
	go s.wait(ctx)
	return s, nil
}

func (s *Session) pumpOutput(out io.Writer, marker string) {
	scan := newMarkerScanner(marker)
	tr := &transcript{log: s.log}
	defer tr.Flush()

	buf := make([]byte, 4096)
	for {
		n, err := s.pty.Read(buf)
		if n > 0 {
			chunk := buf[:n]
			_, _ = out.Write(chunk)
			_, _ = tr.Write(chunk)
			if scan.Feed(chunk) {
				s.log.Debug("session drained", "name", s.name)
				s.inactive.fire()
			}
		}
		if err != nil {
			return
		}
	}
}

func (s *Session) wait(ctx context.Context) {
	err := xpty.WaitProcess(ctx, s.cmd)
	if s.input != nil {
		s.input.stop()
	}
	_ = s.pty.Close()
	s.log.Debug("session closed", "name", s.name, "err", err)
	close(s.done)
	s.closed.fire()
}

// SendText queues text as if the user typed it, one line per command.
func (s *Session) SendText(text string) error {
	if s.Closed() {
		return errors.New("session closed")
	}
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	for _, line := range strings.Split(strings.TrimRight(text, "\n"), "\n") {
		if _, err := io.WriteString(s.pty, strings.TrimRight(line, "\r")+"\r"); err != nil {
			return fmt.Errorf("send to session: %w", err)
		}
	}
	return nil
}

// OnClose registers fn to run once when the shell exits.
func (s *Session) OnClose(fn func()) Subscription { return s.closed.on(fn) }

// OnInactive registers fn to run once when every queued command finished.
func (s *Session) OnInactive(fn func()) Subscription { return s.inactive.on(fn) }

// Done is closed when the shell exited.
func (s *Session) Done() <-chan struct{} { return s.done }

// Closed reports whether the shell exited.
func (s *Session) Closed() bool {
	select {
	case <-s.done:
		return true
	default:
		return false
	}
}

// Kill terminates the shell.
func (s *Session) Kill() error {
	if s.cmd.Process == nil || s.Closed() {
		return nil
	}
	return s.cmd.Process.Kill()
}

// Manager hands out sessions and makes sure at most one runs at a time.
type Manager struct {
	mu     sync.Mutex
	active *Session
	start  func(context.Context, Options) (*Session, error)
}

// NewManager returns a Manager starting real PTY sessions.
func NewManager() *Manager {
	return &Manager{start: Start}
}

// Open starts a new session unless one is still running.
func (m *Manager) Open(ctx context.Context, opts Options) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.active != nil && !m.active.Closed() {
		return nil, ErrSessionActive
	}
	s, err := m.start(ctx, opts)
	if err != nil {
		return nil, err
	}
	m.active = s
	s.OnClose(func() {
		m.mu.Lock()
		if m.active == s {
			m.active = nil
		}
		m.mu.Unlock()
	})
	return s, nil
}

// Active returns the running session, if any.
func (m *Manager) Active() *Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.active
}
