// Package app wires the shared runtime: settings, logger, presenter, prober
// and session manager. It is built once per command invocation.
package app

import (
	"fmt"
	"io"
	"os"

	clog "github.com/charmbracelet/log"

	"agoricup/internal/config"
	"agoricup/internal/installer"
	"agoricup/internal/notify"
	"agoricup/internal/platform"
	"agoricup/internal/session"
	"agoricup/internal/system"
	"agoricup/internal/tools"
	"agoricup/internal/update"
)

// showLogsLines is how much of the log panel "Show Logs" prints.
const showLogsLines = 40

// Options are the global command line flags.
type Options struct {
	Debug        bool
	SettingsPath string // "" means the default location
	LogPath      string // "" means the default location

	Stdout io.Writer
	Stderr io.Writer
	// Presenter overrides the terminal presenter.
	Presenter notify.Presenter
}

// Context is the runtime shared by all commands.
type Context struct {
	Settings     config.Settings
	SettingsPath string
	LogPath      string
	Platform     platform.Platform

	Log      *clog.Logger
	Notify   notify.Notifier
	Runner   tools.Runner
	Prober   *tools.Prober
	Sessions *session.Manager

	Stdout io.Writer
	Stderr io.Writer

	closer io.Closer
}

// New loads the settings and builds the runtime.
func New(opts Options) (*Context, error) {
	c := &Context{
		Platform: platform.Current(),
		Stdout:   opts.Stdout,
		Stderr:   opts.Stderr,
	}
	if c.Stdout == nil {
		c.Stdout = os.Stdout
	}
	if c.Stderr == nil {
		c.Stderr = os.Stderr
	}

	c.SettingsPath = opts.SettingsPath
	if c.SettingsPath == "" {
		p, err := config.SettingsPath()
		if err != nil {
			return nil, err
		}
		c.SettingsPath = p
	}
	c.LogPath = opts.LogPath
	if c.LogPath == "" {
		p, err := config.LogPath()
		if err != nil {
			return nil, err
		}
		c.LogPath = p
	}

	s, err := config.Load(c.SettingsPath)
	if err != nil {
		return nil, err
	}
	c.Settings = s

	level := s.LogLevel
	if opts.Debug {
		level = "debug"
	}
	log, closer, err := system.NewLogger(system.LoggerOptions{
		Level:   level,
		Console: c.Stderr,
		File:    c.LogPath,
	})
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	c.Log = log
	c.closer = closer

	presenter := opts.Presenter
	if presenter == nil {
		t := notify.NewTerminal()
		t.Out = c.Stderr
		presenter = t
	}
	c.Notify = notify.Notifier{Log: log, Presenter: presenter, ShowLogs: c.ShowLogs}

	c.Runner = tools.CmdRunner{}
	c.Prober = tools.NewProber(c.Platform.Home)
	c.Sessions = session.NewManager()
	return c, nil
}

// Close releases the log file.
func (c *Context) Close() error {
	if c == nil || c.closer == nil {
		return nil
	}
	return c.closer.Close()
}

// ShowLogs prints the tail of the log panel.
func (c *Context) ShowLogs() {
	lines, err := system.Tail(c.LogPath, showLogsLines)
	if err != nil {
		fmt.Fprintf(c.Stderr, "cannot read %s: %v\n", c.LogPath, err)
		return
	}
	for _, l := range lines {
		fmt.Fprintln(c.Stderr, l)
	}
}

// Interactive reports whether prompts can be answered.
func (c *Context) Interactive() bool {
	t, ok := c.Notify.Presenter.(*notify.Terminal)
	return ok && t.Interactive
}

// Updater returns the probe, decide, execute flow. keepOpen leaves the setup
// shell running after the script drained.
func (c *Context) Updater(keepOpen bool) *update.Manager {
	return &update.Manager{
		SettingsPath: c.SettingsPath,
		Platform:     c.Platform,
		Tool:         tools.Agoric,
		Prober:       c.Prober,
		Runner:       c.Runner,
		Log:          c.Log,
		Notify:       c.Notify,
		Executor: func(p update.Plan) update.Starter {
			return &installer.Executor{
				Platform:   c.Platform,
				Tool:       tools.Agoric,
				InstallDir: p.InstallDir,
				Branch:     p.Settings.Branch,
				Repository: p.Settings.Repository,
				Open:       installer.ManagerOpener(c.Sessions),
				Prober:     c.Prober,
				Log:        c.Log,
				KeepOpen:   keepOpen,
				Stdin:      os.Stdin,
				Stdout:     c.Stdout,
			}
		},
	}
}
