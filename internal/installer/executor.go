package installer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	clog "github.com/charmbracelet/log"
	"github.com/google/uuid"

	"agoricup/internal/notify"
	"agoricup/internal/platform"
	"agoricup/internal/session"
	"agoricup/internal/tools"
)

const (
	SessionName = "Agoric SDK setup"
	DocsURL     = "https://agoric.com/documentation/"
	FailedMsg   = "Failed to setup SDK: An error occured while setting up the SDK."
)

// Session is the part of an interactive session the executor drives.
type Session interface {
	SendText(text string) error
	OnClose(fn func()) session.Subscription
	OnInactive(fn func()) session.Subscription
	Done() <-chan struct{}
	Kill() error
}

// Opener starts a session.
type Opener func(ctx context.Context, opts session.Options) (Session, error)

// ManagerOpener adapts a session.Manager to an Opener.
func ManagerOpener(m *session.Manager) Opener {
	return func(ctx context.Context, opts session.Options) (Session, error) {
		s, err := m.Open(ctx, opts)
		if err != nil {
			return nil, err
		}
		return s, nil
	}
}

// Prober probes the installed CLI.
type Prober interface {
	Probe(ctx context.Context, t tools.ToolInfo) tools.Installation
}

// Executor runs the setup script.
type Executor struct {
	Platform   platform.Platform
	Tool       tools.ToolInfo
	InstallDir string
	Branch     string
	Repository string

	Open   Opener
	Prober Prober
	Log    *clog.Logger

	// KeepOpen leaves the shell running after the script drained.
	KeepOpen bool
	Stdin    *os.File
	Stdout   io.Writer

	// LookupEnv and Exists default to os.LookupEnv and os.Stat.
	LookupEnv func(string) (string, bool)
	Exists    func(string) bool
}

// Report is the outcome of one setup session.
type Report struct {
	Installation tools.Installation
	// Trigger is "inactive" when the script drained, "closed" when the
	// shell exited first.
	Trigger string
}

// OK reports whether the CLI was found after the script ran.
func (r Report) OK() bool { return r.Installation.Installed }

// Run is one execution of the setup script.
type Run struct {
	// ID tags every log line of the run.
	ID string

	sess    Session
	subs    []session.Subscription
	watcher *progressWatcher
	log     *clog.Logger

	once    sync.Once
	done    chan Report
	dispose sync.Once
}

// Done resolves with the report once the session closed or drained.
func (r *Run) Done() <-chan Report { return r.done }

// Closed is closed when the shell exited.
func (r *Run) Closed() <-chan struct{} { return r.sess.Done() }

// Dispose releases the session subscriptions, stops the progress watcher
// and terminates the shell if it is still running.
func (r *Run) Dispose() {
	r.dispose.Do(func() {
		for _, s := range r.subs {
			s.Dispose()
		}
		r.subs = nil
		r.watcher.Close()
		select {
		case <-r.sess.Done():
		default:
			r.log.Info("Terminating session...")
			_ = r.sess.Kill()
		}
	})
}

// Execute opens a session and queues the setup script into it. missing lists
// the dependencies that have to be installed first.
func (e *Executor) Execute(ctx context.Context, missing []tools.Dependency) (*Run, error) {
	if e.Open == nil {
		return nil, errors.New("installer: no session opener")
	}
	id := uuid.NewString()
	log := e.Log.With("run", id[:8])
	shell, args := e.Platform.Shell()
	sess, err := e.Open(ctx, session.Options{
		Name:   SessionName,
		Shell:  append([]string{shell}, args...),
		Dir:    e.InstallDir,
		Marker: platform.EndMarker,
		Stdin:  e.Stdin,
		Stdout: e.Stdout,
		Log:    log,
	})
	if err != nil {
		return nil, fmt.Errorf("open session: %w", err)
	}
	log.Info("Process started.", "dir", e.InstallDir)

	run := &Run{ID: id, sess: sess, log: log, done: make(chan Report, 1)}
	run.subs = append(run.subs,
		sess.OnClose(func() {
			log.Info("Session closed")
			e.report(ctx, run, "closed")
		}),
		sess.OnInactive(func() {
			log.Info("Session inactive")
			e.report(ctx, run, "inactive")
			if !e.KeepOpen {
				_ = sess.SendText(e.Platform.Exit())
			}
		}),
	)

	cloned := e.Platform.Join(e.InstallDir, e.Tool.SDKDir)
	linked := e.Platform.Join(e.Platform.BinDir(), "agoric")
	if w, err := watchProgress(log, map[string]string{
		cloned: "Cloned Agoric SDK successfully",
		linked: "Linked Agoric CLI successfully",
	}); err != nil {
		log.Debug("progress watcher unavailable", "err", err)
	} else {
		run.watcher = w
	}

	script := BuildScript(e.scriptInput(missing))
	for _, n := range script.Notes {
		log.Log(n.Level, n.Msg)
	}
	for _, line := range script.Lines {
		log.Debug("queue", "cmd", line)
		if err := sess.SendText(line); err != nil {
			// shell already gone; the close handler reports
			log.Error("could not queue command", "cmd", line, "err", err)
			break
		}
	}
	return run, nil
}

func (e *Executor) scriptInput(missing []tools.Dependency) ScriptInput {
	lookup := e.LookupEnv
	if lookup == nil {
		lookup = os.LookupEnv
	}
	exists := e.Exists
	if exists == nil {
		exists = func(p string) bool { _, err := os.Stat(p); return err == nil }
	}
	path, ok := lookup("PATH")
	return ScriptInput{
		Platform:   e.Platform,
		InstallDir: e.InstallDir,
		SDKDir:     e.Tool.SDKDir,
		Branch:     e.Branch,
		Repository: e.Repository,
		Missing:    missing,
		Exists:     exists,
		Path:       path,
		PathSet:    ok,
	}
}

// report probes once per run and resolves Done.
func (e *Executor) report(ctx context.Context, run *Run, trigger string) {
	run.once.Do(func() {
		inst := e.Prober.Probe(ctx, e.Tool)
		if inst.Installed {
			run.log.Info("Setup completed.")
			run.log.Info("Agoric SDK setup @" + inst.Version)
		} else {
			run.log.Error(FailedMsg)
		}
		run.done <- Report{Installation: inst, Trigger: trigger}
		close(run.done)
	})
}

// Announce shows the report to the user. It is called once the session no
// longer owns the terminal; the report itself was already logged.
func Announce(n notify.Notifier, r Report) {
	if !r.OK() {
		n.Present(notify.LevelError, FailedMsg)
		return
	}
	n.Present(notify.LevelInfo, "Agoric SDK setup @"+r.Installation.Version)
	n.Notice(fmt.Sprintf("Check out the docs at [%s](%s)", DocsURL, DocsURL))
}
