package installer

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	clog "github.com/charmbracelet/log"

	"agoricup/internal/notify"
	"agoricup/internal/platform"
	"agoricup/internal/session"
	"agoricup/internal/tools"
)

type fakeSession struct {
	mu       sync.Mutex
	sent     []string
	close    []func()
	inactive []func()
	disposed int
	killed   bool
	done     chan struct{}
}

func newFakeSession() *fakeSession { return &fakeSession{done: make(chan struct{})} }

func (f *fakeSession) SendText(text string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, text)
	return nil
}

func (f *fakeSession) sub(list *[]func(), fn func()) session.Subscription {
	f.mu.Lock()
	defer f.mu.Unlock()
	*list = append(*list, fn)
	return session.NewSubscription(func() {
		f.mu.Lock()
		f.disposed++
		f.mu.Unlock()
	})
}

func (f *fakeSession) OnClose(fn func()) session.Subscription    { return f.sub(&f.close, fn) }
func (f *fakeSession) OnInactive(fn func()) session.Subscription { return f.sub(&f.inactive, fn) }
func (f *fakeSession) Done() <-chan struct{}                     { return f.done }
func (f *fakeSession) Kill() error                               { f.killed = true; close(f.done); return nil }

func (f *fakeSession) fire(list []func()) {
	for _, fn := range list {
		fn()
	}
}

type countingProber struct {
	mu    sync.Mutex
	calls int
	inst  tools.Installation
}

func (p *countingProber) Probe(context.Context, tools.ToolInfo) tools.Installation {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls++
	return p.inst
}

func newExecutor(t *testing.T, sess *fakeSession, prober Prober, log *clog.Logger) *Executor {
	t.Helper()
	home := t.TempDir()
	return &Executor{
		Platform:   platform.Platform{OS: "linux", Home: home},
		Tool:       tools.Agoric,
		InstallDir: home,
		Repository: "https://github.com/Agoric/agoric-sdk",
		Open: func(context.Context, session.Options) (Session, error) {
			return sess, nil
		},
		Prober:    prober,
		Log:       log,
		LookupEnv: func(string) (string, bool) { return filepath.Join(home, "bin"), true },
		Exists:    func(string) bool { return false },
	}
}

func TestExecute_QueuesScriptAndReportsOnce(t *testing.T) {
	var logs bytes.Buffer
	log := clog.NewWithOptions(&logs, clog.Options{Level: clog.DebugLevel})
	sess := newFakeSession()
	prober := &countingProber{inst: tools.Installation{Installed: true, Version: "0.22.0"}}
	e := newExecutor(t, sess, prober, log)

	run, err := e.Execute(context.Background(), nil)
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	defer run.Dispose()

	if len(run.ID) != 36 {
		t.Fatalf("run id = %q", run.ID)
	}
	if !linesContain(sess.sent, "git clone https://github.com/Agoric/agoric-sdk") {
		t.Fatalf("script not queued: %q", sess.sent)
	}

	sess.fire(sess.inactive)
	sess.fire(sess.close)

	rep := <-run.Done()
	if !rep.OK() || rep.Installation.Version != "0.22.0" || rep.Trigger != "inactive" {
		t.Fatalf("report = %+v", rep)
	}
	if _, open := <-run.Done(); open {
		t.Fatalf("Done must resolve only once")
	}
	if prober.calls != 1 {
		t.Fatalf("probed %d times", prober.calls)
	}
	if sess.sent[len(sess.sent)-1] != "exit" {
		t.Fatalf("shell should be exited after drain, last = %q", sess.sent[len(sess.sent)-1])
	}
	out := logs.String()
	if !strings.Contains(out, "Setup completed.") || !strings.Contains(out, "Agoric SDK setup @0.22.0") {
		t.Fatalf("report not logged: %s", out)
	}
}

func TestExecute_KeepOpenAndFailure(t *testing.T) {
	var logs bytes.Buffer
	log := clog.NewWithOptions(&logs, clog.Options{})
	sess := newFakeSession()
	e := newExecutor(t, sess, &countingProber{}, log)
	e.KeepOpen = true

	run, err := e.Execute(context.Background(), nil)
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	sess.fire(sess.close)

	rep := <-run.Done()
	if rep.OK() || rep.Trigger != "closed" {
		t.Fatalf("report = %+v", rep)
	}
	if !strings.Contains(logs.String(), FailedMsg) {
		t.Fatalf("failure not logged: %s", logs.String())
	}

	sess.fire(sess.inactive)
	for _, l := range sess.sent {
		if l == "exit" {
			t.Fatalf("keep-open session must not be exited")
		}
	}

	run.Dispose()
	run.Dispose()
	if sess.disposed != 2 {
		t.Fatalf("disposed %d subscriptions, want 2", sess.disposed)
	}
	if !sess.killed {
		t.Fatalf("running session should be terminated on dispose")
	}
}

func TestAnnounce(t *testing.T) {
	rec := &notify.Recorder{}
	n := notify.Notifier{Log: clog.New(&bytes.Buffer{}), Presenter: rec}

	Announce(n, Report{Installation: tools.Installation{Installed: true, Version: "0.22.0"}})
	if got := rec.Shown(); len(got) != 1 || got[0].Message != "Agoric SDK setup @0.22.0" {
		t.Fatalf("shown = %+v", got)
	}
	if notes := rec.Notices(); len(notes) != 1 || !strings.Contains(notes[0], DocsURL) {
		t.Fatalf("docs notice = %q", notes)
	}

	Announce(n, Report{})
	if got := rec.Shown(); got[1].Level != notify.LevelError || got[1].Message != FailedMsg {
		t.Fatalf("failure shown = %+v", got[1])
	}
}

func TestProgressWatcher(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "bin", "agoric")
	pw, err := watchProgress(clog.New(&bytes.Buffer{}), map[string]string{target: "linked"})
	if err != nil {
		t.Skipf("fsnotify unavailable: %v", err)
	}
	defer pw.Close()

	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		t.Fatal(err)
	}
	// give the watcher a moment to pick up the new directory
	time.Sleep(100 * time.Millisecond)
	if err := os.WriteFile(target, []byte("#!/bin/sh\n"), 0o755); err != nil {
		t.Fatal(err)
	}

	select {
	case msg := <-pw.seen:
		if msg != "linked" {
			t.Fatalf("msg = %q", msg)
		}
	case <-time.After(3 * time.Second):
		t.Fatalf("link creation not observed")
	}
}
