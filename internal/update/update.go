package update

import (
	"context"
	"fmt"

	clog "github.com/charmbracelet/log"

	"agoricup/internal/config"
	"agoricup/internal/installer"
	"agoricup/internal/notify"
	"agoricup/internal/platform"
	"agoricup/internal/system"
	"agoricup/internal/tools"
)

const (
	NewVersionMsg = "New version of Agoric available"
	UpdatePrompt  = "Update Agoric"
)

// Prober probes the CLI and its script dependencies.
type Prober interface {
	Probe(ctx context.Context, t tools.ToolInfo) tools.Installation
	CheckDependencies(ctx context.Context, deps []tools.Dependency) []tools.Dependency
}

// Starter runs the setup script.
type Starter interface {
	Execute(ctx context.Context, missing []tools.Dependency) (*installer.Run, error)
}

// Plan is the probed state and the decision made from it.
type Plan struct {
	Settings     config.Settings
	InstallDir   string
	Installation tools.Installation
	Channel      string
	LocalRef     string
	RemoteRef    string
	// Checkout is the state of the SDK clone; zero for the npm channel.
	Checkout system.GitInfo
	Decision Decision
}

// Manager runs the probe, decide, execute flow.
type Manager struct {
	SettingsPath string
	Platform     platform.Platform
	Tool         tools.ToolInfo
	Prober       Prober
	Runner       tools.Runner
	Log          *clog.Logger
	Notify       notify.Notifier

	// Channel overrides the channel selected by the settings.
	Channel Channel
	// Executor builds the script runner for a plan.
	Executor func(p Plan) Starter
}

// Plan loads the settings, probes the CLI and decides what to do. Settings
// are read from disk on every call.
func (m *Manager) Plan(ctx context.Context) (Plan, error) {
	s, err := config.Load(m.SettingsPath)
	if err != nil {
		return Plan{}, err
	}
	dir, fellBack := s.ResolveInstallDir(m.Platform.Home)
	if fellBack {
		m.Log.Warn("installDir is not a directory, using home", "installDir", s.InstallDir, "home", dir)
	}

	p := Plan{Settings: s, InstallDir: dir}
	p.Installation = m.Prober.Probe(ctx, m.Tool)
	if !p.Installation.Installed {
		p.Decision = Decide(Input{})
		return p, nil
	}

	ch := m.channel(s, dir)
	p.Channel = ch.Name()
	p.LocalRef, p.RemoteRef, err = ch.Refs(ctx, p.Installation)
	if err != nil {
		m.Log.Warn("could not determine Agoric SDK version", "channel", ch.Name(), "err", err)
	}
	m.Log.Debug("refs", "channel", ch.Name(), "local", p.LocalRef, "remote", p.RemoteRef)
	if ci, ok := ch.(checkoutInspector); ok {
		if info, err := ci.Checkout(ctx); err == nil {
			p.Checkout = info
		}
	}

	p.Decision = Decide(Input{
		Installed:  true,
		LocalRef:   p.LocalRef,
		RemoteRef:  p.RemoteRef,
		AutoUpdate: s.AutoUpdateEnabled(),
	})
	return p, nil
}

func (m *Manager) channel(s config.Settings, installDir string) Channel {
	if m.Channel != nil {
		return m.Channel
	}
	if s.Channel == config.ChannelNpm {
		return NpmChannel{Runner: m.Runner, Package: m.Tool.Package}
	}
	return GitChannel{
		Git:    system.Git{Runner: m.Runner, Dir: m.Platform.Join(installDir, m.Tool.SDKDir)},
		Branch: s.Branch,
		Log:    m.Log,
	}
}

// Run probes, decides and starts the setup script when needed. It returns a
// nil Run when nothing was started.
func (m *Manager) Run(ctx context.Context) (*installer.Run, error) {
	p, err := m.Plan(ctx)
	if err != nil {
		return nil, err
	}
	return m.Apply(ctx, p)
}

// Apply acts on a plan made by Plan.
func (m *Manager) Apply(ctx context.Context, p Plan) (*installer.Run, error) {
	d := p.Decision
	switch {
	case d.Action == ActionInstall:
		m.Log.Info("Agoric SDK not installed")
		return m.start(ctx, p)
	case d.Action == ActionNoOp && d.Reason == ReasonUpToDate:
		m.Log.Info("Agoric SDK already up to date @" + p.Installation.Version)
		return nil, nil
	case d.Action == ActionNoOp:
		m.Log.Warn("Agoric SDK installed @"+p.Installation.Version+", cannot check for updates", "channel", p.Channel)
		return nil, nil
	case d.Prompt:
		var (
			run      *installer.Run
			startErr error
		)
		m.Notify.Info(NewVersionMsg, notify.Action{
			Prompt: UpdatePrompt,
			Run:    func() { run, startErr = m.start(ctx, p) },
		})
		return run, startErr
	default:
		m.Log.Info("Updating Agoric SDK", "from", p.LocalRef, "to", p.RemoteRef)
		return m.start(ctx, p)
	}
}

func (m *Manager) start(ctx context.Context, p Plan) (*installer.Run, error) {
	if m.Executor == nil {
		return nil, fmt.Errorf("update: no executor configured")
	}
	if p.Checkout.Dirty {
		m.Log.Warn("Local changes in the Agoric SDK checkout will be deleted", "dir", m.Platform.Join(p.InstallDir, m.Tool.SDKDir))
	}
	deps := m.Prober.CheckDependencies(ctx, tools.Dependencies)
	return m.Executor(p).Execute(ctx, tools.Missing(deps))
}
