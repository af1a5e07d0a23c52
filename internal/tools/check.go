package tools

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"
)

// versionTimeout bounds each "--version" call.
const versionTimeout = 3 * time.Second

// Prober detects whether a tool is installed and at which version.
// Probes are serialised so at most one installation state is current.
type Prober struct {
	Runner Runner
	Home   string // per-user candidate root; "" reads $HOME
	GOOS   string // "" means runtime.GOOS

	mu sync.Mutex
}

// NewProber returns a Prober using os/exec.
func NewProber(home string) *Prober {
	return &Prober{Runner: CmdRunner{}, Home: home}
}

// Probe resolves t on PATH, then falls back to the fixed candidate install
// paths. It never fails: anything that cannot be run counts as not installed.
func (p *Prober) Probe(ctx context.Context, t ToolInfo) Installation {
	p.mu.Lock()
	defer p.mu.Unlock()

	// Try binaries in PATH
	for _, bin := range t.Binaries {
		path, err := p.Runner.LookPath(bin)
		if err != nil {
			continue
		}
		if ver, ok := p.version(ctx, path, t.VersionArgs); ok {
			return Installation{Installed: true, Version: ver, Source: bin}
		}
	}

	// Fallback: well-known install locations
	for _, candidate := range p.Candidates(t) {
		if _, err := os.Stat(candidate); err != nil {
			continue
		}
		if ver, ok := p.version(ctx, candidate, t.VersionArgs); ok {
			return Installation{Installed: true, Version: ver, Source: candidate}
		}
	}
	return NotInstalled
}

// Candidates lists the fixed install locations checked when the tool is not
// on PATH: the per-user bin directory first, then the system-wide one.
func (p *Prober) Candidates(t ToolInfo) []string {
	home := p.Home
	if home == "" {
		home = os.Getenv("HOME")
	}
	if home == "" {
		home = "/usr/local"
	}
	var out []string
	for _, bin := range t.Binaries {
		if p.goos() == "windows" {
			for _, ext := range []string{"", ".cmd", ".exe"} {
				out = append(out, filepath.Join(home, "bin", bin+ext))
			}
			continue
		}
		out = append(out, filepath.Join(home, "bin", bin))
		if sys := filepath.Join("/usr/local/bin", bin); sys != out[len(out)-1] {
			out = append(out, sys)
		}
	}
	return out
}

// CheckDependencies reports which of deps are runnable.
func (p *Prober) CheckDependencies(ctx context.Context, deps []Dependency) []Dependency {
	p.mu.Lock()
	defer p.mu.Unlock()

	out := make([]Dependency, 0, len(deps))
	for _, d := range deps {
		path, err := p.Runner.LookPath(d.Binary)
		if err == nil {
			cctx, cancel := context.WithTimeout(ctx, versionTimeout)
			v, verr := p.Runner.Output(cctx, "", path, d.VersionArgs...)
			cancel()
			d.Installed = verr == nil && strings.TrimSpace(v) != ""
		}
		out = append(out, d)
	}
	return out
}

// Missing filters deps down to the ones not installed.
func Missing(deps []Dependency) []Dependency {
	var out []Dependency
	for _, d := range deps {
		if !d.Installed {
			out = append(out, d)
		}
	}
	return out
}

// version runs path with each version flag form and returns the first output
// that looks like a version.
func (p *Prober) version(ctx context.Context, path string, forms [][]string) (string, bool) {
	for _, args := range forms {
		cctx, cancel := context.WithTimeout(ctx, versionTimeout)
		out, err := p.Runner.Output(cctx, "", path, args...)
		cancel()
		out = strings.TrimSpace(out)
		if err != nil || out == "" || !LooksLikeVersion(out) {
			continue
		}
		if ver := ParseVersion(out); ver != "" {
			return ver, true
		}
		return strings.Split(out, "\n")[0], true
	}
	return "", false
}

func (p *Prober) goos() string {
	if p.GOOS != "" {
		return p.GOOS
	}
	return runtime.GOOS
}
