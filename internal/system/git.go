package system

import (
	"context"
	"strings"
	"time"

	"agoricup/internal/tools"
)

// gitTimeout bounds quick local git queries; fetches get fetchTimeout.
const (
	gitTimeout   = 5 * time.Second
	fetchTimeout = 2 * time.Minute
)

type GitInfo struct {
	InRepo   bool
	Branch   string
	ShortSHA string
	Dirty    bool
}

// Git runs git against one working copy.
type Git struct {
	Runner tools.Runner
	Dir    string
}

func (g Git) run(ctx context.Context, d time.Duration, args ...string) (string, error) {
	cctx, cancel := context.WithTimeout(ctx, d)
	defer cancel()
	out, err := g.Runner.Output(cctx, "", "git", append([]string{"-C", g.Dir}, args...)...)
	return strings.TrimSpace(out), err
}

// Info inspects the working copy and returns basic status. A missing git or
// a directory outside a repository yields a zero GitInfo and no error.
func (g Git) Info(ctx context.Context) (GitInfo, error) {
	gi := GitInfo{}

	// Ensure git exists
	if _, err := g.Runner.LookPath("git"); err != nil {
		return gi, nil
	}

	// Check if inside a work tree
	out, err := g.run(ctx, gitTimeout, "rev-parse", "--is-inside-work-tree")
	if err != nil || out != "true" {
		return gi, nil
	}
	gi.InRepo = true

	gi.Branch, _ = g.Branch(ctx)

	if sha, err := g.run(ctx, gitTimeout, "rev-parse", "--short", "HEAD"); err == nil {
		gi.ShortSHA = sha
	}
	if st, err := g.run(ctx, gitTimeout, "status", "--porcelain"); err == nil {
		gi.Dirty = st != ""
	}
	return gi, nil
}

// Branch returns the checked-out branch name (short).
func (g Git) Branch(ctx context.Context) (string, error) {
	out, err := g.run(ctx, gitTimeout, "symbolic-ref", "--quiet", "--short", "HEAD")
	if err == nil {
		return out, nil
	}
	// Detached head fallback
	return g.run(ctx, gitTimeout, "rev-parse", "--abbrev-ref", "HEAD")
}

// LastCommit returns the abbreviated hash of the newest commit of rev
// ("" means HEAD).
func (g Git) LastCommit(ctx context.Context, rev string) (string, error) {
	args := []string{"log", "-1"}
	if rev != "" {
		args = append(args, rev)
	}
	args = append(args, "--pretty=format:%h")
	return g.run(ctx, gitTimeout, args...)
}

// Fetch updates the remote-tracking ref of branch from remote.
func (g Git) Fetch(ctx context.Context, remote, branch string) error {
	args := []string{"fetch", remote}
	if branch != "" {
		args = append(args, branch)
	}
	_, err := g.run(ctx, fetchTimeout, args...)
	return err
}

// Checkout switches the working copy to branch, creating a tracking branch
// from origin when it does not exist locally.
func (g Git) Checkout(ctx context.Context, branch string) error {
	if _, err := g.run(ctx, gitTimeout, "checkout", branch); err == nil {
		return nil
	}
	if err := g.Fetch(ctx, "origin", branch); err != nil {
		return err
	}
	_, err := g.run(ctx, gitTimeout, "checkout", "-b", branch, "--track", "origin/"+branch)
	return err
}
