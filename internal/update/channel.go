package update

import (
	"context"
	"fmt"

	clog "github.com/charmbracelet/log"

	"agoricup/internal/config"
	"agoricup/internal/system"
	"agoricup/internal/tools"
)

// Channel resolves the installed and the available reference of the SDK.
// References are compared for equality only.
type Channel interface {
	Name() string
	Refs(ctx context.Context, inst tools.Installation) (local, remote string, err error)
}

// checkoutInspector is implemented by channels backed by a local clone.
type checkoutInspector interface {
	Checkout(ctx context.Context) (system.GitInfo, error)
}

// GitChannel compares the newest commit of the cloned SDK with the newest
// commit of the tracked branch on origin.
type GitChannel struct {
	Git    system.Git
	Branch string
	Log    *clog.Logger
}

func (GitChannel) Name() string { return config.ChannelGit }

func (c GitChannel) Refs(ctx context.Context, _ tools.Installation) (string, string, error) {
	c.ensureBranch(ctx)

	local, err := c.Git.LastCommit(ctx, "")
	if err != nil {
		return "", "", fmt.Errorf("local commit: %w", err)
	}
	if err := c.Git.Fetch(ctx, "origin", c.Branch); err != nil {
		// compare against whatever origin/<branch> we already have
		c.Log.Warn("git fetch failed", "branch", c.Branch, "err", err)
	}
	remote, err := c.Git.LastCommit(ctx, "origin/"+c.Branch)
	if err != nil {
		return local, "", fmt.Errorf("remote commit: %w", err)
	}
	return local, remote, nil
}

// Checkout reports the branch, commit and local changes of the SDK clone.
func (c GitChannel) Checkout(ctx context.Context) (system.GitInfo, error) {
	return c.Git.Info(ctx)
}

// ensureBranch switches the SDK checkout to the configured branch.
func (c GitChannel) ensureBranch(ctx context.Context) {
	cur, err := c.Git.Branch(ctx)
	if err != nil || cur == c.Branch {
		return
	}
	c.Log.Info("Switching Agoric SDK to branch "+c.Branch, "from", cur)
	if err := c.Git.Checkout(ctx, c.Branch); err != nil {
		c.Log.Warn("could not switch branch", "branch", c.Branch, "err", err)
	}
}

// NpmChannel compares the probed CLI version with the latest published
// package version.
type NpmChannel struct {
	Runner  tools.Runner
	Package string
}

func (NpmChannel) Name() string { return config.ChannelNpm }

func (c NpmChannel) Refs(ctx context.Context, inst tools.Installation) (string, string, error) {
	v := tools.ParseVersion(inst.Version)
	if v == "" {
		v = inst.Version
	}
	local := tools.NormalizeVersion(v)
	remote, err := tools.NpmLatestVersion(ctx, c.Runner, c.Package)
	if err != nil {
		return local, "", fmt.Errorf("latest %s version: %w", c.Package, err)
	}
	return local, tools.NormalizeVersion(remote), nil
}
