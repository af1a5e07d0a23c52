package system

import (
	"context"
	"errors"
	"os/exec"
	"strings"
	"testing"
)

type gitFake struct {
	outputs map[string]string
	calls   []string
}

func (f *gitFake) Output(_ context.Context, _ string, name string, args ...string) (string, error) {
	key := name + " " + strings.Join(args, " ")
	f.calls = append(f.calls, key)
	if out, ok := f.outputs[key]; ok {
		return out, nil
	}
	return "", errors.New("exit status 1")
}

func (f *gitFake) LookPath(name string) (string, error) {
	if name == "git" {
		return "/usr/bin/git", nil
	}
	return "", exec.ErrNotFound
}

func TestGit_LastCommitAndFetch(t *testing.T) {
	f := &gitFake{outputs: map[string]string{
		"git -C /sdk log -1 --pretty=format:%h":               "abc123",
		"git -C /sdk fetch origin master":                     "",
		"git -C /sdk log -1 origin/master --pretty=format:%h": "def456\n",
	}}
	g := Git{Runner: f, Dir: "/sdk"}
	ctx := context.Background()

	local, err := g.LastCommit(ctx, "")
	if err != nil || local != "abc123" {
		t.Fatalf("local: %q %v", local, err)
	}
	if err := g.Fetch(ctx, "origin", "master"); err != nil {
		t.Fatalf("fetch: %v", err)
	}
	remote, err := g.LastCommit(ctx, "origin/master")
	if err != nil || remote != "def456" {
		t.Fatalf("remote: %q %v", remote, err)
	}
}

func TestGit_Info(t *testing.T) {
	f := &gitFake{outputs: map[string]string{
		"git -C /sdk rev-parse --is-inside-work-tree":   "true\n",
		"git -C /sdk symbolic-ref --quiet --short HEAD": "master\n",
		"git -C /sdk rev-parse --short HEAD":            "abc123\n",
		"git -C /sdk status --porcelain":                " M package.json\n",
	}}
	gi, err := Git{Runner: f, Dir: "/sdk"}.Info(context.Background())
	if err != nil {
		t.Fatalf("Info: %v", err)
	}
	if !gi.InRepo || gi.Branch != "master" || gi.ShortSHA != "abc123" || !gi.Dirty {
		t.Fatalf("unexpected info: %+v", gi)
	}
}

func TestGit_InfoOutsideRepo(t *testing.T) {
	gi, err := Git{Runner: &gitFake{}, Dir: "/tmp"}.Info(context.Background())
	if err != nil || gi.InRepo {
		t.Fatalf("expected zero info, got %+v %v", gi, err)
	}
}

func TestGit_CheckoutTracksRemoteBranch(t *testing.T) {
	f := &gitFake{outputs: map[string]string{
		"git -C /sdk fetch origin dev":                   "",
		"git -C /sdk checkout -b dev --track origin/dev": "",
	}}
	if err := (Git{Runner: f, Dir: "/sdk"}).Checkout(context.Background(), "dev"); err != nil {
		t.Fatalf("Checkout: %v", err)
	}
	if len(f.calls) != 3 {
		t.Fatalf("expected checkout, fetch, checkout -b; got %v", f.calls)
	}
}
