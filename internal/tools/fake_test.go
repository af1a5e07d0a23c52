package tools

import (
	"context"
	"errors"
	"os/exec"
	"strings"
)

// fakeRunner answers LookPath from paths and Output from outputs keyed by
// "name arg1 arg2".
type fakeRunner struct {
	paths   map[string]string
	outputs map[string]string
	fail    map[string]bool
	calls   []string
}

func (f *fakeRunner) Output(_ context.Context, _ string, name string, args ...string) (string, error) {
	key := strings.TrimSpace(name + " " + strings.Join(args, " "))
	f.calls = append(f.calls, key)
	if f.fail[key] {
		return "", errors.New("spawn failed")
	}
	out, ok := f.outputs[key]
	if !ok {
		return "", exec.ErrNotFound
	}
	return out, nil
}

func (f *fakeRunner) LookPath(name string) (string, error) {
	if p, ok := f.paths[name]; ok {
		return p, nil
	}
	return "", exec.ErrNotFound
}
