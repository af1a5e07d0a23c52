package tools

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// Runner runs short-lived external commands and resolves executables.
// Probes go through it so tests can substitute canned results.
type Runner interface {
	// Output runs name with args in dir ("" = current) and returns stdout.
	Output(ctx context.Context, dir, name string, args ...string) (string, error)
	// LookPath resolves an executable name like exec.LookPath.
	LookPath(name string) (string, error)
}

// CmdRunner is the Runner backed by os/exec.
type CmdRunner struct{}

var _ Runner = CmdRunner{}

// Output executes a command and returns its stdout as string.
func (CmdRunner) Output(ctx context.Context, dir, name string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	if dir != "" {
		cmd.Dir = dir
	}
	// Avoid opening pager or interactive prompts
	cmd.Env = append(os.Environ(), "NO_COLOR=1", "GIT_TERMINAL_PROMPT=0")
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	if ctx.Err() == context.DeadlineExceeded {
		return "", ctx.Err()
	}
	if err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return stdout.String(), fmt.Errorf("%s %s: %w: %s", name, strings.Join(args, " "), err, msg)
		}
		return stdout.String(), fmt.Errorf("%s %s: %w", name, strings.Join(args, " "), err)
	}
	return stdout.String(), nil
}

// LookPath resolves name on PATH.
func (CmdRunner) LookPath(name string) (string, error) {
	return exec.LookPath(name)
}
