package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// WithEnv sets env var to val for the duration of the test scope.
// Returns a cleanup func to restore previous value.
func WithEnv(t *testing.T, key, val string) func() {
	t.Helper()
	old, had := os.LookupEnv(key)
	if val == "" {
		_ = os.Unsetenv(key)
	} else {
		_ = os.Setenv(key, val)
	}
	return func() {
		if had {
			_ = os.Setenv(key, old)
		} else {
			_ = os.Unsetenv(key)
		}
	}
}

// TempHome points HOME, USERPROFILE and XDG_CONFIG_HOME at a fresh temp dir
// and returns it. Restoration is registered with t.Cleanup.
func TempHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Cleanup(WithEnv(t, "HOME", home))
	t.Cleanup(WithEnv(t, "USERPROFILE", home))
	t.Cleanup(WithEnv(t, "XDG_CONFIG_HOME", filepath.Join(home, ".config")))
	return home
}
