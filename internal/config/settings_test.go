package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tu "agoricup/internal/testutil"
)

func TestLoad_DefaultsWhenMissing(t *testing.T) {
	s, err := Load(filepath.Join(t.TempDir(), "settings.yaml"))
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if !s.AutoUpdateEnabled() {
		t.Fatalf("auto-update should default to true")
	}
	if s.Channel != ChannelGit || s.Branch != DefaultBranch || s.Repository != DefaultRepository {
		t.Fatalf("unexpected defaults: %+v", s)
	}
}

// autoUpdate: false must stay false once read; an "or true" default would
// make the setting impossible to disable.
func TestLoad_AutoUpdateFalseHonoured(t *testing.T) {
	p := filepath.Join(t.TempDir(), "settings.yaml")
	if err := os.WriteFile(p, []byte("autoUpdate: false\nchannel: NPM\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	s, err := Load(p)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if s.AutoUpdateEnabled() {
		t.Fatalf("autoUpdate: false was not honoured")
	}
	if s.Channel != ChannelNpm {
		t.Fatalf("channel not normalised: %q", s.Channel)
	}
}

func TestLoad_Malformed(t *testing.T) {
	p := filepath.Join(t.TempDir(), "settings.yaml")
	if err := os.WriteFile(p, []byte("autoUpdate: [\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(p); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestResolveInstallDir(t *testing.T) {
	home := tu.TempHome(t)
	sdk := filepath.Join(home, "src")
	if err := os.MkdirAll(sdk, 0o755); err != nil {
		t.Fatal(err)
	}

	if dir, fell := (Settings{}).ResolveInstallDir(home); dir != home || fell {
		t.Fatalf("unset: got %q fallback=%v", dir, fell)
	}
	if dir, fell := (Settings{InstallDir: "~/src"}).ResolveInstallDir(home); dir != sdk || fell {
		t.Fatalf("tilde: got %q fallback=%v", dir, fell)
	}
	if dir, fell := (Settings{InstallDir: filepath.Join(home, "missing")}).ResolveInstallDir(home); dir != home || !fell {
		t.Fatalf("invalid: got %q fallback=%v", dir, fell)
	}
}

func TestSet(t *testing.T) {
	s := Defaults()
	if err := s.Set("autoUpdate", "false"); err != nil {
		t.Fatalf("Set autoUpdate: %v", err)
	}
	if s.AutoUpdateEnabled() {
		t.Fatalf("autoUpdate not applied")
	}
	if err := s.Set("channel", "svn"); err == nil {
		t.Fatalf("expected channel validation error")
	}
	if err := s.Set("autoupdate", "true"); !errors.Is(err, ErrUnknownKey) {
		t.Fatalf("expected ErrUnknownKey, got %v", err)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	p := filepath.Join(t.TempDir(), "nested", "settings.yaml")
	s := Defaults()
	_ = s.Set("branch", "community-dev")
	_ = s.Set("autoUpdate", "false")
	if err := Save(p, s); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := Load(p)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.Branch != "community-dev" || got.AutoUpdateEnabled() {
		t.Fatalf("unexpected settings after reload: %+v", got)
	}
}

func TestSettingsSchema(t *testing.T) {
	b, err := MarshalSchema(SettingsSchema())
	if err != nil {
		t.Fatalf("MarshalSchema: %v", err)
	}
	for _, key := range []string{"installDir", "autoUpdate", "channel"} {
		if !strings.Contains(string(b), `"`+key+`"`) {
			t.Fatalf("schema missing %s: %s", key, b)
		}
	}
}

func TestPathsUnderConfigHome(t *testing.T) {
	home := tu.TempHome(t)
	p, err := SettingsPath()
	if err != nil {
		t.Fatalf("SettingsPath: %v", err)
	}
	if !strings.HasPrefix(p, home) || filepath.Base(p) != "settings.yaml" {
		t.Fatalf("unexpected settings path %q", p)
	}
}

func TestValidate(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "settings.yaml")

	if msgs, err := Validate(path); err != nil || len(msgs) != 0 {
		t.Fatalf("missing file should be valid: %v %v", msgs, err)
	}

	if err := os.WriteFile(path, []byte("autoUpdate: false\nchannel: npm\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if msgs, err := Validate(path); err != nil || len(msgs) != 0 {
		t.Fatalf("valid file rejected: %v %v", msgs, err)
	}

	if err := os.WriteFile(path, []byte("channel: svn\nautoUpdate: sometimes\nbogus: 1\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	msgs, err := Validate(path)
	if err != nil {
		t.Fatal(err)
	}
	joined := strings.Join(msgs, "\n")
	for _, want := range []string{"channel", "autoUpdate", "bogus"} {
		if !strings.Contains(joined, want) {
			t.Fatalf("expected a violation mentioning %s, got:\n%s", want, joined)
		}
	}
}
