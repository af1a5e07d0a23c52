package platform

import (
	"os"
	"runtime"
	"strings"
)

// Platform holds everything that differs between Windows and POSIX hosts when
// building shell command lines. It is built once at startup and passed to the
// components that emit commands, so no call site branches on the OS itself.
type Platform struct {
	OS   string // runtime.GOOS value
	Home string // user home directory
}

// Current returns the Platform for the running process.
func Current() Platform {
	home, err := os.UserHomeDir()
	if err != nil || strings.TrimSpace(home) == "" {
		home = os.Getenv("HOME")
	}
	return Platform{OS: runtime.GOOS, Home: home}
}

// Windows reports whether commands target PowerShell on Windows.
func (p Platform) Windows() bool { return p.OS == "windows" }

// Join joins path elements with the target OS separator. filepath.Join is not
// used because scripts for one OS may be rendered on another in tests.
func (p Platform) Join(elem ...string) string {
	sep := "/"
	if p.Windows() {
		sep = `\`
	}
	parts := make([]string, 0, len(elem))
	for i, e := range elem {
		if e == "" {
			continue
		}
		if i > 0 {
			e = strings.TrimLeft(e, `/\`)
		}
		if i < len(elem)-1 {
			e = strings.TrimRight(e, `/\`)
		}
		parts = append(parts, e)
	}
	return strings.Join(parts, sep)
}

// BinDir is the per-user directory the CLI gets linked into (~/bin).
func (p Platform) BinDir() string { return p.Join(p.Home, "bin") }

// SystemBinDir is the system-wide binary directory that needs elevation.
func (p Platform) SystemBinDir() string {
	if p.Windows() {
		return ""
	}
	return "/usr/local/bin"
}

// Shell returns the interactive shell and its arguments.
func (p Platform) Shell() (string, []string) {
	if p.Windows() {
		if ps := os.Getenv("AGORICUP_SHELL"); ps != "" {
			return ps, nil
		}
		return "powershell.exe", []string{"-NoLogo"}
	}
	// Respect $SHELL, default to /bin/bash then /bin/sh
	if sh := os.Getenv("SHELL"); sh != "" {
		return sh, []string{"-l"}
	}
	if _, err := os.Stat("/bin/bash"); err == nil {
		return "/bin/bash", []string{"-l"}
	}
	return "/bin/sh", []string{"-l"}
}

// RemoveAll returns the command that recursively deletes path.
func (p Platform) RemoveAll(path string) string {
	if p.Windows() {
		return "Remove-Item -Recurse -Force -LiteralPath " + p.Quote(path)
	}
	return "rm -rf " + p.Quote(path)
}

// Quote returns s as one shell word. PowerShell words are always single
// quoted. POSIX words made of safe characters are left alone, and a leading
// "~/" stays outside the quotes so the shell still expands it.
func (p Platform) Quote(s string) string {
	if p.Windows() {
		return "'" + strings.ReplaceAll(s, "'", "''") + "'"
	}
	if s != "" && strings.IndexFunc(s, unsafePosix) < 0 {
		return s
	}
	if rest, ok := strings.CutPrefix(s, "~/"); ok {
		return "~/" + p.Quote(rest)
	}
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

func unsafePosix(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return false
	}
	return !strings.ContainsRune("_%+=:,./-", r)
}

// ExecutionPolicy returns the command relaxing script execution for the
// session, or "" when the platform has no such policy.
func (p Platform) ExecutionPolicy() string {
	if p.Windows() {
		return "Set-ExecutionPolicy -ExecutionPolicy Bypass -Scope Process"
	}
	return ""
}

// PathListSeparator is the separator between PATH entries.
func (p Platform) PathListSeparator() string {
	if p.Windows() {
		return ";"
	}
	return ":"
}

// PathContains reports whether dir is one of the entries of the PATH value.
// Windows entries compare case-insensitively.
func (p Platform) PathContains(path, dir string) bool {
	want := strings.TrimRight(dir, `/\`)
	for _, entry := range strings.Split(path, p.PathListSeparator()) {
		entry = strings.TrimRight(entry, `/\`)
		if entry == "" {
			continue
		}
		if entry == want || (p.Windows() && strings.EqualFold(entry, want)) {
			return true
		}
	}
	return false
}

// AppendPath returns the command that adds dir to PATH. POSIX shells get a
// session-local export; Windows gets a persistent setx write.
func (p Platform) AppendPath(dir string) string {
	if p.Windows() {
		return `setx PATH "$env:PATH;` + escapeDouble(dir, "`\"$", '`') + `"`
	}
	return `export PATH="$PATH:` + escapeDouble(dir, "\\\"$`", '\\') + `"`
}

// escapeDouble prefixes every rune of special in s with esc, for use inside
// a double quoted word.
func escapeDouble(s, special string, esc rune) string {
	var b strings.Builder
	for _, r := range s {
		if strings.ContainsRune(special, r) {
			b.WriteRune(esc)
		}
		b.WriteRune(r)
	}
	return b.String()
}

// ElevatedMove returns the privileged command moving src into dst, or "" on
// platforms without sudo.
func (p Platform) ElevatedMove(src, dst string) string {
	if p.Windows() {
		return ""
	}
	return "sudo mv " + p.Quote(src) + " " + p.Quote(dst)
}

// EndMarker is the text printed by the shell once every queued command has
// run. The command that prints it (EndMarkerCommand) never contains the
// marker literally, so the terminal echo of the command is not mistaken for
// its output.
const EndMarker = "agoricup-script-done"

// EndMarkerCommand returns the command printing EndMarker.
func (p Platform) EndMarkerCommand() string {
	if p.Windows() {
		return `Write-Output ("agoricup-script" + "-done")`
	}
	return `printf '%s-%s\n' agoricup-script done`
}

// Exit returns the command that ends the interactive shell.
func (p Platform) Exit() string { return "exit" }
