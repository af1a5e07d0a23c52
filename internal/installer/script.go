// Package installer queues the Agoric SDK setup script into an interactive
// session and reports the outcome by probing the CLI again.
package installer

import (
	"fmt"

	clog "github.com/charmbracelet/log"

	"agoricup/internal/platform"
	"agoricup/internal/tools"
)

// ScriptInput is everything the setup script depends on. Filesystem and
// environment lookups are passed in so scripts for any OS can be built and
// checked anywhere.
type ScriptInput struct {
	Platform   platform.Platform
	InstallDir string
	SDKDir     string
	Branch     string
	Repository string
	Missing    []tools.Dependency

	// Exists reports whether a path is present on disk.
	Exists func(path string) bool
	// Path is the value of $PATH; PathSet is false when it is unset.
	Path    string
	PathSet bool
}

// Note is a log entry emitted while the script is built.
type Note struct {
	Level clog.Level
	Msg   string
}

// Script is the ordered list of lines sent to the session.
type Script struct {
	Lines []string
	Notes []Note
}

func (s *Script) send(line string) {
	if line != "" {
		s.Lines = append(s.Lines, line)
	}
}

func (s *Script) note(level clog.Level, format string, args ...any) {
	s.Notes = append(s.Notes, Note{Level: level, Msg: fmt.Sprintf(format, args...)})
}

// BuildScript renders the setup script for in.Platform.
func BuildScript(in ScriptInput) Script {
	p := in.Platform
	exists := in.Exists
	if exists == nil {
		exists = func(string) bool { return false }
	}
	sdkDir := in.SDKDir
	if sdkDir == "" {
		sdkDir = tools.Agoric.SDKDir
	}
	var s Script

	// Dependencies first
	for _, dep := range in.Missing {
		if dep.Installed {
			continue
		}
		s.note(clog.WarnLevel, "%s not installed. Installing %s...", dep.Name, dep.Name)
		s.send(dep.Command)
	}

	// Previous setup
	sdkPath := p.Join(in.InstallDir, sdkDir)
	if exists(sdkPath) {
		s.note(clog.InfoLevel, "Deleting previous version of Agoric SDK...")
		s.send(p.RemoveAll(sdkPath))
		prev := p.Join(p.Home, "bin", "agoric")
		if p.Windows() {
			if exists(prev) {
				s.send(p.RemoveAll(prev))
			}
		} else {
			s.send(p.RemoveAll("~/bin/agoric"))
		}
		if other := p.Join(in.InstallDir, "bin", "agoric"); other != prev && exists(other) {
			s.send(p.RemoveAll(other))
		}
	}

	s.note(clog.InfoLevel, "Installing and setting up agoric-sdk...")
	if in.Branch != "" {
		s.send("git clone --branch " + p.Quote(in.Branch) + " " + p.Quote(in.Repository))
	} else {
		s.send("git clone " + p.Quote(in.Repository))
	}
	s.send("cd " + sdkDir)
	s.send(p.ExecutionPolicy())
	s.send("yarn install")
	s.send("yarn build")
	s.send("yarn link-cli ~/bin/agoric")

	bindPath(p, in, &s)

	s.send(p.EndMarkerCommand())
	return s
}

// bindPath makes sure ~/bin is on PATH for the linked CLI.
func bindPath(p platform.Platform, in ScriptInput, s *Script) {
	if !in.PathSet || in.Path == "" {
		s.note(clog.WarnLevel, "$PATH is not set, cannot verify")
		return
	}
	bindir := p.BinDir()
	if p.PathContains(in.Path, bindir) {
		return
	}
	s.note(clog.WarnLevel, "Script directory %s does not appear in $PATH. Attempting to add it to your PATH environment variable", bindir)
	s.send(p.AppendPath(bindir))
	if sys := p.SystemBinDir(); sys != "" {
		s.send(p.ElevatedMove("~/bin/agoric", sys+"/agoric"))
	}
}
