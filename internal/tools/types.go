package tools

// ToolInfo describes the CLI agoricup installs.
type ToolInfo struct {
	Name        string // display name
	Package     string // npm package name, used by the npm channel
	Binaries    []string
	VersionArgs [][]string
	SDKDir      string // directory name created by cloning the repository
}

// Installation is the result of a probe. The zero value means not installed.
// It is derived on every probe and never persisted.
type Installation struct {
	Installed bool
	Version   string
	Source    string // which binary or candidate path produced the version
}

// NotInstalled is the probe result for a tool that cannot be resolved.
var NotInstalled = Installation{}

// Dependency is a CLI the install script needs before it can run.
type Dependency struct {
	Name        string
	Binary      string
	VersionArgs []string
	Command     string // shell command that installs it
	Installed   bool
}
