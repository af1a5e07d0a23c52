package tools

// Agoric is the toolchain managed by agoricup.
var Agoric = ToolInfo{
	Name:        "Agoric",
	Package:     "agoric",
	Binaries:    []string{"agoric"},
	VersionArgs: [][]string{{"--version"}},
	SDKDir:      "agoric-sdk",
}

// Dependencies lists the CLIs the install script relies on.
var Dependencies = []Dependency{
	{
		Name:        "Yarn",
		Binary:      "yarn",
		VersionArgs: []string{"--version"},
		Command:     "npm install --global yarn",
	},
}
