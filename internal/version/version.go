package version

// AppVersion is overridden at build time:
//
//	go build -ldflags "-X agoricup/internal/version.AppVersion=v0.1.0"
var AppVersion = "dev"
