// Package version holds the build version, set with -ldflags.
package version

// Version is overridden at link time: -X github.com/phanxgames/xrinput/internal/version.Version=v1.2.3
var Version = "dev"
