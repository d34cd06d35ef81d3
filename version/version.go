// Package version holds the bin2hdr build version.
package version

// Version is overridden at build time with
// -ldflags "-X github.com/xll-gen/bin2hdr/version.Version=v1.2.3".
var Version = "dev"
