// Package version carries the build version string.
package version

// Version is stamped at build time via -ldflags.
var Version = "dev"
