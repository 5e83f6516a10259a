// Package version holds the build version, overridable with
// -ldflags "-X github.com/ndewijer/Investment-Admin-Console/internal/version.Version=...".
package version

// Version is the application version.
var Version = "1.0.0"
