// Package version contains the bridge version.
package version

// Version is the bridge version.
const Version = "0.1.0-dev"
