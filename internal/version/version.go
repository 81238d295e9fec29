// Package version provides build and version information.
package version

import "fmt"

// Name is the program name shown in the header and help output.
const Name = "apidoc"

// Build information set via ldflags.
var (
	// Version is the dotted release number (set via -ldflags).
	Version = "2.2.0"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// Date is the build date (set via -ldflags).
	Date = "unknown"
)

// Header returns the program header line in markup form.
func Header() string {
	return fmt.Sprintf("@header@%s %s@c - API documentation generator\n\n", Name, Version)
}
