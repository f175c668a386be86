// Package constant defines immutable application-level identifiers and configuration defaults.
package constant

const (
	// Framepeek is the canonical application identifier used for filesystem paths and CLI branding.
	Framepeek = "framepeek"

	// Version is the current application semantic version string.
	Version = "0.1.0"
)

// Build metadata, overridable at link time.
var (
	BuiltAt  = "unknown"
	BuiltBy  = "unknown"
	Revision = "unknown"
)
