// Package constant defines immutable application-level identifiers and configuration defaults.
package constant

const (
	// Segskip is the canonical application identifier used for filesystem paths and CLI branding.
	Segskip = "segskip"

	// Version is the current application semantic version string.
	Version = "0.3.1"

	// UserAgent is sent with every provider probe so local providers can tell the controller apart from browsers.
	UserAgent = Segskip + "/" + Version
)

// Build metadata, overridden with -ldflags at release time.
var (
	BuiltAt  = "unknown"
	BuiltBy  = "unknown"
	Revision = "unknown"
)
