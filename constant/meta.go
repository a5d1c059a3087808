// Package constant defines immutable application-level identifiers and configuration defaults.
package constant

const (
	// App is the canonical application identifier used for filesystem paths, env prefixes and CLI branding.
	App = "mpvremote"

	// Version is the current application semantic version string.
	Version = "0.3.0"

	// UserAgent is sent by the remote client with every request to the server.
	UserAgent = App + "/" + Version
)

// Build metadata, overridden with -ldflags at release time.
var (
	BuiltAt  = "unknown"
	BuiltBy  = "unknown"
	Revision = "unknown"
)

// SchemaVersion is the version of the status wire format served by /status.
const SchemaVersion = 1
