// Package key defines the canonical set of configuration identifiers used for centralized settings management.
package key

// DefinedFieldsCount represents the total cardinality of the application configuration schema.
const DefinedFieldsCount = 26

// Server - these keys configure the HTTP command surface.
const (
	ServerHost           = "server.host"
	ServerPort           = "server.port"
	ServerMediaDir       = "server.media_dir"
	ServerTempDir        = "server.temp_dir"
	ServerAPIKey         = "server.api_key"
	ServerCorsOrigins    = "server.cors_origins"
	ServerMaxConnections = "server.max_connections"
	ServerWatchMedia     = "server.watch_media"
)

// Player - these keys govern the engine owned by the server.
const (
	PlayerBackend     = "player.backend"
	PlayerBinary      = "player.binary"
	PlayerFullscreen  = "player.fullscreen"
	PlayerOnTop       = "player.ontop"
	PlayerYtdl        = "player.ytdl"
	PlayerLoadTimeout = "player.load_timeout"
	PlayerIPCTimeout  = "player.ipc_timeout"
)

// Client - these keys configure the remote side that talks to the server.
const (
	ClientServer          = "client.server"
	ClientPollInterval    = "client.poll_interval"
	ClientTimeout         = "client.timeout"
	ClientMediaExtensions = "client.media_extensions"
	ClientStopOnExit      = "client.stop_on_exit"
)

// Iconography - these keys manage the visual rendering of UI symbols.
const (
	IconsVariant = "icons.variant"
)

// Logging Infrastructure - these keys manage the application's internal diagnostics and auditing system.
const (
	LogsWrite = "logs.write"
	LogsLevel = "logs.level"
	LogsJson  = "logs.json"
)

// CLI Execution Environment - these flags and settings govern the non-TUI application behavior.
const (
	CliColored      = "cli.colored"
	CliVersionCheck = "cli.version_check"
)
