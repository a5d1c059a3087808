// Package where implements a cross-platform resolver for application-specific filesystem paths.
package where

import (
	"os"
	"path/filepath"

	"github.com/mpvremote/mpvremote/constant"
	"github.com/mpvremote/mpvremote/filesystem"
	"github.com/mpvremote/mpvremote/key"
	"github.com/samber/lo"
	"github.com/spf13/viper"
)

// EnvConfigPath is the environment variable identifier used to override the default configuration directory.
const EnvConfigPath = "MPVREMOTE_CONFIG_PATH"

// ensureDir guarantees the existence of a directory at the specified path, creating it if necessary.
func ensureDir(path string) string {
	lo.Must0(filesystem.API().MkdirAll(path, os.ModePerm))
	return path
}

// Config resolves the absolute path to the primary application configuration directory.
// The path can be explicitly specified via the MPVREMOTE_CONFIG_PATH environment variable.
func Config() string {
	if custom, ok := os.LookupEnv(EnvConfigPath); ok {
		return ensureDir(custom)
	}

	base := lo.Must(os.UserConfigDir())
	return ensureDir(filepath.Join(base, constant.App))
}

// Cache resolves the absolute path to the application's persistent cache directory.
func Cache() string {
	base, err := os.UserCacheDir()
	if err != nil {
		base = filepath.Join(".", "cache")
	}
	return ensureDir(filepath.Join(base, constant.App))
}

// Logs resolves the absolute path to the directory used for application diagnostic logs.
func Logs() string {
	return ensureDir(filepath.Join(Config(), "logs"))
}

// Media resolves the media root served by the server.
func Media() string {
	if custom := viper.GetString(key.ServerMediaDir); custom != "" {
		return ensureDir(custom)
	}
	return ensureDir(filepath.Join(Config(), "media"))
}

// Temp resolves the directory that holds files received through /stream.
// A configured directory gets its own subdirectory, since the temp root is wiped on start.
func Temp() string {
	if custom := viper.GetString(key.ServerTempDir); custom != "" {
		return ensureDir(filepath.Join(custom, constant.App))
	}
	return ensureDir(filepath.Join(os.TempDir(), constant.App))
}

// URLs resolves the newline-delimited file of saved remote URLs.
func URLs() string {
	return filepath.Join(Config(), ".urls")
}

// Draft resolves the cache file holding the playlist being composed on the client.
func Draft() string {
	return filepath.Join(Cache(), "draft.json")
}

// Socket resolves the IPC socket path used to talk to mpv.
func Socket() string {
	return filepath.Join(Temp(), "mpv.sock")
}
