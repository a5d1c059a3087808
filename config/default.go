package config

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"text/template"

	"github.com/mpvremote/mpvremote/color"
	"github.com/mpvremote/mpvremote/constant"
	"github.com/mpvremote/mpvremote/key"
	"github.com/mpvremote/mpvremote/style"
	"github.com/samber/lo"
	"github.com/spf13/viper"
)

// Field represents a configuration field definition.
type Field struct {
	Key         string
	Value       any
	Description string
}

// Pretty returns a colored string representation of the field for display.
func (f *Field) Pretty() string {
	var b strings.Builder
	lo.Must0(prettyTemplate.Execute(&b, f))
	return b.String()
}

// Env returns the environment variable name for this field.
func (f *Field) Env() string {
	env := strings.ToUpper(EnvKeyReplacer.Replace(f.Key))
	prefix := strings.ToUpper(constant.App + "_")
	if strings.HasPrefix(env, prefix) {
		return env
	}
	return prefix + env
}

// MarshalJSON customizes JSON output to include current and default values.
func (f *Field) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Key         string `json:"key"`
		Value       any    `json:"value"`
		Default     any    `json:"default"`
		Description string `json:"description"`
		Type        string `json:"type"`
	}{
		Key:         f.Key,
		Value:       viper.Get(f.Key),
		Default:     f.Value,
		Description: f.Description,
		Type:        f.typeName(),
	})
}

// typeName returns the string representation of the field's underlying value type.
func (f *Field) typeName() string {
	switch f.Value.(type) {
	case string:
		return "string"
	case int:
		return "int"
	case bool:
		return "bool"
	case []string:
		return "[]string"
	case []int:
		return "[]int"
	case float64:
		return "float64"
	default:
		return "unknown"
	}
}

// Default holds the map of all configuration fields.
var Default = make(map[string]Field)

// EnvExposed holds keys that are bound to environment variables.
var EnvExposed []string

func init() {
	// register validates and adds a new configuration field to the global registry.
	register := func(k string, v any, desc string) {
		if _, exists := Default[k]; exists {
			panic("Duplicate config key: " + k)
		}
		f := Field{Key: k, Value: v, Description: desc}
		Default[k] = f
		EnvExposed = append(EnvExposed, k)
	}

	register(key.ServerHost, "0.0.0.0", "Address the HTTP server listens on")
	register(key.ServerPort, 5555, "Port the HTTP server listens on")
	register(key.ServerMediaDir, "", "Media root served by /list and /upload.\nDefaults to the media directory under the config path")
	register(key.ServerTempDir, "", "Parent of the directory used by /stream.\nFiles go to an mpvremote subdirectory, wiped on every server start. Defaults to the system temp path")
	register(key.ServerAPIKey, "", "Bearer token required by the server.\nEmpty disables authentication")
	register(key.ServerCorsOrigins, []string{"*"}, "Origins allowed to call the server from a browser")
	register(key.ServerMaxConnections, 64, "Maximum simultaneous connections accepted by the server")
	register(key.ServerWatchMedia, true, "Watch the media root and push library changes to websocket subscribers")
	register(key.PlayerBackend, "mpv", "Engine driven by the server.\nAvailable options are: mpv, simulator")
	register(key.PlayerBinary, "mpv", "Path to the mpv executable")
	register(key.PlayerFullscreen, false, "Start the player fullscreen")
	register(key.PlayerOnTop, false, "Keep the player window on top")
	register(key.PlayerYtdl, true, "Let the player resolve remote streams with youtube-dl/yt-dlp")
	register(key.PlayerLoadTimeout, 15, "Seconds to wait for the player to report playing or paused")
	register(key.PlayerIPCTimeout, 5, "Seconds to wait for a single IPC reply from the player")
	register(key.ClientServer, "http://localhost:5555", "Server the remote client talks to")
	register(key.ClientPollInterval, 1000, "Status polling interval in milliseconds")
	register(key.ClientTimeout, 30, "Request timeout in seconds.\nUploads are not bounded by it")
	register(key.ClientMediaExtensions, []string{".mp4", ".mkv", ".webm", ".avi", ".mov", ".mp3", ".flac", ".ogg", ".m4a", ".wav"}, "File extensions accepted by upload and stream")
	register(key.ClientStopOnExit, false, "Stop playback when the terminal UI exits")
	register(key.IconsVariant, "plain", "Icons variant.\nAvailable options are: emoji, plain, squares, nerd (nerd-font required)")
	register(key.LogsWrite, false, "Write logs")
	register(key.LogsLevel, "info", "Available options are: (from less to most verbose)\npanic, fatal, error, warn, info, debug, trace")
	register(key.LogsJson, false, "Use json format for logs")
	register(key.CliColored, true, "Enable colored CLI output")
	register(key.CliVersionCheck, true, "Warn when the server runs an incompatible version")
}

var prettyTemplate = lo.Must(template.New("pretty").Funcs(template.FuncMap{
	"faint":    style.Faint,
	"bold":     style.Bold,
	"purple":   style.Fg(color.Purple),
	"blue":     style.Fg(color.Blue),
	"cyan":     style.Fg(color.Cyan),
	"value":    func(k string) any { return viper.Get(k) },
	"typename": func(v any) string { return reflect.TypeOf(v).String() },
	"hl": func(v any) string {
		switch value := v.(type) {
		case bool:
			b := strconv.FormatBool(value)
			if value {
				return style.Fg(color.Green)(b)
			}
			return style.Fg(color.Red)(b)
		case string:
			return style.Fg(color.Yellow)(value)
		default:
			return fmt.Sprint(value)
		}
	},
}).Parse(`{{ faint .Description }}
{{ blue "Key:" }}     {{ purple .Key }}
{{ blue "Env:" }}     {{ .Env }}
{{ blue "Value:" }}   {{ hl (value .Key) }}
{{ blue "Default:" }} {{ hl (.Value) }}
{{ blue "Type:" }}    {{ typename .Value }}`))
