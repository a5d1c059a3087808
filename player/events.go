package player

import (
	"math"

	"github.com/samber/mo"
)

// observedProperties are subscribed with observe_property; mpv sends the
// current value right away and then one property-change event per change.
var observedProperties = []string{
	"filename",
	PropPause,
	PropMute,
	PropFullscreen,
	PropLoopPlaylist,
	PropVolume,
	"time-pos",
	"percent-pos",
	"duration",
	"playlist",
	"playlist-pos",
}

// applyProperty folds one property-change payload into st.
// A nil payload means the property is unavailable, e.g. nothing is loaded.
func applyProperty(st *State, name string, data any) {
	switch name {
	case "filename":
		if s, ok := data.(string); ok {
			st.Filename = mo.Some(s)
		} else {
			st.Filename = mo.None[string]()
		}
	case PropPause:
		st.Pause = data == true
	case PropMute:
		st.Mute = data == true
	case PropFullscreen:
		st.Fullscreen = data == true
	case PropLoopPlaylist:
		st.RepeatAll = data != nil && data != false && data != "no"
	case PropVolume:
		if f, ok := data.(float64); ok {
			st.Volume = int(math.Round(f))
		}
	case "time-pos":
		st.TimePos = floatOption(data)
	case "percent-pos":
		st.PercentPos = floatOption(data)
	case "duration":
		st.Duration = floatOption(data)
	case "playlist":
		st.Playlist = playlistNames(data)
	case "playlist-pos":
		if f, ok := data.(float64); ok {
			st.PlaylistPos = int(f)
		} else {
			st.PlaylistPos = -1
		}
	}
}

func floatOption(data any) mo.Option[float64] {
	if f, ok := data.(float64); ok {
		return mo.Some(f)
	}
	return mo.None[float64]()
}

// playlistNames extracts entry filenames from mpv's playlist property:
// an array of objects carrying at least a "filename" field.
func playlistNames(data any) []string {
	entries, ok := data.([]any)
	if !ok {
		return nil
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		entry, ok := e.(map[string]any)
		if !ok {
			continue
		}
		if name, ok := entry["filename"].(string); ok {
			names = append(names, name)
		}
	}
	return names
}
