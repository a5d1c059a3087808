// Package status projects engine state onto the wire format served by /status.
// Every endpoint and client shares this one schema; field names change only with Version.
package status

import (
	"github.com/invopop/jsonschema"
	"github.com/mpvremote/mpvremote/constant"
	"github.com/mpvremote/mpvremote/player"
	"github.com/samber/lo"
)

// Snapshot is an immutable, point-in-time projection of the player state.
// Optional fields are null when nothing is loaded.
type Snapshot struct {
	Version       int      `json:"version" jsonschema:"description=Wire schema version"`
	TimePos       *float64 `json:"time_pos" jsonschema:"description=Playback position in seconds"`
	PercentPos    *float64 `json:"percent_pos" jsonschema:"minimum=0,maximum=100"`
	TimeRemaining *float64 `json:"time_remaining" jsonschema:"description=duration minus time_pos"`
	Duration      *float64 `json:"duration"`
	Pause         bool     `json:"pause"`
	Filename      *string  `json:"filename"`
	PlaylistNames []string `json:"playlist_names"`
	Mute          bool     `json:"mute"`
	Fullscreen    bool     `json:"fullscreen"`
	Repeat        bool     `json:"repeat"`
	Volume        int      `json:"volume" jsonschema:"minimum=0,maximum=100"`
	PlaylistPos   int      `json:"playlist_pos" jsonschema:"description=-1 when no entry is active"`
}

// Project maps s onto the wire schema.
func Project(s player.State) Snapshot {
	s = s.Normalize()

	snap := Snapshot{
		Version:       constant.SchemaVersion,
		Pause:         s.Pause,
		Mute:          s.Mute,
		Fullscreen:    s.Fullscreen,
		Repeat:        s.RepeatAll,
		Volume:        s.Volume,
		PlaylistPos:   s.PlaylistPos,
		PlaylistNames: lo.Ternary(s.Playlist == nil, []string{}, s.Playlist),
	}

	if v, ok := s.Filename.Get(); ok {
		snap.Filename = &v
	}
	if v, ok := s.TimePos.Get(); ok {
		snap.TimePos = &v
	}
	if v, ok := s.PercentPos.Get(); ok {
		snap.PercentPos = &v
	}
	if v, ok := s.Duration.Get(); ok {
		snap.Duration = &v
	}
	if snap.Duration != nil && snap.TimePos != nil {
		remaining := *snap.Duration - *snap.TimePos
		snap.TimeRemaining = &remaining
	}

	return snap
}

// Loaded reports whether the snapshot describes a loaded file.
func (s Snapshot) Loaded() bool {
	return s.Filename != nil
}

// Current returns the playlist entry being played, if any.
func (s Snapshot) Current() (string, bool) {
	if s.PlaylistPos < 0 || s.PlaylistPos >= len(s.PlaylistNames) {
		return "", false
	}
	return s.PlaylistNames[s.PlaylistPos], true
}

// Schema returns the JSON schema of Snapshot.
func Schema() *jsonschema.Schema {
	r := &jsonschema.Reflector{
		DoNotReference: true,
	}
	schema := r.Reflect(&Snapshot{})
	schema.Title = "mpvremote status"
	schema.Description = "Snapshot served by GET /status"
	return schema
}
