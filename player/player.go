// Package player defines a unified abstraction layer for media playback engines.
// The architecture supports multiple backends, with the primary implementation targeting 'mpv' via its JSON-IPC interface.
package player

import (
	"context"
	"errors"
)

// Engine failures, classified by the command surface.
var (
	// ErrTimeout is returned when the engine does not confirm a state change in time.
	ErrTimeout = errors.New("timed out waiting for the player")

	// ErrUnavailable is returned when the engine process or its IPC channel is gone.
	ErrUnavailable = errors.New("player unavailable")

	// ErrEngine is returned when the engine rejects a command.
	ErrEngine = errors.New("player command failed")

	// ErrOutOfRange is returned for arguments outside the range the engine accepts.
	ErrOutOfRange = errors.New("value out of range")
)

// LoadMode selects how a target is added to the engine playlist.
type LoadMode string

const (
	// LoadReplace stops the current file and plays the target immediately.
	LoadReplace LoadMode = "replace"

	// LoadAppend adds the target to the end of the playlist without starting it.
	LoadAppend LoadMode = "append"
)

// Property names shared by every backend. They follow mpv naming.
const (
	PropPause        = "pause"
	PropMute         = "mute"
	PropFullscreen   = "fullscreen"
	PropLoopPlaylist = "loop-playlist"
	PropVolume       = "volume"
)

// Engine encapsulates the capabilities the server needs from a media playback backend.
type Engine interface {
	// Load adds target to the playlist according to mode.
	Load(ctx context.Context, target string, mode LoadMode) error

	// Stop halts playback and clears the playlist.
	Stop(ctx context.Context) error

	// Set assigns an engine property.
	Set(ctx context.Context, property string, value any) error

	// Seek moves playback to an absolute percentage of the current file.
	Seek(ctx context.Context, percent float64) error

	// PlaylistClear removes every entry except the current one.
	PlaylistClear(ctx context.Context) error

	// PlaylistPlayIndex starts the entry at index i.
	PlaylistPlayIndex(ctx context.Context, i int) error

	// PlaylistNext advances to the next entry.
	PlaylistNext(ctx context.Context) error

	// PlaylistPrev goes back to the previous entry.
	PlaylistPrev(ctx context.Context) error

	// State returns the last observed engine state. It never blocks on the engine.
	State() State

	// Subscribe registers for change notifications. The returned function unsubscribes.
	Subscribe() (<-chan struct{}, func())

	// Wait returns a channel that is closed when the engine terminates.
	Wait() <-chan struct{}

	// Close terminates the engine and releases all associated system resources.
	Close() error
}
