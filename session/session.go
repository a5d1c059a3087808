// Package session implements the command surface of the remote: every request is validated
// against the current player state before it is turned into engine commands.
package session

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sync"
	"sync/atomic"

	"github.com/mpvremote/mpvremote/log"
	"github.com/mpvremote/mpvremote/media"
	"github.com/mpvremote/mpvremote/player"
	"github.com/mpvremote/mpvremote/status"
	"github.com/mpvremote/mpvremote/uri"
)

// Phase is the state of the single "now playing" session.
type Phase string

const (
	Idle    Phase = "idle"
	Loading Phase = "loading"
	Playing Phase = "playing"
	Paused  Phase = "paused"
)

// Result is the outcome of an accepted command.
type Result struct {
	Status  int    `json:"-"`
	Message string `json:"message"`
	File    string `json:"file,omitempty"`
}

// ListResult is the outcome of listing the media root.
type ListResult struct {
	Status  int      `json:"-"`
	Message string   `json:"message"`
	Files   []string `json:"files"`
}

// PlayRequest asks for a single reference to be played.
type PlayRequest struct {
	// URI is the base64url-encoded reference.
	URI string
	// Local selects a file under the media root instead of a remote stream.
	Local bool
	// Replace allows interrupting whatever is loaded.
	Replace bool
}

// PlaylistRequest asks for a playlist to be played.
type PlaylistRequest struct {
	Items []string `json:"plist"`
	New   bool     `json:"new"`
	Index int      `json:"index"`
}

// Controller validates commands against the player state and applies them.
// Commands are serialized so that a guard and the mutation it protects cannot interleave with another command.
type Controller struct {
	handle  *player.Handle
	library *media.Library
	mu      sync.Mutex
	loading atomic.Bool
}

// New returns a controller over handle and library.
func New(handle *player.Handle, library *media.Library) *Controller {
	return &Controller{
		handle:  handle,
		library: library,
	}
}

// Phase derives the session phase from the player state.
func (c *Controller) Phase() Phase {
	if c.loading.Load() {
		return Loading
	}

	s := c.handle.Snapshot()
	switch {
	case !s.Loaded():
		return Idle
	case s.Pause:
		return Paused
	default:
		return Playing
	}
}

// Status returns the current snapshot.
func (c *Controller) Status() status.Snapshot {
	return status.Project(c.handle.Snapshot())
}

// Changes subscribes to player state changes.
func (c *Controller) Changes() (<-chan struct{}, func()) {
	return c.handle.Changes()
}

func ok(code int, format string, args ...any) Result {
	return Result{Status: code, Message: fmt.Sprintf(format, args...)}
}

// Play loads a single local file or remote stream.
func (c *Controller) Play(ctx context.Context, req PlayRequest) (Result, error) {
	target, err := uri.Decode(req.URI)
	if err != nil {
		return Result{}, &Error{Kind: Validation, Status: http.StatusUnprocessableEntity, Message: "internal error on decoding b64 uri", Err: err}
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.handle.Snapshot().Loaded() && !req.Replace {
		return Result{}, reject(Conflict, http.StatusForbidden, "replace is set to false, cannot override current video")
	}

	if req.Local {
		path, err := c.library.Resolve(target)
		if err != nil {
			return Result{}, &Error{Kind: NotFound, Status: http.StatusNotFound, Message: "local file not available", Err: err}
		}
		target = path
	} else if !uri.IsRemote(target) {
		return Result{}, reject(NotFound, http.StatusNotFound, "remote uri must be an http(s) stream")
	}

	if err := c.load(ctx, func() error { return c.handle.Load(ctx, target) }); err != nil {
		return Result{}, classify("could not start playback", err)
	}

	if req.Local {
		return ok(http.StatusOK, "playing local"), nil
	}
	return ok(http.StatusOK, "playing remote"), nil
}

// Stop halts playback. Stopping an idle player is a conflict.
func (c *Controller) Stop(ctx context.Context) (Result, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.handle.Snapshot().Loaded() {
		return Result{}, reject(Conflict, http.StatusNotAcceptable, "playback could not be stopped - nothing was playing")
	}

	if err := c.handle.Stop(ctx); err != nil {
		return Result{}, classify("could not stop playback", err)
	}
	return ok(http.StatusOK, "playback stopped successfully"), nil
}

// TogglePause pauses or resumes the loaded file.
func (c *Controller) TogglePause(ctx context.Context) (Result, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.handle.Snapshot().Loaded() {
		return Result{}, reject(Conflict, http.StatusNotAcceptable, "you cannot pause if you have no video")
	}

	paused, err := c.handle.TogglePause(ctx)
	if err != nil {
		return Result{}, classify("could not toggle pause", err)
	}

	if paused {
		return ok(http.StatusOK, "player is paused"), nil
	}
	return ok(http.StatusOK, "player is unpaused"), nil
}

// ToggleMute flips mute.
func (c *Controller) ToggleMute(ctx context.Context) (Result, error) {
	return c.toggle(ctx, c.handle.ToggleMute, "player muted", "player unmuted")
}

// ToggleFullscreen flips fullscreen.
func (c *Controller) ToggleFullscreen(ctx context.Context) (Result, error) {
	return c.toggle(ctx, c.handle.ToggleFullscreen, "toggled fullscreen on", "toggled fullscreen off")
}

// ToggleRepeat flips playlist looping.
func (c *Controller) ToggleRepeat(ctx context.Context) (Result, error) {
	return c.toggle(ctx, c.handle.ToggleRepeat, "toggled repeat on", "toggled repeat off")
}

func (c *Controller) toggle(ctx context.Context, fn func(context.Context) (bool, error), on, off string) (Result, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	value, err := fn(ctx)
	if err != nil {
		return Result{}, classify("could not toggle", err)
	}

	if value {
		return ok(http.StatusOK, "%s", on), nil
	}
	return ok(http.StatusOK, "%s", off), nil
}

// Seek moves to an absolute percentage of the loaded file.
func (c *Controller) Seek(ctx context.Context, percent float64) (Result, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.handle.Snapshot().PercentPos.IsPresent() {
		return Result{}, reject(Conflict, http.StatusNotAcceptable, "unable to seek; nothing is playing")
	}

	if percent < 0 || percent > 100 {
		return Result{}, reject(Validation, http.StatusUnprocessableEntity, fmt.Sprintf("cannot seek to %g%%; expected 0..100", percent))
	}

	if err := c.handle.Seek(ctx, percent); err != nil {
		return Result{}, classify("could not seek", err)
	}
	return ok(http.StatusAccepted, "seeked to %g%%", percent), nil
}

// Volume sets the volume. Out-of-range values are accepted and ignored.
func (c *Controller) Volume(ctx context.Context, volume int) (Result, error) {
	if volume < 0 || volume > 100 {
		return ok(http.StatusAccepted, "cannot set volume to below zero or above 100"), nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.handle.SetVolume(ctx, volume); err != nil {
		return Result{}, classify("could not set volume", err)
	}
	return ok(http.StatusAccepted, "volume set to %d", volume), nil
}

// SetPlaylist replaces the playlist and plays req.Index, or appends to it when req.New is false.
func (c *Controller) SetPlaylist(ctx context.Context, req PlaylistRequest) (Result, error) {
	if len(req.Items) == 0 || req.Index < 0 || req.Index >= len(req.Items) {
		return Result{}, reject(Validation, http.StatusNotAcceptable, "cannot play a zero length playlist, or item outside of range")
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	targets := make([]string, 0, len(req.Items))
	for _, item := range req.Items {
		target, err := c.resolve(item)
		if err != nil {
			return Result{}, &Error{Kind: NotFound, Status: http.StatusNotFound, Message: fmt.Sprintf("playlist item %s not available", item), Err: err}
		}
		targets = append(targets, target)
	}

	if !req.New {
		return c.appendPlaylist(ctx, targets, req.Index)
	}

	err := c.load(ctx, func() error {
		if err := c.handle.PlaylistReplace(ctx, targets); err != nil {
			return err
		}
		return c.handle.PlaylistPlayIndex(ctx, req.Index)
	})
	if err != nil {
		return Result{}, classify("could not start playlist", err)
	}

	log.Infof("playing playlist of %d entries from index %d", len(targets), req.Index)
	return ok(http.StatusOK, "playing playlist starting at index %d", req.Index), nil
}

func (c *Controller) appendPlaylist(ctx context.Context, targets []string, index int) (Result, error) {
	before := c.handle.Snapshot()

	for _, target := range targets {
		if err := c.handle.PlaylistAppend(ctx, target); err != nil {
			return Result{}, classify("could not extend playlist", err)
		}
	}

	if before.Loaded() {
		return ok(http.StatusOK, "appended %d items to the playlist", len(targets)), nil
	}

	start := len(before.Playlist) + index
	if err := c.load(ctx, func() error { return c.handle.PlaylistPlayIndex(ctx, start) }); err != nil {
		return Result{}, classify("could not start playlist", err)
	}
	return ok(http.StatusOK, "playing playlist starting at index %d", start), nil
}

// Next plays the following playlist entry.
func (c *Controller) Next(ctx context.Context) (Result, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := c.handle.Snapshot()
	if s.PlaylistPos < 0 || s.PlaylistPos >= len(s.Playlist)-1 {
		return Result{}, reject(Conflict, http.StatusMethodNotAllowed, "there is no next item to play")
	}

	if err := c.handle.PlaylistNext(ctx); err != nil {
		return Result{}, classify("could not skip forward", err)
	}
	return ok(http.StatusAccepted, "playing next playlist item"), nil
}

// Previous plays the preceding playlist entry.
func (c *Controller) Previous(ctx context.Context) (Result, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.handle.Snapshot().PlaylistPos <= 0 {
		return Result{}, reject(Conflict, http.StatusMethodNotAllowed, "there is no previous item to play")
	}

	if err := c.handle.PlaylistPrev(ctx); err != nil {
		return Result{}, classify("could not skip back", err)
	}
	return ok(http.StatusAccepted, "playing previous playlist item"), nil
}

// List returns the files in the media root. An empty root yields 204.
func (c *Controller) List() (ListResult, error) {
	files, err := c.library.List()
	if err != nil {
		return ListResult{}, classify("could not list files", err)
	}

	if len(files) == 0 {
		return ListResult{Status: http.StatusNoContent, Message: "no remote files to list", Files: []string{}}, nil
	}
	return ListResult{Status: http.StatusOK, Message: "successfully listed files", Files: files}, nil
}

// Upload stores a file in the media root.
func (c *Controller) Upload(name string, r io.Reader) (Result, error) {
	stored, err := c.library.Upload(name, r)
	if err != nil {
		e, _ := classify("upload failed", err).(*Error)
		switch e.Kind {
		case AlreadyExists:
			e.Message = fmt.Sprintf("file %s already exists", name)
		case Validation:
			e.Message = fmt.Sprintf("file name %q is not allowed", name)
		case Transient:
			e.Status = http.StatusInternalServerError
		}
		return Result{}, e
	}
	return ok(http.StatusCreated, "new file %s uploaded successfully", stored), nil
}

// Stream stores a file in the temp root and returns its path for a follow-up play.
func (c *Controller) Stream(name string, r io.Reader) (Result, error) {
	path, err := c.library.Stream(name, r)
	if err != nil {
		e, _ := classify("stream upload failed", err).(*Error)
		switch e.Kind {
		case Validation:
			e.Message = fmt.Sprintf("file name %q is not allowed", name)
		case Transient:
			e.Status = http.StatusInternalServerError
		}
		return Result{}, e
	}

	res := ok(http.StatusAccepted, "file uploaded successfully, ready to play")
	res.File = path
	return res, nil
}

// resolve maps a playlist item to what the engine should load.
func (c *Controller) resolve(item string) (string, error) {
	if uri.IsRemote(item) {
		return item, nil
	}
	return c.library.Resolve(item)
}

// load runs fn with the session marked as loading.
func (c *Controller) load(ctx context.Context, fn func() error) error {
	c.loading.Store(true)
	defer c.loading.Store(false)

	if err := ctx.Err(); err != nil {
		return err
	}
	return fn()
}
