package player

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/mpvremote/mpvremote/log"
)

// DefaultWaitTimeout bounds waits for the engine to confirm playback or pause.
const DefaultWaitTimeout = 15 * time.Second

// Handle owns the single engine session of the process.
// Mutating calls are serialized; Snapshot reads the engine cache and never blocks on it.
type Handle struct {
	engine      Engine
	mu          sync.Mutex
	waitTimeout time.Duration
}

// HandleOption configures a Handle.
type HandleOption func(*Handle)

// WithWaitTimeout overrides DefaultWaitTimeout.
func WithWaitTimeout(d time.Duration) HandleOption {
	return func(h *Handle) {
		if d > 0 {
			h.waitTimeout = d
		}
	}
}

// NewHandle wraps engine. The handle takes ownership: Close closes the engine.
func NewHandle(engine Engine, opts ...HandleOption) *Handle {
	h := &Handle{
		engine:      engine,
		waitTimeout: DefaultWaitTimeout,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Snapshot returns the current engine state with invariants applied.
func (h *Handle) Snapshot() State {
	return h.engine.State().Normalize()
}

// Changes subscribes to engine state changes.
func (h *Handle) Changes() (<-chan struct{}, func()) {
	return h.engine.Subscribe()
}

// Done is closed when the engine terminates.
func (h *Handle) Done() <-chan struct{} {
	return h.engine.Wait()
}

// Load replaces whatever is playing with target, unpauses, and waits until it plays.
func (h *Handle) Load(ctx context.Context, target string) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	// wait for the exact string the engine ends up holding in its playlist
	target, err := sanitizeMediaTarget(target)
	if err != nil {
		return fmt.Errorf("load: %w: %s", ErrEngine, err)
	}

	log.Infof("loading %s", target)
	if err := h.engine.Load(ctx, target, LoadReplace); err != nil {
		return fmt.Errorf("load %s: %w", target, err)
	}
	if err := h.engine.Set(ctx, PropPause, false); err != nil {
		return fmt.Errorf("unpause: %w", err)
	}

	return h.waitFor(ctx, "playing "+target, func(s State) bool {
		cur, ok := s.Current().Get()
		return ok && cur == target && s.Loaded() && !s.Pause
	})
}

// Stop halts playback and clears the engine playlist.
func (h *Handle) Stop(ctx context.Context) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if err := h.engine.Stop(ctx); err != nil {
		return fmt.Errorf("stop: %w", err)
	}
	return nil
}

// TogglePause flips the pause flag and returns the new value.
// Pausing waits for the engine to confirm; resuming does not.
func (h *Handle) TogglePause(ctx context.Context) (bool, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	pause := !h.engine.State().Pause
	if err := h.engine.Set(ctx, PropPause, pause); err != nil {
		return false, fmt.Errorf("set pause: %w", err)
	}

	if !pause {
		return false, nil
	}

	return true, h.waitFor(ctx, "pause", func(s State) bool {
		return s.Pause
	})
}

// ToggleMute flips the mute flag and returns the new value.
func (h *Handle) ToggleMute(ctx context.Context) (bool, error) {
	return h.toggle(ctx, PropMute, func(s State) bool { return s.Mute })
}

// ToggleFullscreen flips the fullscreen flag and returns the new value.
func (h *Handle) ToggleFullscreen(ctx context.Context) (bool, error) {
	return h.toggle(ctx, PropFullscreen, func(s State) bool { return s.Fullscreen })
}

// ToggleRepeat switches playlist looping between infinite and off, returning the new value.
func (h *Handle) ToggleRepeat(ctx context.Context) (bool, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	repeat := !h.engine.State().RepeatAll
	value := "no"
	if repeat {
		value = "inf"
	}

	if err := h.engine.Set(ctx, PropLoopPlaylist, value); err != nil {
		return false, fmt.Errorf("set %s: %w", PropLoopPlaylist, err)
	}
	return repeat, nil
}

func (h *Handle) toggle(ctx context.Context, property string, current func(State) bool) (bool, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	value := !current(h.engine.State())
	if err := h.engine.Set(ctx, property, value); err != nil {
		return false, fmt.Errorf("set %s: %w", property, err)
	}
	return value, nil
}

// SetVolume sets the volume. Values outside 0..100 return ErrOutOfRange without touching the engine.
func (h *Handle) SetVolume(ctx context.Context, volume int) error {
	if volume < 0 || volume > 100 {
		return fmt.Errorf("volume %d: %w", volume, ErrOutOfRange)
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if err := h.engine.Set(ctx, PropVolume, volume); err != nil {
		return fmt.Errorf("set volume: %w", err)
	}
	return nil
}

// Seek moves to an absolute percentage of the current file.
func (h *Handle) Seek(ctx context.Context, percent float64) error {
	if percent < 0 || percent > 100 {
		return fmt.Errorf("seek %.2f%%: %w", percent, ErrOutOfRange)
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if err := h.engine.Seek(ctx, percent); err != nil {
		return fmt.Errorf("seek: %w", err)
	}
	return nil
}

// PlaylistReplace stops playback and fills the playlist with items without starting any of them.
func (h *Handle) PlaylistReplace(ctx context.Context, items []string) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.engine.State().PlaylistPos > -1 {
		if err := h.engine.Stop(ctx); err != nil {
			return fmt.Errorf("stop: %w", err)
		}
	}

	if err := h.engine.PlaylistClear(ctx); err != nil {
		return fmt.Errorf("clear playlist: %w", err)
	}

	for _, item := range items {
		if err := h.engine.Load(ctx, item, LoadAppend); err != nil {
			return fmt.Errorf("append %s: %w", item, err)
		}
	}

	return nil
}

// PlaylistAppend adds item to the end of the playlist.
func (h *Handle) PlaylistAppend(ctx context.Context, item string) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if err := h.engine.Load(ctx, item, LoadAppend); err != nil {
		return fmt.Errorf("append %s: %w", item, err)
	}
	return nil
}

// PlaylistPlayIndex starts entry i, unpauses, and waits until it plays.
func (h *Handle) PlaylistPlayIndex(ctx context.Context, i int) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if err := h.engine.PlaylistPlayIndex(ctx, i); err != nil {
		return fmt.Errorf("play index %d: %w", i, err)
	}
	if err := h.engine.Set(ctx, PropPause, false); err != nil {
		return fmt.Errorf("unpause: %w", err)
	}

	return h.waitFor(ctx, fmt.Sprintf("playlist entry %d", i), func(s State) bool {
		return s.Loaded() && s.PlaylistPos == i && !s.Pause
	})
}

// PlaylistNext advances to the next entry.
func (h *Handle) PlaylistNext(ctx context.Context) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if err := h.engine.PlaylistNext(ctx); err != nil {
		return fmt.Errorf("playlist next: %w", err)
	}
	return nil
}

// PlaylistPrev goes back to the previous entry.
func (h *Handle) PlaylistPrev(ctx context.Context) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if err := h.engine.PlaylistPrev(ctx); err != nil {
		return fmt.Errorf("playlist prev: %w", err)
	}
	return nil
}

// Close terminates the engine.
func (h *Handle) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	return h.engine.Close()
}

// waitFor blocks until done reports true for the engine state, the wait
// timeout elapses, ctx is cancelled, or the engine terminates.
func (h *Handle) waitFor(ctx context.Context, what string, done func(State) bool) error {
	changes, unsubscribe := h.engine.Subscribe()
	defer unsubscribe()

	if done(h.engine.State()) {
		return nil
	}

	timer := time.NewTimer(h.waitTimeout)
	defer timer.Stop()

	for {
		select {
		case <-changes:
			if done(h.engine.State()) {
				return nil
			}
		case <-timer.C:
			log.Warnf("gave up waiting for %s after %s", what, h.waitTimeout)
			return fmt.Errorf("%s: %w", what, ErrTimeout)
		case <-h.engine.Wait():
			return fmt.Errorf("%s: %w", what, ErrUnavailable)
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
