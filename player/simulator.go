package player

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/samber/lo"
	"github.com/samber/mo"
)

// DefaultSimulatedDuration is the length the simulator gives every file.
const DefaultSimulatedDuration = 10 * time.Minute

// Simulator is an in-process engine that follows mpv playlist semantics without decoding anything.
// It backs the server when no player binary is available and drives the tests.
type Simulator struct {
	mu       sync.RWMutex
	state    State
	duration func(target string) time.Duration
	notify   notifier
	fail     error
	closed   chan struct{}
	once     sync.Once
}

// SimulatorOption configures a Simulator.
type SimulatorOption func(*Simulator)

// WithDurations sets the duration reported for each target.
func WithDurations(fn func(target string) time.Duration) SimulatorOption {
	return func(s *Simulator) {
		s.duration = fn
	}
}

// NewSimulator returns an idle simulator.
func NewSimulator(opts ...SimulatorOption) *Simulator {
	s := &Simulator{
		state:    Idle(),
		duration: func(string) time.Duration { return DefaultSimulatedDuration },
		closed:   make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Fail makes every following command return err until Fail(nil) is called.
func (s *Simulator) Fail(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fail = err
}

// Run advances the playback clock every tick until ctx is done or the simulator is closed.
func (s *Simulator) Run(ctx context.Context, tick time.Duration) {
	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-s.closed:
			return
		case <-ticker.C:
			s.Advance(tick)
		}
	}
}

// Advance moves the playback clock forward by d. Reaching the end of a file
// moves to the next entry, wraps when looping, or goes idle.
func (s *Simulator) Advance(d time.Duration) {
	s.mutate(func(st *State) error {
		if !st.Loaded() || st.Pause {
			return nil
		}

		pos := st.TimePos.OrElse(0) + d.Seconds()
		dur := st.Duration.OrElse(0)
		if pos < dur {
			s.seekTo(st, pos)
			return nil
		}

		switch {
		case st.PlaylistPos+1 < len(st.Playlist):
			s.play(st, st.PlaylistPos+1)
		case st.RepeatAll && len(st.Playlist) > 0:
			s.play(st, 0)
		default:
			s.idle(st)
			st.Playlist = nil
		}
		return nil
	})
}

func (s *Simulator) Load(_ context.Context, target string, mode LoadMode) error {
	return s.mutate(func(st *State) error {
		switch mode {
		case LoadReplace:
			st.Playlist = []string{target}
			s.play(st, 0)
		case LoadAppend:
			st.Playlist = append(st.Playlist, target)
		default:
			return fmt.Errorf("%w: unknown load mode %q", ErrEngine, mode)
		}
		return nil
	})
}

func (s *Simulator) Stop(context.Context) error {
	return s.mutate(func(st *State) error {
		s.idle(st)
		st.Playlist = nil
		return nil
	})
}

func (s *Simulator) Set(_ context.Context, property string, value any) error {
	return s.mutate(func(st *State) error {
		switch property {
		case PropPause:
			st.Pause = value == true
		case PropMute:
			st.Mute = value == true
		case PropFullscreen:
			st.Fullscreen = value == true
		case PropLoopPlaylist:
			st.RepeatAll = value == "inf" || value == true
		case PropVolume:
			v, ok := value.(int)
			if !ok {
				return fmt.Errorf("%w: volume must be int, got %T", ErrEngine, value)
			}
			st.Volume = lo.Clamp(v, 0, 100)
		default:
			return fmt.Errorf("%w: property %q not found", ErrEngine, property)
		}
		return nil
	})
}

func (s *Simulator) Seek(_ context.Context, percent float64) error {
	return s.mutate(func(st *State) error {
		if !st.Loaded() {
			return fmt.Errorf("%w: nothing to seek", ErrEngine)
		}
		s.seekTo(st, st.Duration.OrElse(0)*percent/100)
		return nil
	})
}

func (s *Simulator) PlaylistClear(context.Context) error {
	return s.mutate(func(st *State) error {
		if cur, ok := st.Current().Get(); ok {
			st.Playlist = []string{cur}
			st.PlaylistPos = 0
			return nil
		}
		st.Playlist = nil
		return nil
	})
}

func (s *Simulator) PlaylistPlayIndex(_ context.Context, i int) error {
	return s.mutate(func(st *State) error {
		if i < 0 || i >= len(st.Playlist) {
			return fmt.Errorf("%w: playlist index %d out of range", ErrEngine, i)
		}
		s.play(st, i)
		return nil
	})
}

func (s *Simulator) PlaylistNext(context.Context) error {
	return s.mutate(func(st *State) error {
		if st.PlaylistPos < 0 || st.PlaylistPos+1 >= len(st.Playlist) {
			return fmt.Errorf("%w: no next entry", ErrEngine)
		}
		s.play(st, st.PlaylistPos+1)
		return nil
	})
}

func (s *Simulator) PlaylistPrev(context.Context) error {
	return s.mutate(func(st *State) error {
		if st.PlaylistPos <= 0 {
			return fmt.Errorf("%w: no previous entry", ErrEngine)
		}
		s.play(st, st.PlaylistPos-1)
		return nil
	})
}

func (s *Simulator) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Clone()
}

func (s *Simulator) Subscribe() (<-chan struct{}, func()) {
	return s.notify.subscribe()
}

func (s *Simulator) Wait() <-chan struct{} {
	return s.closed
}

// Close terminates the simulator. Later commands return ErrUnavailable.
func (s *Simulator) Close() error {
	s.once.Do(func() {
		close(s.closed)
	})
	return nil
}

// mutate applies fn to the state under the lock and notifies subscribers if it succeeded.
func (s *Simulator) mutate(fn func(*State) error) error {
	select {
	case <-s.closed:
		return ErrUnavailable
	default:
	}

	s.mu.Lock()
	if s.fail != nil {
		err := s.fail
		s.mu.Unlock()
		return err
	}
	err := fn(&s.state)
	s.mu.Unlock()

	if err == nil {
		s.notify.broadcast()
	}
	return err
}

func (s *Simulator) play(st *State, i int) {
	target := st.Playlist[i]
	st.PlaylistPos = i
	st.Filename = mo.Some(DisplayName(target))
	st.Duration = mo.Some(s.duration(target).Seconds())
	s.seekTo(st, 0)
}

func (s *Simulator) seekTo(st *State, pos float64) {
	dur := st.Duration.OrElse(0)
	pos = lo.Clamp(pos, 0, dur)
	st.TimePos = mo.Some(pos)
	if dur > 0 {
		st.PercentPos = mo.Some(pos / dur * 100)
	} else {
		st.PercentPos = mo.Some(0.0)
	}
}

func (s *Simulator) idle(st *State) {
	st.Filename = mo.None[string]()
	st.PlaylistPos = -1
	st.TimePos = mo.None[float64]()
	st.PercentPos = mo.None[float64]()
	st.Duration = mo.None[float64]()
}
