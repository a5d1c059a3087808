// Package poll keeps a client's view of the player in sync with the server.
//
// Polling is on demand: Kick starts a loop after a command that may start or
// resume playback, and the loop ends on its own once nothing is playing or the
// player is paused.
package poll

import (
	"context"
	"sync"
	"time"

	"github.com/mpvremote/mpvremote/log"
	"github.com/mpvremote/mpvremote/status"
)

// DefaultInterval between two status fetches.
const DefaultInterval = time.Second

// Fetcher returns the current status snapshot. *client.Client implements it.
type Fetcher interface {
	Status(ctx context.Context) (status.Snapshot, error)
}

// Scrubber reports whether the user is dragging the scrub bar.
type Scrubber interface {
	Dragging() bool
}

type noScrubber struct{}

func (noScrubber) Dragging() bool { return false }

// Option configures a Poller.
type Option func(*Poller)

// WithInterval sets the delay between two fetches of a loop.
func WithInterval(d time.Duration) Option {
	return func(p *Poller) {
		if d > 0 {
			p.interval = d
		}
	}
}

// WithScrubber sets the source of the scrub bar drag state.
func WithScrubber(s Scrubber) Option {
	return func(p *Poller) {
		if s != nil {
			p.scrubber = s
		}
	}
}

// WithHandler sets the function called with every reconciled display.
func WithHandler(fn func(Display)) Option {
	return func(p *Poller) {
		p.handler = fn
	}
}

// Poller runs at most one status loop at a time.
type Poller struct {
	fetcher  Fetcher
	scrubber Scrubber
	interval time.Duration
	handler  func(Display)

	mu         sync.Mutex
	generation uint64
	cancel     context.CancelFunc
	running    bool
	display    Display
}

// New returns an idle poller. Nothing is fetched until Kick or Refresh.
func New(fetcher Fetcher, opts ...Option) *Poller {
	p := &Poller{
		fetcher:  fetcher,
		scrubber: noScrubber{},
		interval: DefaultInterval,
		display:  Idle(),
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// Kick supersedes any running loop with a new one and returns its generation.
// The loop fetches immediately, then every interval.
func (p *Poller) Kick(ctx context.Context) uint64 {
	p.mu.Lock()
	if p.cancel != nil {
		p.cancel()
	}

	ctx, cancel := context.WithCancel(ctx)
	p.generation++
	p.cancel = cancel
	p.running = true
	gen := p.generation
	p.mu.Unlock()

	go p.loop(ctx, gen)
	return gen
}

// Stop cancels the running loop, if any.
func (p *Poller) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.cancel != nil {
		p.cancel()
		p.cancel = nil
	}
	p.generation++
	p.running = false
}

// Running reports whether a loop is active.
func (p *Poller) Running() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.running
}

// Generation of the latest loop.
func (p *Poller) Generation() uint64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.generation
}

// Display returns the last reconciled display.
func (p *Poller) Display() Display {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.display
}

// Refresh fetches once outside of any loop. It is used for the initial sync.
func (p *Poller) Refresh(ctx context.Context) (Display, error) {
	snap, err := p.fetcher.Status(ctx)

	p.mu.Lock()
	if err != nil {
		p.display.Err = err
	} else {
		p.display = Reconcile(p.display, snap, p.scrubber.Dragging())
	}
	d := p.display
	p.mu.Unlock()

	p.notify(d)
	return d, err
}

func (p *Poller) loop(ctx context.Context, gen uint64) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for first := true; ; first = false {
		if !p.tick(ctx, gen, first) {
			return
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// tick fetches and applies one snapshot. It returns false when the loop should end.
// The first tick of a loop never ends it: the snapshot may predate the command
// that kicked the loop.
func (p *Poller) tick(ctx context.Context, gen uint64, first bool) bool {
	snap, err := p.fetcher.Status(ctx)
	if ctx.Err() != nil {
		return false
	}

	p.mu.Lock()
	if gen != p.generation {
		// superseded while the request was in flight
		p.mu.Unlock()
		return false
	}

	if err != nil {
		log.Warnf("poll status: %v", err)
		p.display.Err = err
		d := p.display
		p.mu.Unlock()
		p.notify(d)
		return true
	}

	p.display = Reconcile(p.display, snap, p.scrubber.Dragging())
	d := p.display
	active := d.Active() || first
	if !active {
		p.running = false
		p.cancel()
		p.cancel = nil
	}
	p.mu.Unlock()

	p.notify(d)
	return active
}

func (p *Poller) notify(d Display) {
	if p.handler != nil {
		p.handler(d)
	}
}
