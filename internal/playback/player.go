package playback

import (
	"context"
	"sync"
	"time"

	"roboreplay/internal/logging"
)

// Player auto-advances playback on a background goroutine. It starts
// paused; Resume and Pause flip the run gate without terminating the loop,
// and cancelling the Run context is the only shutdown signal.
type Player struct {
	advance  func()
	mu       sync.Mutex
	interval time.Duration
	running  bool
	wake     chan struct{}
}

// NewPlayer creates a paused player that calls advance once per interval
// while running.
func NewPlayer(advance func(), interval time.Duration) *Player {
	if interval <= 0 {
		interval = 500 * time.Millisecond
	}
	return &Player{
		advance:  advance,
		interval: interval,
		wake:     make(chan struct{}, 1),
	}
}

// Run loops until ctx is cancelled: blocked while paused, otherwise
// advance-then-sleep. A panicking advance is logged and swallowed; there
// is no restart mechanism, so the loop must survive it.
func (p *Player) Run(ctx context.Context) {
	logger := logging.FromContext(ctx)
	for {
		if !p.Running() {
			select {
			case <-ctx.Done():
				return
			case <-p.wake:
			}
			continue
		}

		func() {
			defer func() {
				if r := recover(); r != nil {
					logger.Error("playback advance failed", "panic", r)
				}
			}()
			p.advance()
		}()

		select {
		case <-ctx.Done():
			return
		case <-time.After(p.Interval()):
		}
	}
}

// Resume enables auto-advance.
func (p *Player) Resume() {
	p.mu.Lock()
	p.running = true
	p.mu.Unlock()
	select {
	case p.wake <- struct{}{}:
	default:
	}
}

// Pause halts auto-advance without terminating the loop.
func (p *Player) Pause() {
	p.mu.Lock()
	p.running = false
	p.mu.Unlock()
}

// Running reports whether auto-advance is enabled.
func (p *Player) Running() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.running
}

// Interval returns the sleep between advances.
func (p *Player) Interval() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.interval
}

// SetInterval changes the sleep between advances.
func (p *Player) SetInterval(d time.Duration) {
	if d <= 0 {
		return
	}
	p.mu.Lock()
	p.interval = d
	p.mu.Unlock()
}
