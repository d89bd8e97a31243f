package playback

import (
	"context"
	"image"
	"sync"
	"time"
)

// FrameSink receives one rendered frame per committed cursor change. It is
// called with the controller's lock held and must not call back into the
// controller.
type FrameSink func(image.Image)

// Controller owns the scrub cursor and translates navigation intents into
// scrubber seeks. Every entry point, including the background player's
// advance, serializes through one mutex so at most one Goto is in flight
// at a time.
type Controller struct {
	mu       sync.Mutex
	scrubber *Scrubber
	player   *Player
	cursor   int // step index; pinned to 0 while the log is empty
	playing  bool
	sink     FrameSink
}

// NewController wires a controller to scrubber with the given auto-advance
// interval.
func NewController(s *Scrubber, playRate time.Duration) *Controller {
	c := &Controller{scrubber: s}
	c.player = NewPlayer(func() { c.Next() }, playRate)
	return c
}

// Start launches the background player. It stays paused until TogglePlay;
// cancelling ctx shuts it down for good.
func (c *Controller) Start(ctx context.Context) {
	go c.player.Run(ctx)
}

// SetSink registers the frame subscriber.
func (c *Controller) SetSink(sink FrameSink) {
	c.mu.Lock()
	c.sink = sink
	c.mu.Unlock()
}

// Player exposes the background player, mainly for tests.
func (c *Controller) Player() *Player { return c.player }

// Scrubber returns the scrubber this controller drives.
func (c *Controller) Scrubber() *Scrubber { return c.scrubber }

func (c *Controller) lastIndex() int {
	if n := c.scrubber.Log().Len(); n > 0 {
		return n - 1
	}
	return 0
}

// commit clamps the cursor, seeks the scrubber, and emits the frame.
// Callers hold c.mu.
func (c *Controller) commit(index int) image.Image {
	if last := c.lastIndex(); index > last {
		index = last
	}
	if index < 0 {
		index = 0
	}
	c.cursor = index
	frame := c.scrubber.Goto(float64(index) * c.scrubber.Log().StepDuration())
	if c.sink != nil {
		c.sink(frame)
	}
	return frame
}

// Begin seeks to the first recorded step.
func (c *Controller) Begin() image.Image {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.commit(0)
}

// End seeks to the last recorded step.
func (c *Controller) End() image.Image {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.commit(c.lastIndex())
}

// Next advances one step, wrapping to the beginning past the end.
func (c *Controller) Next() image.Image {
	c.mu.Lock()
	defer c.mu.Unlock()
	next := c.cursor + 1
	if next > c.lastIndex() {
		next = 0
	}
	return c.commit(next)
}

// Prev steps back one step, wrapping to the end below zero.
func (c *Controller) Prev() image.Image {
	c.mu.Lock()
	defer c.mu.Unlock()
	prev := c.cursor - 1
	if prev < 0 {
		prev = c.lastIndex()
	}
	return c.commit(prev)
}

// Goto seeks to an arbitrary time, clamping silently.
func (c *Controller) Goto(t float64) image.Image {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.commit(c.scrubber.Index(t))
}

// Seek renders the frame at time t without committing the cursor or
// notifying the sink. Export uses it so long-running exports share the
// same serialization as navigation.
func (c *Controller) Seek(t float64) image.Image {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.scrubber.Goto(t)
}

// TogglePlay flips between Play and Stop, driving the background player,
// and returns true when now playing.
func (c *Controller) TogglePlay() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.playing = !c.playing
	if c.playing {
		c.player.Resume()
	} else {
		c.player.Pause()
	}
	return c.playing
}

// Playing reports whether auto-advance is active.
func (c *Controller) Playing() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.playing
}

// RobotState is a read-only copy of one mirror robot for display layers.
type RobotState struct {
	Name    string
	X, Y, A float64
	Stalled bool
}

// Robots copies the mirror's robot states under the controller lock.
func (c *Controller) Robots() []RobotState {
	c.mu.Lock()
	defer c.mu.Unlock()
	robots := c.scrubber.Mirror().Robots()
	out := make([]RobotState, 0, len(robots))
	for _, r := range robots {
		out = append(out, RobotState{Name: r.Name, X: r.X, Y: r.Y, A: r.A, Stalled: r.Stalled})
	}
	return out
}

// Cursor returns the current step index.
func (c *Controller) Cursor() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cursor
}

// Time returns the current cursor as simulated time.
func (c *Controller) Time() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return float64(c.cursor) * c.scrubber.Log().StepDuration()
}
