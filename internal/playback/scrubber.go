// Package playback turns a recorded state log into a scrubbable timeline:
// random seeking, wraparound stepping, background auto-advance, and frame
// export.
package playback

import (
	"image"
	"math"

	"roboreplay/internal/record"
	"roboreplay/internal/world"
)

// Scrubber maps a continuous time value onto a discrete recorded step and
// applies it to the playback mirror, producing a rendered frame.
//
// Index rounding uses round-half-to-even, matching the recording tool this
// log format originated from; 0.25s at a 0.1s step selects step 2.
type Scrubber struct {
	log    *record.StateLog
	mirror *world.World
	live   *world.World // optional; mirrored verbatim while the log is empty
}

// NewScrubber builds a scrubber over log rendering into mirror. live may
// be nil when there is no live simulation to fall back to.
func NewScrubber(log *record.StateLog, mirror, live *world.World) *Scrubber {
	return &Scrubber{log: log, mirror: mirror, live: live}
}

// Log returns the state log being scrubbed.
func (s *Scrubber) Log() *record.StateLog { return s.log }

// Mirror returns the playback world.
func (s *Scrubber) Mirror() *world.World { return s.mirror }

// Index quantizes t to a step index, clamped to the log. Always 0 for an
// empty log.
func (s *Scrubber) Index(t float64) int {
	index := int(math.RoundToEven(t / s.log.StepDuration()))
	last := s.log.Len() - 1
	if index > last {
		index = last
	}
	if index < 0 {
		index = 0
	}
	return index
}

// Goto seeks the mirror to time t and renders it. Out-of-range times clamp
// silently; scrubbing never fails visibly. With an empty log the live
// world's state is mirrored directly so scrubbing works before anything
// has been recorded.
func (s *Scrubber) Goto(t float64) image.Image {
	if s.log.Len() == 0 {
		s.passThrough()
	} else {
		s.apply(s.Index(t))
	}

	s.mirror.SetTime(t)
	if t == 0 {
		// time zero is the pristine initial condition; the ground may
		// have changed since the mirror was built
		s.mirror.ResetBackground()
	}
	s.mirror.Update()
	return s.mirror.Render()
}

func (s *Scrubber) apply(index int) {
	rec, err := s.log.At(index)
	if err != nil {
		return
	}
	for i, snap := range rec {
		s.mirror.SetPose(i, snap.X, snap.Y, snap.A)
		s.mirror.SetVelocity(i, snap.VX, snap.VY, snap.VA)
		s.mirror.SetStalled(i, snap.Stalled)
		if r := s.mirror.Robot(i); r != nil && r.TraceEnabled {
			s.mirror.SetTrace(i, s.TraceWindow(i, index, r.MaxTraceLength))
		}
	}
}

func (s *Scrubber) passThrough() {
	if s.live == nil {
		return
	}
	for i, lr := range s.live.Robots() {
		s.mirror.SetPose(i, lr.X, lr.Y, lr.A)
		s.mirror.SetVelocity(i, lr.VX, lr.VY, lr.VA)
		s.mirror.SetStalled(i, lr.Stalled)
		s.mirror.SetTrace(i, nil)
	}
}

// TraceWindow reconstructs robot's recent pose history over
// [index-maxLength, index], clipped at 0.
func (s *Scrubber) TraceWindow(robot, index, maxLength int) []world.Pose {
	start := index - maxLength
	if start < 0 {
		start = 0
	}
	var poses []world.Pose
	for i := start; i <= index; i++ {
		rec, err := s.log.At(i)
		if err != nil || robot >= len(rec) {
			continue
		}
		snap := rec[robot]
		poses = append(poses, world.Pose{X: snap.X, Y: snap.Y, A: snap.A})
	}
	return poses
}
