// Package record captures per-tick robot state into an append-only,
// time-ordered log and streams rows to pluggable sinks.
package record

import (
	"errors"
	"fmt"
)

// ErrIndexOutOfRange is returned by StateLog.At for a raw index outside
// the log. The clamped playback path never produces it.
var ErrIndexOutOfRange = errors.New("record: index out of range")

// Snapshot is one robot's recorded kinematic state at a single tick.
// Immutable once appended.
type Snapshot struct {
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	A       float64 `json:"a"`
	VX      float64 `json:"vx"`
	VY      float64 `json:"vy"`
	VA      float64 `json:"va"`
	Stalled bool    `json:"stalled"`
}

// StepRecord holds all robots' Snapshots for one tick. Order is stable
// and positional: index identifies the robot for the log's lifetime.
type StepRecord []Snapshot

// StateLog is an append-only sequence of StepRecords where step i
// corresponds to simulated time i*StepDuration.
type StateLog struct {
	stepDuration float64
	steps        []StepRecord
}

// DefaultStepDuration is the simulated time between recorded steps.
const DefaultStepDuration = 0.1

// NewStateLog creates an empty log. A non-positive stepDuration falls
// back to DefaultStepDuration.
func NewStateLog(stepDuration float64) *StateLog {
	if stepDuration <= 0 {
		stepDuration = DefaultStepDuration
	}
	return &StateLog{stepDuration: stepDuration}
}

// Append extends the log by one step.
func (l *StateLog) Append(rec StepRecord) {
	l.steps = append(l.steps, rec)
}

// Reset clears the log. Trace windows computed from the old contents are
// invalid afterwards; callers must not retain them across a reset.
func (l *StateLog) Reset() {
	l.steps = nil
}

// Len returns the number of recorded steps.
func (l *StateLog) Len() int { return len(l.steps) }

// At returns the StepRecord at index i.
func (l *StateLog) At(i int) (StepRecord, error) {
	if i < 0 || i >= len(l.steps) {
		return nil, fmt.Errorf("%w: %d of %d", ErrIndexOutOfRange, i, len(l.steps))
	}
	return l.steps[i], nil
}

// StepDuration returns the simulated seconds between steps.
func (l *StateLog) StepDuration() float64 { return l.stepDuration }

// Duration returns the total recorded simulated time.
func (l *StateLog) Duration() float64 {
	return float64(len(l.steps)) * l.stepDuration
}
