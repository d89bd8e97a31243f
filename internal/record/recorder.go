package record

import (
	"time"

	"roboreplay/internal/world"
)

// SnapshotRow is one robot's snapshot flattened for sinks (JSONL files,
// stdout, GreptimeDB).
type SnapshotRow struct {
	SessionID string    `json:"session_id"` // TAG
	RobotName string    `json:"robot"`      // TAG
	Tick      int       `json:"tick"`       // FIELD
	SimTime   float64   `json:"sim_time"`   // FIELD
	X         float64   `json:"x"`          // FIELD
	Y         float64   `json:"y"`          // FIELD
	A         float64   `json:"a"`          // FIELD
	VX        float64   `json:"vx"`         // FIELD
	VY        float64   `json:"vy"`         // FIELD
	VA        float64   `json:"va"`         // FIELD
	Stalled   bool      `json:"stalled"`    // FIELD
	Timestamp time.Time `json:"ts"`         // TIME INDEX
}

// Snapshot converts a row back to the in-memory form.
func (r SnapshotRow) Snapshot() Snapshot {
	return Snapshot{X: r.X, Y: r.Y, A: r.A, VX: r.VX, VY: r.VY, VA: r.VA, Stalled: r.Stalled}
}

// Recorder captures the live world's robot states into a StateLog, one
// StepRecord per tick.
type Recorder struct {
	world *world.World
	log   *StateLog
}

// NewRecorder attaches a recorder to a world and log.
func NewRecorder(w *world.World, log *StateLog) *Recorder {
	return &Recorder{world: w, log: log}
}

// Log returns the underlying state log.
func (r *Recorder) Log() *StateLog { return r.log }

// Capture appends one StepRecord reflecting the world's current state and
// returns it.
func (r *Recorder) Capture() StepRecord {
	robots := r.world.Robots()
	rec := make(StepRecord, 0, len(robots))
	for _, rb := range robots {
		rec = append(rec, Snapshot{
			X: rb.X, Y: rb.Y, A: rb.A,
			VX: rb.VX, VY: rb.VY, VA: rb.VA,
			Stalled: rb.Stalled,
		})
	}
	r.log.Append(rec)
	return rec
}

// Reset starts a fresh recording session by clearing the log.
func (r *Recorder) Reset() { r.log.Reset() }
