package record

import (
	"context"
	"math"
	"time"

	"github.com/google/uuid"

	"roboreplay/internal/logging"
	"roboreplay/internal/world"
)

// Session drives the live world for a fixed simulated duration, capturing
// one StepRecord per tick and streaming rows to an optional sink.
type Session struct {
	ID       string
	world    *world.World
	recorder *Recorder
	writer   SnapshotWriter
}

// NewSession creates a recording session with a fresh UUID.
func NewSession(w *world.World, rec *Recorder, writer SnapshotWriter) *Session {
	return &Session{
		ID:       uuid.New().String(),
		world:    w,
		recorder: rec,
		writer:   writer,
	}
}

// Run resets the log and records duration simulated seconds. It runs as
// fast as the host allows; simulated time is decoupled from wall time.
func (s *Session) Run(ctx context.Context, duration float64) error {
	logger := logging.FromContext(ctx)
	step := s.recorder.Log().StepDuration()
	ticks := int(math.Round(duration / step))
	s.recorder.Reset()

	logger.Info("recording session started", "session", s.ID, "ticks", ticks, "step", step)
	for tick := 0; tick < ticks; tick++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		s.world.Step(step)
		rec := s.recorder.Capture()

		if s.writer != nil {
			rows := s.rows(tick, rec)
			if err := WriteRows(s.writer, rows); err != nil {
				logger.Error("snapshot write failed", "tick", tick, "err", err)
			}
		}
	}
	logger.Info("recording session finished", "session", s.ID, "steps", s.recorder.Log().Len())
	return nil
}

func (s *Session) rows(tick int, rec StepRecord) []SnapshotRow {
	step := s.recorder.Log().StepDuration()
	now := time.Now().UTC()
	robots := s.world.Robots()
	rows := make([]SnapshotRow, 0, len(rec))
	for i, snap := range rec {
		name := ""
		if i < len(robots) {
			name = robots[i].Name
		}
		rows = append(rows, SnapshotRow{
			SessionID: s.ID,
			RobotName: name,
			Tick:      tick,
			SimTime:   float64(tick) * step,
			X:         snap.X,
			Y:         snap.Y,
			A:         snap.A,
			VX:        snap.VX,
			VY:        snap.VY,
			VA:        snap.VA,
			Stalled:   snap.Stalled,
			Timestamp: now,
		})
	}
	return rows
}
