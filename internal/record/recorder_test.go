package record

import (
	"context"
	"math"
	"testing"

	"roboreplay/internal/config"
	"roboreplay/internal/world"
)

func testWorld() *world.World {
	cfg := &config.Config{
		World: config.WorldConfig{Width: 100, Height: 100},
		Robots: []config.RobotConfig{
			{Name: "scout", Radius: 5, X: 20, Y: 50, Drive: config.DriveConfig{Forward: 10}},
			{Name: "rover", Radius: 5, X: 50, Y: 50},
		},
	}
	return world.New(cfg)
}

func TestRecorderCapture(t *testing.T) {
	w := testWorld()
	log := NewStateLog(0.1)
	rec := NewRecorder(w, log)

	w.Step(0.1)
	step := rec.Capture()

	if len(step) != 2 {
		t.Fatalf("expected 2 snapshots, got %d", len(step))
	}
	if log.Len() != 1 {
		t.Fatalf("expected 1 recorded step, got %d", log.Len())
	}
	if math.Abs(step[0].X-21) > 1e-9 {
		t.Fatalf("expected scout to advance to x=21, got %v", step[0].X)
	}
	if step[1].X != 50 {
		t.Fatalf("expected stationary rover at x=50, got %v", step[1].X)
	}
}

func TestSessionRun(t *testing.T) {
	w := testWorld()
	log := NewStateLog(0.1)
	cw := &collectWriter{}
	session := NewSession(w, NewRecorder(w, log), cw)

	if err := session.Run(context.Background(), 0.5); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if log.Len() != 5 {
		t.Fatalf("expected 5 steps, got %d", log.Len())
	}
	// one row per robot per tick
	if len(cw.rows) != 10 {
		t.Fatalf("expected 10 rows, got %d", len(cw.rows))
	}
	if cw.rows[0].SessionID != session.ID {
		t.Fatalf("expected session id %q on rows, got %q", session.ID, cw.rows[0].SessionID)
	}
	if cw.rows[3].RobotName != "rover" {
		t.Fatalf("expected rover row, got %q", cw.rows[3].RobotName)
	}
	// sink rows carry the same timeline playback uses: step i at i*step
	if cw.rows[0].SimTime != 0 {
		t.Fatalf("expected first tick at sim time 0, got %v", cw.rows[0].SimTime)
	}
	if last := cw.rows[len(cw.rows)-1]; math.Abs(last.SimTime-0.4) > 1e-9 {
		t.Fatalf("expected last tick at sim time 0.4, got %v", last.SimTime)
	}
}

func TestSessionRunCancelled(t *testing.T) {
	w := testWorld()
	log := NewStateLog(0.1)
	session := NewSession(w, NewRecorder(w, log), nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := session.Run(ctx, 1.0); err == nil {
		t.Fatal("expected context error")
	}
}
