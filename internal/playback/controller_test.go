package playback

import (
	"context"
	"image"
	"testing"
	"time"

	"roboreplay/internal/record"
	"roboreplay/internal/world"
)

func testController(steps int) *Controller {
	log := record.NewStateLog(0.1)
	for i := 0; i < steps; i++ {
		log.Append(record.StepRecord{{X: float64(i)}})
	}
	s := NewScrubber(log, world.New(testConfig(0)), nil)
	return NewController(s, 10*time.Millisecond)
}

func TestNextWrapsAfterFullCycle(t *testing.T) {
	for _, steps := range []int{1, 2, 5} {
		c := testController(steps)
		c.Begin()
		for i := 0; i < steps; i++ {
			c.Next()
		}
		if c.Cursor() != 0 {
			t.Fatalf("steps=%d: expected wraparound to 0, got %d", steps, c.Cursor())
		}
	}
}

func TestPrevWrapsToEnd(t *testing.T) {
	c := testController(5)
	c.Begin()
	c.Prev()
	if c.Cursor() != 4 {
		t.Fatalf("expected wrap to last index 4, got %d", c.Cursor())
	}
}

func TestBeginEnd(t *testing.T) {
	c := testController(3)
	c.End()
	if c.Cursor() != 2 {
		t.Fatalf("expected cursor 2 after End, got %d", c.Cursor())
	}
	c.Begin()
	if c.Cursor() != 0 {
		t.Fatalf("expected cursor 0 after Begin, got %d", c.Cursor())
	}
}

func TestGotoCommitsClampedCursor(t *testing.T) {
	c := testController(3)
	c.Goto(0.25)
	if c.Cursor() != 2 {
		t.Fatalf("expected cursor 2 for t=0.25, got %d", c.Cursor())
	}
	c.Goto(100)
	if c.Cursor() != 2 {
		t.Fatalf("expected clamped cursor 2, got %d", c.Cursor())
	}
	c.Goto(-3)
	if c.Cursor() != 0 {
		t.Fatalf("expected clamped cursor 0, got %d", c.Cursor())
	}
}

func TestEmptyLogCursorPinned(t *testing.T) {
	c := testController(0)
	c.Next()
	c.Prev()
	c.End()
	c.Goto(5)
	if c.Cursor() != 0 {
		t.Fatalf("expected cursor pinned to 0 on empty log, got %d", c.Cursor())
	}
}

func TestSinkReceivesOneFramePerChange(t *testing.T) {
	c := testController(3)
	var frames []image.Image
	c.SetSink(func(img image.Image) { frames = append(frames, img) })

	c.Begin()
	c.Next()
	c.Goto(0.2)
	if len(frames) != 3 {
		t.Fatalf("expected 3 emitted frames, got %d", len(frames))
	}
}

func TestTogglePlayFlipsState(t *testing.T) {
	c := testController(3)
	if c.Playing() {
		t.Fatal("expected initial Stop state")
	}
	if !c.TogglePlay() {
		t.Fatal("expected Play after first toggle")
	}
	if !c.Player().Running() {
		t.Fatal("expected player running while playing")
	}
	if c.TogglePlay() {
		t.Fatal("expected Stop after second toggle")
	}
	if c.Player().Running() {
		t.Fatal("expected player paused after stop")
	}
}

func TestPlayerAdvancesCursor(t *testing.T) {
	c := testController(5)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	c.Start(ctx)
	c.Begin()

	if !c.TogglePlay() {
		t.Fatal("expected Play after toggle")
	}
	deadline := time.After(time.Second)
	for c.Cursor() == 0 {
		select {
		case <-deadline:
			t.Fatal("player never advanced the cursor")
		case <-time.After(5 * time.Millisecond):
		}
	}
}

func TestSeekDoesNotMoveCursor(t *testing.T) {
	c := testController(3)
	c.Goto(0.1)
	c.Seek(0.2)
	if c.Cursor() != 1 {
		t.Fatalf("expected Seek to leave cursor at 1, got %d", c.Cursor())
	}
}
