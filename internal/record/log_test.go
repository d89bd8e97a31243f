package record

import (
	"errors"
	"math"
	"testing"
)

func TestStateLogAppendAt(t *testing.T) {
	log := NewStateLog(0.1)
	if log.Len() != 0 {
		t.Fatalf("expected empty log, got %d", log.Len())
	}
	log.Append(StepRecord{{X: 1}})
	log.Append(StepRecord{{X: 2}})

	rec, err := log.At(1)
	if err != nil {
		t.Fatalf("At(1): %v", err)
	}
	if rec[0].X != 2 {
		t.Fatalf("expected x=2, got %v", rec[0].X)
	}
}

func TestStateLogAtOutOfRange(t *testing.T) {
	log := NewStateLog(0.1)
	log.Append(StepRecord{{}})

	for _, i := range []int{-1, 1, 100} {
		if _, err := log.At(i); !errors.Is(err, ErrIndexOutOfRange) {
			t.Fatalf("At(%d): expected ErrIndexOutOfRange, got %v", i, err)
		}
	}
}

func TestStateLogReset(t *testing.T) {
	log := NewStateLog(0.1)
	log.Append(StepRecord{{}})
	log.Reset()
	if log.Len() != 0 {
		t.Fatalf("expected empty log after reset, got %d", log.Len())
	}
}

func TestStateLogDuration(t *testing.T) {
	log := NewStateLog(0)
	if log.StepDuration() != DefaultStepDuration {
		t.Fatalf("expected default step duration, got %v", log.StepDuration())
	}
	log.Append(StepRecord{{}})
	log.Append(StepRecord{{}})
	log.Append(StepRecord{{}})
	if d := log.Duration(); math.Abs(d-0.3) > 1e-9 {
		t.Fatalf("expected duration 0.3, got %v", d)
	}
}
